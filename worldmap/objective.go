package worldmap

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// ObjectiveType is the closed set of objective kinds a scenario can place
// on the map (spec §3 Objective).
type ObjectiveType string

const (
	ObjectivePort              ObjectiveType = "port"
	ObjectiveAirfield          ObjectiveType = "airfield"
	ObjectiveCommsHub          ObjectiveType = "comms_hub"
	ObjectiveCivicCenter       ObjectiveType = "civic_center"
	ObjectiveHighValueTarget   ObjectiveType = "high_value_target"
	ObjectiveLandingZone       ObjectiveType = "landing_zone"
	ObjectiveDefensivePosition ObjectiveType = "defensive_position"
	ObjectiveSupplyDepot       ObjectiveType = "supply_depot"
	ObjectiveCommandPost       ObjectiveType = "command_post"
)

var errObjectiveHexTaken = errors.New("worldmap: hex already holds an objective")

// Objective is a capturable point of interest on the map (spec §3:
// "{id, type, position, owner?, priority}"). Owner is nil until some
// side's unit on the hex claims it with a SecureObjective action while
// no enemy unit shares the hex.
type Objective struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Type     ObjectiveType `bson:"type" json:"type"`
	Position hexgrid.Hex   `bson:"position" json:"position"`
	Owner    *units.Side   `bson:"owner,omitempty" json:"owner,omitempty"`
	Priority int           `bson:"priority" json:"priority"`
}

// NewObjective constructs an unowned objective.
func NewObjective(id bson.ObjectID, typ ObjectiveType, pos hexgrid.Hex, priority int) *Objective {
	return &Objective{ID: id, Type: typ, Position: pos, Priority: priority}
}

// IsOwned reports whether the objective has been claimed.
func (o *Objective) IsOwned() bool {
	return o.Owner != nil
}

// Capture assigns side as the objective's owner.
func (o *Objective) Capture(side units.Side) {
	s := side
	o.Owner = &s
}

// Contest clears ownership, used when the objective's holder is no
// longer present and no single side controls it.
func (o *Objective) Contest() {
	o.Owner = nil
}
