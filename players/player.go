package players

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// Player is one of the two sides contesting a scenario (spec §3 Player:
// "{id, side, commandPoints, units[], objectives owned, waspSystemStatus?
// (Assault only)}"). Unit and objective membership are tracked by
// reference to avoid a cyclic dependency between players and engine.
type Player struct {
	ID            bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	Side          units.Side        `bson:"side" json:"side"`
	CommandPoints int               `bson:"commandPoints" json:"commandPoints"`
	UnitIDs       []bson.ObjectID   `bson:"unitIds" json:"unitIds"`
	ObjectiveIDs  []bson.ObjectID   `bson:"objectiveIds,omitempty" json:"objectiveIds,omitempty"`
	WaspStatus    *WaspSystemStatus `bson:"waspStatus,omitempty" json:"waspStatus,omitempty"`
}

// NewPlayer constructs a player for side. waspStatus should be non-nil
// only for the Assault side, which alone carries the USS Wasp.
func NewPlayer(id bson.ObjectID, side units.Side, waspStatus *WaspSystemStatus) *Player {
	return &Player{ID: id, Side: side, WaspStatus: waspStatus}
}

// assaultCPBySystemStatus maps the USS Wasp's C2 status to the Command
// Points the Assault side generates each Command phase (spec §6).
var assaultCPBySystemStatus = map[SystemStatus]int{
	SystemOperational: 3,
	SystemLimited:     2,
	SystemDamaged:     2,
	SystemOffline:     0,
	SystemDestroyed:   0,
}

// defenderCP is the Defender side's constant per-turn CP generation
// (spec §6: "Defender = 2 constant").
const defenderCP = 2

// GenerateCommandPoints returns the CP this player earns at the start of
// a Command phase and adds it to CommandPoints.
func (p *Player) GenerateCommandPoints() int {
	var gained int
	switch p.Side {
	case units.SideDefender:
		gained = defenderCP
	case units.SideAssault:
		if p.WaspStatus == nil {
			gained = assaultCPBySystemStatus[SystemOperational]
		} else {
			gained = assaultCPBySystemStatus[p.WaspStatus.C2()]
		}
	}
	p.CommandPoints += gained
	return gained
}

// DiscardOverflowCP clears accumulated CP at End phase (spec §6:
// "Overflow discarded at End phase" — this engine carries no CP forward
// across turns, so the call simply zeroes the budget).
func (p *Player) DiscardOverflowCP() {
	p.CommandPoints = 0
}

// SpendCommandPoints deducts cost, reporting false (and leaving the
// budget untouched) if insufficient.
func (p *Player) SpendCommandPoints(cost int) bool {
	if cost < 0 || p.CommandPoints < cost {
		return false
	}
	p.CommandPoints -= cost
	return true
}

// AddUnit registers a unit as belonging to this player.
func (p *Player) AddUnit(id bson.ObjectID) {
	p.UnitIDs = append(p.UnitIDs, id)
}

// OwnsUnit reports whether unit id belongs to this player.
func (p *Player) OwnsUnit(id bson.ObjectID) bool {
	for _, u := range p.UnitIDs {
		if u == id {
			return true
		}
	}
	return false
}

// AddObjective records that this player now owns objective id.
func (p *Player) AddObjective(id bson.ObjectID) {
	for _, o := range p.ObjectiveIDs {
		if o == id {
			return
		}
	}
	p.ObjectiveIDs = append(p.ObjectiveIDs, id)
}

// RemoveObjective drops objective id from this player's owned list.
func (p *Player) RemoveObjective(id bson.ObjectID) {
	for i, o := range p.ObjectiveIDs {
		if o == id {
			p.ObjectiveIDs = append(p.ObjectiveIDs[:i], p.ObjectiveIDs[i+1:]...)
			return
		}
	}
}
