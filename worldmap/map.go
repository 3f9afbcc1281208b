package worldmap

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// Edge names the long rectangular edge designated as the offshore zone
// for a scenario (spec §3: "Offshore zone = one long edge").
type Edge string

const (
	EdgeNorth Edge = "north" // row 0
	EdgeSouth Edge = "south" // row Height-1
	EdgeWest  Edge = "west"  // col 0
	EdgeEast  Edge = "east"  // col Width-1
)

// HexCell is the per-hex record the map grid stores (spec §3 Map:
// "per-hex {terrain, objective?, fortifications[]}").
type HexCell struct {
	Terrain        Terrain  `bson:"terrain" json:"terrain"`
	Fortifications []string `bson:"fortifications,omitempty" json:"fortifications,omitempty"`
}

// Map is the rectangular hex grid the engine plays on (spec §3 Map).
// Coordinates use odd-r row offsets internally for the Width x Height
// bounds check, converted to/from cube hexgrid.Hex at the boundary.
type Map struct {
	Width, Height int
	OffshoreEdge  Edge

	cells           map[hexgrid.Hex]HexCell
	objectives      map[bson.ObjectID]*Objective
	objectiveByHex  map[hexgrid.Hex]bson.ObjectID
}

// NewMap builds an empty Width x Height map, every hex defaulting to
// Clear terrain.
func NewMap(width, height int, offshore Edge) *Map {
	m := &Map{
		Width:          width,
		Height:         height,
		OffshoreEdge:   offshore,
		cells:          make(map[hexgrid.Hex]HexCell),
		objectives:     make(map[bson.ObjectID]*Objective),
		objectiveByHex: make(map[hexgrid.Hex]bson.ObjectID),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			m.cells[hexgrid.FromOffset(col, row, hexgrid.OffsetOddR)] = HexCell{Terrain: Clear}
		}
	}
	return m
}

// InBounds reports whether h lies within the map's rectangle (spec §3
// invariant: "coordinates inside rectangle are valid").
func (m *Map) InBounds(h hexgrid.Hex) bool {
	col, row := h.Offset(hexgrid.OffsetOddR)
	return col >= 0 && col < m.Width && row >= 0 && row < m.Height
}

// SetTerrain assigns the terrain type for hex h. Terrain is fixed for
// the game once setup completes (spec §3 invariant); callers should only
// use this during scenario construction.
func (m *Map) SetTerrain(h hexgrid.Hex, t Terrain) {
	cell := m.cells[h]
	cell.Terrain = t
	m.cells[h] = cell
}

// AddFortification appends a fortification marker to hex h.
func (m *Map) AddFortification(h hexgrid.Hex, name string) {
	cell := m.cells[h]
	cell.Fortifications = append(cell.Fortifications, name)
	m.cells[h] = cell
}

// RemoveFortification removes the first matching fortification marker
// from hex h, used by the Breaching Charge ability effect.
func (m *Map) RemoveFortification(h hexgrid.Hex, name string) bool {
	cell, ok := m.cells[h]
	if !ok {
		return false
	}
	for i, f := range cell.Fortifications {
		if f == name {
			cell.Fortifications = append(cell.Fortifications[:i], cell.Fortifications[i+1:]...)
			m.cells[h] = cell
			return true
		}
	}
	return false
}

// GetTerrain returns the terrain at hex h.
func (m *Map) GetTerrain(h hexgrid.Hex) Terrain {
	return m.cells[h].Terrain
}

// Fortifications returns the fortification markers at hex h.
func (m *Map) Fortifications(h hexgrid.Hex) []string {
	return m.cells[h].Fortifications
}

// MovementCost returns the cost for a unit with categories cats to enter
// hex h, or Impassable if no category in cats may enter it (spec §4.2
// movementCost). Aircraft ignore ground terrain costs entirely.
func (m *Map) MovementCost(h hexgrid.Hex, cats units.CategorySet) int {
	spec := Spec(m.GetTerrain(h))
	if cats.IsAirborne() {
		return 1
	}
	if IsWater(m.GetTerrain(h)) {
		if !cats.IsAmphibiousCapable() {
			return Impassable
		}
		return spec.amphibiousCost
	}
	if cats.IsAmphibiousCapable() {
		return spec.amphibiousCost
	}
	if spec.groundMoveCost == Impassable {
		return Impassable
	}
	return spec.groundMoveCost
}

// DefenseBonus returns the terrain defense bonus at hex h.
func (m *Map) DefenseBonus(h hexgrid.Hex) int {
	return Spec(m.GetTerrain(h)).DefenseBonus
}

// Concealment returns the terrain concealment bonus at hex h.
func (m *Map) Concealment(h hexgrid.Hex) int {
	return Spec(m.GetTerrain(h)).Concealment
}

// BlocksLOS reports whether hex h fully blocks line of sight through it
// (Mountains). Heavy Woods blocks LOS beyond it but not to units
// adjacent to it; see SoftBlocksLOS.
func (m *Map) BlocksLOS(h hexgrid.Hex) bool {
	return Spec(m.GetTerrain(h)).BlocksLOS
}

// SoftBlocksLOS reports whether hex h blocks LOS only for non-adjacent
// lines passing through it (Heavy Woods, spec §4.2).
func (m *Map) SoftBlocksLOS(h hexgrid.Hex) bool {
	return Spec(m.GetTerrain(h)).SoftBlocksLOS
}

// LandingAllowed reports whether a unit of categories cats may disembark
///land on hex h (spec §4.2: "aircraft... require a valid landing-zone
// terrain to disembark").
func (m *Map) LandingAllowed(h hexgrid.Hex, cats units.CategorySet) bool {
	allowed := Spec(m.GetTerrain(h)).LandingAllowed
	for cat, ok := range allowed {
		if ok && cats.Has(cat) {
			return true
		}
	}
	return false
}

// IsOffshoreZone reports whether hex h lies on the designated offshore
// edge of the map.
func (m *Map) IsOffshoreZone(h hexgrid.Hex) bool {
	col, row := h.Offset(hexgrid.OffsetOddR)
	switch m.OffshoreEdge {
	case EdgeNorth:
		return row == 0
	case EdgeSouth:
		return row == m.Height-1
	case EdgeWest:
		return col == 0
	case EdgeEast:
		return col == m.Width-1
	default:
		return false
	}
}

// AllHexes enumerates every hex in the map rectangle.
func (m *Map) AllHexes() []hexgrid.Hex {
	out := make([]hexgrid.Hex, 0, len(m.cells))
	for h := range m.cells {
		out = append(out, h)
	}
	return out
}

// AddObjective registers an objective on the map, erroring if another
// objective already occupies the same hex (spec §3 invariant: "no two
// objectives share a hex").
func (m *Map) AddObjective(o *Objective) error {
	if _, taken := m.objectiveByHex[o.Position]; taken {
		return errObjectiveHexTaken
	}
	m.objectives[o.ID] = o
	m.objectiveByHex[o.Position] = o.ID
	return nil
}

// GetObjective returns the objective at hex h, if any.
func (m *Map) GetObjective(h hexgrid.Hex) (*Objective, bool) {
	id, ok := m.objectiveByHex[h]
	if !ok {
		return nil, false
	}
	o, ok := m.objectives[id]
	return o, ok
}

// GetObjectiveByID looks up an objective by its arena id.
func (m *Map) GetObjectiveByID(id bson.ObjectID) (*Objective, bool) {
	o, ok := m.objectives[id]
	return o, ok
}

// AllObjectives enumerates every objective on the map.
func (m *Map) AllObjectives() []*Objective {
	out := make([]*Objective, 0, len(m.objectives))
	for _, o := range m.objectives {
		out = append(out, o)
	}
	return out
}
