package engine

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// newTestEngine builds a small width x height Clear-terrain map with no
// objectives, seeded for deterministic dice, and no units yet spawned.
func newTestEngine(width, height int, seed int64) (*Engine, bson.ObjectID, bson.ObjectID) {
	cfg := ScenarioConfig{
		Width:        width,
		Height:       height,
		OffshoreEdge: "west",
		Seed:         &seed,
	}
	e, gs := NewEngine(cfg)
	var assaultID, defenderID bson.ObjectID
	for _, id := range gs.PlayerOrder {
		if gs.Players[id].Side == units.SideAssault {
			assaultID = id
		} else {
			defenderID = id
		}
	}
	return e, assaultID, defenderID
}

// addUnit spawns a unit directly into gs at the given cube hex, bypassing
// ScenarioConfig so tests can place units at exact coordinates.
func addUnit(e *Engine, side units.Side, bp units.Blueprint, q, r, s int) bson.ObjectID {
	gs := e.state
	id := bson.NewObjectID()
	bp.Side = side
	u := units.NewUnit(id, bp)
	pos := units.Position{Q: q, R: r, S: s}
	u.Position = &pos
	gs.Units[id] = u
	for _, p := range gs.Players {
		if p.Side == side {
			p.AddUnit(id)
		}
	}
	return id
}

// advanceToPhase drives AdvancePhase until gs.Phase == target, starting
// from whatever phase the engine is currently in.
func advanceToPhase(e *Engine, target Phase) {
	for e.state.Phase != target {
		e.AdvancePhase()
	}
}

func marineBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeMarine,
		Stats:      units.Stats{Movement: 3, Attack: 3, Defense: 2, HP: 3},
		Categories: units.NewCategorySet(units.CategoryInfantry),
	}
}

func infantryBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeInfantry,
		Stats:      units.Stats{Movement: 3, Attack: 2, Defense: 2, HP: 3},
		Categories: units.NewCategorySet(units.CategoryInfantry),
	}
}
