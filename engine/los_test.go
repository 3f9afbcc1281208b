package engine

import (
	"testing"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
	"github.com/nicoberrocal/wasp-assault-engine/worldmap"
)

func longRangeDirectFireBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeLAV,
		Stats:      units.Stats{Movement: 4, Attack: 3, Defense: 2, HP: 4, AttackRange: 10},
		Categories: units.NewCategorySet(units.CategoryGroundVehicle),
	}
}

// TestHeavyWoodsDoesNotBlockAdjacentLOS covers spec §4.2: "Heavy Woods
// block LOS but not adjacent LOS." Heavy Woods sitting directly between
// an attacker and a target it is adjacent to on both sides must not
// block the shot, even though Heavy Woods is a LOS-blocking terrain.
func TestHeavyWoodsDoesNotBlockAdjacentLOS(t *testing.T) {
	e, assaultID, _ := newTestEngine(6, 6, 1)
	gs := e.GetState()
	gs.Map.SetTerrain(hexgrid.Hex{Q: 1, R: 0, S: -1}, worldmap.HeavyWoods)

	attackerID := addUnit(e, units.SideAssault, longRangeDirectFireBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 2, 0, -2)
	advanceToPhase(e, PhaseAction)

	result := e.ExecuteAction(Action{Kind: ActionAttack, PlayerID: assaultID, UnitID: attackerID, TargetUnitID: &target})
	if !result.Success {
		t.Fatalf("heavy woods adjacent to both endpoints should not block LOS, got: %v", result.Err)
	}
}

// TestHeavyWoodsBlocksLOSBeyondAdjacency covers the other half of the
// rule: Heavy Woods still blocks LOS through it once the shot's path
// leaves both the woods hex's immediate neighborhoods.
func TestHeavyWoodsBlocksLOSBeyondAdjacency(t *testing.T) {
	e, assaultID, _ := newTestEngine(10, 10, 1)
	gs := e.GetState()
	gs.Map.SetTerrain(hexgrid.Hex{Q: 2, R: 0, S: -2}, worldmap.HeavyWoods)

	attackerID := addUnit(e, units.SideAssault, longRangeDirectFireBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 4, 0, -4)
	advanceToPhase(e, PhaseAction)

	result := e.ExecuteAction(Action{Kind: ActionAttack, PlayerID: assaultID, UnitID: attackerID, TargetUnitID: &target})
	if result.Success {
		t.Fatalf("expected heavy woods to block LOS to a target beyond its adjacency")
	}
	if result.Err == nil || result.Err.Kind != ErrNoLineOfSight {
		t.Fatalf("expected ErrNoLineOfSight, got %v", result.Err)
	}
}

// TestMountainsStillFullyBlockLOS is a regression check: Mountains must
// keep hard-blocking LOS even adjacent to an endpoint, unlike Heavy
// Woods.
func TestMountainsStillFullyBlockLOS(t *testing.T) {
	e, assaultID, _ := newTestEngine(6, 6, 1)
	gs := e.GetState()
	gs.Map.SetTerrain(hexgrid.Hex{Q: 1, R: 0, S: -1}, worldmap.Mountains)

	attackerID := addUnit(e, units.SideAssault, longRangeDirectFireBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 2, 0, -2)
	advanceToPhase(e, PhaseAction)

	result := e.ExecuteAction(Action{Kind: ActionAttack, PlayerID: assaultID, UnitID: attackerID, TargetUnitID: &target})
	if result.Success {
		t.Fatalf("expected mountains to block LOS even adjacent to both endpoints")
	}
	if result.Err == nil || result.Err.Kind != ErrNoLineOfSight {
		t.Fatalf("expected ErrNoLineOfSight, got %v", result.Err)
	}
}
