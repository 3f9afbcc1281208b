package engine

import (
	"testing"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// TestAdjacentInfantryDuel covers the spec's adjacent infantry duel
// scenario: a Marine attacks an adjacent Infantry on a 4x4 all-Clear map
// with seed 1, during the Action phase.
func TestAdjacentInfantryDuel(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 1, 0, -1)
	infantryID := addUnit(e, units.SideDefender, infantryBlueprint(), 2, 0, -2)

	advanceToPhase(e, PhaseAction)

	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &infantryID,
	})

	if !result.Success {
		t.Fatalf("attack failed: %v", result.Err)
	}
	if len(result.Log.Rolls) == 0 {
		t.Fatalf("expected at least one die rolled")
	}

	infantry, _ := e.GetUnit(infantryID)
	if result.Log.Hits > 0 && infantry.CurrentHP >= 3 {
		t.Fatalf("infantry HP did not decrease despite %d recorded hits", result.Log.Hits)
	}

	marine, _ := e.GetUnit(marineID)
	if !marine.HasActed {
		t.Fatalf("marine.hasActed should be true after attacking")
	}
}
