package engine

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

func TestValidateRejectsWrongSide(t *testing.T) {
	e, _, defenderID := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
	advanceToPhase(e, PhaseAction)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)

	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     defenderID,
		UnitID:       marineID,
		TargetUnitID: &target,
	})
	if result.Success {
		t.Fatalf("defender should not be able to act on the assault side's turn")
	}
	if result.Err == nil || result.Err.Kind != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", result.Err)
	}
}

func TestValidateRejectsActionOutsideLegalPhase(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)

	// still in PhaseEvent, where no player action is legal
	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &target,
	})
	if result.Success {
		t.Fatalf("attack during PhaseEvent should be rejected")
	}
	if result.Err == nil || result.Err.Kind != ErrInvalidPhase {
		t.Fatalf("expected ErrInvalidPhase, got %v", result.Err)
	}
}

func TestValidateRejectsUnknownUnit(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	advanceToPhase(e, PhaseAction)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)

	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       bson.NewObjectID(),
		TargetUnitID: &target,
	})
	if result.Success {
		t.Fatalf("attack with an unknown acting unit should be rejected")
	}
	if result.Err == nil || result.Err.Kind != ErrUnitNotFound {
		t.Fatalf("expected ErrUnitNotFound, got %v", result.Err)
	}
}

func TestValidateRejectsAlreadyActedUnit(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)
	advanceToPhase(e, PhaseAction)

	e.GetState().Units[marineID].HasActed = true
	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &target,
	})
	if result.Success {
		t.Fatalf("a unit that already acted should not be able to attack again")
	}
	if result.Err == nil || result.Err.Kind != ErrUnitAlreadyActed {
		t.Fatalf("expected ErrUnitAlreadyActed, got %v", result.Err)
	}
}

func TestValidateRejectsPinnedUnit(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)
	advanceToPhase(e, PhaseAction)

	e.GetState().Units[marineID].SuppressionTokens = units.MaxSuppression
	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &target,
	})
	if result.Success {
		t.Fatalf("a pinned unit should not be able to attack")
	}
	if result.Err == nil || result.Err.Kind != ErrUnitSuppressedPinned {
		t.Fatalf("expected ErrUnitSuppressedPinned, got %v", result.Err)
	}
}

func TestValidateRejectsAttackOnFriendlyUnit(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
	ally := addUnit(e, units.SideAssault, marineBlueprint(), 1, 0, -1)
	advanceToPhase(e, PhaseAction)

	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &ally,
	})
	if result.Success {
		t.Fatalf("attacking a friendly unit should be rejected")
	}
	if result.Err == nil || result.Err.Kind != ErrTargetFriendly {
		t.Fatalf("expected ErrTargetFriendly, got %v", result.Err)
	}
}

func TestValidateRejectsActionsOnceGameIsOver(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
	target := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)
	advanceToPhase(e, PhaseAction)

	e.GetState().IsGameOver = true
	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &target,
	})
	if result.Success {
		t.Fatalf("no action should succeed once the game is over")
	}
	if result.Err == nil || result.Err.Kind != ErrGameOver {
		t.Fatalf("expected ErrGameOver, got %v", result.Err)
	}
}
