package engine

import (
	"testing"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

func aaTeamBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeAATeam,
		Stats:      units.Stats{Movement: 1, Attack: 2, Defense: 1, HP: 2, AttackRange: 3},
		Categories: units.NewCategorySet(units.CategoryGroundVehicle),
	}
}

func harrierBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeHarrier,
		Stats:      units.Stats{Movement: 6, Attack: 3, Defense: 1, HP: 2},
		Categories: units.NewCategorySet(units.CategoryAircraft),
	}
}

// TestAATeamAttacksAircraftWithinRange covers the spec's AA-vs-aircraft
// range scenario: an AA team with range 3 can hit a Harrier two hexes
// away, but not one four hexes away.
func TestAATeamAttacksAircraftWithinRange(t *testing.T) {
	e, _, defenderID := newTestEngine(10, 10, 1)
	aaID := addUnit(e, units.SideDefender, aaTeamBlueprint(), 0, 0, 0)
	harrierID := addUnit(e, units.SideAssault, harrierBlueprint(), 2, 0, -2)

	advanceToPhase(e, PhaseAction)
	e.GetState().ActiveSide = units.SideDefender

	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     defenderID,
		UnitID:       aaID,
		TargetUnitID: &harrierID,
	})
	if !result.Success {
		t.Fatalf("AA attack on in-range aircraft should succeed, got: %v", result.Err)
	}
}

// TestAATeamOutOfRangeAircraftRejected moves the Harrier out to distance
// 4 and expects the attack to be rejected with ErrOutOfRange.
func TestAATeamOutOfRangeAircraftRejected(t *testing.T) {
	e, _, defenderID := newTestEngine(10, 10, 1)
	aaID := addUnit(e, units.SideDefender, aaTeamBlueprint(), 0, 0, 0)
	harrierID := addUnit(e, units.SideAssault, harrierBlueprint(), 4, 0, -4)

	advanceToPhase(e, PhaseAction)
	e.GetState().ActiveSide = units.SideDefender

	result := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     defenderID,
		UnitID:       aaID,
		TargetUnitID: &harrierID,
	})
	if result.Success {
		t.Fatalf("expected out-of-range attack to fail")
	}
	if result.Err == nil || result.Err.Kind != ErrOutOfRange {
		t.Fatalf("expected ErrOutOfRange, got %v", result.Err)
	}
}
