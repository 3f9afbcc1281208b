package engine

import (
	"testing"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// TestSnapshotRestoreRoundTrip covers the spec's deterministic replay
// scenario at the snapshot/restore boundary: restoring a snapshot mid-game
// and resolving an attack must deal identical damage to resolving the
// same attack from the live engine, since both draw from the same
// RNG seed/draws state.
func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e, assaultID, _ := newTestEngine(4, 4, 1)
	marineID := addUnit(e, units.SideAssault, marineBlueprint(), 1, 0, -1)
	infantryID := addUnit(e, units.SideDefender, infantryBlueprint(), 2, 0, -2)
	advanceToPhase(e, PhaseAction)

	data, err := e.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	restored, err := RestoreEngine(data)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	liveResult := e.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &infantryID,
	})
	restoredResult := restored.ExecuteAction(Action{
		Kind:         ActionAttack,
		PlayerID:     assaultID,
		UnitID:       marineID,
		TargetUnitID: &infantryID,
	})

	if liveResult.Success != restoredResult.Success {
		t.Fatalf("success mismatch: live=%v restored=%v", liveResult.Success, restoredResult.Success)
	}
	if len(liveResult.Log.Rolls) != len(restoredResult.Log.Rolls) {
		t.Fatalf("roll count mismatch: live=%v restored=%v", liveResult.Log.Rolls, restoredResult.Log.Rolls)
	}
	for i := range liveResult.Log.Rolls {
		if liveResult.Log.Rolls[i] != restoredResult.Log.Rolls[i] {
			t.Fatalf("roll %d mismatch: live=%d restored=%d", i, liveResult.Log.Rolls[i], restoredResult.Log.Rolls[i])
		}
	}
	if liveResult.Log.Damage != restoredResult.Log.Damage {
		t.Fatalf("damage mismatch: live=%d restored=%d", liveResult.Log.Damage, restoredResult.Log.Damage)
	}
}

// TestReplayProducesIdenticalFinalState runs the same short action log
// against two freshly constructed engines from the same seed and
// scenario, and asserts their final per-unit HP and positions match
// exactly (spec Scenario F: deterministic replay).
func TestReplayProducesIdenticalFinalState(t *testing.T) {
	type outcome struct {
		marineHP, infantryHP                   int
		marineSuppression, infantrySuppression int
		allRolls                               []int
	}

	run := func() outcome {
		e, assaultID, _ := newTestEngine(6, 6, 42)
		marineID := addUnit(e, units.SideAssault, marineBlueprint(), 0, 0, 0)
		infantryID := addUnit(e, units.SideDefender, infantryBlueprint(), 1, 0, -1)
		advanceToPhase(e, PhaseAction)

		var rolls []int
		for i := 0; i < 5; i++ {
			infantry := e.GetState().Units[infantryID]
			if !infantry.IsAlive() {
				break
			}
			result := e.ExecuteAction(Action{
				Kind:         ActionAttack,
				PlayerID:     assaultID,
				UnitID:       marineID,
				TargetUnitID: &infantryID,
			})
			rolls = append(rolls, result.Log.Rolls...)
			e.GetState().Units[marineID].HasActed = false
		}

		marine := e.GetState().Units[marineID]
		infantry := e.GetState().Units[infantryID]
		return outcome{
			marineHP:             marine.CurrentHP,
			infantryHP:           infantry.CurrentHP,
			marineSuppression:    marine.SuppressionTokens,
			infantrySuppression:  infantry.SuppressionTokens,
			allRolls:             rolls,
		}
	}

	a := run()
	b := run()

	if a.marineHP != b.marineHP || a.infantryHP != b.infantryHP {
		t.Fatalf("HP mismatch: a={%d,%d} b={%d,%d}", a.marineHP, a.infantryHP, b.marineHP, b.infantryHP)
	}
	if a.marineSuppression != b.marineSuppression || a.infantrySuppression != b.infantrySuppression {
		t.Fatalf("suppression mismatch: a={%d,%d} b={%d,%d}", a.marineSuppression, a.infantrySuppression, b.marineSuppression, b.infantrySuppression)
	}
	if len(a.allRolls) != len(b.allRolls) {
		t.Fatalf("roll count mismatch: %d vs %d", len(a.allRolls), len(b.allRolls))
	}
	for i := range a.allRolls {
		if a.allRolls[i] != b.allRolls[i] {
			t.Fatalf("roll %d mismatch: %d vs %d", i, a.allRolls[i], b.allRolls[i])
		}
	}
}
