package engine

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/players"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

func waspBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeUSSWasp,
		Stats:      units.Stats{Movement: 2, Attack: 0, Defense: 3, HP: 10},
		Categories: units.NewCategorySet(units.CategoryShip),
	}
}

func harrierCargoBlueprint() units.Blueprint {
	return units.Blueprint{
		Type:       units.TypeHarrier,
		Stats:      units.Stats{Movement: 6, Attack: 3, Defense: 1, HP: 2},
		Categories: units.NewCategorySet(units.CategoryAircraft),
	}
}

// TestFlightDeckStepsDownAtFourDamage covers the degradation table: the
// Flight Deck is Operational up to 3 cumulative damage and steps down to
// Limited at 4, halving its per-turn launch budget from 2 to 1.
func TestFlightDeckStepsDownAtFourDamage(t *testing.T) {
	wasp := players.NewWaspSystemStatus(4)
	wasp.ApplyDamage(3)
	if wasp.FlightDeck() != players.SystemOperational {
		t.Fatalf("FlightDeck at 3 damage = %v, want Operational", wasp.FlightDeck())
	}
	if wasp.AircraftLaunchBudget() != 2 {
		t.Fatalf("Operational launch budget = %d, want 2", wasp.AircraftLaunchBudget())
	}
	wasp.ApplyDamage(1)
	if wasp.FlightDeck() != players.SystemLimited {
		t.Fatalf("FlightDeck at 4 damage = %v, want Limited", wasp.FlightDeck())
	}
	if wasp.AircraftLaunchBudget() != 1 {
		t.Fatalf("Limited launch budget = %d, want 1", wasp.AircraftLaunchBudget())
	}
}

// TestLaunchFromWaspFailsOnSecondAircraftWhenLimited implements spec §8
// Scenario E verbatim: at 4 cumulative damage the Flight Deck is Limited
// (budget 1), so launching 2 aircraft in the same turn succeeds on the
// first and fails on the second with ErrWaspSystemUnavailable — whether
// the two launches are requested as one action or two.
func TestLaunchFromWaspFailsOnSecondAircraftWhenLimited(t *testing.T) {
	e, assaultID, _ := newTestEngine(6, 6, 1)
	waspID := addUnit(e, units.SideAssault, waspBlueprint(), 0, 0, 0)
	harrier1 := addUnit(e, units.SideAssault, harrierCargoBlueprint(), 0, 0, 0)
	harrier2 := addUnit(e, units.SideAssault, harrierCargoBlueprint(), 0, 0, 0)

	gs := e.GetState()
	wasp := gs.Units[waspID]
	h1 := gs.Units[harrier1]
	h2 := gs.Units[harrier2]
	if err := wasp.Load(h1); err != nil {
		t.Fatalf("failed to stage harrier1 in cargo: %v", err)
	}
	if err := wasp.Load(h2); err != nil {
		t.Fatalf("failed to stage harrier2 in cargo: %v", err)
	}

	p, _ := e.GetPlayer(assaultID)
	p.WaspStatus.ApplyDamage(4)
	if p.WaspStatus.FlightDeck() != players.SystemLimited {
		t.Fatalf("flight deck = %v, want Limited", p.WaspStatus.FlightDeck())
	}

	advanceToPhase(e, PhaseAction)

	dest := hexgrid.Hex{Q: 0, R: 0, S: 0}
	result := e.ExecuteAction(Action{
		Kind:        ActionLaunchFromWasp,
		PlayerID:    assaultID,
		UnitID:      waspID,
		AircraftIDs: []bson.ObjectID{h1.ID, h2.ID},
		TargetHex:   &dest,
	})
	if result.Success {
		t.Fatalf("expected the second aircraft in the same action to exceed the Limited budget")
	}
	if result.Err == nil || result.Err.Kind != ErrWaspSystemUnavailable {
		t.Fatalf("expected ErrWaspSystemUnavailable, got %v", result.Err)
	}

	// Neither aircraft should have launched: validation fails before apply
	// runs for the whole action (engine's atomic-per-action invariant).
	if !h1.IsInCargo() || !h2.IsInCargo() {
		t.Fatalf("launch should not have partially applied")
	}

	// A single aircraft, within budget, does succeed.
	solo := e.ExecuteAction(Action{
		Kind:        ActionLaunchFromWasp,
		PlayerID:    assaultID,
		UnitID:      waspID,
		AircraftIDs: []bson.ObjectID{h1.ID},
		TargetHex:   &dest,
	})
	if !solo.Success {
		t.Fatalf("expected the first aircraft alone to stay within the Limited budget: %v", solo.Err)
	}

	// A second, separate LaunchFromWasp action this same turn now exceeds
	// the already-spent budget.
	wasp.HasActed = false
	second := e.ExecuteAction(Action{
		Kind:        ActionLaunchFromWasp,
		PlayerID:    assaultID,
		UnitID:      waspID,
		AircraftIDs: []bson.ObjectID{h2.ID},
		TargetHex:   &dest,
	})
	if second.Success {
		t.Fatalf("expected a second separate launch action to fail once the turn's budget is spent")
	}
	if second.Err == nil || second.Err.Kind != ErrWaspSystemUnavailable {
		t.Fatalf("expected ErrWaspSystemUnavailable, got %v", second.Err)
	}
}

// TestLaunchFromWaspFailsWhenFlightDeckOffline covers the fully degraded
// case: once the flight deck falls to Offline (8+ cumulative damage),
// the launch budget is zero and any LaunchFromWasp action is rejected.
func TestLaunchFromWaspFailsWhenFlightDeckOffline(t *testing.T) {
	e, assaultID, _ := newTestEngine(6, 6, 1)
	waspID := addUnit(e, units.SideAssault, waspBlueprint(), 0, 0, 0)
	harrier1 := addUnit(e, units.SideAssault, harrierCargoBlueprint(), 0, 0, 0)
	harrier2 := addUnit(e, units.SideAssault, harrierCargoBlueprint(), 0, 0, 0)

	gs := e.GetState()
	wasp := gs.Units[waspID]
	h1 := gs.Units[harrier1]
	h2 := gs.Units[harrier2]
	if err := wasp.Load(h1); err != nil {
		t.Fatalf("failed to stage harrier1 in cargo: %v", err)
	}
	if err := wasp.Load(h2); err != nil {
		t.Fatalf("failed to stage harrier2 in cargo: %v", err)
	}

	p, _ := e.GetPlayer(assaultID)
	p.WaspStatus.ApplyDamage(8)
	if p.WaspStatus.FlightDeck() != players.SystemOffline {
		t.Fatalf("flight deck = %v, want Offline", p.WaspStatus.FlightDeck())
	}

	advanceToPhase(e, PhaseAction)

	dest := hexgrid.Hex{Q: 0, R: 0, S: 0}
	result := e.ExecuteAction(Action{
		Kind:        ActionLaunchFromWasp,
		PlayerID:    assaultID,
		UnitID:      waspID,
		AircraftIDs: []bson.ObjectID{h1.ID, h2.ID},
		TargetHex:   &dest,
	})
	if result.Success {
		t.Fatalf("expected launch to fail with the flight deck offline")
	}
	if result.Err == nil || result.Err.Kind != ErrWaspSystemUnavailable {
		t.Fatalf("expected ErrWaspSystemUnavailable, got %v", result.Err)
	}
}
