package players

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/units"
)

func TestGenerateCommandPointsDefenderConstant(t *testing.T) {
	p := NewPlayer(bson.NewObjectID(), units.SideDefender, nil)
	if got := p.GenerateCommandPoints(); got != 2 {
		t.Fatalf("defender CP generation = %d, want 2", got)
	}
	if p.CommandPoints != 2 {
		t.Fatalf("player CommandPoints = %d, want 2", p.CommandPoints)
	}
}

func TestGenerateCommandPointsAssaultScalesWithC2(t *testing.T) {
	wasp := NewWaspSystemStatus(4)
	p := NewPlayer(bson.NewObjectID(), units.SideAssault, &wasp)

	if got := p.GenerateCommandPoints(); got != 3 {
		t.Fatalf("operational C2 CP = %d, want 3", got)
	}
	p.DiscardOverflowCP()

	p.WaspStatus.ApplyDamage(6) // damage=6 -> C2 Limited
	if p.WaspStatus.C2() != SystemLimited {
		t.Fatalf("C2 status = %v, want Limited", p.WaspStatus.C2())
	}
	if got := p.GenerateCommandPoints(); got != 2 {
		t.Fatalf("limited C2 CP = %d, want 2", got)
	}
	p.DiscardOverflowCP()

	p.WaspStatus.ApplyDamage(10) // structural HP floors at 0 (total damage 10) -> destroyed, C2 offline/destroyed
	if got := p.GenerateCommandPoints(); got != 0 {
		t.Fatalf("destroyed C2 CP = %d, want 0", got)
	}
}

func TestSpendCommandPointsInsufficientFails(t *testing.T) {
	p := NewPlayer(bson.NewObjectID(), units.SideDefender, nil)
	p.CommandPoints = 1
	if p.SpendCommandPoints(2) {
		t.Fatalf("spending more CP than available should fail")
	}
	if p.CommandPoints != 1 {
		t.Fatalf("CP should be unchanged after failed spend")
	}
	if !p.SpendCommandPoints(1) {
		t.Fatalf("spending exactly the available CP should succeed")
	}
	if p.CommandPoints != 0 {
		t.Fatalf("CP = %d, want 0", p.CommandPoints)
	}
}

func TestObjectiveOwnershipAddRemoveIsIdempotent(t *testing.T) {
	p := NewPlayer(bson.NewObjectID(), units.SideAssault, nil)
	oid := bson.NewObjectID()
	p.AddObjective(oid)
	p.AddObjective(oid)
	if len(p.ObjectiveIDs) != 1 {
		t.Fatalf("AddObjective should be idempotent, got %d entries", len(p.ObjectiveIDs))
	}
	p.RemoveObjective(oid)
	if len(p.ObjectiveIDs) != 0 {
		t.Fatalf("objective should be removed")
	}
}

func TestWaspSystemStatusDamageThresholds(t *testing.T) {
	cases := []struct {
		damage     int
		flightDeck SystemStatus
		wellDeck   SystemStatus
		c2         SystemStatus
	}{
		{0, SystemOperational, SystemOperational, SystemOperational},
		{4, SystemLimited, SystemOperational, SystemOperational},
		{6, SystemDamaged, SystemLimited, SystemLimited},
		{8, SystemOffline, SystemDamaged, SystemLimited},
		{10, SystemDestroyed, SystemDestroyed, SystemDestroyed},
	}
	for _, c := range cases {
		w := NewWaspSystemStatus(0)
		w.ApplyDamage(c.damage)
		if got := w.FlightDeck(); got != c.flightDeck {
			t.Errorf("damage=%d FlightDeck = %v, want %v", c.damage, got, c.flightDeck)
		}
		if got := w.WellDeck(); got != c.wellDeck {
			t.Errorf("damage=%d WellDeck = %v, want %v", c.damage, got, c.wellDeck)
		}
		if got := w.C2(); got != c.c2 {
			t.Errorf("damage=%d C2 = %v, want %v", c.damage, got, c.c2)
		}
	}
}

func TestSpendDefensiveAmmoExhausts(t *testing.T) {
	w := NewWaspSystemStatus(1)
	if !w.SpendDefensiveAmmo() {
		t.Fatalf("first CIWS round should succeed")
	}
	if w.SpendDefensiveAmmo() {
		t.Fatalf("second CIWS round should fail, ammo exhausted")
	}
}
