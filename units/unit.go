package units

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Side is one of the two closed factions in the scenario (spec §3
// Player).
type Side string

const (
	SideAssault  Side = "assault"
	SideDefender Side = "defender"
)

// MaxSuppression is the suppression-token cap (spec §3: "0 ≤
// suppressionTokens ≤ 2").
const MaxSuppression = 2

// Blueprint is the immutable, type-level description of a unit (spec §3
// Unit, immutable fields), grounded on the teacher's split between
// ships.Ship (blueprint) and ships.ShipStack (mutable runtime state).
type Blueprint struct {
	Type            UnitType    `bson:"type" json:"type"`
	Side            Side        `bson:"side" json:"side"`
	Stats           Stats       `bson:"stats" json:"stats"`
	Categories      CategorySet `bson:"categories" json:"categories"`
	SpecialAbilities []AbilityID `bson:"specialAbilities" json:"specialAbilities"`
}

// Abilities resolves the blueprint's special-ability IDs to their full
// catalog entries, skipping any name absent from AbilitiesCatalog.
func (b Blueprint) Abilities() []Ability {
	out := make([]Ability, 0, len(b.SpecialAbilities))
	for _, id := range b.SpecialAbilities {
		if ab, ok := AbilitiesCatalog[id]; ok {
			out = append(out, ab)
		}
	}
	return out
}

// HasAbility reports whether the blueprint lists id among its special
// abilities, matching case-insensitively (spec §4.7).
func (b Blueprint) HasAbility(id AbilityID) bool {
	for _, a := range b.SpecialAbilities {
		if strings.EqualFold(string(a), string(id)) {
			return true
		}
		if ab, ok := LookupAbility(string(id)); ok && string(a) == string(ab.ID) {
			return true
		}
	}
	return false
}

// Unit is one live unit instance: an immutable Blueprint plus the
// mutable runtime state spec §3 names (position, HP, suppression,
// moved/acted, hidden, cargo). Units held in cargo have Position unset
// and InCargoOf pointing at their carrier — "a unit in cargo is not on
// the map" (spec §3 invariant).
type Unit struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Blueprint Blueprint     `bson:"blueprint" json:"blueprint"`

	CurrentHP         int             `bson:"currentHP" json:"currentHP"`
	CurrentSP         int             `bson:"currentSP" json:"currentSP"`
	SuppressionTokens int             `bson:"suppressionTokens" json:"suppressionTokens"`
	HasMoved          bool            `bson:"hasMoved" json:"hasMoved"`
	HasActed          bool            `bson:"hasActed" json:"hasActed"`
	AttackedThisTurn  bool            `bson:"attackedThisTurn" json:"attackedThisTurn"`
	Hidden            bool            `bson:"hidden" json:"hidden"`
	Destroyed         bool            `bson:"destroyed" json:"destroyed"`

	Position  *Position       `bson:"position,omitempty" json:"position,omitempty"`
	Cargo     []bson.ObjectID `bson:"cargo,omitempty" json:"cargo,omitempty"`
	InCargoOf *bson.ObjectID  `bson:"inCargoOf,omitempty" json:"inCargoOf,omitempty"`

	// ReactiveUsedThisTurn is a per-turn flag store keyed by ability ID.
	// The engine's grantSelfModifier keeps one-turn self modifiers in it
	// (e.g. Anti-Aircraft Focus); ResetTurnState clears it. CIWS/RAM use
	// is not tracked here.
	ReactiveUsedThisTurn map[AbilityID]map[string]bool `bson:"reactiveUsedThisTurn,omitempty" json:"-"`

	// LastSuppressionDecayTurn records the GameState.Turn at which
	// ResetTurnState last decayed a suppression token, guarding the
	// idempotence invariant independent of HasActed (spec §8).
	LastSuppressionDecayTurn int `bson:"lastSuppressionDecayTurn" json:"lastSuppressionDecayTurn"`
}

// Position is a plain (q,r,s) triple mirrored from hexgrid.Hex so the
// units package does not need to import hexgrid; engine/worldmap
// convert between the two by field, not by import.
type Position struct {
	Q, R, S int
}

// NewUnit constructs a fresh Unit from a blueprint at full HP/SP, with no
// suppression and no turn flags set.
func NewUnit(id bson.ObjectID, bp Blueprint) *Unit {
	return &Unit{
		ID:        id,
		Blueprint: bp,
		CurrentHP: bp.Stats.HP,
		CurrentSP: bp.Stats.SupplyPoints,
	}
}

// IsAlive reports whether the unit has not been destroyed.
func (u *Unit) IsAlive() bool {
	return !u.Destroyed && u.CurrentHP > 0
}

// IsPinned reports whether the unit is at the suppression cap (spec §3:
// "suppression=2 ⇒ cannot act").
func (u *Unit) IsPinned() bool {
	return u.SuppressionTokens >= MaxSuppression
}

// IsInCargo reports whether the unit is currently stowed in a carrier.
func (u *Unit) IsInCargo() bool {
	return u.InCargoOf != nil
}

// EffectiveAttack returns stats.Attack minus the suppression penalty
// (spec §4.3), floored at zero.
func (u *Unit) EffectiveAttack() int {
	v := u.Blueprint.Stats.Attack - u.SuppressionTokens
	if v < 0 {
		return 0
	}
	return v
}

// EffectiveMovement returns stats.Movement minus the suppression
// penalty, zero if pinned (spec §4.3).
func (u *Unit) EffectiveMovement() int {
	if u.IsPinned() {
		return 0
	}
	v := u.Blueprint.Stats.Movement - u.SuppressionTokens
	if v < 0 {
		return 0
	}
	return v
}

// CanAct reports whether the unit may take an Action-phase action (spec
// §4.3: "!hasActed ∧ !pinned ∧ alive").
func (u *Unit) CanAct() bool {
	return u.IsAlive() && !u.HasActed && !u.IsPinned()
}

// CanMove reports whether the unit may take a Move action (spec §4.3:
// "!hasMoved ∧ !pinned ∧ alive").
func (u *Unit) CanMove() bool {
	return u.IsAlive() && !u.HasMoved && !u.IsPinned()
}

// CargoCapacity returns this unit type's cargo slot count.
func (u *Unit) CargoCapacity() int {
	return CargoCapacity[u.Blueprint.Type]
}
