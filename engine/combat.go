package engine

import (
	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/rng"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// AttackRange resolves the effective attack range for u (spec §4.6
// step 2).
func AttackRange(u *units.Unit) int {
	return units.EffectiveRange(u.Blueprint.Stats, u.Blueprint.Categories)
}

// IsIndirectFire reports whether u's attacks ignore line of sight (spec
// §4.6 step 3: "unless attacker category is indirect (mortar, long-range
// artillery)").
func IsIndirectFire(u *units.Unit) bool {
	switch u.Blueprint.Type {
	case units.TypeMortarTeam, units.TypeArtillery:
		return true
	default:
		return false
	}
}

// isAADefenseOnly reports whether u's basic attack is restricted to the
// air category (spec §4.6 step 2: "AA 3 but only vs air category").
func isAADefenseOnly(u *units.Unit) bool {
	return u.Blueprint.Type == units.TypeAATeam
}

// movementCostOracle adapts worldmap.Map.MovementCost to hexgrid's
// CostOracle signature for a specific moving unit.
func movementCostOracle(gs *GameState, u *units.Unit) hexgrid.CostOracle {
	return func(dst hexgrid.Hex) int {
		if !gs.Map.InBounds(dst) {
			return hexgrid.Unreachable
		}
		cost := gs.Map.MovementCost(dst, u.Blueprint.Categories)
		if cost < 0 {
			return hexgrid.Unreachable
		}
		if occupant, ok := gs.unitAt(dst); ok && occupant.ID != u.ID && occupant.IsAlive() {
			return hexgrid.Unreachable
		}
		return cost
	}
}

// unitAt returns the alive unit occupying hex h, if any.
func (gs *GameState) unitAt(h hexgrid.Hex) (*units.Unit, bool) {
	for _, u := range gs.Units {
		if !u.IsAlive() {
			continue
		}
		if uh, ok := hexOf(u); ok && uh == h {
			return u, true
		}
	}
	return nil, false
}

// isFlanking approximates flanking (spec §9 open question, engine
// approximation): attacker is adjacent to defender and defender has
// another adjacent enemy besides attacker.
func isFlanking(gs *GameState, attacker, defender *units.Unit) bool {
	attackerHex, ok := hexOf(attacker)
	if !ok {
		return false
	}
	defenderHex, ok := hexOf(defender)
	if !ok {
		return false
	}
	if attackerHex.Distance(defenderHex) != 1 {
		return false
	}
	for _, n := range defenderHex.Neighbors() {
		if n == attackerHex {
			continue
		}
		if occupant, ok := gs.unitAt(n); ok && occupant.Blueprint.Side == attacker.Blueprint.Side {
			return true
		}
	}
	return false
}

// coverBonus returns the terrain defense bonus the defender's hex
// grants (spec §4.6 step 4: "+2 defense if heavy cover, +1 if light
// cover" — modeled directly via the terrain's DefenseBonus).
func coverBonus(gs *GameState, defender *units.Unit) int {
	h, ok := hexOf(defender)
	if !ok {
		return 0
	}
	return gs.Map.DefenseBonus(h)
}

// CombatOutcome is the structured result of resolving one attack (spec
// §4.6 step 8).
type CombatOutcome struct {
	Rolls            []int
	ModifiersApplied []string
	Hits             int
	Damage           int
	SuppressionDelta int
	Destroyed        bool
}

// ResolveCombat applies spec §4.6 steps 1-8 for one Attack action.
// ambush is true when the attacker was hidden and reveals as part of
// this attack (spec's "Fast Ambush"-style bonus).
func ResolveCombat(gs *GameState, attacker, defender *units.Unit, ambush bool) CombatOutcome {
	dice := attacker.EffectiveAttack()
	var mods []string

	if isFlanking(gs, attacker, defender) {
		dice++
		mods = append(mods, "flanking")
	}
	if ambush {
		dice++
		mods = append(mods, "ambush")
	}
	if dice < 0 {
		dice = 0
	}

	threshold := defender.Blueprint.Stats.Defense + coverBonus(gs, defender)

	rolls := gs.RNG.RollDice(dice)
	hits := rng.CountHits(rolls, threshold)

	damage := hits
	tokensBefore := defender.SuppressionTokens
	defender.TakeDamage(damage)
	suppressionDelta := defender.SuppressionTokens - tokensBefore

	attacker.HasActed = true
	if attacker.Blueprint.Stats.TracksSupply() && attacker.CurrentSP > 0 {
		attacker.CurrentSP--
	}

	return CombatOutcome{
		Rolls:            rolls,
		ModifiersApplied: mods,
		Hits:             hits,
		Damage:           damage,
		SuppressionDelta: suppressionDelta,
		Destroyed:        !defender.IsAlive(),
	}
}
