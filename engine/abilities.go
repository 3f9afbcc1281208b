package engine

import (
	"fmt"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/rng"
	"github.com/nicoberrocal/wasp-assault-engine/units"
	"github.com/nicoberrocal/wasp-assault-engine/worldmap"
)

// abilityApplier runs one special ability's effect against the already
// cost-paid, already-validated (unit, action) pair (spec §4.7: effect
// execution is dispatched by ability ID, not reimplemented per unit
// type). Each applier composes the effect primitives defined below
// (grantSelfModifier, areaDamage, suppressArea), the combat resolver,
// and the unit's own Hidden flag / Reveal method, mirroring the
// teacher's ships ability-effect dispatch. There are no separate
// launch, recovery or hidden-detection primitives.
type abilityApplier func(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog)

var abilityAppliers = map[units.AbilityID]abilityApplier{
	units.AbilityCloseAirSupport:       applyCloseAirSupport,
	units.AbilityVSTOLLanding:          applyVSTOLLanding,
	units.AbilityHeavyLift:             applyHeavyLift,
	units.AbilityAntiVehicleSpecialist: applyAntiVehicleSpecialist,
	units.AbilityAntiAircraftFocus:     applyAntiAircraftFocus,
	units.AbilityIndirectFire:          applyIndirectFire,
	units.AbilityFastAmbush:            applyFastAmbush,
	units.AbilityUrbanSpecialists:      applyUrbanSpecialists,
	units.AbilityBreachingCharge:       applyBreachingCharge,
	units.AbilityInfiltrate:            applyInfiltrate,
	units.AbilityArtilleryBarrage:      applyArtilleryBarrage,
	units.AbilitySAMStrike:             applySAMStrike,
	units.AbilityCIWS:                  applyCIWS,
	units.AbilitySeaSparrow:            applySeaSparrow,
}

// ExecuteAbility dispatches ab's effect. Cost deduction (CP/SP) already
// happened in applySpecialAbility; this only performs the effect itself
// and fills in rec's combat/message fields.
func ExecuteAbility(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	applier, ok := abilityAppliers[ab.ID]
	if !ok {
		rec.Message = fmt.Sprintf("%s has no registered effect", ab.Name)
		return
	}
	applier(e, u, ab, a, rec)
}

// grantSelfModifier marks one-turn self modifiers via the unit's
// reactive-use map, reusing it as a general per-turn flag store so the
// engine does not need a separate transient-modifier table.
func grantSelfModifier(u *units.Unit, tag string) {
	if u.ReactiveUsedThisTurn == nil {
		u.ReactiveUsedThisTurn = make(map[units.AbilityID]map[string]bool)
	}
	if u.ReactiveUsedThisTurn["selfModifier"] == nil {
		u.ReactiveUsedThisTurn["selfModifier"] = make(map[string]bool)
	}
	u.ReactiveUsedThisTurn["selfModifier"][tag] = true
}

// hasSelfModifier reports whether tag was granted this turn.
func hasSelfModifier(u *units.Unit, tag string) bool {
	if u.ReactiveUsedThisTurn == nil {
		return false
	}
	m, ok := u.ReactiveUsedThisTurn["selfModifier"]
	return ok && m[tag]
}

// areaDamage resolves one attack roll per enemy unit within radius hexes
// of center, applying dice equal to attacker's effective attack against
// each, with no flanking/ambush bonus (area strikes are blunt instruments,
// spec §4.7 Close Air Support / Artillery Barrage / SAM Strike).
func areaDamage(e *Engine, attacker *units.Unit, center hexgrid.Hex, radius int, rec *ActionLog) {
	gs := e.state
	dice := attacker.EffectiveAttack()
	var totalHits, totalDamage int
	var allRolls []int
	for _, h := range center.Range(radius) {
		target, ok := gs.unitAt(h)
		if !ok || target.Blueprint.Side == attacker.Blueprint.Side || !target.IsAlive() {
			continue
		}
		threshold := target.Blueprint.Stats.Defense + coverBonus(gs, target)
		rolls := gs.RNG.RollDice(dice)
		hits := rng.CountHits(rolls, threshold)
		allRolls = append(allRolls, rolls...)
		totalHits += hits
		totalDamage += hits
		target.TakeDamage(hits)
	}
	rec.Rolls = allRolls
	rec.Hits = totalHits
	rec.Damage = totalDamage
	rec.Message = fmt.Sprintf("area strike: %d hits across radius %d", totalHits, radius)
}

// suppressArea adds one suppression token (capped) to every enemy unit
// within radius hexes of center, without rolling or dealing damage (spec
// §4.7 Artillery Barrage's suppressive-fire component).
func suppressArea(e *Engine, side units.Side, center hexgrid.Hex, radius int) int {
	gs := e.state
	affected := 0
	for _, h := range center.Range(radius) {
		target, ok := gs.unitAt(h)
		if !ok || target.Blueprint.Side == side {
			continue
		}
		if target.SuppressionTokens < units.MaxSuppression {
			target.SuppressionTokens++
		}
		affected++
	}
	return affected
}

func applyCloseAirSupport(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	if a.TargetHex == nil {
		rec.Message = "close air support requires a target hex"
		return
	}
	areaDamage(e, u, *a.TargetHex, ab.Radius, rec)
}

func applyVSTOLLanding(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	if a.TargetHex == nil {
		rec.Message = "V/STOL landing requires a target hex"
		return
	}
	pos := toUnitsPosition(*a.TargetHex)
	u.Position = &pos
	u.HasMoved = true
	rec.Message = "landed vertically, bypassing landing-zone restrictions"
}

func applyHeavyLift(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	grantSelfModifier(u, "heavyLiftCapacity")
	rec.Message = "cargo capacity doubled for the next load"
}

// heavyLiftCapacity returns the effective cargo capacity for u, doubling
// the base constant if Heavy Lift was granted this turn.
func heavyLiftCapacity(u *units.Unit) int {
	base := u.CargoCapacity()
	if hasSelfModifier(u, "heavyLiftCapacity") {
		return base * 2
	}
	return base
}

func applyAntiVehicleSpecialist(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	if a.TargetUnitID == nil {
		rec.Message = "anti-vehicle specialist requires a target unit"
		return
	}
	target, ok := gs.Units[*a.TargetUnitID]
	if !ok || !target.IsAlive() {
		rec.Message = "target unavailable"
		return
	}
	if !target.Blueprint.Categories.Has(units.CategoryGroundVehicle) {
		rec.Message = "target is not a ground vehicle"
		return
	}
	outcome := resolveBonusDiceAttack(gs, u, target, 2, false)
	fillCombatLog(rec, outcome)
}

func applyAntiAircraftFocus(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	grantSelfModifier(u, "airOnlyFocus")
	rec.Message = "restricted to air-category targets this turn"
}

func applyIndirectFire(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	if a.TargetHex == nil {
		rec.Message = "indirect fire requires a target hex"
		return
	}
	target, ok := gs.unitAt(*a.TargetHex)
	if !ok || target.Blueprint.Side == u.Blueprint.Side {
		rec.Message = "no enemy unit at target hex"
		return
	}
	outcome := ResolveCombat(gs, u, target, false)
	fillCombatLog(rec, outcome)
}

func applyFastAmbush(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	if a.TargetUnitID == nil {
		rec.Message = "fast ambush requires a target unit"
		return
	}
	target, ok := gs.Units[*a.TargetUnitID]
	if !ok || !target.IsAlive() {
		rec.Message = "target unavailable"
		return
	}
	wasHidden := u.Hidden
	if wasHidden {
		u.Reveal()
	}
	outcome := ResolveCombat(gs, u, target, wasHidden)
	fillCombatLog(rec, outcome)
	if wasHidden {
		u.HasMoved = false
		rec.Message += "; free move granted"
	}
}

func applyUrbanSpecialists(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	if a.TargetUnitID == nil {
		rec.Message = "urban specialists requires a target unit"
		return
	}
	target, ok := gs.Units[*a.TargetUnitID]
	if !ok || !target.IsAlive() {
		rec.Message = "target unavailable"
		return
	}
	bonus := 0
	if h, ok := hexOf(target); ok && gs.Map.GetTerrain(h) == worldmap.Urban {
		bonus = 1
	}
	outcome := resolveBonusDiceAttack(gs, u, target, bonus, false)
	fillCombatLog(rec, outcome)
}

func applyBreachingCharge(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	if a.TargetHex == nil {
		rec.Message = "breaching charge requires a target hex"
		return
	}
	forts := gs.Map.Fortifications(*a.TargetHex)
	if len(forts) == 0 {
		rec.Message = "no fortification to remove"
		return
	}
	gs.Map.RemoveFortification(*a.TargetHex, forts[0])
	rec.Message = fmt.Sprintf("removed fortification %q", forts[0])
}

func applyInfiltrate(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	u.Hidden = true
	rec.Message = "deployed hidden"
}

func applyArtilleryBarrage(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	if a.TargetHex == nil {
		rec.Message = "artillery barrage requires a target hex"
		return
	}
	areaDamage(e, u, *a.TargetHex, ab.Radius, rec)
	affected := suppressArea(e, u.Blueprint.Side, *a.TargetHex, ab.Radius)
	rec.Message = fmt.Sprintf("%s; %d units suppressed", rec.Message, affected)
}

func applySAMStrike(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	if a.TargetHex == nil {
		rec.Message = "SAM strike requires a target hex"
		return
	}
	areaDamage(e, u, *a.TargetHex, ab.Radius, rec)
}

func applyCIWS(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	actingPlayer, _ := gs.playerOf(u.ID)
	if actingPlayer == nil || actingPlayer.WaspStatus == nil {
		rec.Message = "no shipboard defensive system available"
		return
	}
	if !actingPlayer.WaspStatus.SpendDefensiveAmmo() {
		rec.Message = "defensive ammo depleted"
		return
	}
	rolls := gs.RNG.RollDice(2)
	negated := rng.CountHits(rolls, 5)
	rec.Rolls = rolls
	rec.Hits = negated
	rec.Message = fmt.Sprintf("CIWS negated %d incoming hit(s)", negated)
}

func applySeaSparrow(e *Engine, u *units.Unit, ab units.Ability, a Action, rec *ActionLog) {
	gs := e.state
	if a.TargetUnitID == nil {
		rec.Message = "sea sparrow requires a target unit"
		return
	}
	target, ok := gs.Units[*a.TargetUnitID]
	if !ok || !target.IsAlive() {
		rec.Message = "target unavailable"
		return
	}
	if !target.Blueprint.Categories.Has(units.CategoryAircraft) {
		rec.Message = "sea sparrow may only target aircraft"
		return
	}
	outcome := resolveFixedDiceAttack(gs, u, target, 2)
	fillCombatLog(rec, outcome)
}

// resolveBonusDiceAttack resolves a standard attack roll with bonus
// added on top of the attacker's effective attack dice (e.g. Anti-Vehicle
// Specialist's "+2 attack dice").
func resolveBonusDiceAttack(gs *GameState, attacker, defender *units.Unit, bonus int, ambush bool) CombatOutcome {
	saved := attacker.Blueprint.Stats.Attack
	attacker.Blueprint.Stats.Attack += bonus
	outcome := ResolveCombat(gs, attacker, defender, ambush)
	attacker.Blueprint.Stats.Attack = saved
	return outcome
}

// resolveFixedDiceAttack rolls exactly n dice regardless of the
// attacker's normal effective attack (Sea Sparrow's "2 attack dice").
func resolveFixedDiceAttack(gs *GameState, attacker, defender *units.Unit, n int) CombatOutcome {
	threshold := defender.Blueprint.Stats.Defense + coverBonus(gs, defender)
	rolls := gs.RNG.RollDice(n)
	hits := rng.CountHits(rolls, threshold)
	tokensBefore := defender.SuppressionTokens
	defender.TakeDamage(hits)
	suppressionDelta := defender.SuppressionTokens - tokensBefore
	attacker.HasActed = true
	return CombatOutcome{
		Rolls:            rolls,
		Hits:             hits,
		Damage:           hits,
		SuppressionDelta: suppressionDelta,
		Destroyed:        !defender.IsAlive(),
	}
}

func fillCombatLog(rec *ActionLog, outcome CombatOutcome) {
	rec.Rolls = outcome.Rolls
	rec.Hits = outcome.Hits
	rec.Damage = outcome.Damage
	rec.SuppressionDelta = outcome.SuppressionDelta
	rec.Destroyed = outcome.Destroyed
	rec.Message = fmt.Sprintf("%d hits, %d damage", outcome.Hits, outcome.Damage)
}
