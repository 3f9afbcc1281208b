package engine

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
	"github.com/nicoberrocal/wasp-assault-engine/worldmap"
)

// validate runs the ordered rule dispatcher (spec §4.5): the first
// failing rule decides the result. Rules 1-5 are generic across every
// action kind; rule 6 (kind-specific preconditions) and rule 7 (target
// validity) are handled by per-kind checkers.
func (e *Engine) validate(a Action) *ActionError {
	gs := e.state

	// Rule 1: game not over.
	if gs.IsGameOver {
		return newActionErr(ErrGameOver, "")
	}

	// Rule 2: actor player matches activeSide.
	actor, ok := gs.Players[a.PlayerID]
	if !ok {
		return newActionErr(ErrUnitNotOwned, "unknown player")
	}
	if actor.Side != gs.ActiveSide {
		return newActionErr(ErrNotYourTurn, "")
	}

	// Rule 3: action kind legal in current phase.
	if !isLegalInPhase(gs.Phase, a.Kind) {
		return newActionErr(ErrInvalidPhase, "")
	}

	if a.Kind == ActionEndPhase {
		return nil
	}

	// Rule 4: acting unit exists, is alive, is owned by actor.
	u, ok := gs.Units[a.UnitID]
	if !ok {
		return newActionErr(ErrUnitNotFound, "")
	}
	if !u.IsAlive() {
		return newActionErr(ErrUnitNotAlive, "")
	}
	if !actor.OwnsUnit(a.UnitID) {
		return newActionErr(ErrUnitNotOwned, "")
	}

	// Rule 5: unit has not already consumed the relevant action slot.
	if a.Kind == ActionMove {
		if u.IsPinned() {
			return newActionErr(ErrUnitSuppressedPinned, "")
		}
		if u.HasMoved {
			return newActionErr(ErrUnitAlreadyMoved, "")
		}
	} else {
		if u.IsPinned() {
			return newActionErr(ErrUnitSuppressedPinned, "")
		}
		if u.HasActed {
			return newActionErr(ErrUnitAlreadyActed, "")
		}
	}

	// Rules 6-7: kind-specific preconditions and target validity.
	checker, ok := kindCheckers[a.Kind]
	if !ok {
		return newActionErr(ErrUnitTypeCannotPerform, "unrecognized action kind")
	}
	return checker(e, u, a)
}

type kindChecker func(e *Engine, u *units.Unit, a Action) *ActionError

var kindCheckers = map[ActionKind]kindChecker{
	ActionMove:            checkMove,
	ActionAttack:          checkAttack,
	ActionLoad:            checkLoad,
	ActionUnload:          checkUnload,
	ActionSpecialAbility:  checkSpecialAbility,
	ActionReveal:          checkReveal,
	ActionHide:            checkHide,
	ActionLaunchFromWasp:  checkLaunchFromWasp,
	ActionRecoverToWasp:   checkRecoverToWasp,
	ActionSecureObjective: checkSecureObjective,
}

func checkMove(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	if a.TargetHex == nil {
		return newActionErr(ErrOutOfMapBounds, "move requires a target hex")
	}
	if !gs.Map.InBounds(*a.TargetHex) {
		return newActionErr(ErrOutOfMapBounds, "")
	}
	from, onMap := hexOf(u)
	if !onMap {
		return newActionErr(ErrInvalidTerrain, "unit in cargo cannot move directly")
	}
	cost := gs.Map.MovementCost(*a.TargetHex, u.Blueprint.Categories)
	if cost == worldmap.Impassable {
		return newActionErr(ErrInvalidTerrain, "")
	}
	path := hexgrid.FindPath(from, *a.TargetHex, movementCostOracle(gs, u), u.EffectiveMovement())
	if len(path) == 0 {
		return newActionErr(ErrNoValidPath, "")
	}
	return nil
}

func checkAttack(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	if a.TargetUnitID == nil {
		return newActionErr(ErrUnitNotFound, "attack requires a target unit")
	}
	target, ok := gs.Units[*a.TargetUnitID]
	if !ok {
		return newActionErr(ErrUnitNotFound, "")
	}
	if !target.IsAlive() {
		return newActionErr(ErrTargetDestroyed, "")
	}
	if target.Blueprint.Side == u.Blueprint.Side {
		return newActionErr(ErrTargetFriendly, "")
	}
	return rangeAndLOSCheck(gs, u, target)
}

func rangeAndLOSCheck(gs *GameState, attacker, defender *units.Unit) *ActionError {
	from, ok := hexOf(attacker)
	if !ok {
		return newActionErr(ErrInvalidTerrain, "attacker has no map position")
	}
	to, ok := hexOf(defender)
	if !ok {
		return newActionErr(ErrTargetDestroyed, "target has no map position")
	}
	rangeLimit := AttackRange(attacker)
	dist := from.Distance(to)
	if dist > rangeLimit {
		return newActionErr(ErrOutOfRange, "")
	}
	if isAADefenseOnly(attacker) && !defender.Blueprint.Categories.Has(units.CategoryAircraft) && !defender.Blueprint.Categories.Has(units.CategoryHelicopter) {
		return newActionErr(ErrUnitTypeCannotPerform, "AA teams may only target air category units")
	}
	if isAirCategoryOnly(attacker) && !defender.Blueprint.Categories.Has(units.CategoryAircraft) && !defender.Blueprint.Categories.Has(units.CategoryHelicopter) {
		return newActionErr(ErrUnitTypeCannotPerform, "Anti-Aircraft Focus restricts this unit to air category targets this turn")
	}
	if IsIndirectFire(attacker) {
		if dist <= 1 {
			return newActionErr(ErrNotAdjacent, "indirect fire units cannot target an adjacent hex")
		}
		return nil
	}
	for _, h := range hexgrid.Line(from, to) {
		if h == from || h == to {
			continue
		}
		if !gs.Map.BlocksLOS(h) {
			continue
		}
		if gs.Map.SoftBlocksLOS(h) && (from.Distance(h) == 1 || to.Distance(h) == 1) {
			// Heavy Woods blocks LOS beyond it but not to a hex adjacent
			// to it (spec §4.2).
			continue
		}
		return newActionErr(ErrNoLineOfSight, "")
	}
	return nil
}

func checkLoad(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	if a.TargetUnitID == nil {
		return newActionErr(ErrUnitNotFound, "load requires a target unit")
	}
	cargoUnit, ok := gs.Units[*a.TargetUnitID]
	if !ok {
		return newActionErr(ErrUnitNotFound, "")
	}
	if !cargoUnit.IsAlive() {
		return newActionErr(ErrTargetDestroyed, "")
	}
	if cargoUnit.Blueprint.Side != u.Blueprint.Side {
		return newActionErr(ErrTargetFriendly, "cannot load an enemy unit")
	}
	if u.CargoCapacity() == 0 {
		return newActionErr(ErrUnitTypeCannotPerform, "")
	}
	if len(u.Cargo) >= u.CargoCapacity() {
		return newActionErr(ErrCapacityExceeded, "")
	}
	carrierHex, onMap := hexOf(u)
	cargoHex, cargoOnMap := hexOf(cargoUnit)
	if !onMap || !cargoOnMap {
		return newActionErr(ErrInvalidTerrain, "")
	}
	if carrierHex.Distance(cargoHex) > 1 {
		return newActionErr(ErrNotAdjacent, "")
	}
	return nil
}

func checkUnload(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	if a.TargetUnitID == nil {
		return newActionErr(ErrUnitNotFound, "unload requires a target unit")
	}
	cargoUnit, ok := gs.Units[*a.TargetUnitID]
	if !ok || !cargoUnit.IsInCargo() || *cargoUnit.InCargoOf != u.ID {
		return newActionErr(ErrUnitNotFound, "unit is not in this carrier's cargo")
	}
	if a.TargetHex == nil || !gs.Map.InBounds(*a.TargetHex) {
		return newActionErr(ErrOutOfMapBounds, "")
	}
	carrierHex, onMap := hexOf(u)
	if !onMap {
		return newActionErr(ErrInvalidTerrain, "")
	}
	if carrierHex.Distance(*a.TargetHex) > 1 {
		return newActionErr(ErrNotAdjacent, "")
	}
	if gs.Map.MovementCost(*a.TargetHex, cargoUnit.Blueprint.Categories) == worldmap.Impassable {
		return newActionErr(ErrInvalidTerrain, "")
	}
	if !gs.Map.LandingAllowed(*a.TargetHex, cargoUnit.Blueprint.Categories) {
		return newActionErr(ErrInvalidTerrain, "not a valid landing-zone hex")
	}
	return nil
}

func checkSpecialAbility(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	ab, ok := units.LookupAbility(a.AbilityName)
	if !ok {
		return newActionErr(ErrUnknownAbility, "")
	}
	if !u.Blueprint.HasAbility(ab.ID) {
		return newActionErr(ErrUnitDoesNotHaveAbility, "")
	}
	if !ab.HasCategory(u.Blueprint.Categories) {
		return newActionErr(ErrUnitTypeCannotPerform, "")
	}
	actingPlayer, _ := gs.playerOf(u.ID)
	if actingPlayer == nil || actingPlayer.CommandPoints < ab.CPCost {
		return newActionErr(ErrInsufficientCP, "")
	}
	if ab.SPCost > 0 && u.CurrentSP < ab.SPCost {
		return newActionErr(ErrInsufficientSupply, "")
	}
	switch ab.TargetShape {
	case units.TargetHex, units.TargetArea:
		if a.TargetHex == nil || !gs.Map.InBounds(*a.TargetHex) {
			return newActionErr(ErrOutOfMapBounds, "")
		}
	case units.TargetUnit:
		if a.TargetUnitID == nil {
			return newActionErr(ErrUnitNotFound, "")
		}
		if _, ok := gs.Units[*a.TargetUnitID]; !ok {
			return newActionErr(ErrUnitNotFound, "")
		}
	}
	return nil
}

func checkReveal(e *Engine, u *units.Unit, a Action) *ActionError {
	if !u.Hidden {
		return nil
	}
	return nil
}

func checkHide(e *Engine, u *units.Unit, a Action) *ActionError {
	if !u.Blueprint.Categories.CanConceal() {
		return newActionErr(ErrUnitTypeCannotPerform, "")
	}
	return nil
}

func checkLaunchFromWasp(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	if u.Blueprint.Type != units.TypeUSSWasp {
		return newActionErr(ErrUnitTypeCannotPerform, "only the USS Wasp may launch cargo")
	}
	actingPlayer, _ := gs.playerOf(u.ID)
	if actingPlayer == nil || actingPlayer.WaspStatus == nil {
		return newActionErr(ErrWaspSystemUnavailable, "")
	}
	if len(a.AircraftIDs) == 0 {
		return newActionErr(ErrNoEmbarkedAircraft, "")
	}
	// aircraftSpent/landingCraftSpent run ahead of the player's persisted
	// counters to account for every aircraft already validated earlier in
	// this same action, since validate must not mutate state (apply does
	// the actual recording). This is what makes "launching 2 aircraft in
	// one turn fails on the second" hold even when both are requested in
	// a single LaunchFromWasp action (spec §8 Scenario E).
	aircraftSpent, landingCraftSpent := 0, 0
	for _, id := range a.AircraftIDs {
		cargoUnit, ok := gs.Units[id]
		if !ok || !cargoUnit.IsInCargo() || *cargoUnit.InCargoOf != u.ID {
			return newActionErr(ErrNoEmbarkedAircraft, "")
		}
		if cargoUnit.Blueprint.Categories.Has(units.CategoryLandingCraft) || cargoUnit.Blueprint.Categories.Has(units.CategoryInfantry) || cargoUnit.Blueprint.Categories.Has(units.CategoryGroundVehicle) {
			if actingPlayer.WaspStatus.LandingCraftLaunchesThisTurn+landingCraftSpent >= actingPlayer.WaspStatus.LandingCraftLaunchBudget() {
				return newActionErr(ErrWaspSystemUnavailable, "well deck launch budget exhausted for this turn")
			}
			landingCraftSpent++
		} else {
			if actingPlayer.WaspStatus.AircraftLaunchesThisTurn+aircraftSpent >= actingPlayer.WaspStatus.AircraftLaunchBudget() {
				return newActionErr(ErrWaspSystemUnavailable, "flight deck launch budget exhausted for this turn")
			}
			aircraftSpent++
		}
	}
	if a.TargetHex != nil && !gs.Map.InBounds(*a.TargetHex) {
		return newActionErr(ErrOutOfMapBounds, "")
	}
	return nil
}

func checkRecoverToWasp(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	if u.Blueprint.Type != units.TypeUSSWasp {
		return newActionErr(ErrUnitTypeCannotPerform, "only the USS Wasp may recover cargo")
	}
	actingPlayer, _ := gs.playerOf(u.ID)
	if actingPlayer == nil || actingPlayer.WaspStatus == nil {
		return newActionErr(ErrWaspSystemUnavailable, "")
	}
	waspHex, onMap := hexOf(u)
	if !onMap {
		return newActionErr(ErrInvalidTerrain, "")
	}
	if len(a.AircraftIDs) == 0 {
		return newActionErr(ErrNoEmbarkedAircraft, "recover requires at least one unit")
	}
	for _, id := range a.AircraftIDs {
		cargoUnit, ok := gs.Units[id]
		if !ok || cargoUnit.IsInCargo() {
			return newActionErr(ErrUnitNotFound, "")
		}
		if cargoUnit.Blueprint.Side != u.Blueprint.Side {
			return newActionErr(ErrTargetFriendly, "")
		}
		unitHex, unitOnMap := hexOf(cargoUnit)
		if !unitOnMap || waspHex.Distance(unitHex) > 1 {
			return newActionErr(ErrNotAdjacent, "")
		}
		if !actingPlayer.WaspStatus.CanLaunchAircraft() && !actingPlayer.WaspStatus.CanLaunchLandingCraft() {
			return newActionErr(ErrWaspSystemUnavailable, "")
		}
	}
	if u.CargoCapacity() > 0 && len(u.Cargo)+len(a.AircraftIDs) > u.CargoCapacity() {
		return newActionErr(ErrCapacityExceeded, "")
	}
	return nil
}

func checkSecureObjective(e *Engine, u *units.Unit, a Action) *ActionError {
	gs := e.state
	uHex, onMap := hexOf(u)
	if !onMap {
		return newActionErr(ErrInvalidTerrain, "")
	}
	if _, ok := gs.Map.GetObjective(uHex); !ok {
		return newActionErr(ErrNotAdjacent, "no objective on the unit's hex")
	}
	return nil
}

