package engine

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// ExecuteAction is the engine's only state-mutating entry point besides
// AdvancePhase (spec §6: "executeAction(action) → {success, message,
// log: ActionLog} — the only way to change state"). Validation and
// application are separate passes; once validate succeeds, apply cannot
// fail on the same grounds, so the action is effectively atomic (spec
// §4.5: "Application is atomic per action").
func (e *Engine) ExecuteAction(a Action) ActionResult {
	gs := e.state
	cpBefore := e.commandPointsOf(a.PlayerID)

	if err := e.validate(a); err != nil {
		return ActionResult{Success: false, Message: err.Error(), Err: err}
	}

	rec := ActionLog{
		Turn:         gs.Turn,
		Phase:        gs.Phase,
		ActingPlayer: a.PlayerID,
		ActionKind:   a.Kind,
		ActingUnit:   a.UnitID,
		CPBefore:     cpBefore,
	}
	if a.TargetUnitID != nil {
		rec.TargetUnit = a.TargetUnitID
	}
	if a.TargetHex != nil {
		rec.TargetHex = &[3]int{a.TargetHex.Q, a.TargetHex.R, a.TargetHex.S}
	}

	applier := kindAppliers[a.Kind]
	if applier == nil {
		err := newActionErr(ErrUnitTypeCannotPerform, "unrecognized action kind")
		return ActionResult{Success: false, Message: err.Error(), Err: err}
	}
	applier(e, a, &rec)

	rec.CPAfter = e.commandPointsOf(a.PlayerID)
	gs.Log = append(gs.Log, rec)
	e.checkGameOver()

	return ActionResult{Success: true, Message: rec.Message, Log: rec}
}

func (e *Engine) commandPointsOf(playerID bson.ObjectID) int {
	if p, ok := e.state.Players[playerID]; ok {
		return p.CommandPoints
	}
	return 0
}

type kindApplier func(e *Engine, a Action, rec *ActionLog)

var kindAppliers = map[ActionKind]kindApplier{
	ActionMove:            applyMove,
	ActionAttack:          applyAttack,
	ActionLoad:            applyLoad,
	ActionUnload:          applyUnload,
	ActionSpecialAbility:  applySpecialAbility,
	ActionReveal:          applyReveal,
	ActionHide:            applyHide,
	ActionLaunchFromWasp:  applyLaunchFromWasp,
	ActionRecoverToWasp:   applyRecoverToWasp,
	ActionSecureObjective: applySecureObjective,
	ActionEndPhase:        applyEndPhase,
}

func applyMove(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	u := gs.Units[a.UnitID]
	from, _ := hexOf(u)
	path := hexgrid.FindPath(from, *a.TargetHex, movementCostOracle(gs, u), u.EffectiveMovement())
	pos := toUnitsPosition(*a.TargetHex)
	u.Position = &pos
	u.HasMoved = true
	rec.Message = fmt.Sprintf("moved via %d-hex path", len(path))
}

func applyAttack(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	attacker := gs.Units[a.UnitID]
	defender := gs.Units[*a.TargetUnitID]
	ambush := attacker.Hidden
	if ambush {
		attacker.Reveal()
	}
	outcome := ResolveCombat(gs, attacker, defender, ambush)
	attacker.AttackedThisTurn = true
	rec.Rolls = outcome.Rolls
	rec.Hits = outcome.Hits
	rec.Damage = outcome.Damage
	rec.SuppressionDelta = outcome.SuppressionDelta
	rec.Destroyed = outcome.Destroyed
	rec.Message = fmt.Sprintf("%d hits, %d damage", outcome.Hits, outcome.Damage)
}

func applyLoad(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	carrier := gs.Units[a.UnitID]
	cargo := gs.Units[*a.TargetUnitID]
	if err := carrier.Load(cargo); err != nil {
		rec.Message = err.Error()
		return
	}
	carrier.HasActed = true
	rec.Message = "loaded"
}

func applyUnload(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	carrier := gs.Units[a.UnitID]
	cargo := gs.Units[*a.TargetUnitID]
	if err := carrier.Unload(cargo, toUnitsPosition(*a.TargetHex)); err != nil {
		rec.Message = err.Error()
		return
	}
	carrier.HasActed = true
	rec.Message = "unloaded"
}

func applySpecialAbility(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	u := gs.Units[a.UnitID]
	ab, _ := units.LookupAbility(a.AbilityName)
	actingPlayer, _ := gs.playerOf(u.ID)
	if actingPlayer != nil {
		actingPlayer.SpendCommandPoints(ab.CPCost)
	}
	if ab.SPCost > 0 {
		u.CurrentSP -= ab.SPCost
	}
	rec.AbilityName = ab.Name
	ExecuteAbility(e, u, ab, a, rec)
	u.HasActed = true
}

func applyReveal(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	u := gs.Units[a.UnitID]
	u.Reveal()
	u.HasActed = true
	rec.Message = "revealed"
}

func applyHide(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	u := gs.Units[a.UnitID]
	if err := u.Hide(); err != nil {
		rec.Message = err.Error()
		return
	}
	u.HasActed = true
	rec.Message = "hidden"
}

func applyLaunchFromWasp(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	wasp := gs.Units[a.UnitID]
	actingPlayer, _ := gs.playerOf(wasp.ID)
	launched := 0
	for _, id := range a.AircraftIDs {
		cargoUnit := gs.Units[id]
		pos := *a.TargetHex
		if err := wasp.Unload(cargoUnit, toUnitsPosition(pos)); err != nil {
			continue
		}
		launched++
		if actingPlayer != nil && actingPlayer.WaspStatus != nil {
			if cargoUnit.Blueprint.Categories.Has(units.CategoryLandingCraft) || cargoUnit.Blueprint.Categories.Has(units.CategoryInfantry) || cargoUnit.Blueprint.Categories.Has(units.CategoryGroundVehicle) {
				actingPlayer.WaspStatus.LandingCraftLaunchesThisTurn++
			} else {
				actingPlayer.WaspStatus.AircraftLaunchesThisTurn++
			}
		}
	}
	wasp.HasActed = true
	rec.Message = fmt.Sprintf("launched %d unit(s)", launched)
}

func applyRecoverToWasp(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	wasp := gs.Units[a.UnitID]
	recovered := 0
	for _, id := range a.AircraftIDs {
		cargoUnit := gs.Units[id]
		if err := wasp.Load(cargoUnit); err == nil {
			recovered++
		}
	}
	wasp.HasActed = true
	rec.Message = fmt.Sprintf("recovered %d unit(s)", recovered)
}

func applySecureObjective(e *Engine, a Action, rec *ActionLog) {
	gs := e.state
	u := gs.Units[a.UnitID]
	uHex, _ := hexOf(u)
	obj, _ := gs.Map.GetObjective(uHex)
	contested := false
	for _, other := range gs.Units {
		if other.ID == u.ID || !other.IsAlive() {
			continue
		}
		if other.Blueprint.Side == u.Blueprint.Side {
			continue
		}
		if oh, ok := hexOf(other); ok && oh == uHex {
			contested = true
		}
	}
	u.HasActed = true
	if contested {
		obj.Contest()
		rec.Message = "objective contested"
		return
	}
	obj.Capture(u.Blueprint.Side)
	if p, ok := gs.playerOf(u.ID); ok {
		p.AddObjective(obj.ID)
	}
	rec.Message = "objective secured"
}

func applyEndPhase(e *Engine, a Action, rec *ActionLog) {
	e.AdvancePhase()
	rec.Message = "phase advanced"
}
