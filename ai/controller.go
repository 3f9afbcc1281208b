package ai

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/engine"
	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/internal/elog"
	"github.com/nicoberrocal/wasp-assault-engine/units"
	"github.com/nicoberrocal/wasp-assault-engine/worldmap"
)

// blacklistThreshold is the fundamental-failure count at which a
// (unit, action-type) pair is permanently skipped for the rest of the
// game (spec §4.10: "on reaching 3, that pair is blacklisted").
const blacklistThreshold = 3

// maxActionsPerTurn caps how many actions Decide returns per AI update
// (spec §4.10: "cap at eight actions per AI turn").
const maxActionsPerTurn = 8

// fallbackChain maps a decision type that failed or was blacklisted to
// the ordered list of decision types the controller tries instead (spec
// §4.10's fallback table).
var fallbackChain = map[engine.ActionKind][]engine.ActionKind{
	engine.ActionAttack:          {engine.ActionMove},
	engine.ActionMove:            {engine.ActionAttack},
	engine.ActionSpecialAbility:  {engine.ActionAttack, engine.ActionMove},
	engine.ActionLoad:            {engine.ActionMove},
	engine.ActionUnload:          {engine.ActionMove},
	engine.ActionSecureObjective: {engine.ActionMove, engine.ActionAttack},
}

// blacklistKey identifies one (unit, action-type) pair.
type blacklistKey struct {
	Unit bson.ObjectID
	Kind engine.ActionKind
}

// Controller converts a StateMachine+DecisionMaker's ranked decisions
// into concrete engine.Action values, applying the fallback chain and
// learning blacklist (spec §4.10). It satisfies engine.AIController.
type Controller struct {
	Side        units.Side
	Personality Personality

	sm *StateMachine
	dm *DecisionMaker

	maxTurns int

	failureCounts map[blacklistKey]int
	blacklisted   map[blacklistKey]bool
}

// NewController builds a Controller for the given side and personality.
// maxTurns feeds the state machine's FinalStand turn-fraction trigger.
func NewController(side units.Side, personality Personality, maxTurns int) *Controller {
	return &Controller{
		Side:          side,
		Personality:   personality,
		sm:            NewStateMachine(),
		dm:            NewDecisionMaker(personality),
		maxTurns:      maxTurns,
		failureCounts: make(map[blacklistKey]int),
		blacklisted:   make(map[blacklistKey]bool),
	}
}

// Decide implements engine.AIController. It runs the state machine, asks
// the decision maker for ranked candidates, converts each to a concrete
// action (taking the fallback chain when blacklisted or conversion
// fails), and caps the result at maxActionsPerTurn.
func (c *Controller) Decide(view engine.View) []engine.Action {
	assessment := c.sm.Update(view, c.Side, c.maxTurns)
	decisions := c.dm.Generate(view, c.Side, assessment)

	var actions []engine.Action
	for _, d := range decisions {
		if len(actions) >= maxActionsPerTurn {
			break
		}
		a, kind, ok := c.resolve(view, d)
		if !ok {
			continue
		}
		a.PlayerID = view.Side
		if !engine.IsLegalAction(view.State.Phase, kind) {
			continue
		}
		actions = append(actions, a)
	}

	if len(actions) == 0 {
		actions = append(actions, engine.Action{Kind: engine.ActionEndPhase, PlayerID: view.Side})
	}
	return actions
}

// resolve converts one Decision to a concrete Action, walking the
// fallback chain when the primary conversion is blacklisted or fails.
func (c *Controller) resolve(view engine.View, d Decision) (engine.Action, engine.ActionKind, bool) {
	primaryKind := decisionToActionKind(d.Type)
	if !c.blacklisted[blacklistKey{Unit: d.ActingUnit, Kind: primaryKind}] {
		if a, ok := convertDecision(view, d); ok {
			return a, primaryKind, true
		}
	}

	for _, fallbackKind := range fallbackChain[primaryKind] {
		if c.blacklisted[blacklistKey{Unit: d.ActingUnit, Kind: fallbackKind}] {
			continue
		}
		if a, ok := syntheticAction(view, d.ActingUnit, fallbackKind); ok {
			return a, fallbackKind, true
		}
	}
	return engine.Action{}, "", false
}

// ReportResult implements engine.AIController, updating the failure
// counter / blacklist for the (unit, kind) pair the action belonged to
// (spec §4.10).
func (c *Controller) ReportResult(a engine.Action, result engine.ActionResult) {
	key := blacklistKey{Unit: a.UnitID, Kind: a.Kind}
	if result.Success {
		delete(c.failureCounts, key)
		return
	}
	if result.Err == nil || !result.Err.Kind.IsFundamental() {
		return
	}
	c.failureCounts[key]++
	if c.failureCounts[key] >= blacklistThreshold {
		c.blacklisted[key] = true
		elog.AIBlacklist(a.UnitID.Hex(), string(a.Kind), string(result.Err.Kind))
	}
}

// decisionToActionKind maps a tactical Decision's type to the engine
// action kind it would normally become.
func decisionToActionKind(t DecisionType) engine.ActionKind {
	switch t {
	case DecisionMoveUnit, DecisionWithdraw:
		return engine.ActionMove
	case DecisionAttackTarget:
		return engine.ActionAttack
	case DecisionHideUnit:
		return engine.ActionHide
	case DecisionRevealUnit:
		return engine.ActionReveal
	case DecisionSpecialAbility:
		return engine.ActionSpecialAbility
	case DecisionLoadTransport:
		return engine.ActionLoad
	case DecisionUnloadTransport:
		return engine.ActionUnload
	case DecisionLaunchFromWasp:
		return engine.ActionLaunchFromWasp
	case DecisionRecoverToWasp:
		return engine.ActionRecoverToWasp
	case DecisionSecureObjective:
		return engine.ActionSecureObjective
	default:
		return engine.ActionEndPhase
	}
}

// convertDecision builds the concrete Action a Decision names, returning
// ok=false if required fields are missing (spec §4.10 step 2: "convert
// decision to concrete action (may fail returning null)").
func convertDecision(view engine.View, d Decision) (engine.Action, bool) {
	kind := decisionToActionKind(d.Type)
	a := engine.Action{Kind: kind, UnitID: d.ActingUnit}

	switch d.Type {
	case DecisionMoveUnit, DecisionWithdraw:
		if d.TargetHex == nil {
			return a, false
		}
		a.TargetHex = d.TargetHex
	case DecisionAttackTarget:
		if d.TargetUnit == nil {
			return a, false
		}
		a.TargetUnitID = d.TargetUnit
	case DecisionHideUnit, DecisionRevealUnit:
		// no payload
	case DecisionSpecialAbility:
		name, ok := d.Metadata["ability"].(string)
		if !ok {
			return a, false
		}
		a.AbilityName = name
		a.TargetHex = d.TargetHex
		a.TargetUnitID = d.TargetUnit
	case DecisionLoadTransport, DecisionUnloadTransport:
		if d.TargetUnit == nil {
			return a, false
		}
		a.TargetUnitID = d.TargetUnit
		a.TargetHex = d.TargetHex
	case DecisionSecureObjective:
		// no payload
	default:
		return a, false
	}
	return a, true
}

// syntheticAction generates the fallback table's simple replacement
// action for (unit, kind): nearest free adjacent hex for Move, nearest
// in-range enemy for Attack (spec §4.10 step 3).
func syntheticAction(view engine.View, unitID bson.ObjectID, kind engine.ActionKind) (engine.Action, bool) {
	gs := view.State
	u, ok := gs.Units[unitID]
	if !ok || !u.IsAlive() {
		return engine.Action{}, false
	}
	uHex, onMap := hexOfUnit(u)
	if !onMap {
		return engine.Action{}, false
	}

	switch kind {
	case engine.ActionMove:
		for _, n := range uHex.Neighbors() {
			if isFreeAdjacent(gs, n) {
				h := n
				return engine.Action{Kind: engine.ActionMove, UnitID: unitID, TargetHex: &h}, true
			}
		}
		return engine.Action{}, false
	case engine.ActionAttack:
		best, bestDist := (*units.Unit)(nil), -1
		for _, en := range gs.Units {
			if en.Blueprint.Side == u.Blueprint.Side || !en.IsAlive() {
				continue
			}
			enHex, ok := hexOfUnit(en)
			if !ok {
				continue
			}
			dist := uHex.Distance(enHex)
			rng := units.EffectiveRange(u.Blueprint.Stats, u.Blueprint.Categories)
			if dist > rng {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				bestDist = dist
				best = en
			}
		}
		if best == nil {
			return engine.Action{}, false
		}
		tid := best.ID
		return engine.Action{Kind: engine.ActionAttack, UnitID: unitID, TargetUnitID: &tid}, true
	default:
		return engine.Action{}, false
	}
}

func isFreeAdjacent(gs *engine.GameState, h hexgrid.Hex) bool {
	if !gs.Map.InBounds(h) {
		return false
	}
	for _, u := range gs.Units {
		if !u.IsAlive() {
			continue
		}
		if oh, ok := hexOfUnit(u); ok && oh == h {
			return false
		}
	}
	return gs.Map.MovementCost(h, units.CategorySet(0)) != worldmap.Impassable
}
