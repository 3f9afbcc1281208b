package engine

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
)

// AIController is implemented by the ai package's Controller (spec §6:
// "registerAIController(playerId, personality)"). The engine depends
// only on this interface, never on the ai package itself, so ai can
// import engine one-directionally without a cycle (consumer-defined
// interface, per idiomatic Go "accept interfaces, return structs").
type AIController interface {
	// Decide returns the batch of actions this controller wants to submit
	// for its side this update, already capped and fallback-resolved
	// (spec §4.10: "cap at eight actions per AI turn").
	Decide(view View) []Action

	// ReportResult lets the controller update its per-unit per-action-type
	// blacklist after the engine has executed one action (spec §4.10).
	ReportResult(a Action, result ActionResult)
}

// View is the read-only projection of engine state an AIController is
// given, keeping the ai package from reaching into GameState internals
// directly (mirrors the teacher's preference for narrow accessor
// structs over exposing raw internal state).
type View struct {
	State            *GameState
	Engine           *Engine
	Side             bson.ObjectID
	LegalActionsFunc func(playerID bson.ObjectID) []Action
	CanAttackFunc    func(attackerID, defenderID bson.ObjectID) AttackCheckResult
	PathFunc         func(unitID bson.ObjectID, target hexgrid.Hex) PathResult
}

// RegisterAIController attaches controller to playerID's side (spec §6:
// "registerAIController(playerId, personality)" — the personality
// configuration itself lives inside the controller the caller
// constructs; the engine only needs somewhere to call back into).
func (e *Engine) RegisterAIController(playerID bson.ObjectID, controller AIController) {
	e.ai[playerID] = controller
}

// UpdateAI runs the registered controller for the currently active
// side, submits its returned batch through ExecuteAction one at a time,
// and reports each result back to the controller for blacklist learning
// (spec §6: "updateAI() — runs the registered AI for the active side and
// executes its batch"; §4.10 post-execution blacklist update).
func (e *Engine) UpdateAI() []ActionResult {
	gs := e.state
	var activeID bson.ObjectID
	found := false
	for id, p := range gs.Players {
		if p.Side == gs.ActiveSide {
			activeID = id
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	controller, ok := e.ai[activeID]
	if !ok {
		return nil
	}

	view := View{
		State:            gs,
		Engine:           e,
		Side:             activeID,
		LegalActionsFunc: e.ListLegalActions,
		CanAttackFunc:    e.CanAttack,
		PathFunc:         e.CalculateMovementPath,
	}

	batch := controller.Decide(view)
	if len(batch) > 8 {
		batch = batch[:8]
	}

	results := make([]ActionResult, 0, len(batch))
	for _, a := range batch {
		if !isLegalInPhase(gs.Phase, a.Kind) {
			continue
		}
		res := e.ExecuteAction(a)
		controller.ReportResult(a, res)
		results = append(results, res)
		if gs.IsGameOver {
			break
		}
	}
	return results
}
