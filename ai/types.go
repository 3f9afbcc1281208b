// Package ai implements the multi-layer AI opponent: a strategic state
// machine, a utility-based tactical decision maker, and a decision→action
// controller with fallback and per-unit blacklist learning. It depends
// only on the engine package's exported surface (engine.View,
// engine.Action, engine.ActionResult), never the reverse, so engine
// never needs to import ai.
package ai

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/engine"
	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
)

// StrategicState is one of the closed set of high-level postures the AI
// can occupy.
type StrategicState string

const (
	StatePreparation      StrategicState = "Preparation"
	StateActiveDefense    StrategicState = "ActiveDefense"
	StateGuerrillaWarfare StrategicState = "GuerrillaWarfare"
	StateFinalStand       StrategicState = "FinalStand"
)

// TacticalPriority is one of the closed set of priorities a strategic
// state recommends, ordered highest-first.
type TacticalPriority string

const (
	PriorityGatherIntelligence TacticalPriority = "GatherIntelligence"
	PriorityDenyTerrain        TacticalPriority = "DenyTerrain"
	PriorityPreserveForce      TacticalPriority = "PreserveForce"
	PriorityDefendObjectives   TacticalPriority = "DefendObjectives"
	PriorityInflictCasualties  TacticalPriority = "InflictCasualties"
)

// statePriorities maps each strategic state to its ordered tactical
// priority list.
var statePriorities = map[StrategicState][]TacticalPriority{
	StatePreparation:      {PriorityGatherIntelligence, PriorityDenyTerrain, PriorityPreserveForce},
	StateActiveDefense:    {PriorityDefendObjectives, PriorityInflictCasualties, PriorityDenyTerrain},
	StateGuerrillaWarfare: {PriorityInflictCasualties, PriorityPreserveForce, PriorityGatherIntelligence},
	StateFinalStand:       {PriorityDefendObjectives, PriorityInflictCasualties, PriorityPreserveForce},
}

// Assessment is the strategic state machine's per-update output.
type Assessment struct {
	CurrentState       StrategicState
	RecommendedState   StrategicState
	Confidence         float64
	TurnsUntilTransition int
	Priorities         []TacticalPriority
}

// DecisionType is the closed set of tactical decisions the utility layer
// can emit.
type DecisionType string

const (
	DecisionMoveUnit        DecisionType = "MoveUnit"
	DecisionAttackTarget    DecisionType = "AttackTarget"
	DecisionHideUnit        DecisionType = "HideUnit"
	DecisionRevealUnit      DecisionType = "RevealUnit"
	DecisionWithdraw        DecisionType = "Withdraw"
	DecisionSpecialAbility  DecisionType = "SpecialAbility"
	DecisionLoadTransport   DecisionType = "LoadTransport"
	DecisionUnloadTransport DecisionType = "UnloadTransport"
	DecisionLaunchFromWasp  DecisionType = "LaunchFromWasp"
	DecisionRecoverToWasp   DecisionType = "RecoverToWasp"
	DecisionSecureObjective DecisionType = "SecureObjective"
)

// Decision is one candidate tactical action, scored by priority before
// the controller converts the winners to concrete engine actions.
type Decision struct {
	Type       DecisionType
	ActingUnit bson.ObjectID
	TargetHex  *hexgrid.Hex
	TargetUnit *bson.ObjectID
	Priority   float64
	Reasoning  string
	Metadata   map[string]any
}

// Personality is the closed set of AI playing styles, each scaling the
// decision maker's priority weights (spec §9: "priority-weight
// multipliers come from the AI personality").
type Personality string

const (
	PersonalityAggressive  Personality = "aggressive"
	PersonalityDefensive   Personality = "defensive"
	PersonalityBalanced    Personality = "balanced"
	PersonalityOpportunist Personality = "opportunist"
)

// weights holds the per-decision-type priority multiplier for one
// personality.
type weights struct {
	Attack    float64
	Move      float64
	Hide      float64
	Ability   float64
	Objective float64
}

var personalityWeights = map[Personality]weights{
	PersonalityAggressive:  {Attack: 1.3, Move: 1.0, Hide: 0.7, Ability: 1.1, Objective: 0.9},
	PersonalityDefensive:   {Attack: 0.8, Move: 0.9, Hide: 1.3, Ability: 1.0, Objective: 1.2},
	PersonalityBalanced:    {Attack: 1.0, Move: 1.0, Hide: 1.0, Ability: 1.0, Objective: 1.0},
	PersonalityOpportunist: {Attack: 1.15, Move: 1.1, Hide: 0.9, Ability: 1.2, Objective: 0.8},
}

func weightsFor(p Personality) weights {
	if w, ok := personalityWeights[p]; ok {
		return w
	}
	return personalityWeights[PersonalityBalanced]
}

var _ engine.View // documents the dependency direction: ai -> engine only
