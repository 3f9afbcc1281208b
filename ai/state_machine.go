package ai

import (
	"github.com/nicoberrocal/wasp-assault-engine/engine"
	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// StateMachine tracks the AI's current strategic posture and re-derives
// a recommendation each update from prioritized trigger conditions (spec
// §4.8).
type StateMachine struct {
	current StrategicState
}

// NewStateMachine starts an AI in Preparation, the posture a defender
// with no enemy contact yet should hold.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StatePreparation}
}

// Update evaluates the prioritized trigger table against view and
// returns the resulting Assessment, committing the recommended state as
// the new current state (spec §4.8 trigger table, evaluated top to
// bottom; first matching trigger wins).
func (sm *StateMachine) Update(view engine.View, side units.Side, maxTurns int) Assessment {
	gs := view.State

	friendly, total := 0, 0
	enemyLanded := false
	territoryControlled, territoryTotal := 0, 0
	objectiveThreat := 0.0

	for _, u := range gs.Units {
		if !u.IsAlive() {
			continue
		}
		total++
		if u.Blueprint.Side == side {
			friendly++
		} else if u.Blueprint.Side != side && u.Position != nil {
			if h, ok := hexOfUnit(u); ok && gs.Map.InBounds(h) {
				enemyLanded = true
			}
		}
	}

	for _, o := range gs.Map.AllObjectives() {
		territoryTotal++
		if o.Owner != nil && *o.Owner == side {
			territoryControlled++
		}
		if o.Owner != nil && *o.Owner != side {
			objectiveThreat += 1.0 / float64(max1(territoryTotal))
		}
	}

	forceRatio := 1.0
	if total > 0 {
		forceRatio = float64(friendly) / float64(total)
	}
	territoryControl := 1.0
	if territoryTotal > 0 {
		territoryControl = float64(territoryControlled) / float64(territoryTotal)
	}

	recommended := sm.current
	confidence := 0.6

	switch {
	case enemyLanded && sm.current == StatePreparation:
		recommended = StateActiveDefense
		confidence = 0.9
	case forceRatio < 0.2:
		recommended = StateFinalStand
		confidence = 0.95
	case maxTurns > 0 && float64(gs.Turn) >= 0.8*float64(maxTurns):
		recommended = StateFinalStand
		confidence = 0.85
	case objectiveThreat > 0.8:
		recommended = StateFinalStand
		confidence = 0.8
	case forceRatio < 0.4:
		recommended = StateGuerrillaWarfare
		confidence = 0.75
	case territoryControl < 0.5:
		recommended = StateGuerrillaWarfare
		confidence = 0.7
	}

	turnsUntil := 0
	if recommended != sm.current {
		turnsUntil = 1
	}

	assessment := Assessment{
		CurrentState:         sm.current,
		RecommendedState:     recommended,
		Confidence:           confidence,
		TurnsUntilTransition: turnsUntil,
		Priorities:           statePriorities[recommended],
	}
	sm.current = recommended
	return assessment
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// hexOfUnit converts a units.Unit's Position field to a hexgrid.Hex, for
// AI-side spatial reasoning that can't call the engine package's
// unexported hexOf helper.
func hexOfUnit(u *units.Unit) (hexgrid.Hex, bool) {
	if u.Position == nil {
		return hexgrid.Hex{}, false
	}
	return hexgrid.Hex{Q: u.Position.Q, R: u.Position.R, S: u.Position.S}, true
}
