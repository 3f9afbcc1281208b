package engine

import (
	"github.com/nicoberrocal/wasp-assault-engine/internal/elog"
	"github.com/nicoberrocal/wasp-assault-engine/players"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// AdvancePhase moves the active side's turn forward one phase (spec §6:
// "advancePhase() — when the active side finishes voluntarily"). Ending
// PhaseEnd closes out the turn: overflow CP is discarded, the active
// side's units reset their turn flags (and decay suppression per spec
// §4.3), the active side alternates, and the turn counter advances.
func (e *Engine) AdvancePhase() {
	gs := e.state

	if gs.Phase == PhaseEnd {
		if p, ok := activePlayer(gs); ok {
			p.DiscardOverflowCP()
		}
		resetUnitsForSide(gs, gs.ActiveSide)
		gs.Turn++
		gs.ActiveSide = otherSide(gs.ActiveSide)
		gs.Phase = PhaseEvent
		elog.PhaseTransition(gs.Turn, string(PhaseEnd), string(PhaseEvent))
		e.checkGameOver()
		return
	}

	old := gs.Phase
	gs.Phase = gs.Phase.next()
	if gs.Phase == PhaseCommand {
		if p, ok := activePlayer(gs); ok {
			p.GenerateCommandPoints()
		}
	}
	elog.PhaseTransition(gs.Turn, string(old), string(gs.Phase))
}

func activePlayer(gs *GameState) (*players.Player, bool) {
	for _, p := range gs.Players {
		if p.Side == gs.ActiveSide {
			return p, true
		}
	}
	return nil, false
}

func otherSide(s units.Side) units.Side {
	if s == units.SideAssault {
		return units.SideDefender
	}
	return units.SideAssault
}

func resetUnitsForSide(gs *GameState, side units.Side) {
	for _, u := range gs.Units {
		if u.Blueprint.Side != side {
			continue
		}
		u.ResetTurnState(gs.Turn)
	}
	for _, p := range gs.Players {
		if p.Side == side && p.WaspStatus != nil {
			p.WaspStatus.ResetTurnCounters()
		}
	}
}

// checkGameOver evaluates the two victory conditions this engine
// implements: one side's units are entirely destroyed, or the turn
// limit has been exceeded, in which case the side controlling more
// objectives wins (a tie leaves Winner nil).
func (e *Engine) checkGameOver() {
	gs := e.state
	if gs.IsGameOver {
		return
	}

	assaultAlive, defenderAlive := false, false
	for _, u := range gs.Units {
		if !u.IsAlive() {
			continue
		}
		if u.Blueprint.Side == units.SideAssault {
			assaultAlive = true
		} else {
			defenderAlive = true
		}
	}

	switch {
	case !assaultAlive && defenderAlive:
		gs.IsGameOver = true
		w := units.SideDefender
		gs.Winner = &w
	case !defenderAlive && assaultAlive:
		gs.IsGameOver = true
		w := units.SideAssault
		gs.Winner = &w
	case gs.MaxTurns > 0 && gs.Turn > gs.MaxTurns:
		gs.IsGameOver = true
		gs.Winner = winnerByObjectives(gs)
	}
}

func winnerByObjectives(gs *GameState) *units.Side {
	var assaultCount, defenderCount int
	for _, o := range gs.Map.AllObjectives() {
		if o.Owner == nil {
			continue
		}
		if *o.Owner == units.SideAssault {
			assaultCount++
		} else {
			defenderCount++
		}
	}
	switch {
	case assaultCount > defenderCount:
		w := units.SideAssault
		return &w
	case defenderCount > assaultCount:
		w := units.SideDefender
		return &w
	default:
		return nil
	}
}
