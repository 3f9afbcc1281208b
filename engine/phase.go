package engine

import "github.com/nicoberrocal/wasp-assault-engine/units"

// Phase is the closed sequence of turn sub-phases (spec §3 GameState,
// §5 ordering guarantee: "Event → Command → Deployment → Movement →
// Action → End is strict").
type Phase string

const (
	PhaseEvent      Phase = "event"
	PhaseCommand    Phase = "command"
	PhaseDeployment Phase = "deployment"
	PhaseMovement   Phase = "movement"
	PhaseAction     Phase = "action"
	PhaseEnd        Phase = "end"
)

// phaseOrder is the strict phase sequence within one turn.
var phaseOrder = []Phase{PhaseEvent, PhaseCommand, PhaseDeployment, PhaseMovement, PhaseAction, PhaseEnd}

// next returns the phase following p, wrapping back to PhaseEvent (and
// advancing the turn counter, handled by the caller) after PhaseEnd.
func (p Phase) next() Phase {
	for i, v := range phaseOrder {
		if v == p {
			return phaseOrder[(i+1)%len(phaseOrder)]
		}
	}
	return PhaseEvent
}

// legalActions is the phase/action-kind legality table (spec §4.5).
var legalActions = map[Phase]map[ActionKind]bool{
	PhaseEvent:   {},
	PhaseCommand: {},
	PhaseDeployment: {
		ActionLaunchFromWasp: true,
		ActionMove:           true,
	},
	PhaseMovement: {
		ActionMove:   true,
		ActionHide:   true,
		ActionReveal: true,
		ActionLoad:   true,
		ActionUnload: true,
	},
	PhaseAction: {
		ActionAttack:          true,
		ActionSpecialAbility:  true,
		ActionLoad:            true,
		ActionUnload:          true,
		ActionReveal:          true,
		ActionHide:            true,
		ActionLaunchFromWasp:  true,
		ActionRecoverToWasp:   true,
		ActionSecureObjective: true,
	},
	PhaseEnd: {},
}

// isLegalInPhase reports whether kind may be submitted during phase p.
// ActionEndPhase is always legal except during PhaseEvent/PhaseCommand,
// which are system-driven: only an explicit AdvancePhase call leaves them.
func isLegalInPhase(p Phase, kind ActionKind) bool {
	if kind == ActionEndPhase {
		return p != PhaseEvent && p != PhaseCommand
	}
	return legalActions[p][kind]
}

// IsLegalAction is the exported form of isLegalInPhase, used by AI
// controllers (outside this package) to re-filter decisions against the
// phase/action legality table before submission (spec §4.10: "phase
// filtering").
func IsLegalAction(p Phase, kind ActionKind) bool {
	return isLegalInPhase(p, kind)
}

// toUnitsPhase converts an engine Phase to the units package's
// independently-declared Phase (duplicated there to avoid units
// importing engine; see units.Phase doc comment).
func toUnitsPhase(p Phase) (units.Phase, bool) {
	switch p {
	case PhaseDeployment:
		return units.PhaseDeployment, true
	case PhaseMovement:
		return units.PhaseMovement, true
	case PhaseAction:
		return units.PhaseAction, true
	default:
		return "", false
	}
}
