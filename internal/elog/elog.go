// Package elog is the engine's diagnostic logger: phase transitions,
// invariant warnings, and AI controller blacklist events, using the
// global zerolog logger in the same chained-call style as the retrieved
// bot orchestrator package.
package elog

import "github.com/rs/zerolog/log"

// PhaseTransition logs an engine phase change.
func PhaseTransition(turn int, from, to string) {
	log.Info().Int("turn", turn).Str("from", from).Str("to", to).Msg("phase transition")
}

// ActionRejected logs a rejected action and the reason the validator gave.
func ActionRejected(turn int, actorSide string, kind string, reason string) {
	log.Warn().Int("turn", turn).Str("side", actorSide).Str("actionKind", kind).Str("reason", reason).Msg("action rejected")
}

// AIBlacklist logs an AI controller blacklisting a unit/action pair after
// a fundamental error.
func AIBlacklist(unitID string, actionKind string, reason string) {
	log.Warn().Str("unitId", unitID).Str("actionKind", actionKind).Str("reason", reason).Msg("AI controller blacklisted action")
}

// GameOver logs the terminal state of a completed game.
func GameOver(turn int, winner string) {
	log.Info().Int("turn", turn).Str("winner", winner).Msg("game over")
}

// InvariantViolation logs an internal invariant failure immediately
// before the engine panics with the same diagnostic.
func InvariantViolation(where string, detail string) {
	log.Error().Str("where", where).Str("detail", detail).Msg("internal invariant violated")
}
