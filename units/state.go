package units

import "fmt"

// TakeDamage reduces CurrentHP by n (floored at 0, marking the unit
// Destroyed at 0) and, if the unit survives, adds one suppression token
// up to MaxSuppression (spec §4.3 takeDamage).
func (u *Unit) TakeDamage(n int) {
	if n < 0 {
		n = 0
	}
	u.CurrentHP -= n
	if u.CurrentHP <= 0 {
		u.CurrentHP = 0
		u.Destroyed = true
		return
	}
	if u.SuppressionTokens < MaxSuppression {
		u.SuppressionTokens++
	}
}

// ResetTurnState clears the per-turn action flags and, if the unit
// landed no attack this turn, decays one suppression token (spec §4.3:
// "clears hasMoved, hasActed, and conditionally a suppression token if
// unit did not attack"). This applies to any suppressed unit regardless
// of whether it acted at all — an idle unit that hunkered down still
// recovers. turn is the GameState.Turn the reset belongs to: calling
// ResetTurnState twice with the same turn value (without an intervening
// turn) is idempotent (spec §8), since LastSuppressionDecayTurn already
// matches and blocks a second decay.
func (u *Unit) ResetTurnState(turn int) {
	attacked := u.AttackedThisTurn
	u.HasMoved = false
	u.HasActed = false
	u.AttackedThisTurn = false
	u.ReactiveUsedThisTurn = nil
	if !attacked && u.SuppressionTokens > 0 && u.LastSuppressionDecayTurn != turn {
		u.SuppressionTokens--
		u.LastSuppressionDecayTurn = turn
	}
}

// Hide sets the hidden flag if this unit's categories support
// concealment (spec §4.3 hide/reveal).
func (u *Unit) Hide() error {
	if !u.Blueprint.Categories.CanConceal() {
		return fmt.Errorf("units: %s cannot conceal", u.Blueprint.Type)
	}
	u.Hidden = true
	return nil
}

// Reveal clears the hidden flag unconditionally.
func (u *Unit) Reveal() {
	u.Hidden = false
}

// Load stows other into this unit's cargo, enforcing capacity only.
// Neither Load nor the engine's load validation restricts which unit
// categories a carrier may take aboard.
func (u *Unit) Load(other *Unit) error {
	cap := u.CargoCapacity()
	if cap == 0 {
		return fmt.Errorf("units: %s has no cargo capacity", u.Blueprint.Type)
	}
	if len(u.Cargo) >= cap {
		return fmt.Errorf("units: %s cargo at capacity (%d)", u.Blueprint.Type, cap)
	}
	u.Cargo = append(u.Cargo, other.ID)
	other.InCargoOf = &u.ID
	other.Position = nil
	return nil
}

// Unload removes other from this unit's cargo and places it at pos.
func (u *Unit) Unload(other *Unit, pos Position) error {
	idx := -1
	for i, id := range u.Cargo {
		if id == other.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("units: %s is not carrying unit %s", u.Blueprint.Type, other.ID.Hex())
	}
	u.Cargo = append(u.Cargo[:idx], u.Cargo[idx+1:]...)
	other.InCargoOf = nil
	other.Position = &pos
	return nil
}
