package engine

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
)

// ActionKind is the closed sum type of player/AI-submitted actions
// (spec §4.5).
type ActionKind string

const (
	ActionMove            ActionKind = "Move"
	ActionAttack          ActionKind = "Attack"
	ActionLoad            ActionKind = "Load"
	ActionUnload          ActionKind = "Unload"
	ActionSpecialAbility  ActionKind = "SpecialAbility"
	ActionReveal          ActionKind = "Reveal"
	ActionHide            ActionKind = "Hide"
	ActionLaunchFromWasp  ActionKind = "LaunchFromWasp"
	ActionRecoverToWasp   ActionKind = "RecoverToWasp"
	ActionSecureObjective ActionKind = "SecureObjective"
	ActionEndPhase        ActionKind = "EndPhase"
)

// Action names a player, an acting unit, and kind-specific payload (spec
// §4.5: "Each action names a player, an acting unit, and action-specific
// payload"). Only the fields relevant to Kind are populated; unused
// fields stay at their zero value.
type Action struct {
	Kind     ActionKind    `bson:"kind" json:"kind"`
	PlayerID bson.ObjectID `bson:"playerId" json:"playerId"`
	UnitID   bson.ObjectID `bson:"unitId,omitempty" json:"unitId,omitempty"`

	// TargetHex is used by Move, Unload (destination), SpecialAbility
	// (Hex/Area target shapes), and LaunchFromWasp (disembark hex).
	TargetHex *hexgrid.Hex `bson:"targetHex,omitempty" json:"targetHex,omitempty"`

	// TargetUnitID is used by Attack, Load, Unload, and SpecialAbility
	// (Unit target shape).
	TargetUnitID *bson.ObjectID `bson:"targetUnitId,omitempty" json:"targetUnitId,omitempty"`

	// AbilityName selects the catalog entry for SpecialAbility, matched
	// case-insensitively (spec §4.7).
	AbilityName string `bson:"abilityName,omitempty" json:"abilityName,omitempty"`

	// AircraftIDs lists the cargo units to launch or recover for
	// LaunchFromWasp/RecoverToWasp.
	AircraftIDs []bson.ObjectID `bson:"aircraftIds,omitempty" json:"aircraftIds,omitempty"`
}
