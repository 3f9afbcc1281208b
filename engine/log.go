package engine

import "go.mongodb.org/mongo-driver/v2/bson"

// ActionLog is one persisted/exported record of an applied action (spec
// §6: "Action log record"). A visualization log is the ordered sequence
// of these records plus periodic state snapshots.
type ActionLog struct {
	Turn             int            `bson:"turn" json:"turn"`
	Phase            Phase          `bson:"phase" json:"phase"`
	ActingPlayer     bson.ObjectID  `bson:"actingPlayer" json:"actingPlayer"`
	ActionKind       ActionKind     `bson:"actionKind" json:"actionKind"`
	ActingUnit       bson.ObjectID  `bson:"actingUnit,omitempty" json:"actingUnit,omitempty"`
	TargetHex        *[3]int        `bson:"targetHex,omitempty" json:"targetHex,omitempty"`
	TargetUnit       *bson.ObjectID `bson:"targetUnit,omitempty" json:"targetUnit,omitempty"`
	Rolls            []int          `bson:"rolls,omitempty" json:"rolls,omitempty"`
	Hits             int            `bson:"hits,omitempty" json:"hits,omitempty"`
	Damage           int            `bson:"damage,omitempty" json:"damage,omitempty"`
	SuppressionDelta int            `bson:"suppressionDelta,omitempty" json:"suppressionDelta,omitempty"`
	Destroyed        bool           `bson:"destroyed,omitempty" json:"destroyed,omitempty"`
	AbilityName      string         `bson:"abilityName,omitempty" json:"abilityName,omitempty"`
	CPBefore         int            `bson:"cpBefore" json:"cpBefore"`
	CPAfter          int            `bson:"cpAfter" json:"cpAfter"`
	Message          string         `bson:"message" json:"message"`
}

// ActionResult is what executeAction hands back to its caller (spec §6:
// "executeAction(action) → {success, message, log: ActionLog}").
type ActionResult struct {
	Success bool
	Message string
	Log     ActionLog
	Err     *ActionError
}
