package engine

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Snapshot serializes the full GameState to BSON (spec §6 query:
// "snapshot() — full state serialization"). The RNG's Seed/Draws travel
// with the snapshot so a restored engine reproduces bit-identical future
// dice rolls (spec §8 scenario F: deterministic replay).
func (e *Engine) Snapshot() ([]byte, error) {
	return bson.Marshal(e.state)
}

// RestoreEngine reconstructs an Engine from a snapshot produced by
// Snapshot. The RNG's internal generator is rebuilt via Restore, fast
// forwarding through the prior Draws count rather than resuming from a
// serialized generator (math/rand.Rand itself is not serializable).
func RestoreEngine(data []byte) (*Engine, error) {
	gs := &GameState{}
	if err := bson.Unmarshal(data, gs); err != nil {
		return nil, err
	}
	if gs.RNG != nil {
		gs.RNG.Restore()
	}
	return &Engine{state: gs, ai: make(map[bson.ObjectID]AIController)}, nil
}
