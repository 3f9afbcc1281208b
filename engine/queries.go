package engine

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// PathResult is the read-only answer to a movement-path query (spec §6
// query: "calculateMovementPath(unitId, target) → {valid, hexes,
// totalCost}").
type PathResult struct {
	Valid     bool
	Hexes     []hexgrid.Hex
	TotalCost int
}

// CalculateMovementPath previews the path a unit would take to target,
// without mutating state. Mirrors the bounds/terrain/occupancy checks in
// checkMove but reports the path instead of only accept/reject.
func (e *Engine) CalculateMovementPath(unitID bson.ObjectID, target hexgrid.Hex) PathResult {
	gs := e.state
	u, ok := gs.Units[unitID]
	if !ok {
		return PathResult{Valid: false}
	}
	if !gs.Map.InBounds(target) {
		return PathResult{Valid: false}
	}
	from, onMap := hexOf(u)
	if !onMap {
		return PathResult{Valid: false}
	}
	path := hexgrid.FindPath(from, target, movementCostOracle(gs, u), u.EffectiveMovement())
	if len(path) == 0 {
		return PathResult{Valid: false}
	}
	total := 0
	for _, h := range path[1:] {
		total += gs.Map.MovementCost(h, u.Blueprint.Categories)
	}
	return PathResult{Valid: true, Hexes: path, TotalCost: total}
}

// AttackCheckResult is the read-only answer to a targeting query (spec
// §6 query: "canAttack(attackerId, defenderId) → {valid, reason?}").
type AttackCheckResult struct {
	Valid  bool
	Reason string
}

// CanAttack previews whether attacker could legally target defender right
// now, reusing the same range/LOS/category logic validate() applies
// during ExecuteAction, without mutating state or requiring it to be the
// acting player's turn.
func (e *Engine) CanAttack(attackerID, defenderID bson.ObjectID) AttackCheckResult {
	gs := e.state
	attacker, ok := gs.Units[attackerID]
	if !ok || !attacker.IsAlive() {
		return AttackCheckResult{Valid: false, Reason: string(ErrUnitNotFound)}
	}
	defender, ok := gs.Units[defenderID]
	if !ok || !defender.IsAlive() {
		return AttackCheckResult{Valid: false, Reason: string(ErrTargetDestroyed)}
	}
	if defender.Blueprint.Side == attacker.Blueprint.Side {
		return AttackCheckResult{Valid: false, Reason: string(ErrTargetFriendly)}
	}
	if !attacker.CanAct() {
		return AttackCheckResult{Valid: false, Reason: string(ErrUnitSuppressedPinned)}
	}
	if err := rangeAndLOSCheck(gs, attacker, defender); err != nil {
		return AttackCheckResult{Valid: false, Reason: err.Message}
	}
	return AttackCheckResult{Valid: true}
}

// ListLegalActions enumerates the Move/Attack/SecureObjective/EndPhase
// actions currently available to playerID's units (spec §6). UpdateAI
// hands it to controllers as View.LegalActionsFunc; the ai package's
// decision maker does not call it.
func (e *Engine) ListLegalActions(playerID bson.ObjectID) []Action {
	gs := e.state
	var out []Action

	out = append(out, Action{Kind: ActionEndPhase, PlayerID: playerID})

	for _, u := range gs.Units {
		owner, ok := gs.playerOf(u.ID)
		if !ok || owner.ID != playerID || !u.IsAlive() {
			continue
		}

		if u.CanMove() {
			if from, onMap := hexOf(u); onMap {
				for _, h := range from.Range(u.EffectiveMovement()) {
					if h == from {
						continue
					}
					a := Action{Kind: ActionMove, PlayerID: playerID, UnitID: u.ID, TargetHex: &h}
					if e.validate(a) == nil {
						out = append(out, a)
					}
				}
			}
		}

		if u.CanAct() {
			for otherID, other := range gs.Units {
				if otherID == u.ID || other.Blueprint.Side == u.Blueprint.Side {
					continue
				}
				target := otherID
				a := Action{Kind: ActionAttack, PlayerID: playerID, UnitID: u.ID, TargetUnitID: &target}
				if e.validate(a) == nil {
					out = append(out, a)
				}
			}

			if h, onMap := hexOf(u); onMap {
				if _, hasObj := gs.Map.GetObjective(h); hasObj {
					a := Action{Kind: ActionSecureObjective, PlayerID: playerID, UnitID: u.ID}
					if e.validate(a) == nil {
						out = append(out, a)
					}
				}
			}
		}
	}

	return out
}

// isAirCategoryOnly reports whether u's attacks this turn were restricted
// to air targets via Anti-Aircraft Focus (engine/abilities.go
// grantSelfModifier "airOnlyFocus"), used by rangeAndLOSCheck to reject
// attacks on targets outside the air category.
func isAirCategoryOnly(u *units.Unit) bool {
	return hasSelfModifier(u, "airOnlyFocus")
}
