package ai

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/engine"
	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/units"
)

// tacticalComplexity bounds how many decisions survive per priority
// generator before sorting and truncation (spec §4.9: "capped by
// tacticalComplexity × len").
const tacticalComplexity = 3

// DecisionMaker turns a strategic Assessment into a ranked list of
// candidate tactical decisions (spec §4.9).
type DecisionMaker struct {
	Personality Personality
}

// NewDecisionMaker builds a decision maker for the given personality.
func NewDecisionMaker(p Personality) *DecisionMaker {
	return &DecisionMaker{Personality: p}
}

// Generate produces the ranked decision list for side given assessment,
// skipping units already claimed by an earlier generator within this
// call (spec §4.9: "a used-units set prevents assigning the same unit to
// two same-turn decisions within one generator").
func (dm *DecisionMaker) Generate(view engine.View, side units.Side, assessment Assessment) []Decision {
	gs := view.State
	w := weightsFor(dm.Personality)
	used := make(map[bson.ObjectID]bool)
	var decisions []Decision

	mine := make([]*units.Unit, 0)
	enemies := make([]*units.Unit, 0)
	for _, u := range gs.Units {
		if !u.IsAlive() {
			continue
		}
		if u.Blueprint.Side == side {
			mine = append(mine, u)
		} else {
			enemies = append(enemies, u)
		}
	}

	for _, priority := range assessment.Priorities {
		var generated []Decision
		switch priority {
		case PriorityInflictCasualties:
			generated = dm.generateAttacks(view, mine, enemies, used, w)
		case PriorityDefendObjectives:
			generated = dm.generateObjectiveDecisions(gs, mine, used, w)
		case PriorityPreserveForce:
			generated = dm.generatePreservation(mine, enemies, used, w)
		case PriorityDenyTerrain, PriorityGatherIntelligence:
			generated = dm.generateRepositioning(mine, enemies, used, w)
		}
		decisions = append(decisions, generated...)
	}

	decisions = append(decisions, dm.generateAbilityDecisions(gs, side, mine, used, w)...)
	decisions = append(decisions, dm.generateLoadDecisions(gs, mine, used)...)

	limit := tacticalComplexity * len(assessment.Priorities)
	sortDecisionsByPriority(decisions)
	if limit > 0 && len(decisions) > limit {
		decisions = decisions[:limit]
	}
	return decisions
}

func sortDecisionsByPriority(d []Decision) {
	for i := 1; i < len(d); i++ {
		j := i
		for j > 0 && d[j-1].Priority < d[j].Priority {
			d[j-1], d[j] = d[j], d[j-1]
			j--
		}
	}
}

// generateAttacks emits AttackTarget for enemies in range (priority 15,
// gated by engagement confidence), else MoveUnit toward the nearest
// alive enemy (priority 12).
func (dm *DecisionMaker) generateAttacks(view engine.View, mine, enemies []*units.Unit, used map[bson.ObjectID]bool, w weights) []Decision {
	var out []Decision
	for _, u := range mine {
		if used[u.ID] || !u.CanAct() {
			continue
		}
		uHex, ok := hexOfUnit(u)
		if !ok {
			continue
		}

		bestTarget, bestDist := (*units.Unit)(nil), -1
		attacked := false
		for _, en := range enemies {
			enHex, ok := hexOfUnit(en)
			if !ok {
				continue
			}
			dist := uHex.Distance(enHex)
			rng := units.EffectiveRange(u.Blueprint.Stats, u.Blueprint.Categories)
			if dist <= rng {
				confidence := float64(u.EffectiveAttack())/float64(en.Blueprint.Stats.Defense+1) + adjacencyBonus(dist)
				if confidence >= 0.25 {
					tid := en.ID
					out = append(out, Decision{
						Type:       DecisionAttackTarget,
						ActingUnit: u.ID,
						TargetUnit: &tid,
						Priority:   15 * w.Attack,
						Reasoning:  "enemy within attack range and engagement is favorable",
					})
					used[u.ID] = true
					attacked = true
					break
				}
			}
			if bestDist < 0 || dist < bestDist {
				bestDist = dist
				bestTarget = en
			}
		}
		if attacked {
			continue
		}
		if !u.HasMoved && bestTarget != nil {
			if enHex, ok := hexOfUnit(bestTarget); ok {
				step := stepToward(uHex, enHex)
				out = append(out, Decision{
					Type:       DecisionMoveUnit,
					ActingUnit: u.ID,
					TargetHex:  &step,
					Priority:   12 * w.Move,
					Reasoning:  "advancing toward nearest enemy",
				})
				used[u.ID] = true
			}
		}
	}
	return out
}

func adjacencyBonus(dist int) float64 {
	if dist <= 1 {
		return 0.1
	}
	return 0
}

// stepToward returns the neighbor of from that most reduces distance to
// to, a simple greedy single-hex movement target (the engine's Move
// validation finds the path to it when the action is executed).
func stepToward(from, to hexgrid.Hex) hexgrid.Hex {
	best := from
	bestDist := from.Distance(to)
	for _, n := range from.Neighbors() {
		if d := n.Distance(to); d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best
}

// generateObjectiveDecisions emits SecureObjective for units already on
// an objective hex (priority 9-10) or MoveUnit toward one within
// movement range (priority 8-9).
func (dm *DecisionMaker) generateObjectiveDecisions(gs *engine.GameState, mine []*units.Unit, used map[bson.ObjectID]bool, w weights) []Decision {
	var out []Decision
	objectives := gs.Map.AllObjectives()
	for _, u := range mine {
		if used[u.ID] || !u.CanAct() {
			continue
		}
		uHex, ok := hexOfUnit(u)
		if !ok {
			continue
		}
		if _, onObjective := gs.Map.GetObjective(uHex); onObjective {
			out = append(out, Decision{
				Type:       DecisionSecureObjective,
				ActingUnit: u.ID,
				Priority:   9.5 * w.Objective,
				Reasoning:  "standing on an objective hex",
			})
			used[u.ID] = true
			continue
		}
		if u.HasMoved {
			continue
		}
		mv := u.EffectiveMovement()
		for _, o := range objectives {
			if uHex.Distance(o.Position) <= mv {
				step := stepToward(uHex, o.Position)
				out = append(out, Decision{
					Type:       DecisionMoveUnit,
					ActingUnit: u.ID,
					TargetHex:  &step,
					Priority:   8.5 * w.Objective,
					Reasoning:  "advancing toward an objective within reach",
				})
				used[u.ID] = true
				break
			}
		}
	}
	return out
}

// generatePreservation emits HideUnit (priority 7-8) for units under
// threat or at low HP that are able to conceal.
func (dm *DecisionMaker) generatePreservation(mine, enemies []*units.Unit, used map[bson.ObjectID]bool, w weights) []Decision {
	var out []Decision
	for _, u := range mine {
		if used[u.ID] || u.HasActed || u.Hidden {
			continue
		}
		if !u.Blueprint.Categories.CanConceal() {
			continue
		}
		hpPct := 1.0
		if u.Blueprint.Stats.HP > 0 {
			hpPct = float64(u.CurrentHP) / float64(u.Blueprint.Stats.HP)
		}
		threat := threatScore(u, enemies)
		if threat >= 50 || hpPct <= 0.5 {
			priority := 7.0
			if threat >= 75 || hpPct <= 0.25 {
				priority = 8.0
			}
			out = append(out, Decision{
				Type:       DecisionHideUnit,
				ActingUnit: u.ID,
				Priority:   priority * w.Hide,
				Reasoning:  "under threat or below half strength",
			})
			used[u.ID] = true
		}
	}
	return out
}

// threatScore sums attack*weight over enemies within range, capped at
// 100 (spec §4.9 threat assessment).
func threatScore(u *units.Unit, enemies []*units.Unit) float64 {
	uHex, ok := hexOfUnit(u)
	if !ok {
		return 0
	}
	total := 0.0
	for _, en := range enemies {
		enHex, ok := hexOfUnit(en)
		if !ok {
			continue
		}
		reach := units.EffectiveRange(en.Blueprint.Stats, en.Blueprint.Categories) + en.Blueprint.Stats.Movement
		if uHex.Distance(enHex) <= reach {
			total += float64(en.Blueprint.Stats.Attack)
		}
	}
	if total > 100 {
		total = 100
	}
	return total
}

// generateRepositioning emits low-priority MoveUnit decisions for idle
// units with no immediate attack or objective option, covering the
// DenyTerrain / GatherIntelligence priorities by falling back to
// advancing toward the nearest enemy for reconnaissance.
func (dm *DecisionMaker) generateRepositioning(mine, enemies []*units.Unit, used map[bson.ObjectID]bool, w weights) []Decision {
	var out []Decision
	for _, u := range mine {
		if used[u.ID] || u.HasMoved || len(enemies) == 0 {
			continue
		}
		uHex, ok := hexOfUnit(u)
		if !ok {
			continue
		}
		nearest, bestDist := enemies[0], uHex.Distance(mustHex(enemies[0]))
		for _, en := range enemies[1:] {
			if d := uHex.Distance(mustHex(en)); d < bestDist {
				bestDist = d
				nearest = en
			}
		}
		if enHex, ok := hexOfUnit(nearest); ok {
			step := stepToward(uHex, enHex)
			out = append(out, Decision{
				Type:       DecisionMoveUnit,
				ActingUnit: u.ID,
				TargetHex:  &step,
				Priority:   5 * w.Move,
				Reasoning:  "repositioning to deny terrain / gather intelligence",
			})
			used[u.ID] = true
		}
	}
	return out
}

func mustHex(u *units.Unit) hexgrid.Hex {
	h, _ := hexOfUnit(u)
	return h
}

// generateAbilityDecisions emits SpecialAbility for each ability a unit
// possesses and can currently afford (priority 7, scaled by personality).
func (dm *DecisionMaker) generateAbilityDecisions(gs *engine.GameState, side units.Side, mine []*units.Unit, used map[bson.ObjectID]bool, w weights) []Decision {
	cp := 0
	for _, p := range gs.Players {
		if p.Side == side {
			cp = p.CommandPoints
		}
	}
	var out []Decision
	for _, u := range mine {
		if used[u.ID] || !u.CanAct() {
			continue
		}
		for _, ab := range u.Blueprint.Abilities() {
			if u.CurrentSP < ab.SPCost || cp < ab.CPCost {
				continue
			}
			out = append(out, Decision{
				Type:       DecisionSpecialAbility,
				ActingUnit: u.ID,
				Priority:   7 * w.Ability,
				Reasoning:  "ability available and affordable",
				Metadata:   map[string]any{"ability": string(ab.ID)},
			})
		}
	}
	return out
}

// generateLoadDecisions emits LoadTransport for transports with free
// cargo space next to friendly infantry.
func (dm *DecisionMaker) generateLoadDecisions(gs *engine.GameState, mine []*units.Unit, used map[bson.ObjectID]bool) []Decision {
	var out []Decision
	for _, carrier := range mine {
		if used[carrier.ID] || carrier.HasActed {
			continue
		}
		capacity := carrier.CargoCapacity()
		if capacity == 0 || len(carrier.Cargo) >= capacity {
			continue
		}
		carrierHex, ok := hexOfUnit(carrier)
		if !ok {
			continue
		}
		for _, other := range mine {
			if other.ID == carrier.ID || other.IsInCargo() {
				continue
			}
			if !other.Blueprint.Categories.Has(units.CategoryInfantry) {
				continue
			}
			otherHex, ok := hexOfUnit(other)
			if !ok || carrierHex.Distance(otherHex) > 1 {
				continue
			}
			tid := other.ID
			out = append(out, Decision{
				Type:       DecisionLoadTransport,
				ActingUnit: carrier.ID,
				TargetUnit: &tid,
				Priority:   6,
				Reasoning:  "free cargo space adjacent to friendly infantry",
			})
			used[carrier.ID] = true
			break
		}
	}
	return out
}
