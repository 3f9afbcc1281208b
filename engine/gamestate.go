package engine

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nicoberrocal/wasp-assault-engine/hexgrid"
	"github.com/nicoberrocal/wasp-assault-engine/players"
	"github.com/nicoberrocal/wasp-assault-engine/rng"
	"github.com/nicoberrocal/wasp-assault-engine/units"
	"github.com/nicoberrocal/wasp-assault-engine/worldmap"
)

// GameState is the full mutable world the engine operates over (spec
// §3 GameState). Player, Unit, and Objective instances live in arenas
// here and are referenced elsewhere by bson.ObjectID, breaking the
// unit↔player↔gamestate↔engine cyclic references the source exhibits
// (spec §9 design note).
type GameState struct {
	ID         bson.ObjectID            `bson:"_id" json:"id"`
	Turn       int                      `bson:"turn" json:"turn"`
	MaxTurns   int                      `bson:"maxTurns" json:"maxTurns"`
	Phase      Phase                    `bson:"phase" json:"phase"`
	ActiveSide units.Side               `bson:"activeSide" json:"activeSide"`
	Players    map[bson.ObjectID]*players.Player `bson:"players" json:"players"`
	PlayerOrder []bson.ObjectID         `bson:"playerOrder" json:"playerOrder"`
	Map        *worldmap.Map            `bson:"map" json:"map"`
	Units      map[bson.ObjectID]*units.Unit `bson:"units" json:"units"`
	Log        []ActionLog              `bson:"log" json:"log"`
	IsGameOver bool                     `bson:"isGameOver" json:"isGameOver"`
	Winner     *units.Side              `bson:"winner,omitempty" json:"winner,omitempty"`
	RNG        *rng.RNG                 `bson:"rng" json:"rng"`

	unitsCreated int
}

// Engine is the single facade through which all state mutation and
// querying happens (spec §6: "The core exposes a single boundary: the
// Engine facade").
type Engine struct {
	state *GameState
	ai    map[bson.ObjectID]AIController
}

// NewEngine constructs a fresh Engine and GameState from a scenario
// configuration (spec §6: "Engine::new(scenarioConfig) → (Engine,
// GameState)").
func NewEngine(cfg ScenarioConfig) (*Engine, *GameState) {
	offshore := worldmap.Edge(cfg.OffshoreEdge)
	if offshore == "" {
		offshore = worldmap.EdgeWest
	}
	m := worldmap.NewMap(cfg.Width, cfg.Height, offshore)
	for key, code := range cfg.Terrain {
		col, row, ok := parseHexKey(key)
		if !ok {
			continue
		}
		m.SetTerrain(hexgrid.FromOffset(col, row, hexgrid.OffsetOddR), worldmap.Terrain(code))
	}
	for _, os := range cfg.Objectives {
		h := hexgrid.Hex{Q: os.Hex[0], R: os.Hex[1], S: os.Hex[2]}
		_ = m.AddObjective(worldmap.NewObjective(bson.NewObjectID(), objectiveTypeFromCode(os.Type), h, os.Priority))
	}

	var seed int64 = 1
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	gs := &GameState{
		ID:         bson.NewObjectID(),
		Turn:       1,
		MaxTurns:   cfg.MaxTurns,
		Phase:      PhaseEvent,
		ActiveSide: units.SideAssault,
		Players:    make(map[bson.ObjectID]*players.Player),
		Map:        m,
		Units:      make(map[bson.ObjectID]*units.Unit),
		RNG:        rng.New(seed),
	}

	assaultID := bson.NewObjectID()
	wasp := players.NewWaspSystemStatus(cfg.Assault.DefensiveAmmo)
	assault := players.NewPlayer(assaultID, units.SideAssault, &wasp)
	gs.Players[assaultID] = assault
	gs.PlayerOrder = append(gs.PlayerOrder, assaultID)
	spawnUnits(gs, assault, cfg.Assault.Units, units.SideAssault)

	defenderID := bson.NewObjectID()
	defender := players.NewPlayer(defenderID, units.SideDefender, nil)
	gs.Players[defenderID] = defender
	gs.PlayerOrder = append(gs.PlayerOrder, defenderID)
	spawnUnits(gs, defender, cfg.Defender.Units, units.SideDefender)

	e := &Engine{state: gs, ai: make(map[bson.ObjectID]AIController)}
	return e, gs
}

func parseHexKey(key string) (col, row int, ok bool) {
	n, err := fmt.Sscanf(key, "%d,%d", &col, &row)
	return col, row, err == nil && n == 2
}

func spawnUnits(gs *GameState, p *players.Player, spawns []UnitSpawn, side units.Side) {
	for _, s := range spawns {
		id := bson.NewObjectID()
		bp := units.Blueprint{
			Type:       s.Type,
			Side:       side,
			Stats:      s.Stats,
			Categories: units.ParseCategorySet(s.Categories),
		}
		for _, a := range s.Abilities {
			if ab, ok := units.LookupAbility(a); ok {
				bp.SpecialAbilities = append(bp.SpecialAbilities, ab.ID)
			}
		}
		u := units.NewUnit(id, bp)
		u.Hidden = s.Hidden
		pos := units.Position{Q: s.Hex[0], R: s.Hex[1], S: s.Hex[2]}
		u.Position = &pos
		gs.Units[id] = u
		gs.unitsCreated++
		p.AddUnit(id)
	}
}

// GetState returns the live GameState (spec §6 query: "getState").
func (e *Engine) GetState() *GameState {
	return e.state
}

// GetPlayer looks up a player by id (spec §6 query: "getPlayer(id)").
func (e *Engine) GetPlayer(id bson.ObjectID) (*players.Player, bool) {
	p, ok := e.state.Players[id]
	return p, ok
}

// GetUnit looks up a unit by id (spec §6 query: "getUnit(id)").
func (e *Engine) GetUnit(id bson.ObjectID) (*units.Unit, bool) {
	u, ok := e.state.Units[id]
	return u, ok
}

// ListObjectives enumerates every objective on the map (spec §6 query:
// "listObjectives").
func (e *Engine) ListObjectives() []*worldmap.Objective {
	return e.state.Map.AllObjectives()
}

// playerOf returns the player owning unit id, if any.
func (gs *GameState) playerOf(unitID bson.ObjectID) (*players.Player, bool) {
	for _, p := range gs.Players {
		if p.OwnsUnit(unitID) {
			return p, true
		}
	}
	return nil, false
}

// hexOf returns u's current hex, converting from the units.Position
// plain struct to hexgrid.Hex. ok is false for a unit currently in
// cargo (no map position, spec §3 invariant).
func hexOf(u *units.Unit) (hexgrid.Hex, bool) {
	if u.Position == nil {
		return hexgrid.Hex{}, false
	}
	return hexgrid.Hex{Q: u.Position.Q, R: u.Position.R, S: u.Position.S}, true
}

func toUnitsPosition(h hexgrid.Hex) units.Position {
	return units.Position{Q: h.Q, R: h.R, S: h.S}
}
