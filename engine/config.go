package engine

import (
	"encoding/json"

	"github.com/nicoberrocal/wasp-assault-engine/units"
	"github.com/nicoberrocal/wasp-assault-engine/worldmap"
)

// UnitSpawn describes one unit to create at scenario setup (spec §6:
// "per-side unit roster (type, starting hex, hidden?)").
type UnitSpawn struct {
	Type       units.UnitType `json:"type"`
	Hex        [3]int         `json:"hex"`
	Hidden     bool           `json:"hidden,omitempty"`
	Categories []string       `json:"categories,omitempty"`
	Stats      units.Stats    `json:"stats"`
	Abilities  []string       `json:"abilities,omitempty"`
}

// ObjectiveSpawn describes one objective to place at scenario setup.
type ObjectiveSpawn struct {
	Type     string `json:"type"`
	Hex      [3]int `json:"hex"`
	Priority int    `json:"priority"`
}

// SideConfig is the per-side roster and optional AI personality (spec
// §6: "per-side unit roster..., optional AI personality per side").
type SideConfig struct {
	Units          []UnitSpawn `json:"units"`
	AIPersonality  string      `json:"aiPersonality,omitempty"`
	DefensiveAmmo  int         `json:"defensiveAmmo,omitempty"`
}

// ScenarioConfig is the persisted scenario format (spec §6): JSON-like
// record with map dimensions, per-hex terrain enum codes, objective
// list, per-side roster, turn limit, optional RNG seed, optional AI
// personality per side. Decoded with encoding/json, mirroring the
// "JSON-like record" language directly (see DESIGN.md for why no
// third-party config library is wired here).
type ScenarioConfig struct {
	Width        int                    `json:"width"`
	Height       int                    `json:"height"`
	OffshoreEdge string                 `json:"offshoreEdge"`
	Terrain      map[string]string      `json:"terrain"` // "col,row" -> terrain enum code
	Objectives   []ObjectiveSpawn       `json:"objectives"`
	Assault      SideConfig             `json:"assault"`
	Defender     SideConfig             `json:"defender"`
	MaxTurns     int                    `json:"maxTurns"`
	Seed         *int64                 `json:"seed,omitempty"`
}

// LoadScenarioConfig decodes a ScenarioConfig from its persisted JSON
// form.
func LoadScenarioConfig(data []byte) (ScenarioConfig, error) {
	var cfg ScenarioConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ScenarioConfig{}, err
	}
	return cfg, nil
}

// objectiveTypeFromCode maps a scenario config's string code to the
// closed ObjectiveType enum.
func objectiveTypeFromCode(code string) worldmap.ObjectiveType {
	return worldmap.ObjectiveType(code)
}
