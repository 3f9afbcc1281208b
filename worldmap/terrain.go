package worldmap

import "github.com/nicoberrocal/wasp-assault-engine/units"

// Terrain is the closed enum of hex terrain types (spec §3).
type Terrain string

const (
	DeepWater    Terrain = "deep_water"
	ShallowWater Terrain = "shallow_water"
	Beach        Terrain = "beach"
	Clear        Terrain = "clear"
	LightWoods   Terrain = "light_woods"
	HeavyWoods   Terrain = "heavy_woods"
	Urban        Terrain = "urban"
	Hills        Terrain = "hills"
	Mountains    Terrain = "mountains"
)

// Impassable is the sentinel movement cost for a category/terrain pair
// that cannot be entered at all.
const Impassable = -1

// TerrainSpec is the static per-terrain rule table entry (spec §3: "Each
// terrain carries: move cost, defense bonus, LOS-blocking flag,
// landing-allowed flag, concealment bonus").
type TerrainSpec struct {
	Name             string
	DefenseBonus     int
	Concealment      int
	BlocksLOS        bool
	SoftBlocksLOS    bool // blocks LOS between hexes beyond it, not to adjacent hexes (Heavy Woods rule)
	LandingAllowed   map[units.Category]bool
	groundMoveCost   int // cost for a generic ground-capable unit; Impassable if none
	amphibiousCost   int // cost for amphibious/landing-craft categories
	aircraftIgnoresTerrain bool
}

// terrainCatalog is the closed per-terrain data table (spec §3/§4.2).
var terrainCatalog = map[Terrain]TerrainSpec{
	DeepWater: {
		Name:           "Deep Water",
		DefenseBonus:   0,
		Concealment:    0,
		BlocksLOS:      false,
		groundMoveCost: Impassable,
		amphibiousCost: 2,
		LandingAllowed: map[units.Category]bool{
			units.CategoryShip:          true,
			units.CategoryLandingCraft:  true,
			units.CategoryHelicopter:    true,
			units.CategoryAircraft:      true,
		},
	},
	ShallowWater: {
		Name:           "Shallow Water",
		DefenseBonus:   0,
		Concealment:    0,
		BlocksLOS:      false,
		groundMoveCost: Impassable,
		amphibiousCost: 1,
		LandingAllowed: map[units.Category]bool{
			units.CategoryShip:         true,
			units.CategoryLandingCraft: true,
			units.CategoryHelicopter:   true,
			units.CategoryAircraft:     true,
		},
	},
	Beach: {
		Name:           "Beach",
		DefenseBonus:   0,
		Concealment:    0,
		BlocksLOS:      false,
		groundMoveCost: 1,
		amphibiousCost: 1,
		LandingAllowed: map[units.Category]bool{
			units.CategoryInfantry:      true,
			units.CategoryGroundVehicle: true,
			units.CategoryArtillery:     true,
			units.CategorySpecialForces: true,
			units.CategoryLandingCraft:  true,
			units.CategoryHelicopter:    true,
			units.CategoryAircraft:      true,
		},
	},
	Clear: {
		Name:           "Clear",
		DefenseBonus:   0,
		Concealment:    0,
		BlocksLOS:      false,
		groundMoveCost: 1,
		amphibiousCost: 1,
		LandingAllowed: allGroundCategories(true),
	},
	LightWoods: {
		Name:           "Light Woods",
		DefenseBonus:   1,
		Concealment:    1,
		BlocksLOS:      false,
		groundMoveCost: 2,
		amphibiousCost: 2,
		LandingAllowed: allGroundCategories(true),
	},
	HeavyWoods: {
		Name:           "Heavy Woods",
		DefenseBonus:   2,
		Concealment:    2,
		BlocksLOS:      true,
		SoftBlocksLOS:  true,
		groundMoveCost: 3,
		amphibiousCost: 3,
		LandingAllowed: allGroundCategories(true),
	},
	Urban: {
		Name:           "Urban",
		DefenseBonus:   2,
		Concealment:    1,
		BlocksLOS:      false,
		groundMoveCost: 2,
		amphibiousCost: 2,
		LandingAllowed: allGroundCategories(true),
	},
	Hills: {
		Name:           "Hills",
		DefenseBonus:   1,
		Concealment:    0,
		BlocksLOS:      false,
		groundMoveCost: 2,
		amphibiousCost: 2,
		LandingAllowed: allGroundCategories(true),
	},
	Mountains: {
		Name:           "Mountains",
		DefenseBonus:   2,
		Concealment:    0,
		BlocksLOS:      true,
		groundMoveCost: 3,
		amphibiousCost: Impassable,
		LandingAllowed: map[units.Category]bool{
			units.CategoryInfantry:      true,
			units.CategorySpecialForces: true,
			units.CategoryHelicopter:    true,
			units.CategoryAircraft:      true,
		},
	},
}

func allGroundCategories(v bool) map[units.Category]bool {
	return map[units.Category]bool{
		units.CategoryInfantry:      v,
		units.CategoryGroundVehicle: v,
		units.CategoryArtillery:     v,
		units.CategorySpecialForces: v,
		units.CategoryLandingCraft:  v,
		units.CategoryHelicopter:    v,
		units.CategoryAircraft:      v,
	}
}

// Spec returns the static rule-table entry for a terrain type.
func Spec(t Terrain) TerrainSpec {
	return terrainCatalog[t]
}

// IsWater reports whether t is shallow or deep water.
func IsWater(t Terrain) bool {
	return t == ShallowWater || t == DeepWater
}
