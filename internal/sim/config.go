// Package sim implements the deterministic step pipeline: the action
// dispatcher, observation composer, tint field, wildlife AI, combat, and
// building/resource model described in spec.md §4. It owns the single
// Environment instance the FFI surface (internal/ffi) wraps.
package sim

import (
	"math"

	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// Grid and observation geometry (spec.md §3, §4.4).
const (
	MapWidth  = 128
	MapHeight = 128

	MaxTeams            = 8
	MapAgentsPerVillage = 125
	MapAgents           = MaxTeams * MapAgentsPerVillage

	ObservationRadius = 5
	ObservationWidth  = 2*ObservationRadius + 1
	ObservationHeight = 2*ObservationRadius + 1

	// Layer layout: one-hot terrain block, one-hot kind-presence block, then
	// team/orientation/unitClass/tint/obscured (spec.md §4.4).
	terrainLayerBase  = 0
	kindLayerBase     = terrainLayerBase + int(worldgrid.NumTerrainTypes)
	TeamLayer         = kindLayerBase + int(worldgrid.NumKinds)
	OrientationLayer  = TeamLayer + 1
	UnitClassLayer    = OrientationLayer + 1
	TintLayer         = UnitClassLayer + 1
	ObscuredLayer     = TintLayer + 1
	ObservationLayers = ObscuredLayer + 1

	MapObjectAltarCooldown           = 10
	MapObjectAltarAutoSpawnThreshold = 5
	ArcherBaseRange                  = 3
	ResourceNodeInitial              = 5

	// Wildlife AI tuning (spec.md §4.7).
	CowHerdFollowChance = 0.4
	CowRandomMoveChance = 0.1
	HerdWanderDistance  = 6
	BearAggroRadius     = 6
	WolfHuntRadius       = 8
	PredatorDefaultDamage = 2
)

// VictoryCondition selects how/when an episode ends beyond maxSteps
// (spec.md §6.1: "victoryCondition ∈ 0..5").
type VictoryCondition int32

const (
	VictoryNone VictoryCondition = iota
	VictoryElimination
	VictoryTerritory
	VictoryEconomic
	VictoryScore
	VictoryTimeLimit
)

// Config mirrors CEnvironmentConfig (spec.md §6.3). Every float reward knob
// defaults when NaN; maxSteps defaults when non-positive.
type Config struct {
	Seed             int64
	MaxSteps         int32
	VictoryCondition VictoryCondition

	TumorSpawnRate  float32
	HeartReward     float32
	OreReward       float32
	BarReward       float32
	WoodReward      float32
	WaterReward     float32
	WheatReward     float32
	SpearReward     float32
	ArmorReward     float32
	FoodReward      float32
	ClothReward     float32
	TumorKillReward float32
	SurvivalPenalty float32
	DeathPenalty    float32
}

// DefaultConfig returns the spec's baseline reward/step configuration.
func DefaultConfig() Config {
	return Config{
		Seed:             1,
		MaxSteps:         16384,
		VictoryCondition: VictoryNone,
		TumorSpawnRate:   0.01,
		HeartReward:      1.0,
		OreReward:        0.02,
		BarReward:        0.1,
		WoodReward:       0.01,
		WaterReward:      0.01,
		WheatReward:      0.01,
		SpearReward:      0.05,
		ArmorReward:      0.05,
		FoodReward:       0.01,
		ClothReward:      0.05,
		TumorKillReward:  0.5,
		SurvivalPenalty:  -0.0001,
		DeathPenalty:     -1.0,
	}
}

// Normalize applies spec.md §6.1/§6.3's defaulting rule: NaN float fields
// and a non-positive maxSteps keep the defaults, in place over cfg.
func (cfg *Config) Normalize() {
	def := DefaultConfig()
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	if cfg.VictoryCondition < VictoryNone || cfg.VictoryCondition > VictoryTimeLimit {
		cfg.VictoryCondition = def.VictoryCondition
	}

	floats := []struct {
		field *float32
		def   float32
	}{
		{&cfg.TumorSpawnRate, def.TumorSpawnRate},
		{&cfg.HeartReward, def.HeartReward},
		{&cfg.OreReward, def.OreReward},
		{&cfg.BarReward, def.BarReward},
		{&cfg.WoodReward, def.WoodReward},
		{&cfg.WaterReward, def.WaterReward},
		{&cfg.WheatReward, def.WheatReward},
		{&cfg.SpearReward, def.SpearReward},
		{&cfg.ArmorReward, def.ArmorReward},
		{&cfg.FoodReward, def.FoodReward},
		{&cfg.ClothReward, def.ClothReward},
		{&cfg.TumorKillReward, def.TumorKillReward},
		{&cfg.SurvivalPenalty, def.SurvivalPenalty},
		{&cfg.DeathPenalty, def.DeathPenalty},
	}
	for _, f := range floats {
		if math.IsNaN(float64(*f.field)) {
			*f.field = f.def
		}
	}
}
