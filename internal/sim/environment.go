package sim

import (
	"github.com/talgya/tribal-sim/internal/entropy"
	"github.com/talgya/tribal-sim/internal/spatial"
	"github.com/talgya/tribal-sim/internal/teams"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// AgentStats tallies the per-agent action counters spec.md §4.3 requires.
type AgentStats struct {
	ActionNoop          int64
	ActionMove          int64
	ActionAttack        int64
	ActionUse           int64
	ActionSwap          int64
	ActionPlant         int64
	ActionPut           int64
	ActionBuild         int64
	ActionPlantResource int64
	ActionOrient        int64
	ActionInvalid       int64
}

// actionTint is the short-lived per-tile combat/heal highlight layer used
// only by observations (spec.md §4.4, §4.9 step 2).
type actionTint struct {
	countdown []int32
	color     [][3]uint8
	code      []uint8
}

func newActionTint(w, h int32) actionTint {
	n := int(w) * int(h)
	return actionTint{
		countdown: make([]int32, n),
		color:     make([][3]uint8, n),
		code:      make([]uint8, n),
	}
}

// Tint codes referenced by §4.3 ATTACK/USE.
const (
	ActionTintNone uint8 = iota
	ActionTintHit
	ActionTintHealMonk
	ActionTintHealBread
	ActionTintShield
)

// Environment is the authoritative simulation core: the grids, entity
// registry, spatial index, team state, and per-episode buffers the FFI
// surface (internal/ffi) exposes to the host (spec.md §1, §5).
//
// Grounded on tobyjaguar-mini-world/internal/engine.Simulation's role as
// the struct that "ties together all world systems" — here generalized from
// settlement/faction/market/weather wiring to grid/spatial-index/team-
// stockpile wiring per spec.md §3/§4.
type Environment struct {
	Cfg Config

	Map     *worldgrid.Map
	Spatial *spatial.Index
	Teams   [MaxTeams]*teams.Team
	Rng     *entropy.Source

	Stats [MapAgents]AgentStats

	Observations []uint8 // [MapAgents][ObservationLayers][W][H]
	Rewards      [MapAgents]float32
	Terminated   [MapAgents]uint8
	Truncated    [MapAgents]uint8

	CurrentStep int64

	tint actionTint

	lastErr lastErrorSlot
}

// NewEnvironment constructs and initializes a new episode (spec.md §4.1
// newEnvironment). Biome/terrain generation is the host's responsibility
// (spec.md §1 scopes it out); callers populate Map.Terrain/Elevation via
// SetTerrain/SetElevation (or the test helpers in worldgrid) before the
// first Step.
func NewEnvironment(cfg Config) *Environment {
	cfg.Normalize()
	env := &Environment{Cfg: cfg}
	env.reset(cfg.Seed)
	return env
}

// reset rebuilds all per-episode state from scratch using seed, without
// touching cfg.
func (env *Environment) reset(seed int64) {
	env.Map = worldgrid.NewMap(MapWidth, MapHeight, MapAgents)
	env.Spatial = spatial.New(MapWidth, MapHeight, spatial.DefaultCellSize)
	env.Rng = entropy.New(seed)
	env.tint = newActionTint(MapWidth, MapHeight)
	env.CurrentStep = 0
	env.Observations = make([]uint8, MapAgents*ObservationLayers*ObservationWidth*ObservationHeight)

	for i := range env.Teams {
		env.Teams[i] = teams.NewTeam(int8(i))
		env.Teams[i].FogRevealed = make([]bool, MapWidth*MapHeight)
	}
	for i := range env.Stats {
		env.Stats[i] = AgentStats{}
	}
	for i := range env.Rewards {
		env.Rewards[i] = 0
		env.Terminated[i] = 0
		env.Truncated[i] = 0
	}
}

// Reset rebuilds the environment for a new episode using the same
// configuration (spec.md §4.1 reset()).
func (env *Environment) Reset() {
	env.reset(env.Cfg.Seed)
}

// Destroy releases per-episode storage (spec.md §5 scoped resources). The
// Go GC reclaims everything once the Environment is unreferenced; Destroy
// exists so the FFI surface has a symmetric lifecycle call and so held
// slices are dropped promptly rather than at next GC.
func (env *Environment) Destroy() {
	env.Map = nil
	env.Spatial = nil
	env.Observations = nil
}

// AddThing inserts t into the map's registry/grid layer and the spatial
// index in lockstep — the coupling spec.md §4.1/§4.2 requires.
func (env *Environment) AddThing(t *worldgrid.Thing) {
	env.Map.Add(t)
	if env.Map.IsValidPos(t.Pos) {
		env.Spatial.Add(t)
	}
}

// RemoveThing is idempotent: clears t from grid, overlay, spatial index,
// and registries (spec.md §4.1 removeThing).
func (env *Environment) RemoveThing(t *worldgrid.Thing) {
	env.Spatial.Remove(t)
	env.Map.Remove(t)
}

// MoveThing relocates a blocking-layer thing from oldPos to newPos,
// updating grid and spatial index together.
func (env *Environment) MoveThing(t *worldgrid.Thing, newPos worldgrid.Pos) {
	oldPos := t.Pos
	t.Pos = newPos
	env.Map.MoveBlocking(t, oldPos)
	env.Spatial.Move(t, oldPos)
}

// Team returns the team by id, or nil for neutral (-1) or an invalid id.
func (env *Environment) Team(id int8) *teams.Team {
	if id < 0 || int(id) >= len(env.Teams) {
		return nil
	}
	return env.Teams[id]
}

// TeamOf returns t's owning team.
func (env *Environment) TeamOf(t *worldgrid.Thing) *teams.Team {
	return env.Team(t.TeamID)
}

// setActionTint stamps the short-lived combat/heal highlight at p, cleared
// automatically by the step pipeline's tint-countdown decrement (§4.9 step 2).
func (env *Environment) setActionTint(p worldgrid.Pos, code uint8, color [3]uint8, ticks int32) {
	if !env.Map.IsValidPos(p) {
		return
	}
	idx := env.Map.Index(p)
	env.tint.countdown[idx] = ticks
	env.tint.color[idx] = color
	env.tint.code[idx] = code
}
