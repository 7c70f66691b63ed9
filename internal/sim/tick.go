package sim

import "github.com/talgya/tribal-sim/internal/worldgrid"

// tumorSpawnCheckRadius bounds how many existing Tumors near a Spawner
// suppress further spawning ("bounded tumors-in-range", spec.md §4.9 step 6).
const (
	tumorSpawnCheckRadius = 10
	tumorSpawnCap         = 12
	agentTrailRadius      = 2
	tumorCreepRadius      = 2
	agentTrailStrength    = 4000
	tumorCreepStrength    = 9000

	// tumorFreezeTicks is set on agents caught by a saturated tumor tint.
	// tickDecrementCooldowns runs before DispatchActions each tick, so a
	// freeze applied here (after dispatch, in updateTintFields) must survive
	// one decrement before the next tick's dispatch sees it — hence 2, not
	// 1, to actually block exactly one dispatch round (spec.md §4.8 step 2).
	tumorFreezeTicks = 2
)

// clippyTint is the color tumor-creep contributions are locked to (spec.md
// §4.8 step 2).
var clippyTint = [3]int32{40, 220, 40}

// Step runs one full tick of the pipeline described in spec.md §4.9.
// actions holds one byte per agent, indexed by agentId. Returns 1 on
// success, 0 if an InvariantViolation was raised mid-tick (spec.md §7:
// "must at minimum be logged to the FFI error buffer and return failure
// from step").
func (env *Environment) Step(actions []uint8) (status int32) {
	status = 1
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Error); !ok {
				panic(r)
			}
			status = 0
		}
	}()

	env.tickDecrementCooldowns()
	env.tickDecrementTint()

	for i := range env.Map.Agents {
		if a := env.Map.Agents[i]; a != nil {
			a.Reward = 0
		}
	}

	env.DispatchActions(actions)
	env.RunWildlifeAI()

	env.updateTintFields()
	env.growTumors()
	env.autoRespawn()
	env.applySurvivalPenalties()

	env.RebuildObservations()

	env.CurrentStep++
	truncated := uint8(0)
	if env.CurrentStep >= int64(env.Cfg.MaxSteps) {
		truncated = 1
	}
	for i, a := range env.Map.Agents {
		if a != nil {
			env.Rewards[i] = a.Reward
			if a.Terminated {
				env.Terminated[i] = 1
			} else {
				env.Terminated[i] = 0
			}
		}
		env.Truncated[i] = truncated
	}
}

// tickDecrementCooldowns implements spec.md §4.9 step 1: decrement every
// thing's cooldown/frozen/shield timers (agents and buildings alike share
// these fields on the flat Thing struct).
func (env *Environment) tickDecrementCooldowns() {
	for _, t := range env.Map.Things {
		if t == nil {
			continue
		}
		if t.Cooldown > 0 {
			t.Cooldown--
		}
		if t.Frozen > 0 {
			t.Frozen--
		}
		if t.ShieldTicks > 0 {
			t.ShieldTicks--
		}
	}
}

// tickDecrementTint implements spec.md §4.9 step 2: decrement the
// action-tint countdown, clearing entries that reach zero.
func (env *Environment) tickDecrementTint() {
	for i := range env.tint.countdown {
		if env.tint.countdown[i] <= 0 {
			continue
		}
		env.tint.countdown[i]--
		if env.tint.countdown[i] == 0 {
			env.tint.code[i] = ActionTintNone
			env.tint.color[i] = [3]uint8{}
		}
	}
}

// updateTintFields implements spec.md §4.8: decay both fields, then
// accrete a contribution from every live Agent, Lantern, and Tumor.
func (env *Environment) updateTintFields() {
	env.Map.Tint.Decay(worldgrid.TrailDecayNum, worldgrid.TrailDecayDen)
	env.Map.TumorTint.Decay(worldgrid.TumorDecayNum, worldgrid.TumorDecayDen)

	for _, a := range env.Map.Agents {
		if a == nil || a.Terminated {
			continue
		}
		team := env.Team(a.TeamID)
		color := [3]uint8{255, 255, 255}
		if team != nil {
			color = team.Color
		}
		env.Map.Tint.Accrete(a.Pos, agentTrailRadius, agentTrailStrength, int32(color[0]), int32(color[1]), int32(color[2]))
	}
	for _, l := range env.Map.ThingsByKind[worldgrid.KindLantern] {
		team := env.Team(l.TeamID)
		color := [3]uint8{255, 255, 255}
		if team != nil {
			color = team.Color
		}
		env.Map.Tint.Accrete(l.Pos, agentTrailRadius, agentTrailStrength, int32(color[0]), int32(color[1]), int32(color[2]))
	}
	for _, tumor := range env.Map.ThingsByKind[worldgrid.KindTumor] {
		env.Map.TumorTint.Accrete(tumor.Pos, tumorCreepRadius, tumorCreepStrength, clippyTint[0], clippyTint[1], clippyTint[2])
	}
	env.freezeNearSaturatedTumorTint()

	env.Map.Tint.SortActiveByX()
	env.Map.TumorTint.SortActiveByX()
}

// freezeNearSaturatedTumorTint implements spec.md §4.8 step 2 and the
// glossary's "Frozen": entities on or adjacent to a tile whose tumor tint
// has reached full saturation within ClippyTintTolerance of clippyTint are
// frozen for the next tick.
func (env *Environment) freezeNearSaturatedTumorTint() {
	for _, idx := range env.Map.TumorTint.ActiveTiles() {
		p := env.Map.TumorTint.PosAt(idx)
		if !env.Map.TumorTint.SaturatedNear(p, clippyTint[0], clippyTint[1], clippyTint[2], worldgrid.ClippyTintTolerance) {
			continue
		}
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				np := worldgrid.Pos{X: p.X + dx, Y: p.Y + dy}
				occ := env.Map.Blocking(np)
				if occ != nil && occ.Kind == worldgrid.KindAgent {
					occ.Frozen = tumorFreezeTicks
				}
			}
		}
	}
}

// growTumors implements spec.md §4.9 step 6: each Spawner has a stochastic
// chance to emit a Tumor in an empty neighbor, bounded by nearby Tumor
// density.
func (env *Environment) growTumors() {
	for _, spawner := range env.Map.ThingsByKind[worldgrid.KindSpawner] {
		if !env.Rng.Chance(float64(env.Cfg.TumorSpawnRate)) {
			continue
		}
		if len(env.Spatial.CollectThingsInRange(spawner.Pos, tumorSpawnCheckRadius)) > 0 &&
			env.countNearbyTumors(spawner.Pos) >= tumorSpawnCap {
			continue
		}
		if spot, ok := env.findRespawnSpot(spawner.Pos); ok {
			env.AddThing(&worldgrid.Thing{
				Kind: worldgrid.KindTumor, Pos: spot, TeamID: -1, HomeSpawner: spawner.ID,
			})
		}
	}
}

func (env *Environment) countNearbyTumors(center worldgrid.Pos) int {
	count := 0
	for _, t := range env.Spatial.CollectThingsInRange(center, tumorSpawnCheckRadius) {
		if t.Kind == worldgrid.KindTumor {
			count++
		}
	}
	return count
}

// applySurvivalPenalties implements spec.md §4.9 step 8's survival half;
// the death-penalty half is applied immediately inside killAgent, once per
// death, which is equivalent to applying it once per newly-dead agent here.
func (env *Environment) applySurvivalPenalties() {
	for _, a := range env.Map.Agents {
		if a != nil && !a.Terminated {
			a.Reward += env.Cfg.SurvivalPenalty
		}
	}
}
