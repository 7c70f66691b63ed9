// Command simrender runs a short deterministic episode against a small
// hand-placed scene and prints periodic ANSI renders, grounded on the
// teacher's cmd/worldsim's slog-driven run loop (tobyjaguar-mini-world).
// It exists for local debugging of internal/sim; the authoritative
// host-facing entry point is the FFI surface built by cmd/libsim.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/talgya/tribal-sim/internal/entropy"
	"github.com/talgya/tribal-sim/internal/sim"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed")
	steps := flag.Int("steps", 200, "number of ticks to run")
	renderEvery := flag.Int("render-every", 50, "print an ANSI render every N ticks")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	env := sim.NewEnvironment(cfg)
	slog.Info("environment created", "seed", *seed, "mapWidth", sim.MapWidth, "mapHeight", sim.MapHeight)

	placeDemoScene(env)
	slog.Info("demo scene placed")

	colorize := isatty.IsTerminal(os.Stdout.Fd())
	rng := entropy.New(*seed + 1) // separate stream: action sampling is a harness concern, not core determinism

	for i := 0; i < *steps; i++ {
		actions := make([]uint8, sim.MapAgents)
		for a := range env.Map.Agents {
			if env.Map.Agents[a] != nil && !env.Map.Agents[a].Terminated {
				actions[a] = sampleRandomAction(rng)
			}
		}
		status := env.Step(actions)
		if status == 0 {
			slog.Error("step reported failure", "tick", i, "errorCode", env.ErrorCode(), "message", env.ErrorMessage())
			break
		}

		if *renderEvery > 0 && i%(*renderEvery) == 0 {
			alive := countAliveAgents(env)
			slog.Info("tick", "n", i, "aliveAgents", alive)
			fmt.Println(env.RenderANSI(colorize))
		}
	}

	slog.Info("run complete", "ticks", *steps)
}

// placeDemoScene drops two teams' altars, a few agents, and a scattering of
// resource nodes onto otherwise-Grass terrain. Biome/terrain generation is
// out of scope (spec.md §1); this is a fixed scene for exercising the step
// pipeline, not a generator.
func placeDemoScene(env *sim.Environment) {
	for y := int32(0); y < sim.MapHeight; y++ {
		for x := int32(0); x < sim.MapWidth; x++ {
			env.Map.SetTerrain(worldgrid.Pos{X: x, Y: y}, worldgrid.Grass)
		}
	}

	altarSpots := []struct {
		team int8
		pos  worldgrid.Pos
	}{
		{0, worldgrid.Pos{X: 10, Y: 10}},
		{1, worldgrid.Pos{X: sim.MapWidth - 11, Y: sim.MapHeight - 11}},
	}
	for _, a := range altarSpots {
		env.AddThing(&worldgrid.Thing{
			Kind: worldgrid.KindAltar, Pos: a.pos, TeamID: a.team,
			HP: 10, MaxHP: 10,
		})
		for i := int32(0); i < 4; i++ {
			pos := worldgrid.Pos{X: a.pos.X + 1 + i, Y: a.pos.Y + 1}
			env.AddThing(&worldgrid.Thing{
				Kind: worldgrid.KindAgent, Pos: pos, TeamID: a.team,
				AgentID: int32(a.team)*sim.MapAgentsPerVillage + i,
				HP: 10, MaxHP: 10, AttackDamage: 2,
				UnitClass: worldgrid.UnitVillager,
			})
		}
	}

	env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindTree, Pos: worldgrid.Pos{X: 20, Y: 20}, TeamID: -1, ResourceCount: sim.ResourceNodeInitial})
	env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindCow, Pos: worldgrid.Pos{X: 64, Y: 64}, TeamID: -1, HerdID: 1, HP: 4, MaxHP: 4})
	env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindSpawner, Pos: worldgrid.Pos{X: 100, Y: 20}, TeamID: -1, HP: 1, MaxHP: 1})
}

func countAliveAgents(env *sim.Environment) int {
	count := 0
	for _, a := range env.Map.Agents {
		if a != nil && !a.Terminated {
			count++
		}
	}
	return count
}

// sampleRandomAction picks a uniformly random verb/argument byte, enough to
// exercise the dispatcher without a real policy.
func sampleRandomAction(rng *entropy.Source) uint8 {
	verb := uint8(rng.Intn(10))
	argument := uint8(rng.Intn(10))
	return verb*10 + argument
}
