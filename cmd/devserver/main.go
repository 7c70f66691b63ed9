// Command devserver runs a deterministic environment and exposes the
// read-only dev HTTP introspection API over it (SPEC_FULL.md §6.4),
// recording periodic per-team snapshots to SQLite. Grounded on the
// teacher's cmd/worldsim, which wires persistence.Open + api.Server around
// one long-running simulation loop the same way.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talgya/tribal-sim/internal/api"
	"github.com/talgya/tribal-sim/internal/entropy"
	"github.com/talgya/tribal-sim/internal/persistence"
	"github.com/talgya/tribal-sim/internal/sim"
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed")
	dbPath := flag.String("db", "data/episodes.db", "episode metrics database path")
	apiPort := flag.Int("port", 8799, "dev HTTP API port (loopback only)")
	snapshotEvery := flag.Int("snapshot-every", 100, "record a team snapshot row every N steps")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	os.MkdirAll("data", 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open episode database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("episode database opened", "path", *dbPath)

	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	env := sim.NewEnvironment(cfg)
	slog.Info("environment created", "seed", *seed)

	apiServer := &api.Server{Env: env, Port: *apiPort}
	apiServer.Start()

	runID := persistence.NewRunID()
	startedAt := time.Now().UTC().Format(time.RFC3339)
	rng := entropy.New(*seed + 1) // action sampling is a harness concern, not core determinism

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for i := 0; ; i++ {
			actions := make([]uint8, sim.MapAgents)
			for a := range env.Map.Agents {
				if env.Map.Agents[a] != nil && !env.Map.Agents[a].Terminated {
					actions[a] = uint8(rng.Intn(100))
				}
			}
			if env.Step(actions) == 0 {
				slog.Error("step reported failure", "step", env.CurrentStep, "errorCode", env.ErrorCode())
				return
			}

			if *snapshotEvery > 0 && i%(*snapshotEvery) == 0 {
				recordSnapshots(db, env, runID)
			}
		}
	}()

	<-stop
	slog.Info("shutting down", "finalStep", env.CurrentStep)
	saveEpisodeSummary(db, env, runID, *seed, startedAt)
}

func recordSnapshots(db *persistence.DB, env *sim.Environment, runID string) {
	for _, team := range env.Teams {
		if team == nil {
			continue
		}
		alive := 0
		for _, a := range env.Map.Agents {
			if a != nil && !a.Terminated && a.TeamID == team.ID {
				alive++
			}
		}
		row := persistence.TeamSnapshotRow{
			RunID: runID, TeamID: int(team.ID), Step: env.CurrentStep,
			Food: team.Stockpile.Food, Wood: team.Stockpile.Wood,
			Stone: team.Stockpile.Stone, Gold: team.Stockpile.Gold,
			Water: team.Stockpile.Water, TerritoryTiles: team.TerritoryTiles,
			AliveAgents: alive,
		}
		if err := db.SaveTeamSnapshot(row); err != nil {
			slog.Warn("save team snapshot failed", "team", team.ID, "error", err)
		}
	}
}

func saveEpisodeSummary(db *persistence.DB, env *sim.Environment, runID string, seed int64, startedAt string) {
	alive := 0
	var rewardSum float64
	for i, a := range env.Map.Agents {
		if a != nil && !a.Terminated {
			alive++
		}
		rewardSum += float64(env.Rewards[i])
	}
	mean := 0.0
	if sim.MapAgents > 0 {
		mean = rewardSum / float64(sim.MapAgents)
	}
	row := persistence.EpisodeRow{
		RunID: runID, Seed: seed, StartedAt: startedAt,
		FinalStep: env.CurrentStep, Truncated: env.CurrentStep >= int64(env.Cfg.MaxSteps),
		NumAgentsAlive: alive, MeanReward: mean,
	}
	if err := db.SaveEpisode(row); err != nil {
		slog.Error("save episode summary failed", "error", err)
	}
}
