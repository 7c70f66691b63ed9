package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/worldgrid"
)

func newTestAgent(env *Environment, agentID int32, teamID int8, pos worldgrid.Pos) *worldgrid.Thing {
	agent := &worldgrid.Thing{
		Kind: worldgrid.KindAgent, Pos: pos, TeamID: teamID, AgentID: agentID,
		HP: 10, MaxHP: 10, AttackDamage: 2, UnitClass: worldgrid.UnitVillager,
	}
	env.AddThing(agent)
	return agent
}

// Testable property 4 (spec.md §8): action determinism — same seed, same
// action stream, byte-identical observation/reward/terminal/truncation
// buffers at every step.
func TestStepIsDeterministicAcrossIdenticalEnvironments(t *testing.T) {
	build := func() *Environment {
		cfg := DefaultConfig()
		cfg.Seed = 99
		env := NewEnvironment(cfg)
		newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
		env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindTree, Pos: worldgrid.Pos{X: 20, Y: 20}, TeamID: -1, ResourceCount: ResourceNodeInitial})
		return env
	}

	envA := build()
	envB := build()

	actions := make([]uint8, MapAgents)
	actions[0] = 11 // MOVE South

	for step := 0; step < 20; step++ {
		statusA := envA.Step(actions)
		statusB := envB.Step(actions)
		if statusA != statusB {
			t.Fatalf("step %d: status mismatch %d vs %d", step, statusA, statusB)
		}
		for i := range envA.Observations {
			if envA.Observations[i] != envB.Observations[i] {
				t.Fatalf("step %d: observation byte %d diverged: %d vs %d", step, i, envA.Observations[i], envB.Observations[i])
			}
		}
		if envA.Rewards[0] != envB.Rewards[0] {
			t.Fatalf("step %d: reward diverged: %v vs %v", step, envA.Rewards[0], envB.Rewards[0])
		}
		if envA.Terminated[0] != envB.Terminated[0] || envA.Truncated[0] != envB.Truncated[0] {
			t.Fatalf("step %d: terminal/truncation flags diverged", step)
		}
	}
}

// Testable property 3 (spec.md §8): NOOP idempotence — stepping with all
// actions zero leaves positions, HP, and inventories untouched apart from
// currentStep and survival-penalty bookkeeping.
func TestNoopStepLeavesAgentStateUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.SurvivalPenalty = 0
	env := NewEnvironment(cfg)
	agent := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})

	posBefore := agent.Pos
	hpBefore := agent.HP
	invBefore := agent.Inventory

	actions := make([]uint8, MapAgents) // all NOOP
	status := env.Step(actions)
	if status != 1 {
		t.Fatalf("Step returned %d, want 1 (success)", status)
	}

	if agent.Pos != posBefore {
		t.Fatalf("NOOP step moved agent from %v to %v", posBefore, agent.Pos)
	}
	if agent.HP != hpBefore {
		t.Fatalf("NOOP step changed HP from %d to %d", hpBefore, agent.HP)
	}
	if agent.Inventory != invBefore {
		t.Fatalf("NOOP step changed inventory from %+v to %+v", invBefore, agent.Inventory)
	}
	if env.CurrentStep != 1 {
		t.Fatalf("CurrentStep = %d, want 1", env.CurrentStep)
	}
	if env.Stats[0].ActionNoop != 1 {
		t.Fatalf("ActionNoop = %d, want 1", env.Stats[0].ActionNoop)
	}
}

// E6 (spec.md §8): an actor walled in on all four cardinals gets
// actionInvalid on any MOVE, with position unchanged.
func TestStuckAgentIncrementsActionInvalid(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	center := worldgrid.Pos{X: 10, Y: 10}
	agent := newTestAgent(env, 0, 0, center)

	for _, d := range []worldgrid.Pos{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindWall, Pos: center.Add(d), TeamID: -1, HP: 10, MaxHP: 10})
	}

	actions := make([]uint8, MapAgents)
	actions[0] = 10 // MOVE North
	env.Step(actions)

	if agent.Pos != center {
		t.Fatalf("stuck agent moved to %v, want unchanged %v", agent.Pos, center)
	}
	if env.Stats[0].ActionInvalid != 1 {
		t.Fatalf("ActionInvalid = %d, want 1", env.Stats[0].ActionInvalid)
	}
	if agent.Orientation != worldgrid.North {
		t.Fatalf("orientation = %v, want North even though the move failed", agent.Orientation)
	}
}

// raiseInvariant panics after latching the error (spec.md §7: only
// InvariantViolation-class errors escalate to the FFI error slot).
func TestRaiseInvariantLatchesErrorBeforePanicking(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatalf("raiseInvariant did not panic")
			}
			if _, ok := r.(*Error); !ok {
				t.Fatalf("panic value = %T, want *Error", r)
			}
		}()
		env.raiseInvariant("forced invariant failure: %s", "testing")
	}()

	if !env.HasError() {
		t.Fatalf("HasError() = false after raiseInvariant, want true")
	}
	if env.ErrorCode() != int32(KindInvariantViolation) {
		t.Fatalf("ErrorCode() = %d, want %d (KindInvariantViolation)", env.ErrorCode(), int32(KindInvariantViolation))
	}
	env.ClearError()
	if env.HasError() {
		t.Fatalf("HasError() = true after ClearError")
	}
}

func TestConfigNormalizeAppliesDefaultsForNaNAndNonPositive(t *testing.T) {
	cfg := Config{MaxSteps: -1}
	cfg.Normalize()
	def := DefaultConfig()
	if cfg.MaxSteps != def.MaxSteps {
		t.Fatalf("MaxSteps = %d, want default %d", cfg.MaxSteps, def.MaxSteps)
	}
	if cfg.HeartReward != def.HeartReward {
		t.Fatalf("HeartReward = %v, want default %v", cfg.HeartReward, def.HeartReward)
	}
}
