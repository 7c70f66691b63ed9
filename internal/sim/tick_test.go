package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// §4.8 step 2 / glossary "Frozen": an agent on a tile whose TumorTint has
// reached full saturation within ClippyTintTolerance of clippyTint is
// frozen for the next tick, and a frozen agent's actions are rejected.
func TestSaturatedTumorTintFreezesAdjacentAgent(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	tumorPos := worldgrid.Pos{X: 10, Y: 10}
	agentPos := worldgrid.Pos{X: 11, Y: 10} // Moore-adjacent to tumorPos
	agent := newTestAgent(env, 0, 0, agentPos)

	// Force the tumor tile straight to saturation at the clippy hue,
	// rather than waiting out the real decay/accretion cadence.
	env.Map.TumorTint.Accrete(tumorPos, 0, worldgrid.MaxTintAccum,
		clippyTint[0]*100_000, clippyTint[1]*100_000, clippyTint[2]*100_000)

	env.freezeNearSaturatedTumorTint()

	if agent.Frozen == 0 {
		t.Fatalf("agent adjacent to saturated clippy-tint tile was not frozen")
	}

	actions := []uint8{11} // MOVE South
	env.DispatchActions(actions)
	if agent.Pos != agentPos {
		t.Fatalf("frozen agent moved from %v to %v", agentPos, agent.Pos)
	}
}

// A tumor tile that never saturates must never freeze anything.
func TestUnsaturatedTumorTintDoesNotFreeze(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	tumorPos := worldgrid.Pos{X: 10, Y: 10}
	agentPos := worldgrid.Pos{X: 11, Y: 10}
	agent := newTestAgent(env, 0, 0, agentPos)
	env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: tumorPos, TeamID: -1})

	env.updateTintFields()

	if agent.Frozen != 0 {
		t.Fatalf("agent frozen by a freshly-placed, unsaturated tumor tint")
	}
}
