package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/worldgrid"
)

func TestScaledAggroRadiusAveragesTeamDifficulty(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	for i, team := range env.Teams {
		team.Difficulty = float32(i%2) + 1 // alternates 1, 2, 1, 2, ...
	}
	got := env.scaledAggroRadius(10)
	if got != 15 {
		t.Fatalf("scaledAggroRadius = %d, want 15 (10 × average difficulty 1.5)", got)
	}
}

func TestStepTowardMovesOneTileOnEachReducingAxis(t *testing.T) {
	from := worldgrid.Pos{X: 0, Y: 0}
	target := worldgrid.Pos{X: 5, Y: -5}
	next := stepToward(from, target)
	if next != (worldgrid.Pos{X: 1, Y: -1}) {
		t.Fatalf("stepToward = %v, want (1,-1)", next)
	}

	atTarget := stepToward(target, target)
	if atTarget != target {
		t.Fatalf("stepToward at target = %v, want unchanged %v", atTarget, target)
	}
}

// predatorStrike (spec.md §4.7 step 6) clears an unclaimed Tumor at 4-cardinal
// adjacency.
func TestPredatorStrikeClearsUnclaimedTumorAdjacent(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	bear := &worldgrid.Thing{Kind: worldgrid.KindBear, Pos: worldgrid.Pos{X: 10, Y: 10}, TeamID: -1, AttackDamage: 3}
	env.AddThing(bear)

	tumorPos := worldgrid.Pos{X: 11, Y: 10}
	tumor := &worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: tumorPos, TeamID: -1, HP: 1, MaxHP: 1}
	env.AddThing(tumor)

	env.predatorStrike(bear)

	if env.Map.Blocking(tumorPos) != nil {
		t.Fatalf("unclaimed Tumor survived predatorStrike")
	}
}

func TestPredatorStrikeLeavesClaimedTumorAlone(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	bear := &worldgrid.Thing{Kind: worldgrid.KindBear, Pos: worldgrid.Pos{X: 10, Y: 10}, TeamID: -1, AttackDamage: 3}
	env.AddThing(bear)

	tumorPos := worldgrid.Pos{X: 11, Y: 10}
	tumor := &worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: tumorPos, TeamID: -1, HP: 1, MaxHP: 1, HasClaimedTerritory: true}
	env.AddThing(tumor)

	env.predatorStrike(bear)

	if env.Map.Blocking(tumorPos) == nil {
		t.Fatalf("claimed Tumor was removed by predatorStrike, want left alone")
	}
}

func TestPredatorStrikeDamagesAdjacentAgent(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	bear := &worldgrid.Thing{Kind: worldgrid.KindBear, Pos: worldgrid.Pos{X: 10, Y: 10}, TeamID: -1, AttackDamage: 3}
	env.AddThing(bear)
	agent := newTestAgent(env, 0, 0, worldgrid.Pos{X: 11, Y: 10})
	hpBefore := agent.HP

	env.predatorStrike(bear)

	if agent.HP != hpBefore-3 {
		t.Fatalf("agent HP = %d, want %d (hit for 3)", agent.HP, hpBefore-3)
	}
}
