package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

func TestSetStanceValidatesRangeAndAgent(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	agent := newTestAgent(env, 0, 0, worldgrid.Pos{X: 0, Y: 0})

	if got := env.SetStance(0, int32(worldgrid.StanceNoAttack)); got != 1 {
		t.Fatalf("SetStance valid = %d, want 1", got)
	}
	if agent.Stance != worldgrid.StanceNoAttack {
		t.Fatalf("Stance = %v, want StanceNoAttack", agent.Stance)
	}
	if got := env.SetStance(0, int32(worldgrid.StanceNoAttack)+1); got != 0 {
		t.Fatalf("SetStance out-of-range = %d, want 0", got)
	}
	if got := env.SetStance(999, 0); got != 0 {
		t.Fatalf("SetStance unknown agent = %d, want 0", got)
	}
	if got := env.GetStance(999); got != -1 {
		t.Fatalf("GetStance unknown agent = %d, want -1", got)
	}
}

func TestAttackMoveTargetSetQueryClear(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	newTestAgent(env, 0, 0, worldgrid.Pos{X: 0, Y: 0})

	if got := env.SetAttackMoveTarget(0, 5, 7); got != 1 {
		t.Fatalf("SetAttackMoveTarget = %d, want 1", got)
	}
	x, y, active := env.QueryAttackMoveTarget(0)
	if x != 5 || y != 7 || active != 1 {
		t.Fatalf("QueryAttackMoveTarget = (%d,%d,%d), want (5,7,1)", x, y, active)
	}
	env.ClearAttackMoveTarget(0)
	_, _, active = env.QueryAttackMoveTarget(0)
	if active != 0 {
		t.Fatalf("active = %d after clear, want 0", active)
	}
}

func TestGarrisonRequiresAdjacencyAndSameTeam(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	agent := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	building := &worldgrid.Thing{Kind: worldgrid.KindTownCenter, Pos: worldgrid.Pos{X: 10, Y: 11}, TeamID: 0, HP: 500, MaxHP: 500}
	env.AddThing(building)

	if got := env.SetGarrison(0, int32(building.ID)); got != 1 {
		t.Fatalf("SetGarrison adjacent same-team = %d, want 1", got)
	}
	if env.QueryGarrison(0) != int32(building.ID) {
		t.Fatalf("QueryGarrison = %d, want %d", env.QueryGarrison(0), building.ID)
	}

	far := &worldgrid.Thing{Kind: worldgrid.KindTownCenter, Pos: worldgrid.Pos{X: 0, Y: 0}, TeamID: 0, HP: 500, MaxHP: 500}
	env.AddThing(far)
	if got := env.SetGarrison(0, int32(far.ID)); got != 0 {
		t.Fatalf("SetGarrison non-adjacent = %d, want 0", got)
	}
	_ = agent
}

func TestResearchLevelRoundTripsAndValidatesTopic(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	if got := env.SetResearchLevel(0, 2, 3); got != 1 {
		t.Fatalf("SetResearchLevel = %d, want 1", got)
	}
	if got := env.GetResearchLevel(0, 2); got != 3 {
		t.Fatalf("GetResearchLevel = %d, want 3", got)
	}
	if got := env.SetResearchLevel(0, 999, 1); got != 0 {
		t.Fatalf("SetResearchLevel with invalid topic = %d, want 0", got)
	}
}

func TestControlGroupSaveAndQuery(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	ids := []int32{1, 2, 3}
	if got := env.SetControlGroup(0, 4, ids); got != 1 {
		t.Fatalf("SetControlGroup = %d, want 1", got)
	}
	got := env.QueryControlGroup(0, 4)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("QueryControlGroup = %v, want %v", got, ids)
	}
}

func TestTradeAtMarketSpendsFromAndCreditsTo(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	team := env.Team(0)
	team.Stockpile.Wood = 9

	if got := env.TradeAtMarket(0, int32(items.ItemWood), int32(items.ItemGold), 3); got != 1 {
		t.Fatalf("TradeAtMarket = %d, want 1", got)
	}
	if team.Stockpile.Wood != 0 {
		t.Fatalf("Wood after trade = %d, want 0 (9 - 3*marketTradeRate)", team.Stockpile.Wood)
	}
	if team.Stockpile.Gold != 3 {
		t.Fatalf("Gold after trade = %d, want 3", team.Stockpile.Gold)
	}
}

func TestSetDifficultyRejectsNonPositive(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	if got := env.SetDifficulty(0, 0); got != 0 {
		t.Fatalf("SetDifficulty(0) = %d, want 0 (rejected)", got)
	}
	if got := env.SetDifficulty(0, 2.5); got != 1 {
		t.Fatalf("SetDifficulty(2.5) = %d, want 1", got)
	}
	if env.GetDifficulty(0) != 2.5 {
		t.Fatalf("GetDifficulty = %v, want 2.5", env.GetDifficulty(0))
	}
}
