package teams

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/items"
)

func TestStockpileAddClampsAtLimit(t *testing.T) {
	s := &Stockpile{Wood: 190}
	limit := Limits{Wood: 200}

	added := s.Add(items.ItemWood, 50, limit)
	if added != 10 {
		t.Fatalf("Add returned %d, want 10 (clamped to remaining room)", added)
	}
	if s.Wood != 200 {
		t.Fatalf("Wood = %d, want 200", s.Wood)
	}
	if n := s.Add(items.ItemWood, 1, limit); n != 0 {
		t.Fatalf("Add at full capacity returned %d, want 0", n)
	}
}

func TestStockpileAddRejectsUnknownResource(t *testing.T) {
	s := &Stockpile{}
	if n := s.Add(items.ItemBar, 5, Limits{}); n != 0 {
		t.Fatalf("Add for a non-stockpile resource returned %d, want 0", n)
	}
}

func TestStockpileSpendAllOrNothing(t *testing.T) {
	s := &Stockpile{Wood: 5, Stone: 2}
	costs := map[items.ItemKey]int32{items.ItemWood: 5, items.ItemStone: 3}

	if s.Spend(costs) {
		t.Fatalf("Spend succeeded despite insufficient Stone")
	}
	if s.Wood != 5 || s.Stone != 2 {
		t.Fatalf("partial spend occurred: Wood=%d Stone=%d, want unchanged 5/2", s.Wood, s.Stone)
	}

	costs[items.ItemStone] = 2
	if !s.Spend(costs) {
		t.Fatalf("Spend failed when every line was affordable")
	}
	if s.Wood != 0 || s.Stone != 0 {
		t.Fatalf("Wood=%d Stone=%d, want both 0 after spend", s.Wood, s.Stone)
	}
}

func TestNewTeamHasNeutralModifiersAndDefaultLimits(t *testing.T) {
	team := NewTeam(3)
	if team.ID != 3 {
		t.Fatalf("ID = %d, want 3", team.ID)
	}
	if team.Modifiers.GatherRateMul != 1 || team.Modifiers.BuildCostMul != 1 {
		t.Fatalf("Modifiers = %+v, want neutral 1.0 multipliers", team.Modifiers)
	}
	if team.Limits.Food != 200 {
		t.Fatalf("Limits.Food = %d, want 200", team.Limits.Food)
	}
	if team.Difficulty != 1 {
		t.Fatalf("Difficulty = %v, want 1", team.Difficulty)
	}
}
