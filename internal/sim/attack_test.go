package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// Testable property 7 (spec.md §8): spear AoE destroys a Tumor two tiles
// ahead plus one perpendicular to it at the same distance, decrementing
// inventorySpear by exactly 1.
func TestSpearAttackDestroysForwardAndPerpendicularTumors(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	actor.UnitClass = worldgrid.UnitManAtArms
	actor.Inventory[items.ItemSpear] = 1

	ahead := worldgrid.Pos{X: 12, Y: 10}       // two tiles East
	perpendicular := worldgrid.Pos{X: 12, Y: 11} // ahead + one South

	tumor1 := &worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: ahead, TeamID: -1, HP: 1, MaxHP: 1}
	tumor2 := &worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: perpendicular, TeamID: -1, HP: 1, MaxHP: 1}
	env.AddThing(tumor1)
	env.AddThing(tumor2)

	stats := &env.Stats[0]
	env.doAttack(actor, uint8(worldgrid.East), stats)

	if env.Map.Blocking(ahead) != nil {
		t.Fatalf("tumor directly ahead survived spear attack")
	}
	if env.Map.Blocking(perpendicular) != nil {
		t.Fatalf("perpendicular tumor survived spear attack")
	}
	if actor.Inventory[items.ItemSpear] != 0 {
		t.Fatalf("inventorySpear = %d, want 0 after exactly one decrement", actor.Inventory[items.ItemSpear])
	}
	if stats.ActionAttack != 1 {
		t.Fatalf("ActionAttack = %d, want 1", stats.ActionAttack)
	}
}

// Testable property 3/8 mirror: Archer ranged hit on a Tumor (E3).
func TestArcherRangedHitRemovesTumorAndRewards(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 0, Y: 0})
	actor.UnitClass = worldgrid.UnitArcher

	tumor := &worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: worldgrid.Pos{X: 3, Y: 0}, TeamID: -1, HP: 1, MaxHP: 1}
	env.AddThing(tumor)

	stats := &env.Stats[0]
	env.doAttack(actor, uint8(worldgrid.East), stats)

	if env.Map.Blocking(tumor.Pos) != nil {
		t.Fatalf("tumor survived archer ranged attack")
	}
	if actor.Reward != cfg.TumorKillReward {
		t.Fatalf("Reward = %v, want %v (TumorKillReward)", actor.Reward, cfg.TumorKillReward)
	}
	if stats.ActionAttack != 1 {
		t.Fatalf("ActionAttack = %d, want 1", stats.ActionAttack)
	}
}

// Stance NoAttack/Passive must make ATTACK a no-op that only bumps
// actionInvalid, regardless of a valid target being present.
func TestPassiveStanceSkipsAttack(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 0, Y: 0})
	actor.Stance = worldgrid.StancePassive

	tumor := &worldgrid.Thing{Kind: worldgrid.KindTumor, Pos: worldgrid.Pos{X: 1, Y: 0}, TeamID: -1, HP: 1, MaxHP: 1}
	env.AddThing(tumor)

	stats := &env.Stats[0]
	env.doAttack(actor, uint8(worldgrid.East), stats)

	if env.Map.Blocking(tumor.Pos) == nil {
		t.Fatalf("passive-stance agent attacked anyway: tumor removed")
	}
	if stats.ActionInvalid != 1 {
		t.Fatalf("ActionInvalid = %d, want 1", stats.ActionInvalid)
	}
}
