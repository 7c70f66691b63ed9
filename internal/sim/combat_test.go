package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// E4 (spec.md §8): Altar conversion. An enemy Altar at 1 HP takes a melee hit,
// drops to 0, flips TeamID to the attacker's team, and the flip cascades to
// every Door previously owned by the old team.
func TestE4AttackDestroysAltarAndCascadesDoorOwnership(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	attacker := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})

	altar := &worldgrid.Thing{Kind: worldgrid.KindAltar, Pos: worldgrid.Pos{X: 11, Y: 10}, TeamID: 1, HP: 1, MaxHP: 10}
	env.AddThing(altar)
	door := &worldgrid.Thing{Kind: worldgrid.KindDoor, Pos: worldgrid.Pos{X: 5, Y: 5}, TeamID: 1, HP: 100, MaxHP: 100, DoorHP: 100}
	env.AddThing(door)

	stats := &env.Stats[0]
	env.doAttack(attacker, uint8(worldgrid.East), stats)

	if altar.TeamID != attacker.TeamID {
		t.Fatalf("altar TeamID = %d, want %d (attacker's team) after it hit 0 HP", altar.TeamID, attacker.TeamID)
	}
	if altar.HP != 0 {
		t.Fatalf("altar HP = %d, want 0", altar.HP)
	}
	if door.TeamID != attacker.TeamID {
		t.Fatalf("door TeamID = %d, want %d (cascaded from altar conversion)", door.TeamID, attacker.TeamID)
	}
}

func TestDamageAltarAboveZeroDoesNotFlipOwnership(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	altar := &worldgrid.Thing{Kind: worldgrid.KindAltar, TeamID: 1, HP: 5, MaxHP: 10}
	env.damageAltar(altar, 0)

	if altar.TeamID != 1 {
		t.Fatalf("altar TeamID = %d, want unchanged 1 while HP still positive", altar.TeamID)
	}
	if altar.HP != 4 {
		t.Fatalf("altar HP = %d, want 4", altar.HP)
	}
}

// killAgent spills stockpile-class inventory into a new Corpse and leaves the
// agent terminated with its home altar down one heart (spec.md §4.1 "on
// death").
func TestKillAgentSpillsInventoryIntoCorpse(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	altar := &worldgrid.Thing{Kind: worldgrid.KindAltar, Pos: worldgrid.Pos{X: 0, Y: 0}, TeamID: 0, HP: 5, MaxHP: 10}
	env.AddThing(altar)

	agent := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	agent.HomeAltar = altar.ID
	agent.Inventory[items.ItemWood] = 3
	agent.HP = 1

	env.applyAgentDamage(agent, 5, nil)

	if !agent.Terminated {
		t.Fatalf("agent not marked Terminated after lethal damage")
	}
	corpse := env.Map.Blocking(worldgrid.Pos{X: 10, Y: 10})
	if corpse == nil || corpse.Kind != worldgrid.KindCorpse {
		t.Fatalf("expected a Corpse at the agent's death tile, got %v", corpse)
	}
	if corpse.Inventory[items.ItemWood] != 3 {
		t.Fatalf("corpse inventoryWood = %d, want 3 spilled from the dead agent", corpse.Inventory[items.ItemWood])
	}
	if altar.HP != 4 {
		t.Fatalf("home altar HP = %d, want 4 after losing one heart on death", altar.HP)
	}
}

func TestApplyAgentDamageArmorAbsorbsOneHit(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	agent := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	agent.Inventory[items.ItemArmor] = 1
	hpBefore := agent.HP

	env.applyAgentDamage(agent, 9999, nil)

	if agent.HP != hpBefore {
		t.Fatalf("HP = %d, want unchanged %d: armor should absorb the hit", agent.HP, hpBefore)
	}
	if agent.Inventory[items.ItemArmor] != 0 {
		t.Fatalf("inventoryArmor = %d, want 0 consumed", agent.Inventory[items.ItemArmor])
	}
}
