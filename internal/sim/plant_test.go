package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// E1 (spec.md §8): Plant and harvest Wheat. Agent at (10,10) facing North,
// inventory {Wheat:1}, terrain[(10,9)]=Fertile, action byte 70 (PLANT
// RESOURCE, wheat, N).
func TestE1PlantWheatNorth(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	actor.Inventory[items.ItemWheat] = 1
	north := worldgrid.Pos{X: 10, Y: 9}
	env.Map.SetTerrain(north, worldgrid.Fertile)

	stats := &env.Stats[0]
	env.doPlantResource(actor, 0, stats)

	if env.Map.TerrainAt(north) != worldgrid.Empty {
		t.Fatalf("terrain at %v = %v, want Empty", north, env.Map.TerrainAt(north))
	}
	node := env.Map.Blocking(north)
	if node == nil || node.Kind != worldgrid.KindWheat {
		t.Fatalf("expected a Wheat node at %v, got %v", north, node)
	}
	if node.ResourceCount != ResourceNodeInitial {
		t.Fatalf("ResourceCount = %d, want %d", node.ResourceCount, ResourceNodeInitial)
	}
	if actor.Inventory[items.ItemWheat] != 0 {
		t.Fatalf("inventoryWheat = %d, want 0", actor.Inventory[items.ItemWheat])
	}
	if stats.ActionPlantResource != 1 {
		t.Fatalf("ActionPlantResource = %d, want 1", stats.ActionPlantResource)
	}
}

func TestPlantResourceFailsWithoutFertileTerrain(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	actor.Inventory[items.ItemWheat] = 1
	// terrain at (10,9) left as the default Empty, not Fertile.

	stats := &env.Stats[0]
	env.doPlantResource(actor, 0, stats)

	if stats.ActionInvalid != 1 {
		t.Fatalf("ActionInvalid = %d, want 1 (non-Fertile terrain)", stats.ActionInvalid)
	}
	if actor.Inventory[items.ItemWheat] != 1 {
		t.Fatalf("inventoryWheat = %d, want unchanged 1 on failure", actor.Inventory[items.ItemWheat])
	}
}
