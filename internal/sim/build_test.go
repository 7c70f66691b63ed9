package sim

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/teams"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// E5 (spec.md §8): Build places a Road. Agent facing East with enough Stone,
// all neighboring tiles clear. Action argument 1 (BuildRoad). Expect the
// forward tile's terrain becomes Road and the Stone cost is paid.
func TestE5BuildRoadAheadOfAgent(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)

	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	actor.Orientation = worldgrid.East
	actor.Inventory[items.ItemStone] = 1
	ahead := worldgrid.Pos{X: 11, Y: 10}

	stats := &env.Stats[0]
	env.doBuild(actor, uint8(worldgrid.BuildRoad), stats)

	if env.Map.TerrainAt(ahead) != worldgrid.Road {
		t.Fatalf("terrain at %v = %v, want Road", ahead, env.Map.TerrainAt(ahead))
	}
	if actor.Inventory[items.ItemStone] != 0 {
		t.Fatalf("inventoryStone = %d, want 0 after road cost paid", actor.Inventory[items.ItemStone])
	}
	if stats.ActionBuild != 1 {
		t.Fatalf("ActionBuild = %d, want 1", stats.ActionBuild)
	}
}

func TestBuildFailsWithoutCost(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	actor.Orientation = worldgrid.East
	// no Stone in inventory and no team stockpile to fall back on.

	stats := &env.Stats[0]
	env.doBuild(actor, uint8(worldgrid.BuildRoad), stats)

	if stats.ActionInvalid != 1 {
		t.Fatalf("ActionInvalid = %d, want 1 (unaffordable build)", stats.ActionInvalid)
	}
}

func TestBuildWallPlacesBlockingThing(t *testing.T) {
	cfg := DefaultConfig()
	env := NewEnvironment(cfg)
	actor := newTestAgent(env, 0, 0, worldgrid.Pos{X: 10, Y: 10})
	actor.Orientation = worldgrid.East
	spec := teams.BuildChoices[worldgrid.BuildWall]
	for k, n := range spec.Cost {
		actor.Inventory[k] = int16(n)
	}

	stats := &env.Stats[0]
	env.doBuild(actor, uint8(worldgrid.BuildWall), stats)

	wall := env.Map.Blocking(worldgrid.Pos{X: 11, Y: 10})
	if wall == nil || wall.Kind != worldgrid.KindWall {
		t.Fatalf("expected a Wall at (11,10), got %v", wall)
	}
	if wall.MaxHP != spec.MaxHP {
		t.Fatalf("wall MaxHP = %d, want %d", wall.MaxHP, spec.MaxHP)
	}
}
