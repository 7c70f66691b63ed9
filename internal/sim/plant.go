package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// doPut implements verb 5 PUT (give): armor first, then bread, then the
// largest remaining stack, each capped by the recipient's free capacity
// (spec.md §4.3 PUT).
func (env *Environment) doPut(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	t.Orientation = dir

	target := env.Map.Blocking(t.Pos.Add(dir.Delta()))
	if target == nil || target.Kind != worldgrid.KindAgent || target.TeamID != t.TeamID || target.Terminated {
		stats.ActionInvalid++
		return
	}

	if t.Inventory[items.ItemArmor] > 0 && target.Inventory[items.ItemArmor] == 0 {
		t.Inventory.Remove(items.ItemArmor, 1)
		target.Inventory.Add(items.ItemArmor, 1)
		stats.ActionPut++
		return
	}

	if t.Inventory.Has(items.ItemBread, 1) && target.Inventory.CanAccept(items.ItemBread, 1) {
		n := target.Inventory.Add(items.ItemBread, 1)
		if n > 0 {
			t.Inventory.Remove(items.ItemBread, n)
			stats.ActionPut++
			return
		}
	}

	key, count := largestGivableStack(t.Inventory, target.Inventory)
	if count <= 0 {
		stats.ActionInvalid++
		return
	}
	given := target.Inventory.Add(key, count)
	if given <= 0 {
		stats.ActionInvalid++
		return
	}
	t.Inventory.Remove(key, given)
	stats.ActionPut++
}

// largestGivableStack finds the stockpile-class item self carries the most
// of that target has any room left to receive.
func largestGivableStack(self, target items.Inventory) (items.ItemKey, int32) {
	var bestKey items.ItemKey
	var bestN int32
	for key := items.ItemKey(0); key < items.NumItems; key++ {
		if !items.IsStockpileClass(key) {
			continue
		}
		have := int32(self[key])
		if have <= 0 || !target.CanAccept(key, 1) {
			continue
		}
		if have > bestN {
			bestN = have
			bestKey = key
		}
	}
	return bestKey, bestN
}

// doPlantLantern implements verb 6 PLANT LANTERN (spec.md §4.3 PLANT LANTERN).
func (env *Environment) doPlantLantern(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	t.Orientation = dir

	if !t.Inventory.Has(items.ItemLantern, 1) {
		stats.ActionInvalid++
		return
	}
	target := t.Pos.Add(dir.Delta())
	if !env.canPlaceLantern(target, nil) {
		stats.ActionInvalid++
		return
	}

	t.Inventory.Remove(items.ItemLantern, 1)
	env.AddThing(&worldgrid.Thing{
		Kind: worldgrid.KindLantern, Pos: target, TeamID: t.TeamID, LanternHealthy: true,
	})
	t.Reward += env.Cfg.ClothReward / 2
	stats.ActionPlant++
}

// plantDirections is the 4-entry cardinal table PLANT RESOURCE's direction
// bits index into (spec.md §9 "(argument div 2) mod 4").
var plantDirections = [4]worldgrid.Orientation{
	worldgrid.North, worldgrid.East, worldgrid.South, worldgrid.West,
}

// decodePlantResourceArg reproduces the source's argument decoding verbatim
// for PLANT RESOURCE, including for out-of-range arguments (spec.md §9 open
// question: "retain the source mapping verbatim").
func decodePlantResourceArg(argument uint8) (wantTree bool, dir worldgrid.Orientation) {
	wantTree = argument%2 == 1
	dir = plantDirections[(argument/2)%4]
	return wantTree, dir
}

// doPlantResource implements verb 7 PLANT RESOURCE (spec.md §4.3 PLANT
// RESOURCE, E1 scenario).
func (env *Environment) doPlantResource(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	wantTree, dir := decodePlantResourceArg(argument)
	target := t.Pos.Add(dir.Delta())

	if !env.Map.IsValidPos(target) {
		stats.ActionInvalid++
		return
	}
	if env.Map.TerrainAt(target) != worldgrid.Fertile {
		stats.ActionInvalid++
		return
	}
	if env.Map.Blocking(target) != nil || env.Map.Overlay(target) != nil {
		stats.ActionInvalid++
		return
	}

	key := items.ItemWheat
	kind := worldgrid.KindWheat
	if wantTree {
		key = items.ItemWood
		kind = worldgrid.KindTree
	}
	if !t.Inventory.Has(key, 1) {
		stats.ActionInvalid++
		return
	}

	t.Inventory.Remove(key, 1)
	env.AddThing(&worldgrid.Thing{Kind: kind, Pos: target, TeamID: -1, ResourceCount: ResourceNodeInitial})
	env.Map.SetTerrain(target, worldgrid.Empty)
	stats.ActionPlantResource++
}
