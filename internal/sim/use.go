package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/teams"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

const magmaSmeltCooldown = 5

// doUse implements spec.md §4.3 USE.
func (env *Environment) doUse(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	t.Orientation = dir

	target := t.Pos.Add(dir.Delta())
	if !env.Map.IsValidPos(target) {
		stats.ActionInvalid++
		return
	}

	occ := env.Map.Blocking(target)
	var ok bool
	switch {
	case occ == nil:
		ok = env.useEmptyTile(t, target)
	case isBuildingKind(occ.Kind):
		ok = env.useBuilding(t, occ)
	default:
		ok = env.useThing(t, occ)
	}

	if ok {
		stats.ActionUse++
	} else {
		stats.ActionInvalid++
	}
}

// useEmptyTile implements the terrain-driven branch of USE (spec.md §4.3
// USE: target empty of Thing).
func (env *Environment) useEmptyTile(t *worldgrid.Thing, target worldgrid.Pos) bool {
	if door := env.Map.Overlay(target); door != nil && door.Kind == worldgrid.KindDoor {
		return false
	}

	terrain := env.Map.TerrainAt(target)
	switch terrain {
	case worldgrid.Water:
		if !t.Inventory.CanAccept(items.ItemWater, 1) {
			return false
		}
		t.Inventory.Add(items.ItemWater, 1)
		t.Reward += env.Cfg.WaterReward
		return true

	case worldgrid.Empty, worldgrid.Grass, worldgrid.Dune, worldgrid.Sand, worldgrid.Snow, worldgrid.Road:
		switch {
		case t.Inventory.Has(items.ItemBread, 1):
			t.Inventory.Remove(items.ItemBread, 1)
			env.healAround(t, target)
			return true
		case t.Inventory.Has(items.ItemWater, 1):
			t.Inventory.Remove(items.ItemWater, 1)
			env.Map.SetTerrain(target, worldgrid.Fertile)
			return true
		default:
			return false
		}

	default:
		return false
	}
}

// healAround heals every teammate agent in the 3x3 block centered on
// center, bounded by maxHp, and stamps the heal-bread tint.
func (env *Environment) healAround(t *worldgrid.Thing, center worldgrid.Pos) {
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			p := worldgrid.Pos{X: center.X + dx, Y: center.Y + dy}
			ally := env.Map.Blocking(p)
			if ally == nil || ally.Kind != worldgrid.KindAgent || ally.TeamID != t.TeamID || ally.Terminated {
				continue
			}
			ally.HP += 6
			if ally.HP > ally.MaxHP {
				ally.HP = ally.MaxHP
			}
		}
	}
	env.setActionTint(center, ActionTintHealBread, [3]uint8{255, 210, 120}, 3)
}

// useThing dispatches USE against a non-building occupant (spec.md §4.3 USE
// "If target holds a Thing").
func (env *Environment) useThing(t *worldgrid.Thing, occ *worldgrid.Thing) bool {
	switch occ.Kind {
	case worldgrid.KindWheat, worldgrid.KindStubble:
		return env.harvestResourceNode(t, occ, items.ItemWheat, env.Cfg.WheatReward)
	case worldgrid.KindStone, worldgrid.KindStalagmite:
		return env.harvestResourceNode(t, occ, items.ItemStone, env.Cfg.OreReward)
	case worldgrid.KindGold:
		return env.harvestResourceNode(t, occ, items.ItemGold, env.Cfg.OreReward)
	case worldgrid.KindBush:
		return env.harvestResourceNode(t, occ, items.ItemFood, env.Cfg.FoodReward)
	case worldgrid.KindCactus:
		return env.harvestResourceNode(t, occ, items.ItemWater, env.Cfg.WaterReward)
	case worldgrid.KindStump:
		return false
	case worldgrid.KindTree:
		return env.harvestTree(t, occ)
	case worldgrid.KindCorpse:
		return env.lootCorpse(t, occ)
	case worldgrid.KindMagma:
		return env.smeltMagma(t, occ)
	default:
		return env.tryPickupThing(t, occ)
	}
}

// harvestResourceNode decrements occ's internal count, grants one item to t
// (capacity permitting), rewards per-resource, and removes the node once
// depleted (spec.md §4.6 "Resource node harvest").
func (env *Environment) harvestResourceNode(t *worldgrid.Thing, occ *worldgrid.Thing, key items.ItemKey, reward float32) bool {
	if occ.ResourceCount <= 0 {
		return false
	}
	if !env.gatherSucceeds(t) {
		return false
	}
	if !t.Inventory.CanAccept(key, 1) {
		return false
	}
	if t.Inventory.Add(key, 1) <= 0 {
		return false
	}
	occ.ResourceCount--
	t.Reward += reward
	if occ.ResourceCount <= 0 {
		env.RemoveThing(occ)
	}
	return true
}

// gatherSucceeds applies teamID's GatherRateMul (SPEC_FULL.md §6.1.1 "team
// modifiers") as a per-attempt success probability: a mul of 1 always
// succeeds, 0.5 succeeds half the time, 2 always succeeds (capped at 1).
func (env *Environment) gatherSucceeds(t *worldgrid.Thing) bool {
	team := env.Team(t.TeamID)
	if team == nil || team.Modifiers.GatherRateMul <= 0 {
		return true
	}
	mul := team.Modifiers.GatherRateMul
	if mul >= 1 {
		return true
	}
	return env.Rng.Chance(float64(mul))
}

// lootCorpse transfers a corpse's stockpile-class items into t's inventory
// (capacity permitting) and emits a Skeleton once its loot is exhausted
// (spec.md §4.3 USE "Corpse loot").
func (env *Environment) lootCorpse(t *worldgrid.Thing, corpse *worldgrid.Thing) bool {
	took := false
	for key := items.ItemKey(0); key < items.NumItems; key++ {
		have := int32(corpse.Inventory[key])
		if have <= 0 {
			continue
		}
		n := t.Inventory.Add(key, have)
		if n > 0 {
			corpse.Inventory.Remove(key, n)
			took = true
		}
	}
	if !took {
		return false
	}
	if corpse.Inventory.Total() == 0 {
		pos := corpse.Pos
		env.RemoveThing(corpse)
		env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindSkeleton, Pos: pos, TeamID: -1})
	}
	return true
}

// smeltMagma converts one Gold into one Bar (spec.md §4.3 USE "Magma smelt",
// E2 scenario).
func (env *Environment) smeltMagma(t *worldgrid.Thing, magma *worldgrid.Thing) bool {
	if magma.Cooldown > 0 {
		return false
	}
	if !t.Inventory.Has(items.ItemGold, 1) {
		return false
	}
	if !t.Inventory.CanAccept(items.ItemBar, 1) {
		return false
	}
	t.Inventory.Remove(items.ItemGold, 1)
	t.Inventory.Add(items.ItemBar, 1)
	t.Reward += env.Cfg.BarReward
	magma.Cooldown = magmaSmeltCooldown
	return true
}

// tryPickupThing is the USE fallback spec.md §4.3 names for unrecognized or
// failed dispatch: attempt to harvest whatever is there as a generic
// resource node, else fail.
func (env *Environment) tryPickupThing(t *worldgrid.Thing, occ *worldgrid.Thing) bool {
	if occ.ResourceCount <= 0 {
		return false
	}
	return env.harvestResourceNode(t, occ, items.ItemFood, env.Cfg.FoodReward)
}

// isBuildingKind reports whether k is one of the placeable building kinds
// registered in teams.BuildChoices via Thing.BuildKind.
func isBuildingKind(k worldgrid.Kind) bool {
	return k >= worldgrid.KindTownCenter && k <= worldgrid.KindResearch
}

// useBuilding dispatches USE against a building occupant by its registered
// UseKind (spec.md §4.3 USE, §4.6 "Buildings declare via registry tables").
func (env *Environment) useBuilding(t *worldgrid.Thing, b *worldgrid.Thing) bool {
	if int(b.BuildKind) >= len(teams.BuildChoices) {
		return false
	}
	spec := teams.BuildChoices[b.BuildKind]
	if b.TeamID != t.TeamID {
		return false
	}
	if b.Cooldown > 0 || b.Frozen > 0 {
		return false
	}

	switch spec.Use {
	case teams.UseAltar:
		return env.useAltar(t, b)
	case teams.UseArmory:
		return env.craftOne(t, b, spec, items.ItemBar, items.ItemArmor, env.Cfg.ArmorReward)
	case teams.UseWeavingLoom:
		return env.craftOne(t, b, spec, items.ItemWood, items.ItemCloth, env.Cfg.ClothReward)
	case teams.UseClayOven:
		return env.craftOne(t, b, spec, items.ItemWheat, items.ItemBread, env.Cfg.FoodReward)
	case teams.UseBlacksmith:
		return env.craftSpear(t, b, spec)
	case teams.UseMarket:
		return env.sellAtMarket(t, b)
	case teams.UseDropoff, teams.UseDropoffAndStorage:
		return env.dropOffGoods(t, spec.DropoffGoods)
	case teams.UseStorage:
		return env.dropOffGoods(t, spec.StorageGoods)
	case teams.UseTrain, teams.UseTrainAndCraft:
		return env.tryTrainUnit(b, spec)
	case teams.UseCraft:
		return false
	default:
		return false
	}
}

// useAltar consumes one Bar to gain one heart (spec.md §4.3 USE "altars").
func (env *Environment) useAltar(t *worldgrid.Thing, altar *worldgrid.Thing) bool {
	if !t.Inventory.Has(items.ItemBar, 1) {
		return false
	}
	t.Inventory.Remove(items.ItemBar, 1)
	altar.HP++
	altar.Cooldown = MapObjectAltarCooldown
	t.Reward += env.Cfg.HeartReward
	return true
}

// craftOne consumes one unit of input from t's inventory and produces one
// unit of output, subject to the building's cooldown (spec.md §4.3 USE
// "crafting stations").
func (env *Environment) craftOne(t, b *worldgrid.Thing, spec teams.BuildingSpec, input, output items.ItemKey, reward float32) bool {
	if !t.Inventory.Has(input, 1) {
		return false
	}
	if !t.Inventory.CanAccept(output, 1) {
		return false
	}
	t.Inventory.Remove(input, 1)
	t.Inventory.Add(output, 1)
	t.Reward += reward
	b.Cooldown = spec.Cooldown
	return true
}

// craftSpear is the Blacksmith's Wood+Bar → Spear recipe (spec.md §4.3 USE
// "crafting stations").
func (env *Environment) craftSpear(t, b *worldgrid.Thing, spec teams.BuildingSpec) bool {
	if !t.Inventory.Has(items.ItemWood, 1) || !t.Inventory.Has(items.ItemBar, 1) {
		return false
	}
	if !t.Inventory.CanAccept(items.ItemSpear, 1) {
		return false
	}
	t.Inventory.Remove(items.ItemWood, 1)
	t.Inventory.Remove(items.ItemBar, 1)
	t.Inventory.Add(items.ItemSpear, 1)
	t.Reward += env.Cfg.SpearReward
	b.Cooldown = spec.Cooldown
	return true
}

// sellAtMarket converts up to 3 units of the first available sellable
// stockpile resource into an equal amount of Gold (spec.md §4.3 USE
// "markets (sell stockpile resources for gold)").
func (env *Environment) sellAtMarket(t *worldgrid.Thing, market *worldgrid.Thing) bool {
	team := env.TeamOf(t)
	if team == nil {
		return false
	}
	const lot = 3
	sell := func(have *int32) bool {
		if *have <= 0 {
			return false
		}
		n := *have
		if n > lot {
			n = lot
		}
		*have -= n
		team.Stockpile.Add(items.ItemGold, n, team.Limits)
		return true
	}
	switch {
	case sell(&team.Stockpile.Wood):
	case sell(&team.Stockpile.Stone):
	case sell(&team.Stockpile.Food):
	default:
		return false
	}
	market.Cooldown = 5
	return true
}

// dropOffGoods transfers every item in goods from t's inventory into its
// team's stockpile, clamped to team limits (spec.md §4.3 USE "dropoffs").
func (env *Environment) dropOffGoods(t *worldgrid.Thing, goods map[items.ItemKey]bool) bool {
	team := env.TeamOf(t)
	if team == nil {
		return false
	}
	transferred := false
	for key := range goods {
		have := int32(t.Inventory[key])
		if have <= 0 {
			continue
		}
		n := team.Stockpile.Add(dropoffItemKey(key), have, team.Limits)
		if n > 0 {
			t.Inventory.Remove(key, n)
			transferred = true
		}
	}
	return transferred
}

// dropoffItemKey maps a carried item to the stockpile resource it
// contributes to (most are 1:1; Wheat feeds the Food stockpile bucket since
// teams.Stockpile has no dedicated Wheat column).
func dropoffItemKey(key items.ItemKey) items.ItemKey {
	if key == items.ItemWheat {
		return items.ItemFood
	}
	return key
}

// tryTrainUnit reactivates a terminated teammate slot as a freshly trained
// unit of spec.TrainUnit, spending spec.TrainCost from the team stockpile
// (spec.md §4.6 "training buildings (tryTrainUnit)"). The population is
// fixed-size (MapAgents slots); "training" repurposes a dead agent's slot
// rather than growing the roster.
func (env *Environment) tryTrainUnit(b *worldgrid.Thing, spec teams.BuildingSpec) bool {
	team := env.Team(b.TeamID)
	if team == nil {
		return false
	}
	if !team.Stockpile.CanSpend(spec.TrainCost) {
		return false
	}
	agent := env.findTerminatedTeammate(b.TeamID)
	if agent == nil {
		return false
	}
	spot, ok := env.findRespawnSpot(b.Pos)
	if !ok {
		return false
	}
	team.Stockpile.Spend(spec.TrainCost)
	agent.UnitClass = worldgrid.UnitClass(spec.TrainUnit)
	env.respawnAgent(agent, spot)
	b.Cooldown = spec.TrainCooldown
	return true
}
