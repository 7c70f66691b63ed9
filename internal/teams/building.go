package teams

import "github.com/talgya/tribal-sim/internal/items"

// UseKind categorizes a building's USE-verb interaction (spec.md §4.3 USE,
// §4.6). Grounded on the teacher's Settlement/Market split generalized into
// an explicit per-building dispatch tag, which the teacher's single
// settlement-per-faction model never needed.
type UseKind uint8

const (
	UseNone UseKind = iota
	UseAltar
	UseArmory
	UseWeavingLoom
	UseClayOven
	UseBlacksmith
	UseMarket
	UseDropoff
	UseDropoffAndStorage
	UseStorage
	UseTrain
	UseTrainAndCraft
	UseCraft
)

// CraftKind identifies a crafting station (§4.6).
type CraftKind uint8

const (
	CraftNone CraftKind = iota
	CraftLoom
	CraftOven
	CraftForge
)

// BuildingSpec describes one entry in the BUILD choice table and the
// corresponding USE behavior once placed.
type BuildingSpec struct {
	Use           UseKind
	Craft         CraftKind
	Cost          map[items.ItemKey]int32
	MaxHP         int32
	Cooldown      int32 // base cooldown applied after a successful USE
	DropoffGoods  map[items.ItemKey]bool
	StorageGoods  map[items.ItemKey]bool
	TrainUnit     uint8 // worldgrid.UnitClass, duplicated here to avoid an import cycle
	TrainCost     map[items.ItemKey]int32
	TrainCooldown int32
}

// BuildChoices is the BUILD verb's preset table, indexed by the action
// argument (spec.md §4.3 BUILD).
var BuildChoices = []BuildingSpec{
	{ // 0: Wall
		Use: UseNone, MaxHP: 200,
		Cost: map[items.ItemKey]int32{items.ItemStone: 2},
	},
	{ // 1: Road
		Use: UseNone, MaxHP: 50,
		Cost: map[items.ItemKey]int32{items.ItemStone: 1},
	},
	{ // 2: Door
		Use: UseNone, MaxHP: 100,
		Cost: map[items.ItemKey]int32{items.ItemWood: 2},
	},
	{ // 3: Mill (resource camp)
		Use: UseDropoff, MaxHP: 300, DropoffGoods: map[items.ItemKey]bool{items.ItemWheat: true, items.ItemFood: true},
		Cost: map[items.ItemKey]int32{items.ItemWood: 4},
	},
	{ // 4: Lumber Camp (resource camp)
		Use: UseDropoff, MaxHP: 300, DropoffGoods: map[items.ItemKey]bool{items.ItemWood: true},
		Cost: map[items.ItemKey]int32{items.ItemWood: 4},
	},
	{ // 5: Mining Camp (resource camp)
		Use: UseDropoff, MaxHP: 300, DropoffGoods: map[items.ItemKey]bool{items.ItemStone: true, items.ItemGold: true},
		Cost: map[items.ItemKey]int32{items.ItemWood: 4},
	},
	{ // 6: Weaving Loom
		Use: UseWeavingLoom, Craft: CraftLoom, MaxHP: 250, Cooldown: 20,
		Cost: map[items.ItemKey]int32{items.ItemWood: 5},
	},
	{ // 7: Clay Oven
		Use: UseClayOven, Craft: CraftOven, MaxHP: 250, Cooldown: 20,
		Cost: map[items.ItemKey]int32{items.ItemStone: 3, items.ItemWood: 2},
	},
	{ // 8: Blacksmith
		Use: UseBlacksmith, Craft: CraftForge, MaxHP: 250, Cooldown: 30,
		Cost: map[items.ItemKey]int32{items.ItemStone: 4, items.ItemGold: 1},
	},
	{ // 9: Market
		Use: UseMarket, MaxHP: 300,
		Cost: map[items.ItemKey]int32{items.ItemWood: 6, items.ItemStone: 2},
	},
	{ // 10: Storage
		Use: UseStorage, MaxHP: 300, StorageGoods: map[items.ItemKey]bool{items.ItemWood: true, items.ItemStone: true, items.ItemGold: true},
		Cost: map[items.ItemKey]int32{items.ItemWood: 5},
	},
	{ // 11: Armory
		Use: UseArmory, MaxHP: 250, Cooldown: 25,
		Cost: map[items.ItemKey]int32{items.ItemStone: 3, items.ItemGold: 1},
	},
	{ // 12: TownCenter
		Use: UseTrainAndCraft, MaxHP: 500, Cooldown: 40,
		Cost: map[items.ItemKey]int32{items.ItemWood: 10, items.ItemStone: 10},
	},
}

// MaxBuildChoices is the number of valid BUILD arguments (§4.3 BUILD).
var MaxBuildChoices = len(BuildChoices)
