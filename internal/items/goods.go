// Package items provides the resource/item key enumeration and the
// fixed-size per-entity inventory used on the per-tick hot path.
//
// Grounded on tobyjaguar-mini-world/internal/economy/goods.go's GoodType
// enum and its GoodInventory comment ("Replaces map[GoodType]int — inline
// in Agent struct, zero heap allocation"): the same reasoning applies here,
// generalized from the teacher's 15 tradeable goods to spec.md's resource
// and carried-item set.
package items

// ItemKey enumerates everything an inventory can hold.
type ItemKey uint8

const (
	ItemWood ItemKey = iota
	ItemStone
	ItemGold
	ItemFood
	ItemWater
	ItemWheat
	ItemBread
	ItemBar
	ItemCloth
	ItemArmor
	ItemSpear
	ItemMeat
	ItemLantern
	NumItems
)

// MaxInventory is the total-count cap for stockpile-class items carried by
// a single agent (spec.md §3).
const MaxInventory = 5

// stockpileClass marks items counted against MaxInventory (as opposed to
// equipment-like items such as Armor/Spear/Lantern, which are tracked by
// presence/count but not bounded by the shared cap).
var stockpileClass = map[ItemKey]bool{
	ItemWood:  true,
	ItemStone: true,
	ItemGold:  true,
	ItemFood:  true,
	ItemWater: true,
	ItemWheat: true,
	ItemBread: true,
	ItemBar:   true,
	ItemCloth: true,
	ItemMeat:  true,
}

// IsStockpileClass reports whether key counts against MaxInventory.
func IsStockpileClass(key ItemKey) bool {
	return stockpileClass[key]
}

// Inventory is a fixed-size array of per-item counts.
type Inventory [NumItems]int16

// Total returns the sum of all stockpile-class item counts.
func (inv Inventory) Total() int32 {
	var total int32
	for k, n := range inv {
		if stockpileClass[ItemKey(k)] {
			total += int32(n)
		}
	}
	return total
}

// CanAccept reports whether n more of key can be added without exceeding
// MaxInventory (non-stockpile-class items are never capacity-limited).
func (inv Inventory) CanAccept(key ItemKey, n int32) bool {
	if !stockpileClass[key] {
		return true
	}
	return inv.Total()+n <= MaxInventory
}

// Add adds n of key, clamping so the stockpile-class total never exceeds
// MaxInventory. Returns the amount actually added.
func (inv *Inventory) Add(key ItemKey, n int32) int32 {
	if n <= 0 {
		return 0
	}
	if stockpileClass[key] {
		room := int32(MaxInventory) - inv.Total()
		if room <= 0 {
			return 0
		}
		if n > room {
			n = room
		}
	}
	inv[key] += int16(n)
	return n
}

// Remove removes up to n of key, returning the amount actually removed.
func (inv *Inventory) Remove(key ItemKey, n int32) int32 {
	if n <= 0 {
		return 0
	}
	have := int32(inv[key])
	if n > have {
		n = have
	}
	inv[key] -= int16(n)
	return n
}

// Has reports whether the inventory holds at least n of key.
func (inv Inventory) Has(key ItemKey, n int32) bool {
	return int32(inv[key]) >= n
}
