// Package teams provides per-team stockpiles, modifiers, colors, and the
// building-use registry (crafting, training, dropoff rules).
//
// Grounded on tobyjaguar-mini-world/internal/social's Faction (influence,
// treasury, ownership) and Settlement (population center tied to a
// position) generalized into one Team type per spec.md §3 "Team state":
// the governance/culture/tax fields the teacher tracks have no spec.md
// analog and are dropped, keeping the ownership/treasury shape.
package teams

import "github.com/talgya/tribal-sim/internal/items"

// MaxTeams is the maximum team count (spec.md §1: "eight teams").
const MaxTeams = 8

// Stockpile holds a team's shared resource counts (spec.md §3).
type Stockpile struct {
	Food, Wood, Stone, Gold, Water int32
}

// Limits caps each resource in a Stockpile.
type Limits struct {
	Food, Wood, Stone, Gold, Water int32
}

func (s *Stockpile) get(res items.ItemKey) *int32 {
	switch res {
	case items.ItemFood:
		return &s.Food
	case items.ItemWood:
		return &s.Wood
	case items.ItemStone:
		return &s.Stone
	case items.ItemGold:
		return &s.Gold
	case items.ItemWater:
		return &s.Water
	default:
		return nil
	}
}

func (l Limits) get(res items.ItemKey) int32 {
	switch res {
	case items.ItemFood:
		return l.Food
	case items.ItemWood:
		return l.Wood
	case items.ItemStone:
		return l.Stone
	case items.ItemGold:
		return l.Gold
	case items.ItemWater:
		return l.Water
	default:
		return 0
	}
}

// Add clamps n into the stockpile at the given limit (§4.6 "addToStockpile").
func (s *Stockpile) Add(res items.ItemKey, n int32, limit Limits) int32 {
	field := s.get(res)
	if field == nil || n <= 0 {
		return 0
	}
	ceiling := limit.get(res)
	room := ceiling - *field
	if room <= 0 {
		return 0
	}
	if n > room {
		n = room
	}
	*field += n
	return n
}

// CanSpend reports whether every entry in costs is satisfiable.
func (s *Stockpile) CanSpend(costs map[items.ItemKey]int32) bool {
	for res, n := range costs {
		field := s.get(res)
		if field == nil || *field < n {
			return false
		}
	}
	return true
}

// Spend deducts costs iff every entry is satisfiable (§4.6 "spendStockpile").
// Returns false (no-op) if any entry cannot be paid.
func (s *Stockpile) Spend(costs map[items.ItemKey]int32) bool {
	if !s.CanSpend(costs) {
		return false
	}
	for res, n := range costs {
		*s.get(res) -= n
	}
	return true
}

// Modifiers holds per-team gather/build multipliers and per-unit-class
// HP/attack bonuses (spec.md §3 teamModifiers).
type Modifiers struct {
	GatherRateMul   float32
	BuildCostMul    float32
	ClassHPBonus    map[uint8]int32
	ClassAttackBonus map[uint8]int32
}

// DefaultModifiers returns the neutral (1.0/1.0, no bonuses) modifier set.
func DefaultModifiers() Modifiers {
	return Modifiers{
		GatherRateMul: 1, BuildCostMul: 1,
		ClassHPBonus:     make(map[uint8]int32),
		ClassAttackBonus: make(map[uint8]int32),
	}
}

// Team is one of up to MaxTeams groups: owns altars, buildings, doors, and a
// stockpile (spec.md §3).
type Team struct {
	ID        int8
	Color     [3]uint8
	AltarColor [3]uint8
	Stockpile Stockpile
	Limits    Limits
	Modifiers Modifiers

	// Territory score: tiles whose tint/creep influence this team controls,
	// updated by the FFI "territory scoring" endpoint (SPEC_FULL.md §6.1.1).
	TerritoryTiles int32

	// AI-difficulty knob consulted by wildlife aggro scaling.
	Difficulty float32

	// Point is a plain (x,y) pair, kept separate from worldgrid.Pos to avoid
	// an import cycle (worldgrid is the lower-level package; teams stays
	// leaf-level so internal/sim can import both).
	RallyPoint Point

	// ProductionQueue holds worldgrid.BuildKind values, duplicated as uint8
	// for the same import-cycle reason as Building.TrainUnit.
	ProductionQueue []uint8

	// ResearchLevels indexes a small fixed tech table (SPEC_FULL.md §6.1.1
	// "research"); level 0 means unresearched.
	ResearchLevels [NumResearchTopics]int32

	// FogRevealed is a MapWidth*MapHeight bitset of tiles this team has
	// ever scouted (SPEC_FULL.md §6.1.1 "fog-of-war reveal"). Indexed
	// row-major by the caller (internal/sim owns the width).
	FogRevealed []bool

	// SelectionGroups holds up to 10 saved agent-ID control groups
	// (SPEC_FULL.md §6.1.1 "selection and control groups").
	SelectionGroups [NumControlGroups][]int32

	// Formation is the current team-wide movement formation
	// (SPEC_FULL.md §6.1.1 "formation").
	Formation Formation
}

// Point is a plain coordinate pair used where importing worldgrid.Pos
// would create an import cycle.
type Point struct{ X, Y int32 }

// NumResearchTopics bounds Team.ResearchLevels (SPEC_FULL.md §6.1.1).
const NumResearchTopics = 8

// NumControlGroups bounds Team.SelectionGroups (spec.md §6.1: "selection
// and control groups", conventionally numbered 0-9 as in RTS UIs).
const NumControlGroups = 10

// Formation enumerates the team-wide movement formations
// (SPEC_FULL.md §6.1.1 "formation").
type Formation uint8

const (
	FormationNone Formation = iota
	FormationLine
	FormationColumn
	FormationWedge
)

// NewTeam creates a team with default limits/modifiers.
func NewTeam(id int8) *Team {
	return &Team{
		ID:         id,
		Limits:     Limits{Food: 200, Wood: 200, Stone: 200, Gold: 200, Water: 200},
		Modifiers:  DefaultModifiers(),
		Difficulty: 1,
	}
}
