package worldgrid

import "github.com/talgya/tribal-sim/internal/items"

// Kind tags a Thing's variant. See design doc Section 3 — the source models
// a single polymorphic heap record; DESIGN.md's rearchitecture note replaces
// that with a flat, arena-indexed struct tagged by Kind, since every variant
// here is a handful of small scalar fields (no recursive/variable-size
// payload that would otherwise justify a real sum type).
type Kind uint8

const (
	KindAgent Kind = iota
	KindWall
	KindDoor
	KindTree
	KindWheat
	KindStone
	KindGold
	KindBush
	KindCactus
	KindStalagmite
	KindMagma
	KindAltar
	KindSpawner
	KindTumor
	KindCow
	KindBear
	KindWolf
	KindCorpse
	KindSkeleton
	KindStump
	KindLantern
	KindStubble
	// Building kinds.
	KindTownCenter
	KindMill
	KindLumberCamp
	KindMiningCamp
	KindWeavingLoom
	KindClayOven
	KindBlacksmith
	KindMarket
	KindStorage
	KindArmory
	KindBarracks
	KindResearch
	// Cliff/decoration kinds.
	KindCliff
	NumKinds
)

// Blocking reports whether things of this kind occupy the blocking grid
// layer (as opposed to the overlay layer).
func (k Kind) Blocking() bool {
	switch k {
	case KindDoor, KindLantern, KindStubble:
		return false
	default:
		return true
	}
}

// ID identifies a Thing by its stable slot in Map.Things.
type ID uint32

// NoID is the sentinel "no entity" value.
const NoID ID = ^ID(0)

// Thing is the polymorphic entity record. Shared fields come first; the
// remaining fields are kind-specific and are zero-valued for kinds that
// don't use them, exactly as spec.md's §3 Entity ("Thing") describes.
type Thing struct {
	ID     ID
	Kind   Kind
	Pos    Pos
	TeamID int8 // -1 for neutral

	HP       int32
	MaxHP    int32
	Cooldown int32
	Frozen   int32 // ticks remaining of non-interactable state

	// Agent-specific.
	AgentID       int32
	Orientation   Orientation
	UnitClass     UnitClass
	Inventory     items.Inventory
	Reward        float32
	AttackDamage  int32
	HomeAltar     ID
	ShieldTicks   int32
	Terminated    bool

	// Tumor-specific.
	HomeSpawner         ID
	HasClaimedTerritory bool
	TurnsAlive          int32

	// Lantern-specific.
	LanternHealthy bool

	// Cow/wolf-specific.
	HerdID         int32
	PackID         int32
	ScatteredSteps int32 // wolves: ticks remaining of post-pack-leader-death random wander

	// Door-specific.
	DoorHP int32

	// Agent-control state (SPEC_FULL.md §6.1.1). Zero values mean "no
	// standing order" for every field below.
	Stance           Stance
	Order            OrderKind
	OrderTarget      Pos
	FollowTarget     ID
	AttackMoveActive bool
	AttackMoveTarget Pos
	PatrolActive     bool
	PatrolA, PatrolB Pos
	PatrolTowardB    bool
	Garrisoned       bool
	GarrisonBuilding ID
	ScoutMode        bool
	FormationSlot    int32

	// Resource-node-specific internal remaining count (Wheat/Tree/Stone/...).
	ResourceCount int32

	// Building-specific.
	BuildKind BuildKind

	// registry bookkeeping (Section 3 "Entity registry"). kindListIndex < 0
	// means the thing has been removed (tombstoned in Map.Things).
	kindListIndex int32
}

// UnitClass enumerates the agent unit classes referenced by combat rules.
type UnitClass uint8

const (
	UnitVillager UnitClass = iota
	UnitMonk
	UnitArcher
	UnitSiege
	UnitManAtArms
	UnitScout
	NumUnitClasses
)

// BuildKind enumerates the placeable building/wall/road choices (§4.3 BUILD).
// Order matches teams.BuildChoices exactly — "argument indexes into
// BuildChoices" (spec.md §4.3 BUILD) — so BuildKind(argument) is always the
// choice the player selected. Barracks/Research have no BuildChoices entry
// (reachable only via the non-action-byte control surface, not the 0-9
// BUILD argument) and sit past NumBuildKinds' natural single-digit range.
type BuildKind uint8

const (
	BuildWall BuildKind = iota
	BuildRoad
	BuildDoor
	BuildMill
	BuildLumberCamp
	BuildMiningCamp
	BuildWeavingLoom
	BuildClayOven
	BuildBlacksmith
	BuildMarket
	BuildStorage
	BuildArmory
	BuildTownCenter
	BuildBarracks
	BuildResearch
	NumBuildKinds
)

// IsResourceCamp reports whether k auto-draws a road back to the nearest
// TownCenter/Altar on placement (§4.3 BUILD).
func (k BuildKind) IsResourceCamp() bool {
	return k == BuildMill || k == BuildLumberCamp || k == BuildMiningCamp
}

// Stance is a per-agent combat posture (SPEC_FULL.md §6.1.1, spec.md §6.1
// "stance (0..3)").
type Stance uint8

const (
	StanceAggressive Stance = iota
	StanceDefensive
	StancePassive
	StanceNoAttack
)

// OrderKind is a per-agent standing order set by the control surface
// (SPEC_FULL.md §6.1.1: "stop, hold, follow").
type OrderKind uint8

const (
	OrderNone OrderKind = iota
	OrderStop
	OrderHold
	OrderFollow
	OrderRally
)

// Alive reports whether the thing is a non-terminated agent or has positive
// HP (for non-agents, HP<=0 generally means "already removed").
func (t *Thing) Alive() bool {
	if t.Kind == KindAgent {
		return !t.Terminated
	}
	return t.HP > 0
}
