package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// doorPassable reports whether a thing on teamID may pass through any door
// standing at p (spec.md §4.3 MOVE step 1: "doors check teamId").
func (env *Environment) doorPassable(p worldgrid.Pos, teamID int8) bool {
	door := env.Map.Overlay(p)
	if door == nil || door.Kind != worldgrid.KindDoor {
		return true
	}
	return door.TeamID == teamID
}

// blockedForMove reports whether p is unreachable outright: off-map,
// terrain-blocked, or a door the mover can't pass (spec.md §4.3 MOVE step 1).
func (env *Environment) blockedForMove(p worldgrid.Pos, teamID int8) bool {
	if !env.Map.IsValidPos(p) {
		return true
	}
	if env.Map.TerrainAt(p).Blocked() {
		return true
	}
	return !env.doorPassable(p, teamID)
}

// moveOccupant returns the thing that governs canEnter for p: the
// blocking-layer occupant if any, else an overlay Lantern if present.
func (env *Environment) moveOccupant(p worldgrid.Pos) *worldgrid.Thing {
	if occ := env.Map.Blocking(p); occ != nil {
		return occ
	}
	if ov := env.Map.Overlay(p); ov != nil && ov.Kind == worldgrid.KindLantern {
		return ov
	}
	return nil
}

// doMove implements spec.md §4.3 MOVE semantics.
func (env *Environment) doMove(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	t.Orientation = dir

	d := dir.Delta()
	step1 := t.Pos.Add(d)

	if env.blockedForMove(step1, t.TeamID) {
		stats.ActionInvalid++
		return
	}

	occupant := env.moveOccupant(step1)
	switch {
	case occupant == nil:
		env.applyPlainMove(t, step1, d, stats)

	case occupant.Kind == worldgrid.KindLantern:
		if env.tryPushLantern(occupant, d) {
			env.applyPlainMove(t, step1, d, stats)
		} else {
			stats.ActionInvalid++
		}

	case occupant.Kind == worldgrid.KindAgent && occupant.TeamID == t.TeamID &&
		occupant.Frozen == 0 && t.Frozen == 0 && !occupant.Terminated:
		env.performSwap(t, occupant)
		stats.ActionMove++

	case occupant.Kind == worldgrid.KindTree && occupant.Frozen == 0:
		if env.harvestTree(t, occupant) {
			stats.ActionUse++
		} else {
			stats.ActionInvalid++
		}

	default:
		stats.ActionInvalid++
	}
}

// applyPlainMove moves t into step1, and doubles the move onto step1+d when
// step1 is a Road and the tile beyond it is plainly enterable (spec.md
// §4.3 MOVE step 3).
func (env *Environment) applyPlainMove(t *worldgrid.Thing, step1, d worldgrid.Pos, stats *AgentStats) {
	finalPos := step1
	if env.Map.TerrainAt(step1) == worldgrid.Road {
		step2 := t.Pos.Add(d.Scale(2))
		if !env.blockedForMove(step2, t.TeamID) && env.moveOccupant(step2) == nil {
			finalPos = step2
		}
	}
	env.MoveThing(t, finalPos)
	stats.ActionMove++
}

// tryPushLantern attempts to relocate lantern one step further along d, then
// two steps, then to any of the eight tiles adjacent to its current
// position, subject to Chebyshev-3 spacing from every other lantern
// (spec.md §4.3 MOVE step 2, §9 open question on spacing-vs-self-overlap).
func (env *Environment) tryPushLantern(lantern *worldgrid.Thing, d worldgrid.Pos) bool {
	p1 := lantern.Pos
	candidates := make([]worldgrid.Pos, 0, 10)
	candidates = append(candidates, p1.Add(d), p1.Add(d.Scale(2)))
	for o := worldgrid.Orientation(0); o < worldgrid.NumOrientations; o++ {
		candidates = append(candidates, p1.Add(o.Delta()))
	}

	for _, dest := range candidates {
		if env.canPlaceLantern(dest, lantern) {
			env.MoveThing(lantern, dest)
			return true
		}
	}
	return false
}

// canPlaceLantern reports whether dest is a legal lantern resting spot.
// lantern, when non-nil, is excluded from the spacing check against itself
// (the push case); pass nil when planting a brand-new lantern.
func (env *Environment) canPlaceLantern(dest worldgrid.Pos, lantern *worldgrid.Thing) bool {
	if !env.Map.IsValidPos(dest) {
		return false
	}
	if env.Map.TerrainAt(dest).Blocked() {
		return false
	}
	if env.Map.Blocking(dest) != nil {
		return false
	}
	if door := env.Map.Overlay(dest); door != nil && door.Kind == worldgrid.KindDoor {
		return false
	}
	if env.Map.TerrainAt(dest) == worldgrid.Water {
		return false
	}
	for _, other := range env.Map.ThingsByKind[worldgrid.KindLantern] {
		if lantern != nil && other.ID == lantern.ID {
			continue
		}
		if dest.Chebyshev(other.Pos) < 3 {
			return false
		}
	}
	return true
}

// harvestTree transfers one Wood from tree into t's inventory, removing the
// tree (and leaving a Stump) once its internal count reaches zero (spec.md
// §4.6 harvest, §4.3 MOVE's "attempt to harvest it" fallback).
func (env *Environment) harvestTree(t, tree *worldgrid.Thing) bool {
	if tree.ResourceCount <= 0 {
		return false
	}
	if !env.gatherSucceeds(t) {
		return false
	}
	if !t.Inventory.CanAccept(items.ItemWood, 1) {
		return false
	}
	if t.Inventory.Add(items.ItemWood, 1) <= 0 {
		return false
	}
	tree.ResourceCount--
	t.Reward += env.Cfg.WoodReward
	if tree.ResourceCount <= 0 {
		pos := tree.Pos
		env.RemoveThing(tree)
		env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindStump, Pos: pos, TeamID: -1})
	}
	return true
}

// performSwap exchanges a and b's grid positions (spec.md §4.3 MOVE step 2
// "swap positions", and verb 4 SWAP). Symmetric: applying it twice in a row
// with the same pair returns both to their original positions.
func (env *Environment) performSwap(a, b *worldgrid.Thing) {
	posA, posB := a.Pos, b.Pos
	env.MoveThing(a, posB)
	env.MoveThing(b, posA)
}

// doSwap implements verb 4 SWAP: swap positions with the adjacent teammate
// agent in direction argument (spec.md §4.3 SWAP).
func (env *Environment) doSwap(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	t.Orientation = dir

	target := env.Map.Blocking(t.Pos.Add(dir.Delta()))
	if target == nil || target.Kind != worldgrid.KindAgent || target.Terminated ||
		target.Frozen > 0 || t.Frozen > 0 || target.TeamID != t.TeamID {
		stats.ActionInvalid++
		return
	}
	env.performSwap(t, target)
	stats.ActionSwap++
}
