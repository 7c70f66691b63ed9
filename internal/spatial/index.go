// Package spatial provides the cell-partitioned spatial index that makes
// per-tick proximity queries O(k) instead of O(n). See design doc Section
// 4.2. No teacher file implements this (tobyjaguar-mini-world's world.Map is
// a flat map with no bounded-radius query surface) — built fresh in the
// teacher's plain-struct-plus-methods style.
package spatial

import (
	"golang.org/x/exp/slices"

	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// DefaultCellSize is the default cell side S (spec.md §4.2).
const DefaultCellSize = 16

type cell struct {
	all      []*worldgrid.Thing
	byKind   [worldgrid.NumKinds][]*worldgrid.Thing
}

// Index partitions the map into CellSize×CellSize cells, each holding all
// things and a per-kind bucket, with amortized O(1) Add/Remove/Move via
// swap-remove.
type Index struct {
	width, height int32
	cellSize      int32
	cols, rows    int32
	cells         []cell

	// distToRadius[d] = ceil(d / cellSize), a lookup table that eliminates
	// division on the query hot path (spec.md §4.2).
	distToRadius []int32

	// slot bookkeeping per thing ID so Remove/Move are O(1) swap-removes.
	allSlot  map[worldgrid.ID]int
	kindSlot map[worldgrid.ID]int
	cellOf   map[worldgrid.ID]int32
}

// New builds an index over a width×height map using the given cell size (0
// selects DefaultCellSize).
func New(width, height, cellSize int32) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cols := (width + cellSize - 1) / cellSize
	rows := (height + cellSize - 1) / cellSize
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	maxDist := width + height
	idx := &Index{
		width: width, height: height, cellSize: cellSize,
		cols: cols, rows: rows,
		cells:        make([]cell, cols*rows),
		distToRadius: make([]int32, maxDist+1),
		allSlot:      make(map[worldgrid.ID]int),
		kindSlot:     make(map[worldgrid.ID]int),
		cellOf:       make(map[worldgrid.ID]int32),
	}
	for d := int32(0); d <= maxDist; d++ {
		idx.distToRadius[d] = (d + cellSize - 1) / cellSize
	}
	return idx
}

func (ix *Index) cellIndex(p worldgrid.Pos) int32 {
	cx := p.X / ix.cellSize
	cy := p.Y / ix.cellSize
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= ix.cols {
		cx = ix.cols - 1
	}
	if cy >= ix.rows {
		cy = ix.rows - 1
	}
	return cy*ix.cols + cx
}

// Add inserts t at its current Pos.
func (ix *Index) Add(t *worldgrid.Thing) {
	ci := ix.cellIndex(t.Pos)
	c := &ix.cells[ci]

	ix.allSlot[t.ID] = len(c.all)
	c.all = append(c.all, t)

	kb := &c.byKind[t.Kind]
	ix.kindSlot[t.ID] = len(*kb)
	*kb = append(*kb, t)

	ix.cellOf[t.ID] = ci
}

// Remove removes t from whichever cell it currently occupies.
func (ix *Index) Remove(t *worldgrid.Thing) {
	ci, ok := ix.cellOf[t.ID]
	if !ok {
		return
	}
	c := &ix.cells[ci]

	if slot, ok := ix.allSlot[t.ID]; ok {
		last := len(c.all) - 1
		if slot != last {
			c.all[slot] = c.all[last]
			ix.allSlot[c.all[slot].ID] = slot
		}
		c.all = c.all[:last]
		delete(ix.allSlot, t.ID)
	}

	kb := &c.byKind[t.Kind]
	if slot, ok := ix.kindSlot[t.ID]; ok {
		last := len(*kb) - 1
		if slot != last {
			(*kb)[slot] = (*kb)[last]
			ix.kindSlot[(*kb)[slot].ID] = slot
		}
		*kb = (*kb)[:last]
		delete(ix.kindSlot, t.ID)
	}

	delete(ix.cellOf, t.ID)
}

// Move relocates t from oldPos to its current (already-updated) Pos.
func (ix *Index) Move(t *worldgrid.Thing, oldPos worldgrid.Pos) {
	newCell := ix.cellIndex(t.Pos)
	oldCell, ok := ix.cellOf[t.ID]
	if ok && oldCell == newCell {
		return
	}
	ix.Remove(t)
	ix.Add(t)
}

// radiusCells returns the list of cell indices within ceil(dist/cellSize)
// of the query cell (clamped to the map bounds).
func (ix *Index) radiusCells(center worldgrid.Pos, maxDist int32) []int32 {
	if maxDist < 0 {
		maxDist = 0
	}
	if int(maxDist) >= len(ix.distToRadius) {
		maxDist = int32(len(ix.distToRadius) - 1)
	}
	r := ix.distToRadius[maxDist]
	ccx := center.X / ix.cellSize
	ccy := center.Y / ix.cellSize

	var out []int32
	for cy := ccy - r; cy <= ccy+r; cy++ {
		if cy < 0 || cy >= ix.rows {
			continue
		}
		for cx := ccx - r; cx <= ccx+r; cx++ {
			if cx < 0 || cx >= ix.cols {
				continue
			}
			out = append(out, cy*ix.cols+cx)
		}
	}
	return out
}

// FindNearestThing returns the nearest thing of kind within maxDist of pos,
// or nil. Uses a shrinkable search radius: once a candidate is found at
// distance d, cells known to be farther than d are skipped (spec.md §4.2).
func (ix *Index) FindNearestThing(pos worldgrid.Pos, kind worldgrid.Kind, maxDist int32) *worldgrid.Thing {
	return ix.findNearest(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.byKind[kind] }, func(*worldgrid.Thing) bool { return true })
}

// FindNearestThingOfKinds returns the nearest thing whose kind is in kinds.
func (ix *Index) FindNearestThingOfKinds(pos worldgrid.Pos, kinds map[worldgrid.Kind]bool, maxDist int32) *worldgrid.Thing {
	return ix.findNearest(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.all }, func(t *worldgrid.Thing) bool { return kinds[t.Kind] })
}

// FindNearestFriendly returns the nearest thing of kind on team teamID.
func (ix *Index) FindNearestFriendly(pos worldgrid.Pos, teamID int8, kind worldgrid.Kind, maxDist int32) *worldgrid.Thing {
	return ix.findNearest(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.byKind[kind] }, func(t *worldgrid.Thing) bool { return t.TeamID == teamID })
}

// FindNearestEnemyAgent returns the nearest live agent not on teamID,
// Chebyshev distance.
func (ix *Index) FindNearestEnemyAgent(pos worldgrid.Pos, teamID int8, maxDist int32) *worldgrid.Thing {
	return ix.findNearest(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.byKind[worldgrid.KindAgent] },
		func(t *worldgrid.Thing) bool { return t.TeamID != teamID && t.Alive() })
}

// FindNearestEnemyInRange returns the nearest enemy agent with
// minR <= distance <= maxR (a ring query, for tower minimum ranges).
func (ix *Index) FindNearestEnemyInRange(pos worldgrid.Pos, teamID int8, minR, maxR int32) *worldgrid.Thing {
	return ix.findNearest(pos, maxR, func(c *cell) []*worldgrid.Thing { return c.byKind[worldgrid.KindAgent] },
		func(t *worldgrid.Thing) bool {
			if t.TeamID == teamID || !t.Alive() {
				return false
			}
			d := pos.Chebyshev(t.Pos)
			return d >= minR && d <= maxR
		})
}

// FindNearestPredatorTarget returns the nearest wildlife-predator target:
// priority Tumor > military agent (ManAtArms/Archer/Siege) > villager agent
// (spec.md §4.2).
func (ix *Index) FindNearestPredatorTarget(pos worldgrid.Pos, maxDist int32) *worldgrid.Thing {
	if t := ix.FindNearestThing(pos, worldgrid.KindTumor, maxDist); t != nil {
		return t
	}

	var bestMilitary *worldgrid.Thing
	var bestMilitaryDist int32 = maxDist + 1
	var bestVillager *worldgrid.Thing
	var bestVillagerDist int32 = maxDist + 1

	for _, ci := range ix.radiusCells(pos, maxDist) {
		for _, t := range ix.cells[ci].byKind[worldgrid.KindAgent] {
			if !t.Alive() || t.Pos.X < 0 || t.Pos.Y < 0 {
				continue
			}
			d := pos.Chebyshev(t.Pos)
			if d > maxDist {
				continue
			}
			if isMilitary(t.UnitClass) {
				if d < bestMilitaryDist {
					bestMilitaryDist, bestMilitary = d, t
				}
			} else if d < bestVillagerDist {
				bestVillagerDist, bestVillager = d, t
			}
		}
	}
	if bestMilitary != nil {
		return bestMilitary
	}
	return bestVillager
}

func isMilitary(c worldgrid.UnitClass) bool {
	return c == worldgrid.UnitManAtArms || c == worldgrid.UnitArcher || c == worldgrid.UnitSiege
}

// findNearest is the shared shrinkable-radius nearest-match search.
func (ix *Index) findNearest(pos worldgrid.Pos, maxDist int32, bucket func(*cell) []*worldgrid.Thing, match func(*worldgrid.Thing) bool) *worldgrid.Thing {
	var best *worldgrid.Thing
	bestDist := maxDist + 1
	for _, ci := range ix.radiusCells(pos, maxDist) {
		// Shrunk radius: skip a cell whose nearest tile is no closer than
		// the best match found so far.
		cx, cy := ci%ix.cols, ci/ix.cols
		dx := max(cx*ix.cellSize-pos.X, pos.X-(cx*ix.cellSize+ix.cellSize-1), 0)
		dy := max(cy*ix.cellSize-pos.Y, pos.Y-(cy*ix.cellSize+ix.cellSize-1), 0)
		if max(dx, dy) >= bestDist {
			continue
		}
		for _, t := range bucket(&ix.cells[ci]) {
			if t.Pos.X < 0 || t.Pos.Y < 0 {
				continue // edge policy: off-map things skipped in-body
			}
			if !match(t) {
				continue
			}
			d := pos.Chebyshev(t.Pos)
			if d <= maxDist && d < bestDist {
				bestDist = d
				best = t
			}
		}
	}
	return best
}

// CollectEnemiesInRange returns every enemy agent within maxDist (no early
// exit — caller wants the full set).
func (ix *Index) CollectEnemiesInRange(pos worldgrid.Pos, teamID int8, maxDist int32) []*worldgrid.Thing {
	return ix.collect(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.byKind[worldgrid.KindAgent] },
		func(t *worldgrid.Thing) bool { return t.TeamID != teamID && t.Alive() })
}

// CollectAlliesInRange returns every allied agent within maxDist.
func (ix *Index) CollectAlliesInRange(pos worldgrid.Pos, teamID int8, maxDist int32) []*worldgrid.Thing {
	return ix.collect(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.byKind[worldgrid.KindAgent] },
		func(t *worldgrid.Thing) bool { return t.TeamID == teamID && t.Alive() })
}

// CollectThingsInRange returns every thing within maxDist.
func (ix *Index) CollectThingsInRange(pos worldgrid.Pos, maxDist int32) []*worldgrid.Thing {
	return ix.collect(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.all }, func(*worldgrid.Thing) bool { return true })
}

// CollectAgentsByClassInRange returns every agent of class cls within maxDist.
func (ix *Index) CollectAgentsByClassInRange(pos worldgrid.Pos, cls worldgrid.UnitClass, maxDist int32) []*worldgrid.Thing {
	return ix.collect(pos, maxDist, func(c *cell) []*worldgrid.Thing { return c.byKind[worldgrid.KindAgent] },
		func(t *worldgrid.Thing) bool { return t.UnitClass == cls })
}

func (ix *Index) collect(pos worldgrid.Pos, maxDist int32, bucket func(*cell) []*worldgrid.Thing, match func(*worldgrid.Thing) bool) []*worldgrid.Thing {
	var out []*worldgrid.Thing
	for _, ci := range ix.radiusCells(pos, maxDist) {
		for _, t := range bucket(&ix.cells[ci]) {
			if t.Pos.X < 0 || t.Pos.Y < 0 {
				continue
			}
			if !match(t) {
				continue
			}
			if pos.Chebyshev(t.Pos) <= maxDist {
				out = append(out, t)
			}
		}
	}
	// Stable lexicographic order (by ID) so iteration is deterministic
	// regardless of cell-bucket append order (spec.md §3 Determinism).
	slices.SortFunc(out, func(a, b *worldgrid.Thing) int { return int(a.ID) - int(b.ID) })
	return out
}

// Rebuild clears and reinserts every thing — used on reset() and whenever
// map generation changes (spec.md §4.2).
func (ix *Index) Rebuild(things []*worldgrid.Thing) {
	for i := range ix.cells {
		ix.cells[i] = cell{}
	}
	ix.allSlot = make(map[worldgrid.ID]int)
	ix.kindSlot = make(map[worldgrid.ID]int)
	ix.cellOf = make(map[worldgrid.ID]int32)
	for _, t := range things {
		ix.Add(t)
	}
}
