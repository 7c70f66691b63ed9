package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/teams"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// buildSearchOffsets is the fixed offset search order spec.md §4.3 BUILD
// specifies: forward first, then the four cardinals, then the four
// diagonals. Forward is prepended per-call since it depends on the actor's
// current orientation.
var buildSearchOffsets = []worldgrid.Orientation{
	worldgrid.North, worldgrid.East, worldgrid.South, worldgrid.West,
	worldgrid.NorthWest, worldgrid.NorthEast, worldgrid.SouthWest, worldgrid.SouthEast,
}

// doBuild implements spec.md §4.3 BUILD.
func (env *Environment) doBuild(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	if int(argument) >= len(teams.BuildChoices) {
		stats.ActionInvalid++
		return
	}
	spec := teams.BuildChoices[argument]
	buildKind := worldgrid.BuildKind(argument)

	site, ok := env.findBuildSite(t)
	if !ok {
		stats.ActionInvalid++
		return
	}
	if !env.payForBuild(t, spec.Cost) {
		stats.ActionInvalid++
		return
	}

	if buildKind == worldgrid.BuildRoad {
		env.Map.SetTerrain(site, worldgrid.Road)
		stats.ActionBuild++
		return
	}

	building := &worldgrid.Thing{
		Kind:      buildKindToThingKind(buildKind),
		Pos:       site,
		TeamID:    t.TeamID,
		HP:        spec.MaxHP,
		MaxHP:     spec.MaxHP,
		DoorHP:    spec.MaxHP,
		BuildKind: buildKind,
	}
	env.AddThing(building)
	stats.ActionBuild++

	if buildKind.IsResourceCamp() {
		if anchor, found := env.findNearestTownCenterOrAltar(t.TeamID, site); found {
			env.drawRoad(site, anchor)
		}
	}
}

// findBuildSite tries forward-then-compass offsets from t, one tile out,
// returning the first tile where canPlaceBuilding succeeds.
func (env *Environment) findBuildSite(t *worldgrid.Thing) (worldgrid.Pos, bool) {
	tried := make(map[worldgrid.Orientation]bool, 9)

	if t.Orientation.Valid() {
		tried[t.Orientation] = true
		if p := t.Pos.Add(t.Orientation.Delta()); env.canPlaceBuilding(p) {
			return p, true
		}
	}
	for _, o := range buildSearchOffsets {
		if tried[o] {
			continue
		}
		tried[o] = true
		if p := t.Pos.Add(o.Delta()); env.canPlaceBuilding(p) {
			return p, true
		}
	}
	return worldgrid.Pos{}, false
}

func (env *Environment) canPlaceBuilding(p worldgrid.Pos) bool {
	if !env.Map.IsValidPos(p) {
		return false
	}
	if env.Map.TerrainAt(p).Blocked() {
		return false
	}
	if env.Map.Blocking(p) != nil {
		return false
	}
	if env.Map.Overlay(p) != nil {
		return false
	}
	return true
}

// payForBuild pays cost from the actor's own inventory where it can, falling
// back to the team stockpile for the remainder; fails (no partial payment)
// if neither source can cover every line.
func (env *Environment) payForBuild(t *worldgrid.Thing, cost map[items.ItemKey]int32) bool {
	mul := float32(1)
	if team := env.Team(t.TeamID); team != nil && team.Modifiers.BuildCostMul > 0 {
		mul = team.Modifiers.BuildCostMul
	}

	remaining := make(map[items.ItemKey]int32, len(cost))
	for k, n := range cost {
		remaining[k] = int32(float32(n) * mul)
	}

	fromInventory := make(map[items.ItemKey]int32, len(cost))
	for k, n := range remaining {
		have := int32(t.Inventory[k])
		if have <= 0 {
			continue
		}
		take := n
		if take > have {
			take = have
		}
		fromInventory[k] = take
		remaining[k] -= take
	}

	stockCost := make(map[items.ItemKey]int32, len(cost))
	for k, n := range remaining {
		if n > 0 {
			stockCost[k] = n
		}
	}

	team := env.TeamOf(t)
	if len(stockCost) > 0 {
		if team == nil || !team.Stockpile.CanSpend(stockCost) {
			return false
		}
	}

	for k, n := range fromInventory {
		t.Inventory.Remove(k, n)
	}
	if len(stockCost) > 0 {
		team.Stockpile.Spend(stockCost)
	}
	return true
}

// findNearestTownCenterOrAltar is the anchor lookup for resource-camp
// auto-road-draw (spec.md §4.3 BUILD).
func (env *Environment) findNearestTownCenterOrAltar(teamID int8, from worldgrid.Pos) (worldgrid.Pos, bool) {
	var best worldgrid.Pos
	bestDist := int32(-1)
	consider := func(t *worldgrid.Thing) {
		if t.TeamID != teamID {
			return
		}
		d := from.Chebyshev(t.Pos)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = t.Pos
		}
	}
	for _, t := range env.Map.ThingsByKind[worldgrid.KindTownCenter] {
		consider(t)
	}
	for _, t := range env.Map.ThingsByKind[worldgrid.KindAltar] {
		consider(t)
	}
	return best, bestDist >= 0
}

// drawRoad lays a Road path from site to anchor: a horizontal segment first,
// then a vertical segment, reproducing the source's axis order verbatim
// (spec.md §9 open question — "corner depends on axis order").
func (env *Environment) drawRoad(site, anchor worldgrid.Pos) {
	p := site
	step := func(from, to int32) int32 {
		switch {
		case from < to:
			return from + 1
		case from > to:
			return from - 1
		default:
			return from
		}
	}
	for p.X != anchor.X {
		p.X = step(p.X, anchor.X)
		env.placeRoadTile(p)
	}
	for p.Y != anchor.Y {
		p.Y = step(p.Y, anchor.Y)
		env.placeRoadTile(p)
	}
}

func (env *Environment) placeRoadTile(p worldgrid.Pos) {
	if !env.Map.IsValidPos(p) {
		return
	}
	if env.Map.TerrainAt(p).Blocked() {
		return
	}
	if env.Map.Blocking(p) != nil {
		return
	}
	env.Map.SetTerrain(p, worldgrid.Road)
}

// buildKindToThingKind maps a BuildKind choice to the Thing kind placed on
// the grid (spec.md §3 building kinds).
func buildKindToThingKind(k worldgrid.BuildKind) worldgrid.Kind {
	switch k {
	case worldgrid.BuildWall:
		return worldgrid.KindWall
	case worldgrid.BuildDoor:
		return worldgrid.KindDoor
	case worldgrid.BuildTownCenter:
		return worldgrid.KindTownCenter
	case worldgrid.BuildMill:
		return worldgrid.KindMill
	case worldgrid.BuildLumberCamp:
		return worldgrid.KindLumberCamp
	case worldgrid.BuildMiningCamp:
		return worldgrid.KindMiningCamp
	case worldgrid.BuildWeavingLoom:
		return worldgrid.KindWeavingLoom
	case worldgrid.BuildClayOven:
		return worldgrid.KindClayOven
	case worldgrid.BuildBlacksmith:
		return worldgrid.KindBlacksmith
	case worldgrid.BuildMarket:
		return worldgrid.KindMarket
	case worldgrid.BuildStorage:
		return worldgrid.KindStorage
	case worldgrid.BuildArmory:
		return worldgrid.KindArmory
	case worldgrid.BuildBarracks:
		return worldgrid.KindBarracks
	case worldgrid.BuildResearch:
		return worldgrid.KindResearch
	default:
		return worldgrid.KindWall
	}
}
