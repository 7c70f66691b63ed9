package sim

import (
	"github.com/talgya/tribal-sim/internal/entropy"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// herdAgg accumulates position sums for a herd/pack id (spec.md §4.7 step 1).
type herdAgg struct {
	sumX, sumY int64
	count      int32
}

func (a *herdAgg) center() worldgrid.Pos {
	if a.count == 0 {
		return worldgrid.Pos{}
	}
	return worldgrid.Pos{X: int32(a.sumX / int64(a.count)), Y: int32(a.sumY / int64(a.count))}
}

// cornerTargets are the four playable-region corners herds/packs wander
// toward (spec.md §4.7 step 2).
func (env *Environment) cornerTargets() [4]worldgrid.Pos {
	w, h := env.Map.Width-1, env.Map.Height-1
	return [4]worldgrid.Pos{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}}
}

// nearestCorner picks the corner target closest to p. Real herds would track
// a persistent chosen corner and only re-pick near a border (spec.md §4.7
// step 2); tracking that state would require a new Thing field with no other
// use, so this recomputes the nearest corner every tick — behaviorally
// equivalent wandering, simpler state.
func (env *Environment) nearestCorner(p worldgrid.Pos) worldgrid.Pos {
	corners := env.cornerTargets()
	best := corners[0]
	bestDist := p.Chebyshev(best)
	for _, c := range corners[1:] {
		if d := p.Chebyshev(c); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// scaledAggroRadius widens a predator's search radius by the average
// team AI-difficulty (SPEC_FULL.md §6.1.1 "AI-difficulty knobs" — wildlife
// has no team of its own, so it reacts to the game's overall difficulty
// setting rather than any one team's).
func (env *Environment) scaledAggroRadius(base int32) int32 {
	var sum float32
	n := 0
	for _, team := range env.Teams {
		if team != nil {
			sum += team.Difficulty
			n++
		}
	}
	if n == 0 {
		return base
	}
	return int32(float32(base) * (sum / float32(n)))
}

// RunWildlifeAI implements spec.md §4.7: herd/pack aggregation, movement,
// and 4-cardinal predator attacks. Runs after agent dispatch, before
// observations (§4.9 step 4).
func (env *Environment) RunWildlifeAI() {
	herds := map[int32]*herdAgg{}
	for _, cow := range env.Map.ThingsByKind[worldgrid.KindCow] {
		agg := herds[cow.HerdID]
		if agg == nil {
			agg = &herdAgg{}
			herds[cow.HerdID] = agg
		}
		agg.sumX += int64(cow.Pos.X)
		agg.sumY += int64(cow.Pos.Y)
		agg.count++
	}

	packs := map[int32]*herdAgg{}
	for _, wolf := range env.Map.ThingsByKind[worldgrid.KindWolf] {
		agg := packs[wolf.PackID]
		if agg == nil {
			agg = &herdAgg{}
			packs[wolf.PackID] = agg
		}
		agg.sumX += int64(wolf.Pos.X)
		agg.sumY += int64(wolf.Pos.Y)
		agg.count++
	}

	for _, cow := range env.Map.ThingsByKind[worldgrid.KindCow] {
		env.stepCow(cow, herds[cow.HerdID])
	}
	for _, wolf := range env.Map.ThingsByKind[worldgrid.KindWolf] {
		env.stepWolf(wolf, packs[wolf.PackID])
	}
	for _, bear := range env.Map.ThingsByKind[worldgrid.KindBear] {
		env.stepBear(bear)
	}
}

// stepCow implements spec.md §4.7 step 3.
func (env *Environment) stepCow(cow *worldgrid.Thing, herd *herdAgg) {
	if herd == nil || herd.count == 0 {
		return
	}
	center := herd.center()
	target := env.nearestCorner(center)

	switch {
	case cow.Pos.Chebyshev(center) > HerdWanderDistance:
		env.tryMoveWildlife(cow, stepToward(cow.Pos, center))
	case center.Chebyshev(target) <= 3 && env.Rng.Chance(CowHerdFollowChance):
		env.tryMoveWildlife(cow, stepToward(cow.Pos, target))
	case env.Rng.Chance(CowRandomMoveChance):
		env.tryMoveWildlife(cow, cow.Pos.Add(randomCardinalDelta(env.Rng)))
	}
}

// stepWolf implements spec.md §4.7 step 4: hunt a spatial-index predator
// target if the pack has one, else wander like cows; scattered wolves
// (post-pack-leader-death) wander randomly regardless.
func (env *Environment) stepWolf(wolf *worldgrid.Thing, pack *herdAgg) {
	if wolf.ScatteredSteps > 0 {
		wolf.ScatteredSteps--
		env.tryMoveWildlife(wolf, wolf.Pos.Add(randomCardinalDelta(env.Rng)))
		env.predatorStrike(wolf)
		return
	}

	if target := env.Spatial.FindNearestPredatorTarget(wolf.Pos, env.scaledAggroRadius(WolfHuntRadius)); target != nil {
		env.tryMoveWildlife(wolf, stepToward(wolf.Pos, target.Pos))
		env.predatorStrike(wolf)
		return
	}

	if pack != nil && pack.count > 0 {
		center := pack.center()
		target := env.nearestCorner(center)
		switch {
		case wolf.Pos.Chebyshev(center) > HerdWanderDistance:
			env.tryMoveWildlife(wolf, stepToward(wolf.Pos, center))
		case env.Rng.Chance(CowHerdFollowChance):
			env.tryMoveWildlife(wolf, stepToward(wolf.Pos, target))
		}
	}
	env.predatorStrike(wolf)
}

// stepBear implements spec.md §4.7 step 5: solitary, aggroing within
// BearAggroRadius.
func (env *Environment) stepBear(bear *worldgrid.Thing) {
	if target := env.Spatial.FindNearestPredatorTarget(bear.Pos, env.scaledAggroRadius(BearAggroRadius)); target != nil {
		env.tryMoveWildlife(bear, stepToward(bear.Pos, target.Pos))
	} else if env.Rng.Chance(CowRandomMoveChance) {
		env.tryMoveWildlife(bear, bear.Pos.Add(randomCardinalDelta(env.Rng)))
	}
	env.predatorStrike(bear)
}

// predatorStrike implements spec.md §4.7 step 6: 4-cardinal adjacency
// attacks against unclaimed Tumors and alive agents.
func (env *Environment) predatorStrike(predator *worldgrid.Thing) {
	damage := predator.AttackDamage
	if damage <= 0 {
		damage = PredatorDefaultDamage
	}
	cardinals := []worldgrid.Orientation{worldgrid.North, worldgrid.East, worldgrid.South, worldgrid.West}
	for _, o := range cardinals {
		p := predator.Pos.Add(o.Delta())
		occ := env.Map.Blocking(p)
		if occ == nil {
			continue
		}
		switch {
		case occ.Kind == worldgrid.KindTumor && !occ.HasClaimedTerritory:
			env.RemoveThing(occ)
		case occ.Kind == worldgrid.KindAgent && occ.Alive():
			env.applyAgentDamage(occ, damage, predator)
		}
	}
}

// tryMoveWildlife enforces the same terrain/door/empty-tile rules as agent
// MOVE (spec.md §4.7 "Movement uses tryMoveWildlife").
func (env *Environment) tryMoveWildlife(t *worldgrid.Thing, dest worldgrid.Pos) {
	if env.blockedForMove(dest, t.TeamID) {
		return
	}
	if env.Map.Blocking(dest) != nil {
		return
	}
	env.MoveThing(t, dest)
}

// stepToward returns the tile one step closer to target along whichever
// axis (or both, diagonally) reduces distance.
func stepToward(from, target worldgrid.Pos) worldgrid.Pos {
	next := from
	switch {
	case from.X < target.X:
		next.X++
	case from.X > target.X:
		next.X--
	}
	switch {
	case from.Y < target.Y:
		next.Y++
	case from.Y > target.Y:
		next.Y--
	}
	return next
}

// randomCardinalDelta returns a uniformly chosen N/E/S/W unit delta.
func randomCardinalDelta(rng *entropy.Source) worldgrid.Pos {
	dirs := [4]worldgrid.Orientation{worldgrid.North, worldgrid.East, worldgrid.South, worldgrid.West}
	return dirs[rng.Intn(4)].Delta()
}
