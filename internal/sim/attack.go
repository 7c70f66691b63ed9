package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// doAttack implements spec.md §4.3 ATTACK: class-specific dispatch over a
// shared per-tile hit resolution (tryHitAt).
func (env *Environment) doAttack(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	if t.Stance == worldgrid.StancePassive || t.Stance == worldgrid.StanceNoAttack {
		stats.ActionInvalid++
		return
	}

	t.Orientation = dir
	d := dir.Delta()

	damage := t.AttackDamage
	if damage < 1 {
		damage = 1
	}
	if team := env.Team(t.TeamID); team != nil {
		damage += team.Modifiers.ClassAttackBonus[uint8(t.UnitClass)]
	}

	var hit bool
	switch t.UnitClass {
	case worldgrid.UnitMonk:
		hit = env.monkHeal(t, d)
	case worldgrid.UnitArcher:
		hit = env.rangedAttack(t, d, damage, ArcherBaseRange, false)
	case worldgrid.UnitSiege:
		hit = env.rangedAttack(t, d, damage, ArcherBaseRange, true)
	default:
		if t.Inventory.Has(items.ItemSpear, 1) {
			hit = env.spearAttack(t, d, damage)
		} else {
			hit = env.tryHitAt(t, t.Pos.Add(d), damage)
		}
	}

	if hit {
		stats.ActionAttack++
		if t.Inventory[items.ItemArmor] > 0 {
			t.ShieldTicks = 2
			env.setActionTint(t.Pos, ActionTintShield, [3]uint8{200, 200, 255}, 2)
		}
	} else {
		stats.ActionInvalid++
	}
}

// monkHeal heals the teammate agent directly in front of t (spec.md §4.3
// ATTACK: "UnitMonk: heals the target directly in front if it is a
// teammate agent").
func (env *Environment) monkHeal(t *worldgrid.Thing, d worldgrid.Pos) bool {
	target := env.Map.Blocking(t.Pos.Add(d))
	if target == nil || target.Kind != worldgrid.KindAgent || target.TeamID != t.TeamID || target.Terminated {
		return false
	}
	if target.HP >= target.MaxHP {
		return false
	}
	target.HP += 4
	if target.HP > target.MaxHP {
		target.HP = target.MaxHP
	}
	env.setActionTint(target.Pos, ActionTintHealMonk, [3]uint8{120, 255, 120}, 3)
	return true
}

// rangedAttack iterates dist 1..maxRange along d, stopping at the first hit
// target (spec.md §4.3 ATTACK UnitArcher/UnitSiege). When aoe is set (siege)
// a successful hit also strikes the two perpendicular side tiles at the
// same distance.
func (env *Environment) rangedAttack(t *worldgrid.Thing, d worldgrid.Pos, damage int32, maxRange int32, aoe bool) bool {
	for dist := int32(1); dist <= maxRange; dist++ {
		p := t.Pos.Add(d.Scale(dist))
		if !env.Map.IsValidPos(p) || env.Map.TerrainAt(p).Blocked() {
			return false
		}
		if env.Map.Blocking(p) == nil && env.Map.Overlay(p) == nil {
			continue
		}
		hit := env.tryHitAt(t, p, damage)
		if hit && aoe {
			perp1 := worldgrid.Pos{X: -d.Y, Y: d.X}
			perp2 := worldgrid.Pos{X: d.Y, Y: -d.X}
			env.tryHitAt(t, p.Add(perp1), damage)
			env.tryHitAt(t, p.Add(perp2), damage)
		}
		return hit
	}
	return false
}

// spearAttack performs the Spear area strike: for each step in 1..3, hits
// the forward tile plus its two perpendicular neighbors (spec.md §4.3
// ATTACK "Otherwise, if the agent carries a Spear"). inventorySpear
// decrements by exactly 1 iff at least one tile was hit across the whole
// strike.
func (env *Environment) spearAttack(t *worldgrid.Thing, d worldgrid.Pos, damage int32) bool {
	perp1 := worldgrid.Pos{X: -d.Y, Y: d.X}
	perp2 := worldgrid.Pos{X: d.Y, Y: -d.X}

	anyHit := false
	for step := int32(1); step <= 3; step++ {
		center := t.Pos.Add(d.Scale(step))
		for _, p := range []worldgrid.Pos{center, center.Add(perp1), center.Add(perp2)} {
			if env.tryHitAt(t, p, damage) {
				anyHit = true
			}
		}
	}
	if anyHit {
		t.Inventory.Remove(items.ItemSpear, 1)
	}
	return anyHit
}

// tryHitAt resolves one melee/ranged/spear hit against whatever occupies p,
// first match wins (spec.md §4.3 "Per-tile hit resolution").
func (env *Environment) tryHitAt(attacker *worldgrid.Thing, p worldgrid.Pos, damage int32) bool {
	if !env.Map.IsValidPos(p) {
		return false
	}

	if door := env.Map.Overlay(p); door != nil && door.Kind == worldgrid.KindDoor && door.TeamID != attacker.TeamID {
		door.DoorHP -= damage
		if door.DoorHP <= 0 {
			env.RemoveThing(door)
		}
		return true
	}

	occ := env.Map.Blocking(p)
	if occ == nil {
		return false
	}

	switch occ.Kind {
	case worldgrid.KindTumor:
		env.RemoveThing(occ)
		attacker.Reward += env.Cfg.TumorKillReward
		return true

	case worldgrid.KindSpawner:
		env.RemoveThing(occ)
		return true

	case worldgrid.KindAgent:
		if occ.TeamID == attacker.TeamID || occ == attacker {
			return false
		}
		env.applyAgentDamage(occ, damage, attacker)
		return true

	case worldgrid.KindAltar:
		if occ.TeamID == attacker.TeamID {
			return false
		}
		env.damageAltar(occ, attacker.TeamID)
		return true

	case worldgrid.KindCow:
		if attacker.Inventory.CanAccept(items.ItemMeat, 1) {
			attacker.Inventory.Add(items.ItemMeat, 1)
			if occ.ResourceCount > 1 {
				pos := occ.Pos
				env.RemoveThing(occ)
				env.AddThing(&worldgrid.Thing{Kind: worldgrid.KindCorpse, Pos: pos, TeamID: -1, ResourceCount: occ.ResourceCount - 1})
			} else {
				env.RemoveThing(occ)
			}
		}
		return true

	case worldgrid.KindTree:
		return env.harvestTree(attacker, occ)

	default:
		return false
	}
}
