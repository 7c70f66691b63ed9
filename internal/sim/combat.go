package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// applyAgentDamage implements spec.md §4.5 applyAgentDamage: armor absorbs
// one hit fully (consuming the armor item), otherwise dmg is applied
// directly; death converts the agent to a terminated corpse.
func (env *Environment) applyAgentDamage(target *worldgrid.Thing, dmg int32, attacker *worldgrid.Thing) {
	if target.Inventory[items.ItemArmor] > 0 {
		target.Inventory.Remove(items.ItemArmor, 1)
		env.setActionTint(target.Pos, ActionTintShield, [3]uint8{255, 255, 180}, 2)
		return
	}

	target.HP -= dmg
	env.setActionTint(target.Pos, ActionTintHit, [3]uint8{255, 60, 60}, 2)

	if target.HP > 0 {
		return
	}
	env.killAgent(target)
}

// killAgent converts a downed agent into a corpse: its stockpile-class
// inventory spills into a new Corpse at its position, it's cleared from the
// grid, marked terminated, and its home altar loses one heart (spec.md
// §4.1 "on death", §4.5 step 2).
func (env *Environment) killAgent(target *worldgrid.Thing) {
	pos := target.Pos
	teamID := target.TeamID

	corpse := &worldgrid.Thing{Kind: worldgrid.KindCorpse, TeamID: -1}
	for key := items.ItemKey(0); key < items.NumItems; key++ {
		if items.IsStockpileClass(key) && target.Inventory[key] > 0 {
			corpse.Inventory[key] = target.Inventory[key]
		}
	}

	target.Terminated = true
	target.Reward += env.Cfg.DeathPenalty
	env.Spatial.Remove(target)
	env.Map.Remove(target)

	if env.Map.Blocking(pos) == nil {
		corpse.Pos = pos
		env.AddThing(corpse)
	}

	if altar := env.findAltar(target.HomeAltar, teamID); altar != nil {
		altar.HP--
	}
}

// findAltar resolves a stored homeAltar ID against the registry, falling
// back to any altar owned by teamID.
func (env *Environment) findAltar(homeAltar worldgrid.ID, teamID int8) *worldgrid.Thing {
	for _, a := range env.Map.ThingsByKind[worldgrid.KindAltar] {
		if a.ID == homeAltar {
			return a
		}
	}
	for _, a := range env.Map.ThingsByKind[worldgrid.KindAltar] {
		if a.TeamID == teamID {
			return a
		}
	}
	return nil
}

// damageAltar implements the "Enemy Altar" branch of §4.3's per-tile hit
// resolution: decrement hearts, and on 0 flip ownership to attackerTeam and
// cascade that flip to every Door previously owned by the old team (spec.md
// §8 testable property / E4, §9 "cascades only to Doors").
func (env *Environment) damageAltar(altar *worldgrid.Thing, attackerTeam int8) {
	altar.HP--
	if altar.HP > 0 {
		return
	}
	oldTeam := altar.TeamID
	altar.TeamID = attackerTeam
	altar.HP = 0
	for _, door := range env.Map.ThingsByKind[worldgrid.KindDoor] {
		if door.TeamID == oldTeam {
			door.TeamID = attackerTeam
		}
	}
}

// autoRespawn implements §4.9 step 7: every altar with hearts at or above
// the auto-spawn threshold respawns one terminated teammate per tick,
// spending one heart.
func (env *Environment) autoRespawn() {
	for _, altar := range env.Map.ThingsByKind[worldgrid.KindAltar] {
		if altar.HP < MapObjectAltarAutoSpawnThreshold {
			continue
		}
		agent := env.findTerminatedTeammate(altar.TeamID)
		if agent == nil {
			continue
		}
		spot, ok := env.findRespawnSpot(altar.Pos)
		if !ok {
			continue
		}
		env.respawnAgent(agent, spot)
		altar.HP--
	}
}

func (env *Environment) findTerminatedTeammate(teamID int8) *worldgrid.Thing {
	for _, a := range env.Map.Agents {
		if a != nil && a.Terminated && a.TeamID == teamID {
			return a
		}
	}
	return nil
}

// findRespawnSpot looks for an empty, walkable tile adjacent to center
// (spec.md §4.5 "re-enters at an adjacent empty tile").
func (env *Environment) findRespawnSpot(center worldgrid.Pos) (worldgrid.Pos, bool) {
	for o := worldgrid.Orientation(0); o < worldgrid.NumOrientations; o++ {
		p := center.Add(o.Delta())
		if !env.Map.IsValidPos(p) {
			continue
		}
		if env.Map.TerrainAt(p).Blocked() {
			continue
		}
		if env.Map.Blocking(p) != nil {
			continue
		}
		return p, true
	}
	return worldgrid.Pos{}, false
}

// respawnAgent resets a terminated agent to default HP with inventory
// cleared and re-inserts it into the world at spot (spec.md §4.5).
func (env *Environment) respawnAgent(agent *worldgrid.Thing, spot worldgrid.Pos) {
	agent.Terminated = false
	if team := env.Team(agent.TeamID); team != nil {
		agent.HP = agent.MaxHP + team.Modifiers.ClassHPBonus[uint8(agent.UnitClass)]
	} else {
		agent.HP = agent.MaxHP
	}
	agent.Inventory = items.Inventory{}
	agent.Frozen = 0
	agent.ShieldTicks = 0
	agent.Pos = spot
	env.AddThing(agent)
}
