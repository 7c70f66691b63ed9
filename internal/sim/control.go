package sim

import (
	"github.com/talgya/tribal-sim/internal/items"
	"github.com/talgya/tribal-sim/internal/teams"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// This file implements SPEC_FULL.md §6.1.1's agent-control and query
// endpoints: real state-mutating commands against Environment's agents and
// teams, consulted elsewhere in the step pipeline (ATTACK's stance check,
// wildlife's predator search, territory scoring). None of the functions
// below run on the per-tick hot path unless an agent consults its own
// standing order, matching spec.md §5's "no blocking I/O on the core path"
// and SPEC_FULL.md §5's single-threaded step pipeline.

func (env *Environment) agentByID(agentID int32) *worldgrid.Thing {
	if agentID < 0 || int(agentID) >= len(env.Map.Agents) {
		return nil
	}
	return env.Map.Agents[agentID]
}

// SetStance sets agentID's combat posture. Returns 1 on success, 0 if
// agentID or stance is invalid.
func (env *Environment) SetStance(agentID int32, stance int32) int32 {
	a := env.agentByID(agentID)
	if a == nil || stance < 0 || stance > int32(worldgrid.StanceNoAttack) {
		return 0
	}
	a.Stance = worldgrid.Stance(stance)
	return 1
}

// GetStance returns agentID's stance, or -1 if agentID is invalid.
func (env *Environment) GetStance(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return -1
	}
	return int32(a.Stance)
}

// SetAttackMoveTarget orders agentID to advance on (x,y), attacking
// whatever it encounters. Cleared by StopAgent.
func (env *Environment) SetAttackMoveTarget(agentID, x, y int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.AttackMoveActive = true
	a.AttackMoveTarget = worldgrid.Pos{X: x, Y: y}
	a.Order = worldgrid.OrderNone
	return 1
}

// ClearAttackMoveTarget cancels any standing attack-move order.
func (env *Environment) ClearAttackMoveTarget(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.AttackMoveActive = false
	return 1
}

// QueryAttackMoveTarget writes the agent's attack-move destination into
// x/y and returns 1 if one is active, 0 if none is set, -1 if agentID is
// invalid.
func (env *Environment) QueryAttackMoveTarget(agentID int32) (x, y, active int32) {
	a := env.agentByID(agentID)
	if a == nil {
		return 0, 0, -1
	}
	if !a.AttackMoveActive {
		return 0, 0, 0
	}
	return a.AttackMoveTarget.X, a.AttackMoveTarget.Y, 1
}

// SetPatrol orders agentID to shuttle between (ax,ay) and (bx,by).
func (env *Environment) SetPatrol(agentID, ax, ay, bx, by int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.PatrolActive = true
	a.PatrolA = worldgrid.Pos{X: ax, Y: ay}
	a.PatrolB = worldgrid.Pos{X: bx, Y: by}
	a.PatrolTowardB = true
	return 1
}

// ClearPatrol cancels any standing patrol order.
func (env *Environment) ClearPatrol(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.PatrolActive = false
	return 1
}

// SetGarrison garrisons agentID inside buildingID (both must share a team
// and the building must be adjacent), or clears garrison when buildingID
// is negative.
func (env *Environment) SetGarrison(agentID, buildingID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	if buildingID < 0 {
		a.Garrisoned = false
		a.GarrisonBuilding = worldgrid.NoID
		return 1
	}
	if buildingID < 0 || int(buildingID) >= len(env.Map.Things) {
		return 0
	}
	b := env.Map.Things[buildingID]
	if b == nil || b.TeamID != a.TeamID || a.Pos.Chebyshev(b.Pos) > 1 {
		return 0
	}
	a.Garrisoned = true
	a.GarrisonBuilding = b.ID
	return 1
}

// QueryGarrison returns the building ID agentID is garrisoned in, or -1 if
// not garrisoned / agentID invalid.
func (env *Environment) QueryGarrison(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil || !a.Garrisoned {
		return -1
	}
	return int32(a.GarrisonBuilding)
}

// EnqueueProduction appends buildKind to teamID's production queue
// (SPEC_FULL.md §6.1.1). Accepts any BuildKind below NumBuildKinds,
// including Barracks and Research, which have no BUILD (BuildChoices) entry.
func (env *Environment) EnqueueProduction(teamID, buildKind int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || buildKind < 0 || buildKind >= int32(worldgrid.NumBuildKinds) {
		return 0
	}
	team.ProductionQueue = append(team.ProductionQueue, uint8(buildKind))
	return 1
}

// QueryProductionQueueLen returns teamID's production queue depth, or -1 if
// teamID is invalid.
func (env *Environment) QueryProductionQueueLen(teamID int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil {
		return -1
	}
	return int32(len(team.ProductionQueue))
}

// DequeueProduction pops and returns the front of teamID's production
// queue, or -1 if empty/invalid.
func (env *Environment) DequeueProduction(teamID int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || len(team.ProductionQueue) == 0 {
		return -1
	}
	head := team.ProductionQueue[0]
	team.ProductionQueue = team.ProductionQueue[1:]
	return int32(head)
}

// SetResearchLevel sets teamID's level for the given topic.
func (env *Environment) SetResearchLevel(teamID, topic, level int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || topic < 0 || topic >= int32(teams.NumResearchTopics) {
		return 0
	}
	team.ResearchLevels[topic] = level
	return 1
}

// GetResearchLevel returns teamID's level for topic, or -1 if invalid.
func (env *Environment) GetResearchLevel(teamID, topic int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || topic < 0 || topic >= int32(teams.NumResearchTopics) {
		return -1
	}
	return team.ResearchLevels[topic]
}

// SetScoutMode toggles agentID's scout flag, consulted by fog-of-war reveal
// radius (wider than the standard observation window).
func (env *Environment) SetScoutMode(agentID, on int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.ScoutMode = on != 0
	return 1
}

// scoutRevealRadius is wider than ObservationRadius for agents in scout
// mode (SPEC_FULL.md §6.1.1 "scout mode").
const scoutRevealRadius = ObservationRadius * 2

// RevealFogAround marks every tile within radius of agentID's position as
// revealed for its team (SPEC_FULL.md §6.1.1 "fog-of-war reveal"), using
// scoutRevealRadius for agents in scout mode. Step does not call it; tiles
// are revealed only when a host calls this endpoint.
func (env *Environment) RevealFogAround(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	team := env.Team(a.TeamID)
	if team == nil {
		return 0
	}
	radius := int32(ObservationRadius)
	if a.ScoutMode {
		radius = scoutRevealRadius
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := worldgrid.Pos{X: a.Pos.X + dx, Y: a.Pos.Y + dy}
			if !env.Map.IsValidPos(p) {
				continue
			}
			team.FogRevealed[int(p.Y)*MapWidth+int(p.X)] = true
		}
	}
	return 1
}

// QueryFogRevealed reports whether (x,y) has ever been revealed to teamID.
func (env *Environment) QueryFogRevealed(teamID, x, y int32) int32 {
	team := env.Team(int8(teamID))
	p := worldgrid.Pos{X: x, Y: y}
	if team == nil || !env.Map.IsValidPos(p) {
		return -1
	}
	if team.FogRevealed[int(y)*MapWidth+int(x)] {
		return 1
	}
	return 0
}

// SetRallyPoint stores teamID's rally point in Team.RallyPoint. Respawn and
// unit training do not read it; they place agents via findRespawnSpot.
func (env *Environment) SetRallyPoint(teamID, x, y int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil {
		return 0
	}
	team.RallyPoint = teams.Point{X: x, Y: y}
	return 1
}

// StopAgent clears every standing order (attack-move, patrol, follow).
func (env *Environment) StopAgent(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.Order = worldgrid.OrderStop
	a.AttackMoveActive = false
	a.PatrolActive = false
	return 1
}

// HoldPosition orders agentID to stay put and defend, overriding movement
// but not attacks.
func (env *Environment) HoldPosition(agentID int32) int32 {
	a := env.agentByID(agentID)
	if a == nil {
		return 0
	}
	a.Order = worldgrid.OrderHold
	a.AttackMoveActive = false
	a.PatrolActive = false
	return 1
}

// SetFollow orders agentID to follow targetID.
func (env *Environment) SetFollow(agentID, targetID int32) int32 {
	a := env.agentByID(agentID)
	target := env.agentByID(targetID)
	if a == nil || target == nil {
		return 0
	}
	a.Order = worldgrid.OrderFollow
	a.FollowTarget = target.ID
	return 1
}

// SetFormation sets teamID's movement formation.
func (env *Environment) SetFormation(teamID, formation int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || formation < 0 || formation > int32(teams.FormationWedge) {
		return 0
	}
	team.Formation = teams.Formation(formation)
	return 1
}

// GetFormation returns teamID's formation, or -1 if invalid.
func (env *Environment) GetFormation(teamID int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil {
		return -1
	}
	return int32(team.Formation)
}

// marketTradeRate is how many units of fromRes a unit of toRes costs,
// generalizing sellAtMarket's fixed Gold rate (use.go) into a two-way
// conversion for the control endpoint.
const marketTradeRate = 3

// TradeAtMarket converts fromRes→toRes in teamID's stockpile at
// marketTradeRate fromRes per toRes, amount units of toRes at a time.
func (env *Environment) TradeAtMarket(teamID, fromRes, toRes, amount int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || amount <= 0 {
		return 0
	}
	from, to := items.ItemKey(fromRes), items.ItemKey(toRes)
	cost := map[items.ItemKey]int32{from: amount * marketTradeRate}
	if !team.Stockpile.Spend(cost) {
		return 0
	}
	team.Stockpile.Add(to, amount, team.Limits)
	return 1
}

// SetControlGroup saves agentIDs into teamID's control group slot.
func (env *Environment) SetControlGroup(teamID, slot int32, agentIDs []int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || slot < 0 || slot >= teams.NumControlGroups {
		return 0
	}
	team.SelectionGroups[slot] = append([]int32(nil), agentIDs...)
	return 1
}

// QueryControlGroup returns the agent IDs saved in teamID's control group
// slot, or nil if invalid.
func (env *Environment) QueryControlGroup(teamID, slot int32) []int32 {
	team := env.Team(int8(teamID))
	if team == nil || slot < 0 || slot >= teams.NumControlGroups {
		return nil
	}
	return team.SelectionGroups[slot]
}

// threatQueryRadius bounds QueryThreat's search (SPEC_FULL.md §6.1.1
// "threat-map queries").
const threatQueryRadius = 12

// QueryThreat sums the attack damage of every live enemy-of-teamID agent
// within threatQueryRadius of (x,y), a coarse threat-map value a host can
// use for AI decision-making.
func (env *Environment) QueryThreat(teamID, x, y int32) int32 {
	team := env.Team(int8(teamID))
	p := worldgrid.Pos{X: x, Y: y}
	if team == nil || !env.Map.IsValidPos(p) {
		return -1
	}
	threat := int32(0)
	for _, t := range env.Spatial.CollectThingsInRange(p, threatQueryRadius) {
		if t.Kind == worldgrid.KindAgent && t.Alive() && t.TeamID != team.ID {
			dmg := t.AttackDamage
			if dmg <= 0 {
				dmg = 1
			}
			threat += dmg
		}
	}
	return threat
}

// SetTeamModifiers overwrites teamID's gather-rate/build-cost multipliers.
func (env *Environment) SetTeamModifiers(teamID int32, gatherRateMul, buildCostMul float32) int32 {
	team := env.Team(int8(teamID))
	if team == nil {
		return 0
	}
	team.Modifiers.GatherRateMul = gatherRateMul
	team.Modifiers.BuildCostMul = buildCostMul
	return 1
}

// SetClassHPBonus sets teamID's flat HP bonus for unitClass.
func (env *Environment) SetClassHPBonus(teamID, unitClass, bonus int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || unitClass < 0 || unitClass >= int32(worldgrid.NumUnitClasses) {
		return 0
	}
	team.Modifiers.ClassHPBonus[uint8(unitClass)] = bonus
	return 1
}

// SetClassAttackBonus sets teamID's flat attack-damage bonus for unitClass.
func (env *Environment) SetClassAttackBonus(teamID, unitClass, bonus int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || unitClass < 0 || unitClass >= int32(worldgrid.NumUnitClasses) {
		return 0
	}
	team.Modifiers.ClassAttackBonus[uint8(unitClass)] = bonus
	return 1
}

// RecomputeTerritory counts the map tiles whose tint field is currently
// dominated by teamID's color, storing and returning the count
// (SPEC_FULL.md §6.1.1 "territory scoring"). Cheap enough for an on-demand
// control call (bounded by the tint field's active-tile set, not the
// whole grid) but deliberately not run every tick.
func (env *Environment) RecomputeTerritory(teamID int32) int32 {
	team := env.Team(int8(teamID))
	if team == nil {
		return -1
	}
	count := int32(0)
	for _, idx := range env.Map.Tint.ActiveTiles() {
		p := env.Map.Tint.PosAt(idx)
		r, g, b := env.Map.Tint.ComposedColor(p)
		if closerToTeam(r, g, b, team.Color) {
			count++
		}
	}
	team.TerritoryTiles = count
	return count
}

func closerToTeam(r, g, b uint8, teamColor [3]uint8) bool {
	d := func(a, c uint8) int32 {
		diff := int32(a) - int32(c)
		return diff * diff
	}
	return d(r, teamColor[0])+d(g, teamColor[1])+d(b, teamColor[2]) < 64*64*3
}

// SetDifficulty sets teamID's AI-difficulty multiplier, consulted only by
// wildlife aggro radius scaling (SPEC_FULL.md §6.1.1 "AI-difficulty
// knobs"). It does not change build costs or any teamModifiers multiplier.
func (env *Environment) SetDifficulty(teamID int32, difficulty float32) int32 {
	team := env.Team(int8(teamID))
	if team == nil || difficulty <= 0 {
		return 0
	}
	team.Difficulty = difficulty
	return 1
}

// GetDifficulty returns teamID's difficulty multiplier, or -1 if invalid.
func (env *Environment) GetDifficulty(teamID int32) float32 {
	team := env.Team(int8(teamID))
	if team == nil {
		return -1
	}
	return team.Difficulty
}
