// Command libsim builds the C-ABI shared library spec.md §6.1 describes.
// It is a thin //export shim: every exported function validates/converts
// C buffer pointers into Go slices and forwards straight into
// internal/ffi, which owns the actual global *sim.Environment. No
// simulation logic lives in this package.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/talgya/tribal-sim/internal/ffi"
	"github.com/talgya/tribal-sim/internal/sim"
)

func main() {} // required by -buildmode=c-shared, never called by the host

func bytesFrom(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

func f32From(p unsafe.Pointer, n int) []float32 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float32)(p), n)
}

//export sim_create
func sim_create() C.int32_t {
	return C.int32_t(ffi.Create())
}

//export sim_destroy
func sim_destroy() {
	ffi.Destroy()
}

//export sim_set_config
func sim_set_config(
	seed C.int64_t, maxSteps C.int32_t, victoryCondition C.int32_t,
	tumorSpawnRate, heartReward, oreReward, barReward, woodReward, waterReward,
	wheatReward, spearReward, armorReward, foodReward, clothReward,
	tumorKillReward, survivalPenalty, deathPenalty C.float,
) C.int32_t {
	cfg := sim.Config{
		Seed:             int64(seed),
		MaxSteps:         int32(maxSteps),
		VictoryCondition: sim.VictoryCondition(victoryCondition),
		TumorSpawnRate:   float32(tumorSpawnRate),
		HeartReward:      float32(heartReward),
		OreReward:        float32(oreReward),
		BarReward:        float32(barReward),
		WoodReward:       float32(woodReward),
		WaterReward:      float32(waterReward),
		WheatReward:      float32(wheatReward),
		SpearReward:      float32(spearReward),
		ArmorReward:      float32(armorReward),
		FoodReward:       float32(foodReward),
		ClothReward:      float32(clothReward),
		TumorKillReward:  float32(tumorKillReward),
		SurvivalPenalty:  float32(survivalPenalty),
		DeathPenalty:     float32(deathPenalty),
	}
	return C.int32_t(ffi.SetConfig(cfg))
}

//export sim_reset_and_get_obs
func sim_reset_and_get_obs(obsBuf unsafe.Pointer, obsLen C.int32_t, rewardsBuf unsafe.Pointer, rewardsLen C.int32_t, terminalsBuf unsafe.Pointer, terminalsLen C.int32_t, truncationsBuf unsafe.Pointer, truncationsLen C.int32_t) C.int32_t {
	return C.int32_t(ffi.ResetAndGetObs(
		bytesFrom(obsBuf, int(obsLen)),
		f32From(rewardsBuf, int(rewardsLen)),
		bytesFrom(terminalsBuf, int(terminalsLen)),
		bytesFrom(truncationsBuf, int(truncationsLen)),
	))
}

//export sim_step_with_pointers
func sim_step_with_pointers(actionsBuf unsafe.Pointer, actionsLen C.int32_t, obsBuf unsafe.Pointer, obsLen C.int32_t, rewardsBuf unsafe.Pointer, rewardsLen C.int32_t, terminalsBuf unsafe.Pointer, terminalsLen C.int32_t, truncationsBuf unsafe.Pointer, truncationsLen C.int32_t) C.int32_t {
	return C.int32_t(ffi.StepWithPointers(
		bytesFrom(actionsBuf, int(actionsLen)),
		bytesFrom(obsBuf, int(obsLen)),
		f32From(rewardsBuf, int(rewardsLen)),
		bytesFrom(terminalsBuf, int(terminalsLen)),
		bytesFrom(truncationsBuf, int(truncationsLen)),
	))
}

//export sim_get_num_agents
func sim_get_num_agents() C.int32_t { return C.int32_t(ffi.GetNumAgents()) }

//export sim_get_obs_layers
func sim_get_obs_layers() C.int32_t { return C.int32_t(ffi.GetObsLayers()) }

//export sim_get_obs_width
func sim_get_obs_width() C.int32_t { return C.int32_t(ffi.GetObsWidth()) }

//export sim_get_obs_height
func sim_get_obs_height() C.int32_t { return C.int32_t(ffi.GetObsHeight()) }

//export sim_get_map_width
func sim_get_map_width() C.int32_t { return C.int32_t(ffi.GetMapWidth()) }

//export sim_get_map_height
func sim_get_map_height() C.int32_t { return C.int32_t(ffi.GetMapHeight()) }

//export sim_get_num_teams
func sim_get_num_teams() C.int32_t { return C.int32_t(ffi.GetNumTeams()) }

//export sim_get_num_unit_classes
func sim_get_num_unit_classes() C.int32_t { return C.int32_t(ffi.GetNumUnitClasses()) }

//export sim_render_rgb
func sim_render_rgb(out unsafe.Pointer, outLen C.int32_t, w, h C.int32_t) C.int32_t {
	return C.int32_t(ffi.RenderRGB(bytesFrom(out, int(outLen)), int32(w), int32(h)))
}

//export sim_render_ansi
func sim_render_ansi(out unsafe.Pointer, bufLen C.int32_t) C.int32_t {
	return C.int32_t(ffi.RenderANSI(bytesFrom(out, int(bufLen)), int32(bufLen)))
}

//export sim_has_error
func sim_has_error() C.int32_t { return C.int32_t(ffi.HasError()) }

//export sim_get_error_code
func sim_get_error_code() C.int32_t { return C.int32_t(ffi.GetErrorCode()) }

//export sim_get_error_message
func sim_get_error_message(buf unsafe.Pointer, bufLen C.int32_t) C.int32_t {
	return C.int32_t(ffi.GetErrorMessage(bytesFrom(buf, int(bufLen)), int32(bufLen)))
}

//export sim_clear_error
func sim_clear_error() C.int32_t { return C.int32_t(ffi.ClearError()) }

//export sim_set_stance
func sim_set_stance(agentID, stance C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetStance(int32(agentID), int32(stance)))
}

//export sim_get_stance
func sim_get_stance(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.GetStance(int32(agentID)))
}

//export sim_set_attack_move_target
func sim_set_attack_move_target(agentID, x, y C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetAttackMoveTarget(int32(agentID), int32(x), int32(y)))
}

//export sim_clear_attack_move_target
func sim_clear_attack_move_target(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.ClearAttackMoveTarget(int32(agentID)))
}

//export sim_set_patrol
func sim_set_patrol(agentID, ax, ay, bx, by C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetPatrol(int32(agentID), int32(ax), int32(ay), int32(bx), int32(by)))
}

//export sim_clear_patrol
func sim_clear_patrol(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.ClearPatrol(int32(agentID)))
}

//export sim_set_garrison
func sim_set_garrison(agentID, buildingID C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetGarrison(int32(agentID), int32(buildingID)))
}

//export sim_query_garrison
func sim_query_garrison(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.QueryGarrison(int32(agentID)))
}

//export sim_enqueue_production
func sim_enqueue_production(teamID, buildKind C.int32_t) C.int32_t {
	return C.int32_t(ffi.EnqueueProduction(int32(teamID), int32(buildKind)))
}

//export sim_dequeue_production
func sim_dequeue_production(teamID C.int32_t) C.int32_t {
	return C.int32_t(ffi.DequeueProduction(int32(teamID)))
}

//export sim_set_research_level
func sim_set_research_level(teamID, topic, level C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetResearchLevel(int32(teamID), int32(topic), int32(level)))
}

//export sim_get_research_level
func sim_get_research_level(teamID, topic C.int32_t) C.int32_t {
	return C.int32_t(ffi.GetResearchLevel(int32(teamID), int32(topic)))
}

//export sim_set_scout_mode
func sim_set_scout_mode(agentID, on C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetScoutMode(int32(agentID), int32(on)))
}

//export sim_reveal_fog_around
func sim_reveal_fog_around(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.RevealFogAround(int32(agentID)))
}

//export sim_query_fog_revealed
func sim_query_fog_revealed(teamID, x, y C.int32_t) C.int32_t {
	return C.int32_t(ffi.QueryFogRevealed(int32(teamID), int32(x), int32(y)))
}

//export sim_set_rally_point
func sim_set_rally_point(teamID, x, y C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetRallyPoint(int32(teamID), int32(x), int32(y)))
}

//export sim_stop_agent
func sim_stop_agent(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.StopAgent(int32(agentID)))
}

//export sim_hold_position
func sim_hold_position(agentID C.int32_t) C.int32_t {
	return C.int32_t(ffi.HoldPosition(int32(agentID)))
}

//export sim_set_follow
func sim_set_follow(agentID, targetID C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetFollow(int32(agentID), int32(targetID)))
}

//export sim_set_formation
func sim_set_formation(teamID, formation C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetFormation(int32(teamID), int32(formation)))
}

//export sim_get_formation
func sim_get_formation(teamID C.int32_t) C.int32_t {
	return C.int32_t(ffi.GetFormation(int32(teamID)))
}

//export sim_set_control_group
func sim_set_control_group(teamID, slot C.int32_t, agentIDs unsafe.Pointer, count C.int32_t) C.int32_t {
	var ids []int32
	if agentIDs != nil && count > 0 {
		ids = unsafe.Slice((*int32)(agentIDs), int(count))
	}
	return C.int32_t(ffi.SetControlGroup(int32(teamID), int32(slot), ids))
}

//export sim_query_control_group
func sim_query_control_group(teamID, slot C.int32_t, out unsafe.Pointer, outCap C.int32_t) C.int32_t {
	ids := ffi.QueryControlGroup(int32(teamID), int32(slot))
	if ids == nil || out == nil || outCap <= 0 {
		return 0
	}
	n := len(ids)
	if n > int(outCap) {
		n = int(outCap)
	}
	dst := unsafe.Slice((*int32)(out), n)
	copy(dst, ids[:n])
	return C.int32_t(n)
}

//export sim_trade_at_market
func sim_trade_at_market(teamID, fromRes, toRes, amount C.int32_t) C.int32_t {
	return C.int32_t(ffi.TradeAtMarket(int32(teamID), int32(fromRes), int32(toRes), int32(amount)))
}

//export sim_query_threat
func sim_query_threat(teamID, x, y C.int32_t) C.int32_t {
	return C.int32_t(ffi.QueryThreat(int32(teamID), int32(x), int32(y)))
}

//export sim_set_team_modifiers
func sim_set_team_modifiers(teamID C.int32_t, gatherRateMul, buildCostMul C.float) C.int32_t {
	return C.int32_t(ffi.SetTeamModifiers(int32(teamID), float32(gatherRateMul), float32(buildCostMul)))
}

//export sim_set_class_hp_bonus
func sim_set_class_hp_bonus(teamID, unitClass, bonus C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetClassHPBonus(int32(teamID), int32(unitClass), int32(bonus)))
}

//export sim_set_class_attack_bonus
func sim_set_class_attack_bonus(teamID, unitClass, bonus C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetClassAttackBonus(int32(teamID), int32(unitClass), int32(bonus)))
}

//export sim_recompute_territory
func sim_recompute_territory(teamID C.int32_t) C.int32_t {
	return C.int32_t(ffi.RecomputeTerritory(int32(teamID)))
}

//export sim_set_difficulty
func sim_set_difficulty(teamID C.int32_t, difficulty C.float) C.int32_t {
	return C.int32_t(ffi.SetDifficulty(int32(teamID), float32(difficulty)))
}

//export sim_get_difficulty
func sim_get_difficulty(teamID C.int32_t) C.float {
	return C.float(ffi.GetDifficulty(int32(teamID)))
}
