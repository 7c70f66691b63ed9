package ffi

// Agent-control and query endpoints (SPEC_FULL.md §6.1.1). Each is a thin
// forward onto internal/sim.Environment's control.go handlers over the one
// global env; all return -1/0 when env is nil, matching the rest of this
// package's "no environment yet" convention.

func SetStance(agentID, stance int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetStance(agentID, stance)
}

func GetStance(agentID int32) int32 {
	if env == nil {
		return -1
	}
	return env.GetStance(agentID)
}

func SetAttackMoveTarget(agentID, x, y int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetAttackMoveTarget(agentID, x, y)
}

func ClearAttackMoveTarget(agentID int32) int32 {
	if env == nil {
		return 0
	}
	return env.ClearAttackMoveTarget(agentID)
}

func QueryAttackMoveTarget(agentID int32) (x, y, active int32) {
	if env == nil {
		return 0, 0, -1
	}
	return env.QueryAttackMoveTarget(agentID)
}

func SetPatrol(agentID, ax, ay, bx, by int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetPatrol(agentID, ax, ay, bx, by)
}

func ClearPatrol(agentID int32) int32 {
	if env == nil {
		return 0
	}
	return env.ClearPatrol(agentID)
}

func SetGarrison(agentID, buildingID int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetGarrison(agentID, buildingID)
}

func QueryGarrison(agentID int32) int32 {
	if env == nil {
		return -1
	}
	return env.QueryGarrison(agentID)
}

func EnqueueProduction(teamID, buildKind int32) int32 {
	if env == nil {
		return 0
	}
	return env.EnqueueProduction(teamID, buildKind)
}

func DequeueProduction(teamID int32) int32 {
	if env == nil {
		return -1
	}
	return env.DequeueProduction(teamID)
}

func QueryProductionQueueLen(teamID int32) int32 {
	if env == nil {
		return -1
	}
	return env.QueryProductionQueueLen(teamID)
}

func SetResearchLevel(teamID, topic, level int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetResearchLevel(teamID, topic, level)
}

func GetResearchLevel(teamID, topic int32) int32 {
	if env == nil {
		return -1
	}
	return env.GetResearchLevel(teamID, topic)
}

func SetScoutMode(agentID, on int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetScoutMode(agentID, on)
}

func RevealFogAround(agentID int32) int32 {
	if env == nil {
		return 0
	}
	return env.RevealFogAround(agentID)
}

func QueryFogRevealed(teamID, x, y int32) int32 {
	if env == nil {
		return -1
	}
	return env.QueryFogRevealed(teamID, x, y)
}

func SetRallyPoint(teamID, x, y int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetRallyPoint(teamID, x, y)
}

func StopAgent(agentID int32) int32 {
	if env == nil {
		return 0
	}
	return env.StopAgent(agentID)
}

func HoldPosition(agentID int32) int32 {
	if env == nil {
		return 0
	}
	return env.HoldPosition(agentID)
}

func SetFollow(agentID, targetID int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetFollow(agentID, targetID)
}

func SetFormation(teamID, formation int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetFormation(teamID, formation)
}

func GetFormation(teamID int32) int32 {
	if env == nil {
		return -1
	}
	return env.GetFormation(teamID)
}

func TradeAtMarket(teamID, fromRes, toRes, amount int32) int32 {
	if env == nil {
		return 0
	}
	return env.TradeAtMarket(teamID, fromRes, toRes, amount)
}

func SetControlGroup(teamID, slot int32, agentIDs []int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetControlGroup(teamID, slot, agentIDs)
}

func QueryControlGroup(teamID, slot int32) []int32 {
	if env == nil {
		return nil
	}
	return env.QueryControlGroup(teamID, slot)
}

func QueryThreat(teamID, x, y int32) int32 {
	if env == nil {
		return -1
	}
	return env.QueryThreat(teamID, x, y)
}

func SetTeamModifiers(teamID int32, gatherRateMul, buildCostMul float32) int32 {
	if env == nil {
		return 0
	}
	return env.SetTeamModifiers(teamID, gatherRateMul, buildCostMul)
}

func SetClassHPBonus(teamID, unitClass, bonus int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetClassHPBonus(teamID, unitClass, bonus)
}

func SetClassAttackBonus(teamID, unitClass, bonus int32) int32 {
	if env == nil {
		return 0
	}
	return env.SetClassAttackBonus(teamID, unitClass, bonus)
}

func RecomputeTerritory(teamID int32) int32 {
	if env == nil {
		return -1
	}
	return env.RecomputeTerritory(teamID)
}

func SetDifficulty(teamID int32, difficulty float32) int32 {
	if env == nil {
		return 0
	}
	return env.SetDifficulty(teamID, difficulty)
}

func GetDifficulty(teamID int32) float32 {
	if env == nil {
		return -1
	}
	return env.GetDifficulty(teamID)
}
