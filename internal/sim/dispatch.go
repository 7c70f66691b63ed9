package sim

import "github.com/talgya/tribal-sim/internal/worldgrid"

// DispatchActions decodes and applies one action byte per agent, in
// ascending agentId order (spec.md §4.3, §5 ordering guarantee). Frozen and
// terminated agents skip. Per-agent failures never abort the tick.
func (env *Environment) DispatchActions(actions []uint8) {
	n := len(actions)
	if n > MapAgents {
		n = MapAgents
	}
	for agentID := 0; agentID < n; agentID++ {
		t := env.Map.Agents[agentID]
		if t == nil || t.Terminated || t.Frozen > 0 {
			continue
		}
		da := decodeAction(actions[agentID])
		env.dispatchOne(t, da)
	}
}

func (env *Environment) dispatchOne(t *worldgrid.Thing, da decodedAction) {
	stats := &env.Stats[t.AgentID]
	switch da.Verb {
	case VerbNoop:
		stats.ActionNoop++
	case VerbMove:
		env.doMove(t, da.Argument, stats)
	case VerbAttack:
		env.doAttack(t, da.Argument, stats)
	case VerbUse:
		env.doUse(t, da.Argument, stats)
	case VerbSwap:
		env.doSwap(t, da.Argument, stats)
	case VerbPut:
		env.doPut(t, da.Argument, stats)
	case VerbPlantLantern:
		env.doPlantLantern(t, da.Argument, stats)
	case VerbPlantResource:
		env.doPlantResource(t, da.Argument, stats)
	case VerbBuild:
		env.doBuild(t, da.Argument, stats)
	case VerbOrient:
		env.doOrient(t, da.Argument, stats)
	default:
		stats.ActionInvalid++
	}
}

func (env *Environment) doOrient(t *worldgrid.Thing, argument uint8, stats *AgentStats) {
	dir := worldgrid.Orientation(argument)
	if !dir.Valid() {
		stats.ActionInvalid++
		return
	}
	t.Orientation = dir
	stats.ActionOrient++
}
