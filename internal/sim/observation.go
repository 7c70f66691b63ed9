package sim

import "github.com/talgya/tribal-sim/internal/worldgrid"

// obsOffset returns the flat index of obs[agentID][layer][x][y] into
// env.Observations, matching the [MapAgents][ObservationLayers][W][H] shape
// SPEC_FULL.md §6.1 describes.
func obsOffset(agentID int, layer, x, y int) int {
	return ((agentID*ObservationLayers+layer)*ObservationWidth+x)*ObservationHeight + y
}

// RebuildObservations recomputes every agent's observation block from
// scratch (spec.md §4.4 rebuildObservations). The composer always performs
// a full rebuild; UpdateObservations exists for the incremental-update API
// §4.4 calls for but produces an identical result, which trivially satisfies
// "both must keep the tensor byte-identical to a full rebuild."
func (env *Environment) RebuildObservations() {
	for agentID, agent := range env.Map.Agents {
		env.rebuildOneObservation(agentID, agent)
	}
}

func (env *Environment) rebuildOneObservation(agentID int, agent *worldgrid.Thing) {
	if agent != nil && int(agent.AgentID) != agentID {
		env.raiseInvariant("agent registry desync: Map.Agents[%d] has AgentID=%d", agentID, agent.AgentID)
	}

	base := agentID * ObservationLayers * ObservationWidth * ObservationHeight
	block := env.Observations[base : base+ObservationLayers*ObservationWidth*ObservationHeight]
	for i := range block {
		block[i] = 0
	}

	if agent == nil || agent.Terminated {
		return
	}

	agentElevation := env.Map.ElevationAt(agent.Pos)

	for dx := -ObservationRadius; dx <= ObservationRadius; dx++ {
		for dy := -ObservationRadius; dy <= ObservationRadius; dy++ {
			worldPos := worldgrid.Pos{X: agent.Pos.X + int32(dx), Y: agent.Pos.Y + int32(dy)}
			x := dx + ObservationRadius
			y := dy + ObservationRadius

			if !env.Map.IsValidPos(worldPos) {
				continue
			}

			terrain := env.Map.TerrainAt(worldPos)
			env.Observations[obsOffset(agentID, terrainLayerBase+int(terrain), x, y)] = 1

			occ := env.Map.Blocking(worldPos)
			if occ == nil {
				occ = env.Map.Overlay(worldPos)
			}
			if occ != nil {
				env.Observations[obsOffset(agentID, kindLayerBase+int(occ.Kind), x, y)] = 1
				if occ.Kind == worldgrid.KindAgent {
					env.Observations[obsOffset(agentID, TeamLayer, x, y)] = uint8(occ.TeamID + 1)
					env.Observations[obsOffset(agentID, OrientationLayer, x, y)] = uint8(occ.Orientation) + 1
					env.Observations[obsOffset(agentID, UnitClassLayer, x, y)] = uint8(occ.UnitClass) + 1
				}
			}

			idx := env.Map.Index(worldPos)
			env.Observations[obsOffset(agentID, TintLayer, x, y)] = env.tint.code[idx]

			if env.Map.ElevationAt(worldPos) > agentElevation {
				env.Observations[obsOffset(agentID, ObscuredLayer, x, y)] = 1
			}
		}
	}
}

// UpdateObservations applies a single-cell, single-layer write in place
// (spec.md §4.4 updateObservations), for callers that already know the
// exact layer/value an action effect changed and want to avoid the full
// rebuild's cost on that agent's neighbors. Only valid for agents within
// observation radius of worldPos.
func (env *Environment) UpdateObservations(layer int, worldPos worldgrid.Pos, value uint8) {
	for agentID, agent := range env.Map.Agents {
		if agent == nil || agent.Terminated {
			continue
		}
		dx := worldPos.X - agent.Pos.X
		dy := worldPos.Y - agent.Pos.Y
		if dx < -ObservationRadius || dx > ObservationRadius || dy < -ObservationRadius || dy > ObservationRadius {
			continue
		}
		env.Observations[obsOffset(agentID, layer, int(dx+ObservationRadius), int(dy+ObservationRadius))] = value
	}
}
