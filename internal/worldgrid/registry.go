package worldgrid

// Map bundles every per-tile grid layer plus the entity registry described
// in spec.md §3/§4.1. Grounded on the teacher's world.Map (a single
// coordinate-keyed store) generalized to the square-grid, multi-layer model
// spec.md requires: a blocking grid, a non-blocking overlay grid, terrain,
// elevation, and the tint accumulators (tint.go).
type Map struct {
	Grid

	blocking []ID // NoID when empty
	overlay  []ID // NoID when empty
	terrain  []TerrainType
	elevation []int8

	Things       []*Thing // indexed by ID; nil at tombstoned (removed) slots
	ThingsByKind [NumKinds][]*Thing
	Agents       []*Thing // indexed by AgentID, stable across the episode

	freeIDs []ID

	Tint      Field
	TumorTint Field
}

// NewMap allocates a map of the given size with every tile Empty.
func NewMap(width, height int32, numAgents int) *Map {
	n := int(width) * int(height)
	m := &Map{
		Grid:      Grid{Width: width, Height: height},
		blocking:  make([]ID, n),
		overlay:   make([]ID, n),
		terrain:   make([]TerrainType, n),
		elevation: make([]int8, n),
		Agents:    make([]*Thing, numAgents),
	}
	for i := range m.blocking {
		m.blocking[i] = NoID
		m.overlay[i] = NoID
	}
	m.Tint = newField(width, height)
	m.TumorTint = newField(width, height)
	return m
}

// TerrainAt returns the terrain type at p (Empty if p is out of bounds).
func (m *Map) TerrainAt(p Pos) TerrainType {
	if !m.IsValidPos(p) {
		return Empty
	}
	return m.terrain[m.Index(p)]
}

// SetTerrain sets the terrain type at p. No-op if p is out of bounds.
func (m *Map) SetTerrain(p Pos, t TerrainType) {
	if !m.IsValidPos(p) {
		return
	}
	m.terrain[m.Index(p)] = t
}

// ElevationAt returns the elevation at p (0 if out of bounds).
func (m *Map) ElevationAt(p Pos) int8 {
	if !m.IsValidPos(p) {
		return 0
	}
	return m.elevation[m.Index(p)]
}

// SetElevation sets the elevation at p.
func (m *Map) SetElevation(p Pos, e int8) {
	if !m.IsValidPos(p) {
		return
	}
	m.elevation[m.Index(p)] = e
}

// Blocking returns the blocking-layer occupant at p, or nil.
func (m *Map) Blocking(p Pos) *Thing {
	if !m.IsValidPos(p) {
		return nil
	}
	id := m.blocking[m.Index(p)]
	if id == NoID {
		return nil
	}
	return m.Things[id]
}

// Overlay returns the overlay-layer occupant at p, or nil.
func (m *Map) Overlay(p Pos) *Thing {
	if !m.IsValidPos(p) {
		return nil
	}
	id := m.overlay[m.Index(p)]
	if id == NoID {
		return nil
	}
	return m.Things[id]
}

// layerFor returns the grid slice a kind occupies.
func (m *Map) layerFor(k Kind) []ID {
	if k.Blocking() {
		return m.blocking
	}
	return m.overlay
}

// Add inserts t into the registry and onto its grid layer at t.Pos. Does not
// touch the spatial index — callers (internal/sim) own that coupling so
// worldgrid stays independent of internal/spatial.
//
// IDs are permanently stable for the life of the entity: Things is an arena
// indexed directly by ID, with removed slots tombstoned (nil) and their IDs
// recycled via freeIDs, rather than renumbered by a swap-remove. Anything
// that stores an ID across ticks (homeAltar, homeSpawner) depends on this.
func (m *Map) Add(t *Thing) {
	if n := len(m.freeIDs); n > 0 {
		t.ID = m.freeIDs[n-1]
		m.freeIDs = m.freeIDs[:n-1]
		m.Things[t.ID] = t
	} else {
		t.ID = ID(len(m.Things))
		m.Things = append(m.Things, t)
	}

	kl := &m.ThingsByKind[t.Kind]
	t.kindListIndex = int32(len(*kl))
	*kl = append(*kl, t)

	if m.IsValidPos(t.Pos) {
		m.layerFor(t.Kind)[m.Index(t.Pos)] = t.ID
	}
	if t.Kind == KindAgent && int(t.AgentID) < len(m.Agents) {
		m.Agents[t.AgentID] = t
	}
}

// Remove clears t from its grid layer, its ThingsByKind list (swap-remove,
// repairing the swapped-in entity's stored index), and tombstones its Things
// slot so the ID can be recycled. Idempotent: removing an already-removed
// Thing is a no-op.
func (m *Map) Remove(t *Thing) {
	if t.kindListIndex < 0 {
		return
	}
	if m.IsValidPos(t.Pos) {
		layer := m.layerFor(t.Kind)
		idx := m.Index(t.Pos)
		if layer[idx] == t.ID {
			layer[idx] = NoID
		}
	}

	kl := &m.ThingsByKind[t.Kind]
	lastIdx := len(*kl) - 1
	if int(t.kindListIndex) != lastIdx {
		swapped := (*kl)[lastIdx]
		(*kl)[t.kindListIndex] = swapped
		swapped.kindListIndex = t.kindListIndex
	}
	*kl = (*kl)[:lastIdx]
	t.kindListIndex = -1

	m.Things[t.ID] = nil
	m.freeIDs = append(m.freeIDs, t.ID)
}

// MoveBlocking relocates a blocking-layer thing from oldPos to t.Pos,
// clearing the old cell and occupying the new one. t.Pos must already hold
// the destination.
func (m *Map) MoveBlocking(t *Thing, oldPos Pos) {
	if m.IsValidPos(oldPos) {
		layer := m.layerFor(t.Kind)
		idx := m.Index(oldPos)
		if layer[idx] == t.ID {
			layer[idx] = NoID
		}
	}
	if m.IsValidPos(t.Pos) {
		m.layerFor(t.Kind)[m.Index(t.Pos)] = t.ID
	}
}
