package worldgrid

// TerrainType is the static ground type of a tile.
// See design doc Section 3 — grounded on the teacher's world.Terrain
// const-enum pattern (tobyjaguar-mini-world/internal/world/hex.go), reworked
// from the teacher's nine hex biomes onto spec.md's explicit terrain set.
type TerrainType uint8

const (
	Empty TerrainType = iota
	Grass
	Fertile
	Road
	Water
	ShallowWater
	Bridge
	Sand
	Dune
	Snow
	Mud
	Mountain
	RampUp
	RampDown
	NumTerrainTypes
)

// blockedTerrain is the set of terrain types that block entry outright
// (independent of any occupant). Water and Mountain are blocking unless
// bridged/ramped.
var blockedTerrain = map[TerrainType]bool{
	Water:    true,
	Mountain: true,
}

// Blocked reports whether t blocks movement regardless of occupant.
func (t TerrainType) Blocked() bool {
	return blockedTerrain[t]
}

// GrantsDoubleMove reports whether standing on/moving across t allows the
// 2-tile road dash described in spec.md §4.3 MOVE semantics.
func (t TerrainType) GrantsDoubleMove() bool {
	return t == Road
}

// Walkable reports whether an entity may ever stand on t (setting aside the
// current occupant of the tile).
func (t TerrainType) Walkable() bool {
	return !t.Blocked()
}
