package worldgrid

import "golang.org/x/exp/slices"

// Field is a sparse, fixed-point-decayed color/strength grid — the tint or
// tumor-creep influence field of spec.md §4.8. Grounded loosely on the
// teacher's world.Hex per-tile accumulator fields (Health, LastExtractedTick)
// generalized from "one float per hex" to the four saturating int32
// accumulators spec.md names, plus the sparse active-tile bookkeeping §4.8
// requires for O(active) decay.
type Field struct {
	width, height int32

	strength []int32
	r, g, b  []int32

	active    []int // flat indices of tiles with non-zero strength
	activeSet []bool
}

// MaxTintAccum is the saturation ceiling for every accumulator (spec.md §4.8).
const MaxTintAccum = 5 * 10_000_000 // 5e7, spelled out to avoid float literal drift.

// TrailDecayNum/Den implement TrailDecay ≈ 0.997 as the exact fixed-point
// ratio spec.md gives.
const (
	TrailDecayNum = 65339
	TrailDecayDen = 65536
	TumorDecayNum = 65208 // 0.995 * 65536, rounded
	TumorDecayDen = 65536
)

// MinTintEpsilon is the base epsilon below which a tile is dropped from the
// active set; it widens adaptively as the active set grows (§4.8 step 1).
const MinTintEpsilon = 64

// ClippyTintTolerance is the per-channel color distance (out of 255) a
// fully-saturated tile's composed color may differ from a target color and
// still count as "that" tint for freeze purposes (§4.8 step 2).
const ClippyTintTolerance = 10

func newField(width, height int32) Field {
	n := int(width) * int(height)
	return Field{
		width: width, height: height,
		strength:  make([]int32, n),
		r:         make([]int32, n),
		g:         make([]int32, n),
		b:         make([]int32, n),
		activeSet: make([]bool, n),
	}
}

func (f *Field) index(p Pos) int { return int(p.Y)*int(f.width) + int(p.X) }

func (f *Field) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

// Strength returns the current strength at p.
func (f *Field) Strength(p Pos) int32 {
	if !f.inBounds(p) {
		return 0
	}
	return f.strength[f.index(p)]
}

// epsilon returns the adaptive epsilon for the current active-set size
// (§4.8 step 1: "larger when active set exceeds 1k/2k/3k tiles").
func (f *Field) epsilon() int32 {
	switch {
	case len(f.active) > 3000:
		return MinTintEpsilon * 8
	case len(f.active) > 2000:
		return MinTintEpsilon * 4
	case len(f.active) > 1000:
		return MinTintEpsilon * 2
	default:
		return MinTintEpsilon
	}
}

func (f *Field) markActive(idx int) {
	if !f.activeSet[idx] {
		f.activeSet[idx] = true
		f.active = append(f.active, idx)
	}
}

// Accrete adds a Manhattan-falloff contribution of color (cr,cg,cb) and
// strength at center, within radius, saturating every accumulator at
// MaxTintAccum.
func (f *Field) Accrete(center Pos, radius int32, strength, cr, cg, cb int32) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := abs32(dx) + abs32(dy)
			if d > radius {
				continue
			}
			p := Pos{X: center.X + dx, Y: center.Y + dy}
			if !f.inBounds(p) {
				continue
			}
			falloff := radius + 1 - d
			idx := f.index(p)
			f.strength[idx] = saturate(f.strength[idx] + strength*falloff)
			f.r[idx] = saturate(f.r[idx] + cr*falloff)
			f.g[idx] = saturate(f.g[idx] + cg*falloff)
			f.b[idx] = saturate(f.b[idx] + cb*falloff)
			f.markActive(idx)
		}
	}
}

func saturate(v int32) int32 {
	if v > MaxTintAccum {
		return MaxTintAccum
	}
	if v < -MaxTintAccum {
		return -MaxTintAccum
	}
	return v
}

// Decay applies the fixed-point decay factor num/den to every active tile,
// dropping tiles that fall below the adaptive epsilon from the active set
// (§4.8 step 1). Returns the number of tiles that decayed to zero.
func (f *Field) Decay(num, den int32) int {
	eps := f.epsilon()
	dropped := 0
	kept := f.active[:0]
	for _, idx := range f.active {
		f.strength[idx] = int32(int64(f.strength[idx]) * int64(num) / int64(den))
		f.r[idx] = int32(int64(f.r[idx]) * int64(num) / int64(den))
		f.g[idx] = int32(int64(f.g[idx]) * int64(num) / int64(den))
		f.b[idx] = int32(int64(f.b[idx]) * int64(num) / int64(den))

		s := f.strength[idx]
		if s < 0 {
			s = -s
		}
		if s < eps {
			f.strength[idx] = 0
			f.r[idx] = 0
			f.g[idx] = 0
			f.b[idx] = 0
			f.activeSet[idx] = false
			dropped++
			continue
		}
		kept = append(kept, idx)
	}
	f.active = kept
	return dropped
}

// SortActiveByX sorts the active tile list by X once per tick for
// cache-friendly traversal (§4.8). It uses a comparison sort, not a counting
// sort, so the relative order of tiles with equal X is not preserved.
func (f *Field) SortActiveByX() {
	slices.SortFunc(f.active, func(i, j int) int {
		return (i % int(f.width)) - (j % int(f.width))
	})
}

// ActiveTiles returns the flat indices currently in the active set.
func (f *Field) ActiveTiles() []int { return f.active }

// PosAt converts a flat active-tile index back to a Pos.
func (f *Field) PosAt(idx int) Pos {
	return Pos{X: int32(idx) % f.width, Y: int32(idx) / f.width}
}

// SaturatedNear reports whether p's strength has reached MaxTintAccum and
// its composed color's hue is within tolerance of (cr,cg,cb) on every
// channel (§4.8 step 2: "tiles whose tint is fully saturated within
// ClippyTintTolerance of ClippyTint freeze nearby entities"). The target
// color is rescaled to the composed color's own brightness before
// comparing, since strength and color accumulate at unrelated magnitudes —
// only the hue, not the absolute intensity, identifies a contribution as
// clippy tint.
func (f *Field) SaturatedNear(p Pos, cr, cg, cb, tolerance int32) bool {
	if !f.inBounds(p) {
		return false
	}
	idx := f.index(p)
	if f.strength[idx] < MaxTintAccum {
		return false
	}
	r, g, b := f.ComposedColor(p)
	maxTarget := max32(cr, cg, cb)
	if maxTarget == 0 {
		return false
	}
	maxComposed := int32(max8(r, g, b))
	scale := func(c int32) int32 { return c * maxComposed / maxTarget }
	return chanWithin(int32(r), scale(cr), tolerance) &&
		chanWithin(int32(g), scale(cg), tolerance) &&
		chanWithin(int32(b), scale(cb), tolerance)
}

func chanWithin(v, target, tolerance int32) bool {
	d := v - target
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func max32(a, b, c int32) int32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func max8(a, b, c uint8) uint8 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// ComposedColor returns the normalized RGB at p weighted by combined
// strength (§4.8 step 3 "Compose").
func (f *Field) ComposedColor(p Pos) (r, g, b uint8) {
	if !f.inBounds(p) {
		return 0, 0, 0
	}
	idx := f.index(p)
	s := f.strength[idx]
	if s <= 0 {
		return 0, 0, 0
	}
	norm := func(c int32) uint8 {
		v := int64(c) * 255 / int64(s)
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return norm(f.r[idx]), norm(f.g[idx]), norm(f.b[idx])
}
