package worldgrid

import "testing"

// Testable property 9 (spec.md §8): tint monotonicity — repeated accretion
// from a stationary source rises to equilibrium, and decays below
// MinTintEpsilon in finite ticks once the source stops contributing.
func TestTintRisesThenDecaysToZero(t *testing.T) {
	f := newField(32, 32)
	center := Pos{X: 16, Y: 16}

	prev := int32(0)
	for i := 0; i < 20; i++ {
		f.Decay(TrailDecayNum, TrailDecayDen)
		f.Accrete(center, 2, 4000, 40, 220, 40)
		cur := f.Strength(center)
		if cur < prev {
			t.Fatalf("tick %d: strength decreased from %d to %d while source is active", i, prev, cur)
		}
		prev = cur
	}

	// Source removed: decay only, must fall below MinTintEpsilon eventually.
	for i := 0; i < 10000; i++ {
		f.Decay(TrailDecayNum, TrailDecayDen)
		if f.Strength(center) == 0 {
			return
		}
	}
	t.Fatalf("strength at center never reached zero after 10000 decay-only ticks")
}

func TestAccreteSaturatesAtMaxTintAccum(t *testing.T) {
	f := newField(8, 8)
	center := Pos{X: 4, Y: 4}
	for i := 0; i < 1000; i++ {
		f.Accrete(center, 0, MaxTintAccum, MaxTintAccum, MaxTintAccum, MaxTintAccum)
	}
	if got := f.Strength(center); got != MaxTintAccum {
		t.Fatalf("Strength(center) = %d, want saturated %d", got, MaxTintAccum)
	}
}

func TestDecayDropsFromActiveSetBelowEpsilon(t *testing.T) {
	f := newField(8, 8)
	p := Pos{X: 1, Y: 1}
	f.Accrete(p, 0, MinTintEpsilon-1, 1, 1, 1)

	if len(f.ActiveTiles()) != 1 {
		t.Fatalf("expected one active tile after Accrete below epsilon-threshold strength")
	}
	dropped := f.Decay(TrailDecayNum, TrailDecayDen)
	if dropped != 1 {
		t.Fatalf("Decay dropped = %d, want 1 (strength started below epsilon)", dropped)
	}
	if len(f.ActiveTiles()) != 0 {
		t.Fatalf("ActiveTiles() after drop = %v, want empty", f.ActiveTiles())
	}
}

func TestComposedColorOutOfBoundsIsBlack(t *testing.T) {
	f := newField(8, 8)
	r, g, b := f.ComposedColor(Pos{X: -1, Y: 0})
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("ComposedColor out of bounds = (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

// SaturatedNear backs the freeze mechanic (spec.md §4.8 step 2) — it must
// stay false until a tile both saturates and matches the target color, and
// turn true within ClippyTintTolerance of an exact color match.
func TestSaturatedNearRequiresBothSaturationAndColorMatch(t *testing.T) {
	f := newField(8, 8)
	p := Pos{X: 4, Y: 4}
	clippy := [3]int32{40, 220, 40}

	if f.SaturatedNear(p, clippy[0], clippy[1], clippy[2], ClippyTintTolerance) {
		t.Fatalf("SaturatedNear true before any accretion")
	}

	// Saturate strength but with an off-target color: must stay false.
	f.Accrete(p, 0, MaxTintAccum, MaxTintAccum, 0, 0)
	if f.SaturatedNear(p, clippy[0], clippy[1], clippy[2], ClippyTintTolerance) {
		t.Fatalf("SaturatedNear true with saturated strength but mismatched color")
	}

	// Saturate strength with a color contribution proportional to clippy,
	// scaled up so the normalized hue survives integer rounding: composed
	// color should land within tolerance of clippy's (40,220,40) hue.
	f2 := newField(8, 8)
	const k = 100_000
	f2.Accrete(p, 0, MaxTintAccum, clippy[0]*k, clippy[1]*k, clippy[2]*k)
	if !f2.SaturatedNear(p, clippy[0], clippy[1], clippy[2], ClippyTintTolerance) {
		r, g, b := f2.ComposedColor(p)
		t.Fatalf("SaturatedNear false for a saturated, clippy-hued tile (composed=%d,%d,%d)", r, g, b)
	}
}
