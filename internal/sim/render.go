package sim

import (
	"fmt"
	"strings"

	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// terrainColor is the base RGB for a bare tile (spec.md §6.1 render_rgb).
func terrainColor(t worldgrid.TerrainType) (r, g, b uint8) {
	switch t {
	case worldgrid.Water, worldgrid.ShallowWater:
		return 40, 90, 200
	case worldgrid.Bridge:
		return 150, 110, 70
	case worldgrid.Grass:
		return 60, 140, 60
	case worldgrid.Fertile:
		return 90, 170, 60
	case worldgrid.Road:
		return 120, 110, 100
	case worldgrid.Sand, worldgrid.Dune:
		return 210, 190, 120
	case worldgrid.Snow:
		return 230, 230, 240
	case worldgrid.Mud:
		return 110, 90, 60
	case worldgrid.Mountain:
		return 100, 100, 100
	case worldgrid.RampUp, worldgrid.RampDown:
		return 120, 120, 110
	default:
		return 80, 110, 70 // Empty
	}
}

// thingColor is the RGB painted over a tile's base terrain when occupied
// (spec.md §6.1 render_rgb). Agents/doors use their team color instead.
func (env *Environment) thingColor(t *worldgrid.Thing) (r, g, b uint8, ok bool) {
	switch t.Kind {
	case worldgrid.KindAgent, worldgrid.KindDoor, worldgrid.KindAltar:
		if team := env.Team(t.TeamID); team != nil {
			return team.Color[0], team.Color[1], team.Color[2], true
		}
		return 200, 200, 200, true
	case worldgrid.KindWall:
		return 90, 90, 90, true
	case worldgrid.KindTree:
		return 30, 100, 40, true
	case worldgrid.KindWheat, worldgrid.KindStubble:
		return 210, 190, 60, true
	case worldgrid.KindStone, worldgrid.KindStalagmite:
		return 150, 150, 150, true
	case worldgrid.KindGold:
		return 230, 190, 30, true
	case worldgrid.KindBush:
		return 50, 130, 50, true
	case worldgrid.KindCactus:
		return 70, 150, 70, true
	case worldgrid.KindMagma:
		return 230, 70, 20, true
	case worldgrid.KindSpawner, worldgrid.KindTumor:
		return 170, 30, 170, true
	case worldgrid.KindCow:
		return 220, 220, 200, true
	case worldgrid.KindBear:
		return 120, 70, 40, true
	case worldgrid.KindWolf:
		return 90, 90, 100, true
	case worldgrid.KindCorpse, worldgrid.KindSkeleton:
		return 160, 160, 150, true
	case worldgrid.KindLantern:
		return 250, 220, 120, true
	case worldgrid.KindStump:
		return 110, 80, 50, true
	case worldgrid.KindCliff:
		return 80, 80, 80, true
	default:
		return 0, 0, 0, false
	}
}

// composeTileColor blends terrain, occupant, and tint/creep field color for
// a single map tile.
func (env *Environment) composeTileColor(p worldgrid.Pos) (r, g, b uint8) {
	r, g, b = terrainColor(env.Map.TerrainAt(p))

	if occ := env.Map.Blocking(p); occ != nil {
		if tr, tg, tb, ok := env.thingColor(occ); ok {
			r, g, b = tr, tg, tb
		}
	}
	if occ := env.Map.Overlay(p); occ != nil {
		if tr, tg, tb, ok := env.thingColor(occ); ok {
			r, g, b = tr, tg, tb
		}
	}

	if tr, tg, tb := env.Map.Tint.ComposedColor(p); tr != 0 || tg != 0 || tb != 0 {
		r, g, b = blendChannel(r, tr), blendChannel(g, tg), blendChannel(b, tb)
	}
	if tr, tg, tb := env.Map.TumorTint.ComposedColor(p); tr != 0 || tg != 0 || tb != 0 {
		r, g, b = blendChannel(r, tr), blendChannel(g, tg), blendChannel(b, tb)
	}
	return r, g, b
}

func blendChannel(base, tint uint8) uint8 {
	return uint8((int(base) + int(tint)) / 2)
}

// RenderRGB implements spec.md §6.1 render_rgb: writes an h*w*3 u8 image
// into out, upscaling each map tile into a (w/MapWidth)x(h/MapHeight) block
// of solid color. Returns 1 on success, 0 (after zeroing out) on a bad
// shape.
func (env *Environment) RenderRGB(w, h int32, out []byte) int32 {
	need := int(w) * int(h) * 3
	if len(out) < need {
		return 0
	}
	if w <= 0 || h <= 0 || w%MapWidth != 0 || h%MapHeight != 0 {
		for i := range out[:need] {
			out[i] = 0
		}
		return 0
	}

	sx, sy := w/MapWidth, h/MapHeight
	for ty := int32(0); ty < MapHeight; ty++ {
		for tx := int32(0); tx < MapWidth; tx++ {
			r, g, b := env.composeTileColor(worldgrid.Pos{X: tx, Y: ty})
			for py := int32(0); py < sy; py++ {
				row := (ty*sy + py) * w
				for px := int32(0); px < sx; px++ {
					idx := int(row+tx*sx+px) * 3
					out[idx] = r
					out[idx+1] = g
					out[idx+2] = b
				}
			}
		}
	}
	return 1
}

// tileGlyph picks the single rune render_ansi prints for the occupant of a
// tile, falling back to a terrain glyph for empty tiles.
func tileGlyph(t *worldgrid.Thing, terrain worldgrid.TerrainType) byte {
	if t != nil {
		switch t.Kind {
		case worldgrid.KindAgent:
			return 'A'
		case worldgrid.KindWall:
			return '#'
		case worldgrid.KindDoor:
			return '+'
		case worldgrid.KindTree:
			return 'T'
		case worldgrid.KindWheat:
			return 'w'
		case worldgrid.KindStone, worldgrid.KindStalagmite:
			return '^'
		case worldgrid.KindGold:
			return '$'
		case worldgrid.KindBush:
			return 'b'
		case worldgrid.KindCactus:
			return 'Y'
		case worldgrid.KindMagma:
			return '*'
		case worldgrid.KindAltar:
			return 'H'
		case worldgrid.KindSpawner:
			return 'S'
		case worldgrid.KindTumor:
			return 'x'
		case worldgrid.KindCow:
			return 'c'
		case worldgrid.KindBear:
			return 'B'
		case worldgrid.KindWolf:
			return 'W'
		case worldgrid.KindCorpse:
			return '%'
		case worldgrid.KindSkeleton:
			return '!'
		case worldgrid.KindLantern:
			return 'o'
		case worldgrid.KindStump:
			return ','
		case worldgrid.KindStubble:
			return '.'
		case worldgrid.KindCliff:
			return '='
		default:
			return '?'
		}
	}
	switch terrain {
	case worldgrid.Water, worldgrid.ShallowWater:
		return '~'
	case worldgrid.Bridge:
		return '='
	case worldgrid.Road:
		return ':'
	case worldgrid.Mountain:
		return '^'
	case worldgrid.Sand, worldgrid.Dune:
		return '.'
	case worldgrid.Snow:
		return '-'
	case worldgrid.Fertile:
		return '"'
	default:
		return ' '
	}
}

// RenderANSI implements spec.md §6.1 render_ansi: one 24-bit-color glyph per
// map tile, row-major, newline-terminated rows. colorize follows the
// teacher's go-isatty convention — callers writing to a non-terminal (such
// as a redirected dev-server response) pass false to skip the escape codes
// and keep the glyph grid legible. The FFI render_ansi entry point always
// passes true.
func (env *Environment) RenderANSI(colorize bool) string {
	var b strings.Builder
	b.Grow(MapWidth*MapHeight*12 + MapHeight)

	for y := int32(0); y < MapHeight; y++ {
		for x := int32(0); x < MapWidth; x++ {
			p := worldgrid.Pos{X: x, Y: y}
			occ := env.Map.Blocking(p)
			if ov := env.Map.Overlay(p); ov != nil {
				occ = ov
			}
			glyph := tileGlyph(occ, env.Map.TerrainAt(p))
			if !colorize {
				b.WriteByte(glyph)
				continue
			}
			r, g, bl := env.composeTileColor(p)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm%c\x1b[0m", r, g, bl, glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderANSIInto writes RenderANSI's output NUL-terminated into out, up to
// bufLen-1 payload bytes (spec.md §6.1: "writes ... up to buf_len − 1
// bytes"). Returns the number of payload bytes written, or 0 if bufLen is
// too small to hold even the terminator.
func (env *Environment) RenderANSIInto(out []byte, bufLen int32, colorize bool) int32 {
	if bufLen <= 0 || int32(len(out)) < bufLen {
		return 0
	}
	s := env.RenderANSI(colorize)
	n := int(bufLen) - 1
	if n > len(s) {
		n = len(s)
	}
	copy(out, s[:n])
	out[n] = 0
	return int32(n)
}
