// Package ffi implements the C-ABI surface spec.md §6.1 describes: a
// single global *sim.Environment, lifecycle calls, step/reset buffer
// plumbing, introspection, rendering, and the error-surface contract. It
// is plain Go — cmd/libsim is the thin cgo //export shim that calls into
// this package, following the teacher's pattern of keeping cgo/build-tag
// concerns out of the reusable internal packages.
package ffi

import (
	"log/slog"

	"github.com/talgya/tribal-sim/internal/sim"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// env is the one global environment instance spec.md §6.1 requires
// ("reentrancy of create replaces it").
var env *sim.Environment

// Create constructs a fresh Environment with default configuration,
// replacing any existing global instance (spec.md §6.1 create).
func Create() int32 {
	env = sim.NewEnvironment(sim.DefaultConfig())
	slog.Info("ffi: environment created")
	return 1
}

// SetConfig replaces env.Cfg's knobs (NaN floats and non-positive maxSteps
// keep defaults via Config.Normalize), without resetting world state
// (spec.md §6.1 set_config). Returns 0 if no environment exists yet.
func SetConfig(cfg sim.Config) int32 {
	if env == nil {
		return 0
	}
	cfg.Normalize()
	env.Cfg = cfg
	return 1
}

// Destroy releases the global environment (spec.md §6.1 destroy).
func Destroy() {
	if env == nil {
		return
	}
	env.Destroy()
	env = nil
	slog.Info("ffi: environment destroyed")
}

func bufTooSmall(n, want int) bool { return n < want }

// ResetAndGetObs resets the episode and fills obsBuf/rewardsBuf/
// terminalsBuf/truncationsBuf from the freshly-rebuilt state (spec.md §6.1
// reset_and_get_obs). Returns 0 if no environment exists or a buffer is too
// small.
func ResetAndGetObs(obsBuf []byte, rewardsBuf []float32, terminalsBuf, truncationsBuf []byte) int32 {
	if env == nil {
		return 0
	}
	if bufTooSmall(len(obsBuf), len(env.Observations)) ||
		bufTooSmall(len(rewardsBuf), sim.MapAgents) ||
		bufTooSmall(len(terminalsBuf), sim.MapAgents) ||
		bufTooSmall(len(truncationsBuf), sim.MapAgents) {
		return 0
	}
	env.Reset()
	env.RebuildObservations()
	copy(obsBuf, env.Observations)
	for i := 0; i < sim.MapAgents; i++ {
		rewardsBuf[i] = env.Rewards[i]
		terminalsBuf[i] = env.Terminated[i]
		truncationsBuf[i] = env.Truncated[i]
	}
	return 1
}

// StepWithPointers decodes actionsBuf, runs one tick, and fills the four
// output buffers (spec.md §6.1 step_with_pointers). rewardsBuf is "reset to
// zero inside core after the host read" — satisfied because Step already
// zeroes each agent's accumulator at tick start, so a stale host-side read
// between calls never double-counts.
func StepWithPointers(actionsBuf []byte, obsBuf []byte, rewardsBuf []float32, terminalsBuf, truncationsBuf []byte) int32 {
	if env == nil {
		return 0
	}
	if bufTooSmall(len(actionsBuf), sim.MapAgents) ||
		bufTooSmall(len(obsBuf), len(env.Observations)) ||
		bufTooSmall(len(rewardsBuf), sim.MapAgents) ||
		bufTooSmall(len(terminalsBuf), sim.MapAgents) ||
		bufTooSmall(len(truncationsBuf), sim.MapAgents) {
		return 0
	}
	status := env.Step(actionsBuf[:sim.MapAgents])
	copy(obsBuf, env.Observations)
	for i := 0; i < sim.MapAgents; i++ {
		rewardsBuf[i] = env.Rewards[i]
		terminalsBuf[i] = env.Terminated[i]
		truncationsBuf[i] = env.Truncated[i]
	}
	return status
}

// Introspection (spec.md §6.1).
func GetNumAgents() int32     { return sim.MapAgents }
func GetObsLayers() int32     { return sim.ObservationLayers }
func GetObsWidth() int32      { return sim.ObservationWidth }
func GetObsHeight() int32     { return sim.ObservationHeight }
func GetMapWidth() int32      { return sim.MapWidth }
func GetMapHeight() int32     { return sim.MapHeight }
func GetNumTeams() int32       { return sim.MaxTeams }
func GetNumUnitClasses() int32 { return int32(worldgrid.NumUnitClasses) }

// Rendering (spec.md §6.1).

// RenderRGB writes env's HxWx3 image into out (spec.md §6.1 render_rgb).
func RenderRGB(out []byte, w, h int32) int32 {
	if env == nil {
		return 0
	}
	return env.RenderRGB(w, h, out)
}

// RenderANSI writes a NUL-terminated ANSI render into out, up to bufLen-1
// payload bytes (spec.md §6.1 render_ansi). Always colorized; a host
// writing the result to a non-terminal is responsible for stripping
// escapes itself (the dev server does this via go-isatty instead, since it
// controls its own writer).
func RenderANSI(out []byte, bufLen int32) int32 {
	if env == nil {
		return 0
	}
	return env.RenderANSIInto(out, bufLen, true)
}

// Error surface (spec.md §6.1 / §7).
func HasError() int32 {
	if env == nil {
		return 0
	}
	if env.HasError() {
		return 1
	}
	return 0
}

func GetErrorCode() int32 {
	if env == nil {
		return 0
	}
	return env.ErrorCode()
}

func GetErrorMessage(buf []byte, bufLen int32) int32 {
	if env == nil || bufLen <= 0 || int32(len(buf)) < bufLen {
		return 0
	}
	msg := env.ErrorMessage()
	n := int(bufLen) - 1
	if n > len(msg) {
		n = len(msg)
	}
	copy(buf, msg[:n])
	buf[n] = 0
	return int32(n)
}

func ClearError() int32 {
	if env == nil {
		return 0
	}
	env.ClearError()
	return 1
}
