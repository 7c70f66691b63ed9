package ffi

import (
	"testing"

	"github.com/talgya/tribal-sim/internal/sim"
)

// Every call guarded by "if env == nil" must return its documented zero
// value rather than panicking, before any Create() call (spec.md §6.1).
func TestNilEnvironmentGuardsReturnZero(t *testing.T) {
	Destroy() // ensure no environment survives a prior test in this package

	if got := SetConfig(sim.DefaultConfig()); got != 0 {
		t.Fatalf("SetConfig on nil env = %d, want 0", got)
	}
	if got := HasError(); got != 0 {
		t.Fatalf("HasError on nil env = %d, want 0", got)
	}
	if got := GetErrorCode(); got != 0 {
		t.Fatalf("GetErrorCode on nil env = %d, want 0", got)
	}
	if got := ClearError(); got != 0 {
		t.Fatalf("ClearError on nil env = %d, want 0", got)
	}
	if got := RenderRGB(make([]byte, 3), 1, 1); got != 0 {
		t.Fatalf("RenderRGB on nil env = %d, want 0", got)
	}

	obsBuf := make([]byte, sim.MapAgents*sim.ObservationLayers*sim.ObservationWidth*sim.ObservationHeight)
	rewardsBuf := make([]float32, sim.MapAgents)
	terminalsBuf := make([]byte, sim.MapAgents)
	truncationsBuf := make([]byte, sim.MapAgents)
	if got := ResetAndGetObs(obsBuf, rewardsBuf, terminalsBuf, truncationsBuf); got != 0 {
		t.Fatalf("ResetAndGetObs on nil env = %d, want 0", got)
	}

	actionsBuf := make([]byte, sim.MapAgents)
	if got := StepWithPointers(actionsBuf, obsBuf, rewardsBuf, terminalsBuf, truncationsBuf); got != 0 {
		t.Fatalf("StepWithPointers on nil env = %d, want 0", got)
	}
}

// Introspection getters never depend on env and must work even with no
// environment created (spec.md §6.1 "introspection").
func TestIntrospectionGettersAreEnvIndependent(t *testing.T) {
	Destroy()
	if GetNumAgents() != sim.MapAgents {
		t.Fatalf("GetNumAgents = %d, want %d", GetNumAgents(), sim.MapAgents)
	}
	if GetObsLayers() != sim.ObservationLayers {
		t.Fatalf("GetObsLayers = %d, want %d", GetObsLayers(), sim.ObservationLayers)
	}
	if GetNumTeams() != sim.MaxTeams {
		t.Fatalf("GetNumTeams = %d, want %d", GetNumTeams(), sim.MaxTeams)
	}
}

// Create/ResetAndGetObs/StepWithPointers round-trip with correctly-sized
// buffers on a live environment (spec.md §6.1 create/reset/step).
func TestCreateResetAndStepRoundTrip(t *testing.T) {
	defer Destroy()
	if got := Create(); got != 1 {
		t.Fatalf("Create = %d, want 1", got)
	}

	obsBuf := make([]byte, sim.MapAgents*sim.ObservationLayers*sim.ObservationWidth*sim.ObservationHeight)
	rewardsBuf := make([]float32, sim.MapAgents)
	terminalsBuf := make([]byte, sim.MapAgents)
	truncationsBuf := make([]byte, sim.MapAgents)
	if got := ResetAndGetObs(obsBuf, rewardsBuf, terminalsBuf, truncationsBuf); got != 1 {
		t.Fatalf("ResetAndGetObs = %d, want 1", got)
	}

	actionsBuf := make([]byte, sim.MapAgents)
	if got := StepWithPointers(actionsBuf, obsBuf, rewardsBuf, terminalsBuf, truncationsBuf); got != 1 {
		t.Fatalf("StepWithPointers = %d, want 1", got)
	}
	if HasError() != 0 {
		t.Fatalf("HasError = %d after a clean step, want 0", HasError())
	}
}

func TestStepWithPointersRejectsUndersizedBuffer(t *testing.T) {
	defer Destroy()
	Create()
	tooSmall := make([]byte, sim.MapAgents-1)
	rewardsBuf := make([]float32, sim.MapAgents)
	terminalsBuf := make([]byte, sim.MapAgents)
	truncationsBuf := make([]byte, sim.MapAgents)
	obsBuf := make([]byte, sim.MapAgents*sim.ObservationLayers*sim.ObservationWidth*sim.ObservationHeight)

	if got := StepWithPointers(tooSmall, obsBuf, rewardsBuf, terminalsBuf, truncationsBuf); got != 0 {
		t.Fatalf("StepWithPointers with undersized actionsBuf = %d, want 0", got)
	}
}
