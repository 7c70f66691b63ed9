package sim

import "fmt"

// Kind categorizes an error per spec.md §7.
type Kind int32

const (
	KindNone Kind = iota
	KindInvalidArgument
	KindInvariantViolation
	KindResourceExhaustion
	KindFrozenOrCooldown
	KindOutOfBounds
)

// Error is the typed error surfaced through the FFI error slot.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("sim: %s", e.Message)
}

func newError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// lastErrorSlot is the per-Environment last-error slot the FFI boundary reads
// (spec.md §6.1 has_error/get_error_code/get_error_message/clear_error).
// Only InvariantViolation-class failures (unrecoverable per §7's
// propagation policy) are ever stored here; ordinary game-logic failures
// (InvalidArgument, ResourceExhaustion, Frozen/cooldown, OutOfBounds) are
// recovered locally and never escalate to this slot.
type lastErrorSlot struct {
	err *Error
}

func (s *lastErrorSlot) set(e *Error) { s.err = e }
func (s *lastErrorSlot) clear()       { s.err = nil }
func (s *lastErrorSlot) has() bool    { return s.err != nil }

// HasError reports whether an unrecoverable error is latched (spec.md §6.1
// has_error).
func (env *Environment) HasError() bool { return env.lastErr.has() }

// ErrorCode returns the latched error's Kind, or KindNone if none is set
// (spec.md §6.1 get_error_code).
func (env *Environment) ErrorCode() int32 {
	if !env.lastErr.has() {
		return int32(KindNone)
	}
	return int32(env.lastErr.err.Kind)
}

// ErrorMessage returns the latched error's message, or "" if none is set
// (spec.md §6.1 get_error_message).
func (env *Environment) ErrorMessage() string {
	if !env.lastErr.has() {
		return ""
	}
	return env.lastErr.err.Message
}

// ClearError clears the latched error (spec.md §6.1 clear_error).
func (env *Environment) ClearError() { env.lastErr.clear() }

// raiseInvariant latches an InvariantViolation error — the only Kind that
// ever escalates to the FFI error slot per §7's propagation policy — and
// then panics. Step's deferred recover (tick.go) catches the panic at the
// Step boundary and returns failure.
func (env *Environment) raiseInvariant(format string, args ...any) {
	e := newError(KindInvariantViolation, format, args...)
	env.lastErr.set(e)
	panic(e)
}
