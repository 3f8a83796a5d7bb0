package engine

import "fmt"

// InputError covers spec §7 kind 1: file not found, non-UTF-8,
// shebang-only input. The driver aborts the run on sight of one.
type InputError struct {
	Path   string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s: %s", e.Path, e.Reason)
}

// ParseError covers spec §7 kind 2: the parser rejected the source.
// Never attempt recovery; propagate position and abort.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// InvariantError covers spec §7 kind 3: an assertion failure during
// analysis (byte-accounting mismatch, an unassigned statement after
// Pass 5, an empty module, a duplicate module id). It carries the index
// of the first offending statement or module so the diagnostic can point
// at it directly.
type InvariantError struct {
	Invariant string
	Index     int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation (%s) at index %d", e.Invariant, e.Index)
}
