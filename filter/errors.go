package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Position   int // -1 if position is unknown
		Err        error
	}

	// EvaluationError indicates a filter failed on an episode
	EvaluationError struct {
		Expression string
		Episode    string
		Reason     string
		Err        error
	}

	// UnknownPresetError is returned for a preset name that was never registered
	UnknownPresetError struct {
		Name      string
		Available []string
	}
)

func (e *CompilationError) Error() string {
	msg := fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
	if e.Position >= 0 {
		msg = fmt.Sprintf("compilation error at position %d in '%s': %s", e.Position, e.Expression, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for filter '%s' on episode '%s': %s: %v", e.Expression, e.Episode, e.Reason, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *UnknownPresetError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("filter preset '%s' not found: no presets configured", e.Name)
	}
	return fmt.Sprintf("filter preset '%s' not found (available: %v)", e.Name, e.Available)
}
