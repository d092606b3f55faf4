package domain

import "fmt"

// PreconditionError means a required prior-step output is missing from the
// project.
type PreconditionError struct {
	Step    StepName
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("step %s requires %s to be set", e.Step, e.Missing)
}

// EmptyInputError means mandatory textual input was blank.
type EmptyInputError struct {
	Field string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s is empty", e.Field)
}

// BackendUnavailableError means no credential is configured for a backend.
// It triggers the placeholder fallback and never surfaces to callers.
type BackendUnavailableError struct {
	Backend string
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%s backend has no credential configured", e.Backend)
}

// BackendFailureError means a configured backend call failed or was rejected.
type BackendFailureError struct {
	Backend string
	Err     error
}

func (e *BackendFailureError) Error() string {
	return fmt.Sprintf("%s backend failed: %v", e.Backend, e.Err)
}

func (e *BackendFailureError) Unwrap() error {
	return e.Err
}

// TimeoutError means a bounded polling loop exhausted its attempt ceiling.
type TimeoutError struct {
	Backend  string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s backend did not reach a terminal state after %d attempts", e.Backend, e.Attempts)
}

// CompositionError means the final merge failed.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition failed: %v", e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
