// Where: internal/converge/errors.go
// What: Error taxonomy for convergence runs.
// Why: Distinguish benign already-exists conflicts from real failures.
package converge

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists marks a create-time conflict that is safe to adopt.
	// Adapters translate control-plane conflict responses into this sentinel.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrReadinessTimeout marks an API shell that never became queryable
	// within the bounded retry budget. Fatal for the whole run.
	ErrReadinessTimeout = errors.New("api not ready after retries")

	// ErrConfiguration marks a malformed merged environment document.
	// Raised before any creation call is attempted for the function.
	ErrConfiguration = errors.New("configuration error")
)

// StepError names the convergence step and resource key that failed, so the
// terminal failure message can point at exactly one node in the graph.
type StepError struct {
	Step string
	Key  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Step, e.Key, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(step, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Key: key, Err: err}
}
