// Where: internal/converge/aws_errors.go
// What: SDK error classification.
// Why: Keep not-found and conflict recognition out of the convergence logic;
//      only adapters know control-plane error shapes.
package converge

import (
	"errors"

	"github.com/aws/smithy-go"
)

var notFoundCodes = map[string]struct{}{
	"NotFound":                  {},
	"NotFoundException":         {},
	"NoSuchBucket":              {},
	"ResourceNotFoundException": {},
	"AWS.SimpleQueueService.NonExistentQueue": {},
	"QueueDoesNotExist":                       {},
}

var conflictCodes = map[string]struct{}{
	"ConflictException":         {},
	"ResourceConflictException": {},
	"ResourceInUseException":    {},
	"BucketAlreadyExists":       {},
	"BucketAlreadyOwnedByYou":   {},
	"QueueNameExists":           {},
}

// isNotFound reports whether the control plane signaled absence rather than
// a transport, auth, or request failure.
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := notFoundCodes[apiErr.ErrorCode()]
	return ok
}

// asConflict maps create-time conflicts onto the ErrAlreadyExists sentinel
// and leaves every other error untouched.
func asConflict(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := conflictCodes[apiErr.ErrorCode()]; ok {
			return ErrAlreadyExists
		}
	}
	return err
}
