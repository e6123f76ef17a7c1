// Where: internal/converge/aws_errors_test.go
// What: SDK error classification tests.
package converge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func TestIsNotFound(t *testing.T) {
	for _, code := range []string{
		"NotFound",
		"NotFoundException",
		"NoSuchBucket",
		"ResourceNotFoundException",
		"AWS.SimpleQueueService.NonExistentQueue",
	} {
		if !isNotFound(apiError(code)) {
			t.Fatalf("%s should classify as not-found", code)
		}
	}

	if isNotFound(apiError("AccessDenied")) {
		t.Fatalf("AccessDenied must not classify as not-found")
	}
	if isNotFound(errors.New("dial tcp: connection refused")) {
		t.Fatalf("transport errors must not classify as not-found")
	}
	// Wrapped API errors still classify.
	wrapped := fmt.Errorf("probe: %w", apiError("NoSuchBucket"))
	if !isNotFound(wrapped) {
		t.Fatalf("wrapped api error should classify")
	}
}

func TestAsConflict(t *testing.T) {
	for _, code := range []string{
		"ConflictException",
		"ResourceConflictException",
		"BucketAlreadyOwnedByYou",
		"QueueNameExists",
	} {
		if !errors.Is(asConflict(apiError(code)), ErrAlreadyExists) {
			t.Fatalf("%s should map to already-exists", code)
		}
	}

	other := apiError("ThrottlingException")
	if got := asConflict(other); !errors.Is(got, other) {
		t.Fatalf("non-conflict errors must pass through, got %v", got)
	}
	if asConflict(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
