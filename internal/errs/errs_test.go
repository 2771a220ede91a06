package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsNotFound_Wrapped(t *testing.T) {
	err := fmt.Errorf("mark mastered: %w", NotFound("item", "gravity-pull"))
	if !IsNotFound(err) {
		t.Fatal("expected wrapped NotFoundError to match")
	}
	if IsInvalidArgument(err) || IsPrerequisiteNotMet(err) {
		t.Error("NotFoundError matched another kind")
	}
	if !strings.Contains(err.Error(), `item not found: "gravity-pull"`) {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestPrerequisiteNotMetError_Message(t *testing.T) {
	tests := []struct {
		err  *PrerequisiteNotMetError
		want string
	}{
		{&PrerequisiteNotMetError{ItemID: "b"}, `item "b" is locked`},
		{&PrerequisiteNotMetError{ItemID: "b", Missing: []string{"a", "x"}}, `item "b" is locked: prerequisites not mastered: a, x`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestInvalidArgument_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &InvalidArgumentError{Field: "curve", Reason: "bad", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !IsInvalidArgument(Invalid("delta", "must be >= 0, got %d", -3)) {
		t.Error("Invalid() should build an InvalidArgumentError")
	}
	if got := Invalid("", "empty").Error(); got != "invalid argument: empty" {
		t.Errorf("Error() = %q", got)
	}
}
