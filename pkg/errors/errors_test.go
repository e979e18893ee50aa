package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestAppErrorWrapsSentinel(t *testing.T) {
	err := New(ErrFileUnreadable, "/data/x.bz2", "permission denied")
	if !errors.Is(err, ErrFileUnreadable) {
		t.Error("expected errors.Is to match the sentinel")
	}
	if !strings.Contains(err.Error(), "/data/x.bz2") {
		t.Errorf("message %q must name the failing path", err.Error())
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("message %q must carry the reason", err.Error())
	}
}

func TestNewfFormatsReason(t *testing.T) {
	err := Newf(ErrBadEncoding, "/data/x.jsonl", "line %d: %v", 42, "unexpected token")
	if !errors.Is(err, ErrBadEncoding) {
		t.Error("expected errors.Is to match the sentinel")
	}
	if !strings.Contains(err.Error(), "line 42") {
		t.Errorf("message %q must carry the formatted reason", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != ExitOK {
		t.Errorf("ExitCode(nil) = %d, want %d", got, ExitOK)
	}
	if got := ExitCode(New(ErrInvalidConfig, "", "bad")); got != ExitBadUsage {
		t.Errorf("ExitCode(invalid config) = %d, want %d", got, ExitBadUsage)
	}
	if got := ExitCode(New(ErrSourcesMissing, "sources", "gone")); got != ExitFailure {
		t.Errorf("ExitCode(sources missing) = %d, want %d", got, ExitFailure)
	}
}
