package common

import (
	"errors"
	"strings"
	"testing"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "LEDGER_PATH is required", ErrInvalidInput)
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("AppError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "CONFIG_ERROR") || !strings.Contains(err.Error(), ErrInvalidInput.Error()) {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := NewAppError("PARSE_ERROR", "bad row", nil)
	if bare.Error() != "PARSE_ERROR: bad row" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
	wrapped := WrapError(ErrNoText, "scan page")
	if !errors.Is(wrapped, ErrNoText) {
		t.Error("wrapped error lost its cause")
	}
}
