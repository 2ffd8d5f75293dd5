package errors

import (
	"fmt"
	"testing"
)

func TestPraiseError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeNoWorkers, "no workers")
	if err.Code != ErrCodeNoWorkers {
		t.Errorf("expected code %s, got %s", ErrCodeNoWorkers, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeImageDecode, "decode failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeImageDecode) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeNoWorkers) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("dir", "assets").WithDetail("count", 0)
	if detailed.Details["dir"] != "assets" {
		t.Error("WithDetail should add details")
	}
}

func TestIsThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("render: %w", NoWorkers())

	if !Is(err, ErrCodeNoWorkers) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
	if GetCode(err) != ErrCodeNoWorkers {
		t.Errorf("GetCode = %s, want %s", GetCode(err), ErrCodeNoWorkers)
	}
	if _, ok := As(err); !ok {
		t.Error("As should find the PraiseError")
	}
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Error("As should not find a PraiseError in a plain error")
	}
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := IndexOutOfRange(5, 2)
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Details["index"] != 5 || err.Details["count"] != 2 {
		t.Error("IndexOutOfRange should include index and count details")
	}

	err = ImageMissing("/tmp/a.png")
	if err.Code != ErrCodeImageMissing {
		t.Errorf("expected code %s, got %s", ErrCodeImageMissing, err.Code)
	}
	if err.Details["path"] != "/tmp/a.png" {
		t.Error("ImageMissing should include path detail")
	}

	err = AssetsUnreadable("assets", fmt.Errorf("permission denied"))
	if err.Cause == nil {
		t.Error("AssetsUnreadable should keep the cause")
	}
}
