package upload

import (
	"errors"
	"testing"
)

func TestValidate_AcceptsAudio(t *testing.T) {
	t.Parallel()

	a := Audio{ContentType: "audio/wav", SizeBytes: 2 << 20, OriginalName: "call.wav"}
	if err := a.Validate(10 << 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsNonAudio(t *testing.T) {
	t.Parallel()

	cases := []string{"video/mp4", "application/octet-stream", "text/plain", ""}
	for _, ct := range cases {
		a := Audio{ContentType: ct, SizeBytes: 100}
		if err := a.Validate(10 << 20); !errors.Is(err, ErrInvalidType) {
			t.Errorf("content type %q: got %v, want ErrInvalidType", ct, err)
		}
	}
}

func TestValidate_RejectsOversized(t *testing.T) {
	t.Parallel()

	a := Audio{ContentType: "audio/mpeg", SizeBytes: (10 << 20) + 1}
	if err := a.Validate(10 << 20); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
}

func TestValidate_NoCeilingWhenZero(t *testing.T) {
	t.Parallel()

	a := Audio{ContentType: "audio/mpeg", SizeBytes: 1 << 30}
	if err := a.Validate(0); err != nil {
		t.Fatalf("unexpected error with no ceiling: %v", err)
	}
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrNoFile, ErrInvalidType, ErrTooLarge} {
		if !IsValidationError(err) {
			t.Errorf("%v should be a validation error", err)
		}
	}
	if IsValidationError(errors.New("provider exploded")) {
		t.Error("arbitrary errors must not map to 400")
	}
}
