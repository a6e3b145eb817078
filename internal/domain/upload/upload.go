package upload

import (
	"errors"
	"strings"
)

var (
	ErrNoFile      = errors.New("No audio file uploaded")
	ErrInvalidType = errors.New("Only audio files are allowed")
	ErrTooLarge    = errors.New("Audio file exceeds the maximum allowed size")
)

// Audio is one uploaded recording, buffered to a temp file for the duration
// of a single request. The handler that created it owns removal of Path.
type Audio struct {
	Path         string
	OriginalName string
	ContentType  string
	SizeBytes    int64
}

// Validate enforces the upload contract before any provider call is made.
func (a Audio) Validate(maxBytes int64) error {
	if !strings.HasPrefix(a.ContentType, "audio/") {
		return ErrInvalidType
	}
	if maxBytes > 0 && a.SizeBytes > maxBytes {
		return ErrTooLarge
	}
	return nil
}

// IsValidationError reports whether err belongs to the upload taxonomy,
// i.e. the client can correct it and no provider quota was spent.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrTooLarge)
}
