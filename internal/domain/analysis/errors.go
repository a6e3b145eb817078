package analysis

import "errors"

// ErrClassifierDisabled indicates no provider credentials were configured.
// Transcription degrades in-band in the same situation; classification cannot.
var ErrClassifierDisabled = errors.New("AI provider API key is missing; set GROQ_API_KEY")

// ErrQuotaExceeded indicates the provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMalformedVerdict indicates the provider reply could not be parsed as
// the required JSON object.
var ErrMalformedVerdict = errors.New("provider returned a malformed verdict")
