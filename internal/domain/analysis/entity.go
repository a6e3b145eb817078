package analysis

import (
	"bytes"
	"strings"
	"time"
)

// Verdict is the classifier's structured judgment for one call transcript.
// Field names mirror the wire contract consumed by the UI.
type Verdict struct {
	IsScam     bool     `json:"is_scam"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
	SafeReply  string   `json:"safe_reply"`
}

// Normalize clamps confidence into [0,1] and guarantees Reasons is non-nil
// so the UI always receives an array.
func (v *Verdict) Normalize() {
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
	if v.Reasons == nil {
		v.Reasons = []string{}
	}
}

// Analysis is the terminal artifact of one request. It is never persisted;
// the optional retention store only keeps the audio, not the verdict.
type Analysis struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Transcript string    `json:"transcript"`
	Verdict    Verdict   `json:"verdict"`
	Degraded   bool      `json:"degraded"`
	DurationMS int64     `json:"duration_ms"`
}

// FlexBool decodes a JSON boolean that the provider has been observed to
// emit both as a bare bool and as a quoted string ("true"/"false"/"yes"/"no").
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

// Placeholder transcripts produced when transcription degrades. The
// classifier cannot tell these apart from real transcripts, so the service
// tracks degradation explicitly instead.
const (
	PlaceholderUnavailable = "[Transcription unavailable: provider not configured]"
	placeholderPrefix      = "[Transcription"
)

// DegradedTranscript reports whether s is one of the in-band placeholder
// strings substituted for a real transcript.
func DegradedTranscript(s string) bool {
	return strings.HasPrefix(s, placeholderPrefix)
}
