package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/scamshield/internal/domain/analysis"
)

// systemPrompt pins the classifier to the four-field JSON contract the UI
// consumes. Kept strict: no markdown, no prose, JSON object only.
const systemPrompt = `You are an AI scam detection system. Analyze the call transcript and respond ONLY in valid JSON.
Required JSON format:
{
  "is_scam": true | false,
  "confidence": number (0 to 1),
  "reasons": [string],
  "safe_reply": string
}
Do not wrap the JSON in markdown fences and do not add any other fields or text.`

// GetSystemPrompt returns the fixed classification instruction.
func GetSystemPrompt() string {
	return systemPrompt
}

// GetUserPrompt wraps the transcript as the user message.
func GetUserPrompt(transcript string) string {
	return "Transcript: " + transcript
}

// wireVerdict is the shape we accept from the provider. is_scam tolerates
// stringified booleans and confidence tolerates out-of-range values; both
// are normalized before the verdict leaves this package.
type wireVerdict struct {
	IsScam     analysis.FlexBool `json:"is_scam"`
	Confidence float64           `json:"confidence"`
	Reasons    []string          `json:"reasons"`
	SafeReply  string            `json:"safe_reply"`
}

// ParseVerdict decodes the provider's reply text into a normalized Verdict.
// Missing fields are default-filled, extra fields ignored. A reply that is
// not a JSON object at all is a hard failure for the request.
func ParseVerdict(raw string) (analysis.Verdict, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return analysis.Verdict{}, analysis.ErrMalformedVerdict
	}

	var wire wireVerdict
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return analysis.Verdict{}, fmt.Errorf("%w: %v", analysis.ErrMalformedVerdict, err)
	}

	v := analysis.Verdict{
		IsScam:     bool(wire.IsScam),
		Confidence: wire.Confidence,
		Reasons:    wire.Reasons,
		SafeReply:  wire.SafeReply,
	}
	v.Normalize()
	return v, nil
}
