package analysis

import (
	"encoding/json"
	"testing"
)

func TestFlexBool_AcceptedForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"True"`, true},
		{`"TRUE"`, true},
		{`"false"`, false},
		{`"yes"`, true},
		{`"no"`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`null`, false},
	}
	for _, c := range cases {
		var b FlexBool
		if err := json.Unmarshal([]byte(c.raw), &b); err != nil {
			t.Errorf("unmarshal %s: %v", c.raw, err)
			continue
		}
		if bool(b) != c.want {
			t.Errorf("unmarshal %s: got %v, want %v", c.raw, bool(b), c.want)
		}
	}
}

func TestNormalize_ClampsConfidence(t *testing.T) {
	t.Parallel()

	v := Verdict{Confidence: 1.7}
	v.Normalize()
	if v.Confidence != 1 {
		t.Errorf("got %v, want 1", v.Confidence)
	}

	v = Verdict{Confidence: -0.2}
	v.Normalize()
	if v.Confidence != 0 {
		t.Errorf("got %v, want 0", v.Confidence)
	}
}

func TestNormalize_ReasonsNeverNil(t *testing.T) {
	t.Parallel()

	v := Verdict{}
	v.Normalize()
	if v.Reasons == nil {
		t.Fatal("Reasons must be an array after Normalize")
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) == "" || !json.Valid(data) {
		t.Fatalf("bad marshal output: %s", data)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["reasons"].([]any); !ok {
		t.Errorf("reasons serialized as %T, want array", decoded["reasons"])
	}
}

func TestDegradedTranscript(t *testing.T) {
	t.Parallel()

	if !DegradedTranscript(PlaceholderUnavailable) {
		t.Error("unavailable placeholder should be degraded")
	}
	if !DegradedTranscript("[Transcription failed: connection refused]") {
		t.Error("failure placeholder should be degraded")
	}
	if DegradedTranscript("Hello, this is your bank calling.") {
		t.Error("real transcript should not be degraded")
	}
}
