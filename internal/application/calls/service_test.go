package calls

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bryanwahyu/scamshield/internal/domain/analysis"
	"github.com/bryanwahyu/scamshield/internal/domain/upload"
)

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

type stubTranscriber struct {
	text  string
	calls int
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) string {
	s.calls++
	return s.text
}

type stubClassifier struct {
	verdict analysis.Verdict
	err     error
	calls   int
	lastIn  string
}

func (s *stubClassifier) Classify(ctx context.Context, transcript string) (analysis.Verdict, error) {
	s.calls++
	s.lastIn = transcript
	return s.verdict, s.err
}

type recordingStore struct {
	keys []string
	err  error
}

func (r *recordingStore) Put(ctx context.Context, localPath, key string) (string, error) {
	r.keys = append(r.keys, key)
	return "http://store/" + key, r.err
}

func newService(tr *stubTranscriber, cl *stubClassifier) *Service {
	return &Service{
		Transcriber: tr,
		Classifier:  cl,
		Clock:       stubClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
	}
}

func TestAnalyzeCall_Success(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{text: "Hello, this is a courtesy call."}
	cl := &stubClassifier{verdict: analysis.Verdict{IsScam: false, Confidence: 0.1, Reasons: []string{}, SafeReply: "Thanks, goodbye."}}
	svc := newService(tr, cl)

	got, err := svc.AnalyzeCall(context.Background(), upload.Audio{Path: "/tmp/x.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transcript != tr.text {
		t.Errorf("transcript = %q", got.Transcript)
	}
	if got.Degraded {
		t.Error("real transcript must not be flagged degraded")
	}
	if got.ID == "" {
		t.Error("expected a generated analysis ID")
	}
	if cl.lastIn != tr.text {
		t.Errorf("classifier saw %q, want the transcript", cl.lastIn)
	}
}

func TestAnalyzeCall_ClassifierFailurePropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("AI analysis failed: connection refused")
	tr := &stubTranscriber{text: "whatever"}
	cl := &stubClassifier{err: wantErr}
	svc := newService(tr, cl)

	_, err := svc.AnalyzeCall(context.Background(), upload.Audio{Path: "/tmp/x.wav"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want classifier error", err)
	}
}

func TestAnalyzeCall_DegradedTranscriptStillClassified(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{text: analysis.PlaceholderUnavailable}
	cl := &stubClassifier{verdict: analysis.Verdict{Reasons: []string{}}}
	svc := newService(tr, cl)

	got, err := svc.AnalyzeCall(context.Background(), upload.Audio{Path: "/tmp/x.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Degraded {
		t.Error("placeholder transcript should flag the analysis degraded")
	}
	if cl.calls != 1 {
		t.Errorf("classifier calls = %d, want 1 (pipeline must continue)", cl.calls)
	}
}

func TestAnalyzeCall_RetentionKeyLayout(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{text: "hi"}
	cl := &stubClassifier{verdict: analysis.Verdict{Reasons: []string{}}}
	store := &recordingStore{}
	svc := newService(tr, cl)
	svc.Retention = store

	got, err := svc.AnalyzeCall(context.Background(), upload.Audio{Path: "/tmp/call-abc.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.keys) != 1 {
		t.Fatalf("retention puts = %d, want 1", len(store.keys))
	}
	key := store.keys[0]
	if !strings.HasPrefix(key, "calls/2026-03-14/") {
		t.Errorf("key = %q, want calls/<date>/ prefix", key)
	}
	if !strings.Contains(key, got.ID) || !strings.HasSuffix(key, ".wav") {
		t.Errorf("key = %q, want analysis ID and source extension", key)
	}
}

func TestAnalyzeCall_RetentionFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{text: "hi"}
	cl := &stubClassifier{verdict: analysis.Verdict{Reasons: []string{}}}
	svc := newService(tr, cl)
	svc.Retention = &recordingStore{err: errors.New("bucket gone")}

	if _, err := svc.AnalyzeCall(context.Background(), upload.Audio{Path: "/tmp/x.wav"}); err != nil {
		t.Fatalf("retention failure must not fail the request: %v", err)
	}
}
