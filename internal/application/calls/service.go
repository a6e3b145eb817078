package calls

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/scamshield/internal/application"
	"github.com/bryanwahyu/scamshield/internal/domain/analysis"
	"github.com/bryanwahyu/scamshield/internal/domain/upload"
)

// RetentionStore archives uploaded audio for operators that opt in. The
// source file is left in place; temp cleanup stays with the HTTP handler.
type RetentionStore interface {
	Put(ctx context.Context, localPath, key string) (string, error)
}

// Service implements the one use-case this system has: run a call recording
// through transcription and scam classification. Safe for concurrent use;
// requests share no state.
type Service struct {
	Transcriber analysis.Transcriber
	Classifier  analysis.Classifier
	Retention   RetentionStore // nil when retention is disabled
	Clock       application.Clock
}

// AnalyzeCall sequences transcribe then classify and assembles the result.
// Transcription cannot fail the request; it degrades into placeholder text.
// Classification failure aborts the request, there is no partial verdict.
func (s *Service) AnalyzeCall(ctx context.Context, audio upload.Audio) (*analysis.Analysis, error) {
	now := s.Clock.Now()
	id := uuid.New().String()

	transcript := s.Transcriber.Transcribe(ctx, audio.Path)

	verdict, err := s.Classifier.Classify(ctx, transcript)
	if err != nil {
		return nil, err
	}

	if s.Retention != nil {
		key := fmt.Sprintf("calls/%s/%s%s", now.Format("2006-01-02"), id, filepath.Ext(audio.Path))
		if _, rerr := s.Retention.Put(ctx, audio.Path, key); rerr != nil {
			// Retention is best-effort; the caller already has their verdict.
			log.Printf("retention upload failed for %s: %v", id, rerr)
		}
	}

	return &analysis.Analysis{
		ID:         id,
		ReceivedAt: now,
		Transcript: transcript,
		Verdict:    verdict,
		Degraded:   analysis.DegradedTranscript(transcript),
		DurationMS: time.Since(now).Milliseconds(),
	}, nil
}
