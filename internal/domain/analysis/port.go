package analysis

import "context"

// Transcriber converts a buffered audio file into text. It never fails at
// the contract level: on provider error it returns an in-band placeholder
// string, so the transcript is always present for classification.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) string
}

// Classifier turns a transcript into a Verdict. Unlike transcription it can
// fail hard; the verdict is the whole product, there is nothing to degrade to.
type Classifier interface {
	Classify(ctx context.Context, transcript string) (Verdict, error)
}
