package groq

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/scamshield/internal/domain/analysis"
	"github.com/bryanwahyu/scamshield/internal/infra/ai/prompt"
)

const maxTokens = 1024

// Client talks to Groq's OpenAI-compatible API. A Client constructed without
// an API key is in the disabled state: transcription degrades to a
// placeholder and classification fails with ErrClassifierDisabled.
type Client struct {
	api      *openai.Client
	sttModel string
	llmModel string
	timeout  time.Duration
}

type Options struct {
	APIKey              string
	BaseURL             string
	TranscriptionModel  string
	ClassificationModel string
	Timeout             time.Duration
}

func NewClient(opts Options) *Client {
	c := &Client{
		sttModel: opts.TranscriptionModel,
		llmModel: opts.ClassificationModel,
		timeout:  opts.Timeout,
	}
	if c.sttModel == "" {
		c.sttModel = "whisper-large-v3-turbo"
	}
	if c.llmModel == "" {
		c.llmModel = "openai/gpt-oss-120b"
	}
	if c.timeout <= 0 {
		c.timeout = 60 * time.Second
	}
	if opts.APIKey == "" {
		return c
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	c.api = openai.NewClientWithConfig(cfg)
	return c
}

// Enabled reports whether provider credentials were configured.
func (c *Client) Enabled() bool { return c.api != nil }

// Transcribe implements analysis.Transcriber. It never returns an error:
// provider failures are folded into the returned string so the pipeline can
// keep going on degraded input.
func (c *Client) Transcribe(ctx context.Context, audioPath string) string {
	if !c.Enabled() {
		return analysis.PlaceholderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.sttModel,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		log.Printf("transcription error: %v", err)
		return fmt.Sprintf("[Transcription failed: %v]", err)
	}
	return resp.Text
}

// Classify implements analysis.Classifier. Transport-level failures get one
// retry; provider-side errors (including quota) propagate immediately.
func (c *Client) Classify(ctx context.Context, transcript string) (analysis.Verdict, error) {
	if !c.Enabled() {
		return analysis.Verdict{}, analysis.ErrClassifierDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:     c.llmModel,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(transcript)},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			if apiErr.HTTPStatusCode == 429 {
				return analysis.Verdict{}, analysis.ErrQuotaExceeded
			}
			return analysis.Verdict{}, fmt.Errorf("AI analysis failed: %w", err)
		}
		// Transport failure, retry once before giving up.
		if ctx.Err() == nil {
			resp, err = c.api.CreateChatCompletion(ctx, req)
		}
		if err != nil {
			return analysis.Verdict{}, fmt.Errorf("AI analysis failed: %w", err)
		}
	}

	if len(resp.Choices) == 0 {
		return analysis.Verdict{}, analysis.ErrMalformedVerdict
	}
	return prompt.ParseVerdict(resp.Choices[0].Message.Content)
}
