// Package advice asks a chat-completion model for mood advice about one
// participant. Every failure collapses into Fallback; the cause is logged.
package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// Fallback is shown whenever advice could not be generated.
const Fallback = "Sorry, mood advice is not available right now. Please try again later."

const promptTemplate = `You are a warm, practical communication coach.
Below are WhatsApp messages written by %s.
Describe their overall mood in one or two sentences, then give three short,
kind suggestions for how to talk with them. Reply in plain text.

Messages:
%s`

const initialBackoff = 500 * time.Millisecond

type Advisor struct {
	client *openai.Client
	cfg    config.Advice
	logger *zap.Logger
	delay  time.Duration
}

func New(cfg config.Advice, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Advisor{
		client: openai.NewClientWithConfig(oc),
		cfg:    cfg,
		logger: logger.Named("advice"),
		delay:  initialBackoff,
	}
}

// Generate returns advice for user, or Fallback on any failure.
func (a *Advisor) Generate(ctx context.Context, user, corpus string) string {
	text, err := a.Request(ctx, user, corpus)
	if err != nil {
		ae := classify(err)
		a.logger.Warn("advice unavailable",
			zap.String("kind", ae.Kind.String()),
			zap.String("user", user),
			zap.Error(ae.Err))
		return Fallback
	}
	return text
}

// Request performs the call under the configured timeout, retrying
// transport failures. Errors are always *Error.
func (a *Advisor) Request(ctx context.Context, user, corpus string) (string, error) {
	if a.cfg.APIKey == "" {
		return "", &Error{Kind: KindAuth, Err: ErrNoAPIKey}
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, user, corpus)},
		},
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	}

	var reply string
	attempt := 0
	err := retry.Do(
		func() error {
			attempt++
			resp, err := a.client.CreateChatCompletion(ctx, req)
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return ErrEmptyReply
			}
			text := strings.TrimSpace(resp.Choices[0].Message.Content)
			if text == "" {
				return ErrEmptyReply
			}
			reply = text
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(a.cfg.Retries+1)),
		retry.Delay(a.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Debug("retrying advice request",
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		a.logger.Debug("advice request failed", zap.Int("attempts", attempt))
		return "", classify(err)
	}
	return reply, nil
}

// Corpus joins the first limit message bodies sent by user, one per line.
func Corpus(user string, records []parse.Record, limit int) string {
	scoped := analyze.Scope(user, records)
	if limit > 0 && len(scoped) > limit {
		scoped = scoped[:limit]
	}
	bodies := make([]string, len(scoped))
	for i, r := range scoped {
		bodies[i] = r.Body
	}
	return strings.Join(bodies, "\n")
}
