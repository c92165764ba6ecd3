package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/snowflake/v2"
)

type Kind int

const (
	KindOther Kind = iota
	KindQuotaExceeded
	KindInvalidCredential
)

func (k Kind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindInvalidCredential:
		return "invalid_credential"
	}
	return "other"
}

// ErrUsageCheck wraps store failures while counting quotas.
var ErrUsageCheck = errors.New("error checking usage limits")

// LimitError is returned when a daily quota denies the request.
type LimitError struct {
	Decision Decision
}

func (e *LimitError) Error() string {
	return e.Decision.Message
}

// RequestError is a failed provider call.
type RequestError struct {
	Kind Kind
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("ai request failed (%s): %v", e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UserMessage is what the member sees for this failure.
func (e *RequestError) UserMessage() string {
	switch e.Kind {
	case KindQuotaExceeded:
		return "OpenAI API quota exceeded. Please check your API key billing."
	case KindInvalidCredential:
		return "Invalid OpenAI API key. Please check the configuration."
	}
	msg := e.Err.Error()
	if utf8.RuneCountInString(msg) > 100 {
		msg = string([]rune(msg)[:100])
	}
	return "AI service error: " + msg + "..."
}

func classify(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == "insufficient_quota" || apiErr.Type == "insufficient_quota":
			return KindQuotaExceeded
		case apiErr.Code == "invalid_api_key" || apiErr.StatusCode == 401:
			return KindInvalidCredential
		}
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "insufficient_quota"):
		return KindQuotaExceeded
	case strings.Contains(msg, "invalid_api_key"):
		return KindInvalidCredential
	}
	return KindOther
}

type ServiceConfig struct {
	Model       string
	Temperature float64
}

// Answer is a completed ask with its usage annotations.
type Answer struct {
	Text          string
	Usage         string
	OriginalChars int
	Trimmed       bool
	MaxInputChars int
	OutputTokens  int
	Model         string
}

// Content renders the answer the way it is posted to the channel.
func (a *Answer) Content() string {
	return a.Text + a.annotations()
}

// Fit renders the answer within max characters. Only the text is shortened,
// the usage line and trim note are always kept.
func (a *Answer) Fit(max int) string {
	notes := a.annotations()
	room := max - utf8.RuneCountInString(notes)
	text := a.Text
	if utf8.RuneCountInString(text) > room {
		r := []rune(text)
		switch {
		case room <= 0:
			text = ""
		case room <= 3:
			text = string(r[:room])
		default:
			text = string(r[:room-3]) + "..."
		}
	}
	return text + notes
}

func (a *Answer) annotations() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n\n*%s*", a.Usage)
	if a.Trimmed {
		fmt.Fprintf(&b, "\n*Note: Your message was trimmed from %d to %d characters*", a.OriginalChars, a.MaxInputChars)
	}
	return b.String()
}

type Service struct {
	client  Client
	limiter *Limiter
	cfg     ServiceConfig
}

func NewService(client Client, limiter *Limiter, cfg ServiceConfig) *Service {
	return &Service{client: client, limiter: limiter, cfg: cfg}
}

func (s *Service) Model() string {
	return s.cfg.Model
}

// Ask runs one quota-checked completion. Usage is recorded only when the
// provider call succeeds.
func (s *Service) Ask(ctx context.Context, guildID, userID snowflake.ID, question string) (*Answer, error) {
	decision, err := s.limiter.CheckLimits(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsageCheck, err)
	}
	if !decision.Allowed {
		return nil, &LimitError{Decision: decision}
	}

	limits := s.limiter.Limits()
	originalChars := utf8.RuneCountInString(question)
	prompt := s.limiter.TrimPrompt(question)

	start := time.Now()
	completion, err := s.client.Complete(ctx, CompletionRequest{
		Model:       s.cfg.Model,
		System:      SystemPrompt,
		Prompt:      prompt,
		MaxTokens:   limits.MaxOutputTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		kind := classify(err)
		slog.Error("AI request failed",
			slog.String("type", "ai"),
			slog.String("kind", kind.String()),
			slog.Int64("guild_id", int64(guildID)),
			slog.Int64("user_id", int64(userID)),
			slog.Any("error", err))
		return nil, &RequestError{Kind: kind, Err: err}
	}

	slog.Info("AI request completed",
		slog.String("type", "ai"),
		slog.String("model", completion.Model),
		slog.Int("output_tokens", completion.OutputTokens),
		slog.Duration("took", time.Since(start)))

	model := s.cfg.Model
	if model == "" {
		model = completion.Model
	}
	s.limiter.RecordUsage(ctx, guildID, userID, utf8.RuneCountInString(prompt), completion.OutputTokens, model, decision.Date)

	return &Answer{
		Text:          completion.Text,
		Usage:         decision.Message,
		OriginalChars: originalChars,
		Trimmed:       originalChars > limits.MaxInputChars,
		MaxInputChars: limits.MaxInputChars,
		OutputTokens:  completion.OutputTokens,
		Model:         model,
	}, nil
}
