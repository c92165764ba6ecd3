package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/guildforge/ledgerbot/ledgerbot/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, store *memoryStore) (*ai.Service, *mock.MockClient) {
	t.Helper()
	client := mock.NewMockClient(gomock.NewController(t))
	limiter := ai.NewLimiter(store, testLimits(), ai.WithClock(fixedNow))
	return ai.NewService(client, limiter, ai.ServiceConfig{Model: "gpt-4o-mini", Temperature: 0.7}), client
}

func TestAskPerUserLimit(t *testing.T) {
	store := &memoryStore{}
	svc, client := newService(t, store)
	ctx := context.Background()

	client.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		Return(&ai.Completion{Text: "Sure!", OutputTokens: 12}, nil).
		Times(2)

	first, err := svc.Ask(ctx, guildA, userX, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Usage: 0/2 personal, 0/3 server", first.Usage)

	second, err := svc.Ask(ctx, guildA, userX, "again")
	require.NoError(t, err)
	assert.Equal(t, "Usage: 1/2 personal, 1/3 server", second.Usage)
	assert.Equal(t, "Sure!\n\n*Usage: 1/2 personal, 1/3 server*", second.Content())

	_, err = svc.Ask(ctx, guildA, userX, "third")
	var limitErr *ai.LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, "You've reached your daily limit of 2 AI requests. Try again tomorrow!", limitErr.Error())

	assert.Len(t, store.rows, 2)
}

func TestAskSendsTrimmedPrompt(t *testing.T) {
	store := &memoryStore{}
	svc, client := newService(t, store)

	question := strings.Repeat("q", 250)
	client.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
			assert.Equal(t, "gpt-4o-mini", req.Model)
			assert.Equal(t, ai.SystemPrompt, req.System)
			assert.Equal(t, 600, req.MaxTokens)
			assert.Equal(t, 0.7, req.Temperature)
			assert.True(t, strings.HasSuffix(req.Prompt, "... [Message trimmed to 100 characters]"))
			return &ai.Completion{Text: "ok", OutputTokens: 3}, nil
		})

	answer, err := svc.Ask(context.Background(), guildA, userX, question)
	require.NoError(t, err)
	assert.True(t, answer.Trimmed)
	assert.Contains(t, answer.Content(), "*Note: Your message was trimmed from 250 to 100 characters*")

	require.Len(t, store.rows, 1)
	assert.Equal(t, 50+len("... [Message trimmed to 100 characters]"), store.rows[0].PromptChars)
	assert.Equal(t, "gpt-4o-mini", store.rows[0].ModelUsed)
}

func TestAskFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    ai.Kind
		message string
	}{
		{
			name:    "quota",
			err:     &ai.APIError{StatusCode: 429, Type: "insufficient_quota", Code: "insufficient_quota", Message: "You exceeded your current quota"},
			kind:    ai.KindQuotaExceeded,
			message: "OpenAI API quota exceeded. Please check your API key billing.",
		},
		{
			name:    "invalid key",
			err:     &ai.APIError{StatusCode: 401, Code: "invalid_api_key", Message: "Incorrect API key provided"},
			kind:    ai.KindInvalidCredential,
			message: "Invalid OpenAI API key. Please check the configuration.",
		},
		{
			name:    "plain error mentioning quota",
			err:     errors.New("upstream said insufficient_quota"),
			kind:    ai.KindQuotaExceeded,
			message: "OpenAI API quota exceeded. Please check your API key billing.",
		},
		{
			name:    "other",
			err:     errors.New("dial tcp: i/o timeout"),
			kind:    ai.KindOther,
			message: "AI service error: dial tcp: i/o timeout...",
		},
		{
			name:    "other is truncated",
			err:     errors.New(strings.Repeat("x", 300)),
			kind:    ai.KindOther,
			message: "AI service error: " + strings.Repeat("x", 100) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			svc, client := newService(t, store)
			client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			_, err := svc.Ask(context.Background(), guildA, userX, "hi")
			var reqErr *ai.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.kind, reqErr.Kind)
			assert.Equal(t, tt.message, reqErr.UserMessage())
			assert.Empty(t, store.rows, "failed calls are not recorded")
		})
	}
}

func TestAskUsageCheckError(t *testing.T) {
	store := &memoryStore{countErr: errors.New("db down")}
	svc, _ := newService(t, store)

	_, err := svc.Ask(context.Background(), guildA, userX, "hi")
	assert.ErrorIs(t, err, ai.ErrUsageCheck)
}

func TestAnswerFitKeepsAnnotations(t *testing.T) {
	answer := &ai.Answer{
		Text:          strings.Repeat("word ", 420),
		Usage:         "Usage: 3/25 personal, 40/500 server",
		OriginalChars: 4500,
		Trimmed:       true,
		MaxInputChars: 4000,
	}

	got := answer.Fit(2000)
	assert.Equal(t, 2000, utf8.RuneCountInString(got))
	assert.Contains(t, got, "*Usage: 3/25 personal, 40/500 server*")
	assert.True(t, strings.HasSuffix(got, "*Note: Your message was trimmed from 4500 to 4000 characters*"))
	assert.Contains(t, got, "...\n\n*Usage")

	short := &ai.Answer{Text: "Hi", Usage: "Usage: 1/25 personal, 1/500 server"}
	assert.Equal(t, short.Content(), short.Fit(2000))
}
