package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gradinvite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply    string
	err      error
	messages []domain.ChatMessage
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestChatService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards prompt and question", func(t *testing.T) {
		completer := &fakeCompleter{reply: "Buổi lễ bắt đầu lúc 10 giờ."}
		svc := NewChatService(newFakeEventRepo(sampleEvent("ev-1")), completer, 5*time.Second)

		reply, err := svc.Chat(ctx, "ev-1", "  When does it start?  ")
		require.NoError(t, err)
		assert.Equal(t, "Buổi lễ bắt đầu lúc 10 giờ.", reply)
		require.Len(t, completer.messages, 2)
		assert.Equal(t, domain.ChatRoleSystem, completer.messages[0].Role)
		assert.Contains(t, completer.messages[0].Content, "Thai Quang")
		assert.Contains(t, completer.messages[0].Content, "University Auditorium")
		assert.Contains(t, completer.messages[0].Content, "2025-12-20T10:00:00Z")
		assert.Contains(t, completer.messages[0].Content, "Parking: not yet announced")
		assert.Equal(t, domain.ChatMessage{Role: domain.ChatRoleUser, Content: "When does it start?"}, completer.messages[1])
	})

	t.Run("blank message", func(t *testing.T) {
		svc := NewChatService(newFakeEventRepo(sampleEvent("ev-1")), &fakeCompleter{}, 5*time.Second)
		_, err := svc.Chat(ctx, "ev-1", " ")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewChatService(newFakeEventRepo(), &fakeCompleter{}, 5*time.Second)
		_, err := svc.Chat(ctx, "missing", "hi")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("provider failure", func(t *testing.T) {
		svc := NewChatService(newFakeEventRepo(sampleEvent("ev-1")), &fakeCompleter{err: errors.New("429 too many requests")}, 5*time.Second)
		_, err := svc.Chat(ctx, "ev-1", "hi")
		require.ErrorIs(t, err, domain.ErrChatUnavailable)
		require.NotErrorIs(t, err, domain.ErrChatNotConfigured)
	})

	t.Run("no provider configured", func(t *testing.T) {
		svc := NewChatService(newFakeEventRepo(sampleEvent("ev-1")), nil, 5*time.Second)
		_, err := svc.Chat(ctx, "ev-1", "hi")
		require.ErrorIs(t, err, domain.ErrChatUnavailable)
		require.ErrorIs(t, err, domain.ErrChatNotConfigured)
	})
}

func TestBuildSystemPrompt(t *testing.T) {
	e := sampleEvent("ev-1")
	parking := "Lot B"
	e.Venue.Parking = &parking
	e.Degree = ""

	prompt, err := buildSystemPrompt(e)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Parking: Lot B")
	assert.Contains(t, prompt, "Degree: N/A")
	assert.True(t, strings.HasPrefix(prompt, "You are an assistant for the graduation ceremony of Thai Quang."))
}
