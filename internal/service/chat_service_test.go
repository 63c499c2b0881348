package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply    string
	err      error
	received []Message
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Reply(_ context.Context, _ string, messages []Message) (string, error) {
	p.received = messages
	return p.reply, p.err
}

func TestChat_RequiresMessage(t *testing.T) {
	svc := NewChatService(nil)
	_, err := svc.Chat(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChat_UsesProvider(t *testing.T) {
	p := &stubProvider{reply: "Try the pho bo, it is our signature dish."}
	svc := NewChatService(p)

	history := []Message{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Welcome!"},
	}
	reply, err := svc.Chat(context.Background(), "What should I order?", history)
	require.NoError(t, err)
	assert.Equal(t, "stub", reply.Provider)
	assert.Equal(t, p.reply, reply.Reply)

	// history plus the new user message reach the provider in order
	require.Len(t, p.received, 3)
	assert.Equal(t, "What should I order?", p.received[2].Content)
	assert.Equal(t, "user", p.received[2].Role)
}

func TestChat_FallbackWithoutProvider(t *testing.T) {
	svc := NewChatService(nil)
	reply, err := svc.Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply.Provider)
	assert.Contains(t, fallbackReplies, reply.Reply)
}

func TestChat_FallbackOnProviderError(t *testing.T) {
	svc := NewChatService(&stubProvider{err: errors.New("upstream down")})
	reply, err := svc.Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply.Provider)
}
