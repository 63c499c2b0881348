package service

import (
	"context"
	"log"
	"math/rand"
	"strings"
)

// Message is one turn of an assistant conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider produces assistant replies. Concrete providers (Gemini,
// Groq) live outside this module; when none is configured or the
// provider fails, the service answers from a canned rotation.
type Provider interface {
	Name() string
	Reply(ctx context.Context, system string, messages []Message) (string, error)
}

// ChatReply is an assistant answer plus the provider that produced it.
type ChatReply struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

const restaurantContext = `You are the assistant of "Am Thuc Phuong Nam",
a restaurant serving traditional southern Vietnamese dishes such as pho,
bun bo Hue, banh xeo, goi cuon, com tam and banh khot. Recommend dishes,
explain ingredients, suggest combos and answer questions about the
restaurant. Keep answers short and friendly.`

var fallbackReplies = []string{
	"Sorry, I am having a technical issue right now. Please contact the restaurant directly for the best support.",
	"The assistant is under maintenance. Please try again later or call the restaurant for advice.",
	"I cannot answer right now. You can browse the menu on the website or reach the restaurant directly.",
	"Apologies for the inconvenience. For the fastest help, please talk to our staff.",
}

type ChatService struct {
	provider Provider
}

// NewChatService wires an optional provider; pass nil to run on the
// fallback rotation only.
func NewChatService(provider Provider) *ChatService {
	return &ChatService{provider: provider}
}

// Chat answers one user message given the prior conversation history.
func (s *ChatService) Chat(ctx context.Context, message string, history []Message) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: "user", Content: message})

	if s.provider != nil {
		reply, err := s.provider.Reply(ctx, restaurantContext, msgs)
		if err == nil {
			return &ChatReply{Reply: reply, Provider: s.provider.Name()}, nil
		}
		log.Printf("chat provider %s failed: %v", s.provider.Name(), err)
	}

	return &ChatReply{
		Reply:    fallbackReplies[rand.Intn(len(fallbackReplies))],
		Provider: "fallback",
	}, nil
}
