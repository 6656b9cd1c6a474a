package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/llm"
	"github.com/tabifor/stellachat/internal/persona"
)

// ChatService orchestrates one chat turn: it resolves the durable chat for a
// (user, persona) pair, persists the user's message, drives the completion
// provider, and finalizes the assistant reply after the stream completes.
type ChatService struct {
	chats    domain.ChatRepository
	messages domain.MessageRepository
	provider llm.Provider
}

// NewChatService creates a new chat service
func NewChatService(
	chats domain.ChatRepository,
	messages domain.MessageRepository,
	provider llm.Provider,
) *ChatService {
	return &ChatService{
		chats:    chats,
		messages: messages,
		provider: provider,
	}
}

// Begin runs the pre-stream phase of a turn: resolve the chat, durably
// record the user's message, run the chained first step if the persona has
// one, and open the provider stream. No bytes have been sent to the client
// yet when Begin returns, so any error here can still become a JSON error
// response.
//
// The last element of incoming must be the user's new message; the full list
// is replayed to the provider as conversation context.
func (s *ChatService) Begin(ctx context.Context, userID uuid.UUID, p persona.Persona, incoming []llm.Message) (*Turn, error) {
	userMessage := incoming[len(incoming)-1]

	chat, err := s.chats.Resolve(ctx, userID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	// The user turn is recorded before any provider call: no completion is
	// attempted without a durable user message.
	err = s.messages.Create(ctx, &domain.Message{
		ID:        uuid.New(),
		ChatID:    chat.ID,
		Role:      domain.RoleUser,
		Content:   userMessage.Content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	var prefix string
	var request llm.Request
	if p.Chain != nil {
		prefix, request, err = s.runChainStep(ctx, p, userMessage.Content)
		if err != nil {
			return nil, err
		}
	} else {
		messages := make([]llm.Message, 0, len(incoming)+1)
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: p.SystemPrompt})
		messages = append(messages, incoming...)
		request = llm.Request{
			Model:       p.Model,
			Messages:    messages,
			Temperature: p.Temperature,
			TopP:        p.TopP,
			MaxTokens:   p.MaxTokens,
		}
	}

	stream, err := s.provider.StreamComplete(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	return &Turn{
		chatID:   chat.ID,
		persona:  p,
		prefix:   prefix,
		stream:   stream,
		messages: s.messages,
	}, nil
}

// runChainStep performs the non-streamed first call of a chained persona and
// builds the streamed second request. A provider error aborts the turn before
// the second call; an empty result falls back to the persona's fallback text.
func (s *ChatService) runChainStep(ctx context.Context, p persona.Persona, input string) (string, llm.Request, error) {
	step := p.Chain

	result, err := s.provider.Complete(ctx, llm.Request{
		Model:       step.Model,
		Temperature: step.Temperature,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf(step.RequestFormat, input)},
		},
	})
	if err != nil {
		return "", llm.Request{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if strings.TrimSpace(result) == "" {
		result = step.Fallback
	}

	request := llm.Request{
		Model:       p.Model,
		Temperature: p.Temperature,
		TopP:        p.TopP,
		MaxTokens:   p.MaxTokens,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: p.SystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(step.BridgeFormat, input, result)},
		},
	}
	return fmt.Sprintf(step.PrefixFormat, result), request, nil
}

// History returns all messages of the user's chat with a persona, oldest
// first. A user who has never talked to that persona gets an empty slice,
// not an error.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, personaID string) ([]domain.Message, error) {
	chat, err := s.chats.Find(ctx, userID, personaID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, nil
	}
	return s.messages.ListByChat(ctx, chat.ID)
}

// Turn is an in-flight chat turn whose provider stream is open but not yet
// relayed. It is single-use: call Relay exactly once.
type Turn struct {
	chatID   uuid.UUID
	persona  persona.Persona
	prefix   string
	stream   llm.Stream
	messages domain.MessageRepository
}

// Relay forwards the provider stream to w fragment by fragment, accumulating
// the reply text, and finalizes the assistant message once the stream ends.
//
// w must deliver each write to the client immediately (cooperative flushing
// is the caller's concern). On any error, whether from the provider, a
// client write, or cancellation, nothing is finalized: the accumulated reply is
// discarded. A client may therefore have seen text that was never stored;
// that window is accepted in exchange for never holding a transaction open
// across the stream.
func (t *Turn) Relay(ctx context.Context, w io.Writer) error {
	defer t.stream.Close()

	var reply strings.Builder
	if t.prefix != "" {
		if _, err := io.WriteString(w, t.prefix); err != nil {
			return fmt.Errorf("failed to relay preamble: %w", err)
		}
		reply.WriteString(t.prefix)
	}

	for {
		frag, err := t.stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}

		switch frag.Kind {
		case llm.FragmentReasoning:
			if t.persona.Reasoning == persona.ReasoningMarker {
				log.Debug().
					Str("persona", t.persona.ID).
					Str("reasoning", frag.Text).
					Msg("model reasoning")
				if _, err := io.WriteString(w, persona.ThinkingMarker); err != nil {
					return fmt.Errorf("failed to relay marker: %w", err)
				}
			}
			// Reasoning text is never part of the stored reply.
		case llm.FragmentContent:
			if _, err := io.WriteString(w, frag.Text); err != nil {
				return fmt.Errorf("failed to relay fragment: %w", err)
			}
			reply.WriteString(frag.Text)
		}
	}

	// A disconnect after the final fragment must not lose the reply, so the
	// finalize write is detached from the request context.
	err := t.messages.Create(context.WithoutCancel(ctx), &domain.Message{
		ID:        uuid.New(),
		ChatID:    t.chatID,
		Role:      domain.RoleAssistant,
		Content:   reply.String(),
		CreatedAt: time.Now(),
	})
	if err != nil {
		// The client has already seen the full reply; losing the record here
		// is a durability gap we log rather than retry.
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
