// Package nvidia implements llm.Provider against NVIDIA's OpenAI-compatible
// completion endpoint (integrate.api.nvidia.com).
package nvidia

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/tabifor/stellachat/internal/config"
	"github.com/tabifor/stellachat/internal/llm"
)

// Provider implements llm.Provider for the NVIDIA endpoint
type Provider struct {
	client *openai.Client
}

// NewProvider creates a new NVIDIA provider
func NewProvider(cfg config.LLMConfig) *Provider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	return &Provider{client: openai.NewClientWithConfig(clientCfg)}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "nvidia"
}

// Complete performs a non-streamed completion call
func (p *Provider) Complete(ctx context.Context, req llm.Request) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, buildRequest(req, false))
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// StreamComplete performs a streamed completion call
func (p *Provider) StreamComplete(ctx context.Context, req llm.Request) (llm.Stream, error) {
	s, err := p.client.CreateChatCompletionStream(ctx, buildRequest(req, true))
	if err != nil {
		return nil, fmt.Errorf("streamed completion request failed: %w", err)
	}
	return &stream{inner: s}, nil
}

func buildRequest(req llm.Request, streamed bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stream:      streamed,
	}
}

// stream adapts an openai stream to llm.Stream, mapping reasoning_content
// deltas to reasoning fragments. Deltas carrying neither reasoning nor
// content (role-only chunks, keep-alives) are skipped.
type stream struct {
	inner *openai.ChatCompletionStream

	// a delta can carry both reasoning and content; the leftover content
	// fragment is held here until the next Recv
	pending *llm.Fragment
}

func (s *stream) Recv() (llm.Fragment, error) {
	if s.pending != nil {
		frag := *s.pending
		s.pending = nil
		return frag, nil
	}

	for {
		resp, err := s.inner.Recv()
		if err != nil {
			return llm.Fragment{}, err
		}
		if len(resp.Choices) == 0 {
			continue
		}

		delta := resp.Choices[0].Delta
		if delta.ReasoningContent != "" {
			if delta.Content != "" {
				s.pending = &llm.Fragment{Kind: llm.FragmentContent, Text: delta.Content}
			}
			return llm.Fragment{Kind: llm.FragmentReasoning, Text: delta.ReasoningContent}, nil
		}
		if delta.Content != "" {
			return llm.Fragment{Kind: llm.FragmentContent, Text: delta.Content}, nil
		}
	}
}

func (s *stream) Close() error {
	return s.inner.Close()
}
