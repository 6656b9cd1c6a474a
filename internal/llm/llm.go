// Package llm defines the completion-provider contract used by the chat
// orchestrator. Providers turn a message list plus generation parameters into
// either a full reply or a live stream of fragments.
package llm

import "context"

// Message is one turn of provider context
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles understood by the provider
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FragmentKind distinguishes answer text from the model's internal
// deliberation ("reasoning") deltas.
type FragmentKind int

const (
	FragmentContent FragmentKind = iota
	FragmentReasoning
)

// Fragment is one incremental unit of text emitted during streaming
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Request contains completion parameters for a single provider call
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Stream is a lazy, finite, non-restartable sequence of fragments.
// Recv returns io.EOF after the final fragment. Close releases the
// underlying connection and is safe to call after an error.
type Stream interface {
	Recv() (Fragment, error)
	Close() error
}

// Provider defines the interface for completion providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Complete performs a non-streamed call and returns the full reply text
	Complete(ctx context.Context, req Request) (string, error)

	// StreamComplete performs a streamed call. The returned stream is bound
	// to ctx: cancelling ctx aborts the stream.
	StreamComplete(ctx context.Context, req Request) (Stream, error)
}
