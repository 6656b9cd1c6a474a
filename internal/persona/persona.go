// Package persona holds the static, compile-time-fixed persona catalog: one
// record per expert character combining its system prompt, target model and
// generation parameters. Personas are configuration, not data; they are never
// persisted.
package persona

// ReasoningMode controls what happens to the model's reasoning deltas. They
// are never included in the durably accumulated reply.
type ReasoningMode int

const (
	// ReasoningDiscard drops reasoning fragments silently.
	ReasoningDiscard ReasoningMode = iota
	// ReasoningMarker logs each reasoning fragment and relays a fixed
	// visual marker to the client in its place.
	ReasoningMarker
)

// ThinkingMarker is relayed to the client for each reasoning fragment when
// the persona uses ReasoningMarker.
const ThinkingMarker = "> 🧠 *Thinking...*\n"

// ChainStep is the non-streamed first call of a chained persona. Its output
// is formatted into a preamble and embedded into the second, streamed call.
type ChainStep struct {
	Model       string
	Temperature float32
	// RequestFormat builds the step-one user message from the user's text.
	RequestFormat string
	// BridgeFormat builds the step-two user message from the user's text
	// and the step-one output, in that order.
	BridgeFormat string
	// PrefixFormat builds the streamed preamble from the step-one output.
	// The preamble is relayed first and included in the stored reply.
	PrefixFormat string
	// Fallback replaces an empty step-one result.
	Fallback string
}

// Persona is one expert character's fixed configuration
type Persona struct {
	ID           string
	SystemPrompt string
	Model        string
	Temperature  float32
	TopP         float32
	MaxTokens    int
	Reasoning    ReasoningMode
	// Chain is set for chained two-step personas, nil for single-pass.
	Chain *ChainStep
}

// Persona identifiers
const (
	StartupAdvisor    = "startup-advisor"
	RevenueReactor    = "revenue-reactor"
	PatternDecoder    = "pattern-decoder"
	TranslationExpert = "translation-expert"
)

var catalog = map[string]Persona{
	StartupAdvisor: {
		ID:           StartupAdvisor,
		SystemPrompt: startupAdvisorPrompt,
		Model:        "deepseek-ai/deepseek-r1",
		Temperature:  0.6,
		TopP:         0.7,
		MaxTokens:    4096,
		Reasoning:    ReasoningMarker,
	},
	RevenueReactor: {
		ID:           RevenueReactor,
		SystemPrompt: revenueReactorPrompt,
		Model:        "meta/llama-3.1-70b-instruct",
		Temperature:  0.7,
		TopP:         1.0,
		MaxTokens:    4096,
	},
	PatternDecoder: {
		ID:           PatternDecoder,
		SystemPrompt: patternDecoderPrompt,
		Model:        "meta/llama-3.1-70b-instruct",
		Temperature:  0.5,
		TopP:         1.0,
		MaxTokens:    4096,
	},
	TranslationExpert: {
		ID:           TranslationExpert,
		SystemPrompt: translationExpertPrompt,
		Model:        "meta/llama-3.1-70b-instruct",
		Temperature:  0.5,
		MaxTokens:    4096,
		Chain: &ChainStep{
			Model:         "nvidia/riva-translate-4b-instruct",
			Temperature:   0.1,
			RequestFormat: "Please provide only the translation for the following text, auto-detecting the source and target language. Do not add any other text.\n\n%s",
			BridgeFormat:  "Please analyze the following translation:\nSource Text (ST): %q\nRecommended Translation (TT): %q\n",
			PrefixFormat:  "### Recommended Translation (Target Text)\n> %s\n\n---\n",
			Fallback:      "[Translation Failed]",
		},
	},
}

// Lookup returns the persona for id and whether it exists.
func Lookup(id string) (Persona, bool) {
	p, ok := catalog[id]
	return p, ok
}

// IDs returns the identifiers of all registered personas.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	return ids
}
