package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for model interaction.
// Consumers call Generate with a Request and receive JSON content.
type Provider interface {
	// Generate sends a prompt to the model and returns its response. When
	// the request carries a Schema the response Content is a JSON document;
	// strict schemas are validated before Generate returns.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history. Detection and feedback are
	// single-turn, so this is normally one user message.
	Messages []Message

	// Schema is the JSON Schema the response should conform to.
	// When nil, the response Content is the raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Images are attached to user turns after the text.
	Images []Image
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (used as the schema name for OpenAI-style
	// structured output and as the compile cache key). Kebab-case, e.g.
	// "erd-feedback".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any

	// Strict asks the provider for native structured output and rejects
	// responses that fail validation. A non-strict schema only requests
	// JSON; the caller decodes it defensively.
	Strict bool
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output with code fences and surrounding
	// prose removed. When a Schema was requested it is a JSON document.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserMessage builds a single user turn with optional images.
func UserMessage(text string, images ...Image) Message {
	return Message{Role: RoleUser, Content: text, Images: images}
}
