package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model's text
// output plus a token-usage envelope.
type Provider interface {
	// Generate sends a prompt (and optional document attachment) to the
	// LLM and returns its response. The response Content is the raw model
	// text; callers are responsible for parsing it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Carries the full grading instructions
	// selected by (subject, question type, difficulty).
	System string

	// Messages is the conversation history. For question generation this
	// contains one user message: the task instruction for the chunk.
	Messages []Message

	// Document is an optional file attachment sent alongside the user
	// message. The provider encodes it for transport (base64).
	Document *Document

	// Schema is an optional JSON Schema the response must conform to.
	// When set, providers that support structured output use it natively.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Document is a file attachment embedded in a request.
type Document struct {
	// Name is the filename presented to the model, e.g. "textbook.pdf".
	Name string

	// MIMEType identifies the document format. Default: "application/pdf".
	MIMEType string

	// Data is the raw document bytes.
	Data []byte
}

// Schema defines a JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "question-batch".
	Name string

	// Description is a human-readable description sent to the LLM.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output as the model emitted it. For
	// question generation this is expected to contain one JSON object,
	// but no guarantee is made about its validity.
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
// Counts are summed across chunks when a document is sharded.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add returns the element-wise sum of two usage records.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}
