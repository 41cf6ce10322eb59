package domain

import (
	"context"
	"strings"
)

// Message is one chat turn sent to the completion service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest drives one completion call. The adapter supplies the
// model identifier; callers choose the budget and temperature per step.
type CompletionRequest struct {
	MaxTokens   int
	Temperature float64
	System      string
	Messages    []Message
}

// ContentKind tags the variants a completion response part can take.
type ContentKind string

const (
	ContentKindText  ContentKind = "text"
	ContentKindOther ContentKind = "other"
)

// ContentPart is one element of the completion response content sequence.
// Only text parts carry an answer fragment; other kinds are preserved so
// callers can see they were present, but contribute nothing to Text.
type ContentPart struct {
	Kind ContentKind
	Text string
}

// CompletionResponse is the decoded completion service reply.
type CompletionResponse struct {
	Parts []ContentPart
}

// Text concatenates the text parts in order, ignoring every other kind.
func (r *CompletionResponse) Text() string {
	var b strings.Builder
	for _, p := range r.Parts {
		if p.Kind == ContentKindText {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// CompletionClient is the port for the hosted LLM completion service.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
