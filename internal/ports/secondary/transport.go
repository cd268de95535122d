package secondary

import (
	"context"

	"github.com/example/sketch/internal/core/stream"
)

// ConversationTurn is one prior turn handed to the model.
type ConversationTurn struct {
	Role    string // user or assistant
	Content string
}

// ModelRequest is one conversation or crystallize request.
type ModelRequest struct {
	System    string
	Turns     []ConversationTurn
	MaxTokens int
}

// ModelTransport defines the secondary port for the streaming model
// client. Stream returns a channel the caller consumes to completion;
// the producer closes it after the final event (or after an Err event)
// and honors context cancellation. Complete is the single-shot path for
// requests that need no incremental delivery.
type ModelTransport interface {
	Stream(ctx context.Context, req ModelRequest) (<-chan stream.Event, error)
	Complete(ctx context.Context, req ModelRequest) (string, stream.Usage, error)
}
