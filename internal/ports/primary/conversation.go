package primary

import (
	"context"

	"github.com/example/sketch/internal/models"
)

// ConversationService defines the primary port for talking to the
// model about a space and merging what comes back.
type ConversationService interface {
	// Send appends a user message, streams the model's reply, and merges
	// the extracted canvas payload. OnProgress receives the safe-to-show
	// visible prefix as fragments arrive.
	Send(ctx context.Context, req SendRequest) (*SendResult, error)

	// Retry replays the request behind the most recent failed assistant
	// turn. The failed placeholder is replaced by the new outcome.
	Retry(ctx context.Context, req RetryRequest) (*SendResult, error)

	// Crystallize renders the canvas into a prompt, asks the model for
	// the artifact, and stores it as an Output on the space.
	Crystallize(ctx context.Context, spaceID, kind string) (*models.Output, error)
}

// SendRequest carries one user turn.
type SendRequest struct {
	SpaceID string
	Content string

	// OnProgress, when non-nil, is called synchronously with the visible
	// prefix after each received fragment.
	OnProgress func(visible string)
}

// RetryRequest replays a failed turn.
type RetryRequest struct {
	SpaceID    string
	OnProgress func(visible string)
}

// SendResult reports one completed exchange.
type SendResult struct {
	// Message is the committed assistant message.
	Message models.Message

	// ParseError is non-empty when the reply's canvas payload was
	// malformed; the canvas was left unchanged for this turn.
	ParseError string

	Usage models.Usage
}

// Crystallize output kinds.
const (
	OutputDesignDoc = "design_doc"
	OutputTaskList  = "task_list"
)
