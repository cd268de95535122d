package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/sketch/internal/ports/primary"
)

// ChatAdapter translates chat operations to ConversationService calls
// and renders the streamed reply incrementally.
type ChatAdapter struct {
	service primary.ConversationService
	out     io.Writer
}

// NewChatAdapter creates a new ChatAdapter with the given service.
func NewChatAdapter(service primary.ConversationService, out io.Writer) *ChatAdapter {
	return &ChatAdapter{service: service, out: out}
}

// Send sends one user message and prints the reply as it streams. Only
// the not-yet-printed suffix of each visible snapshot is written, so
// the reply appears incrementally without redrawing.
func (a *ChatAdapter) Send(ctx context.Context, spaceID, content string) error {
	printed := 0
	res, err := a.service.Send(ctx, primary.SendRequest{
		SpaceID:    spaceID,
		Content:    content,
		OnProgress: func(visible string) { printed = a.printTail(visible, printed) },
	})
	return a.finish(res, err, printed)
}

// Retry replays the most recent failed turn.
func (a *ChatAdapter) Retry(ctx context.Context, spaceID string) error {
	printed := 0
	res, err := a.service.Retry(ctx, primary.RetryRequest{
		SpaceID:    spaceID,
		OnProgress: func(visible string) { printed = a.printTail(visible, printed) },
	})
	return a.finish(res, err, printed)
}

func (a *ChatAdapter) printTail(visible string, printed int) int {
	if len(visible) > printed {
		fmt.Fprint(a.out, visible[printed:])
		return len(visible)
	}
	return printed
}

func (a *ChatAdapter) finish(res *primary.SendResult, err error, printed int) error {
	if err != nil {
		return err
	}
	// Streaming may end mid-tag; flush whatever the final message kept.
	a.printTail(res.Message.Content, printed)
	fmt.Fprintln(a.out)

	if res.ParseError != "" {
		fmt.Fprintf(a.out, "%s\n", color.New(color.FgYellow).Sprint("⚠ Canvas update could not be parsed; canvas left unchanged"))
	} else if n := len(res.Message.ExtractedElements); n > 0 {
		fmt.Fprintf(a.out, "%s\n", color.New(color.FgHiBlack).Sprintf("[canvas: %d element(s) updated]", n))
	}
	return nil
}

// Crystallize produces an artifact from the canvas and prints it.
func (a *ChatAdapter) Crystallize(ctx context.Context, spaceID, kind string) error {
	output, err := a.service.Crystallize(ctx, spaceID, kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created %s %s\n\n%s\n", output.Kind, output.ID, output.Content)
	return nil
}
