package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/sketch/internal/core/canvas"
	"github.com/example/sketch/internal/core/stream"
	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/primary"
	"github.com/example/sketch/internal/ports/secondary"
	"github.com/example/sketch/internal/prompt"
)

// defaultMaxTokens bounds a single model reply.
const defaultMaxTokens = 4096

// ConversationServiceImpl implements the ConversationService interface.
type ConversationServiceImpl struct {
	repo      secondary.SpaceRepository
	transport secondary.ModelTransport
	engine    *canvas.Engine
	log       secondary.ActivityLog
}

var _ primary.ConversationService = (*ConversationServiceImpl)(nil)

// NewConversationService creates a new ConversationService with injected dependencies.
func NewConversationService(
	repo secondary.SpaceRepository,
	transport secondary.ModelTransport,
	engine *canvas.Engine,
	log secondary.ActivityLog,
) *ConversationServiceImpl {
	return &ConversationServiceImpl{
		repo:      repo,
		transport: transport,
		engine:    engine,
		log:       log,
	}
}

// Send appends a user message, streams the model's reply, and merges
// the extracted canvas payload into the space. The user message is
// committed before the model is called, so a transport failure never
// loses what the user typed.
func (s *ConversationServiceImpl) Send(ctx context.Context, req primary.SendRequest) (*primary.SendResult, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("message content is required")
	}

	userMsg := models.Message{
		ID:        models.NewID("msg"),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	space, err := transition(ctx, s.repo, req.SpaceID, func(space *models.DesignSpace) error {
		space.Conversation = append(space.Conversation, userMsg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.exchange(ctx, space, req.OnProgress)
}

// Retry replays the request behind the most recent failed assistant
// turn. The failed placeholder is removed and replaced by the new
// outcome.
func (s *ConversationServiceImpl) Retry(ctx context.Context, req primary.RetryRequest) (*primary.SendResult, error) {
	space, err := s.repo.GetByID(ctx, req.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	n := len(space.Conversation)
	if n == 0 {
		return nil, fmt.Errorf("nothing to retry")
	}
	last := space.Conversation[n-1]
	if last.Role != models.RoleAssistant || last.Error == "" {
		return nil, fmt.Errorf("last turn did not fail; nothing to retry")
	}

	space, err = transition(ctx, s.repo, req.SpaceID, func(space *models.DesignSpace) error {
		if m := len(space.Conversation); m > 0 {
			space.Conversation = space.Conversation[:m-1]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.exchange(ctx, space, req.OnProgress)
}

// exchange streams one model reply for the space's conversation and
// commits the outcome: a merged assistant turn on success, an error
// placeholder on transport failure.
func (s *ConversationServiceImpl) exchange(ctx context.Context, space *models.DesignSpace, onProgress func(string)) (*primary.SendResult, error) {
	events, err := s.transport.Stream(ctx, s.buildRequest(space))
	if err != nil {
		return nil, s.commitFailure(ctx, space.ID, err)
	}
	res, err := stream.Assemble(events, onProgress)
	if err != nil {
		return nil, s.commitFailure(ctx, space.ID, err)
	}

	assistantMsg := models.Message{
		ID:        models.NewID("msg"),
		Role:      models.RoleAssistant,
		Content:   res.Text,
		Timestamp: time.Now().UTC(),
	}
	usage := models.Usage{
		InputTokens:  res.Usage.InputTokens,
		OutputTokens: res.Usage.OutputTokens,
		At:           time.Now().UTC(),
	}

	updated, err := transition(ctx, s.repo, space.ID, func(next *models.DesignSpace) error {
		next.Conversation = append(next.Conversation, assistantMsg)
		next.UsageHistory = append(next.UsageHistory, usage)
		if res.ParseError != "" {
			next.RecordExtractionFailure(models.ExtractionFailure{
				At:       time.Now().UTC(),
				Reason:   res.ParseError,
				RawBlock: res.RawBlock,
			})
			return nil
		}
		s.engine.ApplyExtract(next, assistantMsg.ID, res.Extract)
		return nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, s.log, space.ID, "message", assistantMsg.ID, secondary.ActionMerge, "")

	committed := updated.Message(assistantMsg.ID)
	if committed == nil {
		committed = &assistantMsg
	}
	return &primary.SendResult{
		Message:    *committed,
		ParseError: res.ParseError,
		Usage:      usage,
	}, nil
}

// commitFailure records an assistant placeholder carrying the transport
// error, then returns that error. The conversation keeps a visible
// trace of the failed turn so retry knows what to replay.
func (s *ConversationServiceImpl) commitFailure(ctx context.Context, spaceID string, cause error) error {
	_, commitErr := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		space.Conversation = append(space.Conversation, models.Message{
			ID:        models.NewID("msg"),
			Role:      models.RoleAssistant,
			Timestamp: time.Now().UTC(),
			Error:     cause.Error(),
		})
		return nil
	})
	if commitErr != nil {
		return fmt.Errorf("model request failed: %v (and recording the failure also failed: %w)", cause, commitErr)
	}
	return fmt.Errorf("model request failed: %w", cause)
}

// buildRequest assembles the model request from the system prompt, the
// current canvas summary, and the conversation so far. Failed turns are
// skipped: the model never sees empty placeholder messages.
func (s *ConversationServiceImpl) buildRequest(space *models.DesignSpace) secondary.ModelRequest {
	system := prompt.System()
	if summary := prompt.CanvasSummary(space); summary != "" {
		system += "\n\nCurrent canvas:\n" + summary
	}
	turns := make([]secondary.ConversationTurn, 0, len(space.Conversation))
	for _, m := range space.Conversation {
		if m.Error != "" {
			continue
		}
		turns = append(turns, secondary.ConversationTurn{Role: m.Role, Content: m.Content})
	}
	return secondary.ModelRequest{
		System:    system,
		Turns:     turns,
		MaxTokens: defaultMaxTokens,
	}
}

// Crystallize renders the canvas into an artifact prompt, asks the
// model once, and stores the result as an Output on the space.
func (s *ConversationServiceImpl) Crystallize(ctx context.Context, spaceID, kind string) (*models.Output, error) {
	switch kind {
	case primary.OutputDesignDoc, primary.OutputTaskList:
	default:
		return nil, fmt.Errorf("unknown output kind %q", kind)
	}
	space, err := s.repo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	if len(space.Canvas.Options) == 0 && len(space.Canvas.Decisions) == 0 {
		return nil, fmt.Errorf("canvas is empty; nothing to crystallize")
	}

	req := secondary.ModelRequest{
		Turns: []secondary.ConversationTurn{
			{Role: models.RoleUser, Content: prompt.Crystallize(space, kind)},
		},
		MaxTokens: defaultMaxTokens,
	}
	content, usage, err := s.transport.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	output := models.Output{
		ID:        models.NewID("out"),
		Kind:      kind,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err = transition(ctx, s.repo, spaceID, func(next *models.DesignSpace) error {
		next.Outputs = append(next.Outputs, output)
		next.UsageHistory = append(next.UsageHistory, models.Usage{
			InputTokens:  usage.InputTokens,
			OutputTokens: usage.OutputTokens,
			At:           time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, s.log, spaceID, "output", output.ID, secondary.ActionCreate, kind)
	return &output, nil
}
