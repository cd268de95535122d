package app

import (
	"context"

	"github.com/example/sketch/internal/core/canvas"
	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/primary"
	"github.com/example/sketch/internal/ports/secondary"
)

// CanvasServiceImpl implements the CanvasService interface. Every edit
// delegates to the canvas engine inside one transition, so manual edits
// obey the same invariants as automatic merges.
type CanvasServiceImpl struct {
	repo   secondary.SpaceRepository
	engine *canvas.Engine
	log    secondary.ActivityLog
}

var _ primary.CanvasService = (*CanvasServiceImpl)(nil)

// NewCanvasService creates a new CanvasService with injected dependencies.
func NewCanvasService(repo secondary.SpaceRepository, engine *canvas.Engine, log secondary.ActivityLog) *CanvasServiceImpl {
	return &CanvasServiceImpl{repo: repo, engine: engine, log: log}
}

// AddOption creates an option and returns its ID.
func (s *CanvasServiceImpl) AddOption(ctx context.Context, spaceID, title, description string) (string, error) {
	var id string
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		var err error
		id, err = s.engine.AddOption(space, title, description)
		return err
	})
	if err != nil {
		return "", err
	}
	audit(ctx, s.log, spaceID, "option", id, secondary.ActionCreate, title)
	return id, nil
}

// UpdateOption replaces the non-empty fields of an option.
func (s *CanvasServiceImpl) UpdateOption(ctx context.Context, spaceID, optionID, title, description string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.UpdateOption(space, optionID, title, description)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "option", optionID, secondary.ActionUpdate, "")
	return nil
}

// SetOptionStatus changes an option's status.
func (s *CanvasServiceImpl) SetOptionStatus(ctx context.Context, spaceID, optionID, status, reason string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.SetOptionStatus(space, optionID, status, reason)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "option", optionID, secondary.ActionUpdate, "status "+status)
	return nil
}

// SetOptionTodo replaces an option's todo checklist.
func (s *CanvasServiceImpl) SetOptionTodo(ctx context.Context, spaceID, optionID, todo string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.SetOptionTodo(space, optionID, todo)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "option", optionID, secondary.ActionUpdate, "todo")
	return nil
}

// SetActiveOption moves the branch focus.
func (s *CanvasServiceImpl) SetActiveOption(ctx context.Context, spaceID, optionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.SetActiveOption(space, optionID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "option", optionID, secondary.ActionUpdate, "activated")
	return nil
}

// DeleteOption removes an option.
func (s *CanvasServiceImpl) DeleteOption(ctx context.Context, spaceID, optionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.DeleteOption(space, optionID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "option", optionID, secondary.ActionDelete, "")
	return nil
}

// ReorderOptions reorders the option collection.
func (s *CanvasServiceImpl) ReorderOptions(ctx context.Context, spaceID string, optionIDs []string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.ReorderOptions(space, optionIDs)
	})
	return err
}

// AddDecision creates a decision and returns its ID.
func (s *CanvasServiceImpl) AddDecision(ctx context.Context, spaceID string, req primary.AddDecisionRequest) (string, error) {
	var id string
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		var err error
		id, err = s.engine.AddDecision(space, req.Title, req.Reasoning, req.TradeOffs, req.OptionID)
		return err
	})
	if err != nil {
		return "", err
	}
	audit(ctx, s.log, spaceID, "decision", id, secondary.ActionCreate, req.Title)
	return id, nil
}

// UpdateDecision replaces the non-empty fields of a decision.
func (s *CanvasServiceImpl) UpdateDecision(ctx context.Context, spaceID, decisionID, title, reasoning, tradeOffs string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.UpdateDecision(space, decisionID, title, reasoning, tradeOffs)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "decision", decisionID, secondary.ActionUpdate, "")
	return nil
}

// LinkDecision attaches a decision to an option.
func (s *CanvasServiceImpl) LinkDecision(ctx context.Context, spaceID, decisionID, optionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.LinkDecision(space, decisionID, optionID)
	})
	return err
}

// UnlinkDecision detaches a decision from its option.
func (s *CanvasServiceImpl) UnlinkDecision(ctx context.Context, spaceID, decisionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.UnlinkDecision(space, decisionID)
	})
	return err
}

// DeleteDecision removes a decision and clears references to it.
func (s *CanvasServiceImpl) DeleteDecision(ctx context.Context, spaceID, decisionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.DeleteDecision(space, decisionID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "decision", decisionID, secondary.ActionDelete, "")
	return nil
}

// ReorderDecisions reorders the decision collection.
func (s *CanvasServiceImpl) ReorderDecisions(ctx context.Context, spaceID string, decisionIDs []string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.ReorderDecisions(space, decisionIDs)
	})
	return err
}

// AddConstraint creates a constraint and returns its ID.
func (s *CanvasServiceImpl) AddConstraint(ctx context.Context, spaceID, description, source string) (string, error) {
	var id string
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		var err error
		id, err = s.engine.AddConstraint(space, description, source)
		return err
	})
	if err != nil {
		return "", err
	}
	audit(ctx, s.log, spaceID, "constraint", id, secondary.ActionCreate, "")
	return id, nil
}

// DeleteConstraint removes a constraint.
func (s *CanvasServiceImpl) DeleteConstraint(ctx context.Context, spaceID, constraintID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.DeleteConstraint(space, constraintID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "constraint", constraintID, secondary.ActionDelete, "")
	return nil
}

// AddQuestion creates an open question and returns its ID.
func (s *CanvasServiceImpl) AddQuestion(ctx context.Context, spaceID, question, questionContext string) (string, error) {
	var id string
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		var err error
		id, err = s.engine.AddQuestion(space, question, questionContext)
		return err
	})
	if err != nil {
		return "", err
	}
	audit(ctx, s.log, spaceID, "question", id, secondary.ActionCreate, "")
	return id, nil
}

// ResolveQuestion flips an open question to resolved.
func (s *CanvasServiceImpl) ResolveQuestion(ctx context.Context, spaceID, questionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.ResolveQuestion(space, questionID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "question", questionID, secondary.ActionUpdate, "resolved")
	return nil
}

// ReopenQuestion flips a resolved question back to open.
func (s *CanvasServiceImpl) ReopenQuestion(ctx context.Context, spaceID, questionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.ReopenQuestion(space, questionID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "question", questionID, secondary.ActionUpdate, "reopened")
	return nil
}

// DeleteQuestion removes an open question.
func (s *CanvasServiceImpl) DeleteQuestion(ctx context.Context, spaceID, questionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.DeleteQuestion(space, questionID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "question", questionID, secondary.ActionDelete, "")
	return nil
}

// AddReference creates a reference and returns its ID.
func (s *CanvasServiceImpl) AddReference(ctx context.Context, spaceID string, req primary.AddReferenceRequest) (string, error) {
	var id string
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		var err error
		id, err = s.engine.AddReference(space, req.Type, req.Label, req.Content)
		return err
	})
	if err != nil {
		return "", err
	}
	audit(ctx, s.log, spaceID, "reference", id, secondary.ActionCreate, req.Label)
	return id, nil
}

// DeleteReference removes a reference.
func (s *CanvasServiceImpl) DeleteReference(ctx context.Context, spaceID, referenceID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.DeleteReference(space, referenceID)
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "reference", referenceID, secondary.ActionDelete, "")
	return nil
}

// LinkAttachment points a constraint, question, or reference at a decision.
func (s *CanvasServiceImpl) LinkAttachment(ctx context.Context, spaceID, kind, id, decisionID string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.LinkAttachment(space, kind, id, decisionID)
	})
	return err
}

// UnlinkAttachment detaches a constraint, question, or reference.
func (s *CanvasServiceImpl) UnlinkAttachment(ctx context.Context, spaceID, kind, id string) error {
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		return s.engine.UnlinkAttachment(space, kind, id)
	})
	return err
}
