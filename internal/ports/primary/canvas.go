package primary

import "context"

// CanvasService defines the primary port for manual canvas edits. Every
// operation runs through the merge engine's invariant helpers and is
// committed as one atomic state transition.
type CanvasService interface {
	AddOption(ctx context.Context, spaceID, title, description string) (string, error)
	UpdateOption(ctx context.Context, spaceID, optionID, title, description string) error
	SetOptionStatus(ctx context.Context, spaceID, optionID, status, reason string) error
	SetOptionTodo(ctx context.Context, spaceID, optionID, todo string) error
	SetActiveOption(ctx context.Context, spaceID, optionID string) error
	DeleteOption(ctx context.Context, spaceID, optionID string) error
	ReorderOptions(ctx context.Context, spaceID string, optionIDs []string) error

	AddDecision(ctx context.Context, spaceID string, req AddDecisionRequest) (string, error)
	UpdateDecision(ctx context.Context, spaceID, decisionID, title, reasoning, tradeOffs string) error
	LinkDecision(ctx context.Context, spaceID, decisionID, optionID string) error
	UnlinkDecision(ctx context.Context, spaceID, decisionID string) error
	DeleteDecision(ctx context.Context, spaceID, decisionID string) error
	ReorderDecisions(ctx context.Context, spaceID string, decisionIDs []string) error

	AddConstraint(ctx context.Context, spaceID, description, source string) (string, error)
	DeleteConstraint(ctx context.Context, spaceID, constraintID string) error

	AddQuestion(ctx context.Context, spaceID, question, questionContext string) (string, error)
	ResolveQuestion(ctx context.Context, spaceID, questionID string) error
	ReopenQuestion(ctx context.Context, spaceID, questionID string) error
	DeleteQuestion(ctx context.Context, spaceID, questionID string) error

	AddReference(ctx context.Context, spaceID string, req AddReferenceRequest) (string, error)
	DeleteReference(ctx context.Context, spaceID, referenceID string) error

	// LinkAttachment points a constraint, question, or reference at a
	// decision; UnlinkAttachment detaches it. kind is one of the
	// models.Element* constants.
	LinkAttachment(ctx context.Context, spaceID, kind, id, decisionID string) error
	UnlinkAttachment(ctx context.Context, spaceID, kind, id string) error
}

// AddDecisionRequest contains parameters for creating a decision.
type AddDecisionRequest struct {
	Title     string
	Reasoning string
	TradeOffs string
	OptionID  string // optional; must exist when given
}

// AddReferenceRequest contains parameters for creating a reference.
type AddReferenceRequest struct {
	Type    string // code_snippet, url, or paste
	Label   string
	Content string
}
