// Package extract locates and decodes the structured canvas payload a
// model reply embeds between <canvas_update> tags, and computes the
// user-visible remainder. Malformed payloads are reported, never
// propagated as failures.
package extract

// Extract is the decoded canvas payload for one assistant turn. Every
// slice is non-nil after decoding; unknown wire fields are ignored.
type Extract struct {
	// ProblemStatement, when present and non-blank, replaces the space's
	// problem statement verbatim.
	ProblemStatement *string `json:"problem_statement"`

	NewOptions      []NewOption      `json:"new_options"`
	OptionUpdates   []OptionUpdate   `json:"option_updates"`
	StatusChanges   []StatusChange   `json:"status_changes"`
	NewDecisions    []NewDecision    `json:"new_decisions"`
	DecisionUpdates []DecisionUpdate `json:"decision_updates"`
	NewConstraints  []NewConstraint  `json:"new_constraints"`
	NewQuestions    []NewQuestion    `json:"new_questions"`

	// ResolvedQuestions holds question text matched fuzzily against
	// existing open questions.
	ResolvedQuestions []string `json:"resolved_questions"`

	FinishedOptions []FinishedOption `json:"finished_options"`
	OptionTodos     []OptionTodo     `json:"option_todos"`
	Deletions       Deletions        `json:"deletions"`
}

// NewOption proposes a candidate branch.
type NewOption struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OptionUpdate appends to an option's description by ID.
type OptionUpdate struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// StatusChange changes an option's status, resolving the target by
// near-duplicate title match (the model refers to options by name).
type StatusChange struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// NewDecision proposes a settled choice.
type NewDecision struct {
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
	TradeOffs string `json:"trade_offs"`
}

// DecisionUpdate appends reasoning and/or trade-offs by ID.
type DecisionUpdate struct {
	ID        string `json:"id"`
	Reasoning string `json:"reasoning"`
	TradeOffs string `json:"trade_offs"`
}

// NewConstraint records a requirement.
type NewConstraint struct {
	Description string `json:"description"`
	Source      string `json:"source"`
}

// NewQuestion records an open question.
type NewQuestion struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// FinishedOption marks a branch as explored to completion.
type FinishedOption struct {
	Title  string   `json:"title"`
	Reason string   `json:"reason"`
	Score  *float64 `json:"score"`
}

// OptionTodo replaces an option's todo checklist wholesale.
type OptionTodo struct {
	ID   string `json:"id"`
	Todo string `json:"todo"`
}

// Deletions removes entities by ID, with full cascade semantics.
type Deletions struct {
	Options   []string `json:"options"`
	Decisions []string `json:"decisions"`
}

// Empty returns the canonical empty extract: every slice present and
// empty, every optional scalar unset.
func Empty() Extract {
	return Extract{
		NewOptions:        []NewOption{},
		OptionUpdates:     []OptionUpdate{},
		StatusChanges:     []StatusChange{},
		NewDecisions:      []NewDecision{},
		DecisionUpdates:   []DecisionUpdate{},
		NewConstraints:    []NewConstraint{},
		NewQuestions:      []NewQuestion{},
		ResolvedQuestions: []string{},
		FinishedOptions:   []FinishedOption{},
		OptionTodos:       []OptionTodo{},
		Deletions:         Deletions{Options: []string{}, Decisions: []string{}},
	}
}

// normalize re-defaults any field a JSON null knocked out, so callers
// never see nil slices.
func (e *Extract) normalize() {
	if e.NewOptions == nil {
		e.NewOptions = []NewOption{}
	}
	if e.OptionUpdates == nil {
		e.OptionUpdates = []OptionUpdate{}
	}
	if e.StatusChanges == nil {
		e.StatusChanges = []StatusChange{}
	}
	if e.NewDecisions == nil {
		e.NewDecisions = []NewDecision{}
	}
	if e.DecisionUpdates == nil {
		e.DecisionUpdates = []DecisionUpdate{}
	}
	if e.NewConstraints == nil {
		e.NewConstraints = []NewConstraint{}
	}
	if e.NewQuestions == nil {
		e.NewQuestions = []NewQuestion{}
	}
	if e.ResolvedQuestions == nil {
		e.ResolvedQuestions = []string{}
	}
	if e.FinishedOptions == nil {
		e.FinishedOptions = []FinishedOption{}
	}
	if e.OptionTodos == nil {
		e.OptionTodos = []OptionTodo{}
	}
	if e.Deletions.Options == nil {
		e.Deletions.Options = []string{}
	}
	if e.Deletions.Decisions == nil {
		e.Deletions.Decisions = []string{}
	}
}

// IsEmpty reports whether the extract carries no changes at all.
func (e *Extract) IsEmpty() bool {
	return e.ProblemStatement == nil &&
		len(e.NewOptions) == 0 &&
		len(e.OptionUpdates) == 0 &&
		len(e.StatusChanges) == 0 &&
		len(e.NewDecisions) == 0 &&
		len(e.DecisionUpdates) == 0 &&
		len(e.NewConstraints) == 0 &&
		len(e.NewQuestions) == 0 &&
		len(e.ResolvedQuestions) == 0 &&
		len(e.FinishedOptions) == 0 &&
		len(e.OptionTodos) == 0 &&
		len(e.Deletions.Options) == 0 &&
		len(e.Deletions.Decisions) == 0
}
