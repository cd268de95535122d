package canvas

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/sketch/internal/models"
)

// Manual edit operations. These are the UI-driven entry points; they go
// through the same invariant helpers as automatic merges (cascading
// clears, active-option re-derivation, link-target validation) and may
// not bypass them. Link targets are re-validated at operation time: a
// vanished target makes the operation an error, never a dangling
// reference.

// AddOption creates an option with status considering and returns its
// ID. Manual adds are intentional, so there is no duplicate gate.
func (e *Engine) AddOption(space *models.DesignSpace, title, description string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("option title is required")
	}
	opt := models.Option{
		ID:          models.NewID("opt"),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      models.OptionConsidering,
		CreatedAt:   time.Now().UTC(),
	}
	c := &space.Canvas
	c.Options = append(c.Options, opt)
	if c.ActiveOptionID == "" {
		c.ActiveOptionID = opt.ID
	}
	return opt.ID, nil
}

// UpdateOption replaces the non-empty fields of an option.
func (e *Engine) UpdateOption(space *models.DesignSpace, id, title, description string) error {
	opt := space.Canvas.Option(id)
	if opt == nil {
		return fmt.Errorf("option %s not found", id)
	}
	if strings.TrimSpace(title) != "" {
		opt.Title = strings.TrimSpace(title)
	}
	if strings.TrimSpace(description) != "" {
		opt.Description = strings.TrimSpace(description)
	}
	return nil
}

// SetOptionStatus changes an option's status by ID. Selecting makes the
// option active; rejecting or finishing the active option re-derives
// the focus.
func (e *Engine) SetOptionStatus(space *models.DesignSpace, id, status, reason string) error {
	c := &space.Canvas
	opt := c.Option(id)
	if opt == nil {
		return fmt.Errorf("option %s not found", id)
	}
	if !validOptionStatus(status) {
		return fmt.Errorf("invalid option status %q", status)
	}
	opt.Status = status
	switch status {
	case models.OptionRejected:
		if strings.TrimSpace(reason) != "" {
			opt.RejectionReason = strings.TrimSpace(reason)
		}
	case models.OptionFinished:
		if strings.TrimSpace(reason) != "" {
			opt.FinishReason = strings.TrimSpace(reason)
		}
	case models.OptionSelected:
		c.ActiveOptionID = opt.ID
	}
	RederiveActiveOption(c)
	return nil
}

// SetOptionTodo replaces an option's todo checklist wholesale.
func (e *Engine) SetOptionTodo(space *models.DesignSpace, id, todo string) error {
	opt := space.Canvas.Option(id)
	if opt == nil {
		return fmt.Errorf("option %s not found", id)
	}
	opt.Todo = todo
	return nil
}

// SetActiveOption moves the branch focus. The target must exist and be
// eligible (considering or selected).
func (e *Engine) SetActiveOption(space *models.DesignSpace, id string) error {
	opt := space.Canvas.Option(id)
	if opt == nil {
		return fmt.Errorf("option %s not found", id)
	}
	if !opt.Eligible() {
		return fmt.Errorf("option %s is %s and cannot be active", id, opt.Status)
	}
	space.Canvas.ActiveOptionID = id
	return nil
}

// DeleteOption removes an option, clears option_id on decisions that
// referenced it, and re-derives the active option. Decisions survive.
func (e *Engine) DeleteOption(space *models.DesignSpace, id string) error {
	c := &space.Canvas
	if !removeOption(c, id) {
		return fmt.Errorf("option %s not found", id)
	}
	RederiveActiveOption(c)
	return nil
}

// AddDecision creates a decision. optionID may be empty (a decision
// without a branch); when given, the option must exist.
func (e *Engine) AddDecision(space *models.DesignSpace, title, reasoning, tradeOffs, optionID string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("decision title is required")
	}
	c := &space.Canvas
	if optionID != "" && c.Option(optionID) == nil {
		return "", fmt.Errorf("option %s not found", optionID)
	}
	dec := models.Decision{
		ID:        models.NewID("dec"),
		Title:     title,
		Reasoning: strings.TrimSpace(reasoning),
		TradeOffs: strings.TrimSpace(tradeOffs),
		OptionID:  optionID,
		CreatedAt: time.Now().UTC(),
	}
	c.Decisions = append(c.Decisions, dec)
	return dec.ID, nil
}

// UpdateDecision replaces the non-empty fields of a decision.
func (e *Engine) UpdateDecision(space *models.DesignSpace, id, title, reasoning, tradeOffs string) error {
	dec := space.Canvas.Decision(id)
	if dec == nil {
		return fmt.Errorf("decision %s not found", id)
	}
	if strings.TrimSpace(title) != "" {
		dec.Title = strings.TrimSpace(title)
	}
	if strings.TrimSpace(reasoning) != "" {
		dec.Reasoning = strings.TrimSpace(reasoning)
	}
	if strings.TrimSpace(tradeOffs) != "" {
		dec.TradeOffs = strings.TrimSpace(tradeOffs)
	}
	return nil
}

// LinkDecision attaches a decision to an option. Both must exist.
func (e *Engine) LinkDecision(space *models.DesignSpace, decisionID, optionID string) error {
	c := &space.Canvas
	dec := c.Decision(decisionID)
	if dec == nil {
		return fmt.Errorf("decision %s not found", decisionID)
	}
	if c.Option(optionID) == nil {
		return fmt.Errorf("option %s not found", optionID)
	}
	dec.OptionID = optionID
	return nil
}

// UnlinkDecision detaches a decision from its option.
func (e *Engine) UnlinkDecision(space *models.DesignSpace, decisionID string) error {
	dec := space.Canvas.Decision(decisionID)
	if dec == nil {
		return fmt.Errorf("decision %s not found", decisionID)
	}
	dec.OptionID = ""
	return nil
}

// DeleteDecision removes a decision and clears decision_id on all
// constraints, questions, and references that pointed at it.
func (e *Engine) DeleteDecision(space *models.DesignSpace, id string) error {
	if !removeDecision(&space.Canvas, id) {
		return fmt.Errorf("decision %s not found", id)
	}
	return nil
}

// AddConstraint creates a constraint, attached per the same rule the
// merge engine uses: most recent decision under the active option, else
// most recent overall, else unlinked.
func (e *Engine) AddConstraint(space *models.DesignSpace, description, source string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("constraint description is required")
	}
	if !validConstraintSource(source) {
		source = models.SourceConversation
	}
	c := &space.Canvas
	con := models.Constraint{
		ID:          models.NewID("con"),
		Description: description,
		Source:      source,
		DecisionID:  attachmentTarget(c),
	}
	c.Constraints = append(c.Constraints, con)
	return con.ID, nil
}

// AddQuestion creates an open question, attached per the same rule as
// AddConstraint.
func (e *Engine) AddQuestion(space *models.DesignSpace, question, context string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question text is required")
	}
	c := &space.Canvas
	q := models.OpenQuestion{
		ID:         models.NewID("que"),
		Question:   question,
		Context:    strings.TrimSpace(context),
		Status:     models.QuestionOpen,
		DecisionID: attachmentTarget(c),
	}
	c.OpenQuestions = append(c.OpenQuestions, q)
	return q.ID, nil
}

// AddReference creates a reference. References are never deduped:
// pasted content is assumed intentional.
func (e *Engine) AddReference(space *models.DesignSpace, refType, label, content string) (string, error) {
	if !validReferenceType(refType) {
		return "", fmt.Errorf("invalid reference type %q", refType)
	}
	c := &space.Canvas
	ref := models.Reference{
		ID:         models.NewID("ref"),
		Type:       refType,
		Label:      strings.TrimSpace(label),
		Content:    content,
		DecisionID: attachmentTarget(c),
	}
	c.References = append(c.References, ref)
	return ref.ID, nil
}

// ResolveQuestion flips an open question to resolved by ID.
func (e *Engine) ResolveQuestion(space *models.DesignSpace, id string) error {
	return e.setQuestionStatus(space, id, models.QuestionResolved)
}

// ReopenQuestion flips a resolved question back to open.
func (e *Engine) ReopenQuestion(space *models.DesignSpace, id string) error {
	return e.setQuestionStatus(space, id, models.QuestionOpen)
}

func (e *Engine) setQuestionStatus(space *models.DesignSpace, id, status string) error {
	for i := range space.Canvas.OpenQuestions {
		if space.Canvas.OpenQuestions[i].ID == id {
			space.Canvas.OpenQuestions[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("question %s not found", id)
}

// LinkAttachment points a constraint, question, or reference at a
// decision. The decision is re-validated at link time.
func (e *Engine) LinkAttachment(space *models.DesignSpace, kind, id, decisionID string) error {
	c := &space.Canvas
	if c.Decision(decisionID) == nil {
		return fmt.Errorf("decision %s not found", decisionID)
	}
	return e.setAttachmentDecision(c, kind, id, decisionID)
}

// UnlinkAttachment detaches a constraint, question, or reference.
func (e *Engine) UnlinkAttachment(space *models.DesignSpace, kind, id string) error {
	return e.setAttachmentDecision(&space.Canvas, kind, id, "")
}

func (e *Engine) setAttachmentDecision(c *models.Canvas, kind, id, decisionID string) error {
	switch kind {
	case models.ElementConstraint:
		for i := range c.Constraints {
			if c.Constraints[i].ID == id {
				c.Constraints[i].DecisionID = decisionID
				return nil
			}
		}
		return fmt.Errorf("constraint %s not found", id)
	case models.ElementOpenQuestion:
		for i := range c.OpenQuestions {
			if c.OpenQuestions[i].ID == id {
				c.OpenQuestions[i].DecisionID = decisionID
				return nil
			}
		}
		return fmt.Errorf("question %s not found", id)
	case models.ElementReference:
		for i := range c.References {
			if c.References[i].ID == id {
				c.References[i].DecisionID = decisionID
				return nil
			}
		}
		return fmt.Errorf("reference %s not found", id)
	}
	return fmt.Errorf("unknown attachment kind %q", kind)
}

// DeleteConstraint removes a constraint by ID.
func (e *Engine) DeleteConstraint(space *models.DesignSpace, id string) error {
	c := &space.Canvas
	for i := range c.Constraints {
		if c.Constraints[i].ID == id {
			c.Constraints = append(c.Constraints[:i], c.Constraints[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("constraint %s not found", id)
}

// DeleteQuestion removes an open question by ID.
func (e *Engine) DeleteQuestion(space *models.DesignSpace, id string) error {
	c := &space.Canvas
	for i := range c.OpenQuestions {
		if c.OpenQuestions[i].ID == id {
			c.OpenQuestions = append(c.OpenQuestions[:i], c.OpenQuestions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("question %s not found", id)
}

// DeleteReference removes a reference by ID.
func (e *Engine) DeleteReference(space *models.DesignSpace, id string) error {
	c := &space.Canvas
	for i := range c.References {
		if c.References[i].ID == id {
			c.References = append(c.References[:i], c.References[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reference %s not found", id)
}

// ReorderOptions reorders the option collection to the given ID
// permutation. Reordering is always explicit, never a side effect.
func (e *Engine) ReorderOptions(space *models.DesignSpace, ids []string) error {
	out, err := reorder(space.Canvas.Options, ids, func(o models.Option) string { return o.ID })
	if err != nil {
		return fmt.Errorf("reorder options: %w", err)
	}
	space.Canvas.Options = out
	return nil
}

// ReorderDecisions reorders the decision collection.
func (e *Engine) ReorderDecisions(space *models.DesignSpace, ids []string) error {
	out, err := reorder(space.Canvas.Decisions, ids, func(d models.Decision) string { return d.ID })
	if err != nil {
		return fmt.Errorf("reorder decisions: %w", err)
	}
	space.Canvas.Decisions = out
	return nil
}

// ReorderConstraints reorders the constraint collection.
func (e *Engine) ReorderConstraints(space *models.DesignSpace, ids []string) error {
	out, err := reorder(space.Canvas.Constraints, ids, func(c models.Constraint) string { return c.ID })
	if err != nil {
		return fmt.Errorf("reorder constraints: %w", err)
	}
	space.Canvas.Constraints = out
	return nil
}

// ReorderQuestions reorders the open-question collection.
func (e *Engine) ReorderQuestions(space *models.DesignSpace, ids []string) error {
	out, err := reorder(space.Canvas.OpenQuestions, ids, func(q models.OpenQuestion) string { return q.ID })
	if err != nil {
		return fmt.Errorf("reorder questions: %w", err)
	}
	space.Canvas.OpenQuestions = out
	return nil
}

// ReorderReferences reorders the reference collection.
func (e *Engine) ReorderReferences(space *models.DesignSpace, ids []string) error {
	out, err := reorder(space.Canvas.References, ids, func(r models.Reference) string { return r.ID })
	if err != nil {
		return fmt.Errorf("reorder references: %w", err)
	}
	space.Canvas.References = out
	return nil
}

// reorder validates that ids is a permutation of the current collection
// and returns the elements in the requested order.
func reorder[T any](items []T, ids []string, idOf func(T) string) ([]T, error) {
	if len(ids) != len(items) {
		return nil, fmt.Errorf("expected %d ids, got %d", len(items), len(ids))
	}
	byID := make(map[string]int, len(items))
	for i := range items {
		byID[idOf(items[i])] = i
	}
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, id := range ids {
		idx, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown id %s", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate id %s", id)
		}
		seen[id] = true
		out = append(out, items[idx])
	}
	return out, nil
}
