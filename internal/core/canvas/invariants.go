package canvas

import "github.com/example/sketch/internal/models"

// RederiveActiveOption re-establishes invariant 4: the active option
// reference either points at an existing considering/selected option or
// is unset. A still-valid reference is kept; otherwise the first
// remaining eligible option (insertion order) takes over.
func RederiveActiveOption(c *models.Canvas) {
	if c.ActiveOptionID != "" {
		if opt := c.Option(c.ActiveOptionID); opt != nil && opt.Eligible() {
			return
		}
	}
	c.ActiveOptionID = ""
	for i := range c.Options {
		if c.Options[i].Eligible() {
			c.ActiveOptionID = c.Options[i].ID
			return
		}
	}
}

// removeOption deletes an option and clears option_id on every decision
// that referenced it. Decisions are never cascade-deleted. Reports
// whether the option existed. Callers re-derive the active option.
func removeOption(c *models.Canvas, id string) bool {
	idx := -1
	for i := range c.Options {
		if c.Options[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	c.Options = append(c.Options[:idx], c.Options[idx+1:]...)
	for i := range c.Decisions {
		if c.Decisions[i].OptionID == id {
			c.Decisions[i].OptionID = ""
		}
	}
	return true
}

// removeDecision deletes a decision and clears decision_id on every
// constraint, open question, and reference that pointed at it.
func removeDecision(c *models.Canvas, id string) bool {
	idx := -1
	for i := range c.Decisions {
		if c.Decisions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	c.Decisions = append(c.Decisions[:idx], c.Decisions[idx+1:]...)
	for i := range c.Constraints {
		if c.Constraints[i].DecisionID == id {
			c.Constraints[i].DecisionID = ""
		}
	}
	for i := range c.OpenQuestions {
		if c.OpenQuestions[i].DecisionID == id {
			c.OpenQuestions[i].DecisionID = ""
		}
	}
	for i := range c.References {
		if c.References[i].DecisionID == id {
			c.References[i].DecisionID = ""
		}
	}
	return true
}

// Repair normalizes an imported or deserialized space to an
// invariant-satisfying state instead of rejecting it: nil collections
// become empty, dangling references are cleared, statuses default
// sanely, and the active option is re-derived.
func Repair(space *models.DesignSpace) {
	c := &space.Canvas
	if c.Options == nil {
		c.Options = []models.Option{}
	}
	if c.Decisions == nil {
		c.Decisions = []models.Decision{}
	}
	if c.Constraints == nil {
		c.Constraints = []models.Constraint{}
	}
	if c.OpenQuestions == nil {
		c.OpenQuestions = []models.OpenQuestion{}
	}
	if c.References == nil {
		c.References = []models.Reference{}
	}
	if space.Conversation == nil {
		space.Conversation = []models.Message{}
	}

	for i := range c.Options {
		if c.Options[i].ID == "" {
			c.Options[i].ID = models.NewID("opt")
		}
		if !validOptionStatus(c.Options[i].Status) {
			c.Options[i].Status = models.OptionConsidering
		}
	}
	for i := range c.Decisions {
		if c.Decisions[i].ID == "" {
			c.Decisions[i].ID = models.NewID("dec")
		}
		if c.Decisions[i].OptionID != "" && c.Option(c.Decisions[i].OptionID) == nil {
			c.Decisions[i].OptionID = ""
		}
	}
	for i := range c.Constraints {
		if c.Constraints[i].ID == "" {
			c.Constraints[i].ID = models.NewID("con")
		}
		if !validConstraintSource(c.Constraints[i].Source) {
			c.Constraints[i].Source = models.SourceConversation
		}
		if c.Constraints[i].DecisionID != "" && c.Decision(c.Constraints[i].DecisionID) == nil {
			c.Constraints[i].DecisionID = ""
		}
	}
	for i := range c.OpenQuestions {
		if c.OpenQuestions[i].ID == "" {
			c.OpenQuestions[i].ID = models.NewID("que")
		}
		if c.OpenQuestions[i].Status != models.QuestionResolved {
			c.OpenQuestions[i].Status = models.QuestionOpen
		}
		if c.OpenQuestions[i].DecisionID != "" && c.Decision(c.OpenQuestions[i].DecisionID) == nil {
			c.OpenQuestions[i].DecisionID = ""
		}
	}
	for i := range c.References {
		if c.References[i].ID == "" {
			c.References[i].ID = models.NewID("ref")
		}
		if !validReferenceType(c.References[i].Type) {
			c.References[i].Type = models.RefPaste
		}
		if c.References[i].DecisionID != "" && c.Decision(c.References[i].DecisionID) == nil {
			c.References[i].DecisionID = ""
		}
	}

	RederiveActiveOption(c)
}
