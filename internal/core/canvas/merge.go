package canvas

import (
	"strings"
	"time"

	"github.com/example/sketch/internal/core/extract"
	"github.com/example/sketch/internal/models"
)

// ApplyExtract merges one parsed extraction into the space, implementing
// the processing order the canvas depends on: later steps read state
// produced by earlier ones within the same call (new decisions attach to
// the option a status change just activated, and so on).
//
// space must be a snapshot the caller will commit; messageID is the
// assistant message the extraction came from. The engine performs no
// payload parsing and cannot fail: malformed payloads are isolated
// upstream and arrive here as the canonical empty extract.
func (e *Engine) ApplyExtract(space *models.DesignSpace, messageID string, ex extract.Extract) {
	c := &space.Canvas
	now := time.Now().UTC()
	var created []models.ElementRef

	// 1. Problem statement: replace verbatim, never append.
	if ex.ProblemStatement != nil && strings.TrimSpace(*ex.ProblemStatement) != "" {
		space.ProblemStatement = *ex.ProblemStatement
	}

	// 2. New options. The near-duplicate title gate is the primary
	// anti-duplication defense: the model restates options across turns.
	// First wins when a batch contains near-duplicates of itself.
	for _, no := range ex.NewOptions {
		if strings.TrimSpace(no.Title) == "" {
			continue
		}
		if e.findOptionByTitle(c, no.Title) != nil {
			continue
		}
		opt := models.Option{
			ID:             models.NewID("opt"),
			Title:          strings.TrimSpace(no.Title),
			Description:    strings.TrimSpace(no.Description),
			Status:         models.OptionConsidering,
			SourceMessages: []string{messageID},
			CreatedAt:      now,
		}
		c.Options = append(c.Options, opt)
		if c.ActiveOptionID == "" {
			c.ActiveOptionID = opt.ID
		}
		created = append(created, models.ElementRef{Type: models.ElementOption, ID: opt.ID})
	}

	// 3. Option description appends (explicit update-by-id).
	for _, up := range ex.OptionUpdates {
		opt := c.Option(up.ID)
		if opt == nil {
			continue
		}
		opt.Description = appendText(opt.Description, up.Description)
		opt.SourceMessages = addSource(opt.SourceMessages, messageID)
	}

	// 4. Status changes, resolved by fuzzy title.
	for _, sc := range ex.StatusChanges {
		opt := e.findOptionByTitle(c, sc.Title)
		if opt == nil || !validOptionStatus(sc.Status) {
			continue
		}
		opt.Status = sc.Status
		opt.SourceMessages = addSource(opt.SourceMessages, messageID)
		switch sc.Status {
		case models.OptionRejected:
			if strings.TrimSpace(sc.Reason) != "" {
				opt.RejectionReason = strings.TrimSpace(sc.Reason)
			}
			if c.ActiveOptionID == opt.ID {
				c.ActiveOptionID = ""
				RederiveActiveOption(c)
			}
		case models.OptionSelected:
			c.ActiveOptionID = opt.ID
		}
	}

	// 5. New decisions, deduped by title, attached to the active option.
	for _, nd := range ex.NewDecisions {
		if strings.TrimSpace(nd.Title) == "" {
			continue
		}
		if e.findDecisionByTitle(c, nd.Title) != nil {
			continue
		}
		dec := models.Decision{
			ID:             models.NewID("dec"),
			Title:          strings.TrimSpace(nd.Title),
			Reasoning:      strings.TrimSpace(nd.Reasoning),
			TradeOffs:      strings.TrimSpace(nd.TradeOffs),
			OptionID:       c.ActiveOptionID,
			SourceMessages: []string{messageID},
			CreatedAt:      now,
		}
		c.Decisions = append(c.Decisions, dec)
		created = append(created, models.ElementRef{Type: models.ElementDecision, ID: dec.ID})
	}

	// 6. Decision reasoning/trade-off appends by ID.
	for _, up := range ex.DecisionUpdates {
		dec := c.Decision(up.ID)
		if dec == nil {
			continue
		}
		dec.Reasoning = appendText(dec.Reasoning, up.Reasoning)
		dec.TradeOffs = appendText(dec.TradeOffs, up.TradeOffs)
		dec.SourceMessages = addSource(dec.SourceMessages, messageID)
	}

	// 7. New constraints and open questions, deduped by text and
	// attached to the most recent decision per the attachment rule.
	for _, nc := range ex.NewConstraints {
		if strings.TrimSpace(nc.Description) == "" {
			continue
		}
		if e.findConstraintByText(c, nc.Description) != nil {
			continue
		}
		source := nc.Source
		if !validConstraintSource(source) {
			source = models.SourceConversation
		}
		con := models.Constraint{
			ID:             models.NewID("con"),
			Description:    strings.TrimSpace(nc.Description),
			Source:         source,
			DecisionID:     attachmentTarget(c),
			SourceMessages: []string{messageID},
		}
		c.Constraints = append(c.Constraints, con)
		created = append(created, models.ElementRef{Type: models.ElementConstraint, ID: con.ID})
	}
	for _, nq := range ex.NewQuestions {
		if strings.TrimSpace(nq.Question) == "" {
			continue
		}
		if e.findQuestionByText(c, nq.Question) != nil {
			continue
		}
		q := models.OpenQuestion{
			ID:         models.NewID("que"),
			Question:   strings.TrimSpace(nq.Question),
			Context:    strings.TrimSpace(nq.Context),
			Status:     models.QuestionOpen,
			DecisionID: attachmentTarget(c),
		}
		c.OpenQuestions = append(c.OpenQuestions, q)
		created = append(created, models.ElementRef{Type: models.ElementOpenQuestion, ID: q.ID})
	}

	// 8. Resolved questions, matched by fuzzy question text.
	for _, text := range ex.ResolvedQuestions {
		if q := e.findQuestionByText(c, text); q != nil {
			q.Status = models.QuestionResolved
		}
	}

	// Lifecycle extras from the wire format.
	for _, fo := range ex.FinishedOptions {
		opt := e.findOptionByTitle(c, fo.Title)
		if opt == nil {
			continue
		}
		opt.Status = models.OptionFinished
		if strings.TrimSpace(fo.Reason) != "" {
			opt.FinishReason = strings.TrimSpace(fo.Reason)
		}
		if fo.Score != nil {
			score := *fo.Score
			opt.BranchScore = &score
		}
		opt.SourceMessages = addSource(opt.SourceMessages, messageID)
	}
	for _, ot := range ex.OptionTodos {
		if opt := c.Option(ot.ID); opt != nil {
			opt.Todo = ot.Todo
		}
	}
	for _, id := range ex.Deletions.Options {
		removeOption(c, id)
	}
	for _, id := range ex.Deletions.Decisions {
		removeDecision(c, id)
	}

	// 9. Invariant 4 as a final step.
	RederiveActiveOption(c)

	// 10. Traceability: tag the source message with what it created.
	if msg := space.Message(messageID); msg != nil && len(created) > 0 {
		msg.ExtractedElements = append(msg.ExtractedElements, created...)
	}
}

func (e *Engine) findDecisionByTitle(c *models.Canvas, title string) *models.Decision {
	for i := range c.Decisions {
		if e.match.IsNearDuplicate(c.Decisions[i].Title, title) {
			return &c.Decisions[i]
		}
	}
	return nil
}

func (e *Engine) findConstraintByText(c *models.Canvas, text string) *models.Constraint {
	for i := range c.Constraints {
		if e.match.IsNearDuplicate(c.Constraints[i].Description, text) {
			return &c.Constraints[i]
		}
	}
	return nil
}
