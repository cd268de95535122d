package models

import "time"

// Canvas is the structured design state for one space: the problem's
// candidate branches, settled decisions, and their attachments. Slice
// order is insertion order; reordering is an explicit operation.
type Canvas struct {
	Options       []Option       `json:"options"`
	Decisions     []Decision     `json:"decisions"`
	Constraints   []Constraint   `json:"constraints"`
	OpenQuestions []OpenQuestion `json:"open_questions"`
	References    []Reference    `json:"references"`

	// ActiveOptionID is a weak reference into Options marking the branch
	// currently in focus. Either empty or the ID of an existing option
	// with status considering/selected.
	ActiveOptionID string `json:"active_option_id,omitempty"`
}

// Output is a crystallized artifact produced from the canvas.
type Output struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // design_doc, task_list
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Usage records token accounting for one model request.
type Usage struct {
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	At           time.Time `json:"at"`
}

// ExtractionFailure is one diagnostic entry for a reply whose embedded
// canvas payload could not be parsed.
type ExtractionFailure struct {
	At       time.Time `json:"at"`
	Reason   string    `json:"reason"`
	RawBlock string    `json:"raw_block,omitempty"`
}

// MaxExtractionFailures caps the per-space failure log; the oldest
// entry is evicted first.
const MaxExtractionFailures = 20

// DesignSpace is one working session: a problem statement, its canvas,
// the conversation that produced it, and bookkeeping.
type DesignSpace struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	ProblemStatement   string              `json:"problem_statement"`
	Canvas             Canvas              `json:"canvas"`
	Conversation       []Message           `json:"conversation"`
	Outputs            []Output            `json:"outputs,omitempty"`
	UsageHistory       []Usage             `json:"usage_history,omitempty"`
	ExtractionFailures []ExtractionFailure `json:"extraction_failure_log,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// NewDesignSpace creates an empty space with a fresh ID.
func NewDesignSpace(name string) *DesignSpace {
	now := time.Now().UTC()
	return &DesignSpace{
		ID:        NewID("space"),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the space. Mutating operations work on a
// clone and commit the whole result, so no caller ever observes a
// partially-updated space.
func (s *DesignSpace) Clone() *DesignSpace {
	if s == nil {
		return nil
	}
	out := *s
	out.Canvas = s.Canvas.Clone()
	out.Conversation = cloneMessages(s.Conversation)
	out.Outputs = append([]Output(nil), s.Outputs...)
	out.UsageHistory = append([]Usage(nil), s.UsageHistory...)
	out.ExtractionFailures = append([]ExtractionFailure(nil), s.ExtractionFailures...)
	return &out
}

// Clone returns a deep copy of the canvas.
func (c Canvas) Clone() Canvas {
	out := c
	out.Options = make([]Option, len(c.Options))
	for i, o := range c.Options {
		out.Options[i] = o
		out.Options[i].SourceMessages = append([]string(nil), o.SourceMessages...)
		if o.BranchScore != nil {
			score := *o.BranchScore
			out.Options[i].BranchScore = &score
		}
	}
	out.Decisions = make([]Decision, len(c.Decisions))
	for i, d := range c.Decisions {
		out.Decisions[i] = d
		out.Decisions[i].SourceMessages = append([]string(nil), d.SourceMessages...)
	}
	out.Constraints = make([]Constraint, len(c.Constraints))
	for i, cn := range c.Constraints {
		out.Constraints[i] = cn
		out.Constraints[i].SourceMessages = append([]string(nil), cn.SourceMessages...)
	}
	out.OpenQuestions = append([]OpenQuestion(nil), c.OpenQuestions...)
	out.References = append([]Reference(nil), c.References...)
	return out
}

func cloneMessages(in []Message) []Message {
	out := make([]Message, len(in))
	for i, m := range in {
		out[i] = m
		out[i].ExtractedElements = append([]ElementRef(nil), m.ExtractedElements...)
	}
	return out
}

// Option returns the option with the given ID, or nil.
func (c *Canvas) Option(id string) *Option {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

// Decision returns the decision with the given ID, or nil.
func (c *Canvas) Decision(id string) *Decision {
	for i := range c.Decisions {
		if c.Decisions[i].ID == id {
			return &c.Decisions[i]
		}
	}
	return nil
}

// Message returns the conversation message with the given ID, or nil.
func (s *DesignSpace) Message(id string) *Message {
	for i := range s.Conversation {
		if s.Conversation[i].ID == id {
			return &s.Conversation[i]
		}
	}
	return nil
}

// RecordExtractionFailure appends a failure entry, evicting the oldest
// beyond MaxExtractionFailures.
func (s *DesignSpace) RecordExtractionFailure(f ExtractionFailure) {
	s.ExtractionFailures = append(s.ExtractionFailures, f)
	if n := len(s.ExtractionFailures); n > MaxExtractionFailures {
		s.ExtractionFailures = s.ExtractionFailures[n-MaxExtractionFailures:]
	}
}
