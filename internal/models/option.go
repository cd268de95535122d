package models

import "time"

// Option statuses.
const (
	OptionConsidering = "considering"
	OptionSelected    = "selected"
	OptionRejected    = "rejected"
	OptionFinished    = "finished"
)

// Option is one candidate architectural approach (a "branch") under
// consideration on the canvas.
type Option struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	FinishReason    string   `json:"finish_reason,omitempty"`
	BranchScore     *float64 `json:"branch_score,omitempty"`

	// Todo is a free-form checklist for the branch, replaced wholesale
	// on update rather than appended.
	Todo string `json:"todo,omitempty"`

	// SourceMessages accumulates every message that contributed to or
	// changed this option.
	SourceMessages []string  `json:"source_messages,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Eligible reports whether the option can hold the active-branch focus.
func (o *Option) Eligible() bool {
	return o.Status == OptionConsidering || o.Status == OptionSelected
}
