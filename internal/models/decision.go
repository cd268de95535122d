package models

import "time"

// Decision is a settled choice, optionally owned by the option (branch)
// it was made under. OptionID may be empty for a decision without a branch.
type Decision struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Reasoning      string    `json:"reasoning"`
	TradeOffs      string    `json:"trade_offs"`
	OptionID       string    `json:"option_id,omitempty"`
	SourceMessages []string  `json:"source_messages,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
