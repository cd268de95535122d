package models

// Constraint sources.
const (
	SourceConversation = "conversation"
	SourceCode         = "code"
	SourceExternal     = "external"
)

// Constraint is a requirement or limitation recorded on the canvas,
// optionally attached to the decision it constrains.
type Constraint struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Source         string   `json:"source"`
	DecisionID     string   `json:"decision_id,omitempty"`
	SourceMessages []string `json:"source_messages,omitempty"`
}

// Open question statuses.
const (
	QuestionOpen     = "open"
	QuestionResolved = "resolved"
)

// OpenQuestion is an unresolved point raised during the conversation.
type OpenQuestion struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Context    string `json:"context,omitempty"`
	Status     string `json:"status"`
	DecisionID string `json:"decision_id,omitempty"`
}

// Reference types.
const (
	RefCodeSnippet = "code_snippet"
	RefURL         = "url"
	RefPaste       = "paste"
)

// Reference is supporting material (code, link, paste) attached to the
// canvas, optionally linked to a decision.
type Reference struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Label      string `json:"label"`
	Content    string `json:"content"`
	DecisionID string `json:"decision_id,omitempty"`
}
