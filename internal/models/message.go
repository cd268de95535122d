package models

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ElementRef is a typed, non-owning reference from a message to a canvas
// element the message caused to be created.
type ElementRef struct {
	Type string `json:"type"` // option, decision, constraint, open_question
	ID   string `json:"id"`
}

// Element reference types. ElementReference never appears in
// ExtractedElements (references are manual-only) but names the kind for
// link/unlink operations.
const (
	ElementOption       = "option"
	ElementDecision     = "decision"
	ElementConstraint   = "constraint"
	ElementOpenQuestion = "open_question"
	ElementReference    = "reference"
)

// Message is one turn of the conversation held on a design space.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// ExtractedElements back-references the canvas items this message
	// created, populated only after a merge completes for the message.
	ExtractedElements []ElementRef `json:"extracted_elements,omitempty"`

	// Error is set on an assistant placeholder when the request failed.
	Error string `json:"error,omitempty"`
}
