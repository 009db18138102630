package chatlog

import "time"

// Event is one recorded conversation turn: the user's message, the intent
// it classified to and the assistant's reply. Events are appended in
// chronological order.
type Event struct {
	Timestamp         time.Time `json:"timestamp"`
	ConversationID    string    `json:"conversation_id"`
	UserMessage       string    `json:"user_message"`
	Intent            string    `json:"intent,omitempty"`
	AssistantResponse string    `json:"assistant_response"`
}

// Recorder abstracts persistence of interaction events. Implementations
// must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}
