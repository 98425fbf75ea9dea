package model

import "time"

// MessageType classifies a chat transcript entry.
type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageAssistant MessageType = "assistant"
	MessageResults   MessageType = "results"
)

// Message is one entry of the search view's transcript. The transcript is
// append-only and lives only as long as the view is mounted.
type Message struct {
	ID        string
	Type      MessageType
	Content   string
	Timestamp time.Time
	Results   []Profile // set only for MessageResults
}
