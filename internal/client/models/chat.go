package models

import "time"

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageSign  MessageType = "sign"
	MessageAudio MessageType = "audio"
)

// ChatMessage is one entry of the assistant transcript.
type ChatMessage struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	FromUser  bool        `json:"isUser"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
}
