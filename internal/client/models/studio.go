package models

import "time"

// Recognition is the outcome of one sign-to-speech capture.
type Recognition struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	CapturedAt time.Time `json:"capturedAt"`
}

// SignFrame is one step of a text-to-sign animation.
type SignFrame struct {
	Word     string        `json:"word"`
	Known    bool          `json:"known"`
	EntryID  string        `json:"entryId,omitempty"`
	Duration time.Duration `json:"duration"`
}
