package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
)

const (
	RecognizedPhrase     = "Hello, how are you today?"
	RecognizedConfidence = 0.92

	TranscriptFileName = "sign-to-speech-transcript.txt"
)

// Recognizer turns a signing session into text.
type Recognizer interface {
	Recognize(ctx context.Context) (models.Recognition, error)
	Last() (models.Recognition, bool)
	// Transcript returns the last recognized text as a downloadable file.
	Transcript() (name string, content []byte, ok bool)
}

// simulatedRecognizer answers every capture with a fixed phrase after delay.
type simulatedRecognizer struct {
	delay time.Duration
	now   func() time.Time

	mu   sync.RWMutex
	last *models.Recognition
}

func NewRecognizer(delay time.Duration) Recognizer {
	return &simulatedRecognizer{delay: delay, now: time.Now}
}

func (r *simulatedRecognizer) Recognize(ctx context.Context) (models.Recognition, error) {
	t := time.NewTimer(r.delay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
		return models.Recognition{}, ctx.Err()
	}

	rec := models.Recognition{
		Text:       RecognizedPhrase,
		Confidence: RecognizedConfidence,
		CapturedAt: r.now(),
	}

	r.mu.Lock()
	r.last = &rec
	r.mu.Unlock()

	return rec, nil
}

func (r *simulatedRecognizer) Last() (models.Recognition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return models.Recognition{}, false
	}
	return *r.last, true
}

func (r *simulatedRecognizer) Transcript() (string, []byte, bool) {
	rec, ok := r.Last()
	if !ok || rec.Text == "" {
		return "", nil, false
	}
	return TranscriptFileName, []byte(rec.Text), true
}
