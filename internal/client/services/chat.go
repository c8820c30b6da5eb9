package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/client"
	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/logging"
	"github.com/google/uuid"
)

const (
	ChatGreeting = "Hello! I'm your AI assistant specialized in sign language, deaf culture, and accessibility. How can I help you today?"
	ChatFallback = "Sorry, I'm having trouble connecting right now. Please try again in a moment."
)

// Chat keeps the assistant transcript.
type Chat interface {
	Messages() []models.ChatMessage
	// Send appends text and the assistant's answer to the transcript and
	// returns the two new messages. Blank text is ignored.
	Send(ctx context.Context, text string) []models.ChatMessage
}

type chat struct {
	assistant client.Assistant
	logger    logging.Logger
	now       func() time.Time

	mu       sync.RWMutex
	messages []models.ChatMessage
}

func NewChat(assistant client.Assistant, logger logging.Logger) Chat {
	return newChat(assistant, logger, time.Now)
}

func newChat(assistant client.Assistant, logger logging.Logger, now func() time.Time) *chat {
	c := &chat{
		assistant: assistant,
		logger:    logger.With("component", "chat"),
		now:       now,
	}
	c.messages = []models.ChatMessage{c.message(ChatGreeting, false)}
	return c
}

func (c *chat) message(content string, fromUser bool) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		FromUser:  fromUser,
		Timestamp: c.now(),
		Type:      models.MessageText,
	}
}

func (c *chat) Messages() []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.messages)
}

// Send never fails: an assistant error is logged and answered with
// ChatFallback.
func (c *chat) Send(ctx context.Context, text string) []models.ChatMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	question := c.message(text, true)
	c.append(question)

	answer, err := c.assistant.Ask(ctx, text)
	if err != nil {
		c.logger.Warn(ctx, "assistant call failed", "error", err)
		answer = ChatFallback
	}

	reply := c.message(answer, false)
	c.append(reply)

	return []models.ChatMessage{question, reply}
}

func (c *chat) append(m models.ChatMessage) {
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.mu.Unlock()
}
