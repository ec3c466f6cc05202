package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Print(message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// Console keeps the most recent log lines for the console endpoint
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
	ch       chan ConsoleMessage
}

// NewConsole creates a console holding up to limit messages and starts draining its channel
func NewConsole(limit int) *Console {
	if limit <= 0 {
		limit = 200
	}
	c := &Console{
		limit: limit,
		ch:    make(chan ConsoleMessage, limit),
	}
	go c.drain()
	return c
}

// Channel returns the channel loggers write to
func (c *Console) Channel() chan<- ConsoleMessage {
	return c.ch
}

// Add appends a message, dropping the oldest past the limit
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append(c.messages[:0], c.messages[over:]...)
	}
}

// Recent returns a copy of the buffered messages, oldest first
func (c *Console) Recent() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ConsoleMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Console) drain() {
	for msg := range c.ch {
		c.Add(msg)
	}
}
