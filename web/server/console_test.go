package server

import (
	"fmt"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	// Create a channel to receive console messages
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	// Test basic logging
	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	// Wait for message to be sent to channel
	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render id 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan)

	// Send multiple messages
	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	// Collect all messages
	var receivedMessages []string
	timeout := time.After(200 * time.Millisecond)
	for i := 0; i < len(messages); i++ {
		select {
		case msg := <-messageChan:
			receivedMessages = append(receivedMessages, msg.Message)
		case <-timeout:
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}

	// Verify all messages were received
	if len(receivedMessages) != len(messages) {
		t.Errorf("Expected %d messages, got %d", len(messages), len(receivedMessages))
	}

	for i, expected := range messages {
		expectedWithNewline := expected + "\n"
		if i < len(receivedMessages) && receivedMessages[i] != expectedWithNewline {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expectedWithNewline, receivedMessages[i])
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	// Create a small channel that will fill up
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	// Fill the channel
	logger.Printf("Message 1\n")

	// Wait for first message
	select {
	case <-messageChan:
		// Good, got the message
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for first message")
	}

	// Send more messages - these should not block even though channel is full
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	// Logger should not block or panic when channel is full
	// This test passes if it doesn't hang or crash
}

func TestWebLogger_NilChannel(t *testing.T) {
	// Test logger with nil channel (should not panic)
	logger := NewWebLogger("test-render-nil", nil)

	// This should not panic
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan)

	// Test formatted logging
	logger.Printf("Loading %s with %d triangles...\n", "suzanne.obj", 968)

	select {
	case msg := <-messageChan:
		expected := "Loading suzanne.obj with 968 triangles...\n"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}

func TestConsole_KeepsMostRecent(t *testing.T) {
	console := NewConsole(3)
	for i := 0; i < 5; i++ {
		console.Add(ConsoleMessage{Message: fmt.Sprintf("line %d", i)})
	}

	recent := console.Recent()
	if len(recent) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(recent))
	}
	for i, msg := range recent {
		if want := fmt.Sprintf("line %d", i+2); msg.Message != want {
			t.Errorf("Message %d: expected %q, got %q", i, want, msg.Message)
		}
	}
}

func TestConsole_DrainsLoggerChannel(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("render-1", console.Channel())
	logger.Printf("hello %s\n", "console")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if recent := console.Recent(); len(recent) == 1 {
			if recent[0].Message != "hello console\n" {
				t.Errorf("Unexpected message %q", recent[0].Message)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("Timeout waiting for console to drain the logger channel")
}
