package amqp

import (
	"testing"
	"time"
)

func TestNewExpenseEventMessage(t *testing.T) {
	msg := NewExpenseEventMessage("abc-123", ActionCreated)

	if msg.ID != "abc-123" {
		t.Errorf("NewExpenseEventMessage() ID = %v, want abc-123", msg.ID)
	}
	if msg.Action != ActionCreated {
		t.Errorf("NewExpenseEventMessage() Action = %v, want %v", msg.Action, ActionCreated)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewExpenseEventMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewExpenseEventMessage() Timestamp should be recent")
	}
}

func TestExpenseEventMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &ExpenseEventMessage{
		ID:        "abc-123",
		Action:    ActionUpdated,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := ExpenseEventMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ExpenseEventMessageFromJSON() error = %v", err)
	}

	if parsedMsg.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsedMsg.ID, msg.ID)
	}
	if parsedMsg.Action != msg.Action {
		t.Errorf("Parsed Action = %v, want %v", parsedMsg.Action, msg.Action)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestExpenseEventMessage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"id": 42, "action": "created"}`},
		{"missing id", `{"action": "created"}`},
		{"unknown action", `{"id": "abc", "action": "archived"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExpenseEventMessageFromJSON([]byte(tt.data)); err == nil {
				t.Errorf("ExpenseEventMessageFromJSON(%q) should fail", tt.data)
			}
		})
	}
}
