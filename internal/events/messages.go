package events

import (
	"encoding/json"
	"time"
)

// Event types published on the expense stream.
const (
	TypeExpenseCreated = "expense.created"
	TypeExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is the message published for every expense lifecycle
// change. Consumers needing the full record fetch it by id.
type ExpenseEvent struct {
	Type      string    `json:"type"`
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount,omitempty"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseCreated(id int64, amount float64, category string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      TypeExpenseCreated,
		ID:        id,
		Amount:    amount,
		Category:  category,
		Timestamp: time.Now().UTC(),
	}
}

func NewExpenseDeleted(id int64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      TypeExpenseDeleted,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
