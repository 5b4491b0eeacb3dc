package events

import (
	"encoding/json"
	"time"
)

// Entities and actions carried by change messages.
const (
	EntityExpense = "expense"
	EntityDebt    = "debt"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeMessage notifies the export pipeline that a record changed.
// It carries only the entity and id; consumers fetch the current row
// from storage themselves.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, id, action string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
