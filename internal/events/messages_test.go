package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeMessageRoundTrip(t *testing.T) {
	msg := NewChangeMessage(EntityExpense, "abc-123", ActionCreated)

	body, err := msg.ToJSON()
	require.NoError(t, err)

	back, err := ChangeMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, EntityExpense, back.Entity)
	assert.Equal(t, "abc-123", back.ID)
	assert.Equal(t, ActionCreated, back.Action)
	assert.False(t, back.Timestamp.IsZero())
}

func TestChangeMessageFromJSONInvalid(t *testing.T) {
	_, err := ChangeMessageFromJSON([]byte("not json"))
	assert.Error(t, err)
}
