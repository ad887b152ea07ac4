package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRoundTrip(t *testing.T) {
	assert.Equal(t, "events.CHORES_ADDED", Subject("CHORES_ADDED"))
	assert.Equal(t, "CHORES_ADDED", TypeFromSubject("events.CHORES_ADDED"))
	assert.Equal(t, "PLAIN", TypeFromSubject("PLAIN"))
}

func TestPayloadAccessors(t *testing.T) {
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"device_id":"d1","count":3,"name":7}`), &data))
	evt := NewEvent("CHORES_ADDED", data)

	assert.Equal(t, "d1", PayloadString(evt, "device_id"))
	assert.Equal(t, "", PayloadString(evt, "name"))
	assert.Equal(t, "", PayloadString(evt, "missing"))

	n, ok := PayloadInt(evt, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = PayloadInt(evt, "device_id")
	assert.False(t, ok)

	assert.NotNil(t, NewEvent("X", nil).Payload())
}
