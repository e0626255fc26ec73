package rbac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateChangedEvent(t *testing.T) {
	event := NewEvent("session-1", "request-1", StateChanged{
		Action: ActionDelete,
		Phase:  PhaseFailed,
		Error:  MessageDeleteFailed,
		Count:  3,
	})
	assert.Equal(t, "github.com/paulvitic/rbac-admin.StateChanged", event.Type())

	str, err := event.ToJsonString()
	assert.NoError(t, err)

	var data map[string]interface{}
	err = json.Unmarshal([]byte(str), &data)
	assert.NoError(t, err)

	assert.Equal(t, "session-1", data["session_id"])
	assert.Equal(t, "request-1", data["request_id"])
	payload := data["payload"].(map[string]interface{})
	assert.Equal(t, "delete", payload["action"])
	assert.Equal(t, "failed", payload["phase"])
	assert.Equal(t, "Failed to delete user", payload["error"])
	assert.Equal(t, float64(3), payload["count"])
}

func TestPhaseText(t *testing.T) {
	for _, phase := range []Phase{PhaseIdle, PhaseLoading, PhaseSucceeded, PhaseFailed} {
		text, err := phase.MarshalText()
		assert.NoError(t, err)

		var parsed Phase
		assert.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, phase, parsed)
	}

	_, err := Phase(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Phase(42)", Phase(42).String())
}
