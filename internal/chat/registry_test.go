package chat

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// recorder collects every message written to it, in order.
type recorder struct {
	mu       sync.Mutex
	messages []interface{}
	failWith error
}

func (r *recorder) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.messages = append(r.messages, v)
	return nil
}

func (r *recorder) all() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interface{}, len(r.messages))
	copy(out, r.messages)
	return out
}

func TestRegistryRegisterAndSend(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	conn := &recorder{}

	reg.Register("temp_abc", conn)
	assert.True(t, reg.Contains("temp_abc"))

	reg.Send("temp_abc", PongMessage{Type: TypePong})
	assert.Len(t, conn.all(), 1)
}

func TestRegistrySendUnknownKeyIsNoop(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	assert.NotPanics(t, func() {
		reg.Send("missing", PongMessage{Type: TypePong})
	})
}

func TestRegistrySendSwallowsWriteErrors(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	conn := &recorder{failWith: errors.New("broken pipe")}
	reg.Register("s1", conn)

	assert.NotPanics(t, func() {
		reg.Send("s1", PongMessage{Type: TypePong})
	})
	assert.True(t, reg.Contains("s1"))
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	reg.Register("s1", &recorder{})

	reg.Unregister("s1")
	assert.False(t, reg.Contains("s1"))

	assert.NotPanics(t, func() {
		reg.Unregister("s1")
	})
}

func TestRegistryRekey(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	conn := &recorder{}
	reg.Register("temp_abc", conn)

	reg.Rekey("temp_abc", "session-1")

	assert.False(t, reg.Contains("temp_abc"))
	assert.True(t, reg.Contains("session-1"))

	reg.Send("session-1", PongMessage{Type: TypePong})
	assert.Len(t, conn.all(), 1)
}

func TestRegistryRekeyMissingOldKeyIsNoop(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	reg.Rekey("missing", "session-1")
	assert.False(t, reg.Contains("session-1"))
}

func TestRegistryRekeySameKeyIsNoop(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	reg.Register("s1", &recorder{})
	reg.Rekey("s1", "s1")
	assert.True(t, reg.Contains("s1"))
}

func TestRegistryLastWriteWins(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	first := &recorder{}
	second := &recorder{}

	reg.Register("s1", first)
	reg.Register("s1", second)

	reg.Send("s1", PongMessage{Type: TypePong})
	assert.Empty(t, first.all())
	assert.Len(t, second.all(), 1)
}

func TestRegistryBoundFollowsKey(t *testing.T) {
	reg := NewRegistry(nopLogger{})
	conn := &recorder{}
	reg.Register("s1", conn)

	bound := reg.Bound("s1")
	assert.NoError(t, bound.WriteJSON(PongMessage{Type: TypePong}))
	assert.Len(t, conn.all(), 1)

	// Best effort: once the key is gone the bound sender still reports nil.
	reg.Unregister("s1")
	assert.NoError(t, bound.WriteJSON(PongMessage{Type: TypePong}))
	assert.Len(t, conn.all(), 1)
}
