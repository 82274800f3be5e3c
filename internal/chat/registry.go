package chat

import (
	"sync"

	"clinical-chat-be/internal/pkg/logger"
)

// Sender is the minimal outbound surface of a websocket connection.
type Sender interface {
	WriteJSON(v interface{}) error
}

// Registry tracks active chat sessions by session key. It is the only
// mutable structure shared across connection goroutines; every mutation
// holds the lock. Key collisions resolve last-write-wins — a documented
// contract, not an accident.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]Sender
	logger logger.ILogger
}

func NewRegistry(log logger.ILogger) *Registry {
	return &Registry{
		conns:  make(map[string]Sender),
		logger: log,
	}
}

// Register stores a connection under key, overwriting any prior entry.
func (r *Registry) Register(key string, s Sender) {
	r.mu.Lock()
	r.conns[key] = s
	r.mu.Unlock()
	r.logger.Info("Registry", "Session registered", map[string]interface{}{"session_id": key})
}

// Unregister removes the entry under key. No-op if absent.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	_, existed := r.conns[key]
	delete(r.conns, key)
	r.mu.Unlock()
	if existed {
		r.logger.Info("Registry", "Session unregistered", map[string]interface{}{"session_id": key})
	}
}

// Rekey atomically moves the connection from oldKey to newKey, so a
// concurrent Send never observes the session under neither key. No-op
// when oldKey is not registered.
func (r *Registry) Rekey(oldKey, newKey string) {
	if oldKey == newKey {
		return
	}
	r.mu.Lock()
	if conn, ok := r.conns[oldKey]; ok {
		delete(r.conns, oldKey)
		r.conns[newKey] = conn
	}
	r.mu.Unlock()
	r.logger.Info("Registry", "Session rekeyed", map[string]interface{}{"old": oldKey, "new": newKey})
}

// Contains reports whether a session is registered under key.
func (r *Registry) Contains(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[key]
	return ok
}

// Send delivers a message to the session registered under key. Best
// effort: an absent key or a write failure is logged and swallowed, so
// callers never have to special-case a connection vanishing mid-send.
func (r *Registry) Send(key string, msg interface{}) {
	r.mu.RLock()
	conn, ok := r.conns[key]
	r.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		r.logger.Error("Registry", "Failed to send message", map[string]interface{}{
			"session_id": key,
			"error":      err.Error(),
		})
	}
}

// Bound returns a Sender that addresses the session currently registered
// under key, with the registry's best-effort delivery semantics.
func (r *Registry) Bound(key string) Sender {
	return &boundSender{registry: r, key: key}
}

type boundSender struct {
	registry *Registry
	key      string
}

func (b *boundSender) WriteJSON(v interface{}) error {
	b.registry.Send(b.key, v)
	return nil
}
