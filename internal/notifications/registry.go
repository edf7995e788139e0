package notifications

import (
	"sync"

	"github.com/google/uuid"
)

// Notification is the payload fanned out to a user's live connections when
// someone likes them.
type Notification struct {
	Type   string    `json:"type"`
	FromID uuid.UUID `json:"fromID"`
}

// sender is one live delivery channel for a user. The websocket client
// satisfies this; tests substitute their own.
type sender interface {
	Send(n Notification) error
}

// Registry maps user identifiers to their live connections. A user can hold
// several connections at once (multiple devices); all methods are safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]map[sender]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[uuid.UUID]map[sender]struct{}),
	}
}

// Add registers a connection for the user.
func (reg *Registry) Add(userID uuid.UUID, s sender) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	set, ok := reg.connections[userID]
	if !ok {
		set = make(map[sender]struct{})
		reg.connections[userID] = set
	}
	set[s] = struct{}{}
}

// Remove unregisters a connection; the user entry disappears with its last
// connection.
func (reg *Registry) Remove(userID uuid.UUID, s sender) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	set, ok := reg.connections[userID]
	if !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(reg.connections, userID)
	}
}

// Count returns the number of live connections for the user.
func (reg *Registry) Count(userID uuid.UUID) int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.connections[userID])
}

// Notify delivers the notification to every live connection of the user.
// Returns the number of connections written to; send failures on individual
// connections are skipped, not propagated.
func (reg *Registry) Notify(userID uuid.UUID, n Notification) int {
	reg.mu.RLock()
	targets := make([]sender, 0, len(reg.connections[userID]))
	for s := range reg.connections[userID] {
		targets = append(targets, s)
	}
	reg.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if err := s.Send(n); err == nil {
			delivered++
		}
	}
	return delivered
}
