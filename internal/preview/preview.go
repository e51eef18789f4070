// Package preview carries editor events to live preview consumers. The bus is
// strictly in-process; the SSE endpoint re-serializes messages so an isolated
// preview frame keeps the same wire contract the editor always spoke.
package preview

import "sync"

// Message types understood by preview consumers.
const (
	TypeUpdateConfig = "UPDATE_CONFIG"
	TypeSimulateRSVP = "SIMULATE_RSVP"
)

// Message is one preview event. Config carries the raw patch for
// UPDATE_CONFIG; State is "yes" or "no" for SIMULATE_RSVP.
type Message struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
	State  string         `json:"state,omitempty"`
}

const subscriberBuffer = 16

// Bus fans messages out to subscribers. Publish never blocks: a subscriber
// that falls behind loses messages rather than stalling the editor.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Message
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Message)}
}

// Subscribe registers a consumer. The returned cancel func closes the channel
// and must be called exactly once.
func (b *Bus) Subscribe() (<-chan Message, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Message, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers msg to every subscriber with room in its buffer.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// UpdateConfig publishes the raw patch the editor just applied.
func (b *Bus) UpdateConfig(patch map[string]any) {
	b.Publish(Message{Type: TypeUpdateConfig, Config: patch})
}

// SimulateRSVP publishes a confirmation-screen rehearsal ("yes" or "no").
func (b *Bus) SimulateRSVP(state string) {
	b.Publish(Message{Type: TypeSimulateRSVP, State: state})
}
