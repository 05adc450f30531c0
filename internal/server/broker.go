package server

import (
	"encoding/json"
	"sync"

	"github.com/missionparty/missionparty/internal/game"
)

// GameEvent is the payload published to state-change subscribers.
type GameEvent struct {
	Type       string          `json:"type"`
	Status     game.GameStatus `json:"status,omitempty"`
	PlayerName string          `json:"playerName,omitempty"`
	MissionID  string          `json:"missionId,omitempty"`
}

// Broker is an in-process pub/sub for SSE events. One shared game means one
// shared topic: every subscriber sees every event.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded game events.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers.
func (b *Broker) Publish(event GameEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
