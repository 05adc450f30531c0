package server

import (
	"encoding/json"
	"testing"

	"github.com/missionparty/missionparty/internal/game"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe()
	c := b.Subscribe()
	defer b.Unsubscribe(a)
	defer b.Unsubscribe(c)

	b.Publish(GameEvent{Type: "player_added", Status: game.StatusConfiguring})

	for name, ch := range map[string]chan []byte{"a": a, "c": c} {
		select {
		case data := <-ch:
			var ev GameEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("%s: decoding event: %v", name, err)
			}
			if ev.Type != "player_added" || ev.Status != game.StatusConfiguring {
				t.Errorf("%s: got %+v", name, ev)
			}
		default:
			t.Fatalf("%s: no event received", name)
		}
	}
}

func TestBrokerDropsSlowSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Overflow the buffer; publishes past capacity must not block.
	for i := 0; i < 100; i++ {
		b.Publish(GameEvent{Type: "status_changed"})
	}
	if got := len(ch); got != cap(ch) {
		t.Fatalf("buffered %d events, want a full buffer of %d", got, cap(ch))
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	b.Publish(GameEvent{Type: "game_created"})
	if len(ch) != 0 {
		t.Fatal("unsubscribed channel still received an event")
	}
}
