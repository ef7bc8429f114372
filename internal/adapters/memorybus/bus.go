// Package memorybus est un bus d'événements en mémoire: les issues de navigation
// y sont publiées et relayées aux abonnés SSE.
package memorybus

import (
	"sync"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
)

const subscriberBuffer = 64

type Bus struct {
	mu     sync.Mutex
	subs   map[chan ports.Event]struct{}
	closed bool
}

func New() *Bus {
	return &Bus{subs: make(map[chan ports.Event]struct{})}
}

// Publish ne bloque jamais: un abonné dont le tampon est plein perd l'événement.
func (b *Bus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	evt := ports.Event{Topic: topic, Payload: payload}
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Subscribe renvoie un canal fermé par cancel ou par Close.
func (b *Bus) Subscribe() (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, subscriberBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ferme tous les abonnements; les publications suivantes sont ignorées.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
