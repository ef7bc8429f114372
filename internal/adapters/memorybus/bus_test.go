package memorybus

import (
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
)

func recv(t *testing.T, ch <-chan ports.Event) string {
	t.Helper()
	select {
	case evt := <-ch:
		return evt.Topic
	case <-time.After(time.Second):
		t.Fatalf("no event received")
		return ""
	}
}

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	b := New()
	a, cancelA := b.Subscribe()
	defer cancelA()
	c, cancelC := b.Subscribe()
	defer cancelC()

	b.Publish("navigation.completed", []byte(`{"count":3}`))

	for _, got := range []string{recv(t, a), recv(t, c)} {
		if got != "navigation.completed" {
			t.Fatalf("unexpected topic %q", got)
		}
	}
}

func TestBus_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := New()
	_, cancel := b.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish("navigation.completed", nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a full subscriber")
	}
}

func TestBus_CancelAndClose(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("canceled subscription should be closed")
	}

	other, _ := b.Subscribe()
	if b.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", b.Subscribers())
	}
	b.Close()
	b.Close()
	if _, ok := <-other; ok {
		t.Fatalf("Close should close subscriptions")
	}
	late, _ := b.Subscribe()
	if _, ok := <-late; ok {
		t.Fatalf("subscribing after Close should yield a closed channel")
	}
	b.Publish("ignored", nil)
}
