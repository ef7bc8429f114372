package app

import (
	"context"
	"sync"
	"sync/atomic"
)

// CancelFlag est un drapeau d'annulation coopératif, propre à une requête de navigation.
// L'appelant peut le lever à tout moment; les appels en cours s'arrêtent au prochain point d'attente.
// Un CancelFlag nil n'est jamais levé.
type CancelFlag struct {
	once sync.Once
	set  atomic.Bool
	ch   chan struct{}
	init sync.Once
}

func NewCancelFlag() *CancelFlag {
	f := &CancelFlag{}
	f.channel()
	return f
}

func (f *CancelFlag) channel() chan struct{} {
	f.init.Do(func() { f.ch = make(chan struct{}) })
	return f.ch
}

func (f *CancelFlag) Cancel() {
	if f == nil {
		return
	}
	f.once.Do(func() {
		f.set.Store(true)
		close(f.channel())
	})
}

func (f *CancelFlag) Canceled() bool {
	return f != nil && f.set.Load()
}

// Done est fermé quand le drapeau est levé. nil (bloque toujours) si f est nil.
func (f *CancelFlag) Done() <-chan struct{} {
	if f == nil {
		return nil
	}
	return f.channel()
}

// bind dérive un contexte annulé dès que le drapeau est levé.
func (f *CancelFlag) bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	if f == nil {
		return ctx, cancel
	}
	go func() {
		select {
		case <-f.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
