package bus

import (
	"sync"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

// Listener is notified that shared state changed; it re-reads what it needs.
type Listener func()

type Bus interface {
	// Subscribe registers fn and returns an idempotent unsubscribe.
	Subscribe(fn Listener) (unsubscribe func())
	// Publish invokes every listener registered when it starts, once each,
	// in registration order, on the calling goroutine.
	Publish()
	Len() int
}

type subscription struct {
	fn      Listener
	removed bool
}

type localBus struct {
	mu   sync.Mutex
	subs []*subscription
	log  *logger.Logger
}

func New(log *logger.Logger) Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &localBus{log: log.With("component", "EventBus")}
}

func (b *localBus) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		for i, s := range b.subs {
			if s == sub {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

func (b *localBus) Publish() {
	b.mu.Lock()
	snapshot := make([]*subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		b.mu.Lock()
		removed := sub.removed
		b.mu.Unlock()
		if removed {
			continue
		}
		b.invoke(sub.fn)
	}
}

func (b *localBus) invoke(fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("listener panicked", "panic", r)
		}
	}()
	fn()
}

func (b *localBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
