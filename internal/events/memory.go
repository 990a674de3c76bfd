package events

import (
	"context"
	"sync"
)

// MemoryBus is a process-local bus used in tests and single-instance runs.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[int]chan TicketEvent
	next int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: map[int]chan TicketEvent{}}
}

func (b *MemoryBus) Publish(ctx context.Context, ev TicketEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber, drop rather than block the transition
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context) (<-chan TicketEvent, func(), error) {
	b.mu.Lock()
	id := b.next
	b.next++
	ch := make(chan TicketEvent, 16)
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
		b.mu.Unlock()
	}
	return ch, cancel, nil
}
