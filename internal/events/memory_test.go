package events

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch1, cancel1, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel1()
	ch2, cancel2, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel2()

	ev := TicketEvent{Type: TicketSubmitted, TicketID: "t1", MunicipalityID: "m1"}
	if err := bus.Publish(ctx, ev); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	for _, ch := range []<-chan TicketEvent{ch1, ch2} {
		select {
		case got := <-ch:
			if got.TicketID != "t1" || got.Type != TicketSubmitted {
				t.Fatalf("unexpected event: %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event")
		}
	}
}

func TestMemoryBusCancelClosesChannel(t *testing.T) {
	bus := NewMemoryBus()
	ch, cancel, err := bus.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	if _, open := <-ch; open {
		t.Fatalf("expected channel closed after cancel")
	}

	// publishing after cancel must not panic or deliver
	if err := bus.Publish(context.Background(), TicketEvent{Type: TicketApproved}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestMemoryBusDropsWhenSubscriberSlow(t *testing.T) {
	bus := NewMemoryBus()
	_, cancel, err := bus.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	// fill the buffer past capacity; publish must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = bus.Publish(context.Background(), TicketEvent{Type: TicketJoined})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}
