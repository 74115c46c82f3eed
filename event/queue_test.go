package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/confetti/constant"
)

func TestPushConsumeFIFO(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 10; i++ {
		q.Push(Event{Type: TypeBurstRequest, Frame: uint64(i)})
	}

	events := q.Consume()
	if len(events) != 10 {
		t.Fatalf("consumed %d events, want 10", len(events))
	}
	for i, ev := range events {
		if ev.Frame != uint64(i) {
			t.Errorf("events[%d].Frame = %d, want %d (FIFO order)", i, ev.Frame, i)
		}
	}

	if got := q.Consume(); got != nil {
		t.Errorf("second Consume returned %d events, want nil", len(got))
	}
}

func TestConsumeEmpty(t *testing.T) {
	q := NewQueue()
	if q.Consume() != nil {
		t.Error("Consume on empty queue must return nil")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestOverflowDropsOldest(t *testing.T) {
	q := NewQueue()

	total := constant.EventQueueSize + 50
	for i := 0; i < total; i++ {
		q.Push(Event{Type: TypeBurstRequest, Frame: uint64(i)})
	}

	events := q.Consume()
	if len(events) > constant.EventQueueSize {
		t.Fatalf("consumed %d events, cap is %d", len(events), constant.EventQueueSize)
	}

	// The surviving window must be the newest events, still in order
	first := events[0].Frame
	if first < 50 {
		t.Errorf("oldest surviving frame = %d, want >= 50 (oldest overwritten)", first)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Frame != events[i-1].Frame+1 {
			t.Fatalf("gap in event order at %d: %d -> %d", i, events[i-1].Frame, events[i].Frame)
		}
	}
}

func TestConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 16 // Stays under queue capacity

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				EmitBurst(q, 1.0, 2.0, 0)
			}
		}()
	}
	wg.Wait()

	events := q.Consume()
	if len(events) != producers*perProducer {
		t.Errorf("consumed %d events, want %d", len(events), producers*perProducer)
	}
	for _, ev := range events {
		p, ok := ev.Payload.(*BurstRequestPayload)
		if !ok {
			t.Fatal("burst event payload has wrong type")
		}
		if p.X != 1.0 || p.Y != 2.0 {
			t.Fatalf("payload = (%v, %v), want (1, 2)", p.X, p.Y)
		}
		ReleaseBurstRequest(p)
	}
}

func TestBurstPayloadPoolReuse(t *testing.T) {
	p := AcquireBurstRequest(10, 20)
	if p.X != 10 || p.Y != 20 {
		t.Fatalf("acquired payload = (%v, %v), want (10, 20)", p.X, p.Y)
	}
	ReleaseBurstRequest(p)

	p2 := AcquireBurstRequest(30, 40)
	if p2.X != 30 || p2.Y != 40 {
		t.Errorf("reacquired payload = (%v, %v), want (30, 40)", p2.X, p2.Y)
	}
	ReleaseBurstRequest(p2)
	ReleaseBurstRequest(nil) // Must not panic
}
