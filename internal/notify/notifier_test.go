package notify

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus(testLogger())

	ch1, cancel1 := bus.Subscribe(1)
	ch2, cancel2 := bus.Subscribe(1)
	defer cancel1()
	defer cancel2()

	event := RestoreEvent{DocumentID: "doc-1", Title: "Notes", Content: "restored"}
	bus.PublishRestore(event)

	for i, ch := range []<-chan RestoreEvent{ch1, ch2} {
		select {
		case got := <-ch:
			if got != event {
				t.Errorf("subscriber %d got %+v, want %+v", i, got, event)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus(testLogger())

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	// Fill the buffer, then publish again; the second event is dropped
	// rather than blocking the publisher.
	bus.PublishRestore(RestoreEvent{DocumentID: "doc-1", Content: "first"})
	bus.PublishRestore(RestoreEvent{DocumentID: "doc-1", Content: "second"})

	got := <-ch
	if got.Content != "first" {
		t.Errorf("got %q, want the first event", got.Content)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra event %+v", extra)
	default:
	}
}

func TestBusCancelUnsubscribes(t *testing.T) {
	bus := NewBus(testLogger())

	ch, cancel := bus.Subscribe(1)
	cancel()

	// The channel is closed and no further events arrive.
	if _, ok := <-ch; ok {
		t.Error("read from cancelled subscription succeeded")
	}
	bus.PublishRestore(RestoreEvent{DocumentID: "doc-1"})

	// Cancel twice is safe.
	cancel()
}
