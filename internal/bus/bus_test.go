package bus

import "testing"

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	_, ch := b.Subscribe()

	b.Publish(EventFoodAdded, map[string]any{"id": 1})
	b.Publish(EventFoodDeleted, map[string]any{"id": 1})

	first := <-ch
	if first.Name != EventFoodAdded {
		t.Errorf("expected %q first, got %q", EventFoodAdded, first.Name)
	}
	second := <-ch
	if second.Name != EventFoodDeleted {
		t.Errorf("expected %q second, got %q", EventFoodDeleted, second.Name)
	}
}

func TestPublishFansOut(t *testing.T) {
	b := New()
	defer b.Close()

	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	b.Publish(EventAppVersion, "v1")

	if ev := <-ch1; ev.Name != EventAppVersion {
		t.Errorf("subscriber 1: got %q", ev.Name)
	}
	if ev := <-ch2; ev.Name != EventAppVersion {
		t.Errorf("subscriber 2: got %q", ev.Name)
	}
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	_, ch := b.Subscribe()

	// Overflow the buffer. The extra events are dropped for the lagging
	// subscriber instead of blocking the publisher.
	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish(EventFoodStatusUpdated, i)
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			if received != subscriberBuffer {
				t.Errorf("expected %d buffered events, got %d", subscriberBuffer, received)
			}
			return
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	defer b.Close()

	id, ch := b.Subscribe()
	b.Unsubscribe(id)

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	b.Publish(EventFoodAdded, nil)

	// Unknown ids are ignored.
	b.Unsubscribe(9999)
}

func TestClose(t *testing.T) {
	b := New()

	_, ch := b.Subscribe()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after Close")
	}

	// All operations are no-ops after Close.
	b.Publish(EventFoodAdded, nil)
	if _, late := b.Subscribe(); late == nil {
		t.Fatal("Subscribe after Close must still return a channel")
	} else if _, ok := <-late; ok {
		t.Error("expected closed channel from Subscribe after Close")
	}
	b.Close()
}
