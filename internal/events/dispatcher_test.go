package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventProjectCreated, func(_ context.Context, e Event) error {
		got = append(got, "first")
		return errors.New("handler failure must not stop delivery")
	})
	d.Subscribe(EventProjectCreated, func(_ context.Context, e Event) error {
		got = append(got, "second")
		return nil
	})
	d.Subscribe(EventProjectDeleted, func(_ context.Context, e Event) error {
		got = append(got, "other-type")
		return nil
	})

	event := NewEvent(EventProjectCreated, "u-1", ProjectCreatedPayload{ProjectID: "p-1"})
	if event.ID == "" || event.Timestamp.IsZero() {
		t.Error("NewEvent must stamp id and timestamp")
	}

	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("delivery order wrong: %v", got)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), NewEvent(EventTaskAdded, "", nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
