package app

import (
	"context"
	"log"
	"time"

	"weighttrack/internal/domain"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }

// notifier publishes change events on behalf of the services. Failures are
// logged; a mutation that already succeeded is never reported as failed.
type notifier struct {
	pub domain.EventPublisher
}

func newNotifier(pub domain.EventPublisher) notifier {
	if pub == nil {
		pub = nopPublisher{}
	}
	return notifier{pub: pub}
}

func (n notifier) notify(ctx context.Context, kind string, userID, personID, entityID int64) {
	e := domain.Event{
		Kind:     kind,
		UserID:   userID,
		PersonID: personID,
		EntityID: entityID,
		At:       time.Now().UTC(),
	}
	if err := n.pub.Publish(ctx, e); err != nil {
		log.Printf("[events] publish %s person=%d entity=%d: %v", kind, personID, entityID, err)
	}
}
