package services

import (
	"context"
	"time"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/common/publisher"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

// NotificationDispatcherService forwards terminal transitions to the
// notification topic. Strictly one-way: consumers (voice announcements,
// receipt rendering) have no influence on orchestration, and a publish
// failure never fails the transaction.
type NotificationDispatcherService interface {
	Watch(o *Orchestrator)
}

type notificationDispatcher struct {
	srv *Services
}

func newNotificationDispatcher(srv *Services) NotificationDispatcherService {
	return &notificationDispatcher{srv: srv}
}

// Watch subscribes to the orchestrator and publishes its terminal events
// until the subscription closes. Runs on its own goroutine.
func (d *notificationDispatcher) Watch(o *Orchestrator) {
	if d.srv.notificationPub == nil {
		return
	}

	ch, _ := o.Subscribe()
	go func() {
		for change := range ch {
			if !change.To.Terminal() {
				continue
			}
			d.publish(o, change)
		}
	}()
}

func (d *notificationDispatcher) publish(o *Orchestrator, change models.StateChange) {
	// Terminal states are immutable, so reading the request after the
	// transition is race-free.
	req := o.Request()

	event := models.NotificationEvent{
		RequestID:  change.RequestID,
		UserID:     req.UserID,
		Identifier: req.PrimaryIdentifier,
		Phase:      change.To,
		At:         change.At,
	}
	if req.HasAmount() {
		event.Amount = req.Amount.Decimal.String()
	}
	if change.State.Provider != nil {
		event.Category = change.State.Provider.Category
		event.Provider = change.State.Provider.DisplayName
	}
	if change.State.Result != nil {
		event.TransactionID = change.State.Result.TransactionID
		if change.State.Result.Failure != nil {
			event.FailureKind = change.State.Result.Failure.Kind
			event.Message = change.State.Result.Failure.Message
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.srv.notificationPub.Publish(ctx, event, publisher.WithKey(change.RequestID)); err != nil {
		log.Warn(ctx, "[NOTIFICATION-DISPATCHER] publish failed",
			log.String("requestId", change.RequestID), log.Err(err))
	}
}
