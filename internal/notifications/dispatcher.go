package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/observability"
	"aurasocial/internal/repository"

	"github.com/google/uuid"
)

// Outcome reports what happened to a dispatched event.
type Outcome string

const (
	OutcomeStored  Outcome = "stored"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Publisher pushes a stored notification to live subscribers.
type Publisher interface {
	PublishUser(ctx context.Context, address string, payload string) error
}

// RealtimeMessage is the JSON frame sent to live subscribers.
type RealtimeMessage struct {
	ID      string              `json:"id"`
	Type    string              `json:"type"`
	Payload models.Notification `json:"payload"`
}

// Dispatcher appends notifications to inboxes. Delivery is at-most-once:
// failures are logged and counted, never returned or retried.
type Dispatcher struct {
	repo      repository.NotificationRepository
	publisher Publisher
}

// NewDispatcher creates a Dispatcher. publisher may be nil to disable live push.
func NewDispatcher(repo repository.NotificationRepository, publisher Publisher) *Dispatcher {
	return &Dispatcher{repo: repo, publisher: publisher}
}

// Dispatch stores ev for its recipient unless the actor is the recipient.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) Outcome {
	if d == nil || d.repo == nil {
		return OutcomeSkipped
	}
	if ev.Recipient == "" || ev.Recipient == ev.Actor {
		observability.NotificationFanoutTotal.WithLabelValues(string(ev.Type), observability.ResultSkipped).Inc()
		return OutcomeSkipped
	}

	n := &models.Notification{
		UserAddress: ev.Recipient,
		Type:        ev.Type,
		FromAddress: ev.Actor,
		PostID:      ev.PostID,
		CommentID:   ev.CommentID,
		Message:     ev.Message,
	}

	if err := d.repo.Create(ctx, n); err != nil {
		observability.NotificationFanoutTotal.WithLabelValues(string(ev.Type), observability.ResultError).Inc()
		middleware.Logger.WarnContext(ctx, "notification fan-out failed",
			slog.String("type", string(ev.Type)),
			slog.String("recipient", ev.Recipient),
			slog.String("error", err.Error()),
		)
		return OutcomeFailed
	}

	observability.NotificationFanoutTotal.WithLabelValues(string(ev.Type), observability.ResultOK).Inc()
	middleware.Logger.InfoContext(ctx, "notification created",
		slog.String("type", string(ev.Type)),
		slog.String("recipient", ev.Recipient),
	)

	d.publish(ctx, n)
	return OutcomeStored
}

func (d *Dispatcher) publish(ctx context.Context, n *models.Notification) {
	if d.publisher == nil {
		return
	}

	payload, err := json.Marshal(RealtimeMessage{
		ID:      uuid.NewString(),
		Type:    "notification",
		Payload: *n,
	})
	if err == nil {
		err = d.publisher.PublishUser(ctx, n.UserAddress, string(payload))
	}

	observability.RealtimePublishTotal.WithLabelValues(observability.ResultLabel(err)).Inc()
	if err != nil {
		middleware.Logger.WarnContext(ctx, "realtime publish failed",
			slog.String("recipient", n.UserAddress),
			slog.String("error", err.Error()),
		)
	}
}
