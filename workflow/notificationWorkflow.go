package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/utils"
	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// PublishFunc fans a sent notification out to tenant-facing consumers and
// returns the broker message id.
type PublishFunc func(ctx context.Context, msg config.NotificationMessage) (string, error)

type NotificationDispatcher struct {
	Logger  *logrus.Logger
	Publish PublishFunc
	// Topic empty disables fan-out; the notification is still marked sent.
	Topic   string
	LockTTL time.Duration
}

func NewNotificationDispatcher() *NotificationDispatcher {
	return &NotificationDispatcher{
		Logger:  config.GetLogger(),
		Publish: config.PublishNotification,
		Topic:   config.NotificationTopic(),
		LockTTL: 30 * time.Second,
	}
}

// Send marks the notification sent and publishes it. The redis lock only
// narrows the window for duplicate publishes across instances; the
// conditional update in models.SendNotification is what rejects a second send.
func (d *NotificationDispatcher) Send(ctx context.Context, id int, recipientCount int) (*models.AdminNotification, error) {
	lock := d.obtainLock(ctx, id)
	defer func() {
		if lock == nil {
			return
		}
		if err := lock.Release(ctx); err != nil {
			d.Logger.WithFields(logrus.Fields{
				"field":           "NotificationDispatcher.Send",
				"notification_id": id,
			}).Warn("failed to release redis lock: " + err.Error())
		}
	}()

	notification, err := models.SendNotification(ctx, id, recipientCount)
	if err != nil {
		return nil, err
	}

	if d.Topic == "" || d.Publish == nil {
		return notification, nil
	}
	msg := buildNotificationMessage(ctx, notification)
	messageId, err := d.Publish(ctx, msg)
	if err != nil {
		// fan-out is best effort; the notification stays sent
		config.LogError(d.Logger, "workflow", "NotificationDispatcher.Send", "publish", msg, err)
		return notification, nil
	}
	d.Logger.WithFields(logrus.Fields{
		"notification_id": notification.ID,
		"message_id":      messageId,
		"topic":           d.Topic,
	}).Info("notification published")
	return notification, nil
}

func (d *NotificationDispatcher) obtainLock(ctx context.Context, id int) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, fmt.Sprintf("lock:notification:%d", id), d.LockTTL, nil)
	if err == redislock.ErrNotObtained {
		d.Logger.WithFields(logrus.Fields{
			"field":           "NotificationDispatcher.Send",
			"notification_id": id,
		}).Warn("could not obtain redis lock; proceeding without redis lock")
		return nil
	} else if err != nil {
		d.Logger.WithFields(logrus.Fields{
			"field":           "NotificationDispatcher.Send",
			"notification_id": id,
		}).Warn("error obtaining redis lock; proceeding without redis lock: " + err.Error())
		return nil
	}
	return lock
}

func buildNotificationMessage(ctx context.Context, n *models.AdminNotification) config.NotificationMessage {
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	msg := config.NotificationMessage{
		NotificationId: n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		Target:         string(n.Target),
		TargetValue:    utils.DereferencePtr(n.TargetValue, ""),
		RecipientCount: n.RecipientCount,
		CorrelationId:  correlationId,
	}
	if n.SentAt != nil {
		msg.SentAt = *n.SentAt
	}
	return msg
}
