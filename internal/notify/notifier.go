// Package notify creates notifications for like, comment and follow
// activity. Creation is an explicit synchronous call from the write path
// and runs on the caller's transaction, so a failed write never leaves a
// stray notification behind (and vice versa). There is exactly one
// consumer, so no event bus sits in between.
package notify

import (
	"context"
	"fmt"

	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/repositories"
	"github.com/readstack/backend/pkg/logging"
	"gorm.io/gorm"
)

// Event describes one notifiable activity
type Event struct {
	Recipient  *models.User
	Actor      *models.User
	Verb       string // models.NotificationFollow / NotificationLike / NotificationComment
	TargetType string
	TargetID   uint
}

// Notifier writes notification rows and optionally emails the recipient
type Notifier struct {
	notifications repositories.NotificationRepository
	mailer        Mailer
}

// NewNotifier creates a new Notifier. mailer may be a disabled mailer; it
// must not be nil.
func NewNotifier(notifRepo repositories.NotificationRepository, mailer Mailer) *Notifier {
	return &Notifier{notifications: notifRepo, mailer: mailer}
}

// Notify records ev on tx; both the preference read and the notification
// insert run on that transaction. Self-actions and verbs the recipient has
// muted are skipped silently. When the recipient opted into email for the verb,
// a plain-text email goes out as well; email failure is logged and never
// fails the surrounding transaction.
func (n *Notifier) Notify(ctx context.Context, tx *gorm.DB, ev Event) error {
	if ev.Recipient.ID == ev.Actor.ID {
		return nil
	}

	pref, err := n.notifications.GetPreferenceTx(tx, ev.Recipient.ID)
	if err != nil {
		return err
	}
	if !wantsNotification(pref, ev.Verb) {
		return nil
	}

	notification := &models.Notification{
		RecipientID: ev.Recipient.ID,
		ActorID:     ev.Actor.ID,
		Verb:        ev.Verb,
		TargetType:  ev.TargetType,
		TargetID:    ev.TargetID,
		Message:     message(ev.Actor.Username, ev.Verb),
	}
	if err := tx.Create(notification).Error; err != nil {
		return err
	}

	if wantsEmail(pref, ev.Verb) {
		subject := "New activity on readstack"
		if err := n.mailer.Send(ev.Recipient.Email, subject, notification.Message); err != nil {
			logging.Ctx(ctx).Error().Err(err).
				Uint("recipient_id", ev.Recipient.ID).
				Str("verb", ev.Verb).
				Msg("sending notification email")
		}
	}
	return nil
}

func message(actor, verb string) string {
	switch verb {
	case models.NotificationFollow:
		return fmt.Sprintf("%s started following you", actor)
	case models.NotificationLike:
		return fmt.Sprintf("%s liked your post", actor)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", actor)
	default:
		return fmt.Sprintf("%s interacted with you", actor)
	}
}

func wantsNotification(pref *models.NotificationPreference, verb string) bool {
	switch verb {
	case models.NotificationFollow:
		return pref.NotifyOnFollow
	case models.NotificationLike:
		return pref.NotifyOnLike
	case models.NotificationComment:
		return pref.NotifyOnComment
	default:
		return true
	}
}

func wantsEmail(pref *models.NotificationPreference, verb string) bool {
	switch verb {
	case models.NotificationFollow:
		return pref.EmailOnFollow
	case models.NotificationLike:
		return pref.EmailOnLike
	case models.NotificationComment:
		return pref.EmailOnComment
	default:
		return false
	}
}
