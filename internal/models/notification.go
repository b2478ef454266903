package models

import "time"

// Notification verbs
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification target types
const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetUser    = "user"
)

// Notification represents a user notification
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index:idx_notif_recipient_created;index:idx_notif_recipient_read"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Verb        string    `json:"verb" gorm:"size:10"`
	TargetType  string    `json:"target_type" gorm:"size:20"`
	TargetID    uint      `json:"target_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index:idx_notif_recipient_read"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_notif_recipient_created"`
}

// NotificationPreference controls which activity creates a notification for
// a user, and which additionally sends an email. Missing row means all
// notifications on, all emails off.
type NotificationPreference struct {
	ID     uint `json:"-" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex"`

	// No gorm defaults here: a zero-valued field with a default tag is
	// skipped on insert, which would resurrect "true" for a preference
	// the user just turned off. Missing-row defaults live in the
	// repository instead.
	NotifyOnFollow  bool `json:"notify_on_follow"`
	NotifyOnLike    bool `json:"notify_on_like"`
	NotifyOnComment bool `json:"notify_on_comment"`

	EmailOnFollow  bool `json:"email_on_follow"`
	EmailOnLike    bool `json:"email_on_like"`
	EmailOnComment bool `json:"email_on_comment"`
}

type UpdateNotificationPreferenceRequest struct {
	NotifyOnFollow  *bool `json:"notify_on_follow,omitempty"`
	NotifyOnLike    *bool `json:"notify_on_like,omitempty"`
	NotifyOnComment *bool `json:"notify_on_comment,omitempty"`
	EmailOnFollow   *bool `json:"email_on_follow,omitempty"`
	EmailOnLike     *bool `json:"email_on_like,omitempty"`
	EmailOnComment  *bool `json:"email_on_comment,omitempty"`
}
