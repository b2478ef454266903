package repositories

import (
	"github.com/readstack/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Reads and mutations are recipient-scoped so one user can never touch
// another's notifications.
type NotificationRepository interface {
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(recipientID, notificationID uint) error
	MarkAllAsRead(recipientID uint) error
	DeleteNotification(recipientID, notificationID uint) error
	GetPreference(userID uint) (*models.NotificationPreference, error)
	GetPreferenceTx(tx *gorm.DB, userID uint) (*models.NotificationPreference, error)
	SavePreference(pref *models.NotificationPreference) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) DeleteNotification(recipientID, notificationID uint) error {
	res := r.db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetPreference returns the stored preference row, or the defaults (all
// notifications on, all emails off) when the user never saved one.
func (r *postgresNotificationRepository) GetPreference(userID uint) (*models.NotificationPreference, error) {
	return r.GetPreferenceTx(r.db, userID)
}

// GetPreferenceTx is GetPreference on an open transaction. Callers already
// inside a gorm Transaction must use this form: a read through the pool
// would wait for a second connection while the transaction holds one.
func (r *postgresNotificationRepository) GetPreferenceTx(tx *gorm.DB, userID uint) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	err := tx.Where("user_id = ?", userID).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		return DefaultPreference(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *postgresNotificationRepository) SavePreference(pref *models.NotificationPreference) error {
	var existing models.NotificationPreference
	err := r.db.Where("user_id = ?", pref.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(pref).Error
	}
	if err != nil {
		return err
	}
	pref.ID = existing.ID
	return r.db.Save(pref).Error
}

// DefaultPreference is the behavior for users without a saved row
func DefaultPreference(userID uint) *models.NotificationPreference {
	return &models.NotificationPreference{
		UserID:          userID,
		NotifyOnFollow:  true,
		NotifyOnLike:    true,
		NotifyOnComment: true,
	}
}
