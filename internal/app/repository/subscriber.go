package repository

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/tablequery"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

var subscriberSortColumns = map[string]string{
	"email":        "email",
	"subscribedAt": "subscribed_at",
}

// ListSubscribers returns one page of subscribers with the total
// matching count.
func (r *SubscriberRepository) ListSubscribers(q tablequery.ListQuery) ([]ds.Subscriber, int64, error) {
	query := r.db.Model(&ds.Subscriber{}).Where("is_delete = ?", false)

	if q.Search != "" {
		query = query.Where("LOWER(email) LIKE LOWER(?)", "%"+q.Search+"%")
	}

	if verified, ok := filterBool(q.Filter, "verified"); ok {
		query = query.Where("verified = ?", verified)
	}
	if rng, ok := filterDateRange(q.Filter, "subscribedDate"); ok {
		if !rng.Start.IsZero() {
			query = query.Where("subscribed_at >= ?", rng.Start)
		}
		if !rng.End.IsZero() {
			query = query.Where("subscribed_at < ?", rng.End.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, q.Sort, subscriberSortColumns, "subscribed_at DESC")

	var subscribers []ds.Subscriber
	err := applyPage(query, q).Find(&subscribers).Error
	if err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}

// CreateSubscriber registers a new signup. A soft-deleted row with the
// same email is revived instead of violating the unique index.
func (r *SubscriberRepository) CreateSubscriber(subscriber *ds.Subscriber) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing ds.Subscriber
		err := tx.Where("email = ?", subscriber.Email).First(&existing).Error
		if err == nil {
			if !existing.IsDelete {
				return fmt.Errorf("subscriber with email %s already exists", subscriber.Email)
			}
			updates := map[string]interface{}{
				"is_delete":     false,
				"verified":      false,
				"subscribed_at": time.Now(),
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
			*subscriber = existing
			subscriber.IsDelete = false
			subscriber.Verified = false
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		subscriber.IsDelete = false
		if subscriber.SubscribedAt.IsZero() {
			subscriber.SubscribedAt = time.Now()
		}
		return tx.Create(subscriber).Error
	})
}

// SetVerified toggles the verified flag.
func (r *SubscriberRepository) SetVerified(id uint, verified bool) error {
	result := r.db.Model(&ds.Subscriber{}).Where("id = ? AND is_delete = ?", id, false).Update("verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscriber with id %d not found", id)
	}
	return nil
}

// UnsubscribeByEmail soft-deletes the signup matching the email. The
// public unsubscribe endpoint treats unknown emails as already gone.
func (r *SubscriberRepository) UnsubscribeByEmail(email string) error {
	return r.db.Model(&ds.Subscriber{}).
		Where("email = ? AND is_delete = ?", email, false).
		Update("is_delete", true).Error
}

// DeleteSubscriber soft-deletes a subscriber.
func (r *SubscriberRepository) DeleteSubscriber(id uint) error {
	result := r.db.Model(&ds.Subscriber{}).Where("id = ? AND is_delete = ?", id, false).Update("is_delete", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscriber with id %d not found", id)
	}
	return nil
}
