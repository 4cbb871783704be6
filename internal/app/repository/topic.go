package repository

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/tablequery"
	"fmt"

	"gorm.io/gorm"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

var topicSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ListTopics returns one page of topics with the total matching count.
func (r *TopicRepository) ListTopics(q tablequery.ListQuery) ([]ds.Topic, int64, error) {
	query := r.db.Model(&ds.Topic{}).Where("is_delete = ?", false)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, q.Sort, topicSortColumns, "name ASC")

	var topics []ds.Topic
	err := applyPage(query, q).Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

// GetTopicBySlug returns one topic by its slug.
func (r *TopicRepository) GetTopicBySlug(slug string) (ds.Topic, error) {
	topic := ds.Topic{}
	err := r.db.Where("slug = ? AND is_delete = ?", slug, false).First(&topic).Error
	if err != nil {
		return ds.Topic{}, err
	}
	return topic, nil
}

// CreateTopic creates a topic.
func (r *TopicRepository) CreateTopic(topic *ds.Topic) error {
	topic.IsDelete = false
	return r.db.Create(topic).Error
}

// UpdateTopic applies partial updates to a topic.
func (r *TopicRepository) UpdateTopic(id uint, updates map[string]interface{}) error {
	result := r.db.Model(&ds.Topic{}).Where("id = ? AND is_delete = ?", id, false).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("topic with id %d not found or deleted", id)
	}
	return nil
}

// DeleteTopic soft-deletes a topic and detaches its articles.
func (r *TopicRepository) DeleteTopic(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var topic ds.Topic
		if err := tx.Where("id = ? AND is_delete = ?", id, false).First(&topic).Error; err != nil {
			return err
		}

		err := tx.Model(&ds.Article{}).Where("topic_slug = ?", topic.Slug).Update("topic_slug", "").Error
		if err != nil {
			return err
		}

		return tx.Model(&topic).Update("is_delete", true).Error
	})
}
