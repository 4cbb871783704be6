package ds

import "time"

// Topic groups articles by subject.
type Topic struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IsDelete    bool      `gorm:"type:boolean not null;default:false;index:idx_topics_is_delete" json:"-"`
	Slug        string    `gorm:"type:varchar(255) not null;uniqueIndex:idx_topics_slug" json:"slug"`
	Name        string    `gorm:"type:varchar(255) not null;index:idx_topics_name" json:"name"`
	Description string    `gorm:"type:varchar(512)" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
