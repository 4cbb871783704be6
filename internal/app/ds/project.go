package ds

import "time"

// Project is a portfolio entry.
type Project struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IsDelete    bool      `gorm:"type:boolean not null;default:false;index:idx_projects_is_delete" json:"-"`
	Slug        string    `gorm:"type:varchar(255) not null;uniqueIndex:idx_projects_slug" json:"slug"`
	Title       string    `gorm:"type:varchar(255) not null;index:idx_projects_title" json:"title"`
	Description string    `gorm:"type:varchar(512)" json:"description"`
	Content     string    `gorm:"type:text" json:"content,omitempty"`
	CoverImage  string    `gorm:"type:varchar(512)" json:"coverImage,omitempty"`
	// Tech is a comma-separated stack list ("go,postgres,redis"); the
	// list endpoint filters with a substring match per entry.
	Tech      string    `gorm:"type:varchar(512)" json:"tech,omitempty"`
	DemoURL   string    `gorm:"type:varchar(512)" json:"demoUrl,omitempty"`
	SourceURL string    `gorm:"type:varchar(512)" json:"sourceUrl,omitempty"`
	Published bool      `gorm:"type:boolean not null;default:false;index:idx_projects_published" json:"published"`
	Featured  bool      `gorm:"type:boolean not null;default:false" json:"featured"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
