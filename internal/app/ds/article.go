package ds

import "time"

// Article is a published or draft blog post. Content is raw markdown;
// rendering happens at read time.
type Article struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	IsDelete    bool       `gorm:"type:boolean not null;default:false;index:idx_articles_is_delete" json:"-"`
	Slug        string     `gorm:"type:varchar(255) not null;uniqueIndex:idx_articles_slug" json:"slug"`
	Title       string     `gorm:"type:varchar(255) not null;index:idx_articles_title" json:"title"`
	Description string     `gorm:"type:varchar(512)" json:"description"`
	Content     string     `gorm:"type:text" json:"content,omitempty"`
	CoverImage  string     `gorm:"type:varchar(512)" json:"coverImage,omitempty"`
	TopicSlug   string     `gorm:"type:varchar(255);index:idx_articles_topic" json:"topic,omitempty"`
	Published   bool       `gorm:"type:boolean not null;default:false;index:idx_articles_published" json:"published"`
	Featured    bool       `gorm:"type:boolean not null;default:false" json:"featured"`
	PublishedAt *time.Time `gorm:"index:idx_articles_published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ArticleDetail is the single-article read model: the stored fields plus
// the rendered HTML and table of contents.
type ArticleDetail struct {
	Article
	HTML string    `json:"html"`
	Toc  []TocItem `json:"toc"`
}

// TocItem mirrors markdown.TocItem for the API surface.
type TocItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}
