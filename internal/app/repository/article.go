package repository

import (
	"Backend-CMS/internal/app/config"
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/tablequery"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

type ArticleRepository struct {
	db          *gorm.DB
	minioClient *minio.Client
	config      *config.Config
}

func NewArticleRepository(db *gorm.DB, minioClient *minio.Client, cfg *config.Config) *ArticleRepository {
	return &ArticleRepository{
		db:          db,
		minioClient: minioClient,
		config:      cfg,
	}
}

var articleSortColumns = map[string]string{
	"title":       "title",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
}

// ListArticles returns one page of articles with the total matching count.
// Search matches title and description; when the descriptor carries a
// search, its filter is expected to be empty already.
func (r *ArticleRepository) ListArticles(q tablequery.ListQuery) ([]ds.Article, int64, error) {
	query := r.db.Model(&ds.Article{}).Where("is_delete = ?", false)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if topic, ok := filterString(q.Filter, "topic"); ok {
		query = query.Where("topic_slug = ?", topic)
	}
	if published, ok := filterBool(q.Filter, "published"); ok {
		query = query.Where("published = ?", published)
	}
	if featured, ok := filterBool(q.Filter, "featured"); ok {
		query = query.Where("featured = ?", featured)
	}
	if rng, ok := filterDateRange(q.Filter, "publishedDate"); ok {
		if !rng.Start.IsZero() {
			query = query.Where("published_at >= ?", rng.Start)
		}
		if !rng.End.IsZero() {
			query = query.Where("published_at < ?", rng.End.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, q.Sort, articleSortColumns, "created_at DESC")

	var articles []ds.Article
	err := applyPage(query, q).Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// GetArticleBySlug returns one article by its slug.
func (r *ArticleRepository) GetArticleBySlug(slug string) (ds.Article, error) {
	article := ds.Article{}
	err := r.db.Where("slug = ? AND is_delete = ?", slug, false).First(&article).Error
	if err != nil {
		return ds.Article{}, err
	}
	return article, nil
}

// GetArticleByID returns one article by its numeric id.
func (r *ArticleRepository) GetArticleByID(id uint) (ds.Article, error) {
	article := ds.Article{}
	err := r.db.Where("id = ? AND is_delete = ?", id, false).First(&article).Error
	if err != nil {
		return ds.Article{}, err
	}
	return article, nil
}

// CreateArticle creates an article.
func (r *ArticleRepository) CreateArticle(article *ds.Article) error {
	article.IsDelete = false
	return r.db.Create(article).Error
}

// UpdateArticle applies partial updates to an article.
func (r *ArticleRepository) UpdateArticle(id uint, updates map[string]interface{}) error {
	result := r.db.Model(&ds.Article{}).Where("id = ? AND is_delete = ?", id, false).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("article with id %d not found or deleted", id)
	}
	return nil
}

// DeleteArticle soft-deletes an article.
func (r *ArticleRepository) DeleteArticle(id uint) error {
	result := r.db.Model(&ds.Article{}).Where("id = ? AND is_delete = ?", id, false).Update("is_delete", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("article with id %d not found", id)
	}
	return nil
}

// SetPublished toggles publication. Publishing for the first time stamps
// published_at; unpublishing keeps the stamp.
func (r *ArticleRepository) SetPublished(id uint, published bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var article ds.Article
		if err := tx.Where("id = ? AND is_delete = ?", id, false).First(&article).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"published": published}
		if published && article.PublishedAt == nil {
			now := time.Now()
			updates["published_at"] = &now
		}

		return tx.Model(&article).Updates(updates).Error
	})
}

// SetFeatured toggles the featured flag.
func (r *ArticleRepository) SetFeatured(id uint, featured bool) error {
	result := r.db.Model(&ds.Article{}).Where("id = ? AND is_delete = ?", id, false).Update("featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("article with id %d not found", id)
	}
	return nil
}

// DuplicateArticle clones an article as an unpublished draft with a
// derived unique slug.
func (r *ArticleRepository) DuplicateArticle(id uint) (ds.Article, error) {
	var clone ds.Article
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var original ds.Article
		if err := tx.Where("id = ? AND is_delete = ?", id, false).First(&original).Error; err != nil {
			return err
		}

		slug, err := nextCopySlug(tx, &ds.Article{}, original.Slug)
		if err != nil {
			return err
		}

		clone = original
		clone.ID = 0
		clone.Slug = slug
		clone.Title = original.Title + " (clone)"
		clone.Published = false
		clone.Featured = false
		clone.PublishedAt = nil

		return tx.Create(&clone).Error
	})
	if err != nil {
		return ds.Article{}, err
	}
	return clone, nil
}

// nextCopySlug finds the first free "<slug>-clone", "<slug>-clone-2", ...
func nextCopySlug(tx *gorm.DB, model interface{}, slug string) (string, error) {
	candidate := slug + "-clone"
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-clone-%d", slug, i)
	}
}
