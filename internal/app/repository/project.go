package repository

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/tablequery"
	"fmt"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var projectSortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ListProjects returns one page of projects with the total matching
// count. The tech filter may carry several entries; a project matches
// when its comma-separated stack contains every requested one.
func (r *ProjectRepository) ListProjects(q tablequery.ListQuery) ([]ds.Project, int64, error) {
	query := r.db.Model(&ds.Project{}).Where("is_delete = ?", false)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if published, ok := filterBool(q.Filter, "published"); ok {
		query = query.Where("published = ?", published)
	}
	if featured, ok := filterBool(q.Filter, "featured"); ok {
		query = query.Where("featured = ?", featured)
	}
	for _, tech := range filterStrings(q.Filter, "tech") {
		query = query.Where("LOWER(tech) LIKE LOWER(?)", "%"+tech+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, q.Sort, projectSortColumns, "created_at DESC")

	var projects []ds.Project
	err := applyPage(query, q).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetProjectBySlug returns one project by its slug.
func (r *ProjectRepository) GetProjectBySlug(slug string) (ds.Project, error) {
	project := ds.Project{}
	err := r.db.Where("slug = ? AND is_delete = ?", slug, false).First(&project).Error
	if err != nil {
		return ds.Project{}, err
	}
	return project, nil
}

// CreateProject creates a project.
func (r *ProjectRepository) CreateProject(project *ds.Project) error {
	project.IsDelete = false
	return r.db.Create(project).Error
}

// UpdateProject applies partial updates to a project.
func (r *ProjectRepository) UpdateProject(id uint, updates map[string]interface{}) error {
	result := r.db.Model(&ds.Project{}).Where("id = ? AND is_delete = ?", id, false).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project with id %d not found or deleted", id)
	}
	return nil
}

// DeleteProject soft-deletes a project.
func (r *ProjectRepository) DeleteProject(id uint) error {
	result := r.db.Model(&ds.Project{}).Where("id = ? AND is_delete = ?", id, false).Update("is_delete", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project with id %d not found", id)
	}
	return nil
}

// DuplicateProject clones a project as an unpublished draft with a
// derived unique slug.
func (r *ProjectRepository) DuplicateProject(id uint) (ds.Project, error) {
	var clone ds.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var original ds.Project
		if err := tx.Where("id = ? AND is_delete = ?", id, false).First(&original).Error; err != nil {
			return err
		}

		slug, err := nextCopySlug(tx, &ds.Project{}, original.Slug)
		if err != nil {
			return err
		}

		clone = original
		clone.ID = 0
		clone.Slug = slug
		clone.Title = original.Title + " (clone)"
		clone.Published = false
		clone.Featured = false

		return tx.Create(&clone).Error
	})
	if err != nil {
		return ds.Project{}, err
	}
	return clone, nil
}

// SetProjectPublished toggles publication.
func (r *ProjectRepository) SetProjectPublished(id uint, published bool) error {
	result := r.db.Model(&ds.Project{}).Where("id = ? AND is_delete = ?", id, false).Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project with id %d not found", id)
	}
	return nil
}

// SetProjectFeatured toggles the featured flag.
func (r *ProjectRepository) SetProjectFeatured(id uint, featured bool) error {
	result := r.db.Model(&ds.Project{}).Where("id = ? AND is_delete = ?", id, false).Update("featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project with id %d not found", id)
	}
	return nil
}
