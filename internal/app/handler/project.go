package handler

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/tablequery"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const projectsEndpoint = "/projects"

var projectFilterFields = []string{"published", "featured", "tech"}

type ProjectHandler struct {
	repo *repository.Repository
}

func NewProjectHandler(repo *repository.Repository) *ProjectHandler {
	return &ProjectHandler{
		repo: repo,
	}
}

type CreateProjectRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	CoverImage  string `json:"coverImage"`
	Tech        string `json:"tech"`
	DemoURL     string `json:"demoUrl"`
	SourceURL   string `json:"sourceUrl"`
}

type UpdateProjectRequest struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	CoverImage  *string `json:"coverImage"`
	Tech        *string `json:"tech"`
	DemoURL     *string `json:"demoUrl"`
	SourceURL   *string `json:"sourceUrl"`
}

// GetProjects godoc
// @Summary List projects
// @Description Paginated project list with search, filters and sorting
// @Tags Projects
// @Produce json
// @Param offset query int false "Row offset"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Search in title and description"
// @Param sort query string false "Sort field, prefix with - for descending"
// @Param published query bool false "Filter by publication state"
// @Param featured query bool false "Filter by featured flag"
// @Param tech query []string false "Filter by stack entries"
// @Success 200 {object} ds.ListResponse
// @Failure 500 {object} map[string]string
// @Router /projects [get]
func (h *ProjectHandler) GetProjects(ctx *gin.Context) {
	q := tablequery.ParseListQuery(ctx.Request.URL.Query(), projectFilterFields)
	q.Endpoint = projectsEndpoint

	respondList(ctx, h.repo, q, func() (interface{}, int64, error) {
		return h.repo.Project.ListProjects(q)
	})
}

// GetProject godoc
// @Summary Get project details
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} ds.Project
// @Failure 404 {object} map[string]string
// @Router /projects/{slug} [get]
func (h *ProjectHandler) GetProject(ctx *gin.Context) {
	project, err := h.repo.Project.GetProjectBySlug(ctx.Param("slug"))
	if err != nil {
		logrus.Error("Failed to get project: ", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// CreateProject godoc
// @Summary Create project
// @Description Create a new project (moderator only)
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	project := &ds.Project{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Tech:        req.Tech,
		DemoURL:     req.DemoURL,
		SourceURL:   req.SourceURL,
	}

	if err := h.repo.Project.CreateProject(project); err != nil {
		logrus.Error("Failed to create project: ", err)
		actionError(ctx, http.StatusBadRequest, "Failed to create project")
		return
	}

	invalidateList(ctx, h.repo, projectsEndpoint)
	actionOK(ctx, http.StatusCreated, project, "Project created")
}

// UpdateProject godoc
// @Summary Update project
// @Description Partial project update (moderator only)
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to update"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.Tech != nil {
		updates["tech"] = *req.Tech
	}
	if req.DemoURL != nil {
		updates["demo_url"] = *req.DemoURL
	}
	if req.SourceURL != nil {
		updates["source_url"] = *req.SourceURL
	}
	if len(updates) == 0 {
		actionError(ctx, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.repo.Project.UpdateProject(id, updates); err != nil {
		logrus.Error("Failed to update project: ", err)
		actionError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	invalidateList(ctx, h.repo, projectsEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Project updated")
}

// DeleteProject godoc
// @Summary Delete project
// @Description Soft-delete a project (moderator only)
// @Tags Projects
// @Security BearerAuth
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := h.repo.Project.DeleteProject(id); err != nil {
		logrus.Error("Failed to delete project: ", err)
		actionError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	invalidateList(ctx, h.repo, projectsEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Project deleted")
}

// SetProjectPublished godoc
// @Summary Publish or unpublish project
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body SetFlagRequest true "Target state"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /projects/{id}/publish [put]
func (h *ProjectHandler) SetProjectPublished(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req SetFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.repo.Project.SetProjectPublished(id, *req.Value); err != nil {
		logrus.Error("Failed to set project publication: ", err)
		actionError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	invalidateList(ctx, h.repo, projectsEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Project publication updated")
}

// SetProjectFeatured godoc
// @Summary Feature or unfeature project
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body SetFlagRequest true "Target state"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /projects/{id}/feature [put]
func (h *ProjectHandler) SetProjectFeatured(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req SetFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.repo.Project.SetProjectFeatured(id, *req.Value); err != nil {
		logrus.Error("Failed to set project featured flag: ", err)
		actionError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	invalidateList(ctx, h.repo, projectsEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Project featured flag updated")
}

// DuplicateProject godoc
// @Summary Duplicate project
// @Description Clone a project as an unpublished draft (moderator only)
// @Tags Projects
// @Security BearerAuth
// @Produce json
// @Param id path int true "Project ID"
// @Success 201 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /projects/{id}/duplicate [post]
func (h *ProjectHandler) DuplicateProject(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	clone, err := h.repo.Project.DuplicateProject(id)
	if err != nil {
		logrus.Error("Failed to duplicate project: ", err)
		actionError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	invalidateList(ctx, h.repo, projectsEndpoint)
	actionOK(ctx, http.StatusCreated, clone, "Project duplicated")
}
