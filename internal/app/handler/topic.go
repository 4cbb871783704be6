package handler

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/tablequery"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const topicsEndpoint = "/topics"

type TopicHandler struct {
	repo *repository.Repository
}

func NewTopicHandler(repo *repository.Repository) *TopicHandler {
	return &TopicHandler{
		repo: repo,
	}
}

type CreateTopicRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateTopicRequest struct {
	Slug        *string `json:"slug"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetTopics godoc
// @Summary List topics
// @Description Paginated topic list with search and sorting
// @Tags Topics
// @Produce json
// @Param offset query int false "Row offset"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Search in name and description"
// @Param sort query string false "Sort field, prefix with - for descending"
// @Success 200 {object} ds.ListResponse
// @Failure 500 {object} map[string]string
// @Router /topics [get]
func (h *TopicHandler) GetTopics(ctx *gin.Context) {
	q := tablequery.ParseListQuery(ctx.Request.URL.Query(), nil)
	q.Endpoint = topicsEndpoint

	respondList(ctx, h.repo, q, func() (interface{}, int64, error) {
		return h.repo.Topic.ListTopics(q)
	})
}

// GetTopic godoc
// @Summary Get topic details
// @Tags Topics
// @Produce json
// @Param slug path string true "Topic slug"
// @Success 200 {object} ds.Topic
// @Failure 404 {object} map[string]string
// @Router /topics/{slug} [get]
func (h *TopicHandler) GetTopic(ctx *gin.Context) {
	topic, err := h.repo.Topic.GetTopicBySlug(ctx.Param("slug"))
	if err != nil {
		logrus.Error("Failed to get topic: ", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
		return
	}

	ctx.JSON(http.StatusOK, topic)
}

// CreateTopic godoc
// @Summary Create topic
// @Description Create a new topic (moderator only)
// @Tags Topics
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateTopicRequest true "Topic data"
// @Success 201 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Router /topics [post]
func (h *TopicHandler) CreateTopic(ctx *gin.Context) {
	var req CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	topic := &ds.Topic{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.repo.Topic.CreateTopic(topic); err != nil {
		logrus.Error("Failed to create topic: ", err)
		actionError(ctx, http.StatusBadRequest, "Failed to create topic")
		return
	}

	invalidateList(ctx, h.repo, topicsEndpoint)
	actionOK(ctx, http.StatusCreated, topic, "Topic created")
}

// UpdateTopic godoc
// @Summary Update topic
// @Description Partial topic update (moderator only)
// @Tags Topics
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param request body UpdateTopicRequest true "Fields to update"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /topics/{id} [put]
func (h *TopicHandler) UpdateTopic(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req UpdateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		actionError(ctx, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.repo.Topic.UpdateTopic(id, updates); err != nil {
		logrus.Error("Failed to update topic: ", err)
		actionError(ctx, http.StatusNotFound, "Topic not found")
		return
	}

	invalidateList(ctx, h.repo, topicsEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Topic updated")
}

// DeleteTopic godoc
// @Summary Delete topic
// @Description Soft-delete a topic and detach its articles (moderator only)
// @Tags Topics
// @Security BearerAuth
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /topics/{id} [delete]
func (h *TopicHandler) DeleteTopic(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := h.repo.Topic.DeleteTopic(id); err != nil {
		logrus.Error("Failed to delete topic: ", err)
		actionError(ctx, http.StatusNotFound, "Topic not found")
		return
	}

	// Detaching articles changes their rows too.
	invalidateList(ctx, h.repo, topicsEndpoint)
	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Topic deleted")
}
