package handler

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/markdown"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/tablequery"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const articlesEndpoint = "/articles"

var articleFilterFields = []string{"topic", "published", "featured", "publishedDate"}

type ArticleHandler struct {
	repo *repository.Repository
}

func NewArticleHandler(repo *repository.Repository) *ArticleHandler {
	return &ArticleHandler{
		repo: repo,
	}
}

type CreateArticleRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	CoverImage  string `json:"coverImage"`
	Topic       string `json:"topic"`
}

type UpdateArticleRequest struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	CoverImage  *string `json:"coverImage"`
	Topic       *string `json:"topic"`
}

type SetFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// GetArticles godoc
// @Summary List articles
// @Description Paginated article list with search, filters and sorting
// @Tags Articles
// @Produce json
// @Param offset query int false "Row offset"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Search in title and description"
// @Param sort query string false "Sort field, prefix with - for descending"
// @Param topic query string false "Filter by topic slug"
// @Param published query bool false "Filter by publication state"
// @Param featured query bool false "Filter by featured flag"
// @Success 200 {object} ds.ListResponse
// @Failure 500 {object} map[string]string
// @Router /articles [get]
func (h *ArticleHandler) GetArticles(ctx *gin.Context) {
	q := tablequery.ParseListQuery(ctx.Request.URL.Query(), articleFilterFields)
	q.Endpoint = articlesEndpoint

	respondList(ctx, h.repo, q, func() (interface{}, int64, error) {
		return h.repo.Article.ListArticles(q)
	})
}

// GetArticle godoc
// @Summary Get article details
// @Description Article by slug with rendered HTML and table of contents
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} ds.ArticleDetail
// @Failure 404 {object} map[string]string
// @Router /articles/{slug} [get]
func (h *ArticleHandler) GetArticle(ctx *gin.Context) {
	slug := ctx.Param("slug")

	article, err := h.repo.Article.GetArticleBySlug(slug)
	if err != nil {
		logrus.Error("Failed to get article: ", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	html, err := markdown.Render(article.Content)
	if err != nil {
		logrus.Error("Failed to render article content: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render article"})
		return
	}

	headings, err := markdown.ExtractHeadings(article.Content)
	if err != nil {
		logrus.Error("Failed to extract headings: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render article"})
		return
	}

	toc := make([]ds.TocItem, 0, len(headings))
	for _, item := range headings {
		toc = append(toc, ds.TocItem{ID: item.ID, Text: item.Text, Level: item.Level})
	}

	ctx.JSON(http.StatusOK, ds.ArticleDetail{
		Article: article,
		HTML:    html,
		Toc:     toc,
	})
}

// CreateArticle godoc
// @Summary Create article
// @Description Create a new draft article (moderator only)
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateArticleRequest true "Article data"
// @Success 201 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 500 {object} ds.ActionResponse
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(ctx *gin.Context) {
	var req CreateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	article := &ds.Article{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		TopicSlug:   req.Topic,
	}

	if err := h.repo.Article.CreateArticle(article); err != nil {
		logrus.Error("Failed to create article: ", err)
		actionError(ctx, http.StatusBadRequest, "Failed to create article")
		return
	}

	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusCreated, article, "Article created")
}

// UpdateArticle godoc
// @Summary Update article
// @Description Partial article update (moderator only)
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body UpdateArticleRequest true "Fields to update"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req UpdateArticleRequest
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
	if req.Topic != nil {
		updates["topic_slug"] = *req.Topic
	}
	if len(updates) == 0 {
		actionError(ctx, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.repo.Article.UpdateArticle(id, updates); err != nil {
		logrus.Error("Failed to update article: ", err)
		actionError(ctx, http.StatusNotFound, "Article not found")
		return
	}

	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Article updated")
}

// DeleteArticle godoc
// @Summary Delete article
// @Description Soft-delete an article (moderator only)
// @Tags Articles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := h.repo.Article.DeleteArticle(id); err != nil {
		logrus.Error("Failed to delete article: ", err)
		actionError(ctx, http.StatusNotFound, "Article not found")
		return
	}

	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Article deleted")
}

// SetArticlePublished godoc
// @Summary Publish or unpublish article
// @Description Toggle publication; first publish stamps publishedAt (moderator only)
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body SetFlagRequest true "Target state"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /articles/{id}/publish [put]
func (h *ArticleHandler) SetArticlePublished(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req SetFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.repo.Article.SetPublished(id, *req.Value); err != nil {
		logrus.Error("Failed to set article publication: ", err)
		actionError(ctx, http.StatusNotFound, "Article not found")
		return
	}

	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Article publication updated")
}

// SetArticleFeatured godoc
// @Summary Feature or unfeature article
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body SetFlagRequest true "Target state"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /articles/{id}/feature [put]
func (h *ArticleHandler) SetArticleFeatured(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req SetFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.repo.Article.SetFeatured(id, *req.Value); err != nil {
		logrus.Error("Failed to set article featured flag: ", err)
		actionError(ctx, http.StatusNotFound, "Article not found")
		return
	}

	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Article featured flag updated")
}

// DuplicateArticle godoc
// @Summary Duplicate article
// @Description Clone an article as an unpublished draft (moderator only)
// @Tags Articles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 201 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /articles/{id}/duplicate [post]
func (h *ArticleHandler) DuplicateArticle(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	clone, err := h.repo.Article.DuplicateArticle(id)
	if err != nil {
		logrus.Error("Failed to duplicate article: ", err)
		actionError(ctx, http.StatusNotFound, "Article not found")
		return
	}

	invalidateList(ctx, h.repo, articlesEndpoint)
	actionOK(ctx, http.StatusCreated, clone, "Article duplicated")
}

// paramID parses the :id path parameter, answering 400 on bad input.
func paramID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		actionError(ctx, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
