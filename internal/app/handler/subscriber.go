package handler

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/tablequery"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const subscribersEndpoint = "/subscribers"

var subscriberFilterFields = []string{"verified", "subscribedDate"}

type SubscriberHandler struct {
	repo *repository.Repository
}

func NewSubscriberHandler(repo *repository.Repository) *SubscriberHandler {
	return &SubscriberHandler{
		repo: repo,
	}
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GetSubscribers godoc
// @Summary List subscribers
// @Description Paginated subscriber list (moderator only)
// @Tags Subscribers
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Row offset"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Search by email"
// @Param sort query string false "Sort field, prefix with - for descending"
// @Param verified query bool false "Filter by verification state"
// @Success 200 {object} ds.ListResponse
// @Failure 500 {object} map[string]string
// @Router /subscribers [get]
func (h *SubscriberHandler) GetSubscribers(ctx *gin.Context) {
	q := tablequery.ParseListQuery(ctx.Request.URL.Query(), subscriberFilterFields)
	q.Endpoint = subscribersEndpoint

	respondList(ctx, h.repo, q, func() (interface{}, int64, error) {
		return h.repo.Subscriber.ListSubscribers(q)
	})
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param request body SubscribeRequest true "Subscriber email"
// @Success 201 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Router /subscribe [post]
func (h *SubscriberHandler) Subscribe(ctx *gin.Context) {
	var req SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid email")
		return
	}

	subscriber := &ds.Subscriber{Email: req.Email}
	if err := h.repo.Subscriber.CreateSubscriber(subscriber); err != nil {
		logrus.Error("Failed to create subscriber: ", err)
		actionError(ctx, http.StatusBadRequest, "Failed to subscribe")
		return
	}

	invalidateList(ctx, h.repo, subscribersEndpoint)
	actionOK(ctx, http.StatusCreated, subscriber, "Subscribed")
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Description Unknown emails are treated as already unsubscribed
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param request body SubscribeRequest true "Subscriber email"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Router /unsubscribe [post]
func (h *SubscriberHandler) Unsubscribe(ctx *gin.Context) {
	var req SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid email")
		return
	}

	if err := h.repo.Subscriber.UnsubscribeByEmail(req.Email); err != nil {
		logrus.Error("Failed to unsubscribe: ", err)
		actionError(ctx, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}

	invalidateList(ctx, h.repo, subscribersEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Unsubscribed")
}

// SetSubscriberVerified godoc
// @Summary Verify or unverify subscriber
// @Tags Subscribers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Subscriber ID"
// @Param request body SetFlagRequest true "Target state"
// @Success 200 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /subscribers/{id}/verify [put]
func (h *SubscriberHandler) SetSubscriberVerified(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var req SetFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		actionError(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.repo.Subscriber.SetVerified(id, *req.Value); err != nil {
		logrus.Error("Failed to set subscriber verification: ", err)
		actionError(ctx, http.StatusNotFound, "Subscriber not found")
		return
	}

	invalidateList(ctx, h.repo, subscribersEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Subscriber verification updated")
}

// DeleteSubscriber godoc
// @Summary Delete subscriber
// @Description Soft-delete a subscriber (moderator only)
// @Tags Subscribers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Subscriber ID"
// @Success 200 {object} ds.ActionResponse
// @Failure 404 {object} ds.ActionResponse
// @Router /subscribers/{id} [delete]
func (h *SubscriberHandler) DeleteSubscriber(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := h.repo.Subscriber.DeleteSubscriber(id); err != nil {
		logrus.Error("Failed to delete subscriber: ", err)
		actionError(ctx, http.StatusNotFound, "Subscriber not found")
		return
	}

	invalidateList(ctx, h.repo, subscribersEndpoint)
	actionOK(ctx, http.StatusOK, nil, "Subscriber deleted")
}
