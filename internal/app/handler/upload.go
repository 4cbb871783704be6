package handler

import (
	"Backend-CMS/internal/app/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	repo *repository.Repository
}

func NewUploadHandler(repo *repository.Repository) *UploadHandler {
	return &UploadHandler{
		repo: repo,
	}
}

// UploadImage godoc
// @Summary Upload image
// @Description Store an image in object storage and return its URL and dimensions (moderator only)
// @Tags Upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param folder formData string false "Folder prefix"
// @Success 201 {object} ds.ActionResponse
// @Failure 400 {object} ds.ActionResponse
// @Failure 500 {object} ds.ActionResponse
// @Router /upload [post]
func (h *UploadHandler) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		actionError(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	folder := ctx.PostForm("folder")

	result, err := h.repo.Upload.SaveImage(ctx.Request.Context(), fileHeader, folder)
	if err != nil {
		logrus.Error("Failed to save upload: ", err)
		actionError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	actionOK(ctx, http.StatusCreated, result, "Upload stored")
}

// DeleteImage godoc
// @Summary Delete uploaded image
// @Description Remove a stored upload by its public id (moderator only)
// @Tags Upload
// @Security BearerAuth
// @Produce json
// @Param publicId path string true "Upload public id"
// @Success 200 {object} ds.ActionResponse
// @Failure 500 {object} ds.ActionResponse
// @Router /upload/{publicId} [delete]
func (h *UploadHandler) DeleteImage(ctx *gin.Context) {
	publicID := ctx.Param("publicId")

	if err := h.repo.Upload.DeleteImage(ctx.Request.Context(), publicID); err != nil {
		logrus.Error("Failed to delete upload: ", err)
		actionError(ctx, http.StatusInternalServerError, "Failed to delete upload")
		return
	}

	actionOK(ctx, http.StatusOK, nil, "Upload deleted")
}
