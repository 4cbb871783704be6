package handler

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/app/tablequery"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const jsonContentType = "application/json; charset=utf-8"

// respondList serves a list response from the redis cache when a fresh
// copy exists; otherwise it runs fetch, wraps the rows in the
// {data, metadata:{count}} envelope and caches the encoded body under the
// descriptor's composite key. With redis down every request goes to the
// database.
func respondList(ctx *gin.Context, repo *repository.Repository, q tablequery.ListQuery, fetch func() (interface{}, int64, error)) {
	cacheKey := q.CacheKey()

	if rc := repo.GetRedisClient(); rc != nil {
		if body, ok := rc.GetList(ctx.Request.Context(), cacheKey); ok {
			ctx.Data(http.StatusOK, jsonContentType, body)
			return
		}
	}

	data, count, err := fetch()
	if err != nil {
		logrus.Error("Failed to fetch list: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch list"})
		return
	}

	body, err := json.Marshal(ds.ListResponse{
		Data:     data,
		Metadata: ds.ListMetadata{Count: count},
	})
	if err != nil {
		logrus.Error("Failed to encode list response: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode response"})
		return
	}

	if rc := repo.GetRedisClient(); rc != nil {
		if err := rc.SetList(ctx.Request.Context(), cacheKey, body, repo.Config().ListCacheTTL); err != nil {
			logrus.Warn("Failed to cache list response: ", err)
		}
	}

	ctx.Data(http.StatusOK, jsonContentType, body)
}

// invalidateList drops every cached page of the endpoint after a
// mutation so the next list request sees the change.
func invalidateList(ctx *gin.Context, repo *repository.Repository, endpoint string) {
	if rc := repo.GetRedisClient(); rc != nil {
		if err := rc.InvalidateEndpoint(ctx.Request.Context(), endpoint); err != nil {
			logrus.Warn("Failed to invalidate list cache: ", err)
		}
	}
}

// actionOK writes the success envelope of a mutation endpoint.
func actionOK(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, ds.ActionResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// actionError writes the failure envelope of a mutation endpoint.
func actionError(ctx *gin.Context, status int, errMsg string) {
	ctx.JSON(status, ds.ActionResponse{
		Success: false,
		Error:   errMsg,
	})
}
