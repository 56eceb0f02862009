package handlers

import (
	"net/http"

	"admindash/internal/domain"
	"admindash/internal/http/middleware"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

// RespondError sends the failure envelope with request_id included.
func RespondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"success":    false,
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondList[T any](c *gin.Context, res services.ListResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       res.Items,
		"pagination": res.Pagination,
		"meta":       res.Meta,
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "validation_error", "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return false
	}
	return true
}

// pageRequest reads page/limit/search/sort/order. perPage, sortBy and sortOrder are
// accepted as aliases used by the dashboard tables.
func pageRequest(c *gin.Context, opts domain.ListOptions) domain.PageRequest {
	limit := c.Query("limit")
	if limit == "" {
		limit = c.Query("perPage")
	}
	sort := c.Query("sort")
	if sort == "" {
		sort = c.Query("sortBy")
	}
	order := c.Query("order")
	if order == "" {
		order = c.Query("sortOrder")
	}
	return domain.ParsePageRequest(c.Query("page"), limit, c.Query("search"), sort, order, opts)
}
