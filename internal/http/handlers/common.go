package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends the standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// ParseListParams reads the page path segment plus limit/sortBy/sortOrder
// query parameters. Out-of-range values are clamped later by Normalize.
func ParseListParams(c *gin.Context) repositories.ListParams {
	page, _ := strconv.Atoi(c.Param("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return repositories.ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// dateQuery validates an optional YYYY-MM-DD query parameter. A malformed
// date aborts the request with 400.
func dateQuery(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return "", true
	}
	if _, err := utils.ParseDate(v); err != nil {
		RespondError(c, http.StatusBadRequest, name+" must be YYYY-MM-DD", err)
		return "", false
	}
	return v, true
}

// actorName identifies the operator for audit rows. Requests carry it in a
// header because the API itself is unauthenticated.
func actorName(c *gin.Context) string {
	if name := strings.TrimSpace(c.GetHeader("X-User-Name")); name != "" {
		return name
	}
	return "admin"
}

type idsPayload struct {
	IDs []int64 `json:"ids"`
}
