package handlers

import (
	"net/http"

	"loyaltyadmin/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/logs/:page. The audit trail is read-only over HTTP; rows are
// written by the mutation handlers themselves.
func GetAuditLogs(c *gin.Context) {
	p := ParseListParams(c)
	fromDate, ok := dateQuery(c, "fromDate")
	if !ok {
		return
	}
	toDate, ok := dateQuery(c, "toDate")
	if !ok {
		return
	}
	f := repositories.AuditLogFilter{
		TableName: c.Query("table"),
		Screen:    c.Query("screen"),
		UserName:  c.Query("userName"),
		FromDate:  fromDate,
		ToDate:    toDate,
	}

	page, err := repositories.AuditLogRepository{}.List(p, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       page.Items,
		"totalLogs":  page.Total,
		"totalPages": page.TotalPages,
	})
}
