package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/httpresp"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

type AuditLogsHandler struct {
	logs store.AuditLogStore
}

func NewAuditLogsHandler(logs store.AuditLogStore) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List returns the caller's audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	page := store.PageRequest{
		Page:  parsePositiveInt(c.Query("page"), defaultPage),
		Limit: parsePositiveInt(c.Query("limit"), defaultLimit),
	}

	logs, totalCount, err := h.logs.List(c.Request.Context(), ownerID, page)
	if err != nil {
		httperr.Internal(c, "Server error retrieving audit logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Audit logs retrieved successfully",
		"auditLogs":  logs,
		"pagination": httpresp.NewPagination(page.Page, page.Limit, totalCount),
	})
}
