package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

// checkEntityRefs verifies that any provided clientId/projectId resolves
// to a row owned by the caller. A reference belonging to another user is
// reported exactly like a missing one. Writes the error response itself
// and reports whether the caller may proceed.
func checkEntityRefs(
	c *gin.Context,
	clients store.ClientStore,
	projects store.ProjectStore,
	ownerID string,
	clientID, projectID *string,
) bool {
	if clientID != nil && *clientID != "" {
		ok, err := clients.Exists(c.Request.Context(), ownerID, *clientID)
		if err != nil {
			httperr.Internal(c, "Server error validating references", err)
			return false
		}
		if !ok {
			httperr.NotFound(c, "Client not found")
			return false
		}
	}

	if projectID != nil && *projectID != "" {
		ok, err := projects.Exists(c.Request.Context(), ownerID, *projectID)
		if err != nil {
			httperr.Internal(c, "Server error validating references", err)
			return false
		}
		if !ok {
			httperr.NotFound(c, "Project not found")
			return false
		}
	}

	return true
}
