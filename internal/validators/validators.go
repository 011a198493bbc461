package validators

import (
	"slices"

	"github.com/clienthubdev/clienthub-api/internal/models"
)

// Sortable columns per entity, keyed by their API names. Anything not
// listed here never reaches an ORDER BY clause.
var (
	ClientSortColumns = map[string]string{
		"name":      "name",
		"email":     "email",
		"company":   "company",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}

	ProjectSortColumns = map[string]string{
		"title":     "title",
		"budget":    "budget",
		"deadline":  "deadline",
		"status":    "status",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

func IsValidSortOrder(order string) bool {
	return order == "asc" || order == "desc"
}

func IsValidProjectStatus(status string) bool {
	return slices.Contains(models.ProjectStatuses(), status)
}

func IsValidInteractionType(interactionType string) bool {
	return slices.Contains(models.InteractionTypes(), interactionType)
}

// HasEntityRef reports whether at least one of clientId/projectId is
// present. Interactions and reminders are rejected without one; this is
// the single authoritative check, the stores trust it.
func HasEntityRef(clientID, projectID *string) bool {
	if clientID != nil && *clientID != "" {
		return true
	}
	return projectID != nil && *projectID != ""
}
