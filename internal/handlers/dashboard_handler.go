package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clienthubdev/clienthub-api/internal/dto"
	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

const dashboardFacetLimit = 5

type DashboardHandler struct {
	dashboard store.DashboardStore
	now       func() time.Time
}

func NewDashboardHandler(dashboard store.DashboardStore) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// Get assembles the five dashboard facets. Each facet is an independent
// read; an empty one contributes an empty slice or zero, never an error.
func (h *DashboardHandler) Get(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	now := h.now()
	weekAhead := now.AddDate(0, 0, 7)

	totalClients, err := h.dashboard.CountClients(ctx, ownerID)
	if err != nil {
		httperr.Internal(c, "Server error retrieving dashboard data", err)
		return
	}

	totalProjects, err := h.dashboard.CountProjects(ctx, ownerID)
	if err != nil {
		httperr.Internal(c, "Server error retrieving dashboard data", err)
		return
	}

	projectsByStatus, err := h.dashboard.ProjectCountsByStatus(ctx, ownerID)
	if err != nil {
		httperr.Internal(c, "Server error retrieving dashboard data", err)
		return
	}

	upcomingReminders, err := h.dashboard.UpcomingReminders(ctx, ownerID, now, weekAhead, dashboardFacetLimit)
	if err != nil {
		httperr.Internal(c, "Server error retrieving dashboard data", err)
		return
	}

	recentInteractions, err := h.dashboard.RecentInteractions(ctx, ownerID, dashboardFacetLimit)
	if err != nil {
		httperr.Internal(c, "Server error retrieving dashboard data", err)
		return
	}

	upcomingDeadlines, err := h.dashboard.UpcomingDeadlines(ctx, ownerID, now, weekAhead, dashboardFacetLimit)
	if err != nil {
		httperr.Internal(c, "Server error retrieving dashboard data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard data retrieved successfully",
		"dashboardData": dto.DashboardData{
			TotalClients:       totalClients,
			TotalProjects:      totalProjects,
			ProjectsByStatus:   projectsByStatus,
			UpcomingReminders:  dto.NewReminderViews(upcomingReminders),
			RecentInteractions: dto.NewInteractionViews(recentInteractions),
			UpcomingDeadlines:  dto.NewProjectDeadlineViews(upcomingDeadlines),
		},
	})
}
