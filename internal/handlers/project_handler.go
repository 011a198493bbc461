package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clienthubdev/clienthub-api/internal/audit"
	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/httpresp"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
	"github.com/clienthubdev/clienthub-api/internal/validators"
)

type ProjectHandler struct {
	projects store.ProjectStore
	clients  store.ClientStore
	audit    *audit.Dispatcher
}

func NewProjectHandler(
	projects store.ProjectStore,
	clients store.ClientStore,
	auditDispatcher *audit.Dispatcher,
) *ProjectHandler {
	return &ProjectHandler{projects: projects, clients: clients, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Budget      *float64   `json:"budget" binding:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"`
	ClientID    string     `json:"clientId" binding:"required"`
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Budget      *float64   `json:"budget,omitempty" binding:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ClientID    *string    `json:"clientId,omitempty"`
}

// --------- Handlers ---------

func (h *ProjectHandler) List(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	page, errs := parsePageRequest(c, validators.ProjectSortColumns)

	status := c.Query("status")
	if status != "" && !validators.IsValidProjectStatus(status) {
		errs = append(errs, httperr.FieldError{
			Path:    "status",
			Message: "Unknown project status",
		})
	}

	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	params := store.ProjectListParams{
		PageRequest: page,
		Search:      c.Query("search"),
		Status:      status,
		ClientID:    c.Query("clientId"),
	}

	projects, totalCount, err := h.projects.List(c.Request.Context(), ownerID, params)
	if err != nil {
		httperr.Internal(c, "Server error retrieving projects", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Projects retrieved successfully",
		"projects":   projects,
		"pagination": httpresp.NewPagination(page.Page, page.Limit, totalCount),
	})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	project, err := h.projects.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Project not found")
			return
		}
		httperr.Internal(c, "Server error retrieving project", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project retrieved successfully",
		"project": project,
	})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	status := models.ProjectStatusNotStarted
	if req.Status != nil {
		if !validators.IsValidProjectStatus(*req.Status) {
			httperr.Validation(c, []httperr.FieldError{{
				Path:    "status",
				Message: "Unknown project status",
			}})
			return
		}
		status = *req.Status
	}

	// The referenced client must exist and belong to the caller before
	// anything is written.
	ok, err := h.clients.Exists(c.Request.Context(), ownerID, req.ClientID)
	if err != nil {
		httperr.Internal(c, "Server error creating project", err)
		return
	}
	if !ok {
		httperr.NotFound(c, "Client not found")
		return
	}

	project := models.Project{
		UserID:      ownerID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Status:      status,
	}

	if err := h.projects.Create(c.Request.Context(), &project); err != nil {
		httperr.Internal(c, "Server error creating project", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "created",
		Entity:   "project",
		EntityID: project.ID,
		Metadata: gin.H{"title": project.Title},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Project not found")
			return
		}
		httperr.Internal(c, "Server error updating project", err)
		return
	}

	if req.Status != nil && !validators.IsValidProjectStatus(*req.Status) {
		httperr.Validation(c, []httperr.FieldError{{
			Path:    "status",
			Message: "Unknown project status",
		}})
		return
	}

	if req.ClientID != nil {
		ok, err := h.clients.Exists(c.Request.Context(), ownerID, *req.ClientID)
		if err != nil {
			httperr.Internal(c, "Server error updating project", err)
			return
		}
		if !ok {
			httperr.NotFound(c, "Client not found")
			return
		}
		project.ClientID = *req.ClientID
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		httperr.Internal(c, "Server error updating project", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "updated",
		Entity:   "project",
		EntityID: project.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": project,
	})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	if err := h.projects.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Project not found")
			return
		}
		httperr.Internal(c, "Server error deleting project", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "deleted",
		Entity:   "project",
		EntityID: id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}
