package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clienthubdev/clienthub-api/internal/audit"
	"github.com/clienthubdev/clienthub-api/internal/dto"
	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
	"github.com/clienthubdev/clienthub-api/internal/validators"
)

type ReminderHandler struct {
	reminders store.ReminderStore
	clients   store.ClientStore
	projects  store.ProjectStore
	audit     *audit.Dispatcher
}

func NewReminderHandler(
	reminders store.ReminderStore,
	clients store.ClientStore,
	projects store.ProjectStore,
	auditDispatcher *audit.Dispatcher,
) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
		clients:   clients,
		projects:  projects,
		audit:     auditDispatcher,
	}
}

// --------- Requests ---------

type CreateReminderRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Completed   *bool     `json:"completed"`
	ClientID    *string   `json:"clientId"`
	ProjectID   *string   `json:"projectId"`
}

type UpdateReminderRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	ClientID    *string    `json:"clientId,omitempty"`
	ProjectID   *string    `json:"projectId,omitempty"`
}

// --------- Handlers ---------

func (h *ReminderHandler) List(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	params := store.ReminderListParams{
		ClientID:    c.Query("clientId"),
		ProjectID:   c.Query("projectId"),
		DueThisWeek: c.Query("dueThisWeek") == "true",
	}

	reminders, err := h.reminders.List(c.Request.Context(), ownerID, params)
	if err != nil {
		httperr.Internal(c, "Server error retrieving reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Reminders retrieved successfully",
		"reminders": dto.NewReminderViews(reminders),
	})
}

func (h *ReminderHandler) Get(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	reminder, err := h.reminders.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Reminder not found")
			return
		}
		httperr.Internal(c, "Server error retrieving reminder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reminder retrieved successfully",
		"reminder": dto.NewReminderView(*reminder),
	})
}

func (h *ReminderHandler) Create(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	if !validators.HasEntityRef(req.ClientID, req.ProjectID) {
		httperr.BadRequest(c, "Either clientId or projectId must be provided")
		return
	}

	if !checkEntityRefs(c, h.clients, h.projects, ownerID, req.ClientID, req.ProjectID) {
		return
	}

	reminder := models.Reminder{
		UserID:      ownerID,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Completed != nil {
		reminder.Completed = *req.Completed
	}

	if err := h.reminders.Create(c.Request.Context(), &reminder); err != nil {
		httperr.Internal(c, "Server error creating reminder", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "created",
		Entity:   "reminder",
		EntityID: reminder.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Reminder created successfully",
		"reminder": reminder,
	})
}

func (h *ReminderHandler) Update(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	reminder, err := h.reminders.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Reminder not found")
			return
		}
		httperr.Internal(c, "Server error updating reminder", err)
		return
	}

	if !checkEntityRefs(c, h.clients, h.projects, ownerID, req.ClientID, req.ProjectID) {
		return
	}

	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.Description != nil {
		reminder.Description = req.Description
	}
	if req.DueDate != nil {
		reminder.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		reminder.Completed = *req.Completed
	}
	if req.ClientID != nil {
		reminder.ClientID = req.ClientID
	}
	if req.ProjectID != nil {
		reminder.ProjectID = req.ProjectID
	}

	if !validators.HasEntityRef(reminder.ClientID, reminder.ProjectID) {
		httperr.BadRequest(c, "Either clientId or projectId must be provided")
		return
	}

	if err := h.reminders.Update(c.Request.Context(), reminder); err != nil {
		httperr.Internal(c, "Server error updating reminder", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "updated",
		Entity:   "reminder",
		EntityID: reminder.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reminder updated successfully",
		"reminder": dto.NewReminderView(*reminder),
	})
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	if err := h.reminders.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Reminder not found")
			return
		}
		httperr.Internal(c, "Server error deleting reminder", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "deleted",
		Entity:   "reminder",
		EntityID: id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder deleted successfully",
	})
}
