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

type InteractionHandler struct {
	interactions store.InteractionStore
	clients      store.ClientStore
	projects     store.ProjectStore
	audit        *audit.Dispatcher
}

func NewInteractionHandler(
	interactions store.InteractionStore,
	clients store.ClientStore,
	projects store.ProjectStore,
	auditDispatcher *audit.Dispatcher,
) *InteractionHandler {
	return &InteractionHandler{
		interactions: interactions,
		clients:      clients,
		projects:     projects,
		audit:        auditDispatcher,
	}
}

// --------- Requests ---------

type CreateInteractionRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	Notes     *string   `json:"notes"`
	ClientID  *string   `json:"clientId"`
	ProjectID *string   `json:"projectId"`
}

type UpdateInteractionRequest struct {
	Date      *time.Time `json:"date,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	ClientID  *string    `json:"clientId,omitempty"`
	ProjectID *string    `json:"projectId,omitempty"`
}

// --------- Handlers ---------

func (h *InteractionHandler) List(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	params := store.InteractionListParams{
		ClientID:  c.Query("clientId"),
		ProjectID: c.Query("projectId"),
	}

	interactions, err := h.interactions.List(c.Request.Context(), ownerID, params)
	if err != nil {
		httperr.Internal(c, "Server error retrieving interactions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Interactions retrieved successfully",
		"interactions": dto.NewInteractionViews(interactions),
	})
}

func (h *InteractionHandler) Get(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	interaction, err := h.interactions.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Interaction not found")
			return
		}
		httperr.Internal(c, "Server error retrieving interaction", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Interaction retrieved successfully",
		"interaction": dto.NewInteractionView(*interaction),
	})
}

func (h *InteractionHandler) Create(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	if !validators.IsValidInteractionType(req.Type) {
		httperr.Validation(c, []httperr.FieldError{{
			Path:    "type",
			Message: "Unknown interaction type",
		}})
		return
	}

	if !validators.HasEntityRef(req.ClientID, req.ProjectID) {
		httperr.BadRequest(c, "Either clientId or projectId must be provided")
		return
	}

	if !checkEntityRefs(c, h.clients, h.projects, ownerID, req.ClientID, req.ProjectID) {
		return
	}

	interaction := models.Interaction{
		UserID:    ownerID,
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Date:      req.Date,
		Type:      req.Type,
		Notes:     req.Notes,
	}

	if err := h.interactions.Create(c.Request.Context(), &interaction); err != nil {
		httperr.Internal(c, "Server error creating interaction", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "created",
		Entity:   "interaction",
		EntityID: interaction.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Interaction created successfully",
		"interaction": interaction,
	})
}

func (h *InteractionHandler) Update(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	interaction, err := h.interactions.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Interaction not found")
			return
		}
		httperr.Internal(c, "Server error updating interaction", err)
		return
	}

	if req.Type != nil && !validators.IsValidInteractionType(*req.Type) {
		httperr.Validation(c, []httperr.FieldError{{
			Path:    "type",
			Message: "Unknown interaction type",
		}})
		return
	}

	if !checkEntityRefs(c, h.clients, h.projects, ownerID, req.ClientID, req.ProjectID) {
		return
	}

	if req.Date != nil {
		interaction.Date = *req.Date
	}
	if req.Type != nil {
		interaction.Type = *req.Type
	}
	if req.Notes != nil {
		interaction.Notes = req.Notes
	}
	if req.ClientID != nil {
		interaction.ClientID = req.ClientID
	}
	if req.ProjectID != nil {
		interaction.ProjectID = req.ProjectID
	}

	if !validators.HasEntityRef(interaction.ClientID, interaction.ProjectID) {
		httperr.BadRequest(c, "Either clientId or projectId must be provided")
		return
	}

	if err := h.interactions.Update(c.Request.Context(), interaction); err != nil {
		httperr.Internal(c, "Server error updating interaction", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "updated",
		Entity:   "interaction",
		EntityID: interaction.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Interaction updated successfully",
		"interaction": dto.NewInteractionView(*interaction),
	})
}

func (h *InteractionHandler) Delete(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	if err := h.interactions.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Interaction not found")
			return
		}
		httperr.Internal(c, "Server error deleting interaction", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "deleted",
		Entity:   "interaction",
		EntityID: id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Interaction deleted successfully",
	})
}

