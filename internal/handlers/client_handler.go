package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clienthubdev/clienthub-api/internal/audit"
	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/httpresp"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
	"github.com/clienthubdev/clienthub-api/internal/validators"
)

type ClientHandler struct {
	clients store.ClientStore
	audit   *audit.Dispatcher
}

func NewClientHandler(clients store.ClientStore, auditDispatcher *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{clients: clients, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   string  `json:"phone" binding:"required"`
	Company *string `json:"company"`
	Notes   *string `json:"notes"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	page, errs := parsePageRequest(c, validators.ClientSortColumns)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	params := store.ClientListParams{
		PageRequest: page,
		Search:      c.Query("search"),
	}

	clients, totalCount, err := h.clients.List(c.Request.Context(), ownerID, params)
	if err != nil {
		httperr.Internal(c, "Server error retrieving clients", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Clients retrieved successfully",
		"clients":    clients,
		"pagination": httpresp.NewPagination(page.Page, page.Limit, totalCount),
	})
}

func (h *ClientHandler) Get(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	client, err := h.clients.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Client not found")
			return
		}
		httperr.Internal(c, "Server error retrieving client", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client retrieved successfully",
		"client":  client,
	})
}

func (h *ClientHandler) Create(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	client := models.Client{
		UserID:  ownerID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}

	if err := h.clients.Create(c.Request.Context(), &client); err != nil {
		httperr.Internal(c, "Server error creating client", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "created",
		Entity:   "client",
		EntityID: client.ID,
		Metadata: gin.H{"name": client.Name},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"client":  client,
	})
}

func (h *ClientHandler) Update(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Client not found")
			return
		}
		httperr.Internal(c, "Server error updating client", err)
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Company != nil {
		client.Company = req.Company
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := h.clients.Update(c.Request.Context(), client); err != nil {
		httperr.Internal(c, "Server error updating client", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "updated",
		Entity:   "client",
		EntityID: client.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"client":  client,
	})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	if err := h.clients.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Client not found")
			return
		}
		httperr.Internal(c, "Server error deleting client", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   ownerID,
		Action:   "deleted",
		Entity:   "client",
		EntityID: id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Client deleted successfully",
	})
}
