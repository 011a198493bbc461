package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/clienthubdev/clienthub-api/internal/auth"
	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

type AuthHandler struct {
	users  store.UserStore
	issuer *auth.TokenIssuer
}

func NewAuthHandler(users store.UserStore, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Server error during registration", err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			httperr.Conflict(c, "User with this email already exists")
			return
		}
		httperr.Internal(c, "Server error during registration", err)
		return
	}

	token, err := h.issuer.Generate(user.ID, user.Email)
	if err != nil {
		httperr.Internal(c, "Server error during registration", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, bindingErrors(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same response as a bad password; no account enumeration.
			httperr.InvalidCredentials(c)
			return
		}
		httperr.Internal(c, "Server error during login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.InvalidCredentials(c)
		return
	}

	token, err := h.issuer.Generate(user.ID, user.Email)
	if err != nil {
		httperr.Internal(c, "Server error during login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "User not found")
			return
		}
		httperr.Internal(c, "Server error retrieving profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"user":    user,
	})
}
