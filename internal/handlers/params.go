package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/clienthubdev/clienthub-api/internal/httperr"
	"github.com/clienthubdev/clienthub-api/internal/store"
	"github.com/clienthubdev/clienthub-api/internal/validators"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// parsePageRequest reads page/limit/sortBy/sortOrder from the query
// string. Unknown sort columns and orders are rejected rather than
// passed through to the store.
func parsePageRequest(c *gin.Context, sortColumns map[string]string) (store.PageRequest, []httperr.FieldError) {
	var errs []httperr.FieldError

	page := parsePositiveInt(c.Query("page"), defaultPage)
	limit := parsePositiveInt(c.Query("limit"), defaultLimit)

	sortBy := c.DefaultQuery("sortBy", "createdAt")
	column, ok := sortColumns[sortBy]
	if !ok {
		errs = append(errs, httperr.FieldError{
			Path:    "sortBy",
			Message: "Unsupported sort column",
		})
	}

	sortOrder := c.DefaultQuery("sortOrder", "desc")
	if !validators.IsValidSortOrder(sortOrder) {
		errs = append(errs, httperr.FieldError{
			Path:    "sortOrder",
			Message: "Sort order must be asc or desc",
		})
	}

	return store.PageRequest{
		Page:      page,
		Limit:     limit,
		SortBy:    column,
		SortOrder: sortOrder,
	}, errs
}

func parsePositiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// bindingErrors flattens gin binding failures into the per-field shape
// the API promises for validation errors.
func bindingErrors(err error) []httperr.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]httperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, httperr.FieldError{
				Path:    lowerFirst(fe.Field()),
				Message: bindingMessage(fe),
			})
		}
		return fields
	}

	return []httperr.FieldError{{Path: "body", Message: "Invalid request body"}}
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return lowerFirst(fe.Field()) + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return lowerFirst(fe.Field()) + " must be at least " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
