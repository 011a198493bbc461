package store

import (
	"context"
	"errors"
	"time"

	"github.com/clienthubdev/clienthub-api/internal/models"
)

var (
	// ErrNotFound covers both a missing row and a row owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail = errors.New("email already registered")
)

// PageRequest is a normalized page/sort selection. SortBy is validated
// against a per-entity whitelist before it reaches a store.
type PageRequest struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type ClientListParams struct {
	PageRequest
	Search string
}

type ProjectListParams struct {
	PageRequest
	Search   string
	Status   string
	ClientID string
}

type InteractionListParams struct {
	ClientID  string
	ProjectID string
}

type ReminderListParams struct {
	ClientID    string
	ProjectID   string
	DueThisWeek bool
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type ClientStore interface {
	List(ctx context.Context, ownerID string, params ClientListParams) ([]models.Client, int64, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Client, error)
	Exists(ctx context.Context, ownerID, id string) (bool, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error

	// Delete removes the client together with its projects, interactions
	// and reminders in a single transaction.
	Delete(ctx context.Context, ownerID, id string) error
}

type ProjectStore interface {
	List(ctx context.Context, ownerID string, params ProjectListParams) ([]models.Project, int64, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Project, error)
	Exists(ctx context.Context, ownerID, id string) (bool, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project together with its interactions and
	// reminders in a single transaction.
	Delete(ctx context.Context, ownerID, id string) error
}

type InteractionStore interface {
	List(ctx context.Context, ownerID string, params InteractionListParams) ([]models.Interaction, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Interaction, error)
	Create(ctx context.Context, interaction *models.Interaction) error
	Update(ctx context.Context, interaction *models.Interaction) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ReminderStore interface {
	List(ctx context.Context, ownerID string, params ReminderListParams) ([]models.Reminder, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Reminder, error)
	Create(ctx context.Context, reminder *models.Reminder) error
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, ownerID, id string) error
}

// DashboardStore exposes the read-only facet queries; each is an
// independent read and an empty result is never an error.
type DashboardStore interface {
	CountClients(ctx context.Context, ownerID string) (int64, error)
	CountProjects(ctx context.Context, ownerID string) (int64, error)
	ProjectCountsByStatus(ctx context.Context, ownerID string) (map[string]int64, error)
	UpcomingReminders(ctx context.Context, ownerID string, from, to time.Time, limit int) ([]models.Reminder, error)
	RecentInteractions(ctx context.Context, ownerID string, limit int) ([]models.Interaction, error)
	UpcomingDeadlines(ctx context.Context, ownerID string, from, to time.Time, limit int) ([]models.Project, error)
}

type AuditLogStore interface {
	List(ctx context.Context, ownerID string, page PageRequest) ([]models.AuditLog, int64, error)
}
