package dto

import (
	"time"

	"github.com/clienthubdev/clienthub-api/internal/models"
)

// Minimal identity projections embedded where a full row would leak
// more than the endpoint promises.
type ClientRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProjectRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewClientRef(c *models.Client) *ClientRef {
	if c == nil {
		return nil
	}
	return &ClientRef{ID: c.ID, Name: c.Name}
}

func NewProjectRef(p *models.Project) *ProjectRef {
	if p == nil {
		return nil
	}
	return &ProjectRef{ID: p.ID, Title: p.Title}
}

type InteractionView struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Type      string      `json:"type"`
	Notes     *string     `json:"notes"`
	ClientID  *string     `json:"clientId"`
	ProjectID *string     `json:"projectId"`
	Client    *ClientRef  `json:"client"`
	Project   *ProjectRef `json:"project"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewInteractionView(i models.Interaction) InteractionView {
	return InteractionView{
		ID:        i.ID,
		Date:      i.Date,
		Type:      i.Type,
		Notes:     i.Notes,
		ClientID:  i.ClientID,
		ProjectID: i.ProjectID,
		Client:    NewClientRef(i.Client),
		Project:   NewProjectRef(i.Project),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func NewInteractionViews(interactions []models.Interaction) []InteractionView {
	views := make([]InteractionView, 0, len(interactions))
	for _, i := range interactions {
		views = append(views, NewInteractionView(i))
	}
	return views
}

type ReminderView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	DueDate     time.Time   `json:"dueDate"`
	Completed   bool        `json:"completed"`
	ClientID    *string     `json:"clientId"`
	ProjectID   *string     `json:"projectId"`
	Client      *ClientRef  `json:"client"`
	Project     *ProjectRef `json:"project"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewReminderView(r models.Reminder) ReminderView {
	return ReminderView{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Completed:   r.Completed,
		ClientID:    r.ClientID,
		ProjectID:   r.ProjectID,
		Client:      NewClientRef(r.Client),
		Project:     NewProjectRef(r.Project),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func NewReminderViews(reminders []models.Reminder) []ReminderView {
	views := make([]ReminderView, 0, len(reminders))
	for _, r := range reminders {
		views = append(views, NewReminderView(r))
	}
	return views
}

type ProjectDeadlineView struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	Deadline *time.Time `json:"deadline"`
	Client   *ClientRef `json:"client"`
}

func NewProjectDeadlineViews(projects []models.Project) []ProjectDeadlineView {
	views := make([]ProjectDeadlineView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectDeadlineView{
			ID:       p.ID,
			Title:    p.Title,
			Status:   p.Status,
			Deadline: p.Deadline,
			Client:   NewClientRef(p.Client),
		})
	}
	return views
}

type DashboardData struct {
	TotalClients       int64                 `json:"totalClients"`
	TotalProjects      int64                 `json:"totalProjects"`
	ProjectsByStatus   map[string]int64      `json:"projectsByStatus"`
	UpcomingReminders  []ReminderView        `json:"upcomingReminders"`
	RecentInteractions []InteractionView     `json:"recentInteractions"`
	UpcomingDeadlines  []ProjectDeadlineView `json:"upcomingDeadlines"`
}
