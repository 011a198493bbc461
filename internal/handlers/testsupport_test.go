package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clienthubdev/clienthub-api/internal/audit"
	"github.com/clienthubdev/clienthub-api/internal/auth"
	"github.com/clienthubdev/clienthub-api/internal/handlers"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

// ---------------------------------------------------------------------
// In-memory stores. They mirror the gorm repositories' contracts:
// owner scoping on every lookup, ErrNotFound for cross-owner rows,
// atomic cascade on delete.
// ---------------------------------------------------------------------

type memDB struct {
	mu           sync.Mutex
	users        map[string]models.User
	clients      map[string]models.Client
	projects     map[string]models.Project
	interactions map[string]models.Interaction
	reminders    map[string]models.Reminder
}

func newMemDB() *memDB {
	return &memDB{
		users:        make(map[string]models.User),
		clients:      make(map[string]models.Client),
		projects:     make(map[string]models.Project),
		interactions: make(map[string]models.Interaction),
		reminders:    make(map[string]models.Reminder),
	}
}

func stamp(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

type memUserStore struct{ db *memDB }

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	s.db.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := u
	return &out, nil
}

type memClientStore struct{ db *memDB }

func (s *memClientStore) List(_ context.Context, ownerID string, params store.ClientListParams) ([]models.Client, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var matched []models.Client
	for _, c := range s.db.clients {
		if c.UserID != ownerID {
			continue
		}
		if params.Search != "" && !clientMatches(c, params.Search) {
			continue
		}
		matched = append(matched, c)
	}

	sortClients(matched, params.PageRequest)
	total := int64(len(matched))
	return paginate(matched, params.PageRequest), total, nil
}

func clientMatches(c models.Client, search string) bool {
	needle := strings.ToLower(search)
	company := ""
	if c.Company != nil {
		company = *c.Company
	}
	for _, field := range []string{c.Name, c.Email, c.Phone, company} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortClients(clients []models.Client, p store.PageRequest) {
	asc := p.SortOrder == "asc"
	sort.Slice(clients, func(i, j int) bool {
		var less bool
		switch p.SortBy {
		case "name":
			less = clients[i].Name < clients[j].Name
		case "email":
			less = clients[i].Email < clients[j].Email
		default:
			less = clients[i].CreatedAt.Before(clients[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

func paginate[T any](items []T, p store.PageRequest) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (s *memClientStore) GetByID(_ context.Context, ownerID, id string) (*models.Client, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[id]
	if !ok || c.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	out := c
	return &out, nil
}

func (s *memClientStore) Exists(_ context.Context, ownerID, id string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[id]
	return ok && c.UserID == ownerID, nil
}

func (s *memClientStore) Create(_ context.Context, client *models.Client) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stamp(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	s.db.clients[client.ID] = *client
	return nil
}

func (s *memClientStore) Update(_ context.Context, client *models.Client) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	client.UpdatedAt = time.Now()
	s.db.clients[client.ID] = *client
	return nil
}

func (s *memClientStore) Delete(_ context.Context, ownerID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[id]
	if !ok || c.UserID != ownerID {
		return store.ErrNotFound
	}

	cascaded := map[string]bool{}
	for pid, p := range s.db.projects {
		if p.ClientID == id {
			cascaded[pid] = true
			delete(s.db.projects, pid)
		}
	}
	for iid, i := range s.db.interactions {
		if refersTo(i.ClientID, id) || (i.ProjectID != nil && cascaded[*i.ProjectID]) {
			delete(s.db.interactions, iid)
		}
	}
	for rid, r := range s.db.reminders {
		if refersTo(r.ClientID, id) || (r.ProjectID != nil && cascaded[*r.ProjectID]) {
			delete(s.db.reminders, rid)
		}
	}

	delete(s.db.clients, id)
	return nil
}

func refersTo(ref *string, id string) bool {
	return ref != nil && *ref == id
}

// The attach helpers mimic the gorm repositories' Preloads. Callers must
// hold db.mu.

func (db *memDB) attachProjectClient(p *models.Project) {
	if c, ok := db.clients[p.ClientID]; ok {
		client := c
		p.Client = &client
	}
}

func (db *memDB) attachInteractionRefs(i *models.Interaction) {
	if i.ClientID != nil {
		if c, ok := db.clients[*i.ClientID]; ok {
			client := c
			i.Client = &client
		}
	}
	if i.ProjectID != nil {
		if p, ok := db.projects[*i.ProjectID]; ok {
			project := p
			i.Project = &project
		}
	}
}

func (db *memDB) attachReminderRefs(r *models.Reminder) {
	if r.ClientID != nil {
		if c, ok := db.clients[*r.ClientID]; ok {
			client := c
			r.Client = &client
		}
	}
	if r.ProjectID != nil {
		if p, ok := db.projects[*r.ProjectID]; ok {
			project := p
			r.Project = &project
		}
	}
}

type memProjectStore struct{ db *memDB }

func (s *memProjectStore) List(_ context.Context, ownerID string, params store.ProjectListParams) ([]models.Project, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var matched []models.Project
	for _, p := range s.db.projects {
		if p.UserID != ownerID {
			continue
		}
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		if params.ClientID != "" && p.ClientID != params.ClientID {
			continue
		}
		if params.Search != "" && !projectMatches(p, params.Search) {
			continue
		}
		s.db.attachProjectClient(&p)
		matched = append(matched, p)
	}

	asc := params.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "title":
			less = matched[i].Title < matched[j].Title
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	return paginate(matched, params.PageRequest), total, nil
}

func projectMatches(p models.Project, search string) bool {
	needle := strings.ToLower(search)
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(description), needle)
}

func (s *memProjectStore) GetByID(_ context.Context, ownerID, id string) (*models.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.projects[id]
	if !ok || p.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	out := p
	s.db.attachProjectClient(&out)
	return &out, nil
}

func (s *memProjectStore) Exists(_ context.Context, ownerID, id string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.projects[id]
	return ok && p.UserID == ownerID, nil
}

func (s *memProjectStore) Create(_ context.Context, project *models.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stamp(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	s.db.projects[project.ID] = *project
	return nil
}

func (s *memProjectStore) Update(_ context.Context, project *models.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	project.UpdatedAt = time.Now()
	s.db.projects[project.ID] = *project
	return nil
}

func (s *memProjectStore) Delete(_ context.Context, ownerID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.projects[id]
	if !ok || p.UserID != ownerID {
		return store.ErrNotFound
	}

	for iid, i := range s.db.interactions {
		if refersTo(i.ProjectID, id) {
			delete(s.db.interactions, iid)
		}
	}
	for rid, r := range s.db.reminders {
		if refersTo(r.ProjectID, id) {
			delete(s.db.reminders, rid)
		}
	}

	delete(s.db.projects, id)
	return nil
}

type memInteractionStore struct{ db *memDB }

func (s *memInteractionStore) List(_ context.Context, ownerID string, params store.InteractionListParams) ([]models.Interaction, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var matched []models.Interaction
	for _, i := range s.db.interactions {
		if i.UserID != ownerID {
			continue
		}
		if params.ClientID != "" && !refersTo(i.ClientID, params.ClientID) {
			continue
		}
		if params.ProjectID != "" && !refersTo(i.ProjectID, params.ProjectID) {
			continue
		}
		s.db.attachInteractionRefs(&i)
		matched = append(matched, i)
	}

	sort.Slice(matched, func(a, b int) bool {
		return matched[a].Date.After(matched[b].Date)
	})
	return matched, nil
}

func (s *memInteractionStore) GetByID(_ context.Context, ownerID, id string) (*models.Interaction, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i, ok := s.db.interactions[id]
	if !ok || i.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	out := i
	s.db.attachInteractionRefs(&out)
	return &out, nil
}

func (s *memInteractionStore) Create(_ context.Context, interaction *models.Interaction) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stamp(&interaction.ID, &interaction.CreatedAt, &interaction.UpdatedAt)
	s.db.interactions[interaction.ID] = *interaction
	return nil
}

func (s *memInteractionStore) Update(_ context.Context, interaction *models.Interaction) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	interaction.UpdatedAt = time.Now()
	s.db.interactions[interaction.ID] = *interaction
	return nil
}

func (s *memInteractionStore) Delete(_ context.Context, ownerID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i, ok := s.db.interactions[id]
	if !ok || i.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(s.db.interactions, id)
	return nil
}

type memReminderStore struct{ db *memDB }

func (s *memReminderStore) List(_ context.Context, ownerID string, params store.ReminderListParams) ([]models.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now()
	weekAhead := now.AddDate(0, 0, 7)

	var matched []models.Reminder
	for _, r := range s.db.reminders {
		if r.UserID != ownerID {
			continue
		}
		if params.ClientID != "" && !refersTo(r.ClientID, params.ClientID) {
			continue
		}
		if params.ProjectID != "" && !refersTo(r.ProjectID, params.ProjectID) {
			continue
		}
		if params.DueThisWeek && (r.DueDate.Before(now) || r.DueDate.After(weekAhead)) {
			continue
		}
		s.db.attachReminderRefs(&r)
		matched = append(matched, r)
	}

	sort.Slice(matched, func(a, b int) bool {
		return matched[a].DueDate.Before(matched[b].DueDate)
	})
	return matched, nil
}

func (s *memReminderStore) GetByID(_ context.Context, ownerID, id string) (*models.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.reminders[id]
	if !ok || r.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	out := r
	s.db.attachReminderRefs(&out)
	return &out, nil
}

func (s *memReminderStore) Create(_ context.Context, reminder *models.Reminder) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stamp(&reminder.ID, &reminder.CreatedAt, &reminder.UpdatedAt)
	s.db.reminders[reminder.ID] = *reminder
	return nil
}

func (s *memReminderStore) Update(_ context.Context, reminder *models.Reminder) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	reminder.UpdatedAt = time.Now()
	s.db.reminders[reminder.ID] = *reminder
	return nil
}

func (s *memReminderStore) Delete(_ context.Context, ownerID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.reminders[id]
	if !ok || r.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(s.db.reminders, id)
	return nil
}

type memDashboardStore struct{ db *memDB }

func (s *memDashboardStore) CountClients(_ context.Context, ownerID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var count int64
	for _, c := range s.db.clients {
		if c.UserID == ownerID {
			count++
		}
	}
	return count, nil
}

func (s *memDashboardStore) CountProjects(_ context.Context, ownerID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var count int64
	for _, p := range s.db.projects {
		if p.UserID == ownerID {
			count++
		}
	}
	return count, nil
}

func (s *memDashboardStore) ProjectCountsByStatus(_ context.Context, ownerID string) (map[string]int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	counts := make(map[string]int64)
	for _, p := range s.db.projects {
		if p.UserID == ownerID {
			counts[p.Status]++
		}
	}
	return counts, nil
}

func (s *memDashboardStore) UpcomingReminders(_ context.Context, ownerID string, from, to time.Time, limit int) ([]models.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.Reminder
	for _, r := range s.db.reminders {
		if r.UserID != ownerID || r.Completed {
			continue
		}
		if r.DueDate.Before(from) || r.DueDate.After(to) {
			continue
		}
		s.db.attachReminderRefs(&r)
		matched = append(matched, r)
	}
	sort.Slice(matched, func(a, b int) bool {
		return matched[a].DueDate.Before(matched[b].DueDate)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memDashboardStore) RecentInteractions(_ context.Context, ownerID string, limit int) ([]models.Interaction, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.Interaction
	for _, i := range s.db.interactions {
		if i.UserID == ownerID {
			s.db.attachInteractionRefs(&i)
			matched = append(matched, i)
		}
	}
	sort.Slice(matched, func(a, b int) bool {
		return matched[a].Date.After(matched[b].Date)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memDashboardStore) UpcomingDeadlines(_ context.Context, ownerID string, from, to time.Time, limit int) ([]models.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.Project
	for _, p := range s.db.projects {
		if p.UserID != ownerID || p.Status == models.ProjectStatusCompleted || p.Deadline == nil {
			continue
		}
		if p.Deadline.Before(from) || p.Deadline.After(to) {
			continue
		}
		s.db.attachProjectClient(&p)
		matched = append(matched, p)
	}
	sort.Slice(matched, func(a, b int) bool {
		return matched[a].Deadline.Before(*matched[b].Deadline)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type memAuditSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memAuditSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

var (
	_ store.UserStore        = (*memUserStore)(nil)
	_ store.ClientStore      = (*memClientStore)(nil)
	_ store.ProjectStore     = (*memProjectStore)(nil)
	_ store.InteractionStore = (*memInteractionStore)(nil)
	_ store.ReminderStore    = (*memReminderStore)(nil)
	_ store.DashboardStore   = (*memDashboardStore)(nil)
)

// ---------------------------------------------------------------------
// HTTP harness
// ---------------------------------------------------------------------

type env struct {
	t      *testing.T
	db     *memDB
	router *gin.Engine
	issuer *auth.TokenIssuer
}

func newEnv(t *testing.T) *env {
	gin.SetMode(gin.TestMode)

	db := newMemDB()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	dispatcher := audit.NewDispatcher(&memAuditSink{}, zap.NewNop())

	clients := &memClientStore{db: db}
	projects := &memProjectStore{db: db}

	authHandler := handlers.NewAuthHandler(&memUserStore{db: db}, issuer)
	clientHandler := handlers.NewClientHandler(clients, dispatcher)
	projectHandler := handlers.NewProjectHandler(projects, clients, dispatcher)
	interactionHandler := handlers.NewInteractionHandler(&memInteractionStore{db: db}, clients, projects, dispatcher)
	reminderHandler := handlers.NewReminderHandler(&memReminderStore{db: db}, clients, projects, dispatcher)
	dashboardHandler := handlers.NewDashboardHandler(&memDashboardStore{db: db})

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(issuer))
	secured.GET("/auth/profile", authHandler.Profile)

	secured.GET("/clients", clientHandler.List)
	secured.POST("/clients", clientHandler.Create)
	secured.GET("/clients/:id", clientHandler.Get)
	secured.PUT("/clients/:id", clientHandler.Update)
	secured.DELETE("/clients/:id", clientHandler.Delete)

	secured.GET("/projects", projectHandler.List)
	secured.POST("/projects", projectHandler.Create)
	secured.GET("/projects/:id", projectHandler.Get)
	secured.PUT("/projects/:id", projectHandler.Update)
	secured.DELETE("/projects/:id", projectHandler.Delete)

	secured.GET("/interactions", interactionHandler.List)
	secured.POST("/interactions", interactionHandler.Create)
	secured.GET("/interactions/:id", interactionHandler.Get)
	secured.PUT("/interactions/:id", interactionHandler.Update)
	secured.DELETE("/interactions/:id", interactionHandler.Delete)

	secured.GET("/reminders", reminderHandler.List)
	secured.POST("/reminders", reminderHandler.Create)
	secured.GET("/reminders/:id", reminderHandler.Get)
	secured.PUT("/reminders/:id", reminderHandler.Update)
	secured.DELETE("/reminders/:id", reminderHandler.Delete)

	secured.GET("/dashboard", dashboardHandler.Get)

	return &env{t: t, db: db, router: r, issuer: issuer}
}

func (e *env) request(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerUser creates a user through the API and returns its id and a
// usable bearer token.
func (e *env) registerUser(email string) (string, string) {
	e.t.Helper()

	rec := e.request(http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "secret-password",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(e.t, rec)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func (e *env) createClient(token, name string) string {
	e.t.Helper()

	rec := e.request(http.MethodPost, "/api/clients", token, gin.H{
		"name":  name,
		"email": strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com",
		"phone": "555-0100",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(e.t, rec)
	return body["client"].(map[string]any)["id"].(string)
}
