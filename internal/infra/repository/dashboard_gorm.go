package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/clienthubdev/clienthub-api/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) CountClients(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *DashboardGormRepository) CountProjects(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *DashboardGormRepository) ProjectCountsByStatus(ctx context.Context, ownerID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *DashboardGormRepository) UpcomingReminders(
	ctx context.Context,
	ownerID string,
	from, to time.Time,
	limit int,
) ([]models.Reminder, error) {

	var reminders []models.Reminder
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Where("user_id = ? AND completed = ? AND due_date >= ? AND due_date <= ?",
			ownerID, false, from, to).
		Order("due_date ASC").
		Limit(limit).
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *DashboardGormRepository) RecentInteractions(
	ctx context.Context,
	ownerID string,
	limit int,
) ([]models.Interaction, error) {

	var interactions []models.Interaction
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Limit(limit).
		Find(&interactions).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *DashboardGormRepository) UpcomingDeadlines(
	ctx context.Context,
	ownerID string,
	from, to time.Time,
	limit int,
) ([]models.Project, error) {

	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("user_id = ? AND deadline >= ? AND deadline <= ? AND status <> ?",
			ownerID, from, to, models.ProjectStatusCompleted).
		Order("deadline ASC").
		Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
