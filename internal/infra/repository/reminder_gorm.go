package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

type ReminderGormRepository struct {
	db *gorm.DB
}

func NewReminderGormRepository(db *gorm.DB) *ReminderGormRepository {
	return &ReminderGormRepository{db: db}
}

func (r *ReminderGormRepository) List(
	ctx context.Context,
	ownerID string,
	params store.ReminderListParams,
) ([]models.Reminder, error) {

	q := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID)

	if params.ClientID != "" {
		q = q.Where("client_id = ?", params.ClientID)
	}

	if params.ProjectID != "" {
		q = q.Where("project_id = ?", params.ProjectID)
	}

	if params.DueThisWeek {
		now := time.Now()
		q = q.Where("due_date >= ? AND due_date <= ?", now, now.AddDate(0, 0, 7))
	}

	var reminders []models.Reminder
	if err := q.
		Preload("Client").
		Preload("Project").
		Order("due_date ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}

	return reminders, nil
}

func (r *ReminderGormRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&reminder).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *ReminderGormRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *ReminderGormRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(reminder).Error
}

func (r *ReminderGormRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Reminder{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
