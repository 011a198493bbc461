package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

type ProjectGormRepository struct {
	db *gorm.DB
}

func NewProjectGormRepository(db *gorm.DB) *ProjectGormRepository {
	return &ProjectGormRepository{db: db}
}

func (r *ProjectGormRepository) List(
	ctx context.Context,
	ownerID string,
	params store.ProjectListParams,
) ([]models.Project, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("user_id = ?", ownerID)

	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?",
			like, like,
		)
	}

	if params.Status != "" {
		q = q.Where("status = ?", params.Status)
	}

	if params.ClientID != "" {
		q = q.Where("client_id = ?", params.ClientID)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := q.
		Preload("Client").
		Order(orderClause(params.PageRequest)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, totalCount, nil
}

func (r *ProjectGormRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&project).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectGormRepository) Exists(ctx context.Context, ownerID, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectGormRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectGormRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(project).Error
}

// Delete removes the project and its interactions/reminders in one
// transaction.
func (r *ProjectGormRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.
			Where("id = ? AND user_id = ?", id, ownerID).
			First(&project).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		if err := tx.
			Where("project_id = ?", id).
			Delete(&models.Interaction{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("project_id = ?", id).
			Delete(&models.Reminder{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})
}
