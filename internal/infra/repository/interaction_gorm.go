package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

type InteractionGormRepository struct {
	db *gorm.DB
}

func NewInteractionGormRepository(db *gorm.DB) *InteractionGormRepository {
	return &InteractionGormRepository{db: db}
}

func (r *InteractionGormRepository) List(
	ctx context.Context,
	ownerID string,
	params store.InteractionListParams,
) ([]models.Interaction, error) {

	q := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID)

	if params.ClientID != "" {
		q = q.Where("client_id = ?", params.ClientID)
	}

	if params.ProjectID != "" {
		q = q.Where("project_id = ?", params.ProjectID)
	}

	var interactions []models.Interaction
	if err := q.
		Preload("Client").
		Preload("Project").
		Order("date DESC").
		Find(&interactions).Error; err != nil {
		return nil, err
	}

	return interactions, nil
}

func (r *InteractionGormRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Interaction, error) {
	var interaction models.Interaction
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&interaction).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &interaction, nil
}

func (r *InteractionGormRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

func (r *InteractionGormRepository) Update(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(interaction).Error
}

func (r *InteractionGormRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Interaction{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
