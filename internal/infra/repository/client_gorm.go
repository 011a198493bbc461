package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clienthubdev/clienthub-api/internal/models"
	"github.com/clienthubdev/clienthub-api/internal/store"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) List(
	ctx context.Context,
	ownerID string,
	params store.ClientListParams,
) ([]models.Client, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("user_id = ?", ownerID)

	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(COALESCE(company, '')) LIKE ?",
			like, like, like, like,
		)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	if err := q.
		Order(orderClause(params.PageRequest)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, totalCount, nil
}

func (r *ClientGormRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("Interactions").
		Preload("Reminders").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) Exists(ctx context.Context, ownerID, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientGormRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(client).Error
}

// Delete removes the client and everything hanging off it: its projects,
// the interactions/reminders referencing it directly, and the ones
// referencing its projects. One transaction, so a partial cascade is
// never observable.
func (r *ClientGormRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.
			Where("id = ? AND user_id = ?", id, ownerID).
			First(&client).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		projectIDs := func() *gorm.DB {
			return tx.Model(&models.Project{}).
				Select("id").
				Where("client_id = ?", id)
		}

		if err := tx.
			Where("client_id = ? OR project_id IN (?)", id, projectIDs()).
			Delete(&models.Interaction{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("client_id = ? OR project_id IN (?)", id, projectIDs()).
			Delete(&models.Reminder{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("client_id = ?", id).
			Delete(&models.Project{}).Error; err != nil {
			return err
		}

		return tx.Delete(&client).Error
	})
}

func orderClause(p store.PageRequest) string {
	return fmt.Sprintf("%s %s", p.SortBy, strings.ToUpper(p.SortOrder))
}
