package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements client.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByMembership finds a client by membership number
func (r *GormClientRepository) FindByMembership(ctx context.Context, membership string) (*client.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		First(&model, "membership_number = ?", membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all clients ordered by creation time descending
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Client, error) {
	var clientModels []models.ClientModel
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}
	return toDomainClients(clientModels), nil
}

// Search finds clients whose name, CNIC, passport, agent or membership
// number contains the query, case-insensitively
func (r *GormClientRepository) Search(ctx context.Context, query string) ([]client.Client, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(cnic) LIKE ? OR LOWER(passport_number) LIKE ? OR LOWER(agent_name) LIKE ? OR LOWER(membership_number) LIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&clientModels).Error; err != nil {
		return nil, err
	}
	return toDomainClients(clientModels), nil
}

// ListMembershipNumbers returns every assigned membership number
func (r *GormClientRepository) ListMembershipNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Pluck("membership_number", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	var model models.ClientModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a client by membership number
func (r *GormClientRepository) Delete(ctx context.Context, membership string) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ClientModel{}, "membership_number = ?", membership)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all clients
func (r *GormClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ClientModel{}).Count(&count).Error
	return count, err
}

func toDomainClients(clientModels []models.ClientModel) []client.Client {
	clients := make([]client.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = *clientModels[i].ToDomain()
	}
	return clients
}

var _ client.ClientRepository = (*GormClientRepository)(nil)
