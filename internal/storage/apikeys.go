package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/RaX911/API-Key-Project/internal/models"

	"gorm.io/gorm"
)

func (s *GormStore) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	keys := []models.APIKey{}
	if err := s.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

func (s *GormStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	key.Key = strings.TrimSpace(key.Key)
	key.Owner = strings.TrimSpace(key.Owner)
	if key.Key == "" {
		return newValidationError("key", "key is required")
	}
	if key.Owner == "" {
		return newValidationError("owner", "owner is required")
	}

	if key.Status == "" {
		key.Status = models.KeyStatusActive
	}
	if key.UsageLimit == 0 {
		key.UsageLimit = models.DefaultUsageLimit
	}
	if key.Permissions == 0 {
		key.Permissions = models.NewPermissionSet(models.PermRead)
	}
	key.ID = 0
	key.UsageCount = 0

	taken, err := s.exists(ctx, &models.APIKey{}, "key", key.Key)
	if err != nil {
		return fmt.Errorf("create api key: %w", err)
	}
	if taken {
		return newValidationError("key", "key already exists")
	}

	if err := s.insert(ctx, key, "key", "key already exists"); err != nil {
		if IsValidation(err) {
			return err
		}
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *GormStore) RevokeAPIKey(ctx context.Context, id uint) (*models.APIKey, bool, error) {
	var key models.APIKey
	if err := s.first(ctx, &key, "id = ?", id); err != nil {
		return nil, false, err
	}

	// Conditional on the current status so concurrent revokes report one change.
	res := s.conn(ctx).Model(&models.APIKey{}).
		Where("id = ? AND status <> ?", id, models.KeyStatusRevoked).
		Update("status", models.KeyStatusRevoked)
	if res.Error != nil {
		return nil, false, fmt.Errorf("revoke api key %d: %w", id, res.Error)
	}

	key.Status = models.KeyStatusRevoked
	return &key, res.RowsAffected > 0, nil
}

func (s *GormStore) GetAPIKeyByToken(ctx context.Context, token string) (*models.APIKey, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var key models.APIKey
	if err := s.first(ctx, &key, "key = ?", token); err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *GormStore) IncrementAPIKeyUsage(ctx context.Context, id uint) error {
	res := s.conn(ctx).Model(&models.APIKey{}).
		Where("id = ? AND status = ?", id, models.KeyStatusActive).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment usage of api key %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
