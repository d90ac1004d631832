package storage

import (
	"context"
	"fmt"

	"github.com/RaX911/API-Key-Project/internal/models"
)

// GetStats runs one COUNT per counter. Nothing is cached.
func (s *GormStore) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	if err := s.conn(ctx).Model(&models.BtsTower{}).Count(&stats.TotalBts).Error; err != nil {
		return nil, fmt.Errorf("count towers: %w", err)
	}
	if err := s.conn(ctx).Model(&models.MsisdnRecord{}).Count(&stats.TotalMsisdn).Error; err != nil {
		return nil, fmt.Errorf("count msisdns: %w", err)
	}
	if err := s.conn(ctx).Model(&models.APIKey{}).
		Where("status = ?", models.KeyStatusActive).
		Count(&stats.ActiveKeys).Error; err != nil {
		return nil, fmt.Errorf("count active keys: %w", err)
	}
	if err := s.conn(ctx).Model(&models.Province{}).Count(&stats.RegionsCovered).Error; err != nil {
		return nil, fmt.Errorf("count provinces: %w", err)
	}
	return stats, nil
}
