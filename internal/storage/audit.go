package storage

import (
	"context"
	"fmt"

	"github.com/RaX911/API-Key-Project/internal/models"

	"gorm.io/gorm"
)

func (s *GormStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if err := s.conn(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

func (s *GormStore) ListAuditLogs(ctx context.Context, filter AuditFilter) (Page[models.AuditLog], error) {
	page := Page[models.AuditLog]{Items: []models.AuditLog{}}

	query := s.conn(ctx).Model(&models.AuditLog{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if err := query.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("count audit logs: %w", err)
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&page.Items).Error; err != nil {
		return page, fmt.Errorf("list audit logs: %w", err)
	}
	return page, nil
}
