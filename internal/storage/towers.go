package storage

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/RaX911/API-Key-Project/internal/models"

	"gorm.io/gorm"
)

func (s *GormStore) ListTowers(ctx context.Context, filter TowerFilter) (Page[models.BtsTower], error) {
	page := Page[models.BtsTower]{Items: []models.BtsTower{}}

	query := s.conn(ctx).Model(&models.BtsTower{})
	if filter.Search != "" {
		query = query.Where("LOWER(COALESCE(address, '')) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Operator != "" {
		query = query.Where("operator = ?", filter.Operator)
	}

	// Count on its own session so Limit/Offset below never leak into it.
	if err := query.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("count towers: %w", err)
	}

	query = query.Order("updated_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&page.Items).Error; err != nil {
		return page, fmt.Errorf("list towers: %w", err)
	}
	return page, nil
}

func (s *GormStore) GetTower(ctx context.Context, id uint) (*models.BtsTower, error) {
	var tower models.BtsTower
	if err := s.first(ctx, &tower, "id = ?", id); err != nil {
		return nil, err
	}
	return &tower, nil
}

func (s *GormStore) CreateTower(ctx context.Context, tower *models.BtsTower) error {
	if err := checkTower(tower); err != nil {
		return err
	}
	if err := s.ensureExists(ctx, &models.Village{}, tower.VillageID, "villageId"); err != nil {
		return err
	}

	tower.ID = 0
	tower.UpdatedAt = time.Now()
	if err := s.conn(ctx).Create(tower).Error; err != nil {
		return fmt.Errorf("create tower: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateTower(ctx context.Context, id uint, patch TowerPatch) (*models.BtsTower, error) {
	updates, err := patch.columns()
	if err != nil {
		return nil, err
	}
	if err := s.ensureExists(ctx, &models.Village{}, patch.VillageID, "villageId"); err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now()

	res := s.conn(ctx).Model(&models.BtsTower{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update tower %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetTower(ctx, id)
}

func (s *GormStore) DeleteTower(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MsisdnRecord{}).
			Where("last_bts_id = ?", id).
			Update("last_bts_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.BtsTower{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete tower %d: %w", id, err)
	}
	return nil
}

func checkTower(t *models.BtsTower) error {
	required := []struct {
		field, value string
	}{
		{"cellId", t.CellID},
		{"lac", t.Lac},
		{"mcc", t.Mcc},
		{"mnc", t.Mnc},
		{"operator", t.Operator},
		{"networkType", string(t.NetworkType)},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return newValidationError(r.field, r.field+" is required")
		}
	}
	if !isFinite(t.Lat) {
		return newValidationError("lat", "lat must be a finite number")
	}
	if !isFinite(t.Long) {
		return newValidationError("long", "long must be a finite number")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// columns maps the set fields of the patch to column names.
func (p TowerPatch) columns() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	for _, f := range []struct {
		field, column string
		value         *string
	}{
		{"cellId", "cell_id", p.CellID},
		{"lac", "lac", p.Lac},
		{"mcc", "mcc", p.Mcc},
		{"mnc", "mnc", p.Mnc},
		{"operator", "operator", p.Operator},
	} {
		if f.value == nil {
			continue
		}
		if strings.TrimSpace(*f.value) == "" {
			return nil, newValidationError(f.field, f.field+" cannot be empty")
		}
		updates[f.column] = *f.value
	}

	if p.Lat != nil {
		if !isFinite(*p.Lat) {
			return nil, newValidationError("lat", "lat must be a finite number")
		}
		updates["lat"] = *p.Lat
	}
	if p.Long != nil {
		if !isFinite(*p.Long) {
			return nil, newValidationError("long", "long must be a finite number")
		}
		updates["long"] = *p.Long
	}
	switch {
	case p.ClearAddress && p.Address != nil:
		return nil, newValidationError("address", "address cannot be set and cleared at once")
	case p.ClearAddress:
		updates["address"] = nil
	case p.Address != nil:
		updates["address"] = *p.Address
	}
	switch {
	case p.ClearVillage && p.VillageID != nil:
		return nil, newValidationError("villageId", "villageId cannot be set and cleared at once")
	case p.ClearVillage:
		updates["village_id"] = nil
	case p.VillageID != nil:
		updates["village_id"] = *p.VillageID
	}
	if p.NetworkType != nil {
		updates["network_type"] = *p.NetworkType
	}
	if p.Height != nil {
		updates["height"] = *p.Height
	}
	if p.CoverageRadius != nil {
		updates["coverage_radius"] = *p.CoverageRadius
	}
	return updates, nil
}
