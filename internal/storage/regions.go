package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/RaX911/API-Key-Project/internal/models"
)

func (s *GormStore) ListIslands(ctx context.Context) ([]models.Island, error) {
	islands := []models.Island{}
	if err := s.conn(ctx).Order("id ASC").Find(&islands).Error; err != nil {
		return nil, fmt.Errorf("list islands: %w", err)
	}
	return islands, nil
}

func (s *GormStore) CreateIsland(ctx context.Context, island *models.Island) error {
	if err := requireName(island.Name); err != nil {
		return err
	}
	if island.Code != nil {
		taken, err := s.exists(ctx, &models.Island{}, "code", *island.Code)
		if err != nil {
			return fmt.Errorf("create island: %w", err)
		}
		if taken {
			return newValidationError("code", "code already exists")
		}
	}

	island.ID = 0
	if err := s.insert(ctx, island, "code", "code already exists"); err != nil {
		if IsValidation(err) {
			return err
		}
		return fmt.Errorf("create island: %w", err)
	}
	return nil
}

func (s *GormStore) ListProvinces(ctx context.Context, islandID *uint) ([]models.Province, error) {
	provinces := []models.Province{}
	query := s.conn(ctx).Order("name ASC")
	if islandID != nil {
		query = query.Where("island_id = ?", *islandID)
	}
	if err := query.Find(&provinces).Error; err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	return provinces, nil
}

func (s *GormStore) CreateProvince(ctx context.Context, province *models.Province) error {
	if err := requireName(province.Name); err != nil {
		return err
	}
	if err := s.ensureExists(ctx, &models.Island{}, province.IslandID, "islandId"); err != nil {
		return err
	}
	province.ID = 0
	if err := s.conn(ctx).Create(province).Error; err != nil {
		return fmt.Errorf("create province: %w", err)
	}
	return nil
}

func (s *GormStore) CreateRegency(ctx context.Context, regency *models.Regency) error {
	if err := requireName(regency.Name); err != nil {
		return err
	}
	if regency.Type != models.RegencyKabupaten && regency.Type != models.RegencyKota {
		return newValidationError("type", "type must be KABUPATEN or KOTA")
	}
	if err := s.ensureExists(ctx, &models.Province{}, regency.ProvinceID, "provinceId"); err != nil {
		return err
	}
	regency.ID = 0
	if err := s.conn(ctx).Create(regency).Error; err != nil {
		return fmt.Errorf("create regency: %w", err)
	}
	return nil
}

func (s *GormStore) CreateDistrict(ctx context.Context, district *models.District) error {
	if err := requireName(district.Name); err != nil {
		return err
	}
	if err := s.ensureExists(ctx, &models.Regency{}, district.RegencyID, "regencyId"); err != nil {
		return err
	}
	district.ID = 0
	if err := s.conn(ctx).Create(district).Error; err != nil {
		return fmt.Errorf("create district: %w", err)
	}
	return nil
}

func (s *GormStore) ListVillages(ctx context.Context, districtID *uint) ([]models.Village, error) {
	villages := []models.Village{}
	query := s.conn(ctx).Order("name ASC")
	if districtID != nil {
		query = query.Where("district_id = ?", *districtID)
	}
	if err := query.Find(&villages).Error; err != nil {
		return nil, fmt.Errorf("list villages: %w", err)
	}
	return villages, nil
}

func (s *GormStore) CreateVillage(ctx context.Context, village *models.Village) error {
	if err := requireName(village.Name); err != nil {
		return err
	}
	if err := s.ensureExists(ctx, &models.District{}, village.DistrictID, "districtId"); err != nil {
		return err
	}
	village.ID = 0
	if err := s.conn(ctx).Create(village).Error; err != nil {
		return fmt.Errorf("create village: %w", err)
	}
	return nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("name", "name is required")
	}
	return nil
}
