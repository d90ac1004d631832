package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RaX911/API-Key-Project/internal/models"

	"gorm.io/gorm"
)

// DefaultMSISDNLimit is used when a listing does not name a limit.
const DefaultMSISDNLimit = 50

func (s *GormStore) GetMSISDN(ctx context.Context, msisdn string) (*models.MsisdnRecord, error) {
	var record models.MsisdnRecord
	if err := s.first(ctx, &record, "msisdn = ?", msisdn); err != nil {
		return nil, err
	}
	return &record, nil
}

// lookupRow is one row of the subscriber → province left-join chain.
type lookupRow struct {
	ID             uint
	Msisdn         string
	Imsi           string
	Imei           string
	Iccid          *string
	Provider       string
	Status         models.SubscriberStatus
	RegisteredName *string
	RegisteredNik  *string
	LastBtsID      *uint
	LastActive     time.Time

	TowerID       *uint
	TowerLat      *float64
	TowerLong     *float64
	TowerAddress  *string
	TowerCellID   *string
	TowerLac      *string
	TowerMcc      *string
	TowerMnc      *string
	TowerOperator *string

	VillageName  *string
	DistrictName *string
	RegencyName  *string
	ProvinceName *string
}

const lookupColumns = `m.id, m.msisdn, m.imsi, m.imei, m.iccid, m.provider, m.status,
	m.registered_name, m.registered_nik, m.last_bts_id, m.last_active,
	t.id AS tower_id, t.lat AS tower_lat, t.long AS tower_long, t.address AS tower_address,
	t.cell_id AS tower_cell_id, t.lac AS tower_lac, t.mcc AS tower_mcc, t.mnc AS tower_mnc,
	t.operator AS tower_operator,
	v.name AS village_name, d.name AS district_name, r.name AS regency_name, p.name AS province_name`

func (s *GormStore) LookupMSISDNDetails(ctx context.Context, msisdn string) (*models.MsisdnLookup, error) {
	var row lookupRow
	res := s.conn(ctx).
		Table("msisdn_data AS m").
		Select(lookupColumns).
		Joins("LEFT JOIN bts_towers t ON t.id = m.last_bts_id").
		Joins("LEFT JOIN villages v ON v.id = t.village_id").
		Joins("LEFT JOIN districts d ON d.id = v.district_id").
		Joins("LEFT JOIN regencies r ON r.id = d.regency_id").
		Joins("LEFT JOIN provinces p ON p.id = r.province_id").
		Where("m.msisdn = ?", msisdn).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("lookup msisdn %s: %w", msisdn, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return row.toLookup(), nil
}

func (r *lookupRow) toLookup() *models.MsisdnLookup {
	out := &models.MsisdnLookup{
		MsisdnRecord: models.MsisdnRecord{
			ID:             r.ID,
			Msisdn:         r.Msisdn,
			Imsi:           r.Imsi,
			Imei:           r.Imei,
			Iccid:          r.Iccid,
			Provider:       r.Provider,
			Status:         r.Status,
			RegisteredName: r.RegisteredName,
			RegisteredNik:  r.RegisteredNik,
			LastBtsID:      r.LastBtsID,
			LastActive:     r.LastActive,
		},
		Region: models.Region{
			Village:  nonEmpty(r.VillageName),
			District: nonEmpty(r.DistrictName),
			Regency:  nonEmpty(r.RegencyName),
			Province: nonEmpty(r.ProvinceName),
		},
	}

	if r.TowerID != nil {
		loc := &models.Location{
			Address: r.TowerAddress,
			TowerInfo: &models.TowerInfo{
				CellID:   deref(r.TowerCellID),
				Lac:      deref(r.TowerLac),
				Mcc:      deref(r.TowerMcc),
				Mnc:      deref(r.TowerMnc),
				Operator: deref(r.TowerOperator),
			},
		}
		if r.TowerLat != nil {
			loc.Lat = *r.TowerLat
		}
		if r.TowerLong != nil {
			loc.Long = *r.TowerLong
		}
		out.Location = loc
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *GormStore) ListMSISDNs(ctx context.Context, filter MSISDNFilter) (Page[models.MsisdnRecord], error) {
	page := Page[models.MsisdnRecord]{Items: []models.MsisdnRecord{}}

	query := s.conn(ctx).Model(&models.MsisdnRecord{})
	if filter.Search != "" {
		query = query.Where("msisdn LIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("count msisdns: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultMSISDNLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&page.Items).Error
	if err != nil {
		return page, fmt.Errorf("list msisdns: %w", err)
	}
	return page, nil
}

func (s *GormStore) CreateMSISDN(ctx context.Context, record *models.MsisdnRecord) error {
	record.Msisdn = strings.TrimSpace(record.Msisdn)
	for _, r := range []struct{ field, value string }{
		{"msisdn", record.Msisdn},
		{"imsi", record.Imsi},
		{"imei", record.Imei},
		{"provider", record.Provider},
	} {
		if strings.TrimSpace(r.value) == "" {
			return newValidationError(r.field, r.field+" is required")
		}
	}
	if err := s.ensureExists(ctx, &models.BtsTower{}, record.LastBtsID, "lastBtsId"); err != nil {
		return err
	}

	taken, err := s.exists(ctx, &models.MsisdnRecord{}, "msisdn", record.Msisdn)
	if err != nil {
		return fmt.Errorf("create msisdn: %w", err)
	}
	if taken {
		return newValidationError("msisdn", "msisdn already exists")
	}

	record.ID = 0
	if err := s.insert(ctx, record, "msisdn", "msisdn already exists"); err != nil {
		if IsValidation(err) {
			return err
		}
		return fmt.Errorf("create msisdn: %w", err)
	}
	return nil
}
