package validation

import (
	"strings"
	"time"

	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"
)

// ═══════════════════════════════════════════════════════════
// API KEYS
// ═══════════════════════════════════════════════════════════

type CreateAPIKeyRequest struct {
	Key         string     `json:"key" validate:"notblank,max=128"`
	Owner       string     `json:"owner" validate:"notblank,max=255"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	UsageLimit  *int       `json:"usageLimit" validate:"omitempty,gt=0"`
	Permissions []string   `json:"permissions" validate:"omitempty,dive,oneof=read write admin"`
}

func (r *CreateAPIKeyRequest) Model() *models.APIKey {
	key := &models.APIKey{
		Key:       strings.TrimSpace(r.Key),
		Owner:     strings.TrimSpace(r.Owner),
		ExpiresAt: r.ExpiresAt,
	}
	if r.UsageLimit != nil {
		key.UsageLimit = *r.UsageLimit
	}
	if len(r.Permissions) > 0 {
		// Names were checked by the oneof rule.
		key.Permissions, _ = models.ParsePermissions(r.Permissions)
	}
	return key
}

// ═══════════════════════════════════════════════════════════
// BTS TOWERS
// ═══════════════════════════════════════════════════════════

type CreateTowerRequest struct {
	CellID         string   `json:"cellId" validate:"notblank,max=64"`
	Lac            string   `json:"lac" validate:"notblank,max=64"`
	Mcc            string   `json:"mcc" validate:"notblank,max=8"`
	Mnc            string   `json:"mnc" validate:"notblank,max=8"`
	Lat            *float64 `json:"lat" validate:"required,finite"`
	Long           *float64 `json:"long" validate:"required,finite"`
	Address        *string  `json:"address"`
	VillageID      *uint    `json:"villageId"`
	Operator       string   `json:"operator" validate:"notblank,max=64"`
	NetworkType    string   `json:"networkType" validate:"required,oneof=2G 3G 4G 5G"`
	Height         *int     `json:"height" validate:"omitempty,gte=0"`
	CoverageRadius *int     `json:"coverageRadius" validate:"omitempty,gte=0"`
}

func (r *CreateTowerRequest) Model() *models.BtsTower {
	return &models.BtsTower{
		CellID:         strings.TrimSpace(r.CellID),
		Lac:            strings.TrimSpace(r.Lac),
		Mcc:            strings.TrimSpace(r.Mcc),
		Mnc:            strings.TrimSpace(r.Mnc),
		Lat:            *r.Lat,
		Long:           *r.Long,
		Address:        r.Address,
		VillageID:      r.VillageID,
		Operator:       strings.TrimSpace(r.Operator),
		NetworkType:    models.NetworkType(r.NetworkType),
		Height:         r.Height,
		CoverageRadius: r.CoverageRadius,
	}
}

// UpdateTowerRequest is a partial update: absent fields stay as they are.
// Clear names nullable fields to reset, since null and absent decode alike.
type UpdateTowerRequest struct {
	CellID         *string  `json:"cellId" validate:"omitempty,notblank,max=64"`
	Lac            *string  `json:"lac" validate:"omitempty,notblank,max=64"`
	Mcc            *string  `json:"mcc" validate:"omitempty,notblank,max=8"`
	Mnc            *string  `json:"mnc" validate:"omitempty,notblank,max=8"`
	Lat            *float64 `json:"lat" validate:"omitempty,finite"`
	Long           *float64 `json:"long" validate:"omitempty,finite"`
	Address        *string  `json:"address"`
	VillageID      *uint    `json:"villageId"`
	Operator       *string  `json:"operator" validate:"omitempty,notblank,max=64"`
	NetworkType    *string  `json:"networkType" validate:"omitempty,oneof=2G 3G 4G 5G"`
	Height         *int     `json:"height" validate:"omitempty,gte=0"`
	CoverageRadius *int     `json:"coverageRadius" validate:"omitempty,gte=0"`
	Clear          []string `json:"clear" validate:"omitempty,dive,oneof=address villageId"`
}

func (r *UpdateTowerRequest) Patch() storage.TowerPatch {
	patch := storage.TowerPatch{
		CellID:         r.CellID,
		Lac:            r.Lac,
		Mcc:            r.Mcc,
		Mnc:            r.Mnc,
		Lat:            r.Lat,
		Long:           r.Long,
		Address:        r.Address,
		VillageID:      r.VillageID,
		Operator:       r.Operator,
		Height:         r.Height,
		CoverageRadius: r.CoverageRadius,
	}
	if r.NetworkType != nil {
		nt := models.NetworkType(*r.NetworkType)
		patch.NetworkType = &nt
	}
	for _, field := range r.Clear {
		switch field {
		case "address":
			patch.ClearAddress = true
		case "villageId":
			patch.ClearVillage = true
		}
	}
	return patch
}

// ═══════════════════════════════════════════════════════════
// MSISDN
// ═══════════════════════════════════════════════════════════

type CreateMSISDNRequest struct {
	Msisdn         string  `json:"msisdn" validate:"notblank,max=20,number"`
	Imsi           string  `json:"imsi" validate:"notblank,max=20"`
	Imei           string  `json:"imei" validate:"notblank,max=20"`
	Iccid          *string `json:"iccid" validate:"omitempty,max=22"`
	Provider       string  `json:"provider" validate:"notblank,max=64"`
	Status         string  `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	RegisteredName *string `json:"registeredName"`
	RegisteredNik  *string `json:"registeredNik" validate:"omitempty,max=20"`
	LastBtsID      *uint   `json:"lastBtsId"`
}

func (r *CreateMSISDNRequest) Model() *models.MsisdnRecord {
	return &models.MsisdnRecord{
		Msisdn:         strings.TrimSpace(r.Msisdn),
		Imsi:           strings.TrimSpace(r.Imsi),
		Imei:           strings.TrimSpace(r.Imei),
		Iccid:          r.Iccid,
		Provider:       strings.TrimSpace(r.Provider),
		Status:         models.SubscriberStatus(r.Status),
		RegisteredName: r.RegisteredName,
		RegisteredNik:  r.RegisteredNik,
		LastBtsID:      r.LastBtsID,
	}
}

// ═══════════════════════════════════════════════════════════
// REGIONS
// ═══════════════════════════════════════════════════════════

type CreateIslandRequest struct {
	Name    string   `json:"name" validate:"notblank,max=255"`
	AltName *string  `json:"altName"`
	Code    *string  `json:"code" validate:"omitempty,notblank,max=64"`
	Lat     *float64 `json:"lat" validate:"omitempty,finite"`
	Long    *float64 `json:"long" validate:"omitempty,finite"`
}

func (r *CreateIslandRequest) Model() *models.Island {
	return &models.Island{
		Name:    strings.TrimSpace(r.Name),
		AltName: r.AltName,
		Code:    r.Code,
		Lat:     r.Lat,
		Long:    r.Long,
	}
}

type CreateProvinceRequest struct {
	Name     string  `json:"name" validate:"notblank,max=255"`
	IslandID *uint   `json:"islandId"`
	Capital  *string `json:"capital"`
}

func (r *CreateProvinceRequest) Model() *models.Province {
	return &models.Province{Name: strings.TrimSpace(r.Name), IslandID: r.IslandID, Capital: r.Capital}
}

type CreateRegencyRequest struct {
	Name       string `json:"name" validate:"notblank,max=255"`
	ProvinceID *uint  `json:"provinceId"`
	Type       string `json:"type" validate:"required,oneof=KABUPATEN KOTA"`
}

func (r *CreateRegencyRequest) Model() *models.Regency {
	return &models.Regency{
		Name:       strings.TrimSpace(r.Name),
		ProvinceID: r.ProvinceID,
		Type:       models.RegencyType(r.Type),
	}
}

type CreateDistrictRequest struct {
	Name      string `json:"name" validate:"notblank,max=255"`
	RegencyID *uint  `json:"regencyId"`
}

func (r *CreateDistrictRequest) Model() *models.District {
	return &models.District{Name: strings.TrimSpace(r.Name), RegencyID: r.RegencyID}
}

type CreateVillageRequest struct {
	Name       string  `json:"name" validate:"notblank,max=255"`
	DistrictID *uint   `json:"districtId"`
	PostalCode *string `json:"postalCode" validate:"omitempty,max=16"`
}

func (r *CreateVillageRequest) Model() *models.Village {
	return &models.Village{Name: strings.TrimSpace(r.Name), DistrictID: r.DistrictID, PostalCode: r.PostalCode}
}

// ═══════════════════════════════════════════════════════════
// AUTH
// ═══════════════════════════════════════════════════════════

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
