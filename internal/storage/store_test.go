package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/RaX911/API-Key-Project/internal/database"
	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store over a private in-memory SQLite database.
func newTestStore(t *testing.T) *storage.GormStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	db, err := database.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return storage.NewGormStore(db)
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func newTower(operator, address string) *models.BtsTower {
	return &models.BtsTower{
		CellID:      "CID-" + uuid.NewString()[:8],
		Lac:         "LAC-1",
		Mcc:         "510",
		Mnc:         "10",
		Lat:         -6.2,
		Long:        106.8,
		Address:     strPtr(address),
		Operator:    operator,
		NetworkType: models.Network4G,
	}
}

func newSubscriber(msisdn string, towerID *uint) *models.MsisdnRecord {
	return &models.MsisdnRecord{
		Msisdn:    msisdn,
		Imsi:      "510100000000001",
		Imei:      "358921000000001",
		Provider:  "Telkomsel",
		LastBtsID: towerID,
	}
}

// regionChain creates island → province → regency → district → village and
// returns the village.
func regionChain(t *testing.T, s *storage.GormStore) *models.Village {
	t.Helper()
	ctx := context.Background()

	island := &models.Island{Name: "Java", Code: strPtr("JAVA")}
	require.NoError(t, s.CreateIsland(ctx, island))
	province := &models.Province{Name: "DKI Jakarta", IslandID: &island.ID}
	require.NoError(t, s.CreateProvince(ctx, province))
	regency := &models.Regency{Name: "Jakarta Pusat", ProvinceID: &province.ID, Type: models.RegencyKota}
	require.NoError(t, s.CreateRegency(ctx, regency))
	district := &models.District{Name: "Gambir", RegencyID: &regency.ID}
	require.NoError(t, s.CreateDistrict(ctx, district))
	village := &models.Village{Name: "Gambir", DistrictID: &district.ID, PostalCode: strPtr("10110")}
	require.NoError(t, s.CreateVillage(ctx, village))
	return village
}
