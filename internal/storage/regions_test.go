package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIslandsAndProvinces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	java := &models.Island{Name: "Java", Code: strPtr("JAVA")}
	sumatra := &models.Island{Name: "Sumatra", Code: strPtr("SUMATRA")}
	require.NoError(t, s.CreateIsland(ctx, java))
	require.NoError(t, s.CreateIsland(ctx, sumatra))

	islands, err := s.ListIslands(ctx)
	require.NoError(t, err)
	require.Len(t, islands, 2)
	assert.Equal(t, "Java", islands[0].Name)

	for _, p := range []*models.Province{
		{Name: "West Java", IslandID: &java.ID},
		{Name: "DKI Jakarta", IslandID: &java.ID},
		{Name: "Aceh", IslandID: &sumatra.ID},
	} {
		require.NoError(t, s.CreateProvince(ctx, p))
	}

	all, err := s.ListProvinces(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onJava, err := s.ListProvinces(ctx, &java.ID)
	require.NoError(t, err)
	require.Len(t, onJava, 2)
	assert.Equal(t, "DKI Jakarta", onJava[0].Name)
	assert.Equal(t, "West Java", onJava[1].Name)

	none, err := s.ListProvinces(ctx, uintPtr(999))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCreateRegionValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	var ve *storage.ValidationError

	require.True(t, errors.As(s.CreateIsland(ctx, &models.Island{Name: " "}), &ve))
	assert.Equal(t, "name", ve.Field)

	require.NoError(t, s.CreateIsland(ctx, &models.Island{Name: "Java", Code: strPtr("JAVA")}))
	require.True(t, errors.As(s.CreateIsland(ctx, &models.Island{Name: "Jawa", Code: strPtr("JAVA")}), &ve))
	assert.Equal(t, "code", ve.Field)

	require.True(t, errors.As(s.CreateProvince(ctx, &models.Province{Name: "Lost", IslandID: uintPtr(50)}), &ve))
	assert.Equal(t, "islandId", ve.Field)

	require.True(t, errors.As(s.CreateRegency(ctx, &models.Regency{Name: "Bogor", Type: "CITY"}), &ve))
	assert.Equal(t, "type", ve.Field)

	require.True(t, errors.As(s.CreateDistrict(ctx, &models.District{Name: "Gambir", RegencyID: uintPtr(7)}), &ve))
	assert.Equal(t, "regencyId", ve.Field)

	require.True(t, errors.As(s.CreateVillage(ctx, &models.Village{Name: "Gambir", DistrictID: uintPtr(7)}), &ve))
	assert.Equal(t, "districtId", ve.Field)
}

func TestListVillagesByDistrict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	village := regionChain(t, s)
	require.NoError(t, s.CreateVillage(ctx, &models.Village{Name: "Cideng", DistrictID: village.DistrictID}))
	require.NoError(t, s.CreateVillage(ctx, &models.Village{Name: "Standalone"}))

	inDistrict, err := s.ListVillages(ctx, village.DistrictID)
	require.NoError(t, err)
	require.Len(t, inDistrict, 2)
	assert.Equal(t, "Cideng", inDistrict[0].Name)
	assert.Equal(t, "Gambir", inDistrict[1].Name)

	all, err := s.ListVillages(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{}, *stats)

	regionChain(t, s)
	tower := newTower("Telkomsel", "Gambir")
	require.NoError(t, s.CreateTower(ctx, tower))
	require.NoError(t, s.CreateMSISDN(ctx, newSubscriber("62811", &tower.ID)))
	require.NoError(t, s.CreateMSISDN(ctx, newSubscriber("62812", nil)))
	require.NoError(t, s.CreateAPIKey(ctx, &models.APIKey{Key: "sk_1", Owner: "Ops"}))
	revoked := &models.APIKey{Key: "sk_2", Owner: "Ops"}
	require.NoError(t, s.CreateAPIKey(ctx, revoked))
	_, _, err = s.RevokeAPIKey(ctx, revoked.ID)
	require.NoError(t, err)

	stats, err = s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalBts)
	assert.Equal(t, int64(2), stats.TotalMsisdn)
	assert.Equal(t, int64(1), stats.ActiveKeys)
	assert.Equal(t, int64(1), stats.RegionsCovered)
}
