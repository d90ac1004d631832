package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func validTower() CreateTowerRequest {
	return CreateTowerRequest{
		CellID:      "CID-1",
		Lac:         "LAC-1",
		Mcc:         "510",
		Mnc:         "10",
		Lat:         floatPtr(-6.2),
		Long:        floatPtr(106.8),
		Operator:    "Telkomsel",
		NetworkType: "4G",
	}
}

func fieldOf(t *testing.T, err error) *Error {
	t.Helper()
	var ve *Error
	require.True(t, errors.As(err, &ve), "expected *Error, got %v", err)
	return ve
}

func TestCreateAPIKeyRequest(t *testing.T) {
	req := CreateAPIKeyRequest{Key: "sk_1"}
	ve := fieldOf(t, Struct(&req))
	assert.Equal(t, "owner", ve.Field)
	assert.Equal(t, "owner is required", ve.Message)

	req = CreateAPIKeyRequest{Key: "  ", Owner: "Ops"}
	assert.Equal(t, "key", fieldOf(t, Struct(&req)).Field)

	req = CreateAPIKeyRequest{Key: "sk_1", Owner: "Ops", Permissions: []string{"read", "root"}}
	ve = fieldOf(t, Struct(&req))
	assert.Equal(t, "permissions[1]", ve.Field)

	zero := 0
	req = CreateAPIKeyRequest{Key: "sk_1", Owner: "Ops", UsageLimit: &zero}
	ve = fieldOf(t, Struct(&req))
	assert.Equal(t, "usageLimit", ve.Field)
	assert.Equal(t, "usageLimit must be greater than 0", ve.Message)

	limit := 50
	req = CreateAPIKeyRequest{Key: " sk_1 ", Owner: "Ops", UsageLimit: &limit, Permissions: []string{"read", "write"}}
	require.NoError(t, Struct(&req))
	key := req.Model()
	assert.Equal(t, "sk_1", key.Key)
	assert.Equal(t, 50, key.UsageLimit)
	assert.True(t, key.Permissions.Has(models.PermWrite))
	assert.False(t, key.Permissions.Has(models.PermAdmin))
}

func TestCreateTowerRequest(t *testing.T) {
	req := validTower()
	require.NoError(t, Struct(&req))
	tower := req.Model()
	assert.Equal(t, models.Network4G, tower.NetworkType)
	assert.InDelta(t, -6.2, tower.Lat, 1e-9)

	missingLat := validTower()
	missingLat.Lat = nil
	ve := fieldOf(t, Struct(&missingLat))
	assert.Equal(t, "lat", ve.Field)
	assert.Equal(t, "lat is required", ve.Message)

	infinite := validTower()
	infinite.Long = floatPtr(math.Inf(-1))
	ve = fieldOf(t, Struct(&infinite))
	assert.Equal(t, "long", ve.Field)
	assert.Equal(t, "long must be a finite number", ve.Message)

	badNetwork := validTower()
	badNetwork.NetworkType = "6G"
	ve = fieldOf(t, Struct(&badNetwork))
	assert.Equal(t, "networkType", ve.Field)
	assert.Equal(t, "networkType must be one of 2G 3G 4G 5G", ve.Message)

	noOperator := validTower()
	noOperator.Operator = ""
	assert.Equal(t, "operator", fieldOf(t, Struct(&noOperator)).Field)
}

func TestUpdateTowerRequest(t *testing.T) {
	empty := UpdateTowerRequest{}
	require.NoError(t, Struct(&empty))
	assert.Equal(t, storage.TowerPatch{}, empty.Patch())

	blank := UpdateTowerRequest{CellID: strPtr(" ")}
	assert.Equal(t, "cellId", fieldOf(t, Struct(&blank)).Field)

	nt := "5G"
	req := UpdateTowerRequest{Operator: strPtr("XL"), NetworkType: &nt}
	require.NoError(t, Struct(&req))
	patch := req.Patch()
	require.NotNil(t, patch.NetworkType)
	assert.Equal(t, models.Network5G, *patch.NetworkType)
	assert.Equal(t, "XL", *patch.Operator)
	assert.Nil(t, patch.Lat)

	bad := "LTE"
	assert.Equal(t, "networkType", fieldOf(t, Struct(&UpdateTowerRequest{NetworkType: &bad})).Field)
}

func TestCreateMSISDNRequest(t *testing.T) {
	req := CreateMSISDNRequest{Msisdn: "62812abc", Imsi: "1", Imei: "2", Provider: "Telkomsel"}
	ve := fieldOf(t, Struct(&req))
	assert.Equal(t, "msisdn", ve.Field)
	assert.Equal(t, "msisdn must contain only digits", ve.Message)

	req = CreateMSISDNRequest{Msisdn: "628120000001", Imsi: "1", Imei: "2", Provider: "Telkomsel", Status: "gone"}
	assert.Equal(t, "status", fieldOf(t, Struct(&req)).Field)

	req.Status = ""
	require.NoError(t, Struct(&req))
	assert.Equal(t, "628120000001", req.Model().Msisdn)
}

func TestRegionRequests(t *testing.T) {
	assert.Equal(t, "name", fieldOf(t, Struct(&CreateIslandRequest{})).Field)
	assert.Equal(t, "type", fieldOf(t, Struct(&CreateRegencyRequest{Name: "Bogor"})).Field)
	assert.Equal(t, "type", fieldOf(t, Struct(&CreateRegencyRequest{Name: "Bogor", Type: "kota"})).Field)
	require.NoError(t, Struct(&CreateRegencyRequest{Name: "Bogor", Type: "KOTA"}))
	require.NoError(t, Struct(&CreateVillageRequest{Name: "Gambir"}))
}

func TestChangePasswordRequest(t *testing.T) {
	ve := fieldOf(t, Struct(&ChangePasswordRequest{OldPassword: "admin", NewPassword: "abc"}))
	assert.Equal(t, "newPassword", ve.Field)
	assert.Equal(t, "newPassword must be at least 6 characters", ve.Message)
}
