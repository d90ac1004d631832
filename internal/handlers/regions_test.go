package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idBody struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func post(t *testing.T, env *testEnv, token, path string, body interface{}) idBody {
	t.Helper()
	resp, raw := do(t, env.app, request{method: http.MethodPost, path: path, token: token, body: body})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var out idBody
	decode(t, raw, &out)
	return out
}

func TestRegionHierarchy(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	java := post(t, env, token, "/api/regions/islands", map[string]interface{}{"name": "Java", "code": "JAVA"})
	post(t, env, token, "/api/regions/islands", map[string]interface{}{"name": "Bali", "code": "BALI"})
	province := post(t, env, token, "/api/regions/provinces", map[string]interface{}{"name": "DKI Jakarta", "islandId": java.ID})
	regency := post(t, env, token, "/api/regions/regencies", map[string]interface{}{"name": "Jakarta Pusat", "provinceId": province.ID, "type": "KOTA"})
	district := post(t, env, token, "/api/regions/districts", map[string]interface{}{"name": "Gambir", "regencyId": regency.ID})
	post(t, env, token, "/api/regions/villages", map[string]interface{}{"name": "Gambir", "districtId": district.ID, "postalCode": "10110"})
	post(t, env, token, "/api/regions/villages", map[string]interface{}{"name": "Loose"})

	resp, raw := do(t, env.app, request{method: http.MethodGet, path: "/api/regions/islands", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var islands []idBody
	decode(t, raw, &islands)
	assert.Len(t, islands, 2)

	resp, raw = do(t, env.app, request{method: http.MethodGet, path: fmt.Sprintf("/api/regions/provinces?islandId=%d", java.ID), token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var provinces []idBody
	decode(t, raw, &provinces)
	require.Len(t, provinces, 1)
	assert.Equal(t, "DKI Jakarta", provinces[0].Name)

	resp, raw = do(t, env.app, request{method: http.MethodGet, path: fmt.Sprintf("/api/regions/villages?districtId=%d", district.ID), token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var villages []idBody
	decode(t, raw, &villages)
	require.Len(t, villages, 1)

	resp, raw = do(t, env.app, request{method: http.MethodGet, path: "/api/regions/villages", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, raw, &villages)
	assert.Len(t, villages, 2)
}

func TestRegionValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	cases := []struct {
		path  string
		body  map[string]interface{}
		field string
	}{
		{"/api/regions/islands", map[string]interface{}{"name": ""}, "name"},
		{"/api/regions/provinces", map[string]interface{}{"name": "Lost", "islandId": 77}, "islandId"},
		{"/api/regions/regencies", map[string]interface{}{"name": "Bogor", "type": "CITY"}, "type"},
		{"/api/regions/districts", map[string]interface{}{"name": "Gambir", "regencyId": 5}, "regencyId"},
		{"/api/regions/villages", map[string]interface{}{"name": "Gambir", "districtId": 5}, "districtId"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, raw := do(t, env.app, request{method: http.MethodPost, path: tc.path, token: token, body: tc.body})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var eb errorBody
			decode(t, raw, &eb)
			assert.Equal(t, tc.field, eb.Field)
		})
	}

	post(t, env, token, "/api/regions/islands", map[string]interface{}{"name": "Java", "code": "JAVA"})
	resp, raw := do(t, env.app, request{
		method: http.MethodPost,
		path:   "/api/regions/islands",
		token:  token,
		body:   map[string]interface{}{"name": "Jawa", "code": "JAVA"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var eb errorBody
	decode(t, raw, &eb)
	assert.Equal(t, "code", eb.Field)
}
