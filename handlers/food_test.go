package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doAdmin issues a request with an admin bearer token, for the guarded
// catalog mutation routes.
func (e *testEnv) doAdmin(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	return e.do(t, method, path, body, "Authorization", bearerToken(t, models.RoleAdmin))
}

func TestCreateFood(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.doAdmin(t, http.MethodPost, "/api/foods", gin.H{
		"name":        "Jollof Rice",
		"description": "Smoky party jollof",
		"price":       12.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	food := resp["food"].(map[string]interface{})
	assert.Equal(t, "Jollof Rice", food["name"])
	assert.Equal(t, 12.5, food["price"])
	assert.Equal(t, true, food["is_available"])

	t.Run("zero price is allowed", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPost, "/api/foods", gin.H{
			"name": "Water", "description": "Still water", "price": 0,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPost, "/api/foods", gin.H{
			"name": "Bad", "description": "Bad", "price": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w, resp := env.doAdmin(t, http.MethodPost, "/api/foods", gin.H{"name": "Only name"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp, "errors")
	})

	t.Run("explicit availability respected", func(t *testing.T) {
		w, resp := env.doAdmin(t, http.MethodPost, "/api/foods", gin.H{
			"name": "Seasonal", "description": "Off menu", "price": 5, "isAvailable": false,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		food := resp["food"].(map[string]interface{})
		assert.Equal(t, false, food["is_available"])

		// the false must survive the INSERT, not just echo in the response
		var stored models.Food
		require.NoError(t, env.db.First(&stored, uint(food["id"].(float64))).Error)
		assert.False(t, stored.IsAvailable)
	})
}

func TestListFoodsFiltersAndOrders(t *testing.T) {
	env := newTestEnv(t)

	env.createFood(t, "Old Dish", 5, true)
	env.createFood(t, "Hidden Dish", 7, false)
	env.createFood(t, "New Dish", 9, true)

	w, resp := env.do(t, http.MethodGet, "/api/foods", nil)
	require.Equal(t, http.StatusOK, w.Code)

	foods := resp["foods"].([]interface{})
	require.Len(t, foods, 2)
	for _, f := range foods {
		assert.NotEqual(t, "Hidden Dish", f.(map[string]interface{})["name"])
	}
}

func TestUpdateFood(t *testing.T) {
	env := newTestEnv(t)
	food := env.createFood(t, "Egusi Soup", 10, true)

	t.Run("partial update", func(t *testing.T) {
		w, resp := env.doAdmin(t, http.MethodPatch, fmt.Sprintf("/api/foods/%d", food.ID), gin.H{
			"price": 15.0,
		})
		require.Equal(t, http.StatusOK, w.Code)
		updated := resp["food"].(map[string]interface{})
		assert.Equal(t, 15.0, updated["price"])
		assert.Equal(t, "Egusi Soup", updated["name"])
	})

	t.Run("availability false persists", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPatch, fmt.Sprintf("/api/foods/%d", food.ID), gin.H{
			"isAvailable": false,
		})
		require.Equal(t, http.StatusOK, w.Code)
		var got models.Food
		require.NoError(t, env.db.First(&got, food.ID).Error)
		assert.False(t, got.IsAvailable)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPatch, fmt.Sprintf("/api/foods/%d", food.ID), gin.H{
			"name": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPatch, fmt.Sprintf("/api/foods/%d", food.ID), gin.H{
			"price": -3,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		w, resp := env.doAdmin(t, http.MethodPatch, fmt.Sprintf("/api/foods/%d", food.ID), gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No valid fields to update", resp["message"])
	})

	t.Run("malformed id", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPatch, "/api/foods/abc", gin.H{"price": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing food", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodPatch, "/api/foods/99999", gin.H{"price": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSoftDeleteFood(t *testing.T) {
	env := newTestEnv(t)
	food := env.createFood(t, "Pounded Yam", 8, true)

	w, resp := env.doAdmin(t, http.MethodDelete, fmt.Sprintf("/api/foods/%d", food.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Food marked unavailable", resp["message"])

	// record survives, availability flipped
	var got models.Food
	require.NoError(t, env.db.First(&got, food.ID).Error)
	assert.False(t, got.IsAvailable)

	t.Run("missing food", func(t *testing.T) {
		w, _ := env.doAdmin(t, http.MethodDelete, "/api/foods/99999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCatalogMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	food := env.createFood(t, "Guarded Dish", 5, true)

	body := gin.H{"name": "X", "description": "Y", "price": 1}
	mutations := []struct {
		method string
		path   string
		body   gin.H
	}{
		{http.MethodPost, "/api/foods", body},
		{http.MethodPatch, fmt.Sprintf("/api/foods/%d", food.ID), gin.H{"price": 2}},
		{http.MethodDelete, fmt.Sprintf("/api/foods/%d", food.ID), nil},
	}

	t.Run("no token", func(t *testing.T) {
		for _, m := range mutations {
			w, _ := env.do(t, m.method, m.path, m.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", m.method, m.path)
		}
	})

	t.Run("customer token", func(t *testing.T) {
		token := bearerToken(t, models.RoleCustomer)
		for _, m := range mutations {
			w, _ := env.do(t, m.method, m.path, m.body, "Authorization", token)
			assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", m.method, m.path)
		}
	})

	t.Run("listing stays public", func(t *testing.T) {
		w, _ := env.do(t, http.MethodGet, "/api/foods", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
