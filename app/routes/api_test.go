package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/auth"
	"github.com/shringarlabs/shringar/pkg/database"
	shhttp "github.com/shringarlabs/shringar/pkg/http"
	"github.com/shringarlabs/shringar/pkg/queue"
	"github.com/shringarlabs/shringar/pkg/router"
	"github.com/shringarlabs/shringar/pkg/testkit"
)

func setupAPI(t *testing.T) http.Handler {
	t.Helper()
	require.NoError(t, database.ConnectTest(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.Settings{},
		&queue.FailedJobRecord{},
	))
	require.NoError(t, database.DB.Create(&models.Product{
		Slug: "ubtan", Name: "Herbal Ubtan", Price: 299, InStock: true,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Settings{
		ShippingCost: 50, FreeShippingThreshold: 699,
	}).Error)

	r := router.New()
	RegisterAPI(r)
	return r.Handler()
}

func checkoutBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"customerEmail": "meera@example.com",
		"customerName":  "Meera Sharma",
		"items":         []map[string]interface{}{{"slug": "ubtan", "quantity": 2}},
		"shippingAddress": map[string]string{
			"fullName":     "Meera Sharma",
			"addressLine1": "14 MG Road",
			"city":         "Jaipur",
			"state":        "Rajasthan",
			"postalCode":   "302001",
			"country":      "India",
			"phone":        "9876543210",
		},
	})
	return body
}

func registerAndLogin(t *testing.T, handler http.Handler) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"name":     "Meera Sharma",
		"email":    "meera@example.com",
		"password": "a-strong-password",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Data.Token)
	return out.Data.Token
}

func TestOpenPaymentRequiresAuth(t *testing.T) {
	handler := setupAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/open", bytes.NewReader(checkoutBody()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The rejection happens before checkout, so nothing is persisted.
	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpenPaymentAuthorizedFlow(t *testing.T) {
	handler := setupAPI(t)
	token := registerAndLogin(t, handler)

	mt := testkit.NewMockTransport()
	mt.Stub("https://api.razorpay.com/v1/orders", 200,
		`{"id":"order_rzp1","amount":75600,"currency":"INR","receipt":"rcpt_x","status":"created"}`)
	shhttp.DefaultClient.Transport = mt
	defer shhttp.ResetTransport()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/open", bytes.NewReader(checkoutBody()))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			GatewayOrderID string `json:"gatewayOrderId"`
			Amount         int64  `json:"amount"`
			Currency       string `json:"currency"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "order_rzp1", out.Data.GatewayOrderID)
	assert.Equal(t, int64(75600), out.Data.Amount)

	var orders []models.Order
	require.NoError(t, database.DB.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, "order_rzp1", orders[0].RazorpayOrderID)
	require.NotNil(t, orders[0].UserID)
}

func TestGuestOrderPlacement(t *testing.T) {
	handler := setupAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(checkoutBody()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var orders []models.Order
	require.NoError(t, database.DB.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].UserID)
	assert.Equal(t, int64(756), orders[0].Total)
}

func TestAdminRoutesForbiddenForCustomers(t *testing.T) {
	handler := setupAPI(t)
	token := registerAndLogin(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminSettingsPatchKeepsOmittedFields(t *testing.T) {
	handler := setupAPI(t)

	admin := models.User{Name: "Admin", Email: "admin@shringar.in", Password: "not-a-real-hash", Role: "admin"}
	require.NoError(t, database.DB.Create(&admin).Error)
	token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]int64{"freeShippingThreshold": 999})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/settings/shipping", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var settings models.Settings
	require.NoError(t, database.DB.First(&settings).Error)
	assert.Equal(t, int64(50), settings.ShippingCost)
	assert.Equal(t, int64(999), settings.FreeShippingThreshold)
}

func TestProductListing(t *testing.T) {
	handler := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Success bool             `json:"success"`
		Data    []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "ubtan", out.Data[0].Slug)
}

func TestHealthEndpoint(t *testing.T) {
	handler := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
