package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabgo/internal/handlers"
	"cabgo/internal/models"
	"cabgo/internal/services"
	"cabgo/pkg/identity"
	"cabgo/pkg/logger"
	"cabgo/routes"
)

type stubProvider struct {
	identities map[string]*identity.Identity
}

func (p *stubProvider) VerifyToken(_ context.Context, token string) (*identity.Identity, error) {
	ident, ok := p.identities[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return ident, nil
}

func (p *stubProvider) CustomClaims(_ context.Context, _ string) (map[string]interface{}, error) {
	return nil, nil
}

func (p *stubProvider) SetCustomClaims(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}

type stubBookingService struct {
	quote      *models.QuoteResult
	receipt    *models.BookingReceipt
	vehicles   []*models.Vehicle
	err        error
	lastIdent  *identity.Identity
	lastInput  *models.BookingInput
	quoteCalls int
}

func (s *stubBookingService) Quote(_ context.Context, input *models.BookingInput) (*models.QuoteResult, error) {
	s.lastInput = input
	s.quoteCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func (s *stubBookingService) CreateBooking(_ context.Context, ident *identity.Identity, input *models.BookingInput) (*models.BookingReceipt, error) {
	s.lastIdent = ident
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt, nil
}

func (s *stubBookingService) ListActiveVehicles(_ context.Context) ([]*models.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vehicles, nil
}

func newBookingRouter(svc services.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	provider := &stubProvider{identities: map[string]*identity.Identity{
		"rider": {UID: "rider-1", Role: "user"},
	}}

	handler := handlers.NewBookingHandler(svc, logger.NopLogger())
	v1 := router.Group("/api/v1")
	routes.SetupBookingRoutes(v1, handler, provider)

	return router
}

func performJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	return performJSONWithHeaders(router, method, path, token, body, nil)
}

func performJSONWithHeaders(router *gin.Engine, method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBookingBody = `{
	"vehicleId": "dzire",
	"pickupAddress": "12 MG Road",
	"dropAddress": "Airport T2",
	"distanceKm": 10,
	"durationMinutes": 15
}`

func TestListActiveVehicles(t *testing.T) {
	svc := &stubBookingService{vehicles: []*models.Vehicle{
		{ID: "dzire", Name: "Dzire", Type: models.VehicleTypeSedan, Status: models.VehicleStatusActive},
	}}
	router := newBookingRouter(svc)

	rec := performJSON(router, http.MethodGet, "/api/v1/vehicles", "rider", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"vehicles"`)
	assert.Contains(t, rec.Body.String(), `"dzire"`)
}

func TestListActiveVehicles_RequiresAuth(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	rec := performJSON(router, http.MethodGet, "/api/v1/vehicles", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListActiveVehicles_WrongMethod(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	rec := performJSON(router, http.MethodPost, "/api/v1/vehicles", "rider", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestCalculateAmount(t *testing.T) {
	svc := &stubBookingService{quote: &models.QuoteResult{
		Amount:   500,
		Currency: "INR",
		Vehicle:  models.VehicleSummary{ID: "dzire", Name: "Dzire", Type: models.VehicleTypeSedan},
	}}
	router := newBookingRouter(svc)

	rec := performJSON(router, http.MethodPost, "/api/v1/bookings/quote", "rider", validBookingBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"amount": 500,
		"currency": "INR",
		"vehicle": {"id": "dzire", "name": "Dzire", "type": "sedan"}
	}`, rec.Body.String())

	require.NotNil(t, svc.lastInput)
	assert.Equal(t, "dzire", svc.lastInput.VehicleID)
}

func TestCalculateAmount_InvalidBodies(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing addresses", `{"vehicleId":"dzire","distanceKm":10,"durationMinutes":15}`},
		{"zero distance", `{"vehicleId":"dzire","pickupAddress":"A","dropAddress":"B","distanceKm":0,"durationMinutes":15}`},
		{"non-numeric duration", `{"vehicleId":"dzire","pickupAddress":"A","dropAddress":"B","distanceKm":10,"durationMinutes":"soon"}`},
		{"malformed", `{"vehicleId":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubBookingService{}
			router := newBookingRouter(svc)

			rec := performJSON(router, http.MethodPost, "/api/v1/bookings/quote", "rider", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
			assert.Zero(t, svc.quoteCalls, "invalid input must never reach the service")
		})
	}
}

func TestCalculateAmount_VehicleErrorsAre400(t *testing.T) {
	for _, svcErr := range []error{services.ErrVehicleNotFound, services.ErrVehicleInactive} {
		svc := &stubBookingService{err: svcErr}
		router := newBookingRouter(svc)

		rec := performJSON(router, http.MethodPost, "/api/v1/bookings/quote", "rider", validBookingBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "error %v", svcErr)
		assert.Contains(t, rec.Body.String(), svcErr.Error())
	}
}

func TestCreateBooking(t *testing.T) {
	svc := &stubBookingService{receipt: &models.BookingReceipt{
		BookingID: "66f0c0ffee",
		Amount:    820,
		Currency:  "INR",
		Status:    models.BookingStatusPending,
	}}
	router := newBookingRouter(svc)

	rec := performJSON(router, http.MethodPost, "/api/v1/bookings", "rider", validBookingBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"bookingId": "66f0c0ffee",
		"amount": 820,
		"currency": "INR",
		"status": "pending"
	}`, rec.Body.String())

	// Owner comes from the verified token, not the body.
	require.NotNil(t, svc.lastIdent)
	assert.Equal(t, "rider-1", svc.lastIdent.UID)
}

func TestCreateBooking_StoreFailureIs500(t *testing.T) {
	svc := &stubBookingService{err: errors.New("store unreachable")}
	router := newBookingRouter(svc)

	rec := performJSON(router, http.MethodPost, "/api/v1/bookings", "rider", validBookingBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "store unreachable", "internal detail must not leak")
}
