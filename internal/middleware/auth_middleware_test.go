package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabgo/pkg/identity"
)

type stubProvider struct {
	identities map[string]*identity.Identity
}

func (p *stubProvider) VerifyToken(_ context.Context, token string) (*identity.Identity, error) {
	ident, ok := p.identities[token]
	if !ok {
		return nil, errors.New("token revoked or invalid")
	}
	return ident, nil
}

func (p *stubProvider) CustomClaims(_ context.Context, _ string) (map[string]interface{}, error) {
	return nil, nil
}

func (p *stubProvider) SetCustomClaims(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}

func newAuthRouter(provider identity.Provider, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := append([]gin.HandlerFunc{AuthRequired(provider)}, extra...)
	group := router.Group("/", chain...)
	handle := func(c *gin.Context) {
		ident, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"uid": ident.UID})
	}
	group.GET("/protected", handle)
	group.OPTIONS("/protected", handle)

	return router
}

func perform(router *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_ValidToken(t *testing.T) {
	provider := &stubProvider{identities: map[string]*identity.Identity{
		"good": {UID: "u1", Role: "user"},
	}}
	router := newAuthRouter(provider)

	rec := perform(router, http.MethodGet, "/protected", "Bearer good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"u1"}`, rec.Body.String())
}

func TestAuthRequired_RejectsBadHeaders(t *testing.T) {
	provider := &stubProvider{identities: map[string]*identity.Identity{
		"good": {UID: "u1"},
	}}
	router := newAuthRouter(provider)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good"},
		{"lowercase scheme", "bearer good"},
		{"no token", "Bearer "},
		{"bare token", "good"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(router, http.MethodGet, "/protected", tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

// A structurally valid but revoked/unknown token must still fail.
func TestAuthRequired_RevokedToken(t *testing.T) {
	provider := &stubProvider{identities: map[string]*identity.Identity{}}
	router := newAuthRouter(provider)

	rec := perform(router, http.MethodGet, "/protected", "Bearer revoked")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

// CORS preflights pass with no credential at all, and only preflights.
func TestAuthRequired_OptionsShortCircuit(t *testing.T) {
	provider := &stubProvider{identities: map[string]*identity.Identity{}}
	router := newAuthRouter(provider)

	rec := perform(router, http.MethodOptions, "/protected", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = perform(router, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRequired(t *testing.T) {
	provider := &stubProvider{identities: map[string]*identity.Identity{
		"admin-role": {UID: "a1", Role: "admin"},
		"admin-flag": {UID: "a2", Admin: true},
		"plain":      {UID: "u1", Role: "user"},
	}}
	router := newAuthRouter(provider, AdminRequired())

	rec := perform(router, http.MethodGet, "/protected", "Bearer admin-role")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = perform(router, http.MethodGet, "/protected", "Bearer admin-flag")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = perform(router, http.MethodGet, "/protected", "Bearer plain")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
}
