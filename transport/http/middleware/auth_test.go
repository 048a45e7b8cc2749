package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taskpad/config"
	"taskpad/infras/jwt"
	jwtMocks "taskpad/infras/jwt/mocks"
	"taskpad/infras/otel/mocks"
	"taskpad/permissions"
	"taskpad/shared/constant"
	"taskpad/transport/http/middleware"
)

type capturedIdentity struct {
	called bool
	userID int64
	email  string
}

func newRouter(t *testing.T, mockJWT jwt.JWT, cfg *config.Config) (*chi.Mux, *capturedIdentity) {
	t.Helper()

	perms := permissions.Get()
	require.NotNil(t, perms)

	mw := middleware.NewAuthMiddleware(mockJWT, mocks.NewOtel(), perms, cfg)

	identity := &capturedIdentity{}

	handler := func(w http.ResponseWriter, r *http.Request) {
		identity.called = true
		identity.userID, _ = r.Context().Value(constant.ContextKeyUserID).(int64)
		identity.email, _ = r.Context().Value(constant.ContextKeyUserEmail).(string)

		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey)
	router.Use(mw.Auth)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", handler)
		r.Get("/todos", handler)
	})

	return router, identity
}

func TestAuth_PublicRouteBypassesGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	router, identity := newRouter(t, mockJWT, &config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, identity.called)
}

func TestAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	router, identity := newRouter(t, mockJWT, &config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/todos", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, identity.called)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Missing authorization header", body["message"])
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestAuth_BadHeaderFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	router, identity := newRouter(t, mockJWT, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/todos", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Token abc")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, identity.called)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid authorization header format", body["message"])
}

func TestAuth_TokenVerification(t *testing.T) {
	tests := []struct {
		name        string
		verifyErr   error
		wantMessage string
	}{
		{
			name:        "expired token",
			verifyErr:   jwt.ErrExpiredToken,
			wantMessage: "Token has expired",
		},
		{
			name:        "malformed token",
			verifyErr:   jwt.ErrMalformedToken,
			wantMessage: "Invalid token",
		},
		{
			name:        "invalid signature",
			verifyErr:   jwt.ErrInvalidToken,
			wantMessage: "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockJWT := jwtMocks.NewMockJWT(ctrl)

			mockJWT.EXPECT().
				Verify("bad-token", jwt.AccessToken).
				Return(nil, tt.verifyErr)

			router, identity := newRouter(t, mockJWT, &config.Config{})

			req := httptest.NewRequest(http.MethodGet, "/v1/todos", nil)
			req.Header.Set(constant.RequestHeaderAuthorization, "Bearer bad-token")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, identity.called)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	mockJWT.EXPECT().
		Verify("good-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: 42, Email: "test@example.com", TokenID: "tid"}, nil)

	router, identity := newRouter(t, mockJWT, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/todos", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer good-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, identity.called)
	assert.Equal(t, int64(42), identity.userID)
	assert.Equal(t, "test@example.com", identity.email)
}

func TestAPIKey_MatchSkipsAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	router, identity := newRouter(t, mockJWT, cfg)

	req := httptest.NewRequest(http.MethodGet, "/v1/todos", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "internal-key")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, identity.called)
}

func TestAPIKey_MismatchForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	router, identity := newRouter(t, mockJWT, cfg)

	req := httptest.NewRequest(http.MethodGet, "/v1/todos", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "wrong-key")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, identity.called)
}
