package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gDto "taskpad/shared/dto"
	"taskpad/shared/failure"
	"taskpad/transport/http/response"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithMessage(rec, http.StatusCreated, "User registered successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
	assert.Equal(t, "User registered successfully", body["message"])

	// message-only success carries no data, meta or error keys
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "meta")
	assert.NotContains(t, body, "error")
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]string{"accessToken": "token"})

	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusOK), body["statusCode"])
	assert.Equal(t, "Success", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "token", data["accessToken"])

	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "meta")
}

func TestWithPaginatedJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	meta := gDto.Meta{Page: 2, Limit: 10, TotalData: 25, TotalPage: 3}

	response.WithPaginatedJSON(rec, http.StatusOK, []string{"a", "b"}, meta)

	body := decodeBody(t, rec)

	gotMeta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), gotMeta["page"])
	assert.Equal(t, float64(3), gotMeta["total_page"])
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantKind    string
		wantMessage string
	}{
		{
			name:        "not found failure",
			err:         failure.NotFound("Todo not found"),
			wantCode:    http.StatusNotFound,
			wantKind:    "Not Found",
			wantMessage: "Todo not found",
		},
		{
			name:        "invalid credentials failure",
			err:         failure.InvalidCredentials("Invalid password"),
			wantCode:    http.StatusUnauthorized,
			wantKind:    "Invalid Credentials",
			wantMessage: "Invalid password",
		},
		{
			name:        "unauthorized failure",
			err:         failure.Unauthorized("Invalid refresh token"),
			wantCode:    http.StatusUnauthorized,
			wantKind:    "Unauthorized",
			wantMessage: "Invalid refresh token",
		},
		{
			name:        "untyped error stays generic",
			err:         errors.New("pq: connection refused"),
			wantCode:    http.StatusInternalServerError,
			wantKind:    "Error",
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, float64(tt.wantCode), body["statusCode"])
			assert.Equal(t, tt.wantKind, body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])

			// error envelopes always carry an explicit null data field
			data, present := body["data"]
			assert.True(t, present)
			assert.Nil(t, data)

			assert.NotContains(t, body, "meta")
		})
	}
}
