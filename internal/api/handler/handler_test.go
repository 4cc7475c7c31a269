package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rikka-bot/rikka-data/internal/api/respond"
	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
	"github.com/rikka-bot/rikka-data/internal/song"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorResponse {
	t.Helper()
	var resp respond.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteDomainError(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, nil, nil, nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid argument",
			err:        fmt.Errorf("bad identity: %w", provider.ErrInvalidArgument),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "unbound user",
			err:        fmt.Errorf("nothing stored: %w", provider.ErrUnbound),
			wantStatus: http.StatusNotFound,
			wantCode:   "UNBOUND_USER",
		},
		{
			name:       "auth rejected",
			err:        provider.StatusError(provider.NameLXNS, 401, "/player"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_REJECTED",
		},
		{
			name:       "player not found",
			err:        provider.StatusError(provider.NameLXNS, 404, "/player/1"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "song not found",
			err:        song.ErrSongNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "rate limited",
			err:        provider.StatusError(provider.NameDivingFish, 429, "/query/player"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMITED",
		},
		{
			name:       "capability gap",
			err:        fmt.Errorf("no recents: %w", provider.ErrCapability),
			wantStatus: http.StatusNotImplemented,
			wantCode:   "NOT_SUPPORTED",
		},
		{
			name:       "validation failure",
			err:        &mai.ValidationError{Field: "fc", Value: "bogus"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "upstream failure",
			err:        provider.StatusError(provider.NameLXNS, 500, "/bests"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "unclassified",
			err:        fmt.Errorf("context canceled"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestWriteDomainErrorValidationDetail(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.writeDomainError(rec, &mai.ValidationError{Field: "rate", Value: "??"})

	resp := decodeError(t, rec)
	assert.Equal(t, "UPSTREAM_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Detail, "rate")
}
