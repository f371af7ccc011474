package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"history/internal/app/server/api/http/envelope"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{
			name: "no database",
		},
		{
			name: "database reachable",
			db:   pingFunc(func(context.Context) error { return nil }),
		},
		{
			name:       "database down",
			db:         pingFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(tt.db, slog.Default(), huma.Middlewares{})

			output, err := handler.healthCheck(context.Background(), &Input{})

			if tt.wantStatus != 0 {
				var se huma.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.wantStatus, se.GetStatus())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", output.Body.Status)
		})
	}
}

func TestHandler_Route(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(nil, slog.Default(), nil).SetupRoutes(api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body Response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "API is running", body.Message)
}

func TestHandler_RouteDatabaseDown(t *testing.T) {
	envelope.Install()
	_, api := humatest.New(t)
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })
	NewHandler(down, slog.Default(), nil).SetupRoutes(api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"SERVICE_UNAVAILABLE","message":"database is unavailable"}}`,
		resp.Body.String())
}
