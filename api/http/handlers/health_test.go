package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvpolish/pkg/health"
)

type downChecker struct{}

func (downChecker) Name() string                { return "postgres" }
func (downChecker) Check(context.Context) error { return errors.New("refused") }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		checkers []health.Checker
		status   int
		want     string
	}{
		{"ready", nil, http.StatusOK, "ready"},
		{"not ready", []health.Checker{downChecker{}}, http.StatusServiceUnavailable, "not_ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(health.NewService(tt.checkers...))
			app := fiber.New()
			app.Get("/health", h.Health)
			app.Get("/ready", h.Ready)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			var body ReadyResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Status)
			assert.Len(t, body.Checks, len(tt.checkers))
		})
	}
}
