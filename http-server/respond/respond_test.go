package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"station-reports/internal/service/reconcile"
	"station-reports/internal/storage"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("op: %w", reconcile.ErrInvalidDate), http.StatusBadRequest},
		{fmt.Errorf("op: %w", storage.ErrReportExists), http.StatusConflict},
		{fmt.Errorf("op: %w", storage.ErrNotFound), http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		Error(rr, slog.Default(), "test", tt.err)
		assert.Equal(t, tt.want, rr.Code, tt.err.Error())
	}
}

func TestStationID(t *testing.T) {
	r := chi.NewRouter()
	var got int64
	var gotErr error
	r.Get("/api/stations/{stationID}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = StationID(req)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stations/12", nil))
	assert.NoError(t, gotErr)
	assert.Equal(t, int64(12), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stations/-1", nil))
	assert.ErrorIs(t, gotErr, ErrBadStationID)
}
