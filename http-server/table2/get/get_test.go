package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"station-reports/internal/storage"
)

type MockTable2Reader struct {
	mock.Mock
}

func (m *MockTable2Reader) GetTable2(ctx context.Context, stationID int64, rawDate string) (*storage.Table2Record, error) {
	args := m.Called(ctx, stationID, rawDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Table2Record), args.Error(1)
}

func (m *MockTable2Reader) ListTable2(ctx context.Context, stationID int64) ([]storage.DateStatus, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DateStatus), args.Error(1)
}

func newRouter(reader Table2Reader) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/stations/{stationID}/table2", ListTable2(slog.Default(), reader))
	r.Get("/api/stations/{stationID}/table2/{date}", GetTable2(slog.Default(), reader))
	return r
}

func TestGetTable2(t *testing.T) {
	mockReader := new(MockTable2Reader)
	mockReader.On("GetTable2", mock.Anything, int64(2), "2024-03-01").Return(&storage.Table2Record{
		StationID: 2,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Fields:    storage.Fields{"r01_total": storage.Int(3)},
	}, nil)
	mockReader.On("GetTable2", mock.Anything, int64(2), "2024-03-02").
		Return(nil, fmt.Errorf("get: %w", storage.ErrNotFound))

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stations/2/table2/2024-03-01", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"r01_total":3`)

	rr = httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stations/2/table2/2024-03-02", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListTable2_EmptyIsArray(t *testing.T) {
	mockReader := new(MockTable2Reader)
	mockReader.On("ListTable2", mock.Anything, int64(2)).Return(nil, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stations/2/table2", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
