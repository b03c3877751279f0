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

	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

type MockTable1Reader struct {
	mock.Mock
}

func (m *MockTable1Reader) ListTable1(ctx context.Context, stationID int64) ([]storage.DateStatus, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DateStatus), args.Error(1)
}

func (m *MockTable1Reader) StationDay(ctx context.Context, stationID int64, rawDate string) (*reports.StationDayView, error) {
	args := m.Called(ctx, stationID, rawDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.StationDayView), args.Error(1)
}

func newRouter(reader Table1Reader) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/stations/{stationID}/table1", ListTable1(slog.Default(), reader))
	r.Get("/api/stations/{stationID}/table1/{date}", GetTable1Day(slog.Default(), reader))
	return r
}

func TestListTable1_EmptyIsArray(t *testing.T) {
	// Тест: у станции нет отчетов - отдаем [], а не null
	mockReader := new(MockTable1Reader)
	mockReader.On("ListTable1", mock.Anything, int64(3)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stations/3/table1", nil)
	rr := httptest.NewRecorder()

	newRouter(mockReader).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListTable1_Success(t *testing.T) {
	mockReader := new(MockTable1Reader)
	at := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	mockReader.On("ListTable1", mock.Anything, int64(3)).Return([]storage.DateStatus{
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), SubmittedAt: &at},
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stations/3/table1", nil)
	rr := httptest.NewRecorder()

	newRouter(mockReader).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"date":"2024-03-02T00:00:00Z","submitted_at":"2024-03-02T08:00:00Z"},
		{"date":"2024-03-01T00:00:00Z","submitted_at":null}
	]`, rr.Body.String())
}

func TestGetTable1Day(t *testing.T) {
	mockReader := new(MockTable1Reader)
	mockReader.On("StationDay", mock.Anything, int64(3), "2024-03-01").
		Return(&reports.StationDayView{HasNight: true}, nil)
	mockReader.On("StationDay", mock.Anything, int64(3), "2024-03-05").
		Return(nil, fmt.Errorf("day: %w", storage.ErrNotFound))

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stations/3/table1/2024-03-01", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"has_night":true`)

	rr = httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stations/3/table1/2024-03-05", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	mockReader.AssertExpectations(t)
}
