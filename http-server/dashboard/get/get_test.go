package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"station-reports/internal/service/dashboard"
)

type MockDashboardReader struct {
	mock.Mock
}

func (m *MockDashboardReader) Dashboard(ctx context.Context, from, to *time.Time) (*dashboard.Dashboard, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Dashboard), args.Error(1)
}

func (m *MockDashboardReader) Online(ctx context.Context) ([]dashboard.Presence, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dashboard.Presence), args.Error(1)
}

func (m *MockDashboardReader) Table2Grid(ctx context.Context, date time.Time) (*dashboard.Grid, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Grid), args.Error(1)
}

func newRouter(reader DashboardReader) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/admin/dashboard", GetDashboard(slog.Default(), reader))
	r.Get("/api/admin/online", GetOnline(slog.Default(), reader))
	r.Get("/api/admin/table2/{date}/grid", GetTable2Grid(slog.Default(), reader))
	return r
}

func TestGetDashboard_NoBounds(t *testing.T) {
	// Тест: без from/to границы не передаются
	mockReader := new(MockDashboardReader)
	mockReader.On("Dashboard", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).
		Return(&dashboard.Dashboard{KPI: dashboard.KPI{Vygr: 42}}, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	mockReader.AssertExpectations(t)
}

func TestGetDashboard_WithBounds(t *testing.T) {
	mockReader := new(MockDashboardReader)
	mockReader.On("Dashboard", mock.Anything,
		mock.MatchedBy(func(from *time.Time) bool {
			return from != nil && from.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		}),
		(*time.Time)(nil),
	).Return(&dashboard.Dashboard{}, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard?from=2024-03-01", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	mockReader.AssertExpectations(t)
}

func TestGetDashboard_BadDate(t *testing.T) {
	mockReader := new(MockDashboardReader)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard?to=march", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockReader.AssertNotCalled(t, "Dashboard", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOnline(t *testing.T) {
	mockReader := new(MockDashboardReader)
	mockReader.On("Online", mock.Anything).Return([]dashboard.Presence{
		{StationID: 1, Name: "Андижан", Online: true},
	}, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/online", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"station_id":1,"name":"Андижан","online":true,"last_seen_at":null}]`, rr.Body.String())
}

func TestGetOnline_Error(t *testing.T) {
	mockReader := new(MockDashboardReader)
	mockReader.On("Online", mock.Anything).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/online", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetTable2Grid(t *testing.T) {
	mockReader := new(MockDashboardReader)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mockReader.On("Table2Grid", mock.Anything, date).Return(&dashboard.Grid{
		Date:     date,
		Stations: []string{"Андижан", dashboard.RoadColumn},
		Rows:     []dashboard.GridRow{},
	}, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/table2/2024-03-01/grid", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Дорога"`)
}
