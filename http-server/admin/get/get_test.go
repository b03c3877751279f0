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
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"station-reports/internal/constants"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

type MockAdminReader struct {
	mock.Mock
}

func (m *MockAdminReader) AdminTable1Day(ctx context.Context, rawDate string) (*reports.AdminDay, error) {
	args := m.Called(ctx, rawDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.AdminDay), args.Error(1)
}

func (m *MockAdminReader) SubmissionOverview(ctx context.Context, rt constants.ReportType, rawFrom, rawTo string) ([]reports.DateOverview, error) {
	args := m.Called(ctx, rt, rawFrom, rawTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reports.DateOverview), args.Error(1)
}

func newRouter(reader AdminReader) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/admin/table1/{date}", GetTable1Day(slog.Default(), reader))
	r.Get("/api/admin/overview", GetOverview(slog.Default(), reader))
	return r
}

func TestGetTable1Day(t *testing.T) {
	mockReader := new(MockAdminReader)
	mockReader.On("AdminTable1Day", mock.Anything, "2024-03-01").Return(&reports.AdminDay{
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Rows: []reports.StationDayRow{{StationID: 1, Name: "Андижан", HasNightShift: true}},
	}, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/table1/2024-03-01", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var got reports.AdminDay
	require.NoError(t, render.DecodeJSON(rr.Body, &got))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Андижан", got.Rows[0].Name)
}

func TestGetOverview_DefaultType(t *testing.T) {
	// Тест: без type берется таблица 1
	mockReader := new(MockAdminReader)
	mockReader.On("SubmissionOverview", mock.Anything, constants.ReportTable1, "2024-03-01", "2024-03-02").
		Return([]reports.DateOverview{}, nil)

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/overview?from=2024-03-01&to=2024-03-02", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	mockReader.AssertExpectations(t)
}

func TestGetOverview_BadInput(t *testing.T) {
	mockReader := new(MockAdminReader)
	mockReader.On("SubmissionOverview", mock.Anything, constants.ReportType("table9"), "2024-03-01", "2024-03-02").
		Return(nil, fmt.Errorf("overview: %w", constants.ErrUnknownReportType))
	mockReader.On("SubmissionOverview", mock.Anything, constants.ReportTable2, "2024-03-05", "2024-03-01").
		Return(nil, fmt.Errorf("overview: %w", reports.ErrInvalidRange))

	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/overview?type=table9&from=2024-03-01&to=2024-03-02", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/overview?type=table2&from=2024-03-05&to=2024-03-01", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

type MockStationLister struct {
	mock.Mock
}

func (m *MockStationLister) ListStations(ctx context.Context) ([]storage.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Station), args.Error(1)
}

func TestGetStations(t *testing.T) {
	mockLister := new(MockStationLister)
	mockLister.On("ListStations", mock.Anything).Return([]storage.Station{
		{ID: 1, Username: "andijan", StationName: "Андижан", HasNightShift: true},
	}, nil)

	rr := httptest.NewRecorder()
	GetStations(slog.Default(), mockLister).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stations", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"username":"andijan","station_name":"Андижан","has_night_shift":true,"last_seen_at":null}]`, rr.Body.String())
}
