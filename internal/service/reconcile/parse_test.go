package reconcile

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

func TestParseIntOrZero(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"empty", "", 0},
		{"spaces", "   ", 0},
		{"trimmed", " 42 ", 42},
		{"negative", "-3", -3},
		{"plus", "+7", 7},
		{"garbage", "abc", 0},
		{"decimal string", "1.5", 0},
		{"float truncates", 3.9, 3},
		{"nan", math.NaN(), 0},
		{"int", 12, 12},
		{"json number", json.Number("15"), 15},
		{"bytes", []byte("8"), 8},
		{"numeric value", storage.Int(4), 4},
		{"text value", storage.Text("6"), 6},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntOrZero(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.Format(DateLayout))

	for _, raw := range []string{"", "2023-02-29", "29.02.2024", "2024-13-01"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}

func TestParseFields_ZeroFillsCatalog(t *testing.T) {
	fields, err := ParseFields(constants.ReportTable1, map[string]any{
		"vygr_ft":                   "5",
		"unknown":                   "9",
		constants.FieldTerminalName: " Т-1 ",
	}, false)
	require.NoError(t, err)

	specs, err := constants.Fields(constants.ReportTable1)
	require.NoError(t, err)
	assert.Len(t, fields, len(specs))

	assert.Equal(t, storage.Int(5), fields["vygr_ft"])
	assert.Equal(t, storage.Int(0), fields["pogr_ft"])
	assert.Equal(t, storage.Text("Т-1"), fields[constants.FieldTerminalName])
	assert.NotContains(t, fields, "unknown")

	skipped, err := ParseFields(constants.ReportTable1, nil, true)
	require.NoError(t, err)
	assert.NotContains(t, skipped, constants.FieldTerminalName)
	assert.NotContains(t, skipped, constants.FieldPlanQuantity)

	_, err = ParseFields("table9", nil, false)
	assert.ErrorIs(t, err, constants.ErrUnknownReportType)
}
