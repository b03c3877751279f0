package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// ParseDate - единственное жесткое требование к входу: без корректной даты запись не сохранить.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, raw, err)
	}
	return d, nil
}

// ParseIntOrZero приводит значение из формы или JSON к целому.
// Пустое, nil и нечисловое значение дают 0, ошибка не возвращается.
func ParseIntOrZero(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return parseString(x)
	case []byte:
		return parseString(string(x))
	case json.Number:
		return parseString(x.String())
	case storage.Value:
		if x.IsText {
			return parseString(x.Text)
		}
		return x.Num
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0
		}
		return int64(x)
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	default:
		return 0
	}
}

func parseString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func floatToInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// RawString приводит ручной ввод к строке; пустая строка означает "не задано".
func RawString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case storage.Value:
		return strings.TrimSpace(x.String())
	case float64:
		return strconv.FormatInt(floatToInt(x), 10)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// ParseFields переводит сырые значения в типизированную карту по каталогу отчета.
// Все поля каталога присутствуют в результате; поля не из каталога отбрасываются.
func ParseFields(rt constants.ReportType, raw map[string]any, skipCommon bool) (storage.Fields, error) {
	specs, err := constants.Fields(rt)
	if err != nil {
		return nil, err
	}

	out := make(storage.Fields, len(specs))
	for _, spec := range specs {
		if skipCommon && spec.Role == constants.RoleCommon {
			continue
		}
		out[spec.Name] = parseValue(spec, raw[spec.Name])
	}

	return out, nil
}

func parseValue(spec constants.MetricFieldSpec, v any) storage.Value {
	if spec.Kind == constants.KindText {
		return storage.Text(RawString(v))
	}
	return storage.Int(ParseIntOrZero(v))
}
