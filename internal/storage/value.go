package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value - значение поля отчета: количество (Num) либо короткая строка (Text).
type Value struct {
	Num    int64
	Text   string
	IsText bool
}

func Int(n int64) Value { return Value{Num: n} }

func Text(s string) Value { return Value{Text: s, IsText: true} }

// Empty: пустая строка или нулевое количество.
func (v Value) Empty() bool {
	if v.IsText {
		return v.Text == ""
	}
	return v.Num == 0
}

func (v Value) String() string {
	if v.IsText {
		return v.Text
	}
	return strconv.FormatInt(v.Num, 10)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsText {
		return json.Marshal(v.Text)
	}
	return []byte(strconv.FormatInt(v.Num, 10)), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Value{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("field value: %w", err)
	}

	if n, err := num.Int64(); err == nil {
		*v = Int(n)
		return nil
	}

	f, err := num.Float64()
	if err != nil {
		return fmt.Errorf("field value: %w", err)
	}
	*v = Int(int64(f))

	return nil
}

// Fields - плоская карта поле -> значение одной записи.
type Fields map[string]Value

// Int отдает числовое значение поля; текст и отсутствующее поле дают 0.
func (f Fields) Int(name string) int64 {
	v, ok := f[name]
	if !ok || v.IsText {
		return 0
	}
	return v.Num
}

func (f Fields) Text(name string) string {
	v, ok := f[name]
	if !ok {
		return ""
	}
	if v.IsText {
		return v.Text
	}
	return v.String()
}

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
