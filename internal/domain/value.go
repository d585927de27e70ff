package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is one dimension of a candidate: a number or a string. A number
// never equals a string, so 5 and "5" are distinct values. Numbers are
// kept in canonical form, so 1 and 1.0 are the same value.
//
// Numbers order numerically and before all strings; strings order
// lexically.
type Value struct {
	text string
	num  bool
}

// Int returns the number n.
func Int(n int64) Value {
	return Value{text: strconv.FormatInt(n, 10), num: true}
}

// Num returns the number f. Integral floats are stored as integers.
func Num(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int64(f))
	}
	return Value{text: strconv.FormatFloat(f, 'g', -1, 64), num: true}
}

// Str returns the string s.
func Str(s string) Value {
	return Value{text: s}
}

// ParseNumber reads a decimal integer or float literal.
func ParseNumber(s string) (Value, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("invalid number %q", s)
	}
	return Num(f), nil
}

// ValueOf converts Go integers, floats and strings.
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case Value:
		return x, nil
	case string:
		return Str(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint:
		return ParseNumber(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return ParseNumber(strconv.FormatUint(x, 10))
	case float32:
		return Num(float64(x)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Value{}, fmt.Errorf("invalid number %v", x)
		}
		return Num(x), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", x)
}

func (v Value) IsNumber() bool { return v.num }

func (v Value) String() string { return v.text }

func (v Value) Equal(o Value) bool { return v == o }

// Compare returns -1, 0 or +1.
func (v Value) Compare(o Value) int {
	switch {
	case v.num && o.num:
		return compareNumbers(v.text, o.text)
	case v.num:
		return -1
	case o.num:
		return 1
	}
	return strings.Compare(v.text, o.text)
}

func compareNumbers(a, b string) int {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(x, y)
	}
	f, _ := strconv.ParseFloat(a, 64)
	g, _ := strconv.ParseFloat(b, 64)
	return cmp.Compare(f, g)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.num {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Str(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil || n == "" {
		return fmt.Errorf("value must be a string or number, got %s", b)
	}
	parsed, err := ParseNumber(n.String())
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) MarshalYAML() (any, error) {
	if !v.num {
		return v.text, nil
	}
	if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
		return n, nil
	}
	return strconv.ParseFloat(v.text, 64)
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", node.Line)
	}
	var x any
	if err := node.Decode(&x); err != nil {
		return err
	}
	parsed, err := ValueOf(x)
	if err != nil {
		return fmt.Errorf("line %d: value must be a number or a string: %w", node.Line, err)
	}
	*v = parsed
	return nil
}
