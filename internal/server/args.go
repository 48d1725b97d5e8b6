package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MCP clients send numbers as JSON numbers, but some send them as strings
// and some send lists as comma separated text. The helpers below accept all
// of those shapes. A missing or null argument is never an error.

func toInt(key string, v interface{}) (int64, error) {
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, fmt.Errorf("argument '%s' must be a whole number, got %v", key, x)
		}
		return saturate(x), nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case json.Number:
		n, err := x.Int64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("argument '%s' must be a whole number, got %s", key, x)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("argument '%s' must be a whole number, got %q", key, x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("argument '%s' must be a number, got %T", key, v)
	}
}

// saturate converts a whole float to int64, pinning values outside the
// int64 range to its bounds. ParseInt saturates the same way on ErrRange.
func saturate(x float64) int64 {
	switch {
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	}
	return int64(x)
}

// optionalInt returns nil when the argument is absent.
func optionalInt(args map[string]interface{}, key string) (*int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := toInt(key, v)
	if err != nil {
		return nil, err
	}
	i := int(n)
	return &i, nil
}

func intArg(args map[string]interface{}, key string, def int) (int, error) {
	n, err := optionalInt(args, key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return def, nil
	}
	return *n, nil
}

// optionalBool returns nil when the argument is absent so that "not set"
// stays distinguishable from false.
func optionalBool(args map[string]interface{}, key string) (*bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case bool:
		return &x, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("argument '%s' must be true or false, got %q", key, x)
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("argument '%s' must be a boolean, got %T", key, v)
	}
}

func boolArg(args map[string]interface{}, key string, def bool) (bool, error) {
	b, err := optionalBool(args, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return def, nil
	}
	return *b, nil
}

// listItems splits an argument into its elements. Accepts a JSON array or a
// comma separated string.
func listItems(v interface{}) []interface{} {
	switch x := v.(type) {
	case []interface{}:
		return x
	case string:
		var items []interface{}
		for _, part := range strings.Split(x, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items
	default:
		return []interface{}{v}
	}
}

func intSliceArg(args map[string]interface{}, key string) ([]int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	var out []int
	for _, item := range listItems(v) {
		n, err := toInt(key, item)
		if err != nil {
			return nil, err
		}
		out = append(out, int(n))
	}
	return out, nil
}

func stringSliceArg(args map[string]interface{}, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	var out []string
	for _, item := range listItems(v) {
		switch x := item.(type) {
		case string:
			out = append(out, strings.TrimSpace(x))
		case float64:
			out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
		case json.Number:
			out = append(out, x.String())
		default:
			return nil, fmt.Errorf("argument '%s' must be a list of strings, got %T", key, item)
		}
	}
	return out, nil
}

// oneOf returns value when it is one of allowed, def otherwise.
func oneOf(value, def string, allowed ...string) string {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return def
}

// argReader reads several arguments and keeps the first error, so that
// handlers can check once after reading everything.
type argReader struct {
	args map[string]interface{}
	err  error
}

func newArgReader(args map[string]interface{}) *argReader {
	if args == nil {
		args = map[string]interface{}{}
	}
	return &argReader{args: args}
}

func (r *argReader) text(key, def string) string {
	v, ok := r.args[key]
	if !ok || v == nil {
		return def
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func (r *argReader) optionalInt(key string) *int {
	if r.err != nil {
		return nil
	}
	v, err := optionalInt(r.args, key)
	r.err = err
	return v
}

func (r *argReader) number(key string, def int) int {
	if r.err != nil {
		return def
	}
	v, err := intArg(r.args, key, def)
	r.err = err
	return v
}

func (r *argReader) optionalBool(key string) *bool {
	if r.err != nil {
		return nil
	}
	v, err := optionalBool(r.args, key)
	r.err = err
	return v
}

func (r *argReader) flag(key string, def bool) bool {
	if r.err != nil {
		return def
	}
	v, err := boolArg(r.args, key, def)
	r.err = err
	return v
}

func (r *argReader) intList(key string) []int {
	if r.err != nil {
		return nil
	}
	v, err := intSliceArg(r.args, key)
	r.err = err
	return v
}

func (r *argReader) stringList(key string) []string {
	if r.err != nil {
		return nil
	}
	v, err := stringSliceArg(r.args, key)
	r.err = err
	return v
}
