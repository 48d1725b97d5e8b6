package server

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		expected int64
		hasError bool
	}{
		{name: "json float", input: float64(42), expected: 42},
		{name: "negative float", input: float64(-3), expected: -3},
		{name: "int", input: 7, expected: 7},
		{name: "int64", input: int64(2025), expected: 2025},
		{name: "json number", input: json.Number("12"), expected: 12},
		{name: "padded string", input: " 34 ", expected: 34},
		{name: "huge float", input: 1e20, expected: math.MaxInt64},
		{name: "huge negative float", input: -1e20, expected: math.MinInt64},
		{name: "huge json number", input: json.Number("99999999999999999999"), expected: math.MaxInt64},
		{name: "huge string", input: "99999999999999999999", expected: math.MaxInt64},
		{name: "huge negative string", input: "-99999999999999999999", expected: math.MinInt64},
		{name: "fractional float", input: 10.5, hasError: true},
		{name: "fractional json number", input: json.Number("1.5"), hasError: true},
		{name: "text", input: "ankara", hasError: true},
		{name: "bool", input: true, hasError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := toInt("value", tc.input)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestOptionalArguments(t *testing.T) {
	args := map[string]interface{}{
		"null":   nil,
		"blank":  "  ",
		"number": float64(5),
		"yes":    true,
		"no":     "false",
	}

	n, err := optionalInt(args, "missing")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = optionalInt(args, "null")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = optionalInt(args, "blank")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = optionalInt(args, "number")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 5, *n)

	b, err := optionalBool(args, "missing")
	require.NoError(t, err)
	assert.Nil(t, b, "An absent flag must stay distinguishable from false")

	b, err = optionalBool(args, "yes")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	b, err = optionalBool(args, "no")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.False(t, *b)

	_, err = optionalBool(args, "number")
	assert.Error(t, err)

	def, err := intArg(args, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, def)

	flag, err := boolArg(args, "missing", true)
	require.NoError(t, err)
	assert.True(t, flag)
}

func TestSliceArguments(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		expected []int
		hasError bool
	}{
		{name: "json array", input: []interface{}{float64(1), float64(2)}, expected: []int{1, 2}},
		{name: "comma separated", input: "6, 34,35", expected: []int{6, 34, 35}},
		{name: "single number", input: float64(81), expected: []int{81}},
		{name: "empty string", input: "", expected: nil},
		{name: "text item", input: []interface{}{"x"}, hasError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := intSliceArg(map[string]interface{}{"list": tc.input}, "list")
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}

	codes, err := stringSliceArg(map[string]interface{}{"codes": []interface{}{"45000000", float64(30000000)}}, "codes")
	require.NoError(t, err)
	assert.Equal(t, []string{"45000000", "30000000"}, codes)

	codes, err = stringSliceArg(map[string]interface{}{"codes": "451, 452"}, "codes")
	require.NoError(t, err)
	assert.Equal(t, []string{"451", "452"}, codes)
}

func TestOneOf(t *testing.T) {
	assert.Equal(t, "asc", oneOf("asc", "desc", "asc", "desc"))
	assert.Equal(t, "desc", oneOf("sideways", "desc", "asc", "desc"))
	assert.Equal(t, "desc", oneOf("", "desc", "asc", "desc"))
}

func TestArgReaderKeepsFirstError(t *testing.T) {
	r := newArgReader(map[string]interface{}{
		"limit":     "ten",
		"days":      "x",
		"query":     "  yol  ",
		"flag":      true,
		"provinces": []interface{}{float64(6)},
	})

	assert.Equal(t, "yol", r.text("query", ""))
	assert.Equal(t, "fallback", r.text("missing", "fallback"))
	assert.True(t, r.flag("flag", false))
	assert.False(t, r.flag("missing", false))

	r.number("limit", 20)
	require.Error(t, r.err)
	first := r.err

	assert.Equal(t, 7, r.number("days", 7))
	assert.Nil(t, r.intList("provinces"), "Reads after an error are skipped")
	assert.Equal(t, first, r.err)
}

func TestNewArgReaderNilArguments(t *testing.T) {
	r := newArgReader(nil)
	assert.Equal(t, 10, r.number("limit", 10))
	assert.True(t, r.flag("search_in_title", true))
	assert.Nil(t, r.optionalBool("e_ihale"))
	assert.Nil(t, r.stringList("okas_codes"))
	assert.NoError(t, r.err)
}
