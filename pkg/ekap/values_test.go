package ekap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarHelpers(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		asString string
		asInt    int64
		isInt    bool
		isTruthy bool
	}{
		{name: "nil", value: nil, asString: "", isTruthy: false},
		{name: "json number", value: json.Number("1234567"), asString: "1234567", asInt: 1234567, isInt: true, isTruthy: true},
		{name: "json zero", value: json.Number("0"), asString: "0", asInt: 0, isInt: true, isTruthy: false},
		{name: "float", value: 42.0, asString: "42", asInt: 42, isInt: true, isTruthy: true},
		{name: "fractional float", value: 1.5, asString: "1.5", asInt: 1, isInt: false, isTruthy: true},
		{name: "numeric string", value: " 7 ", asString: " 7 ", asInt: 7, isInt: true, isTruthy: true},
		{name: "empty string", value: "", asString: "", isTruthy: false},
		{name: "text", value: "15.02.2025", asString: "15.02.2025", isTruthy: true},
		{name: "false", value: false, asString: "false", isTruthy: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.asString, scalarString(tc.value))
			n, ok := scalarInt(tc.value)
			assert.Equal(t, tc.isInt, ok)
			if ok {
				assert.Equal(t, tc.asInt, n)
			}
			assert.Equal(t, tc.isTruthy, truthy(tc.value))
		})
	}
}
