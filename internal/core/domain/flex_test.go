// internal/core/domain/flex_test.go
package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/storelens-be/internal/core/domain"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected int
	}{
		{"plain_number", `42`, 42},
		{"quoted_number", `"42"`, 42},
		{"float_truncates", `42.9`, 42},
		{"quoted_float_truncates", `"42.9"`, 42},
		{"null", `null`, 0},
		{"empty_string", `""`, 0},
		{"garbage_string", `"abc"`, 0},
		{"boolean", `true`, 0},
		{"object", `{"v":1}`, 0},
		{"negative_preserved", `-3`, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v domain.FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &v))
			assert.Equal(t, tt.expected, int(v))
		})
	}
}

func TestFlexInt_IntClampsNegative(t *testing.T) {
	assert.Equal(t, 0, domain.FlexInt(-5).Int())
	assert.Equal(t, 7, domain.FlexInt(7).Int())
}

func TestFlexDecimal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"plain_number", `19.99`, "19.99"},
		{"quoted_number", `"19.99"`, "19.99"},
		{"integer", `25000`, "25000"},
		{"null", `null`, "0"},
		{"empty_string", `""`, "0"},
		{"garbage", `"n/a"`, "0"},
		{"array", `[1]`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v domain.FlexDecimal
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &v))
			assert.True(t, v.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", v.Decimal, tt.expected)
		})
	}
}

func TestFlexDecimal_MarshalJSON(t *testing.T) {
	v := domain.NewFlexDecimal(decimal.RequireFromString("19.99"))
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"19.99"`, string(out))
}

func TestAPITime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected time.Time
	}{
		{
			name:     "rfc3339",
			payload:  `"2025-01-05T10:30:00Z"`,
			expected: time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339_nano",
			payload:  `"2025-01-05T10:30:00.123456789Z"`,
			expected: time.Date(2025, 1, 5, 10, 30, 0, 123456789, time.UTC),
		},
		{
			name:     "no_zone",
			payload:  `"2025-01-05T10:30:00"`,
			expected: time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "space_separator",
			payload:  `"2025-01-05 10:30:00"`,
			expected: time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "date_only",
			payload:  `"2025-01-05"`,
			expected: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v domain.APITime
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &v))
			assert.True(t, tt.expected.Equal(v.Time), "got %s, want %s", v.Time, tt.expected)
		})
	}
}

func TestAPITime_UnmarshalJSON_BadInputsAreZero(t *testing.T) {
	for _, payload := range []string{`null`, `""`, `"not a date"`, `"05/01/2025"`, `12345`} {
		var v domain.APITime
		require.NoError(t, json.Unmarshal([]byte(payload), &v), payload)
		assert.True(t, v.IsZero(), payload)
	}
}

func TestAPITime_MarshalJSON(t *testing.T) {
	var zero domain.APITime
	out, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))

	v := domain.APITime{Time: time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC)}
	out, err = json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-05T10:30:00Z"`, string(out))
}
