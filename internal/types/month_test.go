package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/finly-app/finly_backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMonthUnmarshalJSON(t *testing.T) {
	var target struct {
		Month types.Month
	}
	jsonString := []byte(`{ "month": "2024-05-12T17:59:23+02:00" }`)

	err := json.Unmarshal(jsonString, &target)

	assert.Nil(t, err)
	assert.Equal(t, types.NewMonth(2024, 5), target.Month)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Month
		wantErr  bool
	}{
		{"2024-03", types.NewMonth(2024, 3), false},
		{"2024-03-01", types.NewMonth(2024, 3), false},
		{"2024-03-17", types.NewMonth(2024, 3), false},
		{"03-2024", types.Month{}, true},
		{"not-a-month", types.Month{}, true},
	}

	for _, tt := range tests {
		m, err := types.ParseMonth(tt.input)
		if tt.wantErr {
			assert.NotNil(t, err, "input %q should not parse", tt.input)
			continue
		}
		assert.Nil(t, err, "input %q should parse", tt.input)
		assert.True(t, tt.expected.Equal(m), "input %q parsed to %s", tt.input, m)
	}
}

func TestMonthDayClamps(t *testing.T) {
	tests := []struct {
		month    types.Month
		day      int
		expected time.Time
	}{
		{types.NewMonth(2024, 2), 31, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{types.NewMonth(2023, 2), 31, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{types.NewMonth(2024, 4), 31, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{types.NewMonth(2024, 3), 5, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{types.NewMonth(2024, 3), 0, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.month.Day(tt.day))
	}
}

func TestMonthLen(t *testing.T) {
	assert.Equal(t, 29, types.NewMonth(2024, 2).Len())
	assert.Equal(t, 28, types.NewMonth(2023, 2).Len())
	assert.Equal(t, 31, types.NewMonth(2024, 12).Len())
	assert.Equal(t, 30, types.NewMonth(2024, 11).Len())
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "2024-02", types.NewMonth(2024, 2).String())
}
