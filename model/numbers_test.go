package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "whole", value: 10, expected: "10.0"},
		{name: "zero", value: 0, expected: "0.0"},
		{name: "negative whole", value: -3, expected: "-3.0"},
		{name: "fraction", value: 2.5, expected: "2.5"},
		{name: "tiny", value: 1e-7, expected: "1e-07"},
		{name: "huge", value: 1e21, expected: "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(measure(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestMeasure_RejectsNonFinite(t *testing.T) {
	_, err := measure(math.NaN()).MarshalJSON()
	assert.Error(t, err)

	_, err = measure(math.Inf(1)).MarshalJSON()
	assert.Error(t, err)
}

func TestToCount(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
		ok       bool
	}{
		{name: "int", value: 3, expected: 3, ok: true},
		{name: "whole float", value: 2.0, expected: 2, ok: true},
		{name: "fractional float", value: 2.5, ok: false},
		{name: "json integer", value: json.Number("7"), expected: 7, ok: true},
		{name: "json whole float", value: json.Number("7.0"), expected: 7, ok: true},
		{name: "json fraction", value: json.Number("7.25"), ok: false},
		{name: "out of range float", value: math.Pow(2, 63), ok: false},
		{name: "bool", value: true, ok: false},
		{name: "string", value: "3", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := toCount(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, n)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	f, ok := toFloat(json.Number("12.5"))
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	f, ok = toFloat(uint8(4))
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	_, ok = toFloat(math.Inf(-1))
	assert.False(t, ok)

	_, ok = toFloat("1")
	assert.False(t, ok)
}

func TestOpt(t *testing.T) {
	var unset Opt[int]
	assert.False(t, unset.IsSet())
	assert.Equal(t, 5, unset.OrElse(5))

	zero := Some(0)
	v, ok := zero.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, zero.OrElse(5))

	assert.False(t, None[string]().IsSet())
}
