package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type looseHolder struct {
	V Loose `json:"v"`
}

func decodeLoose(t *testing.T, body string) Loose {
	t.Helper()
	var h looseHolder
	require.NoError(t, json.Unmarshal([]byte(body), &h))
	return h.V
}

func TestLooseDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		present bool
		truthy  bool
		raw     string
		float   float64
	}{
		{name: "number", body: `{"v": 8}`, present: true, truthy: true, raw: "8", float: 8},
		{name: "fraction", body: `{"v": 8.50}`, present: true, truthy: true, raw: "8.5", float: 8.5},
		{name: "numeric string", body: `{"v": "10"}`, present: true, truthy: true, raw: "10", float: 10},
		{name: "zero", body: `{"v": 0}`, present: true, truthy: false, raw: "0", float: 0},
		{name: "zero string", body: `{"v": "0"}`, present: true, truthy: true, raw: "0", float: 0},
		{name: "empty string", body: `{"v": ""}`, present: true, truthy: false, raw: "", float: 0},
		{name: "text", body: `{"v": "abc"}`, present: true, truthy: true, raw: "abc", float: 0},
		{name: "null", body: `{"v": null}`, present: false, truthy: false, raw: "", float: 0},
		{name: "absent", body: `{}`, present: false, truthy: false, raw: "", float: 0},
		{name: "true", body: `{"v": true}`, present: true, truthy: true, raw: "true", float: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decodeLoose(t, tt.body)
			assert.Equal(t, tt.present, v.Present())
			assert.Equal(t, tt.truthy, v.Truthy())
			assert.Equal(t, tt.raw, v.Raw)
			assert.Equal(t, tt.float, v.Float())
		})
	}
}

func TestLooseRejectsCompositeValues(t *testing.T) {
	var h looseHolder
	assert.Error(t, json.Unmarshal([]byte(`{"v": [1, 2]}`), &h))
	assert.Error(t, json.Unmarshal([]byte(`{"v": {"a": 1}}`), &h))
}

func TestLooseOrDefault(t *testing.T) {
	assert.Equal(t, "8", LooseNumber(8).OrDefault("0"))
	assert.Equal(t, "0", LooseNumber(0).OrDefault("0"))
	assert.Equal(t, "100", Loose{}.OrDefault("100"))
	assert.Equal(t, "0", LooseString("0").OrDefault("100"))
}

func TestLooseMarshal(t *testing.T) {
	out, err := json.Marshal(map[string]Loose{
		"n": LooseNumber(8.5),
		"s": LooseString("8"),
		"z": {},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 8.5, "s": "8", "z": null}`, string(out))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 7.0, ParseNumber(" 7 "))
	assert.Equal(t, 8.5, ParseNumber("8.5"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("seven"))
	assert.Equal(t, 0.0, ParseNumber("NaN"))
	assert.Equal(t, 0.0, ParseNumber("Inf"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "18", FormatNumber(18))
	assert.Equal(t, "8.5", FormatNumber(8.5))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "-2", FormatNumber(-2))
}
