package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

func mustItem(t *testing.T, id string, w, h, d float64, opts ...ItemOption) Item {
	t.Helper()
	item, err := NewItem(id, w, h, d, opts...)
	require.NoError(t, err)
	return item
}

func mustBin(t *testing.T, id string, w, h, d float64, opts ...BinOption) Bin {
	t.Helper()
	bin, err := NewBin(id, w, h, d, opts...)
	require.NoError(t, err)
	return bin
}

func decodePayload(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestPackRequest_Serialize(t *testing.T) {
	req, err := NewPackRequest(ObjectiveMinBins,
		[]Item{mustItem(t, "item-1", 10, 10, 10)},
		[]Bin{mustBin(t, "box", 100, 100, 100)},
	)
	require.NoError(t, err)

	data, err := req.Serialize()
	require.NoError(t, err)

	assert.Equal(t,
		`{"bins":[{"d":100.0,"h":100.0,"id":"box","quantity":1,"w":100.0}],`+
			`"items":[{"d":10.0,"h":10.0,"id":"item-1","quantity":1,"w":10.0}],`+
			`"objective":"minBins"}`,
		string(data))

	payload := decodePayload(t, data)
	assert.Equal(t, "minBins", payload["objective"])
	assert.Equal(t, 10.0, payload["items"].([]any)[0].(map[string]any)["w"])
	assert.NotContains(t, payload, "allowUnplaced")
	assert.NotContains(t, payload, "palletization")
	assert.NotContains(t, payload, "shippingObjective")
}

func TestPackRequest_SetAllowUnplaced(t *testing.T) {
	req, err := NewPackRequest(ObjectiveMinCost,
		[]Item{mustItem(t, "item-1", 10, 10, 10)},
		[]Bin{mustBin(t, "box", 100, 100, 100, WithCost(2))},
	)
	require.NoError(t, err)

	req.SetAllowUnplaced(false)
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, false, decodePayload(t, data)["allowUnplaced"])

	req.SetAllowUnplaced(true)
	data, err = json.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, true, decodePayload(t, data)["allowUnplaced"])
}

func TestNewPackRequest_Errors(t *testing.T) {
	item := mustItem(t, "item-1", 10, 10, 10)
	bin := mustBin(t, "box", 100, 100, 100)

	tests := []struct {
		name          string
		objective     Objective
		items         []Item
		bins          []Bin
		opts          []RequestOption
		expectedField string
	}{
		{
			name:          "empty items",
			objective:     ObjectiveMinBins,
			bins:          []Bin{bin},
			expectedField: "items",
		},
		{
			name:          "empty bins",
			objective:     ObjectiveMinBins,
			items:         []Item{item},
			expectedField: "bins",
		},
		{
			name:          "unknown objective",
			objective:     "fastest",
			items:         []Item{item},
			bins:          []Bin{bin},
			expectedField: "objective",
		},
		{
			name:          "duplicate item ids",
			objective:     ObjectiveMinBins,
			items:         []Item{item, item},
			bins:          []Bin{bin},
			expectedField: "items[1].id",
		},
		{
			name:          "duplicate bin ids",
			objective:     ObjectiveMinBins,
			items:         []Item{item},
			bins:          []Bin{bin, bin},
			expectedField: "bins[1].id",
		},
		{
			name:          "invalid item literal",
			objective:     ObjectiveMinBins,
			items:         []Item{{ID: "x", W: 0, H: 1, D: 1, Quantity: 1}},
			bins:          []Bin{bin},
			expectedField: "items[0].w",
		},
		{
			name:      "invalid weight unit",
			objective: ObjectiveMinCost,
			items:     []Item{item},
			bins:      []Bin{bin},
			opts: []RequestOption{WithShippingObjective(ShippingObjective{
				WeightUnit: Some("stone"),
			})},
			expectedField: "shipping_objective.weight_unit",
		},
		{
			name:      "invalid pallet height",
			objective: ObjectiveMinBins,
			items:     []Item{item},
			bins:      []Bin{bin},
			opts: []RequestOption{WithPalletization(Palletization{
				Enabled:   Some(true),
				MaxHeight: Some(-10.0),
			})},
			expectedField: "palletization.max_height",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPackRequest(tt.objective, tt.items, tt.bins, tt.opts...)

			var verr *sdkerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expectedField, verr.Field)
			assert.Equal(t, sdkerrors.KindValidation, sdkerrors.KindOf(err))
		})
	}
}

func TestPackRequestFromFields_MixedSpellings(t *testing.T) {
	typed := mustItem(t, "typed", 5, 5, 5, WithQuantity(2))

	req, err := PackRequestFromFields(Fields{
		"objective": "maxUtilization",
		"items": []any{
			typed,
			Fields{"id": "loose", "w": 1, "h": 2, "d": 3, "groupId": "g1"},
		},
		"bins":           []Fields{{"id": "box", "w": 10, "h": 10, "d": 10, "max_weight": 20}},
		"allow_unplaced": true,
		"shippingObjective": Fields{
			"carrier": "ups", "dim_divisor": 139, "weightUnit": "lb",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ObjectiveMaxUtilization, req.Objective)
	assert.Equal(t, 3, req.TotalQuantity())
	assert.Equal(t, "g1", req.Items[1].GroupID.Value())
	assert.True(t, req.AllowUnplaced.Value())

	payload := decodePayload(t, mustSerialize(t, req))
	assert.Equal(t, map[string]any{"carrier": "ups", "dimDivisor": 139.0, "weightUnit": "lb"}, payload["shippingObjective"])
	assert.Equal(t, 20.0, payload["bins"].([]any)[0].(map[string]any)["maxWeight"])
}

func mustSerialize(t *testing.T, req *PackRequest) []byte {
	t.Helper()
	data, err := req.Serialize()
	require.NoError(t, err)
	return data
}

func TestPackRequestFromFields_Errors(t *testing.T) {
	validItem := Fields{"id": "a", "w": 1, "h": 1, "d": 1}
	validBin := Fields{"id": "box", "w": 1, "h": 1, "d": 1}

	tests := []struct {
		name          string
		fields        Fields
		expectedField string
	}{
		{
			name:          "missing objective",
			fields:        Fields{"items": []any{validItem}, "bins": []any{validBin}},
			expectedField: "objective",
		},
		{
			name:          "unknown top level field",
			fields:        Fields{"objective": "minBins", "items": []any{validItem}, "bins": []any{validBin}, "priority": 1},
			expectedField: "priority",
		},
		{
			name:          "nested invalid item",
			fields:        Fields{"objective": "minBins", "items": []any{Fields{"id": "a", "w": 0, "h": 1, "d": 1}}, "bins": []any{validBin}},
			expectedField: "items[0].w",
		},
		{
			name:          "item is not an object",
			fields:        Fields{"objective": "minBins", "items": []any{"a"}, "bins": []any{validBin}},
			expectedField: "items[0]",
		},
		{
			name:          "items is not a list",
			fields:        Fields{"objective": "minBins", "items": validItem, "bins": []any{validBin}},
			expectedField: "items",
		},
		{
			name:          "empty bins",
			fields:        Fields{"objective": "minBins", "items": []any{validItem}, "bins": []any{}},
			expectedField: "bins",
		},
		{
			name:          "non-bool allow unplaced",
			fields:        Fields{"objective": "minBins", "items": []any{validItem}, "bins": []any{validBin}, "allowUnplaced": "yes"},
			expectedField: "allow_unplaced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PackRequestFromFields(tt.fields)

			var verr *sdkerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expectedField, verr.Field)
		})
	}
}

func TestParsePackRequest(t *testing.T) {
	body := []byte(`{
		"objective": "minBins",
		"items": [{"id": "a", "w": 10, "h": 10, "d": 10, "quantity": 3, "allowRotation": false}],
		"bins": [{"id": "box", "w": 50, "h": 50, "d": 50, "quantity": -1}],
		"allowUnplaced": true
	}`)

	req, err := ParsePackRequest(body)
	require.NoError(t, err)

	assert.Equal(t, 3, req.TotalQuantity())
	assert.True(t, req.Bins[0].IsUnlimited())
	assert.False(t, req.Items[0].AllowRotation.Value())
	assert.True(t, req.Items[0].AllowRotation.IsSet())
}

func TestParsePackRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"objective":`},
		{name: "not an object", body: `[1, 2]`},
		{name: "trailing text", body: `{"objective":"minBins","items":[{"id":"a","w":1,"h":1,"d":1}],"bins":[{"id":"b","w":1,"h":1,"d":1}]} junk`},
		{name: "two documents", body: `{"objective":"minBins","items":[{"id":"a","w":1,"h":1,"d":1}],"bins":[{"id":"b","w":1,"h":1,"d":1}]}{}`},
		{name: "fractional quantity", body: `{"objective":"minBins","items":[{"id":"a","w":1,"h":1,"d":1,"quantity":1.5}],"bins":[{"id":"b","w":1,"h":1,"d":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackRequest([]byte(tt.body))

			var verr *sdkerrors.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPackRequest_SerializeRejectsInvalidLiteral(t *testing.T) {
	req := &PackRequest{Objective: ObjectiveMinBins}

	_, err := req.Serialize()

	var verr *sdkerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
	assert.Error(t, req.Validate())
}

func TestParseObjective(t *testing.T) {
	for _, o := range Objectives {
		parsed, err := ParseObjective(string(o))
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}

	_, err := ParseObjective("min_bins")
	assert.Error(t, err)
}
