package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

func TestNewItem(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		w, h, d       float64
		opts          []ItemOption
		expectedField string
	}{
		{
			name: "valid item defaults quantity to 1",
			id:   "item-1", w: 10, h: 10, d: 10,
		},
		{
			name: "zero width",
			id:   "item-1", w: 0, h: 10, d: 10,
			expectedField: "w",
		},
		{
			name: "negative height",
			id:   "item-1", w: 10, h: -1, d: 10,
			expectedField: "h",
		},
		{
			name: "zero quantity",
			id:   "item-1", w: 10, h: 10, d: 10,
			opts:          []ItemOption{WithQuantity(0)},
			expectedField: "quantity",
		},
		{
			name: "empty id",
			id:   "", w: 10, h: 10, d: 10,
			expectedField: "id",
		},
		{
			name: "negative weight",
			id:   "item-1", w: 10, h: 10, d: 10,
			opts:          []ItemOption{WithWeight(-2)},
			expectedField: "weight",
		},
		{
			name: "unknown orientation",
			id:   "item-1", w: 10, h: 10, d: 10,
			opts: []ItemOption{WithRotation(RotationRules{
				AllowedOrientations: Some([]string{"xyz", "abc"}),
			})},
			expectedField: "rotation.allowed_orientations[1]",
		},
		{
			name: "zero stack count",
			id:   "item-1", w: 10, h: 10, d: 10,
			opts:          []ItemOption{WithStacking(StackingRules{MaxStackCount: Some(0)})},
			expectedField: "stacking.max_stack_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem(tt.id, tt.w, tt.h, tt.d, tt.opts...)
			if tt.expectedField == "" {
				require.NoError(t, err)
				assert.Equal(t, 1, item.Quantity)
				return
			}

			var verr *sdkerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expectedField, verr.Field)
		})
	}
}

func TestItem_SerializeOmitsUnsetFields(t *testing.T) {
	item, err := NewItem("item-1", 10, 20, 30)
	require.NoError(t, err)

	data, err := json.Marshal(item)
	require.NoError(t, err)

	assert.Equal(t, `{"d":30.0,"h":20.0,"id":"item-1","quantity":1,"w":10.0}`, string(data))
}

func TestItem_SerializeKeepsExplicitZeroValues(t *testing.T) {
	item, err := NewItem("item-1", 1, 1, 1,
		WithAllowRotation(false),
		WithWeight(0),
		WithStacking(StackingRules{Stackable: Some(false)}),
	)
	require.NoError(t, err)

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, false, payload["allowRotation"])
	assert.Equal(t, 0.0, payload["weight"])
	assert.Equal(t, map[string]any{"stackable": false}, payload["stacking"])
	assert.NotContains(t, payload, "rotation")
	assert.NotContains(t, payload, "groupId")
}

func TestItemFromFields_EitherSpellingSerializesIdentically(t *testing.T) {
	tests := []struct {
		name      string
		canonical Fields
		alias     Fields
	}{
		{
			name:      "allow rotation",
			canonical: Fields{"id": "1", "w": 1, "h": 1, "d": 1, "allow_rotation": false},
			alias:     Fields{"id": "1", "w": 1, "h": 1, "d": 1, "allowRotation": false},
		},
		{
			name:      "group id",
			canonical: Fields{"id": "1", "w": 1, "h": 1, "d": 1, "group_id": "g"},
			alias:     Fields{"id": "1", "w": 1, "h": 1, "d": 1, "groupId": "g"},
		},
		{
			name: "nested rules",
			canonical: Fields{"id": "1", "w": 1, "h": 1, "d": 1,
				"rotation": Fields{"keep_upright": true, "allowed_orientations": []any{"xyz", "yxz"}},
				"stacking": Fields{"max_stack_weight": 5, "top_only": false}},
			alias: Fields{"id": "1", "w": 1, "h": 1, "d": 1,
				"rotation": map[string]any{"keepUpright": true, "allowedOrientations": []string{"xyz", "yxz"}},
				"stacking": map[string]any{"maxStackWeight": 5.0, "topOnly": false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromCanonical, err := ItemFromFields(tt.canonical)
			require.NoError(t, err)
			fromAlias, err := ItemFromFields(tt.alias)
			require.NoError(t, err)

			canonicalJSON, err := json.Marshal(fromCanonical)
			require.NoError(t, err)
			aliasJSON, err := json.Marshal(fromAlias)
			require.NoError(t, err)

			assert.Equal(t, string(canonicalJSON), string(aliasJSON))
			assert.NotContains(t, string(canonicalJSON), "_")
		})
	}
}

func TestItemFromFields_SnakeCaseInput(t *testing.T) {
	item, err := ItemFromFields(Fields{"id": "1", "w": 1, "h": 1, "d": 1, "allow_rotation": false})
	require.NoError(t, err)

	allow, ok := item.AllowRotation.Get()
	assert.True(t, ok)
	assert.False(t, allow)

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"allowRotation":false`)
}

func TestItemFromFields_CanonicalWins(t *testing.T) {
	item, err := ItemFromFields(Fields{
		"id": "1", "w": 1, "h": 1, "d": 1,
		"allow_rotation": false,
		"allowRotation":  true,
	})
	require.NoError(t, err)

	assert.False(t, item.AllowRotation.Value())
}

func TestItemFromFields_AliasNullDoesNotClearCanonical(t *testing.T) {
	item, err := ItemFromFields(Fields{
		"id": "1", "w": 1, "h": 1, "d": 1,
		"group_id": "g",
		"groupId":  nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "g", item.GroupID.Value())
}

func TestItemFromFields_Errors(t *testing.T) {
	tests := []struct {
		name          string
		fields        Fields
		expectedField string
	}{
		{
			name:          "zero width",
			fields:        Fields{"id": "1", "w": 0, "h": 1, "d": 1},
			expectedField: "w",
		},
		{
			name:          "missing depth",
			fields:        Fields{"id": "1", "w": 1, "h": 1},
			expectedField: "d",
		},
		{
			name:          "unknown field",
			fields:        Fields{"id": "1", "w": 1, "h": 1, "d": 1, "widht": 3},
			expectedField: "widht",
		},
		{
			name:          "fractional quantity",
			fields:        Fields{"id": "1", "w": 1, "h": 1, "d": 1, "quantity": 2.5},
			expectedField: "quantity",
		},
		{
			name:          "string dimension",
			fields:        Fields{"id": "1", "w": "10", "h": 1, "d": 1},
			expectedField: "w",
		},
		{
			name:          "non-bool flag",
			fields:        Fields{"id": "1", "w": 1, "h": 1, "d": 1, "allowRotation": "no"},
			expectedField: "allow_rotation",
		},
		{
			name:          "nested unknown field",
			fields:        Fields{"id": "1", "w": 1, "h": 1, "d": 1, "stacking": Fields{"stack": true}},
			expectedField: "stacking.stack",
		},
		{
			name:          "nested wrong shape",
			fields:        Fields{"id": "1", "w": 1, "h": 1, "d": 1, "rotation": "any"},
			expectedField: "rotation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ItemFromFields(tt.fields)

			var verr *sdkerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expectedField, verr.Field)
		})
	}
}

func TestItemFromFields_WholeFloatQuantity(t *testing.T) {
	item, err := ItemFromFields(Fields{"id": "1", "w": 1, "h": 1, "d": 1, "quantity": 2.0})
	require.NoError(t, err)

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"quantity":2,`)
}

func TestItem_MarshalRejectsInvalidLiteral(t *testing.T) {
	_, err := json.Marshal(Item{ID: "x", W: 1, H: 1, D: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestItem_Volume(t *testing.T) {
	item := Item{ID: "x", W: 2, H: 3, D: 4, Quantity: 1}
	assert.Equal(t, 24.0, item.Volume())
	assert.NoError(t, item.Validate())
}
