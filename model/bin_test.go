package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

func TestNewBin(t *testing.T) {
	tests := []struct {
		name          string
		opts          []BinOption
		expectedField string
	}{
		{name: "defaults"},
		{name: "unlimited quantity", opts: []BinOption{WithBinQuantity(Unlimited)}},
		{name: "zero quantity", opts: []BinOption{WithBinQuantity(0)}, expectedField: "quantity"},
		{name: "other negative quantity", opts: []BinOption{WithBinQuantity(-2)}, expectedField: "quantity"},
		{name: "zero max weight", opts: []BinOption{WithMaxWeight(0)}, expectedField: "max_weight"},
		{name: "free bin", opts: []BinOption{WithCost(0)}},
		{name: "negative cost", opts: []BinOption{WithCost(-1)}, expectedField: "cost"},
		{
			name:          "packaging max items",
			opts:          []BinOption{WithPackaging(PackagingRules{MaxItems: Some(0)})},
			expectedField: "packaging.max_items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBin("box", 100, 100, 100, tt.opts...)
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *sdkerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expectedField, verr.Field)
		})
	}
}

func TestBin_Serialize(t *testing.T) {
	bin, err := NewBin("box", 100, 50, 25.5,
		WithMaxWeight(30),
		WithPackaging(PackagingRules{Padding: Some(1.0), FragileOnTop: Some(true)}),
	)
	require.NoError(t, err)

	data, err := json.Marshal(bin)
	require.NoError(t, err)

	assert.Equal(t,
		`{"d":25.5,"h":50.0,"id":"box","maxWeight":30.0,"packaging":{"fragileOnTop":true,"padding":1.0},"quantity":1,"w":100.0}`,
		string(data))
}

func TestBinFromFields(t *testing.T) {
	snake, err := BinFromFields(Fields{
		"id": "box", "w": 10, "h": 10, "d": 10,
		"max_weight": 5, "quantity": -1,
		"packaging": Fields{"void_fill": true, "max_items": 4.0},
	})
	require.NoError(t, err)

	camel, err := BinFromFields(Fields{
		"id": "box", "w": 10.0, "h": 10.0, "d": 10.0,
		"maxWeight": 5.0, "quantity": -1,
		"packaging": map[string]any{"voidFill": true, "maxItems": 4},
	})
	require.NoError(t, err)

	assert.True(t, snake.IsUnlimited())
	assert.Equal(t, 4, snake.Packaging.Value().MaxItems.Value())

	snakeJSON, err := json.Marshal(snake)
	require.NoError(t, err)
	camelJSON, err := json.Marshal(camel)
	require.NoError(t, err)
	assert.Equal(t, string(snakeJSON), string(camelJSON))
}

func TestBinFromFields_UnknownField(t *testing.T) {
	_, err := BinFromFields(Fields{"id": "box", "w": 1, "h": 1, "d": 1, "color": "red"})

	var verr *sdkerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "color", verr.Field)
	assert.ErrorIs(t, err, sdkerrors.ErrBinSolver)
}

func TestBin_Volume(t *testing.T) {
	bin := Bin{ID: "box", W: 2, H: 2, D: 2, Quantity: 1}
	assert.Equal(t, 8.0, bin.Volume())
	assert.False(t, bin.IsUnlimited())
}
