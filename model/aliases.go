package model

import "sort"

// Aliases is the bidirectional field-name table of one entity type.
// Each field has a canonical (snake_case) name and a wire (camelCase) name;
// the two are equal when the name has no case change.
type Aliases struct {
	toWire      map[string]string
	toCanonical map[string]string
}

// NewAliases builds a table from canonical→wire pairs.
func NewAliases(canonicalToWire map[string]string) Aliases {
	a := Aliases{
		toWire:      make(map[string]string, len(canonicalToWire)),
		toCanonical: make(map[string]string, len(canonicalToWire)),
	}
	for canonical, wire := range canonicalToWire {
		a.toWire[canonical] = wire
		a.toCanonical[wire] = canonical
	}
	return a
}

// Wire returns the wire spelling of a canonical field name.
// Unknown names are returned unchanged.
func (a Aliases) Wire(canonical string) string {
	if wire, ok := a.toWire[canonical]; ok {
		return wire
	}
	return canonical
}

// Canonical resolves either spelling to the canonical name.
// The second result is false for unknown names.
func (a Aliases) Canonical(name string) (string, bool) {
	if _, ok := a.toWire[name]; ok {
		return name, true
	}
	canonical, ok := a.toCanonical[name]
	return canonical, ok
}

// IsAlias reports whether name is a wire spelling that differs from its canonical name.
func (a Aliases) IsAlias(name string) bool {
	canonical, ok := a.toCanonical[name]
	return ok && canonical != name
}

// CanonicalNames returns the canonical field names in sorted order.
func (a Aliases) CanonicalNames() []string {
	names := make([]string, 0, len(a.toWire))
	for name := range a.toWire {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	// ItemAliases is the field table of Item.
	ItemAliases = NewAliases(map[string]string{
		"id":             "id",
		"w":              "w",
		"h":              "h",
		"d":              "d",
		"quantity":       "quantity",
		"weight":         "weight",
		"allow_rotation": "allowRotation",
		"rotation":       "rotation",
		"stacking":       "stacking",
		"group_id":       "groupId",
	})

	// RotationRulesAliases is the field table of RotationRules.
	RotationRulesAliases = NewAliases(map[string]string{
		"allowed_orientations": "allowedOrientations",
		"keep_upright":         "keepUpright",
	})

	// StackingRulesAliases is the field table of StackingRules.
	StackingRulesAliases = NewAliases(map[string]string{
		"stackable":        "stackable",
		"max_stack_weight": "maxStackWeight",
		"max_stack_count":  "maxStackCount",
		"top_only":         "topOnly",
	})

	// BinAliases is the field table of Bin.
	BinAliases = NewAliases(map[string]string{
		"id":         "id",
		"w":          "w",
		"h":          "h",
		"d":          "d",
		"quantity":   "quantity",
		"max_weight": "maxWeight",
		"cost":       "cost",
		"packaging":  "packaging",
	})

	// PackagingRulesAliases is the field table of PackagingRules.
	PackagingRulesAliases = NewAliases(map[string]string{
		"padding":        "padding",
		"max_items":      "maxItems",
		"void_fill":      "voidFill",
		"fragile_on_top": "fragileOnTop",
	})

	// PalletizationAliases is the field table of Palletization.
	PalletizationAliases = NewAliases(map[string]string{
		"enabled":    "enabled",
		"pallet_id":  "palletId",
		"max_height": "maxHeight",
		"max_weight": "maxWeight",
		"overhang":   "overhang",
	})

	// ShippingObjectiveAliases is the field table of ShippingObjective.
	ShippingObjectiveAliases = NewAliases(map[string]string{
		"carrier":       "carrier",
		"service_level": "serviceLevel",
		"dim_divisor":   "dimDivisor",
		"weight_unit":   "weightUnit",
	})

	// PackRequestAliases is the field table of PackRequest.
	PackRequestAliases = NewAliases(map[string]string{
		"objective":          "objective",
		"items":              "items",
		"bins":               "bins",
		"allow_unplaced":     "allowUnplaced",
		"palletization":      "palletization",
		"shipping_objective": "shippingObjective",
	})

	// StatsAliases is the field table of Stats.
	StatsAliases = NewAliases(map[string]string{
		"items":       "items",
		"placed":      "placed",
		"bins_used":   "binsUsed",
		"utilization": "utilization",
		"total_cost":  "totalCost",
		"duration_ms": "durationMs",
	})

	// BinResultAliases is the field table of BinResult.
	BinResultAliases = NewAliases(map[string]string{
		"bin_id":      "binId",
		"template_id": "templateId",
		"utilization": "utilization",
		"placements":  "placements",
		"weight":      "weight",
	})

	// PlacementAliases is the field table of Placement.
	PlacementAliases = NewAliases(map[string]string{
		"item_id":  "itemId",
		"x":        "x",
		"y":        "y",
		"z":        "z",
		"rotation": "rotation",
		"w":        "w",
		"h":        "h",
		"d":        "d",
	})

	// UnplacedItemAliases is the field table of UnplacedItem.
	UnplacedItemAliases = NewAliases(map[string]string{
		"item_id":  "itemId",
		"quantity": "quantity",
		"reason":   "reason",
	})

	// PackResponseAliases is the field table of PackResponse.
	PackResponseAliases = NewAliases(map[string]string{
		"stats":    "stats",
		"bins":     "bins",
		"unplaced": "unplaced",
	})
)
