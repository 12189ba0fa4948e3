// Package model defines the request and response types of the BinSolver
// packing API and their JSON wire format.
//
// # Field names
//
// Every field has a canonical snake_case name (allow_rotation) and a wire
// camelCase name (allowRotation). The per-type [Aliases] tables map one to
// the other. Values built from [Fields] accept either spelling; when both are
// present the canonical spelling wins. Serialization always emits wire names.
//
//	item, err := model.ItemFromFields(model.Fields{
//	    "id": "item-1", "w": 10, "h": 10, "d": 10,
//	    "allow_rotation": false,
//	})
//
// # Optional fields
//
// Optional fields are [Opt] values. An unset Opt is absent from the payload,
// so the service applies its own default; an Opt set to 0 or false is sent.
//
// # Numbers
//
// Dimensions, weights and costs are measures and are always serialized as
// floating point (10 → 10.0). Quantities and counts are serialized as
// integers; a whole floating point input such as 2.0 is accepted as 2.
//
// # Validation
//
// Constructors return *sdkerrors.ValidationError for empty item or bin lists,
// non-positive dimensions, quantities below 1 (bins may use [Unlimited]),
// duplicate ids and unknown fields. [DecodePackResponse] returns
// *sdkerrors.DecodeError for malformed response bodies and ignores unknown
// response fields.
package model
