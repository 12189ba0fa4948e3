package model

import (
	"encoding/json"
	"fmt"
)

// Orientations lists the axis permutations accepted in RotationRules.
var Orientations = []string{"xyz", "xzy", "yxz", "yzx", "zxy", "zyx"}

// RotationRules constrains how an item may be rotated. Unset fields use the
// service default.
type RotationRules struct {
	AllowedOrientations Opt[[]string]
	KeepUpright         Opt[bool]
}

// StackingRules constrains what may be stacked on an item. Unset fields use
// the service default.
type StackingRules struct {
	Stackable      Opt[bool]
	MaxStackWeight Opt[float64]
	MaxStackCount  Opt[int]
	TopOnly        Opt[bool]
}

// Item is a unit to be packed.
type Item struct {
	// ID identifies the item within a request
	ID string
	// W, H and D are the item dimensions
	W, H, D float64
	// Quantity is the number of identical units; NewItem defaults it to 1
	Quantity      int
	Weight        Opt[float64]
	AllowRotation Opt[bool]
	Rotation      Opt[RotationRules]
	Stacking      Opt[StackingRules]
	GroupID       Opt[string]
}

// ItemOption configures an Item built by NewItem.
type ItemOption func(*Item)

// WithQuantity sets the number of identical units.
func WithQuantity(n int) ItemOption {
	return func(i *Item) { i.Quantity = n }
}

// WithWeight sets the weight of one unit.
func WithWeight(w float64) ItemOption {
	return func(i *Item) { i.Weight = Some(w) }
}

// WithAllowRotation sets whether the item may be rotated at all.
func WithAllowRotation(allow bool) ItemOption {
	return func(i *Item) { i.AllowRotation = Some(allow) }
}

// WithRotation attaches rotation rules.
func WithRotation(rules RotationRules) ItemOption {
	return func(i *Item) { i.Rotation = Some(rules) }
}

// WithStacking attaches stacking rules.
func WithStacking(rules StackingRules) ItemOption {
	return func(i *Item) { i.Stacking = Some(rules) }
}

// WithGroupID tags the item with a grouping key.
func WithGroupID(id string) ItemOption {
	return func(i *Item) { i.GroupID = Some(id) }
}

// NewItem creates a validated Item with quantity 1 unless overridden.
func NewItem(id string, w, h, d float64, opts ...ItemOption) (Item, error) {
	item := Item{ID: id, W: w, H: h, D: d, Quantity: 1}
	for _, opt := range opts {
		opt(&item)
	}
	if err := item.validate(""); err != nil {
		return Item{}, err.validation()
	}
	return item, nil
}

// ItemFromFields creates a validated Item from fields named in either
// spelling, e.g. Fields{"id": "a", "w": 1, "h": 1, "d": 1, "allow_rotation": false}.
func ItemFromFields(f Fields) (Item, error) {
	item, err := itemFrom("", f)
	if err != nil {
		return Item{}, err.validation()
	}
	return item, nil
}

// Validate checks the item invariants.
func (i Item) Validate() error {
	if err := i.validate(""); err != nil {
		return err.validation()
	}
	return nil
}

// Volume returns the volume of one unit.
func (i Item) Volume() float64 {
	return i.W * i.H * i.D
}

// MarshalJSON implements json.Marshaler using wire field names.
func (i Item) MarshalJSON() ([]byte, error) {
	if err := i.validate(""); err != nil {
		return nil, err.validation()
	}
	return json.Marshal(i.wire())
}

func (i Item) validate(path string) *fieldError {
	c := &checker{path: path}
	c.required("id", i.ID)
	c.positive("w", i.W)
	c.positive("h", i.H)
	c.positive("d", i.D)
	c.atLeastOne("quantity", i.Quantity)
	c.nonNegativeOpt("weight", i.Weight)
	if rules, ok := i.Rotation.Get(); ok {
		c.nested(rules.validate(joinPath(path, "rotation")))
	}
	if rules, ok := i.Stacking.Get(); ok {
		c.nested(rules.validate(joinPath(path, "stacking")))
	}
	return c.err
}

func (i Item) wire() wireObject {
	o := wireObject{}
	o.put(ItemAliases, "id", i.ID)
	o.put(ItemAliases, "w", measure(i.W))
	o.put(ItemAliases, "h", measure(i.H))
	o.put(ItemAliases, "d", measure(i.D))
	o.put(ItemAliases, "quantity", i.Quantity)
	putMeasure(o, ItemAliases, "weight", i.Weight)
	putOpt(o, ItemAliases, "allow_rotation", i.AllowRotation)
	if rules, ok := i.Rotation.Get(); ok {
		o.put(ItemAliases, "rotation", rules.wire())
	}
	if rules, ok := i.Stacking.Get(); ok {
		o.put(ItemAliases, "stacking", rules.wire())
	}
	putOpt(o, ItemAliases, "group_id", i.GroupID)
	return o
}

func itemFrom(path string, v any) (Item, *fieldError) {
	switch typed := v.(type) {
	case Item:
		return typed, typed.validate(path)
	case *Item:
		if typed == nil {
			return Item{}, &fieldError{field: path, message: "must not be null"}
		}
		return *typed, typed.validate(path)
	}

	m, ok := toMap(v)
	if !ok {
		return Item{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, ItemAliases, true)
	if ferr != nil {
		return Item{}, ferr
	}

	item := Item{
		ID:            r.str("id", true).Value(),
		W:             r.measure("w", true).Value(),
		H:             r.measure("h", true).Value(),
		D:             r.measure("d", true).Value(),
		Quantity:      r.count("quantity", false).OrElse(1),
		Weight:        r.measure("weight", false),
		AllowRotation: r.flag("allow_rotation"),
		GroupID:       r.str("group_id", false),
	}
	if raw, ok := r.lookup("rotation", false); ok {
		rules, err := rotationFrom(r.field("rotation"), raw)
		r.failWith(err)
		item.Rotation = Some(rules)
	}
	if raw, ok := r.lookup("stacking", false); ok {
		rules, err := stackingFrom(r.field("stacking"), raw)
		r.failWith(err)
		item.Stacking = Some(rules)
	}
	if r.err != nil {
		return Item{}, r.err
	}
	return item, item.validate(path)
}

func (r RotationRules) validate(path string) *fieldError {
	c := &checker{path: path}
	if list, ok := r.AllowedOrientations.Get(); ok {
		if len(list) == 0 {
			c.fail("allowed_orientations", "must not be empty")
		}
		for idx, o := range list {
			c.oneOf(indexPath("allowed_orientations", idx), o, Orientations...)
		}
	}
	return c.err
}

func (r RotationRules) wire() wireObject {
	o := wireObject{}
	putOpt(o, RotationRulesAliases, "allowed_orientations", r.AllowedOrientations)
	putOpt(o, RotationRulesAliases, "keep_upright", r.KeepUpright)
	return o
}

// RotationRulesFromFields creates validated RotationRules from fields named in either spelling.
func RotationRulesFromFields(f Fields) (RotationRules, error) {
	rules, err := rotationFrom("", f)
	if err != nil {
		return RotationRules{}, err.validation()
	}
	return rules, nil
}

func rotationFrom(path string, v any) (RotationRules, *fieldError) {
	switch typed := v.(type) {
	case RotationRules:
		return typed, typed.validate(path)
	case *RotationRules:
		if typed != nil {
			return *typed, typed.validate(path)
		}
	}
	m, ok := toMap(v)
	if !ok {
		return RotationRules{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, RotationRulesAliases, true)
	if ferr != nil {
		return RotationRules{}, ferr
	}
	rules := RotationRules{
		AllowedOrientations: r.strs("allowed_orientations"),
		KeepUpright:         r.flag("keep_upright"),
	}
	if r.err != nil {
		return RotationRules{}, r.err
	}
	return rules, rules.validate(path)
}

func (s StackingRules) validate(path string) *fieldError {
	c := &checker{path: path}
	c.nonNegativeOpt("max_stack_weight", s.MaxStackWeight)
	c.atLeastOneOpt("max_stack_count", s.MaxStackCount)
	return c.err
}

func (s StackingRules) wire() wireObject {
	o := wireObject{}
	putOpt(o, StackingRulesAliases, "stackable", s.Stackable)
	putMeasure(o, StackingRulesAliases, "max_stack_weight", s.MaxStackWeight)
	putOpt(o, StackingRulesAliases, "max_stack_count", s.MaxStackCount)
	putOpt(o, StackingRulesAliases, "top_only", s.TopOnly)
	return o
}

// StackingRulesFromFields creates validated StackingRules from fields named in either spelling.
func StackingRulesFromFields(f Fields) (StackingRules, error) {
	rules, err := stackingFrom("", f)
	if err != nil {
		return StackingRules{}, err.validation()
	}
	return rules, nil
}

func stackingFrom(path string, v any) (StackingRules, *fieldError) {
	switch typed := v.(type) {
	case StackingRules:
		return typed, typed.validate(path)
	case *StackingRules:
		if typed != nil {
			return *typed, typed.validate(path)
		}
	}
	m, ok := toMap(v)
	if !ok {
		return StackingRules{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, StackingRulesAliases, true)
	if ferr != nil {
		return StackingRules{}, ferr
	}
	rules := StackingRules{
		Stackable:      r.flag("stackable"),
		MaxStackWeight: r.measure("max_stack_weight", false),
		MaxStackCount:  r.count("max_stack_count", false),
		TopOnly:        r.flag("top_only"),
	}
	if r.err != nil {
		return StackingRules{}, r.err
	}
	return rules, rules.validate(path)
}
