package model

import (
	"encoding/json"
	"fmt"
)

// Unlimited is the Bin quantity meaning "as many as needed".
const Unlimited = -1

// PackagingRules constrains how a bin is filled. Unset fields use the
// service default.
type PackagingRules struct {
	Padding      Opt[float64]
	MaxItems     Opt[int]
	VoidFill     Opt[bool]
	FragileOnTop Opt[bool]
}

// Bin is a container template items are packed into.
type Bin struct {
	// ID identifies the bin template within a request
	ID string
	// W, H and D are the inner dimensions
	W, H, D float64
	// Quantity is the number of available bins, or Unlimited; NewBin defaults it to 1
	Quantity  int
	MaxWeight Opt[float64]
	Cost      Opt[float64]
	Packaging Opt[PackagingRules]
}

// BinOption configures a Bin built by NewBin.
type BinOption func(*Bin)

// WithBinQuantity sets the number of available bins (or Unlimited).
func WithBinQuantity(n int) BinOption {
	return func(b *Bin) { b.Quantity = n }
}

// WithMaxWeight sets the weight limit of one bin.
func WithMaxWeight(w float64) BinOption {
	return func(b *Bin) { b.MaxWeight = Some(w) }
}

// WithCost sets the cost of using one bin.
func WithCost(cost float64) BinOption {
	return func(b *Bin) { b.Cost = Some(cost) }
}

// WithPackaging attaches packaging rules.
func WithPackaging(rules PackagingRules) BinOption {
	return func(b *Bin) { b.Packaging = Some(rules) }
}

// NewBin creates a validated Bin with quantity 1 unless overridden.
func NewBin(id string, w, h, d float64, opts ...BinOption) (Bin, error) {
	bin := Bin{ID: id, W: w, H: h, D: d, Quantity: 1}
	for _, opt := range opts {
		opt(&bin)
	}
	if err := bin.validate(""); err != nil {
		return Bin{}, err.validation()
	}
	return bin, nil
}

// BinFromFields creates a validated Bin from fields named in either spelling.
func BinFromFields(f Fields) (Bin, error) {
	bin, err := binFrom("", f)
	if err != nil {
		return Bin{}, err.validation()
	}
	return bin, nil
}

// Validate checks the bin invariants.
func (b Bin) Validate() error {
	if err := b.validate(""); err != nil {
		return err.validation()
	}
	return nil
}

// Volume returns the inner volume of one bin.
func (b Bin) Volume() float64 {
	return b.W * b.H * b.D
}

// IsUnlimited reports whether the bin quantity is unbounded.
func (b Bin) IsUnlimited() bool {
	return b.Quantity == Unlimited
}

// MarshalJSON implements json.Marshaler using wire field names.
func (b Bin) MarshalJSON() ([]byte, error) {
	if err := b.validate(""); err != nil {
		return nil, err.validation()
	}
	return json.Marshal(b.wire())
}

func (b Bin) validate(path string) *fieldError {
	c := &checker{path: path}
	c.required("id", b.ID)
	c.positive("w", b.W)
	c.positive("h", b.H)
	c.positive("d", b.D)
	if b.Quantity != Unlimited {
		c.atLeastOne("quantity", b.Quantity)
	}
	c.positiveOpt("max_weight", b.MaxWeight)
	c.nonNegativeOpt("cost", b.Cost)
	if rules, ok := b.Packaging.Get(); ok {
		c.nested(rules.validate(joinPath(path, "packaging")))
	}
	return c.err
}

func (b Bin) wire() wireObject {
	o := wireObject{}
	o.put(BinAliases, "id", b.ID)
	o.put(BinAliases, "w", measure(b.W))
	o.put(BinAliases, "h", measure(b.H))
	o.put(BinAliases, "d", measure(b.D))
	o.put(BinAliases, "quantity", b.Quantity)
	putMeasure(o, BinAliases, "max_weight", b.MaxWeight)
	putMeasure(o, BinAliases, "cost", b.Cost)
	if rules, ok := b.Packaging.Get(); ok {
		o.put(BinAliases, "packaging", rules.wire())
	}
	return o
}

func binFrom(path string, v any) (Bin, *fieldError) {
	switch typed := v.(type) {
	case Bin:
		return typed, typed.validate(path)
	case *Bin:
		if typed == nil {
			return Bin{}, &fieldError{field: path, message: "must not be null"}
		}
		return *typed, typed.validate(path)
	}

	m, ok := toMap(v)
	if !ok {
		return Bin{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, BinAliases, true)
	if ferr != nil {
		return Bin{}, ferr
	}

	bin := Bin{
		ID:        r.str("id", true).Value(),
		W:         r.measure("w", true).Value(),
		H:         r.measure("h", true).Value(),
		D:         r.measure("d", true).Value(),
		Quantity:  r.count("quantity", false).OrElse(1),
		MaxWeight: r.measure("max_weight", false),
		Cost:      r.measure("cost", false),
	}
	if raw, ok := r.lookup("packaging", false); ok {
		rules, err := packagingFrom(r.field("packaging"), raw)
		r.failWith(err)
		bin.Packaging = Some(rules)
	}
	if r.err != nil {
		return Bin{}, r.err
	}
	return bin, bin.validate(path)
}

func (p PackagingRules) validate(path string) *fieldError {
	c := &checker{path: path}
	c.nonNegativeOpt("padding", p.Padding)
	c.atLeastOneOpt("max_items", p.MaxItems)
	return c.err
}

func (p PackagingRules) wire() wireObject {
	o := wireObject{}
	putMeasure(o, PackagingRulesAliases, "padding", p.Padding)
	putOpt(o, PackagingRulesAliases, "max_items", p.MaxItems)
	putOpt(o, PackagingRulesAliases, "void_fill", p.VoidFill)
	putOpt(o, PackagingRulesAliases, "fragile_on_top", p.FragileOnTop)
	return o
}

// PackagingRulesFromFields creates validated PackagingRules from fields named in either spelling.
func PackagingRulesFromFields(f Fields) (PackagingRules, error) {
	rules, err := packagingFrom("", f)
	if err != nil {
		return PackagingRules{}, err.validation()
	}
	return rules, nil
}

func packagingFrom(path string, v any) (PackagingRules, *fieldError) {
	switch typed := v.(type) {
	case PackagingRules:
		return typed, typed.validate(path)
	case *PackagingRules:
		if typed != nil {
			return *typed, typed.validate(path)
		}
	}
	m, ok := toMap(v)
	if !ok {
		return PackagingRules{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, PackagingRulesAliases, true)
	if ferr != nil {
		return PackagingRules{}, ferr
	}
	rules := PackagingRules{
		Padding:      r.measure("padding", false),
		MaxItems:     r.count("max_items", false),
		VoidFill:     r.flag("void_fill"),
		FragileOnTop: r.flag("fragile_on_top"),
	}
	if r.err != nil {
		return PackagingRules{}, r.err
	}
	return rules, rules.validate(path)
}
