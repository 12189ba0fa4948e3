package model

import (
	"encoding/json"
	"fmt"

	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

// Objective is the optimization goal of a packing request.
type Objective string

const (
	// ObjectiveMinBins minimizes the number of bins used.
	ObjectiveMinBins Objective = "minBins"
	// ObjectiveMinCost minimizes the total bin cost.
	ObjectiveMinCost Objective = "minCost"
	// ObjectiveMaxUtilization maximizes the filled volume ratio.
	ObjectiveMaxUtilization Objective = "maxUtilization"
)

// Objectives lists every supported objective token.
var Objectives = []Objective{ObjectiveMinBins, ObjectiveMinCost, ObjectiveMaxUtilization}

// ParseObjective returns the Objective for its exact wire token.
func ParseObjective(token string) (Objective, error) {
	for _, o := range Objectives {
		if string(o) == token {
			return o, nil
		}
	}
	return "", &sdkerrors.ValidationError{
		Field:   "objective",
		Message: fmt.Sprintf("unknown objective %q", token),
	}
}

// Palletization configures optional pallet building on top of the packed bins.
type Palletization struct {
	Enabled   Opt[bool]
	PalletID  Opt[string]
	MaxHeight Opt[float64]
	MaxWeight Opt[float64]
	Overhang  Opt[float64]
}

// ShippingObjective configures carrier-aware cost optimization.
type ShippingObjective struct {
	Carrier      Opt[string]
	ServiceLevel Opt[string]
	DimDivisor   Opt[float64]
	WeightUnit   Opt[string]
}

// PackRequest is the body of POST /v1/pack.
type PackRequest struct {
	Objective         Objective
	Items             []Item
	Bins              []Bin
	AllowUnplaced     Opt[bool]
	Palletization     Opt[Palletization]
	ShippingObjective Opt[ShippingObjective]
}

// RequestOption configures a PackRequest built by NewPackRequest.
type RequestOption func(*PackRequest)

// WithAllowUnplaced lets the service return a partial result when some items fit no bin.
func WithAllowUnplaced(allow bool) RequestOption {
	return func(r *PackRequest) { r.AllowUnplaced = Some(allow) }
}

// WithPalletization attaches pallet parameters.
func WithPalletization(p Palletization) RequestOption {
	return func(r *PackRequest) { r.Palletization = Some(p) }
}

// WithShippingObjective attaches a shipping objective.
func WithShippingObjective(s ShippingObjective) RequestOption {
	return func(r *PackRequest) { r.ShippingObjective = Some(s) }
}

// NewPackRequest creates a validated request. Items and bins are copied.
func NewPackRequest(objective Objective, items []Item, bins []Bin, opts ...RequestOption) (*PackRequest, error) {
	req := &PackRequest{
		Objective: objective,
		Items:     append([]Item(nil), items...),
		Bins:      append([]Bin(nil), bins...),
	}
	for _, opt := range opts {
		opt(req)
	}
	if err := req.validate(); err != nil {
		return nil, err.validation()
	}
	return req, nil
}

// PackRequestFromFields creates a validated request from fields named in
// either spelling. Items and bins may be given as Item/Bin values or as
// nested Fields.
func PackRequestFromFields(f Fields) (*PackRequest, error) {
	req, err := packRequestFrom(f)
	if err != nil {
		return nil, err.validation()
	}
	return req, nil
}

// ParsePackRequest decodes and validates a JSON request body. Numbers keep
// their textual form until they are converted to measures or counts.
func ParsePackRequest(data []byte) (*PackRequest, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, &sdkerrors.ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	m, ok := toMap(raw)
	if !ok {
		return nil, &sdkerrors.ValidationError{Message: fmt.Sprintf("expected JSON object, got %T", raw)}
	}
	return PackRequestFromFields(m)
}

// SetAllowUnplaced sets the allow-unplaced flag before submission.
func (r *PackRequest) SetAllowUnplaced(allow bool) {
	r.AllowUnplaced = Some(allow)
}

// Validate checks the request invariants.
func (r *PackRequest) Validate() error {
	if err := r.validate(); err != nil {
		return err.validation()
	}
	return nil
}

// TotalQuantity returns the sum of item quantities.
func (r *PackRequest) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

// Serialize validates the request and returns its wire payload.
func (r *PackRequest) Serialize() ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err.validation()
	}
	return json.Marshal(r.wire())
}

// MarshalJSON implements json.Marshaler; it validates like Serialize.
func (r *PackRequest) MarshalJSON() ([]byte, error) {
	return r.Serialize()
}

func (r *PackRequest) validate() *fieldError {
	c := &checker{}
	objectives := make([]string, len(Objectives))
	for i, o := range Objectives {
		objectives[i] = string(o)
	}
	c.oneOf("objective", string(r.Objective), objectives...)

	if len(r.Items) == 0 {
		c.fail("items", "must not be empty")
	}
	seen := make(map[string]bool, len(r.Items))
	for i, item := range r.Items {
		path := indexPath("items", i)
		c.nested(item.validate(path))
		if seen[item.ID] {
			c.fail(joinPath(path, "id"), fmt.Sprintf("duplicate id %q", item.ID))
		}
		seen[item.ID] = true
	}

	if len(r.Bins) == 0 {
		c.fail("bins", "must not be empty")
	}
	seen = make(map[string]bool, len(r.Bins))
	for i, bin := range r.Bins {
		path := indexPath("bins", i)
		c.nested(bin.validate(path))
		if seen[bin.ID] {
			c.fail(joinPath(path, "id"), fmt.Sprintf("duplicate id %q", bin.ID))
		}
		seen[bin.ID] = true
	}

	if p, ok := r.Palletization.Get(); ok {
		c.nested(p.validate("palletization"))
	}
	if s, ok := r.ShippingObjective.Get(); ok {
		c.nested(s.validate("shipping_objective"))
	}
	return c.err
}

func (r *PackRequest) wire() wireObject {
	items := make([]wireObject, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.wire()
	}
	bins := make([]wireObject, len(r.Bins))
	for i, bin := range r.Bins {
		bins[i] = bin.wire()
	}

	o := wireObject{}
	o.put(PackRequestAliases, "objective", string(r.Objective))
	o.put(PackRequestAliases, "items", items)
	o.put(PackRequestAliases, "bins", bins)
	putOpt(o, PackRequestAliases, "allow_unplaced", r.AllowUnplaced)
	if p, ok := r.Palletization.Get(); ok {
		o.put(PackRequestAliases, "palletization", p.wire())
	}
	if s, ok := r.ShippingObjective.Get(); ok {
		o.put(PackRequestAliases, "shipping_objective", s.wire())
	}
	return o
}

func packRequestFrom(f map[string]any) (*PackRequest, *fieldError) {
	r, ferr := resolve("", f, PackRequestAliases, true)
	if ferr != nil {
		return nil, ferr
	}

	req := &PackRequest{
		Objective:     Objective(r.str("objective", true).Value()),
		AllowUnplaced: r.flag("allow_unplaced"),
	}
	if list, ok := r.list("items", true); ok {
		req.Items = make([]Item, 0, len(list))
		for i, raw := range list {
			item, err := itemFrom(indexPath("items", i), raw)
			r.failWith(err)
			req.Items = append(req.Items, item)
		}
	}
	if list, ok := r.list("bins", true); ok {
		req.Bins = make([]Bin, 0, len(list))
		for i, raw := range list {
			bin, err := binFrom(indexPath("bins", i), raw)
			r.failWith(err)
			req.Bins = append(req.Bins, bin)
		}
	}
	if raw, ok := r.lookup("palletization", false); ok {
		p, err := palletizationFrom("palletization", raw)
		r.failWith(err)
		req.Palletization = Some(p)
	}
	if raw, ok := r.lookup("shipping_objective", false); ok {
		s, err := shippingObjectiveFrom("shipping_objective", raw)
		r.failWith(err)
		req.ShippingObjective = Some(s)
	}
	if r.err != nil {
		return nil, r.err
	}
	return req, req.validate()
}

func (p Palletization) validate(path string) *fieldError {
	c := &checker{path: path}
	c.positiveOpt("max_height", p.MaxHeight)
	c.positiveOpt("max_weight", p.MaxWeight)
	c.nonNegativeOpt("overhang", p.Overhang)
	return c.err
}

func (p Palletization) wire() wireObject {
	o := wireObject{}
	putOpt(o, PalletizationAliases, "enabled", p.Enabled)
	putOpt(o, PalletizationAliases, "pallet_id", p.PalletID)
	putMeasure(o, PalletizationAliases, "max_height", p.MaxHeight)
	putMeasure(o, PalletizationAliases, "max_weight", p.MaxWeight)
	putMeasure(o, PalletizationAliases, "overhang", p.Overhang)
	return o
}

func palletizationFrom(path string, v any) (Palletization, *fieldError) {
	switch typed := v.(type) {
	case Palletization:
		return typed, typed.validate(path)
	case *Palletization:
		if typed != nil {
			return *typed, typed.validate(path)
		}
	}
	m, ok := toMap(v)
	if !ok {
		return Palletization{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, PalletizationAliases, true)
	if ferr != nil {
		return Palletization{}, ferr
	}
	p := Palletization{
		Enabled:   r.flag("enabled"),
		PalletID:  r.str("pallet_id", false),
		MaxHeight: r.measure("max_height", false),
		MaxWeight: r.measure("max_weight", false),
		Overhang:  r.measure("overhang", false),
	}
	if r.err != nil {
		return Palletization{}, r.err
	}
	return p, p.validate(path)
}

func (s ShippingObjective) validate(path string) *fieldError {
	c := &checker{path: path}
	c.positiveOpt("dim_divisor", s.DimDivisor)
	if unit, ok := s.WeightUnit.Get(); ok {
		c.oneOf("weight_unit", unit, "kg", "lb")
	}
	return c.err
}

func (s ShippingObjective) wire() wireObject {
	o := wireObject{}
	putOpt(o, ShippingObjectiveAliases, "carrier", s.Carrier)
	putOpt(o, ShippingObjectiveAliases, "service_level", s.ServiceLevel)
	putMeasure(o, ShippingObjectiveAliases, "dim_divisor", s.DimDivisor)
	putOpt(o, ShippingObjectiveAliases, "weight_unit", s.WeightUnit)
	return o
}

func shippingObjectiveFrom(path string, v any) (ShippingObjective, *fieldError) {
	switch typed := v.(type) {
	case ShippingObjective:
		return typed, typed.validate(path)
	case *ShippingObjective:
		if typed != nil {
			return *typed, typed.validate(path)
		}
	}
	m, ok := toMap(v)
	if !ok {
		return ShippingObjective{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, ShippingObjectiveAliases, true)
	if ferr != nil {
		return ShippingObjective{}, ferr
	}
	s := ShippingObjective{
		Carrier:      r.str("carrier", false),
		ServiceLevel: r.str("service_level", false),
		DimDivisor:   r.measure("dim_divisor", false),
		WeightUnit:   r.str("weight_unit", false),
	}
	if r.err != nil {
		return ShippingObjective{}, r.err
	}
	return s, s.validate(path)
}
