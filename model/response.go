package model

import (
	"encoding/json"
	"fmt"

	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

// Stats summarizes a packing result.
type Stats struct {
	// Items is the number of item units requested
	Items int
	// Placed is the number of item units placed
	Placed int
	// BinsUsed is the number of bin instances used
	BinsUsed    int
	Utilization Opt[float64]
	TotalCost   Opt[float64]
	DurationMS  Opt[int]
}

// Placement is the position and orientation of one item unit inside a bin.
type Placement struct {
	ItemID   string
	X, Y, Z  float64
	Rotation Opt[string]
	// W, H and D are the placed (rotated) dimensions when the service reports them
	W, H, D Opt[float64]
}

// BinResult is one packed bin instance.
type BinResult struct {
	// BinID identifies this bin instance
	BinID string
	// TemplateID is the id of the request Bin this instance was built from
	TemplateID string
	// Utilization is the filled volume ratio as computed by the service
	Utilization float64
	Placements  []Placement
	Weight      Opt[float64]
}

// UnplacedItem reports item units the service could not place.
type UnplacedItem struct {
	ItemID   string
	Quantity int
	Reason   Opt[string]
}

// PackResponse is the decoded body of a successful POST /v1/pack.
type PackResponse struct {
	Stats    Stats
	Bins     []BinResult
	Unplaced []UnplacedItem
}

// DecodePackResponse validates and converts a success response body.
//
// Either spelling of every field is accepted and unknown fields are ignored.
// Missing required fields (stats.items, stats.placed, stats.bins_used,
// bins[].bin_id, bins[].placements) or fields of the wrong type yield a
// *sdkerrors.DecodeError. Utilization values are not range-checked.
func DecodePackResponse(status int, body []byte) (*PackResponse, error) {
	raw, err := decodeDocument(body)
	if err != nil {
		return nil, &sdkerrors.DecodeError{
			Message: "invalid JSON",
			Status:  status,
			Body:    body,
			Err:     err,
		}
	}
	m, ok := toMap(raw)
	if !ok {
		return nil, &sdkerrors.DecodeError{
			Message: fmt.Sprintf("expected JSON object, got %T", raw),
			Status:  status,
			Body:    body,
		}
	}

	resp, ferr := packResponseFrom(m)
	if ferr != nil {
		return nil, &sdkerrors.DecodeError{
			Field:   ferr.field,
			Message: ferr.message,
			Status:  status,
			Body:    body,
		}
	}
	return resp, nil
}

// UnplacedCount returns the number of requested units that were not placed.
func (r *PackResponse) UnplacedCount() int {
	return r.Stats.Items - r.Stats.Placed
}

// PlacementsOf returns every placement of the given item across all bins.
func (r *PackResponse) PlacementsOf(itemID string) []Placement {
	var out []Placement
	for _, bin := range r.Bins {
		for _, p := range bin.Placements {
			if p.ItemID == itemID {
				out = append(out, p)
			}
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler using wire field names.
func (r PackResponse) MarshalJSON() ([]byte, error) {
	bins := make([]wireObject, len(r.Bins))
	for i, bin := range r.Bins {
		bins[i] = bin.wire()
	}

	o := wireObject{}
	o.put(PackResponseAliases, "stats", r.Stats.wire())
	o.put(PackResponseAliases, "bins", bins)
	if r.Unplaced != nil {
		unplaced := make([]wireObject, len(r.Unplaced))
		for i, u := range r.Unplaced {
			unplaced[i] = u.wire()
		}
		o.put(PackResponseAliases, "unplaced", unplaced)
	}
	return json.Marshal(o)
}

func (s Stats) wire() wireObject {
	o := wireObject{}
	o.put(StatsAliases, "items", s.Items)
	o.put(StatsAliases, "placed", s.Placed)
	o.put(StatsAliases, "bins_used", s.BinsUsed)
	putMeasure(o, StatsAliases, "utilization", s.Utilization)
	putMeasure(o, StatsAliases, "total_cost", s.TotalCost)
	putOpt(o, StatsAliases, "duration_ms", s.DurationMS)
	return o
}

func (b BinResult) wire() wireObject {
	placements := make([]wireObject, len(b.Placements))
	for i, p := range b.Placements {
		placements[i] = p.wire()
	}

	o := wireObject{}
	o.put(BinResultAliases, "bin_id", b.BinID)
	o.put(BinResultAliases, "template_id", b.TemplateID)
	o.put(BinResultAliases, "utilization", measure(b.Utilization))
	o.put(BinResultAliases, "placements", placements)
	putMeasure(o, BinResultAliases, "weight", b.Weight)
	return o
}

func (p Placement) wire() wireObject {
	o := wireObject{}
	o.put(PlacementAliases, "item_id", p.ItemID)
	o.put(PlacementAliases, "x", measure(p.X))
	o.put(PlacementAliases, "y", measure(p.Y))
	o.put(PlacementAliases, "z", measure(p.Z))
	putOpt(o, PlacementAliases, "rotation", p.Rotation)
	putMeasure(o, PlacementAliases, "w", p.W)
	putMeasure(o, PlacementAliases, "h", p.H)
	putMeasure(o, PlacementAliases, "d", p.D)
	return o
}

func (u UnplacedItem) wire() wireObject {
	o := wireObject{}
	o.put(UnplacedItemAliases, "item_id", u.ItemID)
	o.put(UnplacedItemAliases, "quantity", u.Quantity)
	putOpt(o, UnplacedItemAliases, "reason", u.Reason)
	return o
}

func packResponseFrom(m map[string]any) (*PackResponse, *fieldError) {
	r, ferr := resolve("", m, PackResponseAliases, false)
	if ferr != nil {
		return nil, ferr
	}

	resp := &PackResponse{}
	if raw, ok := r.object("stats", true); ok {
		stats, err := statsFrom("stats", raw)
		r.failWith(err)
		resp.Stats = stats
	}
	if list, ok := r.list("bins", true); ok {
		resp.Bins = make([]BinResult, 0, len(list))
		for i, raw := range list {
			bin, err := binResultFrom(indexPath("bins", i), raw)
			r.failWith(err)
			resp.Bins = append(resp.Bins, bin)
		}
	}
	if list, ok := r.list("unplaced", false); ok {
		resp.Unplaced = make([]UnplacedItem, 0, len(list))
		for i, raw := range list {
			u, err := unplacedFrom(indexPath("unplaced", i), raw)
			r.failWith(err)
			resp.Unplaced = append(resp.Unplaced, u)
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return resp, nil
}

func statsFrom(path string, m map[string]any) (Stats, *fieldError) {
	r, ferr := resolve(path, m, StatsAliases, false)
	if ferr != nil {
		return Stats{}, ferr
	}
	stats := Stats{
		Items:       r.count("items", true).Value(),
		Placed:      r.count("placed", true).Value(),
		BinsUsed:    r.count("bins_used", true).Value(),
		Utilization: r.measure("utilization", false),
		TotalCost:   r.measure("total_cost", false),
		DurationMS:  r.count("duration_ms", false),
	}
	return stats, r.err
}

func binResultFrom(path string, v any) (BinResult, *fieldError) {
	m, ok := toMap(v)
	if !ok {
		return BinResult{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, BinResultAliases, false)
	if ferr != nil {
		return BinResult{}, ferr
	}
	bin := BinResult{
		BinID:       r.str("bin_id", true).Value(),
		TemplateID:  r.str("template_id", false).Value(),
		Utilization: r.measure("utilization", false).Value(),
		Weight:      r.measure("weight", false),
	}
	if list, ok := r.list("placements", true); ok {
		bin.Placements = make([]Placement, 0, len(list))
		for i, raw := range list {
			p, err := placementFrom(indexPath(joinPath(path, "placements"), i), raw)
			r.failWith(err)
			bin.Placements = append(bin.Placements, p)
		}
	}
	return bin, r.err
}

func placementFrom(path string, v any) (Placement, *fieldError) {
	m, ok := toMap(v)
	if !ok {
		return Placement{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, PlacementAliases, false)
	if ferr != nil {
		return Placement{}, ferr
	}
	p := Placement{
		ItemID:   r.str("item_id", true).Value(),
		X:        r.measure("x", true).Value(),
		Y:        r.measure("y", true).Value(),
		Z:        r.measure("z", true).Value(),
		Rotation: r.str("rotation", false),
		W:        r.measure("w", false),
		H:        r.measure("h", false),
		D:        r.measure("d", false),
	}
	return p, r.err
}

func unplacedFrom(path string, v any) (UnplacedItem, *fieldError) {
	m, ok := toMap(v)
	if !ok {
		return UnplacedItem{}, &fieldError{field: path, message: fmt.Sprintf("expected object, got %T", v)}
	}
	r, ferr := resolve(path, m, UnplacedItemAliases, false)
	if ferr != nil {
		return UnplacedItem{}, ferr
	}
	u := UnplacedItem{
		ItemID:   r.str("item_id", true).Value(),
		Quantity: r.count("quantity", false).OrElse(1),
		Reason:   r.str("reason", false),
	}
	return u, r.err
}
