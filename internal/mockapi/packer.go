package mockapi

import (
	"context"
	"fmt"
	"time"

	"github.com/welltyped-systems/binsolver-go/model"
)

// Packer answers pack requests.
type Packer interface {
	Pack(ctx context.Context, req *model.PackRequest) (*model.PackResponse, error)
}

// UnplaceableError reports an item that fits no bin when the request does
// not allow unplaced items.
type UnplaceableError struct {
	ItemID string
	Reason string
}

func (e *UnplaceableError) Error() string {
	return fmt.Sprintf("item %q cannot be placed: %s", e.ItemID, e.Reason)
}

// TooManyUnitsError reports a request whose total item quantity exceeds
// MaxUnits.
type TooManyUnitsError struct {
	Max int
}

func (e *TooManyUnitsError) Error() string {
	return fmt.Sprintf("total item quantity exceeds %d units", e.Max)
}

// MaxUnits bounds the item units OneItemPerBin will lay out for one request.
const MaxUnits = 100_000

const (
	reasonNoFit     = "fits no bin"
	reasonExhausted = "no bins left"

	// ctxCheckEvery is how many units are laid out between context checks.
	ctxCheckEvery = 1024
)

// OneItemPerBin is a stub Packer that puts every item unit alone in its own
// bin instance, at the origin, using the first bin template (in request
// order) it fits. It honors rotation rules, bin quantities and max weights
// but makes no attempt to share bins. Requests over MaxUnits total units are
// refused with a TooManyUnitsError.
type OneItemPerBin struct{}

// Pack implements Packer.
func (OneItemPerBin) Pack(ctx context.Context, req *model.PackRequest) (*model.PackResponse, error) {
	start := time.Now()

	units := 0
	for _, item := range req.Items {
		if item.Quantity > MaxUnits-units {
			return nil, &TooManyUnitsError{Max: MaxUnits}
		}
		units += item.Quantity
	}

	remaining := make([]int, len(req.Bins))
	used := make([]int, len(req.Bins))
	for i, bin := range req.Bins {
		remaining[i] = bin.Quantity
	}

	resp := &model.PackResponse{Bins: []model.BinResult{}}
	var itemVolume, binVolume, cost float64
	costed := false

	for _, item := range req.Items {
		unplaced := 0
		reason := ""
		for unit := 0; unit < item.Quantity; unit++ {
			if resp.Stats.Items%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			resp.Stats.Items++

			idx, orientation, why := chooseBin(item, req.Bins, remaining)
			if idx < 0 {
				unplaced++
				reason = why
				continue
			}

			bin := req.Bins[idx]
			if remaining[idx] != model.Unlimited {
				remaining[idx]--
			}
			used[idx]++
			w, h, d := orient(item, orientation)

			result := model.BinResult{
				BinID:       fmt.Sprintf("%s#%d", bin.ID, used[idx]),
				TemplateID:  bin.ID,
				Utilization: item.Volume() / bin.Volume(),
				Placements: []model.Placement{{
					ItemID:   item.ID,
					Rotation: model.Some(orientation),
					W:        model.Some(w),
					H:        model.Some(h),
					D:        model.Some(d),
				}},
			}
			if weight, ok := item.Weight.Get(); ok {
				result.Weight = model.Some(weight)
			}
			resp.Bins = append(resp.Bins, result)

			resp.Stats.Placed++
			itemVolume += item.Volume()
			binVolume += bin.Volume()
			if c, ok := bin.Cost.Get(); ok {
				cost += c
				costed = true
			}
		}

		if unplaced > 0 {
			if !req.AllowUnplaced.Value() {
				return nil, &UnplaceableError{ItemID: item.ID, Reason: reason}
			}
			resp.Unplaced = append(resp.Unplaced, model.UnplacedItem{
				ItemID:   item.ID,
				Quantity: unplaced,
				Reason:   model.Some(reason),
			})
		}
	}

	resp.Stats.BinsUsed = len(resp.Bins)
	if binVolume > 0 {
		resp.Stats.Utilization = model.Some(itemVolume / binVolume)
	}
	if costed {
		resp.Stats.TotalCost = model.Some(cost)
	}
	resp.Stats.DurationMS = model.Some(int(time.Since(start).Milliseconds()))
	return resp, nil
}

// chooseBin returns the index of the first bin with stock that the item
// fits, the orientation used, or -1 and the reason nothing fits.
func chooseBin(item model.Item, bins []model.Bin, remaining []int) (int, string, string) {
	reason := reasonNoFit
	for i, bin := range bins {
		if maxWeight, ok := bin.MaxWeight.Get(); ok && item.Weight.Value() > maxWeight {
			continue
		}
		orientation, ok := fitting(item, bin)
		if !ok {
			continue
		}
		if remaining[i] == 0 {
			reason = reasonExhausted
			continue
		}
		return i, orientation, ""
	}
	return -1, "", reason
}

func fitting(item model.Item, bin model.Bin) (string, bool) {
	for _, orientation := range allowedOrientations(item) {
		w, h, d := orient(item, orientation)
		if w <= bin.W && h <= bin.H && d <= bin.D {
			return orientation, true
		}
	}
	return "", false
}

func allowedOrientations(item model.Item) []string {
	if !item.AllowRotation.OrElse(true) {
		return []string{"xyz"}
	}
	rules := item.Rotation.Value()
	candidates := rules.AllowedOrientations.OrElse(model.Orientations)
	if !rules.KeepUpright.Value() {
		return candidates
	}
	upright := make([]string, 0, len(candidates))
	for _, o := range candidates {
		if o[1] == 'y' {
			upright = append(upright, o)
		}
	}
	return upright
}

// orient returns the item dimensions along the bin axes for an orientation
// such as "zxy": the first letter names the item axis laid along the bin's x.
func orient(item model.Item, orientation string) (float64, float64, float64) {
	axis := func(b byte) float64 {
		switch b {
		case 'x':
			return item.W
		case 'y':
			return item.H
		default:
			return item.D
		}
	}
	return axis(orientation[0]), axis(orientation[1]), axis(orientation[2])
}
