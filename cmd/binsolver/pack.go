package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/welltyped-systems/binsolver-go/model"
	"gopkg.in/yaml.v3"
)

var packFlags struct {
	file          string
	example       bool
	raw           bool
	allowUnplaced bool
	summary       bool
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Submit a packing request",
	Long: `Read a packing request from a YAML or JSON file (or stdin with --file -),
submit it and print the response as JSON.

Field names may use either spelling (allow_rotation or allowRotation).

Examples:
  # Pack a request file
  binsolver pack --file request.yaml

  # Send a file without local validation
  binsolver pack --file request.json --raw

  # Pack the built-in example and print a short summary
  binsolver pack --example --summary`,
	Args: cobra.NoArgs,
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().StringVarP(&packFlags.file, "file", "f", "", "request file (YAML or JSON, - for stdin)")
	packCmd.Flags().BoolVar(&packFlags.example, "example", false, "use the built-in example request")
	packCmd.Flags().BoolVar(&packFlags.raw, "raw", false, "send the file as-is, skipping local validation")
	packCmd.Flags().BoolVar(&packFlags.allowUnplaced, "allow-unplaced", false, "report items that fit no bin instead of failing")
	packCmd.Flags().BoolVar(&packFlags.summary, "summary", false, "print a summary instead of the full response")
}

func runPack(cmd *cobra.Command, args []string) error {
	if (packFlags.file == "") == !packFlags.example {
		return errors.New("exactly one of --file or --example is required")
	}
	if packFlags.raw && packFlags.example {
		return errors.New("--raw requires --file")
	}

	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	var resp *model.PackResponse
	switch {
	case packFlags.example:
		req := exampleRequest()
		if packFlags.allowUnplaced {
			req.SetAllowUnplaced(true)
		}
		resp, err = c.Pack(cmd.Context(), req)
	default:
		var fields model.Fields
		fields, err = readRequestFile(cmd.InOrStdin(), packFlags.file)
		if err != nil {
			return err
		}
		if packFlags.raw {
			if packFlags.allowUnplaced {
				fields["allowUnplaced"] = true
			}
			resp, err = c.PackRaw(cmd.Context(), map[string]any(fields))
			break
		}
		var req *model.PackRequest
		req, err = model.PackRequestFromFields(fields)
		if err != nil {
			return err
		}
		if packFlags.allowUnplaced {
			req.SetAllowUnplaced(true)
		}
		resp, err = c.Pack(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if packFlags.summary {
		printSummary(out, resp)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// readRequestFile decodes a YAML or JSON document into request fields.
func readRequestFile(stdin io.Reader, path string) (model.Fields, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	// JSON is valid YAML, so one decoder serves both formats
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("parse request %s: empty document", path)
	}
	return model.Fields(fields), nil
}

func printSummary(w io.Writer, resp *model.PackResponse) {
	fmt.Fprintf(w, "placed %d of %d units in %d bins\n", resp.Stats.Placed, resp.Stats.Items, resp.Stats.BinsUsed)
	if u, ok := resp.Stats.Utilization.Get(); ok {
		fmt.Fprintf(w, "utilization %.1f%%\n", u*100)
	}
	if cost, ok := resp.Stats.TotalCost.Get(); ok {
		fmt.Fprintf(w, "total cost %.2f\n", cost)
	}
	for _, bin := range resp.Bins {
		fmt.Fprintf(w, "  %s: %d placements, %.1f%% full\n", bin.BinID, len(bin.Placements), bin.Utilization*100)
	}
	for _, u := range resp.Unplaced {
		fmt.Fprintf(w, "  unplaced %s x%d", u.ItemID, u.Quantity)
		if reason, ok := u.Reason.Get(); ok {
			fmt.Fprintf(w, " (%s)", reason)
		}
		fmt.Fprintln(w)
	}
}

// exampleRequest is a small mixed-carton shipment.
func exampleRequest() *model.PackRequest {
	items := []model.Item{
		mustItem(model.NewItem("mug", 10, 12, 10, model.WithQuantity(4), model.WithWeight(0.4),
			model.WithRotation(model.RotationRules{KeepUpright: model.Some(true)}))),
		mustItem(model.NewItem("book", 15, 3, 22, model.WithQuantity(2), model.WithWeight(0.8))),
		mustItem(model.NewItem("lamp", 20, 45, 20, model.WithWeight(2.5), model.WithAllowRotation(false))),
	}
	bins := []model.Bin{
		mustBin(model.NewBin("small-box", 30, 30, 30, model.WithBinQuantity(model.Unlimited), model.WithMaxWeight(10), model.WithCost(1.5))),
		mustBin(model.NewBin("tall-box", 30, 60, 30, model.WithBinQuantity(2), model.WithMaxWeight(20), model.WithCost(3))),
	}
	req, err := model.NewPackRequest(model.ObjectiveMinBins, items, bins)
	if err != nil {
		panic(err)
	}
	return req
}

func mustItem(item model.Item, err error) model.Item {
	if err != nil {
		panic(err)
	}
	return item
}

func mustBin(bin model.Bin, err error) model.Bin {
	if err != nil {
		panic(err)
	}
	return bin
}
