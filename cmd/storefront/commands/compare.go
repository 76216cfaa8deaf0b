package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/cmd/storefront/render"
	"storefront/internal/catalog"
	"storefront/internal/compare"
	"storefront/internal/httpx"
)

var compareCategory string

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare products side by side",
	Long: `Compare 2 to 4 products side by side, or let the local scorer pick the
top 3 from the catalog automatically.

Examples:
  storefront compare run 12 47 93
  storefront compare auto --category Electronics`,
}

var compareRunCmd = &cobra.Command{
	Use:   "run <product-id> <product-id> [product-id...]",
	Short: "Compare the given products (2-4 ids)",
	Args:  cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid product id %q", arg)
			}
			ids = append(ids, id)
		}
		return runCompare(ids)
	},
}

var compareAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Auto-pick and compare the top 3 products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompareAuto()
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.AddCommand(compareRunCmd, compareAutoCmd)

	compareAutoCmd.Flags().StringVarP(&compareCategory, "category", "c", "", "Restrict the auto-pick to one category")
}

// uniqueIDs drops repeated ids, keeping first-mention order. A repeated id
// would otherwise toggle itself back off the selection.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	kept := ids[:0:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		kept = append(kept, id)
	}
	return kept
}

func printCompare(result *catalog.CompareResult) error {
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Println(render.CompareView(result))
	return nil
}

func runCompare(ids []int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	for _, id := range uniqueIDs(ids) {
		if _, err := a.engine.Selection.Toggle(id, ""); err != nil {
			if errors.Is(err, compare.ErrSelectionFull) {
				output.Warning("You can compare at most %d products.", compare.MaxSelection)
				break
			}
			return err
		}
	}

	result, err := a.engine.Run(context.Background())
	if err != nil {
		if errors.Is(err, compare.ErrTooFew) {
			output.Warning("Pick at least %d products to compare.", compare.MinRunSize)
			return nil
		}
		output.Error("%s", httpx.Message(err))
		return err
	}
	return printCompare(result)
}

func runCompareAuto() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	filter := catalog.DefaultFilter()
	if compareCategory != "" {
		filter.Category = compareCategory
	}
	visible, err := a.catalog.List(context.Background(), filter)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	result, err := a.engine.AutoCompare(context.Background(), visible)
	if err != nil {
		if errors.Is(err, compare.ErrTooFew) {
			output.Warning("Not enough products to compare.")
			return nil
		}
		output.Error("%s", httpx.Message(err))
		return err
	}
	return printCompare(result)
}
