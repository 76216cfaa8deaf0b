package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/cmd/storefront/render"
	"storefront/internal/catalog"
	"storefront/internal/httpx"
)

var (
	// Browse flags
	searchTerm  string
	category    string
	sortOrder   string
	minPrice    float64
	maxPrice    float64
	minRating   float64
	dealsOnly   bool
	askQuery    string
	clearFilter bool
	removeChip  string
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and filter the product catalog",
	Long: `Browse the product catalog with structured filters or a plain-English query.

Examples:
  storefront browse --category Electronics --sort price_asc
  storefront browse --search lamp --max-price 50 --deals
  storefront browse --ask "cheap electronics under $50, top rated"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd)
	},
}

// browseShowCmd shows a single product
var browseShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runBrowseShow(id)
	},
}

// browseSuggestCmd prints search suggestions for a partial query
var browseSuggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Show search suggestions for a partial query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowseSuggest(strings.Join(args, " "))
	},
}

// browseLiveCmd reruns the search as queries stream in on stdin
var browseLiveCmd = &cobra.Command{
	Use:   "live",
	Short: "Interactive search: each line typed reruns the query",
	Long: `Read queries line by line from stdin and rerun the catalog search for
each. Rapid lines are debounced, and a response that arrives after a newer
query has already rendered is dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowseLive()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.AddCommand(browseShowCmd, browseSuggestCmd, browseLiveCmd)

	browseCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Search term")
	browseCmd.Flags().StringVarP(&category, "category", "c", "", "Category filter")
	browseCmd.Flags().StringVar(&sortOrder, "sort", "", "Sort order (newest, price_asc, price_desc, name_asc, rating_desc)")
	browseCmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price")
	browseCmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price")
	browseCmd.Flags().Float64Var(&minRating, "min-rating", 0, "Minimum average rating")
	browseCmd.Flags().BoolVar(&dealsOnly, "deals", false, "Only show discounted products")
	browseCmd.Flags().StringVar(&askQuery, "ask", "", "Plain-English query, e.g. \"fashion deals under $30\"")
	browseCmd.Flags().BoolVar(&clearFilter, "clear", false, "Reset every filter to its default before applying flags")
	browseCmd.Flags().StringVar(&removeChip, "remove", "", "Remove one active filter chip (search, category, price, deals, rating, sort)")
}

func buildFilter(cmd *cobra.Command) catalog.FilterState {
	filter := catalog.DefaultFilter()
	if clearFilter {
		filter.Reset()
	}
	if searchTerm != "" {
		filter.Search = searchTerm
	}
	if category != "" {
		filter.Category = category
	}
	if sortOrder != "" {
		filter.Sort = sortOrder
	}
	if cmd.Flags().Changed("min-price") {
		v := minPrice
		filter.MinPrice = &v
	}
	if cmd.Flags().Changed("max-price") {
		v := maxPrice
		filter.MaxPrice = &v
	}
	if cmd.Flags().Changed("min-rating") {
		v := minRating
		filter.MinRating = &v
	}
	if dealsOnly {
		filter.DealsOnly = true
	}
	if askQuery != "" {
		delta := catalog.KeywordInterpreter{}.Interpret(askQuery)
		delta.Apply(&filter)
	}
	if removeChip != "" {
		filter.RemoveChip(removeChip)
	}
	return filter
}

func runBrowse(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	filter := buildFilter(cmd)
	products, err := a.catalog.List(context.Background(), filter)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(products)
	}

	if chips := filter.Chips(); len(chips) > 0 {
		fmt.Println(render.Chips(chips))
	}
	fmt.Println(render.ProductGrid(products, render.Options{AdminMode: a.profile.AdminMode(), Images: a.images}))
	output.Muted("%d product(s)", len(products))
	return nil
}

func runBrowseShow(id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	product, err := a.catalog.Get(context.Background(), id)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(product)
	}

	carousel := render.NewCarousel(len(product.ImageURLs))
	fmt.Println(render.ProductCard(*product, carousel, render.Options{AdminMode: a.profile.AdminMode(), Images: a.images}))
	return nil
}

func runBrowseSuggest(text string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	suggestions := a.catalog.Suggestions(context.Background(), text, 8)
	if len(suggestions) == 0 {
		output.Muted("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Println("  " + s)
	}
	return nil
}

func runBrowseLive() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	filter := catalog.DefaultFilter()
	opts := render.Options{AdminMode: a.profile.AdminMode(), Images: a.images}
	interpreter := catalog.KeywordInterpreter{}

	reloader := catalog.NewReloader(
		a.catalog.List,
		func(products []catalog.Product, err error) {
			if err != nil {
				output.Error("%s", httpx.Message(err))
				return
			}
			fmt.Println(render.ProductGrid(products, opts))
		},
		catalog.DefaultDebounce,
	)
	defer reloader.Close()

	output.Info("Type a query and press enter; empty line clears, ctrl+d exits.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			filter.Reset()
		} else {
			interpreter.Interpret(line).Apply(&filter)
		}
		reloader.Trigger(ctx, filter)
	}
	reloader.Flush(ctx)
	reloader.Wait()
	return scanner.Err()
}
