package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/engine"
	"github.com/matst80/slask-menu/pkg/facet"
	"github.com/matst80/slask-menu/pkg/source"
	"github.com/matst80/slask-menu/pkg/types"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "menufilter",
		Short:         "Filter, sort and inspect a menu file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP("file", "f", "menu.json", "menu file, a JSON list or an object keyed by item id")
	cmd.PersistentFlags().Bool("json", false, "print JSON instead of a table")

	cmd.AddCommand(
		FilterCmd(),
		CategoriesCmd(),
		PriceRangeCmd(),
		FacetsCmd(),
	)
	return cmd
}

func FilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Apply a filter request to the menu",
		RunE:  runFilter,
	}
	cmd.Flags().StringP("query", "q", "", "free text search on name and description")
	cmd.Flags().StringSliceP("category", "c", nil, "category to include, repeatable")
	cmd.Flags().Bool("available", true, "include available items")
	cmd.Flags().Bool("out-of-stock", true, "include out of stock items")
	cmd.Flags().Float64("min", 0, "lowest price")
	cmd.Flags().Float64("max", types.DefaultMaxPrice, "highest price")
	cmd.Flags().StringP("sort", "s", string(types.DefaultSort), "newest, popularity, price_low_to_high, price_high_to_low, name_a_to_z or name_z_to_a")
	cmd.Flags().Int("preview", engine.DefaultPreviewLimit, "number of items in the preview")
	cmd.Flags().Bool("preview-only", false, "print only the preview")
	return cmd
}

func CategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories with item counts",
		RunE:  runCategories,
	}
}

func PriceRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price-range",
		Short: "Print the lowest and highest price",
		RunE:  runPriceRange,
	}
}

func FacetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Print categories, availability and price range as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadItems(cmd)
			if err != nil {
				return err
			}
			return writeJson(cmd.OutOrStdout(), facet.Metadata(items))
		},
	}
}

func loadItems(cmd *cobra.Command) ([]types.MenuItem, error) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	items, err := source.NewFileSource(file).Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return items, nil
}

func asJson(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJson(w io.Writer, data any) error {
	return jsoncompat.NewEncoder(w).Encode(data)
}

func requestFromFlags(cmd *cobra.Command) (types.FilterRequest, error) {
	flags := cmd.Flags()
	query, _ := flags.GetString("query")
	categories, _ := flags.GetStringSlice("category")
	showAvailable, _ := flags.GetBool("available")
	showOutOfStock, _ := flags.GetBool("out-of-stock")
	minPrice, _ := flags.GetFloat64("min")
	maxPrice, err := flags.GetFloat64("max")
	if err != nil {
		return types.FilterRequest{}, err
	}
	sort, _ := flags.GetString("sort")
	return types.NewFilterRequest(
		types.WithQuery(query),
		types.WithCategories(categories...),
		types.WithAvailability(showAvailable, showOutOfStock),
		types.WithPriceRange(minPrice, maxPrice),
		types.WithSort(types.ParseSortOption(sort)),
	), nil
}

func itemTable(items []types.MenuItem) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "PRICE", "AVAILABLE", "ORDERS")
	for _, item := range items {
		t.Row(
			item.Id,
			item.Name,
			item.CategoryOrDefault(),
			strconv.FormatFloat(item.Price, 'f', 2, 64),
			strconv.FormatBool(item.Available),
			strconv.Itoa(item.OrderCount),
		)
	}
	return t.String()
}

func runFilter(cmd *cobra.Command, args []string) error {
	items, err := loadItems(cmd)
	if err != nil {
		return err
	}
	request, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	preview, _ := cmd.Flags().GetInt("preview")
	previewOnly, _ := cmd.Flags().GetBool("preview-only")

	res := engine.New(engine.WithPreviewLimit(preview)).Apply(items, request)
	out := cmd.OutOrStdout()
	shown := res.Items
	if previewOnly {
		shown = res.Preview
	}
	if asJson(cmd) {
		if previewOnly {
			return writeJson(out, shown)
		}
		return writeJson(out, res)
	}
	fmt.Fprintln(out, itemTable(shown))
	fmt.Fprintf(out, "%d of %d items, %d active filters, sorted by %s\n", res.Count, res.Total, request.ActiveFilterCount(), res.Request.Sort)
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	items, err := loadItems(cmd)
	if err != nil {
		return err
	}
	counts := facet.CategoryCounts(items)
	out := cmd.OutOrStdout()
	if asJson(cmd) {
		return writeJson(out, counts)
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("CATEGORY", "ITEMS")
	for _, c := range counts {
		t.Row(c.Name, strconv.Itoa(c.Count))
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func runPriceRange(cmd *cobra.Command, args []string) error {
	items, err := loadItems(cmd)
	if err != nil {
		return err
	}
	priceRange := facet.PriceRangeOf(items)
	out := cmd.OutOrStdout()
	if asJson(cmd) {
		return writeJson(out, priceRange)
	}
	fmt.Fprintf(out, "%.2f - %.2f\n", priceRange.Min, priceRange.Max)
	return nil
}
