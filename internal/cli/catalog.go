package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/models"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and change the product catalog",
	}
	cmd.AddCommand(newCatalogListCmd(opts), newCatalogAddCmd(opts), newCatalogResetCmd())
	return cmd
}

func newCatalogListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			products, err := a.catalog.GetAll(a.context(cmd.Context()))
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			return writeProducts(cmd.OutOrStdout(), products)
		},
	}
}

func newCatalogAddCmd(opts *rootOptions) *cobra.Command {
	var (
		title    string
		category string
		price    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Example: `  storefront catalog add --title "Graph Notebook" --category Stationery --price 55`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			prod, err := a.catalog.Add(a.context(cmd.Context()), title, category, price)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), prod)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %d. %s (%s)\n", prod.ID, prod.Title, models.FormatPrice(prod.Price))
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Product title (required)")
	cmd.Flags().StringVar(&category, "category", "", "Product category (default \""+models.DefaultCategory+"\")")
	cmd.Flags().Float64Var(&price, "price", 0, "Product price, must be positive (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newCatalogResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default product list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.catalog.ResetToDefaults(a.context(cmd.Context())); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Products reset to default list.")
			return err
		},
	}
}

func writeProducts(w io.Writer, products []models.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, models.FormatPrice(p.Price))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
