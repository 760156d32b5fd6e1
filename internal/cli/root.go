package cli

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	jsonOutput bool
}

// NewRootCmd builds the storefront command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront demo: catalog, cart and mock checkout over a key-value store",
		Long: `Storefront serves a small catalog, a single shared cart and a mock checkout
as server-rendered pages plus a JSON API. State lives in a key-value store
selected by STORE_DRIVER (memory, sqlite, postgres or redis).

The catalog and cart commands operate on the same store the server uses.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd(opts))
	root.AddCommand(newCartCmd(opts))
	return root
}
