package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
)

func newCartCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect or empty the shared cart",
	}
	cmd.AddCommand(newCartShowCmd(opts), newCartClearCmd())
	return cmd
}

func newCartShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print cart lines and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			lines, err := a.cart.GetCart(a.context(cmd.Context()))
			if err != nil {
				return err
			}
			if lines == nil {
				lines = []models.CartLine{}
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, map[string]any{
					"items":        lines,
					"total_items":  service.TotalItems(lines),
					"total_amount": service.TotalAmount(lines),
				})
			}
			if len(lines) == 0 {
				_, err := fmt.Fprintln(out, "Your cart is empty.")
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tQTY\tSUBTOTAL")
			for _, l := range lines {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", l.ID, l.Title, models.FormatPrice(l.Price), l.Qty, l.Subtotal())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "total items: %d, total amount: %s\n", service.TotalItems(lines), service.TotalAmount(lines))
			return err
		},
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cart.Clear(a.context(cmd.Context())); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return err
		},
	}
}
