package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nafiz001/booknest-client/internal/authz"

	"github.com/spf13/cobra"
)

func newInvoicesCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "List invoices for your paid orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapViewInvoices) {
				return fmt.Errorf("your role (%s) has no invoices", u.Role)
			}

			invoices, err := a.invoices.ListByUser(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			if len(invoices) == 0 {
				fmt.Println("No invoices yet; they appear after an order is paid.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORDER\tBOOK\tAMOUNT\tPAID AT")
			for _, inv := range invoices {
				fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
					inv.ID, inv.OrderID, inv.BookTitle, inv.Amount,
					inv.PaidAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}
