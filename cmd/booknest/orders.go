package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nafiz001/booknest-client/internal/authz"
	"github.com/Nafiz001/booknest-client/internal/order"

	"github.com/spf13/cobra"
)

func newOrdersCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Place and track orders",
	}

	var (
		phone        string
		address      string
		city         string
		zip          string
		deliveryType string
		notes        string
	)

	place := &cobra.Command{
		Use:   "place <book-id>",
		Short: "Order a book for delivery or pickup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapPlaceOrder) {
				return fmt.Errorf("your role (%s) cannot place orders", u.Role)
			}

			b, err := a.books.Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			placed, err := a.orders.Place(cmd.Context(), order.Draft{
				Book:         b,
				Phone:        phone,
				Address:      address,
				City:         city,
				ZipCode:      zip,
				DeliveryType: order.DeliveryType(deliveryType),
				Notes:        notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Order %s placed for %q (%s). Pay with `booknest pay %s`.\n",
				placed.ID, placed.BookTitle, placed.DeliveryType, placed.ID)
			return nil
		},
	}
	place.Flags().StringVar(&phone, "phone", "", "contact phone (10 digits)")
	place.Flags().StringVar(&address, "address", "", "street address")
	place.Flags().StringVar(&city, "city", "", "city")
	place.Flags().StringVar(&zip, "zip", "", "zip code")
	place.Flags().StringVar(&deliveryType, "type", "delivery", "delivery or pickup")
	place.Flags().StringVar(&notes, "notes", "", "delivery notes")

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}

			orders, err := a.orders.MyOrders(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			printOrders(orders)
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a pending order (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapCancelOwnOrder) {
				return fmt.Errorf("your role (%s) cannot cancel orders", u.Role)
			}

			cancelled, err := a.orders.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Order %s cancelled.\n", cancelled.ID)
			return nil
		},
	}

	cmd.AddCommand(place, list, cancel)
	return cmd
}

func printOrders(orders []order.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOOK\tPRICE\tTYPE\tSTATUS\tPAYMENT")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\t%s\t%s\n",
			o.ID, o.BookTitle, o.BookPrice, o.DeliveryType, o.Status, o.PaymentStatus)
	}
	w.Flush()
}
