package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Nafiz001/booknest-client/internal/authz"
	"github.com/Nafiz001/booknest-client/internal/payment"

	"github.com/spf13/cobra"
)

// checkoutWait bounds how long we hold the loopback listener open for the
// buyer to finish on the hosted page.
const checkoutWait = 15 * time.Minute

func newPayCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Pay for an order through the hosted checkout page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapPayOrder) {
				return fmt.Errorf("your role (%s) cannot pay for orders", u.Role)
			}

			session, err := a.payments.Start(cmd.Context(), args[0])
			if errors.Is(err, payment.ErrAlreadyPaid) {
				fmt.Println("This order has already been paid.")
				return listOrdersAfterPayment(cmd, a, u.ID)
			}
			if err != nil {
				return err
			}

			listener, err := payment.NewCallbackListener(a.cfg.CallbackAddr)
			if err != nil {
				return fmt.Errorf("failed to start payment return listener: %w", err)
			}
			defer listener.Close()

			fmt.Println("Open this page in your browser to complete the payment:")
			fmt.Printf("\n  %s\n\n", session.URL)
			fmt.Println("Waiting for the payment to complete...")

			waitCtx, cancel := context.WithTimeout(cmd.Context(), checkoutWait)
			defer cancel()

			sessionID, err := listener.Wait(waitCtx)
			if errors.Is(err, payment.ErrNoSession) {
				fmt.Println("Payment was cancelled.")
				return listOrdersAfterPayment(cmd, a, u.ID)
			}
			if err != nil {
				return fmt.Errorf("gave up waiting for the payment redirect: %w", err)
			}

			// Payment is not done until the server confirms the session.
			paid, err := a.payments.Reconcile(cmd.Context(), sessionID)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Payment could not be confirmed; check your orders before retrying.")
				if listErr := listOrdersAfterPayment(cmd, a, u.ID); listErr != nil {
					return err
				}
				return err
			}

			fmt.Printf("Payment confirmed for order %s. An invoice is available via `booknest invoices`.\n", paid.ID)
			return nil
		},
	}
	return cmd
}

func listOrdersAfterPayment(cmd *cobra.Command, a *app, userID string) error {
	orders, err := a.orders.MyOrders(cmd.Context(), userID)
	if err != nil {
		return err
	}
	printOrders(orders)
	return nil
}
