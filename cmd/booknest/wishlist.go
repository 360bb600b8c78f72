package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nafiz001/booknest-client/internal/authz"
	"github.com/Nafiz001/booknest-client/internal/wishlist"

	"github.com/spf13/cobra"
)

func newWishlistCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage your wishlist",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show your wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}

			items, err := a.wishlist.List(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("Your wishlist is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBOOK\tPRICE")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t$%.2f\n", it.ID, it.BookTitle, it.BookPrice)
			}
			return w.Flush()
		},
	}

	add := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add a book to your wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapManageWishlist) {
				return fmt.Errorf("your role (%s) has no wishlist", u.Role)
			}

			item, err := a.wishlist.Add(cmd.Context(), args[0])
			if errors.Is(err, wishlist.ErrAlreadyInWishlist) {
				fmt.Println("Already in your wishlist.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Added %q to your wishlist.\n", item.BookTitle)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from your wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if _, err := a.currentUser(); err != nil {
				return err
			}

			if err := a.wishlist.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed from your wishlist.")
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
