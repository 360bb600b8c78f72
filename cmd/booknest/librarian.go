package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nafiz001/booknest-client/internal/authz"
	"github.com/Nafiz001/booknest-client/internal/book"
	"github.com/Nafiz001/booknest-client/internal/order"

	"github.com/spf13/cobra"
)

func newLibrarianCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "librarian",
		Short: "Manage your inventory and fulfillment",
	}
	cmd.AddCommand(newLibrarianBooksCmd(get), newLibrarianOrdersCmd(get))
	return cmd
}

func newLibrarianBooksCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage your books",
	}

	requireLibrarian := func(a *app) error {
		u, err := a.currentUser()
		if err != nil {
			return err
		}
		if !authz.Can(u, authz.CapManageOwnBooks) {
			return fmt.Errorf("your role (%s) cannot manage books", u.Role)
		}
		return nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your books in every status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLibrarian(a); err != nil {
				return err
			}
			u, _ := a.currentUser()

			books, err := a.books.MyBooks(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			printBooksWithStatus(books)
			return nil
		},
	}

	var req book.CreateRequest
	var coverPath string

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a new book (created as a draft)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLibrarian(a); err != nil {
				return err
			}

			if coverPath != "" {
				f, err := os.Open(coverPath)
				if err != nil {
					return err
				}
				defer f.Close()

				url, err := a.uploader.Upload(cmd.Context(), f.Name(), f)
				if err != nil {
					fmt.Fprintln(os.Stderr, "Cover upload failed, the book will have no cover.")
				} else {
					req.Image = url
				}
			}

			created, err := a.books.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Book %s created as a draft. Publish it with `booknest librarian books publish %s`.\n",
				created.ID, created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&req.Title, "title", "", "book title")
	add.Flags().StringVar(&req.Author, "author", "", "author")
	add.Flags().StringVar(&req.Description, "description", "", "description")
	add.Flags().StringVar(&req.ISBN, "isbn", "", "ISBN-10 or ISBN-13")
	add.Flags().StringVar(&req.Publisher, "publisher", "", "publisher")
	add.Flags().IntVar(&req.Pages, "pages", 0, "page count")
	add.Flags().StringVar(&req.Language, "language", "English", "language")
	add.Flags().StringVar(&req.Category, "category", "", "catalog category")
	add.Flags().Float64Var(&req.Price, "price", 0, "price in USD")
	add.Flags().StringVar(&coverPath, "cover", "", "path to a cover image")
	add.MarkFlagRequired("title")
	add.MarkFlagRequired("author")
	add.MarkFlagRequired("isbn")
	add.MarkFlagRequired("category")
	add.MarkFlagRequired("price")

	var (
		newTitle string
		newPrice float64
		newDesc  string
	)

	update := &cobra.Command{
		Use:   "update <book-id>",
		Short: "Update one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLibrarian(a); err != nil {
				return err
			}

			upd := book.UpdateRequest{}
			if cmd.Flags().Changed("title") {
				upd.Title = &newTitle
			}
			if cmd.Flags().Changed("price") {
				upd.Price = &newPrice
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &newDesc
			}

			updated, err := a.books.Update(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			fmt.Printf("Book %s updated.\n", updated.ID)
			return nil
		},
	}
	update.Flags().StringVar(&newTitle, "title", "", "new title")
	update.Flags().Float64Var(&newPrice, "price", 0, "new price")
	update.Flags().StringVar(&newDesc, "description", "", "new description")

	setStatus := func(use string, status book.Status) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <book-id>",
			Short: use + " one of your books",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				if err := requireLibrarian(a); err != nil {
					return err
				}

				updated, err := a.books.SetStatus(cmd.Context(), args[0], status)
				if err != nil {
					return err
				}
				fmt.Printf("Book %s is now %s.\n", updated.ID, updated.Status)
				return nil
			},
		}
	}

	del := &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Delete one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLibrarian(a); err != nil {
				return err
			}

			if err := a.books.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Book deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, add, update,
		setStatus("publish", book.StatusPublished),
		setStatus("unpublish", book.StatusUnpublished),
		del)
	return cmd
}

func newLibrarianOrdersCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Fulfill orders for your books",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders for your books",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapViewSellerOrders) {
				return fmt.Errorf("your role (%s) cannot view fulfillment orders", u.Role)
			}

			orders, err := a.orders.SellerOrders(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			printOrders(orders)
			return nil
		},
	}

	advance := &cobra.Command{
		Use:   "advance <order-id> <status>",
		Short: "Move an order one step: pending -> confirmed -> shipped -> delivered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapAdvanceOrder) {
				return fmt.Errorf("your role (%s) cannot update order status", u.Role)
			}

			updated, err := a.orders.Advance(cmd.Context(), args[0], order.Status(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", updated.ID, updated.Status)
			return nil
		},
	}

	cmd.AddCommand(list, advance)
	return cmd
}

func printBooksWithStatus(books []book.Book) {
	if len(books) == 0 {
		fmt.Println("No books.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n", b.ID, b.Title, b.Category, b.Price, b.Status)
	}
	w.Flush()
}
