package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nafiz001/booknest-client/internal/book"

	"github.com/spf13/cobra"
)

func newBooksCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
	}

	var (
		category string
		search   string
		sortBy   string
		desc     bool
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List published books",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()

			q := book.ListQuery{
				Category:   category,
				Search:     search,
				SortBy:     book.SortField(sortBy),
				Descending: desc,
			}
			books, err := a.books.Browse(cmd.Context(), q)
			if err != nil {
				return err
			}

			if len(books) == 0 {
				fmt.Println("No books found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tPRICE\tRATING")
			for _, b := range books {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\t%.1f (%d)\n",
					b.ID, b.Title, b.Author, b.Category, b.Price, b.Rating, b.ReviewCount)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&category, "category", "", "filter by category")
	list.Flags().StringVar(&search, "search", "", "search title and author")
	list.Flags().StringVar(&sortBy, "sort", "", "sort by title, price, date, or rating")
	list.Flags().BoolVar(&desc, "desc", false, "sort descending")

	show := &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show one book with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()

			b, err := a.books.Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s by %s\n", b.Title, b.Author)
			fmt.Printf("  %s | %s | %d pages | ISBN %s\n", b.Category, b.Language, b.Pages, b.ISBN)
			fmt.Printf("  $%.2f | rating %.1f (%d reviews) | %s\n", b.Price, b.Rating, b.ReviewCount, b.Status)
			fmt.Printf("\n%s\n", b.Description)

			reviews, err := a.reviews.List(cmd.Context(), b.ID)
			if err != nil {
				// The book itself rendered; a failed review fetch does not
				// clobber that.
				fmt.Fprintln(os.Stderr, "Could not load reviews:", err)
				return nil
			}
			if len(reviews) > 0 {
				fmt.Println("\nReviews:")
				for _, r := range reviews {
					fmt.Printf("  [%d/5] %s — %s\n", r.Rating, r.UserName, r.Comment)
				}
			}
			return nil
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List the catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range book.Categories {
				fmt.Println(c)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, categories)
	return cmd
}
