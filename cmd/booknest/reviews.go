package main

import (
	"fmt"

	"github.com/Nafiz001/booknest-client/internal/authz"

	"github.com/spf13/cobra"
)

func newReviewsCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write book reviews",
	}

	list := &cobra.Command{
		Use:   "list <book-id>",
		Short: "List reviews for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()

			reviews, err := a.reviews.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				fmt.Println("No reviews yet.")
				return nil
			}
			for _, r := range reviews {
				fmt.Printf("[%d/5] %s — %s\n", r.Rating, r.UserName, r.Comment)
			}
			return nil
		},
	}

	var (
		rating  int
		comment string
	)

	submit := &cobra.Command{
		Use:   "submit <book-id>",
		Short: "Review a book you have purchased",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			if !authz.Can(u, authz.CapReviewBook) {
				return fmt.Errorf("your role (%s) cannot review books", u.Role)
			}

			bookID := args[0]
			ok, err := a.reviews.CanReview(cmd.Context(), bookID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("you can only review books from your delivered orders, once each")
			}

			reviews, err := a.reviews.Submit(cmd.Context(), bookID, rating, comment)
			if err != nil {
				return err
			}

			fmt.Printf("Review submitted. The book now has %d review(s).\n", len(reviews))
			return nil
		},
	}
	submit.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	submit.Flags().StringVar(&comment, "comment", "", "review text (10-500 characters)")
	submit.MarkFlagRequired("rating")
	submit.MarkFlagRequired("comment")

	cmd.AddCommand(list, submit)
	return cmd
}
