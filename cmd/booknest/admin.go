package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nafiz001/booknest-client/internal/authz"
	"github.com/Nafiz001/booknest-client/internal/book"
	"github.com/Nafiz001/booknest-client/internal/user"

	"github.com/spf13/cobra"
)

func newAdminCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "User and catalog administration",
	}

	requireAdmin := func(a *app, c authz.Capability) (*user.User, error) {
		u, err := a.currentUser()
		if err != nil {
			return nil, err
		}
		if !authz.Can(u, c) {
			return nil, fmt.Errorf("your role (%s) cannot do that", u.Role)
		}
		return u, nil
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if _, err := requireAdmin(a, authz.CapManageUsers); err != nil {
				return err
			}

			list, err := a.users.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
			for _, u := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.DisplayName, u.Email, u.Role)
			}
			return w.Flush()
		},
	}

	role := &cobra.Command{
		Use:   "role <user-id> <user|librarian|admin>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if _, err := requireAdmin(a, authz.CapChangeRole); err != nil {
				return err
			}

			list, err := a.users.ChangeRole(cmd.Context(), args[0], user.Role(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("Role updated; %d users total.\n", len(list))
			return nil
		},
	}

	books := &cobra.Command{
		Use:   "books",
		Short: "List every book in every status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if _, err := requireAdmin(a, authz.CapManageAllBooks); err != nil {
				return err
			}

			all, err := a.books.AllBooks(cmd.Context())
			if err != nil {
				return err
			}
			printBooksWithStatus(all)
			return nil
		},
	}

	bookStatus := &cobra.Command{
		Use:   "book-status <book-id> <draft|published|unpublished>",
		Short: "Change any book's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if _, err := requireAdmin(a, authz.CapManageAllBooks); err != nil {
				return err
			}

			updated, err := a.books.SetStatus(cmd.Context(), args[0], book.Status(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Book %s is now %s.\n", updated.ID, updated.Status)
			return nil
		},
	}

	bookDelete := &cobra.Command{
		Use:   "book-delete <book-id>",
		Short: "Delete any book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if _, err := requireAdmin(a, authz.CapManageAllBooks); err != nil {
				return err
			}

			if err := a.books.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Book deleted.")
			return nil
		},
	}

	cmd.AddCommand(users, role, books, bookStatus, bookDelete)
	return cmd
}
