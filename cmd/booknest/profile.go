package main

import (
	"fmt"
	"os"

	"github.com/Nafiz001/booknest-client/internal/user"

	"github.com/spf13/cobra"
)

func newProfileCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and update your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := get().currentUser()
			if err != nil {
				return err
			}
			fmt.Printf("Name:  %s\nEmail: %s\nRole:  %s\nPhoto: %s\n",
				u.DisplayName, u.Email, u.Role, u.PhotoURL)
			return nil
		},
	}

	var (
		name  string
		photo string
	)

	update := &cobra.Command{
		Use:   "update",
		Short: "Update your display name or photo",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.currentUser()
			if err != nil {
				return err
			}

			req := user.ProfileUpdate{}
			if name != "" {
				req.DisplayName = &name
			}
			if photo != "" {
				f, err := os.Open(photo)
				if err != nil {
					return err
				}
				defer f.Close()

				url, err := a.uploader.Upload(cmd.Context(), f.Name(), f)
				if err != nil {
					fmt.Fprintln(os.Stderr, "Photo upload failed, keeping the current photo.")
				} else {
					req.PhotoURL = &url
				}
			}
			if req.DisplayName == nil && req.PhotoURL == nil {
				return fmt.Errorf("nothing to update; pass --name or --photo")
			}

			updated, err := a.users.UpdateProfile(cmd.Context(), u.ID, req)
			if err != nil {
				return err
			}

			fmt.Printf("Profile updated: %s\n", updated.DisplayName)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "new display name")
	update.Flags().StringVar(&photo, "photo", "", "path to a new profile photo")

	cmd.AddCommand(show, update)
	return cmd
}
