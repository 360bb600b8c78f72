package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Nafiz001/booknest-client/internal/upload"
	"github.com/Nafiz001/booknest-client/internal/validate"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func newAuthCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, log in, and manage the session",
	}

	register := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()

			name, err := readLine("Display name: ")
			if err != nil {
				return err
			}
			if !validate.Length(name, validate.NameMinLength, validate.NameMaxLength) {
				return fmt.Errorf("name must be %d-%d characters",
					validate.NameMinLength, validate.NameMaxLength)
			}

			email, err := readLine("Email: ")
			if err != nil {
				return err
			}
			if !validate.Email(email) {
				return fmt.Errorf("invalid email address")
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			if problems := validate.Password(password); len(problems) > 0 {
				return fmt.Errorf("weak password: %s", strings.Join(problems, "; "))
			}

			photoURL := upload.PlaceholderAvatar(name)
			if path, _ := cmd.Flags().GetString("photo"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				if url, err := a.uploader.Upload(cmd.Context(), f.Name(), f); err == nil {
					photoURL = url
				} else {
					fmt.Fprintln(os.Stderr, "Photo upload failed, using a generated avatar.")
				}
			}

			u, err := a.session.Register(cmd.Context(), email, password, name, photoURL)
			if err != nil {
				return err
			}

			fmt.Printf("Welcome, %s! You are registered and logged in as %s.\n", u.DisplayName, u.Role)
			return nil
		},
	}
	register.Flags().String("photo", "", "path to a profile photo to upload")

	login := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password, or a federated ID token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()

			if idToken, _ := cmd.Flags().GetString("google-token"); idToken != "" {
				u, err := a.session.LoginWithProvider(cmd.Context(), "google.com", idToken)
				if err != nil {
					return err
				}
				fmt.Printf("Logged in as %s (%s).\n", u.DisplayName, u.Role)
				return nil
			}

			email, err := readLine("Email: ")
			if err != nil {
				return err
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			u, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s).\n", u.DisplayName, u.Role)
			return nil
		},
	}
	login.Flags().String("google-token", "", "federated ID token obtained from Google sign-in")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := get().session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := get().currentUser()
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> role=%s\n", u.DisplayName, u.Email, u.Role)
			return nil
		},
	}

	cmd.AddCommand(register, login, logout, whoami)
	return cmd
}
