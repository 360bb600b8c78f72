package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Nafiz001/booknest-client/internal/api"
	"github.com/Nafiz001/booknest-client/internal/book"
	"github.com/Nafiz001/booknest-client/internal/config"
	"github.com/Nafiz001/booknest-client/internal/identity"
	"github.com/Nafiz001/booknest-client/internal/invoice"
	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/order"
	"github.com/Nafiz001/booknest-client/internal/payment"
	"github.com/Nafiz001/booknest-client/internal/review"
	"github.com/Nafiz001/booknest-client/internal/session"
	"github.com/Nafiz001/booknest-client/internal/state"
	"github.com/Nafiz001/booknest-client/internal/upload"
	"github.com/Nafiz001/booknest-client/internal/user"
	"github.com/Nafiz001/booknest-client/internal/wishlist"

	"github.com/spf13/cobra"
)

// app holds the wired services; built once in PersistentPreRunE so flags
// and env are resolved before anything talks to the network.
type app struct {
	cfg     *config.Config
	store   *state.Store
	session *session.Adapter
	client  *api.Client

	users    user.Service
	userRepo user.Repository
	books    book.Service
	orders   order.Service
	payments payment.Service
	reviews  review.Service
	wishlist wishlist.Service
	invoices invoice.Service
	uploader *upload.Uploader
}

// authCommands run while no session can exist yet; the re-login hook must
// not fire for their own 401s.
var authCommands = map[string]bool{
	"login":    true,
	"register": true,
	"logout":   true,
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)

	store, err := state.Open(cfg.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	provider := identity.NewProvider(cfg.IdentityURL, cfg.IdentityAPIKey)
	adapter := session.NewAdapter(provider, store)

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, adapter)
	userRepo := user.NewRepository(client)
	adapter.AttachDirectory(userRepo)

	if !authCommands[cmd.Name()] {
		var once sync.Once
		client.OnUnauthorized(func() {
			once.Do(func() {
				fmt.Fprintln(os.Stderr, "Your session has expired. Please run `booknest auth login` again.")
			})
		})
	}

	orderRepo := order.NewRepository(client)

	a := &app{
		cfg:      cfg,
		store:    store,
		session:  adapter,
		client:   client,
		userRepo: userRepo,
		users:    user.NewService(userRepo),
		books:    book.NewService(book.NewRepository(client)),
		orders:   order.NewService(orderRepo),
		payments: payment.NewService(client, orderRepo),
		reviews:  review.NewService(client),
		wishlist: wishlist.NewService(client),
		invoices: invoice.NewService(client),
		uploader: upload.NewUploader(cfg.ImageHostURL, cfg.ImageHostKey),
	}

	if err := adapter.Restore(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	adapter.StartRefresher()

	return a, nil
}

func (a *app) close() {
	a.session.Close()
	a.store.Close()
	logger.Sync()
}

// currentUser returns the signed-in user or an error telling the caller to
// log in.
func (a *app) currentUser() (*user.User, error) {
	snap := a.session.Current()
	if snap.User == nil {
		return nil, fmt.Errorf("not logged in; run `booknest auth login`")
	}
	return snap.User, nil
}

func main() {
	var a *app

	root := &cobra.Command{
		Use:           "booknest",
		Short:         "BookNest book delivery marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			var err error
			a, err = newApp(cmd)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}

	// The pointer is filled in PersistentPreRunE, so subcommands read it
	// through a closure at run time, never at registration time.
	get := func() *app { return a }

	root.AddCommand(
		newAuthCmd(get),
		newBooksCmd(get),
		newOrdersCmd(get),
		newPayCmd(get),
		newWishlistCmd(get),
		newReviewsCmd(get),
		newProfileCmd(get),
		newInvoicesCmd(get),
		newLibrarianCmd(get),
		newAdminCmd(get),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", api.Message(err))
		os.Exit(1)
	}
}
