// Package session is the single owner of the current-user state. It wraps
// the identity provider, mirrors identities into the marketplace user
// directory, and persists the credential so other packages only ever read
// an immutable snapshot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Nafiz001/booknest-client/internal/config"
	"github.com/Nafiz001/booknest-client/internal/identity"
	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/state"
	"github.com/Nafiz001/booknest-client/internal/user"

	"go.uber.org/zap"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Provider is the slice of the identity provider the adapter needs.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*identity.Credential, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Credential, error)
	SignInWithIDP(ctx context.Context, providerID, providerToken string) (*identity.Credential, error)
	UpdateProfile(ctx context.Context, idToken, displayName, photoURL string) error
	Refresh(ctx context.Context, refreshToken string) (*identity.Credential, error)
}

// Directory syncs identities with the marketplace API's user records.
type Directory interface {
	Mirror(ctx context.Context, req user.MirrorRequest) (*user.User, error)
	Me(ctx context.Context) (*user.User, error)
}

// Storage is the persisted key/value slice the adapter writes to.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Snapshot is the immutable view consumers get. Loading=true means the
// session state is still unknown, which is not the same as logged out.
type Snapshot struct {
	User    *user.User
	Loading bool
}

type Adapter struct {
	provider  Provider
	directory Directory
	store     Storage

	mu      sync.RWMutex
	cred    *identity.Credential
	current *user.User
	loading bool

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int

	stopRefresh chan struct{}
	stopOnce    sync.Once
}

func NewAdapter(provider Provider, store Storage) *Adapter {
	return &Adapter{
		provider:    provider,
		store:       store,
		loading:     true,
		subs:        make(map[int]chan Snapshot),
		stopRefresh: make(chan struct{}),
	}
}

// AttachDirectory wires the marketplace directory after the gateway client
// exists; the gateway's token source is this adapter, so the two are
// constructed in that order.
func (a *Adapter) AttachDirectory(d Directory) {
	a.directory = d
}

// Current returns the session snapshot at this instant.
func (a *Adapter) Current() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{User: a.current, Loading: a.loading}
}

// Subscribe returns a channel of snapshot updates plus a cancel func.
// Delivery is best effort: a subscriber that went away misses updates
// instead of blocking the adapter.
func (a *Adapter) Subscribe() (<-chan Snapshot, func()) {
	a.subMu.Lock()
	defer a.subMu.Unlock()

	id := a.nextSub
	a.nextSub++
	ch := make(chan Snapshot, 1)
	a.subs[id] = ch

	cancel := func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		if _, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (a *Adapter) notify() {
	snap := a.Current()
	a.subMu.Lock()
	defer a.subMu.Unlock()
	for _, ch := range a.subs {
		select {
		case ch <- snap:
		default:
			// Drain the stale snapshot so the latest one lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Restore loads the persisted session, renewing the credential when stale
// and re-syncing the role from the server. Resolves Loading either way.
func (a *Adapter) Restore(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	defer func() {
		a.mu.Lock()
		a.loading = false
		a.mu.Unlock()
		a.notify()
	}()

	raw, err := a.store.Get(ctx, config.TokenKey)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return nil
		}
		return err
	}

	var cred identity.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		log.Warn("discarding unreadable persisted credential", zap.Error(err))
		_ = a.store.Delete(ctx, config.TokenKey)
		return nil
	}

	if cred.Stale(time.Now()) {
		renewed, err := a.provider.Refresh(ctx, cred.RefreshToken)
		if err != nil {
			log.Warn("persisted credential could not be renewed", zap.Error(err))
			a.clearLocked(ctx)
			return nil
		}
		cred = *renewed
	}

	a.mu.Lock()
	a.cred = &cred
	a.mu.Unlock()
	a.persistCredential(ctx, &cred)

	// Role is server-authoritative; the cached profile is only a fallback
	// for offline starts.
	if u, err := a.directory.Me(ctx); err == nil {
		a.setUser(ctx, u)
	} else if cached := a.cachedUser(ctx); cached != nil {
		log.Warn("using cached profile snapshot, role may be stale", zap.Error(err))
		a.mu.Lock()
		a.current = cached
		a.mu.Unlock()
	}

	return nil
}

// Register creates a provider identity, sets its profile, then mirrors it
// into the marketplace directory to obtain a role. There is no rollback: a
// failed mirror leaves the provider identity in place and the local session
// unauthenticated; the next login re-attempts the mirror.
func (a *Adapter) Register(ctx context.Context, email, password, name, photoURL string) (*user.User, error) {
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	cred, err := a.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.provider.UpdateProfile(ctx, cred.IDToken, name, photoURL); err != nil {
		log.Warn("profile update failed after sign-up", zap.Error(err))
	}

	return a.establish(ctx, cred, user.MirrorRequest{
		SubjectID:   cred.SubjectID,
		DisplayName: name,
		Email:       email,
		PhotoURL:    photoURL,
	})
}

// Login authenticates an existing email/password identity.
func (a *Adapter) Login(ctx context.Context, email, password string) (*user.User, error) {
	cred, err := a.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return a.establish(ctx, cred, user.MirrorRequest{
		SubjectID: cred.SubjectID,
		Email:     email,
	})
}

// LoginWithProvider exchanges a federated ID token (obtained out of band)
// for a session.
func (a *Adapter) LoginWithProvider(ctx context.Context, providerID, providerToken string) (*user.User, error) {
	cred, err := a.provider.SignInWithIDP(ctx, providerID, providerToken)
	if err != nil {
		return nil, err
	}

	return a.establish(ctx, cred, user.MirrorRequest{
		SubjectID: cred.SubjectID,
	})
}

// establish commits a fresh credential, syncs the directory record, and
// publishes the new snapshot. Mirror failure rolls the local session back
// (the provider identity itself is left untouched).
func (a *Adapter) establish(ctx context.Context, cred *identity.Credential, req user.MirrorRequest) (*user.User, error) {
	a.mu.Lock()
	a.cred = cred
	a.loading = false
	a.mu.Unlock()
	a.persistCredential(ctx, cred)

	u, err := a.directory.Mirror(ctx, req)
	if err != nil {
		a.clearLocked(ctx)
		a.notify()
		return nil, err
	}

	a.setUser(ctx, u)
	return u, nil
}

// Logout clears the persisted credential and profile snapshot and drops
// the in-memory session.
func (a *Adapter) Logout(ctx context.Context) error {
	a.clearLocked(ctx)
	a.notify()
	return nil
}

// Token implements the gateway's TokenSource: it returns the current
// bearer token, renewing it first when stale. An empty token with nil
// error means "no session" and the request goes out unauthenticated.
func (a *Adapter) Token(ctx context.Context) (string, error) {
	a.mu.RLock()
	cred := a.cred
	a.mu.RUnlock()

	if cred == nil {
		return "", nil
	}
	if !cred.Stale(time.Now()) {
		return cred.IDToken, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// Another caller may have renewed while we waited for the lock.
	if a.cred == nil {
		return "", nil
	}
	if !a.cred.Stale(time.Now()) {
		return a.cred.IDToken, nil
	}

	renewed, err := a.provider.Refresh(ctx, a.cred.RefreshToken)
	if err != nil {
		return "", err
	}
	a.cred = renewed
	a.persistCredential(ctx, renewed)
	return renewed.IDToken, nil
}

// StartRefresher renews the credential in the background before its
// lifetime elapses, so the gateway always has a non-expired token.
func (a *Adapter) StartRefresher() {
	go func() {
		for {
			a.mu.RLock()
			cred := a.cred
			a.mu.RUnlock()

			wait := time.Minute
			if cred != nil && !cred.ExpiresAt.IsZero() {
				if until := time.Until(cred.ExpiresAt) - 5*time.Minute; until > wait {
					wait = until
				}
			}

			select {
			case <-a.stopRefresh:
				return
			case <-time.After(wait):
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := a.Token(ctx); err != nil {
				logger.L().Warn("background token refresh failed", zap.Error(err))
			}
			cancel()
		}
	}()
}

// Close stops the background refresher.
func (a *Adapter) Close() {
	a.stopOnce.Do(func() { close(a.stopRefresh) })
}

func (a *Adapter) setUser(ctx context.Context, u *user.User) {
	a.mu.Lock()
	a.current = u
	a.loading = false
	a.mu.Unlock()

	if data, err := json.Marshal(u); err == nil {
		if err := a.store.Put(ctx, config.UserKey, string(data)); err != nil {
			logger.FromCtx(ctx).Warn("failed to persist profile snapshot", zap.Error(err))
		}
	}
	a.notify()
}

func (a *Adapter) cachedUser(ctx context.Context) *user.User {
	raw, err := a.store.Get(ctx, config.UserKey)
	if err != nil {
		return nil
	}
	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

func (a *Adapter) persistCredential(ctx context.Context, cred *identity.Credential) {
	data, err := json.Marshal(cred)
	if err != nil {
		return
	}
	if err := a.store.Put(ctx, config.TokenKey, string(data)); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist credential", zap.Error(err))
	}
}

func (a *Adapter) clearLocked(ctx context.Context) {
	a.mu.Lock()
	a.cred = nil
	a.current = nil
	a.loading = false
	a.mu.Unlock()

	_ = a.store.Delete(ctx, config.TokenKey)
	_ = a.store.Delete(ctx, config.UserKey)
}
