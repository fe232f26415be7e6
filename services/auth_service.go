package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lumina-store/libs"
	"lumina-store/models"
	"lumina-store/repositories"
)

const IdentityStorageKey = "lumina_user"

var ErrSignUpInFlight = errors.New("sign-up already in progress")

// IdentityHolder keeps the mock identity of one storefront session. No credential is checked.
type IdentityHolder struct {
	mu          sync.Mutex
	user        *models.Identity
	signingUp   bool
	signUpDelay time.Duration
	store       repositories.KeyValueStore
	log         *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewIdentityHolder restores a persisted identity synchronously. store may be nil.
func NewIdentityHolder(store repositories.KeyValueStore, signUpDelay time.Duration, log *slog.Logger) *IdentityHolder {
	if log == nil {
		log = libs.NopLogger()
	}
	h := &IdentityHolder{
		signUpDelay: signUpDelay,
		store:       store,
		log:         log,
		sleep:       sleepCtx,
	}
	h.restore()
	return h
}

func (h *IdentityHolder) restore() {
	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, ok, err := h.store.Get(ctx, IdentityStorageKey)
	if err != nil {
		h.log.Warn("identity restore failed", "error", err)
		return
	}
	if !ok {
		return
	}
	var user models.Identity
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		h.log.Warn("discarding unreadable identity record", "error", err)
		return
	}
	h.user = &user
}

func (h *IdentityHolder) SignIn(email, name string) models.Identity {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.set(email, name)
}

// SignUp has the same effect as SignIn after the configured latency. Only one sign-up may be
// in flight; a cancelled ctx abandons it without touching the identity.
func (h *IdentityHolder) SignUp(ctx context.Context, email, name string) (models.Identity, error) {
	h.mu.Lock()
	if h.signingUp {
		h.mu.Unlock()
		return models.Identity{}, ErrSignUpInFlight
	}
	h.signingUp = true
	h.mu.Unlock()

	err := h.sleep(ctx, h.signUpDelay)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.signingUp = false
	if err != nil {
		return models.Identity{}, err
	}
	return h.set(email, name), nil
}

func (h *IdentityHolder) SignOut() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.user = nil
	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := h.store.Remove(ctx, IdentityStorageKey); err != nil {
		h.log.Warn("identity remove failed", "error", err)
	}
}

// Current returns the identity and whether the session is authenticated.
func (h *IdentityHolder) Current() (models.Identity, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.user == nil {
		return models.Identity{}, false
	}
	return *h.user, true
}

func (h *IdentityHolder) View() models.IdentityView {
	user, ok := h.Current()
	if !ok {
		return models.IdentityView{}
	}
	return models.IdentityView{Authenticated: true, User: &user}
}

// set must be called with mu held.
func (h *IdentityHolder) set(email, name string) models.Identity {
	user := models.Identity{Email: email, Name: name}
	h.user = &user

	if h.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		raw, _ := json.Marshal(user)
		if err := h.store.Set(ctx, IdentityStorageKey, string(raw)); err != nil {
			h.log.Warn("identity persist failed", "error", err)
		}
	}
	return user
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
