package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lumina-store/libs"
	"lumina-store/repositories"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoCheckout      = errors.New("no checkout in progress")
)

type SessionOptions struct {
	SignUpDelay     time.Duration
	ProcessingDelay time.Duration
	Notifier        OrderNotifier
	Logger          *slog.Logger
}

// Session bundles the single-owner state of one storefront client.
type Session struct {
	ID       string
	Cart     *CartManager
	Identity *IdentityHolder

	mu       sync.Mutex
	checkout *CheckoutOrchestrator
	lastSeen time.Time
	opts     SessionOptions
}

// BeginCheckout discards any previous checkout and starts a fresh one at Shipping.
func (s *Session) BeginCheckout() (*CheckoutOrchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout != nil && s.checkout.Submitting() {
		return nil, ErrSubmitting
	}
	if s.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	s.checkout = NewCheckoutOrchestrator(s.Cart, s.Identity, CheckoutOptions{
		ProcessingDelay: s.opts.ProcessingDelay,
		Notifier:        s.opts.Notifier,
		Logger:          s.opts.Logger.With("session_id", s.ID),
	})
	return s.checkout, nil
}

func (s *Session) Checkout() (*CheckoutOrchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return nil, ErrNoCheckout
	}
	return s.checkout, nil
}

// AbandonCheckout drops the current checkout, which is the only way out of Blocked.
func (s *Session) AbandonCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return ErrNoCheckout
	}
	if s.checkout.Submitting() {
		return ErrSubmitting
	}
	s.checkout = nil
	return nil
}

// PlaceOrder submits the current checkout and discards it once the order succeeded.
func (s *Session) PlaceOrder(ctx context.Context) (PlaceOrderResult, error) {
	o, err := s.Checkout()
	if err != nil {
		return PlaceOrderResult{}, err
	}
	result, err := o.PlaceOrder(ctx)
	if err != nil || result.Outcome != OutcomeSucceeded {
		return result, err
	}

	s.mu.Lock()
	if s.checkout == o {
		s.checkout = nil
	}
	s.mu.Unlock()
	return result, nil
}

type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    repositories.KeyValueStore
	opts     SessionOptions
	now      func() time.Time
}

func NewSessionService(store repositories.KeyValueStore, opts SessionOptions) *SessionService {
	if opts.Logger == nil {
		opts.Logger = libs.NopLogger()
	}
	return &SessionService{
		sessions: make(map[string]*Session),
		store:    store,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *SessionService) Create() *Session {
	sess := s.build(uuid.NewString())
	s.mu.Lock()
	s.insert(sess)
	s.mu.Unlock()
	s.opts.Logger.Info("session created", "session_id", sess.ID)
	return sess
}

// Get returns the live session or rebuilds it from persisted state, restoring identity and cart
// before returning.
func (s *SessionService) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	if sess, ok := s.lookup(id); ok {
		return sess, nil
	}

	// Restoring reads the store, so it runs without holding the registry lock.
	built := s.build(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	s.insert(built)
	return built, nil
}

func (s *SessionService) lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.mu.Lock()
		sess.lastSeen = s.now()
		sess.mu.Unlock()
	}
	return sess, ok
}

func (s *SessionService) build(id string) *Session {
	var kv repositories.KeyValueStore
	if s.store != nil {
		kv = repositories.NewNamespacedKVStore(s.store, "session:"+id)
	}
	log := s.opts.Logger.With("session_id", id)
	sess := &Session{
		ID:       id,
		Cart:     NewCartManager(kv, log),
		Identity: NewIdentityHolder(kv, s.opts.SignUpDelay, log),
		lastSeen: s.now(),
		opts:     s.opts,
	}
	return sess
}

// insert must be called with mu held.
func (s *SessionService) insert(sess *Session) {
	s.sessions[sess.ID] = sess
	libs.ActiveSessions.Set(float64(len(s.sessions)))
}

// Evict drops idle in-memory sessions without a running checkout submission. Their
// persisted identity and cart remain and are restored on the next Get.
func (s *SessionService) Evict(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff) && (sess.checkout == nil || !sess.checkout.Submitting())
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			evicted++
		}
	}
	libs.ActiveSessions.Set(float64(len(s.sessions)))
	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *SessionService) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Evict(idle); n > 0 {
				s.opts.Logger.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
