package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"buckler/client"
	"buckler/config"
	"buckler/models"
	"buckler/storage"
	"buckler/utils"

	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when an operation requires a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// DefaultSessionService implements Service backed by the REST client and a
// durable store for token persistence.
type DefaultSessionService struct {
	API    *client.Client
	Store  storage.Store
	Logger *zap.Logger

	mu       sync.RWMutex
	sess     models.Session
	state    State
	onChange []func(models.Session)

	initOnce sync.Once

	// refreshFlight is non-nil while a refresh is in flight; late callers
	// wait on it instead of starting a second refresh.
	refreshFlight *flight
}

type flight struct {
	done chan struct{}
	err  error
}

// New wires the service and registers it as the client's token source.
func New(api *client.Client, store storage.Store) *DefaultSessionService {
	s := &DefaultSessionService{
		API:    api,
		Store:  store,
		Logger: utils.GetLogger(),
		state:  StateUninitialized,
	}
	api.SetTokenSource(s)
	return s
}

func (s *DefaultSessionService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *DefaultSessionService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

func (s *DefaultSessionService) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Tokens.AccessToken
}

func (s *DefaultSessionService) CurrentUser() (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.sess.IsAuthenticated() {
		return models.User{}, ErrNotAuthenticated
	}
	return *s.sess.User, nil
}

func (s *DefaultSessionService) Subscribe(fn func(models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Initialize reads any persisted token pair and resolves the current user.
// Failures log out silently rather than surfacing, so the return is always
// nil; a fresh visitor simply lands unauthenticated.
func (s *DefaultSessionService) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.setState(StateInitializing)

		var pair models.TokenPair
		err := s.Store.Get(storage.KeyTokens, &pair)
		if errors.Is(err, storage.ErrNotFound) || pair.AccessToken == "" {
			s.setState(StateUnauthenticated)
			return
		}
		if err != nil {
			s.Logger.Warn("failed to read persisted tokens", zap.Error(err))
			s.setState(StateUnauthenticated)
			return
		}

		s.setTokens(pair)
		user, err := s.API.Me(ctx)
		if err != nil {
			s.Logger.Debug("persisted session no longer valid", zap.Error(err))
			s.clearLocal()
			return
		}
		s.setUser(user)
		s.setState(StateReady)
	})
	return nil
}

func (s *DefaultSessionService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	pair, err := s.API.Token(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("login failed: %w", err)
	}
	return s.adopt(ctx, pair)
}

func (s *DefaultSessionService) Register(ctx context.Context, reg models.Registration) (models.Session, error) {
	pair, err := s.API.Register(ctx, reg)
	if err != nil {
		return models.Session{}, fmt.Errorf("registration failed: %w", err)
	}
	return s.adopt(ctx, pair)
}

// adopt installs a fresh token pair, persists it, and resolves the user.
func (s *DefaultSessionService) adopt(ctx context.Context, pair models.TokenPair) (models.Session, error) {
	s.setTokens(pair)
	if err := s.Store.Set(storage.KeyTokens, pair); err != nil {
		s.Logger.Warn("failed to persist tokens", zap.Error(err))
	}

	user, err := s.API.Me(ctx)
	if err != nil {
		s.clearLocal()
		return models.Session{}, fmt.Errorf("failed to resolve user: %w", err)
	}
	s.setUser(user)
	s.setState(StateReady)
	s.notify()
	return s.Session(), nil
}

// Logout is local-first: the server call may fail, local state goes anyway.
func (s *DefaultSessionService) Logout(ctx context.Context) error {
	if err := s.API.Logout(ctx); err != nil {
		s.Logger.Warn("server-side logout failed, clearing local session anyway", zap.Error(err))
	}
	s.Clear()
	return nil
}

// Refresh rotates the token pair, sharing one in-flight attempt between
// concurrent callers. Two 401s racing must produce one refresh call, not two.
func (s *DefaultSessionService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if f := s.refreshFlight; f != nil {
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	s.refreshFlight = f
	refreshToken := s.sess.Tokens.RefreshToken
	s.mu.Unlock()

	f.err = s.doRefresh(ctx, refreshToken)

	s.mu.Lock()
	s.refreshFlight = nil
	s.mu.Unlock()
	close(f.done)
	return f.err
}

func (s *DefaultSessionService) doRefresh(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrNotAuthenticated
	}
	pair, err := s.API.RefreshToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	s.setTokens(pair)
	if err := s.Store.Set(storage.KeyTokens, pair); err != nil {
		s.Logger.Warn("failed to persist rotated tokens", zap.Error(err))
	}
	s.notify()
	return nil
}

// EnsureFresh refreshes ahead of expiry so interactive flows skip the 401
// round-trip entirely.
func (s *DefaultSessionService) EnsureFresh(ctx context.Context) error {
	token := s.AccessToken()
	if token == "" {
		return ErrNotAuthenticated
	}
	if !utils.ExpiresWithin(token, config.RefreshSkew()) {
		return nil
	}
	return s.Refresh(ctx)
}

// Clear drops local session state and removes persisted tokens.
func (s *DefaultSessionService) Clear() {
	s.clearLocal()
	s.notify()
}

func (s *DefaultSessionService) clearLocal() {
	s.mu.Lock()
	s.sess = models.Session{}
	s.state = StateUnauthenticated
	s.mu.Unlock()
	if err := s.Store.Delete(storage.KeyTokens); err != nil {
		s.Logger.Warn("failed to remove persisted tokens", zap.Error(err))
	}
}

func (s *DefaultSessionService) setTokens(pair models.TokenPair) {
	s.mu.Lock()
	s.sess.Tokens = pair
	s.mu.Unlock()
}

func (s *DefaultSessionService) setUser(user models.User) {
	s.mu.Lock()
	s.sess.User = &user
	s.mu.Unlock()
}

func (s *DefaultSessionService) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *DefaultSessionService) notify() {
	s.mu.RLock()
	subs := make([]func(models.Session), len(s.onChange))
	copy(subs, s.onChange)
	sess := s.sess
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(sess)
	}
}
