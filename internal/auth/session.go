package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/api"
	"github.com/chargehive/chargehive-client/internal/models"
	"github.com/chargehive/chargehive-client/internal/store"
)

// Backend is the slice of the API client that the session holder needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Register(ctx context.Context, req api.RegisterRequest) (*models.User, string, error)
}

// Session holds the current user identity and bearer token. It starts
// empty, is hydrated once from the store, and is mutated only through
// Login, Register, Logout and Invalidate.
//
// Writes go to the store before memory, so a reader never observes a
// token in memory that is absent from storage.
type Session struct {
	mu      sync.RWMutex
	user    *models.User
	token   string
	store   store.Store
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
}

func NewSession(st store.Store, logger *zap.Logger) *Session {
	return &Session{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Bind attaches the backend the session authenticates against. It is
// separate from the constructor because the API client needs the
// session as its token source.
func (s *Session) Bind(b Backend) {
	s.backend = b
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Hydrate restores the session from the store. Read errors leave the
// session logged out; they are logged, never returned. A stored JWT
// that is already past its expiry is discarded instead of waiting for
// the first 401.
func (s *Session) Hydrate() {
	token, userData, err := s.store.Credentials()
	if err != nil {
		s.logger.Warn("failed to read stored credentials, starting logged out", zap.Error(err))
		return
	}
	if token == "" || len(userData) == 0 {
		return
	}

	if expired := tokenExpired(token, s.now()); expired {
		s.logger.Info("stored token expired, clearing credentials")
		if err := s.store.ClearCredentials(); err != nil {
			s.logger.Warn("failed to clear expired credentials", zap.Error(err))
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		s.logger.Warn("stored user data unreadable, starting logged out", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	s.logger.Debug("session hydrated", zap.String("user", user.Email))
}

// Login authenticates against the backend and persists the result.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.persist(user, token); err != nil {
		return nil, err
	}
	s.logger.Info("logged in", zap.String("user", user.Email))
	return user, nil
}

// Register creates an account and persists the resulting session.
func (s *Session) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	user, token, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.persist(user, token); err != nil {
		return nil, err
	}
	s.logger.Info("registered", zap.String("user", user.Email))
	return user, nil
}

// Logout tears the session down. Store errors are logged and swallowed;
// the in-memory session is cleared regardless.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.store.ClearCredentials(); err != nil {
		s.logger.Warn("failed to clear stored credentials on logout", zap.Error(err))
	}
	s.logger.Info("logged out")
}

// Invalidate is the 401 hook: the backend rejected our token, so local
// credentials are cleared. No automatic re-login happens.
func (s *Session) Invalidate() {
	s.logger.Warn("backend rejected credentials, clearing session")
	s.Logout()
}

func (s *Session) persist(user *models.User, token string) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializing user: %w", err)
	}
	// Storage first, then memory.
	if err := s.store.SaveCredentials(token, userData); err != nil {
		return fmt.Errorf("persisting credentials: %w", err)
	}

	s.mu.Lock()
	s.token = token
	u := *user
	s.user = &u
	s.mu.Unlock()
	return nil
}

// tokenExpired inspects a JWT's exp claim without verifying the
// signature (the backend remains the authority). Opaque non-JWT tokens
// and JWTs without an expiry pass through untouched.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
