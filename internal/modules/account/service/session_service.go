package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"sparks/internal/modules/account/domain"
	accountout "sparks/internal/modules/account/port/out"
	apperrors "sparks/internal/platform/errors"
	"sparks/internal/platform/logging"
)

// SessionService owns the signed-in identity. Only this service writes the
// profile or the credential; everything else patches through UpdateUser.
type SessionService struct {
	gateway accountout.AuthGateway
	store   accountout.CredentialStore
	tokens  accountout.TokenSink
	logger  *zap.Logger

	mu        sync.RWMutex
	state     domain.State
	profile   *domain.Profile
	listeners []func(domain.Session)
}

func NewSessionService(gateway accountout.AuthGateway, store accountout.CredentialStore, tokens accountout.TokenSink, logger *zap.Logger) *SessionService {
	return &SessionService{
		gateway: gateway,
		store:   store,
		tokens:  tokens,
		logger:  logging.OrNop(logger).Named("account"),
		state:   domain.StateLoading,
	}
}

// Watch registers fn to run after every state transition. Listeners run
// outside the lock and may call back into the service.
func (s *SessionService) Watch(fn func(domain.Session)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Restore loads the persisted session. Missing or unreadable data leaves the
// store unauthenticated.
func (s *SessionService) Restore(ctx context.Context) (domain.Session, error) {
	creds, err := s.store.Load(ctx)
	if err == nil {
		err = validateCredentials(creds)
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoStoredSession) {
			s.logger.Warn("discarding stored session", zap.Error(err))
			if clearErr := s.store.Clear(ctx); clearErr != nil {
				s.logger.Warn("clear stored session", zap.Error(clearErr))
			}
		}
		return s.transition(domain.StateUnauthenticated, nil), nil
	}

	s.tokens.SetToken(creds.Token)
	profile := creds.Profile.Normalize()
	s.logger.Info("session restored", zap.String("userID", profile.ID))
	return s.transition(domain.StateAuthenticated, &profile), nil
}

func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if err := domain.ValidateLogin(email, password); err != nil {
		return s.failAuth(), err
	}
	creds, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", zap.String("email", email), zap.Error(err))
		return s.failAuth(), err
	}
	return s.establish(ctx, creds)
}

func (s *SessionService) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return s.failAuth(), err
	}
	creds, err := s.gateway.Register(ctx, reg)
	if err != nil {
		s.logger.Info("registration failed", zap.String("email", reg.Email), zap.Error(err))
		return s.failAuth(), err
	}
	return s.establish(ctx, creds)
}

// Logout asks the backend to invalidate the credential, then tears the local
// session down whatever the backend said.
func (s *SessionService) Logout(ctx context.Context) error {
	if s.Current().State == domain.StateAuthenticated {
		if err := s.gateway.Logout(ctx); err != nil {
			s.logger.Warn("remote logout failed", zap.Error(err))
		}
	}
	return s.Expire(ctx)
}

// Expire drops the session locally. Used on logout and when the backend
// rejects the credential.
func (s *SessionService) Expire(ctx context.Context) error {
	s.tokens.ClearToken()
	err := s.store.Clear(ctx)
	if err != nil {
		s.logger.Error("clear stored session", zap.Error(err))
		err = fmt.Errorf("clear stored session: %w", err)
	}
	s.transition(domain.StateUnauthenticated, nil)
	return err
}

// UpdateUser merges patch into the profile. The snapshot is persisted before
// the in-memory profile changes, so a failed write leaves both untouched.
func (s *SessionService) UpdateUser(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateAuthenticated || s.profile == nil {
		return domain.Profile{}, apperrors.ErrNotAuthenticated
	}
	next := patch.Apply(*s.profile)
	if err := s.store.SaveProfile(ctx, next); err != nil {
		return s.profile.Clone(), fmt.Errorf("persist profile: %w", err)
	}
	s.profile = &next
	return next.Clone(), nil
}

// RefreshProfile replaces the local profile with the backend's copy.
func (s *SessionService) RefreshProfile(ctx context.Context) (domain.Profile, error) {
	if s.Current().State != domain.StateAuthenticated {
		return domain.Profile{}, apperrors.ErrNotAuthenticated
	}
	remote, err := s.gateway.GetProfile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	return s.replaceProfile(ctx, remote)
}

// UpdateProfile sends patch to the backend. The profile the backend returns
// wins; when it returns none the patch is applied locally.
func (s *SessionService) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	if patch.Empty() {
		return domain.Profile{}, fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
	}
	current := s.Current()
	if current.State != domain.StateAuthenticated || current.Profile == nil {
		return domain.Profile{}, apperrors.ErrNotAuthenticated
	}
	remote, err := s.gateway.UpdateProfile(ctx, patch)
	if err != nil {
		return domain.Profile{}, err
	}
	if remote.ID == "" {
		remote = patch.Apply(*current.Profile)
	}
	return s.replaceProfile(ctx, remote)
}

func (s *SessionService) replaceProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateAuthenticated {
		return domain.Profile{}, apperrors.ErrNotAuthenticated
	}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("persist profile: %w", err)
	}
	s.profile = &profile
	return profile.Clone(), nil
}

func (s *SessionService) establish(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	creds.Profile = creds.Profile.Normalize()
	if err := validateCredentials(creds); err != nil {
		return s.failAuth(), fmt.Errorf("unexpected auth response: %w", err)
	}
	if err := s.store.Save(ctx, creds); err != nil {
		return s.failAuth(), fmt.Errorf("persist session: %w", err)
	}
	s.tokens.SetToken(creds.Token)
	s.logger.Info("signed in", zap.String("userID", creds.Profile.ID))
	return s.transition(domain.StateAuthenticated, &creds.Profile), nil
}

// failAuth settles a pending Loading state; an existing session is kept.
func (s *SessionService) failAuth() domain.Session {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if state == domain.StateLoading {
		return s.transition(domain.StateUnauthenticated, nil)
	}
	return s.Current()
}

func (s *SessionService) transition(state domain.State, profile *domain.Profile) domain.Session {
	s.mu.Lock()
	s.state = state
	s.profile = profile
	snapshot := s.snapshotLocked()
	listeners := append([]func(domain.Session){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return snapshot
}

func (s *SessionService) snapshotLocked() domain.Session {
	out := domain.Session{State: s.state}
	if s.profile != nil {
		p := s.profile.Clone()
		out.Profile = &p
	}
	return out
}

func validateCredentials(creds domain.Credentials) error {
	if strings.TrimSpace(creds.Token) == "" {
		return fmt.Errorf("%w: missing token", apperrors.ErrInvalidInput)
	}
	return creds.Profile.Validate()
}
