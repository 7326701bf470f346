package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Manager owns session lifecycle: login persists token+user, logout clears
// both, UpdateUser merges profile changes and re-persists.
type Manager struct {
	store Store
	log   *zap.Logger
}

func NewManager(store Store, log *zap.Logger) *Manager {
	return &Manager{store: store, log: log}
}

func (m *Manager) Login(ctx context.Context, id, token string, user User) error {
	return m.store.Save(ctx, id, Session{Token: token, User: user})
}

func (m *Manager) Logout(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// Current restores the persisted session. Missing, unparsable, or locally
// expired state yields an unauthenticated zero session, never an error the
// caller must branch on.
func (m *Manager) Current(ctx context.Context, id string) Session {
	s, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Session{}
	}
	if err != nil {
		m.log.Warn("session load failed", zap.Error(err))
		return Session{}
	}
	if tokenExpired(s.Token) {
		_ = m.store.Delete(ctx, id)
		return Session{}
	}
	return s
}

func (m *Manager) UpdateUser(ctx context.Context, id string, patch UserPatch) (Session, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if patch.Name != nil {
		s.User.Name = *patch.Name
	}
	if patch.Avatar != nil {
		s.User.Avatar = *patch.Avatar
	}
	if err := m.store.Save(ctx, id, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// tokenExpired inspects the bearer token's exp claim without verifying the
// signature; the backend holds the secret, we only avoid sending tokens we
// already know are dead.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
