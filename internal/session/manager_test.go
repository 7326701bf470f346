package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestLoginLogoutCurrent(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	if sess := mgr.Current(ctx, "sid"); sess.Authenticated() {
		t.Fatalf("expected unauthenticated zero session")
	}

	user := User{ID: "u1", Email: "a@b.c", Name: "Ana"}
	if err := mgr.Login(ctx, "sid", signedToken(t, time.Now().Add(time.Hour)), user); err != nil {
		t.Fatalf("login: %v", err)
	}

	sess := mgr.Current(ctx, "sid")
	if !sess.Authenticated() || sess.User.Name != "Ana" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if err := mgr.Logout(ctx, "sid"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sess := mgr.Current(ctx, "sid"); sess.Authenticated() {
		t.Fatalf("expected session cleared after logout")
	}
}

func TestCurrentDropsExpiredToken(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, zap.NewNop())
	ctx := context.Background()

	if err := mgr.Login(ctx, "sid", signedToken(t, time.Now().Add(-time.Hour)), User{ID: "u1"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if sess := mgr.Current(ctx, "sid"); sess.Authenticated() {
		t.Fatalf("expected expired token to yield zero session")
	}
	// The dead session must also be purged from the store.
	if _, err := store.Load(ctx, "sid"); err == nil {
		t.Fatalf("expected expired session deleted from store")
	}
}

func TestCurrentKeepsOpaqueToken(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	// Non-JWT tokens carry no readable exp claim; they pass through.
	if err := mgr.Login(ctx, "sid", "opaque-token", User{ID: "u1"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess := mgr.Current(ctx, "sid"); !sess.Authenticated() {
		t.Fatalf("expected opaque token session to survive")
	}
}

func TestUpdateUserMergesPatch(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	if err := mgr.Login(ctx, "sid", "tok", User{ID: "u1", Name: "Ana", Avatar: "old.png"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	name := "Anaïs"
	updated, err := mgr.UpdateUser(ctx, "sid", UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.User.Name != "Anaïs" || updated.User.Avatar != "old.png" {
		t.Fatalf("patch not merged: %+v", updated.User)
	}

	// The merge must be persisted, not just returned.
	if sess := mgr.Current(ctx, "sid"); sess.User.Name != "Anaïs" {
		t.Fatalf("persisted session missing patch: %+v", sess.User)
	}
}
