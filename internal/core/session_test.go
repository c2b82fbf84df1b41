package core

import (
	"context"
	"errors"
	"testing"

	"supplycore/internal/kv"
	"supplycore/pkg/domain"
)

func newLoginReadyStore(t *testing.T) (*Store, *Session, User) {
	t.Helper()
	ctx := context.Background()
	store, _ := newTestStore(t)

	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	var created User
	_, err = store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateUser(User{
			Name:         "Dana Whitfield",
			Email:        "dana@harborgoods.example",
			Role:         domain.RoleAdmin,
			PasswordHash: hash,
		}, false)
		return err
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	session := NewSession(ctx, store, nil)
	return store, session, created
}

func TestLoginSucceedsAndRecordsAudit(t *testing.T) {
	ctx := context.Background()
	store, session, user := newLoginReadyStore(t)

	logged, err := session.Login(ctx, user.Email, "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("logged id %q, want %q", logged.ID, user.ID)
	}
	if session.ActorName() != "Dana Whitfield" {
		t.Fatalf("actor name %q", session.ActorName())
	}

	entry := store.AuditLog()[0]
	if entry.Action != ActionLogin || entry.User != "Dana Whitfield" {
		t.Fatalf("login audit entry: %+v", entry)
	}

	// The snapshot must be persisted for the next process start.
	var none User
	snap, ok := kv.LoadErr(ctx, store.Medium(), KeySessionUser, none)
	if !ok || snap.ID != user.ID {
		t.Fatalf("session snapshot not persisted: ok=%v %+v", ok, snap)
	}
}

func TestLoginRejectsWrongPasswordAndUnknownEmail(t *testing.T) {
	ctx := context.Background()
	_, session, user := newLoginReadyStore(t)

	if _, err := session.Login(ctx, user.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := session.Login(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
	if session.ActorName() != "" {
		t.Fatalf("failed login left actor %q", session.ActorName())
	}
}

func TestLogoutClearsEverythingExceptThemeStartPageAndLanguage(t *testing.T) {
	ctx := context.Background()
	store, session, user := newLoginReadyStore(t)

	if _, err := session.Login(ctx, user.Email, "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	session.SetTheme(ctx, ThemeDark)
	session.SetStartPage(ctx, StartPageProducts)
	session.SetLanguage(ctx, "de")
	session.SetUIPrefs(ctx, map[string]any{"sidebar_pinned": true})

	if err := session.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	medium := store.Medium()
	keys, err := medium.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	for _, key := range keys {
		if !SurvivesLogout(key) {
			t.Errorf("key %q survived logout", key)
		}
	}

	if got := session.Theme(ctx); got != ThemeDark {
		t.Fatalf("theme lost: %q", got)
	}
	if got := session.StartPage(ctx); got != StartPageProducts {
		t.Fatalf("start page lost: %q", got)
	}
	if got := session.Language(ctx); got != "de" {
		t.Fatalf("language lost: %q", got)
	}
	if _, ok := session.Current(); ok {
		t.Fatal("user still logged in after logout")
	}
	if len(session.UIPrefs(ctx)) != 0 {
		t.Fatal("ui prefs survived logout")
	}
}

func TestLogoutReloadsStoreSoClearedStateCannotResurrect(t *testing.T) {
	ctx := context.Background()
	store, session, user := newLoginReadyStore(t)
	svc := NewService(store, nil, session.ActorName)

	if _, err := session.Login(ctx, user.Email, "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	created, err := svc.CreateProduct(ctx, Product{Name: "Ledger Widget"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := session.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// The store re-hydrates from the scrubbed medium; pre-logout records are
	// gone from memory, not merely from the medium.
	if _, ok := store.FindUserByEmail(user.Email); ok {
		t.Fatal("cleared user still served from memory after logout")
	}
	if _, ok := store.ResolveProduct(created.ID); ok {
		t.Fatal("cleared product still served from memory after logout")
	}

	// A mutation after logout must not write cleared data back to the medium.
	if _, err := svc.CreateProduct(ctx, Product{Name: "Fresh Widget"}); err != nil {
		t.Fatalf("create after logout: %v", err)
	}
	var persisted []Product
	persisted, ok := kv.LoadErr(ctx, store.Medium(), KeyProducts, persisted)
	if !ok {
		t.Fatal("products not persisted after post-logout mutation")
	}
	for _, p := range persisted {
		if p.Name == "Ledger Widget" {
			t.Fatalf("cleared product %q re-persisted after logout", p.ID)
		}
	}
}

func TestSessionHydratesPersistedUser(t *testing.T) {
	ctx := context.Background()
	store, session, user := newLoginReadyStore(t)
	if _, err := session.Login(ctx, user.Email, "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A new session over the same medium sees the persisted user.
	fresh := NewSession(ctx, store, nil)
	current, ok := fresh.Current()
	if !ok || current.ID != user.ID {
		t.Fatalf("hydrated session: ok=%v %+v", ok, current)
	}
}

func TestPreferenceDefaults(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	session := NewSession(ctx, store, nil)

	if got := session.Theme(ctx); got != ThemeLight {
		t.Fatalf("default theme %q", got)
	}
	if got := session.StartPage(ctx); got != StartPageDashboard {
		t.Fatalf("default start page %q", got)
	}
	if got := session.Language(ctx); got != "en" {
		t.Fatalf("default language %q", got)
	}
}

func TestUnrecognisedStartPageNormalizesToDashboard(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	session := NewSession(ctx, store, nil)

	if err := kv.Save(ctx, store.Medium(), KeyStartPage, StartPage("legacy-view")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := session.StartPage(ctx); got != StartPageDashboard {
		t.Fatalf("start page %q, want dashboard", got)
	}
}
