package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"supplycore/internal/kv"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session tracks the authenticated user and UI preferences. The user
// snapshot and each preference own their own key on the durable medium;
// on logout every persisted key is deleted except theme, start page and
// language, which survive intact.
type Session struct {
	store  *Store
	logger *zap.Logger

	mu      sync.RWMutex
	current *User
}

// NewSession hydrates the current-user snapshot from the medium, if one was
// persisted by a previous run.
func NewSession(ctx context.Context, store *Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{store: store, logger: logger}
	var none User
	u, ok := kv.LoadErr(ctx, store.Medium(), KeySessionUser, none)
	if ok && u.ID != "" {
		s.current = &u
	}
	return s
}

// ActorName is the display name audit entries carry for this session. Empty
// when nobody is logged in; the facade records that as "System".
func (s *Session) ActorName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Name
}

// Current returns the authenticated user, if any.
func (s *Session) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// Login authenticates by email and password. On success the user snapshot
// is persisted, LastActive is updated, and a LOGIN entry lands in the audit
// trail.
func (s *Session) Login(ctx context.Context, email, password string) (User, error) {
	u, ok := s.store.FindUserByEmail(email)
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	var logged User
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		u.LastActive = m.Now()
		updated, err := m.UpdateUser(u)
		if err != nil {
			return err
		}
		logged = updated
		m.AppendAudit(AuditLogEntry{
			ID:        newAuditID(m.Now()),
			Timestamp: m.Now(),
			User:      updated.Name,
			Action:    ActionLogin,
			Module:    ModuleSystem,
			Details:   fmt.Sprintf("%s logged in", updated.Name),
		})
		return nil
	})
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	s.current = &logged
	s.mu.Unlock()

	if err := kv.Save(ctx, s.store.Medium(), KeySessionUser, logged); err != nil {
		s.logger.Warn("session snapshot persist failed", zap.Error(err))
	}
	s.logger.Info("login", zap.String("user_id", logged.ID))
	return logged, nil
}

// Logout records a LOGOUT entry, then performs the selective clear: every
// key on the medium is deleted except theme, start page and language. The
// store is reloaded afterwards so in-memory state re-hydrates from the
// scrubbed medium and a later mutation cannot re-persist cleared data.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	name := ""
	if s.current != nil {
		name = s.current.Name
	}
	s.current = nil
	s.mu.Unlock()

	if name != "" {
		_, err := s.store.Mutate(ctx, func(m *Mutation) error {
			m.AppendAudit(AuditLogEntry{
				ID:        newAuditID(m.Now()),
				Timestamp: m.Now(),
				User:      name,
				Action:    ActionLogout,
				Module:    ModuleSystem,
				Details:   fmt.Sprintf("%s logged out", name),
			})
			return nil
		})
		if err != nil {
			return err
		}
	}

	medium := s.store.Medium()
	keys, err := medium.Keys(ctx)
	if err != nil {
		return fmt.Errorf("enumerate keys: %w", err)
	}
	for _, key := range keys {
		if SurvivesLogout(key) {
			continue
		}
		if err := medium.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	s.store.Reload(ctx)
	s.logger.Info("logout, state cleared", zap.String("user", name))
	return nil
}

// Language returns the active UI language, defaulting to English.
func (s *Session) Language(ctx context.Context) string {
	return kv.Load(ctx, s.store.Medium(), KeyLanguage, "en")
}

// SetLanguage persists the UI language. Best-effort, like every preference
// write.
func (s *Session) SetLanguage(ctx context.Context, lang string) {
	if err := kv.Save(ctx, s.store.Medium(), KeyLanguage, lang); err != nil {
		s.logger.Warn("language persist failed", zap.Error(err))
	}
}

// Theme returns the persisted theme, defaulting to light. Anything other
// than "dark" reads as light.
func (s *Session) Theme(ctx context.Context) string {
	t := kv.Load(ctx, s.store.Medium(), KeyTheme, ThemeLight)
	if t != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme persists the theme.
func (s *Session) SetTheme(ctx context.Context, theme string) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	if err := kv.Save(ctx, s.store.Medium(), KeyTheme, theme); err != nil {
		s.logger.Warn("theme persist failed", zap.Error(err))
	}
}

// StartPage returns the persisted start page, normalized to the closed set.
func (s *Session) StartPage(ctx context.Context) StartPage {
	p := kv.Load(ctx, s.store.Medium(), KeyStartPage, StartPageDashboard)
	return p.Normalize()
}

// SetStartPage persists the start page.
func (s *Session) SetStartPage(ctx context.Context, page StartPage) {
	if err := kv.Save(ctx, s.store.Medium(), KeyStartPage, page.Normalize()); err != nil {
		s.logger.Warn("start page persist failed", zap.Error(err))
	}
}

// UIPrefs returns the free-form UI preference map (sidebar pin, widget
// config and the like). Cleared on logout.
func (s *Session) UIPrefs(ctx context.Context) map[string]any {
	return kv.Load(ctx, s.store.Medium(), KeyUIPrefs, map[string]any{})
}

// SetUIPrefs persists the UI preference map wholesale.
func (s *Session) SetUIPrefs(ctx context.Context, prefs map[string]any) {
	if err := kv.Save(ctx, s.store.Medium(), KeyUIPrefs, prefs); err != nil {
		s.logger.Warn("ui prefs persist failed", zap.Error(err))
	}
}

// HashPassword produces the stored form of a user password.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
