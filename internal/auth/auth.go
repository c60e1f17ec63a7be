package auth

import (
	"context"
	"sync"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/blog3d/techblog-client/internal/storage"
	"github.com/blog3d/techblog-client/internal/transport"
	"go.uber.org/zap"
)

type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

// Manager holds the authenticated session: the bearer token, the user's
// profile, and the unknown -> authenticated | unauthenticated lifecycle.
// It is safe for concurrent use; concurrent CheckAuth calls are idempotent
// and last write wins.
type Manager struct {
	mu     sync.RWMutex
	state  State
	token  string
	user   *model.User
	client *apiclient.Client
	store  *storage.Store
	logger *zap.Logger

	// onLogout is the home-navigation analog: fired after every logout,
	// forced or requested.
	onLogout func()
}

func NewManager(client *apiclient.Client, store *storage.Store, logger *zap.Logger) *Manager {
	return &Manager{
		state:  StateUnknown,
		client: client,
		store:  store,
		logger: logger,
	}
}

func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	m.onLogout = fn
	m.mu.Unlock()
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.IsAdmin()
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// CheckAuth reconciles the persisted token with the backend: no token or a
// locally-expired one means unauthenticated; otherwise the profile call
// decides, with one cookie-only retry before giving up. Safe to call any
// number of times.
func (m *Manager) CheckAuth(ctx context.Context) bool {
	token, ok := m.store.GetCookie(transport.AuthCookie)
	if !ok || token == "" {
		m.setUnauthenticated(false)
		return false
	}

	if expired, err := tokenExpired(token); err != nil || expired {
		if err != nil {
			m.logger.Sugar().Errorf("failed to decode stored token: %s", err.Error())
		}
		m.setUnauthenticated(true)
		return false
	}

	profile, err := m.client.Profile(ctx, token)
	if err != nil {
		// The backend may recognize an httpOnly session cookie even when
		// the bearer path fails; retry once without the explicit header.
		profile, err = m.client.Profile(ctx, "")
		if err != nil {
			m.setUnauthenticated(true)
			return false
		}
		if refreshed, ok := m.store.GetCookie(transport.AuthCookie); ok && refreshed != "" {
			token = refreshed
		}
	}

	user := profile.ResolveUser()
	if user == nil {
		m.setUnauthenticated(true)
		return false
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = token
	m.user = user
	m.mu.Unlock()

	return true
}

// Login authenticates against the backend. On success the returned token
// is persisted to the session-scoped auth cookie; failures propagate to
// the caller untouched.
func (m *Manager) Login(ctx context.Context, email string, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if resp.Token != "" {
		if err := m.store.SetCookie(transport.AuthCookie, resp.Token, 0, storage.SameSiteLax); err != nil {
			m.logger.Sugar().Errorf("failed to persist auth token: %s", err.Error())
		}
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = resp.Token
	m.user = resp.User
	m.mu.Unlock()

	return nil
}

// Logout posts the logout best-effort, then unconditionally clears the
// session. Network failure is logged, never fatal.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.Sugar().Errorf("logout request failed: %s", err.Error())
	}

	m.setUnauthenticated(true)
}

// ForceLogout is wired as the decoration layer's 401 handler, so the
// session never outlives a rejected token. The backend call is skipped:
// the token was just refused.
func (m *Manager) ForceLogout() {
	m.setUnauthenticated(true)
}

func (m *Manager) setUnauthenticated(clearCookie bool) {
	if clearCookie {
		if err := m.store.RemoveCookie(transport.AuthCookie); err != nil {
			m.logger.Sugar().Errorf("failed to remove auth cookie: %s", err.Error())
		}
	}

	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	m.state = StateUnauthenticated
	m.token = ""
	m.user = nil
	fn := m.onLogout
	m.mu.Unlock()

	if wasAuthenticated && fn != nil {
		fn()
	}
}
