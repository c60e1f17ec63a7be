package transport

import (
	"net/http"

	"github.com/blog3d/techblog-client/internal/session"
	"github.com/blog3d/techblog-client/internal/storage"
)

const (
	// SessionHeader carries the anonymous identity on every request.
	SessionHeader = "X-Session-Id"
	// AuthCookie is where the bearer token is persisted between runs.
	AuthCookie = "authToken"
)

const (
	ModeBearer  = "bearer"
	ModeSession = "session"
)

// Credentials is the resolved actor identity for a single call: a bearer
// token for authenticated actors or a session id for guests.
type Credentials struct {
	Mode  string
	Value string
}

// Apply sets the explicit per-call identity header. The decorator's
// ambient headers still go out; backend precedence between the two is
// backend-defined.
func (c Credentials) Apply(h http.Header) {
	switch c.Mode {
	case ModeBearer:
		h.Set("Authorization", "Bearer "+c.Value)
	case ModeSession:
		if c.Value != "" {
			h.Set(SessionHeader, c.Value)
		}
	}
}

// Decorator is the outgoing-request decoration layer: it attaches the
// bearer token from the auth cookie, the session identity header, and the
// profile store's cookies to every request, and watches responses for 401
// to force a logout. It is idempotent and does not clobber headers the
// caller already set.
type Decorator struct {
	base           http.RoundTripper
	store          *storage.Store
	resolver       *session.Resolver
	onUnauthorized func()
}

func NewDecorator(base http.RoundTripper, store *storage.Store, resolver *session.Resolver) *Decorator {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Decorator{
		base:     base,
		store:    store,
		resolver: resolver,
	}
}

// OnUnauthorized registers the callback fired once per 401 response.
func (d *Decorator) OnUnauthorized(fn func()) {
	d.onUnauthorized = fn
}

func (d *Decorator) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if out.Header.Get("Authorization") == "" && d.store != nil {
		if token, ok := d.store.GetCookie(AuthCookie); ok && token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if out.Header.Get(SessionHeader) == "" {
		if id := d.resolver.GetOrCreateGuestID(); id != "" {
			out.Header.Set(SessionHeader, id)
		}
	}

	d.attachCookies(out)

	resp, err := d.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && d.onUnauthorized != nil {
		d.onUnauthorized()
	}

	return resp, nil
}

// attachCookies is the credentials-include analog: every unexpired cookie
// in the profile store rides along, without overriding cookies the caller
// set on the request itself.
func (d *Decorator) attachCookies(req *http.Request) {
	if d.store == nil {
		return
	}

	cookies, err := d.store.Cookies()
	if err != nil {
		return
	}

	present := make(map[string]struct{})
	for _, c := range req.Cookies() {
		present[c.Name] = struct{}{}
	}

	for _, c := range cookies {
		if _, ok := present[c.Name]; ok {
			continue
		}
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
}
