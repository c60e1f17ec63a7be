package session

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/blog3d/techblog-client/internal/storage"
	"github.com/google/uuid"
)

const (
	// SessionKey is the primary identity key, mirrored into a cookie of
	// the same name at initialization.
	SessionKey = "sessionId"
	// LegacyGuestKey predates the session id and is kept readable for
	// profiles created before the migration.
	LegacyGuestKey = "blog3d_guestId"

	// SessionCookieMaxAge matches the 30-day identity cookie.
	SessionCookieMaxAge = 30 * 24 * time.Hour
)

const base36 = "abcdefghijklmnopqrstuvwxyz0123456789"

// Resolver produces a stable anonymous identity for the profile store it
// wraps. A nil store (no storage scope, e.g. ephemeral runs) resolves to
// the empty string rather than an error.
type Resolver struct {
	store *storage.Store
}

func New(store *storage.Store) *Resolver {
	return &Resolver{store: store}
}

// GetOrCreateGuestID returns the established identity: the primary session
// id when present, else the legacy guest id, creating it on first use.
// Repeat calls within one storage scope return the same value.
func (r *Resolver) GetOrCreateGuestID() string {
	if r == nil || r.store == nil {
		return ""
	}

	if sessionID, ok := r.store.GetItem(SessionKey); ok && sessionID != "" {
		return sessionID
	}

	guestID, ok := r.store.GetItem(LegacyGuestKey)
	if !ok || guestID == "" {
		guestID = newGuestID()
		// write failures are swallowed: the id stays usable for this run
		_ = r.store.SetItem(LegacyGuestKey, guestID)
	}

	return guestID
}

// Init establishes the primary session identity for this profile: a
// UUID-v4 value written to both the kv area and the sessionId cookie so
// the two stay in sync. Returns the active id and whether it was created
// by this call.
func (r *Resolver) Init() (string, bool, error) {
	if r == nil || r.store == nil {
		return "", false, nil
	}

	if existing, ok := r.store.GetItem(SessionKey); ok && existing != "" {
		return existing, false, nil
	}

	id := uuid.NewString()
	if err := r.store.SetItem(SessionKey, id); err != nil {
		return "", false, err
	}
	if err := r.store.SetCookie(SessionKey, id, SessionCookieMaxAge, storage.SameSiteLax); err != nil {
		return "", false, err
	}

	return id, true, nil
}

func newGuestID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return "guest_" + string(suffix) + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
