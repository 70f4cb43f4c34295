package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// APIKeyAuth guards the API with a fixed set of keys taken from
// TOOLBOX_API_KEYS. A request presents its key as
// "Authorization: Bearer <key>" or "X-API-Key: <key>".
//
// The key set is frozen at construction; rotate keys by restarting.
type APIKeyAuth struct {
	digests [][sha256.Size]byte
	public  map[string]bool
}

// NewAPIKeyAuth creates the middleware. Blank entries are ignored and an
// empty set disables auth. /health and /version never need a key.
func NewAPIKeyAuth(keys []string) *APIKeyAuth {
	a := &APIKeyAuth{
		public: map[string]bool{"/health": true, "/version": true},
	}
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			a.digests = append(a.digests, sha256.Sum256([]byte(key)))
		}
	}
	return a
}

// Enabled reports whether any key is configured.
func (a *APIKeyAuth) Enabled() bool {
	return len(a.digests) > 0
}

// Middleware rejects requests without a valid key with 401.
func (a *APIKeyAuth) Middleware(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.public[r.URL.Path] || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		key := presentedKey(r)
		switch {
		case key == "":
			unauthorized(w, r, "api key required")
		case !a.valid(key):
			unauthorized(w, r, "invalid api key")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// valid compares digests so every comparison has the same length.
func (a *APIKeyAuth) valid(key string) bool {
	sum := sha256.Sum256([]byte(key))
	match := 0
	for _, d := range a.digests {
		match |= subtle.ConstantTimeCompare(sum[:], d[:])
	}
	return match == 1
}

func presentedKey(r *http.Request) string {
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(bearer)
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	log.Debug().Str("path", r.URL.Path).Str("reason", msg).Msg("Rejected request")
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="toolbox"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
