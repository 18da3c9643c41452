// Package handlers exposes the HTTP operations: registration, login,
// logout, event listing, reservations and the admin surface. Dependencies
// are injected as interfaces so tests can run against in-memory fakes.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/seatbook/seatbook-backend/internal/services"
	"github.com/seatbook/seatbook-backend/internal/store"
	"github.com/seatbook/seatbook-backend/internal/validation"
	"github.com/seatbook/seatbook-backend/pkg/utils"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// Sessions is the session collaborator: opaque server-side state keyed by
// a per-process secret store.
type Sessions interface {
	Create(ctx context.Context, sess services.Session) (string, error)
	Get(ctx context.Context, token string) (*services.Session, error)
	Destroy(ctx context.Context, token string) error
}

// AuditLog records auth and reservation attempts; writes are best-effort.
type AuditLog interface {
	Record(ctx context.Context, ev services.AuditEvent) error
	Recent(ctx context.Context, limit int64) ([]services.AuditEvent, error)
}

// Handler bundles the collaborators behind the HTTP operations.
type Handler struct {
	Identities   store.IdentityStore
	Events       store.EventStore
	Reservations store.ReservationStore
	Sessions     Sessions
	Audit        AuditLog
	Codec        *utils.Codec
	Policy       validation.PasswordPolicy
}

func New(identities store.IdentityStore, events store.EventStore, reservations store.ReservationStore,
	sessions Sessions, audit AuditLog, codec *utils.Codec, policy validation.PasswordPolicy) *Handler {
	return &Handler{
		Identities:   identities,
		Events:       events,
		Reservations: reservations,
		Sessions:     sessions,
		Audit:        audit,
		Codec:        codec,
		Policy:       policy,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(services.SessionDuration.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

type ctxKey int

const sessionCtxKey ctxKey = 0

// RequireSession rejects requests without a valid session and stores the
// session on the request context for downstream handlers.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Sessions.Get(r.Context(), sessionToken(r))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the session placed by RequireSession, or nil.
func SessionFromContext(ctx context.Context) *services.Session {
	sess, _ := ctx.Value(sessionCtxKey).(*services.Session)
	return sess
}
