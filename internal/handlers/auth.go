package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/seatbook/seatbook-backend/internal/models"
	"github.com/seatbook/seatbook-backend/internal/services"
	"github.com/seatbook/seatbook-backend/internal/store"
	"github.com/seatbook/seatbook-backend/internal/validation"
	"github.com/seatbook/seatbook-backend/pkg/clientip"
	"github.com/seatbook/seatbook-backend/pkg/utils"
)

// invalidCredentials is the single message for both unknown-email and
// wrong-password logins, so account existence is not leaked.
const invalidCredentials = "invalid email or password"

// Register handles a registration form submission.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	form := validation.RegistrationForm{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		ConfirmEmail:    r.PostFormValue("confirm_email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Terms:           formBool(r.PostFormValue("terms")),
	}

	if err := form.Validate(h.Policy); err != nil {
		respondFormError(w, http.StatusBadRequest, err.Error(), &form)
		return
	}

	emailHash := utils.HashEmail(form.Email)

	// Pre-insert lookup gives the friendly path; the unique constraint on
	// email_hash catches the check-then-act race.
	_, err := h.Identities.GetByEmailHash(r.Context(), emailHash)
	if err == nil {
		h.recordAuth(r, services.AuditRegister, emailHash, 0, false)
		respondFormError(w, http.StatusConflict, store.ErrEmailTaken.Error(), &form)
		return
	}
	if !errors.Is(err, store.ErrIdentityNotFound) {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	encryptedEmail, err := h.Codec.Encrypt(form.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encrypt email")
		return
	}

	passwordHash, err := utils.HashPassword(form.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := &models.User{
		Name:           form.Name,
		EmailEncrypted: encryptedEmail,
		EmailHash:      emailHash,
		PasswordHash:   passwordHash,
	}
	if err := h.Identities.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			h.recordAuth(r, services.AuditRegister, emailHash, 0, false)
			respondFormError(w, http.StatusConflict, store.ErrEmailTaken.Error(), &form)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.recordAuth(r, services.AuditRegister, emailHash, user.ID, true)

	// The success view echoes the human-readable email back for
	// confirmation; only the hash and ciphertext were persisted.
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Account created successfully",
		"user": map[string]interface{}{
			"id":             user.ID,
			"name":           user.Name,
			"email":          form.Email,
			"is_provisional": user.IsProvisional,
		},
	})
}

// Login handles a login form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	emailHash := utils.HashEmail(email)

	user, err := h.Identities.GetByEmailHash(r.Context(), emailHash)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			h.recordAuth(r, services.AuditLogin, emailHash, 0, false)
			respondError(w, http.StatusUnauthorized, invalidCredentials)
			return
		}
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		h.recordAuth(r, services.AuditLogin, emailHash, user.ID, false)
		respondError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	// Ciphertext that no longer decrypts is tampered or corrupted data;
	// fail hard rather than logging the user in with a blank address.
	displayEmail, err := h.Codec.Decrypt(user.EmailEncrypted)
	if err != nil {
		log.Printf("ERROR: cannot decrypt stored email for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "account record is corrupted")
		return
	}

	token, err := h.Sessions.Create(r.Context(), services.Session{
		UserID: user.ID,
		Name:   user.Name,
		Email:  displayEmail,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.recordAuth(r, services.AuditLogin, emailHash, user.ID, true)
	setSessionCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user": map[string]interface{}{
			"id":             user.ID,
			"name":           user.Name,
			"email":          displayEmail,
			"is_provisional": user.IsProvisional,
		},
	})
}

// Logout clears the session and the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.Sessions.Destroy(r.Context(), token); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to clear session")
			return
		}
	}
	clearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// Me returns the authenticated identity from the session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":    sess.UserID,
			"name":  sess.Name,
			"email": sess.Email,
		},
	})
}

// respondFormError re-renders the form data with the failure message.
// Secrets are never echoed back: only name, email, confirm_email and the
// terms flag are returned for repopulation.
func respondFormError(w http.ResponseWriter, status int, message string, form *validation.RegistrationForm) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
		"form": map[string]interface{}{
			"name":          form.Name,
			"email":         form.Email,
			"confirm_email": form.ConfirmEmail,
			"terms":         form.Terms,
		},
	})
}

func (h *Handler) recordAuth(r *http.Request, kind, emailHash string, userID int64, success bool) {
	if h.Audit == nil {
		return
	}
	// Audit failures never block the request
	_ = h.Audit.Record(r.Context(), services.AuditEvent{
		Kind:      kind,
		EmailHash: emailHash,
		UserID:    userID,
		IPAddress: clientip.RealClientIP(r),
		Success:   success,
	})
}

func formBool(v string) bool {
	switch v {
	case "", "0", "false", "off":
		return false
	}
	return true
}
