package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/session"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage"
)

// userView is the wire shape of a signed-in user. It omits the credential
// secret, which is only ever compared on the serving side and has no reason
// to cross the HTTP boundary.
type userView struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	QRToken       string                 `json:"qrToken"`
	Notifications []session.Notification `json:"notifications"`
}

func newUserView(u *session.User) *userView {
	if u == nil {
		return nil
	}
	return &userView{
		ID:            u.ID,
		Name:          u.Name,
		QRToken:       u.QRToken,
		Notifications: u.Notifications,
	}
}

// sessionResponse is what the auth gate consumes: while isLoading is true it
// must render nothing decisive; afterwards a null user routes to the login
// screen and a non-null user to home.
type sessionResponse struct {
	User        *userView `json:"user"`
	IsLoading   bool      `json:"isLoading"`
	UnreadCount int       `json:"unreadCount"`
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	return sessionResponse{
		User:        newUserView(snap.User),
		IsLoading:   snap.IsLoading,
		UnreadCount: snap.User.UnreadCount(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetSession handles GET /api/session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newSessionResponse(s.store.Snapshot()))
}

// handleLogin handles POST /api/session/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Credential string `json:"credential"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "name is required")
		return
	}

	if err := s.store.Login(r.Context(), req.Name, req.Credential); err != nil {
		s.log.Error(r.Context(), "login failed", "err", err)
		respondError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to persist session")
		return
	}

	respondJSON(w, http.StatusCreated, newSessionResponse(s.store.Snapshot()))
}

// handleLogout handles POST /api/session/logout.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	err := s.store.Logout(r.Context())
	switch {
	case err == nil:
		respondJSON(w, http.StatusNoContent, nil)
	case errors.Is(err, session.ErrNotSignedIn):
		respondError(w, http.StatusUnauthorized, ErrCodeNotSignedIn, "no active session")
	case storage.IsWrite(err):
		s.log.Error(r.Context(), "logout failed", "err", err)
		respondError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to remove session record")
	default:
		s.log.Error(r.Context(), "logout failed", "err", err)
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "logout failed")
	}
}

// handleRegenerateQR handles POST /api/qr/regenerate.
func (s *Server) handleRegenerateQR(w http.ResponseWriter, r *http.Request) {
	token := s.store.RegenerateQRToken()
	if token == "" {
		respondError(w, http.StatusUnauthorized, ErrCodeNotSignedIn, "no active session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"qrToken": token})
}

// handleListNotifications handles GET /api/notifications.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap.User == nil {
		respondError(w, http.StatusUnauthorized, ErrCodeNotSignedIn, "no active session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": snap.User.Notifications,
		"unreadCount":   snap.User.UnreadCount(),
	})
}

// handleGetNotification handles GET /api/notifications/{id}.
func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap.User == nil {
		respondError(w, http.StatusUnauthorized, ErrCodeNotSignedIn, "no active session")
		return
	}
	n := snap.User.Notification(mux.Vars(r)["id"])
	if n == nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "notification not found")
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// handleMarkRead handles POST /api/notifications/{id}/read. Unknown ids are
// an idempotent no-op, same as the store.
func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if s.store.Snapshot().User == nil {
		respondError(w, http.StatusUnauthorized, ErrCodeNotSignedIn, "no active session")
		return
	}
	s.store.MarkNotificationAsRead(mux.Vars(r)["id"])
	respondJSON(w, http.StatusNoContent, nil)
}
