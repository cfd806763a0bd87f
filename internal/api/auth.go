package api

import (
	"net/http"

	"hotel/internal/auth"
	"hotel/internal/logging"
	"hotel/internal/models"

	"github.com/julienschmidt/httprouter"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User     *models.User   `json:"user"`
	AllUsers []*models.User `json:"allUsers,omitempty"`
}

func (s *HTTPServer) handleSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := auth.CurrentUser(r.Context())
	resp := sessionResponse{User: user}
	if user.IsAdmin() {
		users, err := s.svc.Users.ListUsers(r.Context(), user)
		if err != nil {
			s.writeServiceError(w, r, err, "Failed to load users")
			return
		}
		resp.AllUsers = users
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRegister creates a USER account and signs it in.
func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	user, err := s.svc.Users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to register")
		return
	}
	if !s.startSession(w, r, user) {
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: user})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	user, err := s.svc.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to log in")
		return
	}
	if !s.startSession(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user})
}

// handleLogout always clears the cookie; revocation is best effort.
func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if claims := auth.CurrentClaims(r.Context()); claims != nil {
		if err := s.sessions.Revoke(r.Context(), claims); err != nil {
			logging.FromContext(r.Context(), s.log).Warn().Err(err).Msg("session revoke failed")
		}
	}
	http.SetCookie(w, s.sessions.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *HTTPServer) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	token, _, err := s.sessions.Issue(user)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to start session")
		return false
	}
	http.SetCookie(w, s.sessions.Cookie(token))
	return true
}
