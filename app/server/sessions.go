package server

import (
	"errors"
	"net/http"

	"blogclient/app/models"
	"blogclient/app/store"

	"github.com/google/uuid"
)

// identityOf converts a stored user to its public API shape.
func identityOf(user *store.User) models.Identity {
	return models.Identity{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// openSession issues a new session token for the user and sets the cookie.
func (s *Server) openSession(w http.ResponseWriter, userID int) error {
	token := uuid.NewString()
	if err := s.sessions.Create(token, userID); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(store.SessionTTL.Seconds()),
	})
	return nil
}

// closeSession removes the session behind the request cookie and expires it.
func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(cookie.Value); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}

// currentUser resolves the request's session cookie to a user. Returns
// store.ErrNotFound when there is no usable session.
func (s *Server) currentUser(r *http.Request) (*store.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, store.ErrNotFound
	}
	userID, err := s.sessions.Lookup(cookie.Value)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(userID)
}

// requireUser writes a 401 and returns false when the request has no session.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*store.User, bool) {
	user, err := s.currentUser(r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, "not logged in", http.StatusUnauthorized)
		} else {
			sendError(w, "failed to resolve session", http.StatusInternalServerError)
		}
		return nil, false
	}
	return user, true
}
