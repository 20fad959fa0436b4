package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"blogclient/app/models"
	"blogclient/app/store"

	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /users
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		User models.Registration `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	reg := payload.User
	if err := reg.Validate(); err != nil {
		sendError(w, "invalid registration: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if _, err := s.users.GetByEmail(reg.Email); err == nil {
		sendError(w, "email has already been taken", http.StatusUnprocessableEntity)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		sendError(w, "failed to check email", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		sendError(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user := &store.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		sendError(w, "failed to create account: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusCreated, identityOf(user))
}

// Login handles POST /login
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		User struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := s.users.GetByEmail(payload.User.Email)
	if err != nil {
		// Same response as a wrong password; do not reveal which one it was.
		sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.User.Password)); err != nil {
		sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := s.openSession(w, user.ID); err != nil {
		sendError(w, "failed to open session", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, identityOf(user))
}

// Logout handles DELETE /logout
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	if err := s.closeSession(w, r); err != nil {
		sendError(w, "failed to close session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser handles GET /users/current
func (s *Server) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	sendJSON(w, http.StatusOK, identityOf(user))
}
