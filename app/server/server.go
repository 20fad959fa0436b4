// Package server implements the blog API contract locally: accounts, cookie
// sessions, posts and comments over Badger. It exists so the client can be
// developed and integration-tested without the real backend.
package server

import (
	"encoding/json"
	"net/http"

	"blogclient/app/middleware"
	"blogclient/app/store"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "blog_session"

// Server holds the repositories behind the API handlers.
type Server struct {
	users    store.UserRepository
	posts    store.PostRepository
	comments store.CommentRepository
	sessions store.SessionRepository
}

// New creates a Server backed by the given Badger DB.
func New(db *badger.DB) *Server {
	return &Server{
		users:    store.NewBadgerUserRepository(db),
		posts:    store.NewBadgerPostRepository(db),
		comments: store.NewBadgerCommentRepository(db),
		sessions: store.NewBadgerSessionRepository(db),
	}
}

// NewWithRepositories creates a Server with explicit repositories.
func NewWithRepositories(users store.UserRepository, posts store.PostRepository, comments store.CommentRepository, sessions store.SessionRepository) *Server {
	return &Server{users: users, posts: posts, comments: comments, sessions: sessions}
}

// Router builds the API routes.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	router.HandleFunc("/users", s.Register).Methods("POST")
	router.HandleFunc("/login", s.Login).Methods("POST")
	router.HandleFunc("/logout", s.Logout).Methods("DELETE")
	router.HandleFunc("/users/current", s.CurrentUser).Methods("GET")

	router.HandleFunc("/posts", s.ListPosts).Methods("GET")
	router.HandleFunc("/posts", s.CreatePost).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", s.ShowPost).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", s.UpdatePost).Methods("PATCH")
	router.HandleFunc("/posts/{id:[0-9]+}", s.DeletePost).Methods("DELETE")
	router.HandleFunc("/my_posts", s.MyPosts).Methods("GET")

	router.HandleFunc("/comments", s.ListComments).Methods("GET")
	router.HandleFunc("/comments", s.CreateComment).Methods("POST")
	router.HandleFunc("/comments/{id:[0-9]+}", s.ShowComment).Methods("GET")
	router.HandleFunc("/comments/{id:[0-9]+}", s.DeleteComment).Methods("DELETE")

	return router
}

// sendJSON writes v as a JSON response.
func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// sendError writes an {"error": message} response.
func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}
