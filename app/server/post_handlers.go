package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"blogclient/app/models"
	"blogclient/app/store"

	"github.com/gorilla/mux"
)

// ListPosts handles GET /posts
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List()
	if err != nil {
		sendError(w, "failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// ShowPost handles GET /posts/{id}
func (s *Server) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := s.posts.GetByID(id)
	if err != nil {
		sendError(w, "post not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /posts
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		Post struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"post"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	post := &models.Post{
		Title:     payload.Post.Title,
		Body:      payload.Post.Body,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := post.Validate(); err != nil {
		sendError(w, "invalid post: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.posts.Create(post); err != nil {
		sendError(w, "failed to create post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PATCH /posts/{id}
func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := s.posts.GetByID(id)
	if err != nil {
		sendError(w, "post not found", http.StatusNotFound)
		return
	}
	if post.UserID != user.ID {
		sendError(w, "you do not own this post", http.StatusForbidden)
		return
	}

	var payload struct {
		Post struct {
			Title *string `json:"title"`
			Body  *string `json:"body"`
		} `json:"post"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if payload.Post.Title != nil {
		post.Title = *payload.Post.Title
	}
	if payload.Post.Body != nil {
		post.Body = *payload.Post.Body
	}
	post.UpdatedAt = time.Now().UTC()

	if err := post.Validate(); err != nil {
		sendError(w, "invalid post: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.posts.Update(post); err != nil {
		sendError(w, "failed to update post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /posts/{id}. Comments on the post are removed
// with it.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := s.posts.GetByID(id)
	if err != nil {
		sendError(w, "post not found", http.StatusNotFound)
		return
	}
	if post.UserID != user.ID {
		sendError(w, "you do not own this post", http.StatusForbidden)
		return
	}

	comments, err := s.comments.ListByPost(id)
	if err != nil {
		sendError(w, "failed to fetch comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	for _, comment := range comments {
		if err := s.comments.Delete(comment.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			sendError(w, "failed to delete comments: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if err := s.posts.Delete(id); err != nil {
		sendError(w, "failed to delete post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyPosts handles GET /my_posts
func (s *Server) MyPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	posts, err := s.posts.ListByUser(user.ID)
	if err != nil {
		sendError(w, "failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}
