package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"blogclient/app/models"

	"github.com/gorilla/mux"
)

// ListComments handles GET /comments, with an optional ?post_id filter.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	if postIDStr := r.URL.Query().Get("post_id"); postIDStr != "" {
		postID, err := strconv.Atoi(postIDStr)
		if err != nil {
			sendError(w, "invalid post ID", http.StatusBadRequest)
			return
		}
		comments, err := s.comments.ListByPost(postID)
		if err != nil {
			sendError(w, "failed to fetch comments: "+err.Error(), http.StatusInternalServerError)
			return
		}
		sendJSON(w, http.StatusOK, comments)
		return
	}

	comments, err := s.comments.List()
	if err != nil {
		sendError(w, "failed to fetch comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// ShowComment handles GET /comments/{id}
func (s *Server) ShowComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := s.comments.GetByID(id)
	if err != nil {
		sendError(w, "comment not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// CreateComment handles POST /comments
func (s *Server) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		Comment struct {
			Body   string `json:"body"`
			PostID int    `json:"post_id"`
		} `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.posts.GetByID(payload.Comment.PostID); err != nil {
		sendError(w, "post not found", http.StatusUnprocessableEntity)
		return
	}

	comment := &models.Comment{
		Body:      payload.Comment.Body,
		PostID:    payload.Comment.PostID,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := comment.Validate(); err != nil {
		sendError(w, "invalid comment: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.comments.Create(comment); err != nil {
		sendError(w, "failed to create comment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// DeleteComment handles DELETE /comments/{id}
func (s *Server) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := s.comments.GetByID(id)
	if err != nil {
		sendError(w, "comment not found", http.StatusNotFound)
		return
	}
	if comment.UserID != user.ID {
		sendError(w, "you do not own this comment", http.StatusForbidden)
		return
	}

	if err := s.comments.Delete(id); err != nil {
		sendError(w, "failed to delete comment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
