package services

import (
	"context"
	"fmt"

	"blogclient/app/api"
	"blogclient/app/models"
)

// CommentService exposes the comment endpoints of the remote API
type CommentService struct {
	client *api.Client
}

// NewCommentService creates a new CommentService
func NewCommentService(client *api.Client) *CommentService {
	return &CommentService{client: client}
}

// List retrieves all comments.
func (s *CommentService) List(ctx context.Context) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := s.client.Get(ctx, "/comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListForPost retrieves the comments attached to one post.
func (s *CommentService) ListForPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := s.client.Get(ctx, fmt.Sprintf("/comments?post_id=%d", postID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Get retrieves a single comment by ID.
func (s *CommentService) Get(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	if err := s.client.Get(ctx, fmt.Sprintf("/comments/%d", id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create creates a new comment on a post and returns the server's copy.
func (s *CommentService) Create(ctx context.Context, postID int, body string) (*models.Comment, error) {
	draft := &models.Comment{PostID: postID, Body: body}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	payload := struct {
		Comment struct {
			Body   string `json:"body"`
			PostID int    `json:"post_id"`
		} `json:"comment"`
	}{}
	payload.Comment.Body = body
	payload.Comment.PostID = postID

	var comment models.Comment
	if err := s.client.Post(ctx, "/comments", payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete deletes a comment by ID.
func (s *CommentService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/comments/%d", id))
}
