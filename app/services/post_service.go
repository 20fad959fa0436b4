package services

import (
	"context"
	"fmt"

	"blogclient/app/api"
	"blogclient/app/models"
)

// PostService exposes the post endpoints of the remote API
type PostService struct {
	client *api.Client
}

// NewPostService creates a new PostService
func NewPostService(client *api.Client) *PostService {
	return &PostService{client: client}
}

type postPayload struct {
	Post struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	} `json:"post"`
}

// List retrieves all posts.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := s.client.Get(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get retrieves a single post by ID.
func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := s.client.Get(ctx, fmt.Sprintf("/posts/%d", id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create creates a new post and returns the server's copy, which carries the
// assigned ID and timestamps.
func (s *PostService) Create(ctx context.Context, title, body string) (*models.Post, error) {
	draft := &models.Post{Title: title, Body: body}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	var payload postPayload
	payload.Post.Title = title
	payload.Post.Body = body

	var post models.Post
	if err := s.client.Post(ctx, "/posts", payload, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update updates an existing post and returns the server's copy.
func (s *PostService) Update(ctx context.Context, id int, title, body string) (*models.Post, error) {
	draft := &models.Post{ID: id, Title: title, Body: body}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	var payload postPayload
	payload.Post.Title = title
	payload.Post.Body = body

	var post models.Post
	if err := s.client.Patch(ctx, fmt.Sprintf("/posts/%d", id), payload, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete deletes a post by ID.
func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/posts/%d", id))
}

// Mine retrieves the posts authored by the current identity.
func (s *PostService) Mine(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := s.client.Get(ctx, "/my_posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
