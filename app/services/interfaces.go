package services

import (
	"context"

	"blogclient/app/models"
)

// AuthAPI defines the authentication operations against the remote API.
type AuthAPI interface {
	Register(ctx context.Context, reg models.Registration) (*models.Identity, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.Identity, error)
}

// PostAPI defines the post operations against the remote API.
type PostAPI interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id int) (*models.Post, error)
	Create(ctx context.Context, title, body string) (*models.Post, error)
	Update(ctx context.Context, id int, title, body string) (*models.Post, error)
	Delete(ctx context.Context, id int) error
	Mine(ctx context.Context) ([]*models.Post, error)
}

// CommentAPI defines the comment operations against the remote API.
type CommentAPI interface {
	List(ctx context.Context) ([]*models.Comment, error)
	ListForPost(ctx context.Context, postID int) ([]*models.Comment, error)
	Get(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, postID int, body string) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
}
