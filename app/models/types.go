package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Identity represents the authenticated user's profile as reported by the API.
type Identity struct {
	ID        int       `json:"id" validate:"required,gte=0"`
	Name      string    `json:"name" validate:"required,min=2,max=50"`
	Email     string    `json:"email" validate:"required,email"`
	CreatedAt time.Time `json:"created_at"`
}

// Post represents a blog post.
type Post struct {
	ID        int       `json:"id" validate:"omitempty,gte=0"`
	Title     string    `json:"title" validate:"required,min=3,max=200"`
	Body      string    `json:"body" validate:"required,min=1"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `json:"id" validate:"omitempty,gte=0"`
	Body      string    `json:"body" validate:"required,min=1,max=1000"`
	PostID    int       `json:"post_id" validate:"required,gte=1"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Registration carries the fields needed to create a new account.
type Registration struct {
	Name                 string `json:"name" validate:"required,min=2,max=50"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}
