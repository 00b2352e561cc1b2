package users

import (
	"errors"
	"time"
)

// User is the stored profile of a Google-authenticated caller.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	PictureURL  string     `json:"pictureUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// Profile is what GET /me reports.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	PictureURL string `json:"pictureUrl,omitempty"`
	Guest      bool   `json:"guest"`
	IsAdmin    bool   `json:"isAdmin"`
}

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)
