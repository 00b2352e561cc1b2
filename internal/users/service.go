package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Identity is the caller as seen by the auth middleware.
type Identity struct {
	ID      string
	Email   string
	Name    string
	Picture string
	Guest   bool
}

type Service struct {
	Repo       Repo
	AdminEmail string
}

func NewService(repo Repo, adminEmail string) *Service {
	return &Service{Repo: repo, AdminEmail: strings.TrimSpace(adminEmail)}
}

// UpsertFromAuth records the profile Google returned at login.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	user.ID = strings.TrimSpace(user.ID)
	user.Email = strings.TrimSpace(user.Email)
	if user.ID == "" || user.Email == "" {
		return fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// IsAdmin reports whether email is the configured admin address. Guests never carry one.
func (s *Service) IsAdmin(email string) bool {
	if s == nil || s.AdminEmail == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), s.AdminEmail)
}

// Profile merges the stored profile over the token claims.
// A signed-in caller whose row is missing still gets a profile built from the token.
func (s *Service) Profile(ctx context.Context, id Identity) (Profile, error) {
	p := Profile{
		ID:         id.ID,
		Email:      id.Email,
		FullName:   id.Name,
		PictureURL: id.Picture,
		Guest:      id.Guest,
	}
	if id.Guest {
		return p, nil
	}
	user, err := s.GetByID(ctx, id.ID)
	switch {
	case err == nil:
		p.Email = user.Email
		if user.FullName != "" {
			p.FullName = user.FullName
		}
		if user.PictureURL != "" {
			p.PictureURL = user.PictureURL
		}
	case !errors.Is(err, ErrNotFound):
		return Profile{}, err
	}
	p.IsAdmin = s.IsAdmin(p.Email)
	return p, nil
}
