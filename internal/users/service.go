package users

import (
	"context"

	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// ProfileUpdate patches account identity and profile fields; nil fields are
// left untouched.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Profile  *Profile
}

type Service interface {
	Get(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	UpdatePreferences(ctx context.Context, id string, prefs Preferences) (*User, error)
}

type userService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &userService{repo: repo}
}

func (s *userService) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	if update.Username != nil && len(*update.Username) < 3 {
		return nil, apperrors.Validation("username must be at least 3 characters")
	}
	if update.Email != nil && !ValidEmail(*update.Email) {
		return nil, apperrors.Validation("please provide a valid email")
	}
	return s.repo.UpdateProfile(ctx, id, update.Username, update.Email, update.Profile)
}

func (s *userService) UpdatePreferences(ctx context.Context, id string, prefs Preferences) (*User, error) {
	if prefs.Units != "metric" && prefs.Units != "imperial" {
		return nil, apperrors.Validation("units must be metric or imperial")
	}
	if prefs.WeeklyGoal < 0 {
		return nil, apperrors.Validation("weekly goal must be positive")
	}
	return s.repo.UpdatePreferences(ctx, id, prefs)
}
