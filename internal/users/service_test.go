package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id string, username, email *string, profile *Profile) (*User, error) {
	args := m.Called(ctx, id, username, email, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePreferences(ctx context.Context, id string, prefs Preferences) (*User, error) {
	args := m.Called(ctx, id, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockRepository) ListWeeklyReportSubscribers(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]User), args.Error(1)
}

func TestNewUserDefaults(t *testing.T) {
	user := New("greta", "Greta@Example.com", "hash")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "greta@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, "metric", user.Preferences.Units)
	assert.Equal(t, 50.0, user.Preferences.WeeklyGoal)
	assert.True(t, user.Preferences.Notifications.WeeklyReport)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("greta@example.com"))
	assert.True(t, ValidEmail("a.b+c@sub.example.org"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@domain"))
	assert.False(t, ValidEmail(""))
}

func TestUpdateProfileValidation(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	short := "ab"
	_, err := service.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: &short})
	assert.True(t, apperrors.IsValidation(err))

	bad := "not-an-email"
	_, err = service.UpdateProfile(ctx, "user-1", ProfileUpdate{Email: &bad})
	assert.True(t, apperrors.IsValidation(err))

	mockRepo.AssertNotCalled(t, "UpdateProfile")
}

func TestUpdateProfile(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	username := "greta2"
	updated := &User{ID: "user-1", Username: "greta2"}
	mockRepo.On("UpdateProfile", ctx, "user-1", &username, (*string)(nil), (*Profile)(nil)).Return(updated, nil)

	user, err := service.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: &username})
	assert.NoError(t, err)
	assert.Equal(t, "greta2", user.Username)
	mockRepo.AssertExpectations(t)
}

func TestUpdatePreferencesValidation(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	_, err := service.UpdatePreferences(ctx, "user-1", Preferences{Units: "stone", WeeklyGoal: 10})
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.UpdatePreferences(ctx, "user-1", Preferences{Units: "metric", WeeklyGoal: -1})
	assert.True(t, apperrors.IsValidation(err))

	mockRepo.AssertNotCalled(t, "UpdatePreferences")
}
