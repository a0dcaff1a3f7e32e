package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carbontrack/carbontrack-backend/internal/analytics"
	"carbontrack/carbontrack-backend/internal/emissions"
	"carbontrack/carbontrack-backend/internal/users"
	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// MockRecordSource is a mock implementation of the analytics.RecordSource interface
type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]emissions.Emission, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).([]emissions.Emission), args.Error(1)
}

func (m *MockRecordSource) FindRecent(ctx context.Context, userID string, since time.Time, limit int64) ([]emissions.Emission, error) {
	args := m.Called(ctx, userID, since, limit)
	return args.Get(0).([]emissions.Emission), args.Error(1)
}

// MockUserRepository is a mock implementation of the users.Repository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, username, email *string, profile *users.Profile) (*users.User, error) {
	args := m.Called(ctx, id, username, email, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id string, prefs users.Preferences) (*users.User, error) {
	args := m.Called(ctx, id, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) ListWeeklyReportSubscribers(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]users.User), args.Error(1)
}

// MockReportRepository is a mock implementation of the Repository interface
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveWeeklyReport(ctx context.Context, report *WeeklyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListWeeklyReports(ctx context.Context, userID string, limit int64) ([]WeeklyReport, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]WeeklyReport), args.Error(1)
}

func TestBuildReport(t *testing.T) {
	source := new(MockRecordSource)
	userRepo := new(MockUserRepository)
	reportRepo := new(MockReportRepository)
	engine := analytics.NewEngine(source)
	service := NewService(engine, source, userRepo, reportRepo)
	ctx := context.Background()

	records := []emissions.Emission{
		{Category: emissions.CategoryDiet, Activity: "beef", CO2e: 54.0, Date: time.Now().AddDate(0, 0, -2)},
	}
	source.On("FindInWindow", ctx, "user-1", mock.Anything, mock.Anything).Return(records, nil)
	userRepo.On("FindByID", ctx, "user-1").Return(&users.User{ID: "user-1", Username: "greta"}, nil)

	data, err := service.BuildReport(ctx, "user-1", analytics.PeriodMonth)

	assert.NoError(t, err)
	assert.Equal(t, "greta", data.Username)
	assert.Equal(t, "month", data.Period)
	assert.Len(t, data.Records, 1)
	assert.Equal(t, 54.0, data.Total)
	assert.Len(t, data.Summary, 1)
}

func TestBuildReportFallsBackToUserID(t *testing.T) {
	source := new(MockRecordSource)
	userRepo := new(MockUserRepository)
	engine := analytics.NewEngine(source)
	service := NewService(engine, source, userRepo, new(MockReportRepository))
	ctx := context.Background()

	source.On("FindInWindow", ctx, "user-1", mock.Anything, mock.Anything).Return([]emissions.Emission{}, nil)
	userRepo.On("FindByID", ctx, "user-1").Return(nil, apperrors.ErrNotFound)

	data, err := service.BuildReport(ctx, "user-1", analytics.PeriodWeek)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", data.Username)
}

func TestGenerateWeeklyReports(t *testing.T) {
	source := new(MockRecordSource)
	userRepo := new(MockUserRepository)
	reportRepo := new(MockReportRepository)
	engine := analytics.NewEngine(source)
	service := NewService(engine, source, userRepo, reportRepo)
	ctx := context.Background()

	subscribers := []users.User{{ID: "user-1"}, {ID: "user-2"}}
	userRepo.On("ListWeeklyReportSubscribers", ctx).Return(subscribers, nil)
	source.On("FindInWindow", ctx, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Return([]emissions.Emission{
			{Category: emissions.CategoryEnergy, Activity: "electricity", CO2e: 5.0, Date: time.Now().AddDate(0, 0, -1)},
		}, nil)
	reportRepo.On("SaveWeeklyReport", ctx, mock.AnythingOfType("*reports.WeeklyReport")).Return(nil)

	generated, err := service.GenerateWeeklyReports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, generated)
	reportRepo.AssertNumberOfCalls(t, "SaveWeeklyReport", 2)
}

func TestGenerateWeeklyReportsNoSubscribers(t *testing.T) {
	source := new(MockRecordSource)
	userRepo := new(MockUserRepository)
	reportRepo := new(MockReportRepository)
	engine := analytics.NewEngine(source)
	service := NewService(engine, source, userRepo, reportRepo)
	ctx := context.Background()

	userRepo.On("ListWeeklyReportSubscribers", ctx).Return([]users.User{}, nil)

	generated, err := service.GenerateWeeklyReports(ctx)
	assert.NoError(t, err)
	assert.Zero(t, generated)
	reportRepo.AssertNotCalled(t, "SaveWeeklyReport")
}
