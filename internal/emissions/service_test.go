package emissions

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

func (m *MockRepository) Create(ctx context.Context, emission *Emission) error {
	args := m.Called(ctx, emission)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id, userID string) (*Emission, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Emission), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID string, filter ListFilter) ([]Emission, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]Emission), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, emission *Emission) error {
	args := m.Called(ctx, emission)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRepository) FindInWindow(ctx context.Context, userID string, start, end time.Time) ([]Emission, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).([]Emission), args.Error(1)
}

func (m *MockRepository) FindRecent(ctx context.Context, userID string, since time.Time, limit int64) ([]Emission, error) {
	args := m.Called(ctx, userID, since, limit)
	return args.Get(0).([]Emission), args.Error(1)
}

func newTestService(repo Repository, now time.Time) Service {
	return &emissionService{repo: repo, now: func() time.Time { return now }}
}

func TestCreateComputesCO2e(t *testing.T) {
	mockRepo := new(MockRepository)
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	service := newTestService(mockRepo, now)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*emissions.Emission")).Return(nil)

	emission, err := service.Create(ctx, "user-1", CreateInput{
		Category: CategoryTransportation,
		Activity: "car",
		Amount:   50,
		Unit:     "km",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, emission.ID)
	assert.Equal(t, "user-1", emission.UserID)
	assert.InDelta(t, 10.5, emission.CO2e, 1e-9)
	assert.Equal(t, now, emission.Date)
	assert.Equal(t, now, emission.CreatedAt)
	mockRepo.AssertExpectations(t)
}

func TestCreateDividesByPassengers(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, time.Now())

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*emissions.Emission")).Return(nil)

	emission, err := service.Create(ctx, "user-1", CreateInput{
		Category:   CategoryTransportation,
		Activity:   "car",
		Amount:     100,
		Unit:       "km",
		Passengers: 4,
	})

	assert.NoError(t, err)
	assert.InDelta(t, 5.25, emission.CO2e, 1e-9)
}

func TestCreateValidation(t *testing.T) {
	mockRepo := new(MockRepository)
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	service := newTestService(mockRepo, now)
	ctx := context.Background()

	future := now.Add(time.Hour)
	longNotes := make([]byte, MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing category", CreateInput{Activity: "car", Amount: 10, Unit: "km"}},
		{"invalid category", CreateInput{Category: "flying", Activity: "car", Amount: 10, Unit: "km"}},
		{"missing activity", CreateInput{Category: CategoryTransportation, Amount: 10, Unit: "km"}},
		{"zero amount", CreateInput{Category: CategoryTransportation, Activity: "car", Amount: 0, Unit: "km"}},
		{"negative amount", CreateInput{Category: CategoryTransportation, Activity: "car", Amount: -5, Unit: "km"}},
		{"missing unit", CreateInput{Category: CategoryTransportation, Activity: "car", Amount: 10}},
		{"future date", CreateInput{Category: CategoryTransportation, Activity: "car", Amount: 10, Unit: "km", Date: &future}},
		{"notes too long", CreateInput{Category: CategoryTransportation, Activity: "car", Amount: 10, Unit: "km", Notes: string(longNotes)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, "user-1", tt.input)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
	mockRepo.AssertNotCalled(t, "Create")
}

func TestUpdateRecomputesCO2e(t *testing.T) {
	mockRepo := new(MockRepository)
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	service := newTestService(mockRepo, now)
	ctx := context.Background()

	existing := &Emission{
		ID:       "em-1",
		UserID:   "user-1",
		Category: CategoryTransportation,
		Activity: "car",
		Amount:   50,
		Unit:     "km",
		CO2e:     10.5,
		Date:     now.AddDate(0, 0, -1),
	}
	mockRepo.On("FindByID", ctx, "em-1", "user-1").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*emissions.Emission")).Return(nil)

	amount := 100.0
	updated, err := service.Update(ctx, "em-1", "user-1", UpdateInput{Amount: &amount})

	assert.NoError(t, err)
	assert.InDelta(t, 21.0, updated.CO2e, 1e-9)
	assert.Equal(t, now, updated.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestUpdateNotesOnlyKeepsCO2e(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, time.Now())
	ctx := context.Background()

	existing := &Emission{
		ID:       "em-1",
		UserID:   "user-1",
		Category: CategoryDiet,
		Activity: "beef",
		Amount:   2,
		Unit:     "kg",
		CO2e:     54.0,
	}
	mockRepo.On("FindByID", ctx, "em-1", "user-1").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*emissions.Emission")).Return(nil)

	notes := "weekly groceries"
	updated, err := service.Update(ctx, "em-1", "user-1", UpdateInput{Notes: &notes})

	assert.NoError(t, err)
	assert.InDelta(t, 54.0, updated.CO2e, 1e-9)
	assert.Equal(t, "weekly groceries", updated.Notes)
}

func TestUpdateMissingRecord(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, time.Now())
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, "em-x", "user-1").Return(nil, apperrors.ErrNotFound)

	notes := "nope"
	_, err := service.Update(ctx, "em-x", "user-1", UpdateInput{Notes: &notes})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteForwardsNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, time.Now())
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "em-x", "user-1").Return(apperrors.ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "em-x", "user-1"), apperrors.ErrNotFound)
}
