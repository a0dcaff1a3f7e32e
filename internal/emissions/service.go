package emissions

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbontrack/carbontrack-backend/internal/observability"
	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// CreateInput carries a validated-in-service record submission.
type CreateInput struct {
	Category   Category
	Activity   string
	Amount     float64
	Unit       string
	Date       *time.Time
	Notes      string
	Passengers int
}

// UpdateInput patches an existing record; nil fields are left untouched.
type UpdateInput struct {
	Category   *Category
	Activity   *string
	Amount     *float64
	Unit       *string
	Date       *time.Time
	Notes      *string
	Passengers *int
}

type Service interface {
	Create(ctx context.Context, userID string, input CreateInput) (*Emission, error)
	Get(ctx context.Context, id, userID string) (*Emission, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]Emission, int64, error)
	Update(ctx context.Context, id, userID string, input UpdateInput) (*Emission, error)
	Delete(ctx context.Context, id, userID string) error
}

type emissionService struct {
	repo Repository
	now  func() time.Time
}

// NewService creates the emissions service.
func NewService(repo Repository) Service {
	return &emissionService{repo: repo, now: time.Now}
}

func (s *emissionService) Create(ctx context.Context, userID string, input CreateInput) (*Emission, error) {
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Activity) == "" {
		return nil, apperrors.Validation("activity is required")
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Unit) == "" {
		return nil, apperrors.Validation("unit is required")
	}
	if len(input.Notes) > MaxNotesLength {
		return nil, apperrors.Validation("notes cannot exceed %d characters", MaxNotesLength)
	}

	now := s.now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}
	if date.After(now) {
		return nil, apperrors.Validation("date cannot be in the future")
	}

	passengers := input.Passengers
	if passengers == 0 {
		passengers = 1
	}

	emission := &Emission{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  input.Category,
		Activity:  input.Activity,
		Amount:    input.Amount,
		Unit:      input.Unit,
		CO2e:      Quantify(input.Category, input.Activity, input.Amount, passengers),
		Date:      date,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, emission); err != nil {
		return nil, err
	}
	observability.RecordEmissionCreated(string(emission.Category))
	return emission, nil
}

func (s *emissionService) Get(ctx context.Context, id, userID string) (*Emission, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *emissionService) List(ctx context.Context, userID string, filter ListFilter) ([]Emission, int64, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update applies the patch, recomputes CO2e when category, activity or amount
// changed, and persists everything in a single document replace. A partially
// applied edit (new category, stale CO2e) is never observable.
func (s *emissionService) Update(ctx context.Context, id, userID string, input UpdateInput) (*Emission, error) {
	emission, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	recompute := false
	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		emission.Category = *input.Category
		recompute = true
	}
	if input.Activity != nil {
		if strings.TrimSpace(*input.Activity) == "" {
			return nil, apperrors.Validation("activity is required")
		}
		emission.Activity = *input.Activity
		recompute = true
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		emission.Amount = *input.Amount
		recompute = true
	}
	if input.Unit != nil {
		if strings.TrimSpace(*input.Unit) == "" {
			return nil, apperrors.Validation("unit is required")
		}
		emission.Unit = *input.Unit
	}
	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, apperrors.Validation("notes cannot exceed %d characters", MaxNotesLength)
		}
		emission.Notes = *input.Notes
	}
	if input.Date != nil {
		if input.Date.After(s.now()) {
			return nil, apperrors.Validation("date cannot be in the future")
		}
		emission.Date = *input.Date
	}

	if recompute || input.Passengers != nil {
		passengers := 1
		if input.Passengers != nil {
			passengers = *input.Passengers
		}
		emission.CO2e = Quantify(emission.Category, emission.Activity, emission.Amount, passengers)
	}
	emission.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, emission); err != nil {
		return nil, err
	}
	return emission, nil
}

func (s *emissionService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func validateCategory(category Category) error {
	if category == "" {
		return apperrors.Validation("category is required")
	}
	if !ValidCategory(category) {
		return apperrors.Validation("category must be transportation, energy, diet, shopping, or waste")
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return apperrors.Validation("amount must be a finite number")
	}
	if amount <= 0 {
		return apperrors.Validation("amount must be a positive number")
	}
	return nil
}
