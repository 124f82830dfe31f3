package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	"github.com/edumentor/edumentor-api/internal/repository"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
)

type schoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	FindByID(ctx context.Context, id int64) (*models.School, error)
	List(ctx context.Context) ([]models.School, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, school *models.School) error
}

// CreateSchoolRequest represents payload for registering a school profile.
type CreateSchoolRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
}

// UpdateSchoolRequest carries a partial update; nil fields stay untouched.
type UpdateSchoolRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

// SchoolService orchestrates school profile operations.
type SchoolService struct {
	repo      schoolRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSchoolService constructs a SchoolService.
func NewSchoolService(repo schoolRepository, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new school profile. Emails are unique across schools.
func (s *SchoolService) Create(ctx context.Context, req CreateSchoolRequest) (*models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check school email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "School already exists")
	}

	school := &models.School{
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Phone:       normalizeOptional(req.Phone),
		Location:    normalizeOptional(req.Location),
		Description: normalizeOptional(req.Description),
	}
	if err := s.repo.Create(ctx, school); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "School already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create school")
	}

	s.logger.Info("school registered", zap.Int64("school_id", school.ID))
	return school, nil
}

// Get returns a school profile by id.
func (s *SchoolService) Get(ctx context.Context, id int64) (*models.School, error) {
	school, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}
	return school, nil
}

// List returns every registered school.
func (s *SchoolService) List(ctx context.Context) ([]models.School, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schools")
	}
	return schools, nil
}

// Update applies a partial update: only fields present in the request change.
func (s *SchoolService) Update(ctx context.Context, id int64, req UpdateSchoolRequest) (*models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload")
	}

	school, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	if req.Name != nil {
		school.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		school.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		school.Phone = normalizeOptional(req.Phone)
	}
	if req.Location != nil {
		school.Location = normalizeOptional(req.Location)
	}
	if req.Description != nil {
		school.Description = normalizeOptional(req.Description)
	}

	if err := s.repo.Update(ctx, school); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update school")
	}
	return school, nil
}
