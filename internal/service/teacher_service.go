package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
)

type teacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	FindByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	ListWithUsers(ctx context.Context) ([]models.TeacherWithUser, error)
	Update(ctx context.Context, teacher *models.Teacher) error
}

// CreateTeacherRequest represents payload for creating teacher profiles.
type CreateTeacherRequest struct {
	Subject         string  `json:"subject" validate:"required,max=255"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location" validate:"omitempty,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0"`
	UserID          *int64  `json:"user_id"`
}

// UpdateTeacherRequest carries a partial update; nil fields stay untouched.
type UpdateTeacherRequest struct {
	Subject         *string `json:"subject" validate:"omitempty,max=255"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location" validate:"omitempty,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0"`
}

// TeacherService orchestrates teacher profile operations.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new teacher profile.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	teacher := &models.Teacher{
		UserID:          req.UserID,
		Subject:         strings.TrimSpace(req.Subject),
		Bio:             normalizeOptional(req.Bio),
		Location:        normalizeOptional(req.Location),
		Phone:           normalizeOptional(req.Phone),
		ExperienceYears: req.ExperienceYears,
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	return teacher, nil
}

// Get returns a teacher profile by id.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// GetByUser returns the teacher profile linked to a user account.
func (s *TeacherService) GetByUser(ctx context.Context, userID int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found for user")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// List returns all teacher profiles as public listings. Display names fall
// back to "Teacher #<id>" when the profile has no linked user.
func (s *TeacherService) List(ctx context.Context) ([]models.TeacherListing, error) {
	teachers, err := s.repo.ListWithUsers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}

	listings := make([]models.TeacherListing, 0, len(teachers))
	for _, t := range teachers {
		name := fmt.Sprintf("Teacher #%d", t.ID)
		if t.UserName != nil && *t.UserName != "" {
			name = *t.UserName
		}
		verified := t.UserActive != nil && *t.UserActive

		listings = append(listings, models.TeacherListing{
			ID:         t.ID,
			Name:       name,
			Subject:    t.Subject,
			Bio:        t.Bio,
			Location:   t.Location,
			Phone:      t.Phone,
			Experience: t.ExperienceYears,
			Verified:   verified,
		})
	}
	return listings, nil
}

// Update applies a partial update: only fields present in the request change.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	if req.Subject != nil {
		teacher.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Bio != nil {
		teacher.Bio = normalizeOptional(req.Bio)
	}
	if req.Location != nil {
		teacher.Location = normalizeOptional(req.Location)
	}
	if req.Phone != nil {
		teacher.Phone = normalizeOptional(req.Phone)
	}
	if req.ExperienceYears != nil {
		teacher.ExperienceYears = req.ExperienceYears
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}
	return teacher, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
