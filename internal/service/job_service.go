package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	"github.com/edumentor/edumentor-api/internal/repository"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/export"
)

const jobListCacheKey = "jobs:active"

type jobRepository interface {
	Create(ctx context.Context, job *models.JobPosting) error
	FindByID(ctx context.Context, id int64) (*models.JobPosting, error)
	FindViewByID(ctx context.Context, id int64) (*models.JobView, error)
	ListActive(ctx context.Context) ([]models.JobView, error)
	ListBySchool(ctx context.Context, schoolID int64) ([]models.JobPosting, error)
	Update(ctx context.Context, job *models.JobPosting) error
	Delete(ctx context.Context, id int64) error
	CreateApplication(ctx context.Context, app *models.JobApplication) error
	ExistsApplication(ctx context.Context, jobID, teacherID int64) (bool, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.ApplicationView, error)
	ListApplicationsBySchool(ctx context.Context, schoolID int64) ([]models.ApplicationView, error)
	KnownTeacherUserIDs(ctx context.Context) ([]int64, error)
}

type jobSchoolReader interface {
	FindByID(ctx context.Context, id int64) (*models.School, error)
}

type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateBatch(ctx context.Context, recipientIDs []int64, notifType, content string) error
}

// CreateJobRequest represents payload for publishing a job posting.
type CreateJobRequest struct {
	SchoolID    int64   `json:"school_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,max=255"`
	Subject     string  `json:"subject" validate:"required,max=255"`
	Experience  *string `json:"experience" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Salary      *string `json:"salary" validate:"omitempty,max=255"`
}

// UpdateJobRequest carries a partial update; nil fields stay untouched.
type UpdateJobRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Subject     *string `json:"subject" validate:"omitempty,max=255"`
	Experience  *string `json:"experience" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Salary      *string `json:"salary" validate:"omitempty,max=255"`
	Status      *string `json:"status" validate:"omitempty,oneof=Active Closed Draft"`
}

// ApplyRequest represents a teacher applying to a posting.
type ApplyRequest struct {
	JobID     int64   `json:"job_id" validate:"required,gt=0"`
	TeacherID int64   `json:"teacher_id" validate:"required,gt=0"`
	Message   *string `json:"message"`
}

// JobService orchestrates job postings, applications and the notification
// fan-out that follows them.
type JobService struct {
	repo          jobRepository
	schools       jobSchoolReader
	notifications notificationWriter
	cache         *CacheService
	csvExporter   *export.CSVExporter
	pdfExporter   *export.PDFExporter
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewJobService constructs a JobService.
func NewJobService(repo jobRepository, schools jobSchoolReader, notifications notificationWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		repo:          repo,
		schools:       schools,
		notifications: notifications,
		cache:         cache,
		csvExporter:   export.NewCSVExporter(),
		pdfExporter:   export.NewPDFExporter(),
		validator:     validate,
		logger:        logger,
	}
}

// Create publishes a new active posting for the school, then notifies the
// teachers already known to the platform. Notification failures never fail
// the posting itself.
func (s *JobService) Create(ctx context.Context, req CreateJobRequest) (*models.JobPosting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	if _, err := s.schools.FindByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	job := &models.JobPosting{
		SchoolID:    req.SchoolID,
		Title:       strings.TrimSpace(req.Title),
		Subject:     strings.TrimSpace(req.Subject),
		Experience:  normalizeOptional(req.Experience),
		Description: normalizeOptional(req.Description),
		Salary:      normalizeOptional(req.Salary),
		Status:      models.JobStatusActive,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	s.notifyJobPosted(ctx, job)
	s.invalidateListings(ctx)

	return job, nil
}

// Get returns a posting with the school name resolved.
func (s *JobService) Get(ctx context.Context, id int64) (*models.JobView, error) {
	job, err := s.repo.FindViewByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

// ListActive returns all active postings, newest first, through the cache
// when caching is on.
func (s *JobService) ListActive(ctx context.Context) ([]models.JobView, error) {
	var cached []models.JobView
	if hit, err := s.cache.Get(ctx, jobListCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	jobs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}

	if err := s.cache.Set(ctx, jobListCacheKey, jobs, 0); err != nil {
		s.logger.Warn("job list cache store failed", zap.Error(err))
	}
	return jobs, nil
}

// ListBySchool returns a school's own postings in every status.
func (s *JobService) ListBySchool(ctx context.Context, schoolID int64) ([]models.JobPosting, error) {
	jobs, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list school jobs")
	}
	return jobs, nil
}

// Update applies a partial update to a posting.
func (s *JobService) Update(ctx context.Context, id int64, req UpdateJobRequest) (*models.JobPosting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subject != nil {
		job.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Experience != nil {
		job.Experience = normalizeOptional(req.Experience)
	}
	if req.Description != nil {
		job.Description = normalizeOptional(req.Description)
	}
	if req.Salary != nil {
		job.Salary = normalizeOptional(req.Salary)
	}
	if req.Status != nil {
		job.Status = *req.Status
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}

	s.invalidateListings(ctx)
	return job, nil
}

// Delete removes a posting permanently.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete job")
	}

	s.invalidateListings(ctx)
	return nil
}

// Apply records a teacher's application to a posting. Each teacher applies to
// a posting at most once. The owning school gets notified when its profile is
// linked to a user account.
func (s *JobService) Apply(ctx context.Context, req ApplyRequest) (*models.JobApplication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	job, err := s.repo.FindByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	applied, err := s.repo.ExistsApplication(ctx, req.JobID, req.TeacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check application")
	}
	if applied {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Already applied to this job")
	}

	app := &models.JobApplication{
		JobID:     req.JobID,
		TeacherID: req.TeacherID,
		Status:    models.ApplicationStatusSubmitted,
		Message:   normalizeOptional(req.Message),
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Already applied to this job")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	s.notifyApplicationSubmitted(ctx, job, app)

	return app, nil
}

// ListApplicationsByJob returns the applications received by one posting.
func (s *JobService) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.ApplicationView, error) {
	if _, err := s.repo.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	apps, err := s.repo.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	fillTeacherNames(apps)
	return apps, nil
}

// ListApplicationsBySchool returns applications across all of a school's
// postings.
func (s *JobService) ListApplicationsBySchool(ctx context.Context, schoolID int64) ([]models.ApplicationView, error) {
	apps, err := s.repo.ListApplicationsBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	fillTeacherNames(apps)
	return apps, nil
}

// ExportSchoolApplications renders a school's received applications as CSV or
// PDF. The format defaults to CSV.
func (s *JobService) ExportSchoolApplications(ctx context.Context, schoolID int64, format string) ([]byte, string, error) {
	apps, err := s.ListApplicationsBySchool(ctx, schoolID)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Application ID", "Job ID", "Teacher", "Phone", "Status", "Message", "Applied At"},
	}
	for _, app := range apps {
		phone := ""
		if app.Phone != nil {
			phone = *app.Phone
		}
		message := ""
		if app.Message != nil {
			message = *app.Message
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Application ID": fmt.Sprintf("%d", app.ID),
			"Job ID":         fmt.Sprintf("%d", app.JobID),
			"Teacher":        app.TeacherName,
			"Phone":          phone,
			"Status":         app.Status,
			"Message":        message,
			"Applied At":     app.CreatedAt.Format(time.RFC3339),
		})
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "pdf":
		payload, err := s.pdfExporter.Render(dataset, "Received Applications")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	case "", "csv":
		payload, err := s.csvExporter.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *JobService) notifyJobPosted(ctx context.Context, job *models.JobPosting) {
	if s.notifications == nil {
		return
	}
	recipients, err := s.repo.KnownTeacherUserIDs(ctx)
	if err != nil {
		s.logger.Warn("job posted fan-out skipped", zap.Int64("job_id", job.ID), zap.Error(err))
		return
	}
	if len(recipients) == 0 {
		return
	}
	content := fmt.Sprintf("New job posted: %s", job.Title)
	if err := s.notifications.CreateBatch(ctx, recipients, models.NotificationJobPosted, content); err != nil {
		s.logger.Warn("job posted fan-out failed", zap.Int64("job_id", job.ID), zap.Error(err))
	}
}

func (s *JobService) notifyApplicationSubmitted(ctx context.Context, job *models.JobPosting, app *models.JobApplication) {
	if s.notifications == nil {
		return
	}
	school, err := s.schools.FindByID(ctx, job.SchoolID)
	if err != nil {
		s.logger.Warn("application notification skipped", zap.Int64("job_id", job.ID), zap.Error(err))
		return
	}
	if school.UserID == nil {
		s.logger.Debug("school has no linked user, skipping notification", zap.Int64("school_id", school.ID))
		return
	}
	notification := &models.Notification{
		RecipientUserID: *school.UserID,
		Type:            models.NotificationApplicationSubmitted,
		Content:         fmt.Sprintf("Teacher %d applied for job %d", app.TeacherID, job.ID),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("application notification failed", zap.Int64("job_id", job.ID), zap.Error(err))
	}
}

func (s *JobService) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "jobs:*"); err != nil {
		s.logger.Warn("job cache invalidation failed", zap.Error(err))
	}
}

func fillTeacherNames(apps []models.ApplicationView) {
	for i := range apps {
		if apps[i].UserName != nil && *apps[i].UserName != "" {
			apps[i].TeacherName = *apps[i].UserName
		} else {
			apps[i].TeacherName = fmt.Sprintf("Teacher #%d", apps[i].TeacherID)
		}
	}
}
