package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumentor/edumentor-api/internal/models"
)

// JobRepository manages persistence for job postings and applications.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job posting and assigns the generated id.
func (r *JobRepository) Create(ctx context.Context, job *models.JobPosting) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	const query = `INSERT INTO job_postings (school_id, title, subject, experience, description, salary, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		job.SchoolID, job.Title, job.Subject, job.Experience, job.Description, job.Salary, job.Status,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID); err != nil {
		return fmt.Errorf("create job posting: %w", err)
	}
	return nil
}

// FindByID fetches a posting by id.
func (r *JobRepository) FindByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	const query = `SELECT id, school_id, title, subject, experience, description, salary, status, created_at, updated_at FROM job_postings WHERE id = $1`
	var job models.JobPosting
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindViewByID fetches a posting with the school name resolved. A missing
// school row degrades to the fallback label instead of failing the read.
func (r *JobRepository) FindViewByID(ctx context.Context, id int64) (*models.JobView, error) {
	const query = `SELECT j.id, j.school_id, j.title, j.subject, j.experience, j.description, j.salary, j.status, j.created_at, j.updated_at,
			COALESCE(s.name, 'Unknown School') AS school_name
		FROM job_postings j
		LEFT JOIN schools s ON s.id = j.school_id
		WHERE j.id = $1`
	var job models.JobView
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListActive returns all active postings with school names, newest first.
func (r *JobRepository) ListActive(ctx context.Context) ([]models.JobView, error) {
	const query = `SELECT j.id, j.school_id, j.title, j.subject, j.experience, j.description, j.salary, j.status, j.created_at, j.updated_at,
			COALESCE(s.name, 'Unknown School') AS school_name
		FROM job_postings j
		LEFT JOIN schools s ON s.id = j.school_id
		WHERE j.status = $1
		ORDER BY j.created_at DESC`
	var jobs []models.JobView
	if err := r.db.SelectContext(ctx, &jobs, query, models.JobStatusActive); err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	return jobs, nil
}

// ListBySchool returns every posting owned by a school, any status.
func (r *JobRepository) ListBySchool(ctx context.Context, schoolID int64) ([]models.JobPosting, error) {
	const query = `SELECT id, school_id, title, subject, experience, description, salary, status, created_at, updated_at
		FROM job_postings WHERE school_id = $1 ORDER BY created_at DESC`
	var jobs []models.JobPosting
	if err := r.db.SelectContext(ctx, &jobs, query, schoolID); err != nil {
		return nil, fmt.Errorf("list school jobs: %w", err)
	}
	return jobs, nil
}

// Update rewrites the mutable fields of a posting.
func (r *JobRepository) Update(ctx context.Context, job *models.JobPosting) error {
	job.UpdatedAt = time.Now().UTC()
	const query = `UPDATE job_postings SET title = :title, subject = :subject, experience = :experience,
		description = :description, salary = :salary, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("update job posting: %w", err)
	}
	return nil
}

// Delete removes a posting permanently.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM job_postings WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	return nil
}

// CreateApplication inserts a new application. Duplicate (job, teacher)
// pairs surface as ErrDuplicate via the unique constraint.
func (r *JobRepository) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	app.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO job_applications (job_id, teacher_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		app.JobID, app.TeacherID, app.Status, app.Message, app.CreatedAt,
	).Scan(&app.ID); err != nil {
		if dup := translateUnique(err); dup == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// ExistsApplication checks whether the teacher already applied to the job.
func (r *JobRepository) ExistsApplication(ctx context.Context, jobID, teacherID int64) (bool, error) {
	const query = `SELECT 1 FROM job_applications WHERE job_id = $1 AND teacher_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, jobID, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check application: %w", err)
	}
	return true, nil
}

const applicationViewColumns = `a.id, a.job_id, a.teacher_id, a.status, a.message, a.created_at,
			u.name AS user_name, t.phone AS teacher_phone`

// ListApplicationsByJob returns the applications for one posting, with the
// teacher's name and phone resolved where the links exist.
func (r *JobRepository) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.ApplicationView, error) {
	query := `SELECT ` + applicationViewColumns + `
		FROM job_applications a
		LEFT JOIN teachers t ON t.id = a.teacher_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`
	var apps []models.ApplicationView
	if err := r.db.SelectContext(ctx, &apps, query, jobID); err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	return apps, nil
}

// ListApplicationsBySchool returns the applications across all of a school's
// postings.
func (r *JobRepository) ListApplicationsBySchool(ctx context.Context, schoolID int64) ([]models.ApplicationView, error) {
	query := `SELECT ` + applicationViewColumns + `
		FROM job_applications a
		JOIN job_postings j ON j.id = a.job_id
		LEFT JOIN teachers t ON t.id = a.teacher_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE j.school_id = $1
		ORDER BY a.created_at DESC`
	var apps []models.ApplicationView
	if err := r.db.SelectContext(ctx, &apps, query, schoolID); err != nil {
		return nil, fmt.Errorf("list applications by school: %w", err)
	}
	return apps, nil
}

// KnownTeacherUserIDs resolves the linked user ids of every teacher that has
// ever applied to any posting. Teachers without a user link are skipped.
func (r *JobRepository) KnownTeacherUserIDs(ctx context.Context) ([]int64, error) {
	const query = `SELECT DISTINCT t.user_id
		FROM job_applications a
		JOIN teachers t ON t.id = a.teacher_id
		WHERE t.user_id IS NOT NULL`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("known teacher users: %w", err)
	}
	return ids, nil
}
