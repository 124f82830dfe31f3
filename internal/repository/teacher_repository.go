package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumentor/edumentor-api/internal/models"
)

// TeacherRepository manages persistence for teacher profiles.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher profile and assigns the generated id.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now().UTC()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now

	const query = `INSERT INTO teachers (user_id, subject, bio, location, phone, experience_years, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		teacher.UserID, teacher.Subject, teacher.Bio, teacher.Location, teacher.Phone, teacher.ExperienceYears,
		teacher.CreatedAt, teacher.UpdatedAt,
	).Scan(&teacher.ID); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// FindByID fetches a teacher profile by id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	const query = `SELECT id, user_id, subject, bio, location, phone, experience_years, created_at, updated_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByUserID fetches the teacher profile linked to a user account.
func (r *TeacherRepository) FindByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	const query = `SELECT id, user_id, subject, bio, location, phone, experience_years, created_at, updated_at FROM teachers WHERE user_id = $1 LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, userID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ListWithUsers returns all teacher profiles joined with their linked user's
// name and activation status. Unlinked profiles carry NULLs.
func (r *TeacherRepository) ListWithUsers(ctx context.Context) ([]models.TeacherWithUser, error) {
	const query = `SELECT t.id, t.user_id, t.subject, t.bio, t.location, t.phone, t.experience_years, t.created_at, t.updated_at,
			u.name AS user_name, u.active AS user_active
		FROM teachers t
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.id`
	var teachers []models.TeacherWithUser
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Update rewrites the mutable fields of a teacher profile.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET user_id = :user_id, subject = :subject, bio = :bio, location = :location,
		phone = :phone, experience_years = :experience_years, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// LinkedUserID resolves the user account linked to a teacher. Returns
// sql.ErrNoRows when the teacher is absent, and a nil pointer when the
// teacher has no user link.
func (r *TeacherRepository) LinkedUserID(ctx context.Context, teacherID int64) (*int64, error) {
	const query = `SELECT user_id FROM teachers WHERE id = $1`
	var userID *int64
	if err := r.db.GetContext(ctx, &userID, query, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("linked user for teacher: %w", err)
	}
	return userID, nil
}
