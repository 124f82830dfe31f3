package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumentor/edumentor-api/internal/models"
)

// SchoolRepository manages persistence for school profiles.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository constructs a SchoolRepository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// Create inserts a new school and assigns the generated id.
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	now := time.Now().UTC()
	school.CreatedAt = now
	school.UpdatedAt = now

	const query = `INSERT INTO schools (user_id, name, email, phone, location, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		school.UserID, school.Name, school.Email, school.Phone, school.Location, school.Description,
		school.CreatedAt, school.UpdatedAt,
	).Scan(&school.ID); err != nil {
		if dup := translateUnique(err); dup == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

// FindByID fetches a school by id.
func (r *SchoolRepository) FindByID(ctx context.Context, id int64) (*models.School, error) {
	const query = `SELECT id, user_id, name, email, phone, location, description, created_at, updated_at FROM schools WHERE id = $1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query, id); err != nil {
		return nil, err
	}
	return &school, nil
}

// List returns every registered school.
func (r *SchoolRepository) List(ctx context.Context) ([]models.School, error) {
	const query = `SELECT id, user_id, name, email, phone, location, description, created_at, updated_at FROM schools ORDER BY id`
	var schools []models.School
	if err := r.db.SelectContext(ctx, &schools, query); err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

// ExistsByEmail checks whether a school already registered the email.
func (r *SchoolRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM schools WHERE email = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check school email: %w", err)
	}
	return true, nil
}

// Update rewrites the mutable fields of a school.
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	school.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schools SET user_id = :user_id, name = :name, email = :email, phone = :phone,
		location = :location, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, school); err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	return nil
}
