package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumentor/edumentor-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Jane", "jane@example.com", "hash", models.RoleTeacher, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user := &models.User{Name: "Jane", Email: "jane@example.com", PasswordHash: "hash", Role: models.RoleTeacher}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Name: "Jane", Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "active", "created_at", "updated_at"}).
		AddRow(int64(7), "Jane", "jane@example.com", "hash", "teacher", true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, role, active, created_at, updated_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err := repo.ExistsByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryActivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET active = TRUE, updated_at = $2 WHERE id = $1")).
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Activate(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
