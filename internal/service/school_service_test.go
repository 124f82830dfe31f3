package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
)

type mockSchoolRepo struct {
	schools map[int64]*models.School
	byEmail map[string]bool
}

func (m *mockSchoolRepo) Create(ctx context.Context, school *models.School) error {
	if m.schools == nil {
		m.schools = make(map[int64]*models.School)
	}
	school.ID = int64(len(m.schools) + 1)
	m.schools[school.ID] = school
	return nil
}

func (m *mockSchoolRepo) FindByID(ctx context.Context, id int64) (*models.School, error) {
	school, ok := m.schools[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *school
	return &copied, nil
}

func (m *mockSchoolRepo) List(ctx context.Context) ([]models.School, error) {
	var out []models.School
	for _, school := range m.schools {
		out = append(out, *school)
	}
	return out, nil
}

func (m *mockSchoolRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.byEmail[email], nil
}

func (m *mockSchoolRepo) Update(ctx context.Context, school *models.School) error {
	m.schools[school.ID] = school
	return nil
}

func newSchoolService(repo *mockSchoolRepo) *SchoolService {
	return NewSchoolService(repo, nil, zap.NewNop())
}

func TestSchoolServiceCreate(t *testing.T) {
	repo := &mockSchoolRepo{}
	svc := newSchoolService(repo)

	school, err := svc.Create(context.Background(), CreateSchoolRequest{
		Name:     "  Hilltop Academy ",
		Email:    "Admin@Hilltop.ac.UG",
		Phone:    strPtr("+256700000000"),
		Location: strPtr("Kampala"),
		UserID:   int64Ptr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "Hilltop Academy", school.Name)
	assert.Equal(t, "admin@hilltop.ac.ug", school.Email)
	require.NotNil(t, school.UserID)
	assert.Equal(t, int64(20), *school.UserID)
}

func TestSchoolServiceCreateDuplicateEmail(t *testing.T) {
	repo := &mockSchoolRepo{byEmail: map[string]bool{"admin@hilltop.ac.ug": true}}
	svc := newSchoolService(repo)

	_, err := svc.Create(context.Background(), CreateSchoolRequest{
		Name:  "Hilltop Academy",
		Email: "admin@hilltop.ac.ug",
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "School already exists", appErr.Message)
}

func TestSchoolServiceCreateInvalidEmail(t *testing.T) {
	svc := newSchoolService(&mockSchoolRepo{})

	_, err := svc.Create(context.Background(), CreateSchoolRequest{Name: "Hilltop", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSchoolServiceGetNotFound(t *testing.T) {
	svc := newSchoolService(&mockSchoolRepo{})

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSchoolServiceUpdatePartial(t *testing.T) {
	repo := &mockSchoolRepo{schools: map[int64]*models.School{
		3: {ID: 3, Name: "Hilltop Academy", Email: "admin@hilltop.ac.ug", Location: strPtr("Kampala")},
	}}
	svc := newSchoolService(repo)

	school, err := svc.Update(context.Background(), 3, UpdateSchoolRequest{
		Phone: strPtr("+256711111111"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Hilltop Academy", school.Name)
	require.NotNil(t, school.Location)
	assert.Equal(t, "Kampala", *school.Location)
	require.NotNil(t, school.Phone)
	assert.Equal(t, "+256711111111", *school.Phone)
}

func TestSchoolServiceUpdateNotFound(t *testing.T) {
	svc := newSchoolService(&mockSchoolRepo{})

	_, err := svc.Update(context.Background(), 42, UpdateSchoolRequest{Name: strPtr("Renamed")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
