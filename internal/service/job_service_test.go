package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
)

type mockJobRepo struct {
	jobs            map[int64]*models.JobPosting
	views           []models.JobView
	applications    []models.JobApplication
	applicationList []models.ApplicationView
	existing        bool
	knownUserIDs    []int64
	knownUserErr    error
	deleted         []int64
}

func (m *mockJobRepo) Create(ctx context.Context, job *models.JobPosting) error {
	job.ID = int64(len(m.jobs) + 1)
	if m.jobs == nil {
		m.jobs = make(map[int64]*models.JobPosting)
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) FindByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (m *mockJobRepo) FindViewByID(ctx context.Context, id int64) (*models.JobView, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.JobView{JobPosting: *job, SchoolName: "Test School"}, nil
}

func (m *mockJobRepo) ListActive(ctx context.Context) ([]models.JobView, error) {
	return m.views, nil
}

func (m *mockJobRepo) ListBySchool(ctx context.Context, schoolID int64) ([]models.JobPosting, error) {
	var out []models.JobPosting
	for _, job := range m.jobs {
		if job.SchoolID == schoolID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockJobRepo) Update(ctx context.Context, job *models.JobPosting) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	app.ID = int64(len(m.applications) + 1)
	m.applications = append(m.applications, *app)
	return nil
}

func (m *mockJobRepo) ExistsApplication(ctx context.Context, jobID, teacherID int64) (bool, error) {
	return m.existing, nil
}

func (m *mockJobRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.ApplicationView, error) {
	return m.applicationList, nil
}

func (m *mockJobRepo) ListApplicationsBySchool(ctx context.Context, schoolID int64) ([]models.ApplicationView, error) {
	return m.applicationList, nil
}

func (m *mockJobRepo) KnownTeacherUserIDs(ctx context.Context) ([]int64, error) {
	return m.knownUserIDs, m.knownUserErr
}

type mockSchoolReader struct {
	schools map[int64]*models.School
}

func (m *mockSchoolReader) FindByID(ctx context.Context, id int64) (*models.School, error) {
	school, ok := m.schools[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return school, nil
}

type mockNotificationWriter struct {
	single    []*models.Notification
	batchIDs  []int64
	batchType string
	createErr error
	batchErr  error
}

func (m *mockNotificationWriter) Create(ctx context.Context, n *models.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.single = append(m.single, n)
	return nil
}

func (m *mockNotificationWriter) CreateBatch(ctx context.Context, recipientIDs []int64, notifType, content string) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	m.batchIDs = append(m.batchIDs, recipientIDs...)
	m.batchType = notifType
	return nil
}

func newJobService(repo *mockJobRepo, schools *mockSchoolReader, notifications *mockNotificationWriter) *JobService {
	return NewJobService(repo, schools, notifications, nil, validator.New(), zap.NewNop())
}

func TestJobServiceCreateNotifiesKnownTeachers(t *testing.T) {
	repo := &mockJobRepo{knownUserIDs: []int64{11, 12}}
	schools := &mockSchoolReader{schools: map[int64]*models.School{3: {ID: 3, Name: "Hilltop"}}}
	notifications := &mockNotificationWriter{}
	svc := newJobService(repo, schools, notifications)

	job, err := svc.Create(context.Background(), CreateJobRequest{
		SchoolID: 3,
		Title:    "Math Teacher",
		Subject:  "Mathematics",
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, []int64{11, 12}, notifications.batchIDs)
	assert.Equal(t, models.NotificationJobPosted, notifications.batchType)
}

func TestJobServiceCreateSurvivesNotificationFailure(t *testing.T) {
	repo := &mockJobRepo{knownUserErr: errors.New("db down")}
	schools := &mockSchoolReader{schools: map[int64]*models.School{3: {ID: 3}}}
	svc := newJobService(repo, schools, &mockNotificationWriter{})

	job, err := svc.Create(context.Background(), CreateJobRequest{
		SchoolID: 3,
		Title:    "Math Teacher",
		Subject:  "Mathematics",
	})
	require.NoError(t, err)
	assert.NotZero(t, job.ID)
}

func TestJobServiceCreateUnknownSchool(t *testing.T) {
	svc := newJobService(&mockJobRepo{}, &mockSchoolReader{}, &mockNotificationWriter{})

	_, err := svc.Create(context.Background(), CreateJobRequest{
		SchoolID: 99,
		Title:    "Math Teacher",
		Subject:  "Mathematics",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestJobServiceApply(t *testing.T) {
	userID := int64(20)
	repo := &mockJobRepo{jobs: map[int64]*models.JobPosting{
		4: {ID: 4, SchoolID: 3, Title: "Math Teacher"},
	}}
	schools := &mockSchoolReader{schools: map[int64]*models.School{3: {ID: 3, UserID: &userID}}}
	notifications := &mockNotificationWriter{}
	svc := newJobService(repo, schools, notifications)

	app, err := svc.Apply(context.Background(), ApplyRequest{JobID: 4, TeacherID: 8})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, app.Status)

	require.Len(t, notifications.single, 1)
	assert.Equal(t, userID, notifications.single[0].RecipientUserID)
	assert.Equal(t, models.NotificationApplicationSubmitted, notifications.single[0].Type)
}

func TestJobServiceApplyDuplicate(t *testing.T) {
	repo := &mockJobRepo{
		jobs:     map[int64]*models.JobPosting{4: {ID: 4, SchoolID: 3}},
		existing: true,
	}
	svc := newJobService(repo, &mockSchoolReader{}, &mockNotificationWriter{})

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: 4, TeacherID: 8})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "Already applied to this job", appErr.Message)
}

func TestJobServiceApplyUnknownJob(t *testing.T) {
	svc := newJobService(&mockJobRepo{}, &mockSchoolReader{}, &mockNotificationWriter{})

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: 404, TeacherID: 8})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestJobServiceApplySkipsNotificationForUnlinkedSchool(t *testing.T) {
	repo := &mockJobRepo{jobs: map[int64]*models.JobPosting{4: {ID: 4, SchoolID: 3}}}
	schools := &mockSchoolReader{schools: map[int64]*models.School{3: {ID: 3}}}
	notifications := &mockNotificationWriter{}
	svc := newJobService(repo, schools, notifications)

	_, err := svc.Apply(context.Background(), ApplyRequest{JobID: 4, TeacherID: 8})
	require.NoError(t, err)
	assert.Empty(t, notifications.single)
}

func TestJobServiceUpdatePartial(t *testing.T) {
	salary := "UGX 1,200,000"
	repo := &mockJobRepo{jobs: map[int64]*models.JobPosting{
		4: {ID: 4, SchoolID: 3, Title: "Math Teacher", Subject: "Mathematics", Salary: &salary},
	}}
	svc := newJobService(repo, &mockSchoolReader{}, &mockNotificationWriter{})

	status := models.JobStatusClosed
	job, err := svc.Update(context.Background(), 4, UpdateJobRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, job.Status)
	assert.Equal(t, "Math Teacher", job.Title)
	assert.Equal(t, salary, *job.Salary)
}

func TestJobServiceDeleteUnknown(t *testing.T) {
	svc := newJobService(&mockJobRepo{}, &mockSchoolReader{}, &mockNotificationWriter{})

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestJobServiceApplicationsNameFallback(t *testing.T) {
	repo := &mockJobRepo{
		jobs: map[int64]*models.JobPosting{4: {ID: 4}},
		applicationList: []models.ApplicationView{
			{ID: 1, JobID: 4, TeacherID: 8, UserName: strPtr("Bob")},
			{ID: 2, JobID: 4, TeacherID: 9},
		},
	}
	svc := newJobService(repo, &mockSchoolReader{}, &mockNotificationWriter{})

	apps, err := svc.ListApplicationsByJob(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "Bob", apps[0].TeacherName)
	assert.Equal(t, "Teacher #9", apps[1].TeacherName)
}

func TestJobServiceExportCSV(t *testing.T) {
	repo := &mockJobRepo{applicationList: []models.ApplicationView{
		{ID: 1, JobID: 4, TeacherID: 8, Status: models.ApplicationStatusSubmitted, UserName: strPtr("Bob")},
	}}
	svc := newJobService(repo, &mockSchoolReader{}, &mockNotificationWriter{})

	payload, contentType, err := svc.ExportSchoolApplications(context.Background(), 3, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Bob")
	assert.Contains(t, string(payload), "Submitted")
}

func TestJobServiceExportRejectsUnknownFormat(t *testing.T) {
	svc := newJobService(&mockJobRepo{}, &mockSchoolReader{}, &mockNotificationWriter{})

	_, _, err := svc.ExportSchoolApplications(context.Background(), 3, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
