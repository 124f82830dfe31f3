package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edumentor/edumentor-api/internal/service"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/response"
)

// JobHandler wires job posting and application services to HTTP routes.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler constructs a new JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create godoc
// @Summary Publish a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param school_id query int true "Posting school ID"
// @Param payload body service.CreateJobRequest true "Job payload"
// @Success 201 {object} models.JobPosting
// @Failure 404 {object} response.Envelope
// @Router /jobs/ [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}
	if raw := c.Query("school_id"); raw != "" {
		schoolID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || schoolID <= 0 {
			response.Error(c, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "school_id must be a positive integer"))
			return
		}
		req.SchoolID = schoolID
	}
	job, err := h.jobs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// List godoc
// @Summary List active job postings
// @Tags Jobs
// @Produce json
// @Success 200 {array} models.JobView
// @Router /jobs/ [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, jobs)
}

// Get godoc
// @Summary Get a job posting
// @Tags Jobs
// @Produce json
// @Param job_id path int true "Job ID"
// @Success 200 {object} models.JobView
// @Failure 404 {object} response.Envelope
// @Router /jobs/{job_id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	jobID, ok := pathID(c, "job_id")
	if !ok {
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}

// ListBySchool godoc
// @Summary List a school's job postings
// @Tags Jobs
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {array} models.JobPosting
// @Router /jobs/school/{school_id} [get]
func (h *JobHandler) ListBySchool(c *gin.Context) {
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	jobs, err := h.jobs.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, jobs)
}

// Update godoc
// @Summary Update a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param job_id path int true "Job ID"
// @Param payload body service.UpdateJobRequest true "Fields to update"
// @Success 200 {object} models.JobPosting
// @Failure 404 {object} response.Envelope
// @Router /jobs/{job_id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	jobID, ok := pathID(c, "job_id")
	if !ok {
		return
	}
	var req service.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), jobID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}

// Delete godoc
// @Summary Delete a job posting
// @Tags Jobs
// @Produce json
// @Param job_id path int true "Job ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.Envelope
// @Router /jobs/{job_id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	jobID, ok := pathID(c, "job_id")
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), jobID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Job deleted successfully"})
}

// Apply godoc
// @Summary Apply to a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body service.ApplyRequest true "Application payload"
// @Success 201 {object} models.JobApplication
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /jobs/apply/ [post]
func (h *JobHandler) Apply(c *gin.Context) {
	var req service.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}
	app, err := h.jobs.Apply(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// Applications godoc
// @Summary List applications for a job posting
// @Tags Jobs
// @Produce json
// @Param job_id path int true "Job ID"
// @Success 200 {array} models.ApplicationView
// @Failure 404 {object} response.Envelope
// @Router /jobs/{job_id}/applications [get]
func (h *JobHandler) Applications(c *gin.Context) {
	jobID, ok := pathID(c, "job_id")
	if !ok {
		return
	}
	apps, err := h.jobs.ListApplicationsByJob(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, apps)
}

// SchoolApplications godoc
// @Summary List applications across a school's postings
// @Tags Jobs
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {array} models.ApplicationView
// @Router /jobs/school/{school_id}/applications [get]
func (h *JobHandler) SchoolApplications(c *gin.Context) {
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	apps, err := h.jobs.ListApplicationsBySchool(c.Request.Context(), schoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, apps)
}

// ExportSchoolApplications godoc
// @Summary Export a school's applications as CSV or PDF
// @Tags Jobs
// @Produce text/csv
// @Produce application/pdf
// @Param school_id path int true "School ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {string} string "file download"
// @Router /jobs/school/{school_id}/applications/export [get]
func (h *JobHandler) ExportSchoolApplications(c *gin.Context) {
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.jobs.ExportSchoolApplications(c.Request.Context(), schoolID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applications_school_%d.%s"`, schoolID, ext))
	c.Data(http.StatusOK, contentType, payload)
}
