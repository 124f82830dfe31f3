package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edumentor/edumentor-api/internal/service"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/response"
)

// SchoolHandler wires school profile services to HTTP routes.
type SchoolHandler struct {
	schools *service.SchoolService
}

// NewSchoolHandler constructs a new SchoolHandler.
func NewSchoolHandler(schools *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schools: schools}
}

// Create godoc
// @Summary Register a school
// @Tags Schools
// @Accept json
// @Produce json
// @Param payload body service.CreateSchoolRequest true "School payload"
// @Success 201 {object} models.School
// @Failure 400 {object} response.Envelope
// @Router /schools/ [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	var req service.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid school payload"))
		return
	}
	school, err := h.schools.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, school)
}

// List godoc
// @Summary List schools
// @Tags Schools
// @Produce json
// @Success 200 {array} models.School
// @Router /schools/ [get]
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schools.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schools)
}

// Get godoc
// @Summary Get school
// @Tags Schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} models.School
// @Failure 404 {object} response.Envelope
// @Router /schools/{id} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	school, err := h.schools.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, school)
}

// Update godoc
// @Summary Update school
// @Tags Schools
// @Accept json
// @Produce json
// @Param id path int true "School ID"
// @Param payload body service.UpdateSchoolRequest true "Fields to update"
// @Success 200 {object} models.School
// @Failure 404 {object} response.Envelope
// @Router /schools/{id} [put]
func (h *SchoolHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid school payload"))
		return
	}
	school, err := h.schools.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, school)
}
