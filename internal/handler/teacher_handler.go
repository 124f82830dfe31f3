package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edumentor/edumentor-api/internal/service"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/response"
)

// TeacherHandler wires teacher profile services to HTTP routes.
type TeacherHandler struct {
	teachers *service.TeacherService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// Create godoc
// @Summary Create teacher profile
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} response.Envelope
// @Router /teachers/ [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req service.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	teacher, err := h.teachers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// List godoc
// @Summary List teacher profiles
// @Tags Teachers
// @Produce json
// @Success 200 {array} models.TeacherListing
// @Router /teachers/ [get]
func (h *TeacherHandler) List(c *gin.Context) {
	listings, err := h.teachers.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, listings)
}

// Get godoc
// @Summary Get teacher profile
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// GetByUser godoc
// @Summary Get the teacher profile linked to a user
// @Tags Teachers
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} response.Envelope
// @Router /teachers/by_user/{user_id} [get]
func (h *TeacherHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	teacher, err := h.teachers.GetByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// Update godoc
// @Summary Update teacher profile
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body service.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	teacher, err := h.teachers.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}
