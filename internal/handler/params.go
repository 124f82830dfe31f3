package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/response"
)

// pathID parses an integer path parameter, answering a validation error and
// returning false when it is not a positive integer.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
