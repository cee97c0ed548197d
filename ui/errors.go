package ui

import (
	"net/http"

	"diabex/internal/errors"

	"github.com/gin-gonic/gin"
)

var statusForCode = map[string]int{
	errors.CodeNotFound:         http.StatusNotFound,
	errors.CodeParseError:       http.StatusUnprocessableEntity,
	errors.CodeEmptyTable:       http.StatusUnprocessableEntity,
	errors.CodeInsufficientData: http.StatusUnprocessableEntity,
	errors.CodeMissingColumn:    http.StatusBadRequest,
	errors.CodeInvalidSelection: http.StatusBadRequest,
	errors.CodeInvalidInput:     http.StatusBadRequest,
}

// respondError writes {"error", "code"} with the status matching the error kind
func (s *Server) respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	code := errors.GetCode(appErr)
	status, ok := statusForCode[code]
	if !ok {
		status = http.StatusInternalServerError
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": appErr.Error(),
		"code":  code,
	})
}
