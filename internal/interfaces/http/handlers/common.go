// Package handlers holds the gin handlers behind the REST API.
package handlers

import (
	goerrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AtomSense/pkg/errors"
)

// errorBody is the shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an AppError to its HTTP status. Server-side failures
// are masked; the full error goes to the log, not the wire.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	body := errorBody{Code: code.String()}
	var appErr *errors.AppError
	switch {
	case errors.IsServerError(code):
		body.Message = errors.DefaultMessageForCode(code)
	case goerrors.As(err, &appErr):
		body.Message = appErr.Message
		body.Detail = appErr.Detail
	default:
		body.Message = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
