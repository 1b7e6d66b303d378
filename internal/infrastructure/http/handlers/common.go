// Package handlers implements the JSON API endpoints.
package handlers

import (
	stderrors "errors"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/pantrychef/v1/pkg/errors"
)

// respondError renders any error as the standard error envelope,
// promoting unknown errors to internal ones.
func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err.Error())
	}

	_ = c.Error(err)
	c.JSON(appErr.StatusCode(), errors.ToErrorResponse(appErr, requestid.Get(c)))
}
