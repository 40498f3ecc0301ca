package handlers

import (
	"errors"

	"healthbridge-backend/apperrors"

	"github.com/gin-gonic/gin"
)

// respondData writes the success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError translates a service error into the error envelope. Internal
// errors never leak their cause to the client.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = &apperrors.Error{Kind: apperrors.KindInternal, Message: "internal server error", Err: err}
	}

	message := appErr.Message
	if appErr.Kind == apperrors.KindInternal {
		message = "internal server error"
	}

	c.JSON(appErr.HTTPStatus(), gin.H{
		"success": false,
		"error": gin.H{
			"code":    string(appErr.Kind),
			"message": message,
		},
	})
}

// respondErrorCode writes the error envelope for a handler-level failure
// that never went through a service
func respondErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
