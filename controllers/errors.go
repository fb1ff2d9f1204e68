package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"order-api/models"
)

const unexpectedError = "Something unexpected happened. Please retry"

// respondError writes the fixed status and message for err. messages
// overrides the default text per error kind; store details are never sent.
func respondError(c *gin.Context, err error, messages map[error]string) {
	status, kind := statusFor(err)
	message, ok := messages[kind]
	if !ok {
		message = http.StatusText(status)
		if status == http.StatusInternalServerError {
			message = unexpectedError
		}
	}
	c.JSON(status, gin.H{"error": message})
}

func statusFor(err error) (int, error) {
	for _, kind := range []struct {
		err    error
		status int
	}{
		{models.ErrValidation, http.StatusBadRequest},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrConflict, http.StatusConflict},
	} {
		if errors.Is(err, kind.err) {
			return kind.status, kind.err
		}
	}
	return http.StatusInternalServerError, models.ErrInternal
}
