package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"order-api/models"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

type Authenticator interface {
	Authenticate(ctx context.Context, header *string) (uuid.UUID, error)
}

// AuthMiddleware resolves the token carried in headerName to a live user
// and aborts the request otherwise. Every protected route sits behind it.
func AuthMiddleware(auth Authenticator, headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var header *string
		if values := c.Request.Header.Values(headerName); len(values) > 0 {
			header = &values[0]
		}

		userID, err := auth.Authenticate(c.Request.Context(), header)
		if err != nil {
			status, message := authFailure(err, headerName)
			RecordAuthFailure(status)
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}

func authFailure(err error, headerName string) (int, string) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, "Provide proper " + headerName
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "User in " + headerName + " is not found"
	default:
		return http.StatusInternalServerError, "Something unexpected happened. Please retry"
	}
}
