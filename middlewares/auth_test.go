package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-api/models"
)

type fakeAuthenticator struct {
	userID  uuid.UUID
	err     error
	called  bool
	gotNil  bool
	gotText string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, header *string) (uuid.UUID, error) {
	f.called = true
	f.gotNil = header == nil
	if header != nil {
		f.gotText = *header
	}
	return f.userID, f.err
}

func newAuthRouter(auth Authenticator) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var seen uuid.UUID
	r.GET("/protected", AuthMiddleware(auth, "access_token"), func(c *gin.Context) {
		seen, _ = UserID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestAuthMiddleware_PassesUserID(t *testing.T) {
	userID := uuid.New()
	auth := &fakeAuthenticator{userID: userID}
	r, seen := newAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("access_token", "tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *seen)
	assert.Equal(t, "tok", auth.gotText)
}

func TestAuthMiddleware_MissingHeaderIsNil(t *testing.T) {
	auth := &fakeAuthenticator{err: models.ErrUnauthorized}
	r, _ := newAuthRouter(auth)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.True(t, auth.called)
	assert.True(t, auth.gotNil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthorized", models.ErrUnauthorized, http.StatusUnauthorized},
		{"user missing", models.ErrNotFound, http.StatusNotFound},
		{"store failure", models.ErrInternal, http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newAuthRouter(&fakeAuthenticator{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("access_token", "tok")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotContains(t, body["error"], "boom")
		})
	}
}
