package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/vitalrec/health-api/pkg/errors"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", apperrors.NotFound("patient", nil), http.StatusNotFound, "patient not found"},
		{"bad request", apperrors.BadRequest("invalid doctor ID", nil), http.StatusBadRequest, "invalid doctor ID"},
		{"unauthorized", apperrors.Unauthorized(nil), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.Forbidden("access denied", nil), http.StatusForbidden, "access denied"},
		{"conflict", apperrors.Conflict("username already exists", nil), http.StatusConflict, "username already exists"},
		{"internal", apperrors.Internal(errors.New("connection refused")), http.StatusInternalServerError, "internal server error"},
		{"plain error", errors.New("connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			// Internal detail never reaches the client.
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}
