package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestKindErrorMatchesKind(t *testing.T) {
	err := KindErrorf(ErrConflict, "Test already exists for user on %s", "2024-01-01")

	assert.Equal(t, "Test already exists for user on 2024-01-01", err.Error())
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(ErrTestNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrResultExists, ErrConflict))
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := StorageError("save individual", cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "save individual")
}

func TestHandleErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{err: ErrIndividualNotFound, status: http.StatusNotFound, message: "User not found"},
		{err: KindError(ErrConflict, "dup"), status: http.StatusBadRequest, message: "dup"},
		{err: KindError(ErrValidation, "bad"), status: http.StatusBadRequest, message: "bad"},
		{err: StorageError("find", errors.New("boom")), status: http.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, tt.err)

		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, `{"code": `+itoa(tt.status)+`, "message": "`+tt.message+`"}`, w.Body.String())
	}
}

func itoa(n int) string {
	return FormatNumber(float64(n))
}
