package util

import (
	"errors"
	"net/http"
	"report_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the error envelope. Successful calls return their payload
// as-is.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MessageResponse carries a confirmation message next to the affected
// document.
type MessageResponse struct {
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	InternalServerError(c)
}

// HandleError writes the response matching the kind of err. Validation and
// conflict errors are both reported as 400, as clients of the report API
// expect.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrConflict), errors.Is(err, ErrValidation):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
