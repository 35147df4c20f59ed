package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"matchup/helper"
)

const internalMessage = "Internal server error."

// ErrorHandler renders the last error a handler attached with c.Error as
// {"error": message}. Unknown errors become a 500 and only the log sees the cause.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("request failed")
		}
		c.JSON(status, gin.H{"error": publicMessage(err)})
	}
}

func statusOf(err error) int {
	if appErr, ok := helper.AsAppError(err); ok {
		return appErr.Status
	}
	if isBindingError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func publicMessage(err error) string {
	if appErr, ok := helper.AsAppError(err); ok {
		if appErr.Status >= http.StatusInternalServerError && appErr.Message == "" {
			return internalMessage
		}
		return appErr.Message
	}
	if isBindingError(err) {
		return err.Error()
	}
	return internalMessage
}

func isBindingError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		fieldErrs validator.ValidationErrors
	)
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &fieldErrs) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, http.ErrMissingFile)
}
