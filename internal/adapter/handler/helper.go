package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/fathom-relay/errors"
	"github.com/johnquangdev/fathom-relay/internal/adapter/dto/common"
)

// getRequestID reads the id assigned by the RequestID middleware, falling
// back to the inbound header
func getRequestID(c echo.Context) string {
	if c == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	if c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleError centralizes error handling and logging using provided logger.
// AppError values keep their HTTP code; anything else is a 500 whose
// message is surfaced and whose details stay in the log.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		message := appErr.Message
		if appErr.Code == errors.ErrorCode_INTERNAL && appErr.Raw != nil {
			message = appErr.Raw.Error()
		}

		if logger != nil {
			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Stringer("app_code", appErr.Code),
				zap.Any("details", appErr.Details),
				zap.Error(err),
			}
			if appErr.HTTPCode >= http.StatusInternalServerError {
				logger.Error("http.response.error", fields...)
			} else {
				logger.Warn("http.response.error", fields...)
			}
		}

		return c.JSON(appErr.HTTPCode, common.ErrorResponse{Error: message})
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, common.ErrorResponse{Error: err.Error()})
}

// ErrorHandler renders every error reaching echo, including routing errors
// and recovered panics, as {"error": "..."}
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			message := http.StatusText(he.Code)
			if he.Message != nil {
				message = fmt.Sprint(he.Message)
			}
			if writeErr := c.JSON(he.Code, common.ErrorResponse{Error: message}); writeErr != nil && logger != nil {
				logger.Error("failed to write error response", zap.Error(writeErr))
			}
			return
		}

		if writeErr := HandleError(logger, c, err); writeErr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}
