package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/labstack/echo/v4"
)

const internalFailureMessage = "Sorry, there was a failure on our server."

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Status: "success", Message: message, Data: data})
}

// statusFor maps a classified error to its HTTP status. ok is false for
// unclassified errors.
func statusFor(err error) (code int, ok bool) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, true
	case errors.Is(err, common.ErrorInvariant):
		return http.StatusBadRequest, true
	}
	return 0, false
}

// errorHandler renders every handler error as an envelope. Unclassified
// errors are logged and replaced by a generic message.
func errorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		ctx := c.Request().Context()

		code, body := http.StatusInternalServerError, envelope{Status: "error", Message: internalFailureMessage}

		var he *echo.HTTPError
		if status, ok := statusFor(err); ok {
			code, body = status, envelope{Status: "fail", Message: common.Message(err)}
		} else if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			code, body = he.Code, envelope{Status: "fail", Message: http.StatusText(he.Code)}
		} else {
			log.Error(ctx, "request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"err", err,
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, body)
		}
		if werr != nil {
			log.Error(ctx, "write error response", "err", werr)
		}
	}
}
