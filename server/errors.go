package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Testeur1337/myPomodoro/internal/backup"
	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps service errors to status codes. Validation messages are
// passed to the client verbatim; anything unexpected becomes a bare 500.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		ve *hierarchy.ValidationError
		se *model.SchemaError
		he *echo.HTTPError
	)
	status, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.As(err, &ve):
		status, msg = http.StatusBadRequest, ve.Message
	case errors.As(err, &se):
		status, msg = http.StatusBadRequest, se.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, backup.ErrDecrypt), errors.Is(err, backup.ErrPassphraseRequired), errors.Is(err, backup.ErrInvalid):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.As(err, &he):
		status, msg = he.Code, fmt.Sprint(he.Message)
	default:
		logger.Error("request failed",
			logger.F("method", c.Request().Method),
			logger.F("uri", c.Request().RequestURI),
			logger.F("error", err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorResponse{Error: msg})
	}
	if err != nil {
		logger.Warn("failed to write error response", logger.F("error", err))
	}
}

func badRequest(format string, args ...any) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}
