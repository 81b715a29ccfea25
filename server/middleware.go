package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Testeur1337/myPomodoro/internal/logger"
)

// requestLogger logs every request and its response
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		id := c.Response().Header().Get(echo.HeaderXRequestID)

		logger.Debug("HTTP Request",
			logger.F("id", id),
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr))

		err := next(c)
		if err != nil {
			// Let the error handler write the response so the status is known.
			c.Error(err)
		}

		res := c.Response()
		logger.Info("HTTP Response",
			logger.F("id", id),
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()))

		return nil
	}
}
