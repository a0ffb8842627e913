package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/dmitrijs2005/notesapp/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// AccessTokenVerifier is satisfied by *auth.TokenManager.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// requireAuth rejects requests without a valid bearer access token and
// stores the caller's id under userIDKey.
func requireAuth(tokens AccessTokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				return fmt.Errorf("%w: missing authentication", common.ErrorUnauthorized)
			}

			claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, common.BearerPrefix))
			if err != nil {
				return err
			}

			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			log.Info(req.Context(), "request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start).String(),
			)
			return nil
		}
	}
}
