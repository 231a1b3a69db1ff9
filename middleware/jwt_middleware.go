package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userContextKey = "searchUser"

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidToken  = errors.New("invalid bearer token")
	errInvalidClaims = errors.New("invalid claims")
)

// IndexerClaims represents the JWT claims carried by the backend that owns
// the service catalog and calls the mutating index endpoints.
type IndexerClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserContext holds caller information extracted from the JWT.
type UserContext struct {
	ID   string
	Role string
}

// JWTAuthMiddleware validates bearer tokens on the mutating endpoints.
// Search and suggest stay public.
type JWTAuthMiddleware struct {
	logger *slog.Logger
	secret []byte
}

func NewJWTAuthMiddleware(logger *slog.Logger, secret string) *JWTAuthMiddleware {
	if secret == "" && logger != nil {
		logger.Warn("AUTH_JWT_SECRET not set, JWT auth will deny all requests")
	}
	return &JWTAuthMiddleware{
		logger: logger,
		secret: []byte(secret),
	}
}

// RequireJWT ensures that a valid bearer token is present before allowing
// the request to proceed.
func (m *JWTAuthMiddleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userCtx, err := m.validateJWT(c)
			if err != nil {
				switch {
				case errors.Is(err, errMissingToken):
					return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
				case errors.Is(err, errInvalidToken), errors.Is(err, errInvalidClaims):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
				default:
					if m.logger != nil {
						m.logger.Error("JWT validation error", "error", err)
					}
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
				}
			}

			ctx := context.WithValue(c.Request().Context(), userContextKey, userCtx)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func (m *JWTAuthMiddleware) validateJWT(c echo.Context) (*UserContext, error) {
	tokenStr := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if tokenStr == "" {
		return nil, errMissingToken
	}

	if len(m.secret) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &IndexerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	if !parsed.Valid {
		return nil, errInvalidToken
	}

	claims, ok := parsed.Claims.(*IndexerClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	return &UserContext{
		ID:   claims.Subject,
		Role: claims.Role,
	}, nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// GetUserContext extracts caller information from the request context.
func GetUserContext(c echo.Context) (*UserContext, bool) {
	ctx := c.Request().Context()
	userCtx, ok := ctx.Value(userContextKey).(*UserContext)
	return userCtx, ok
}
