package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	domainerr "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	"github.com/yorby-ai/entitlement-service/internal/infrastructure/adapter/api/dto"
)

// ContextUserIDKey is the gin context key the verified user id is stored under
const ContextUserIDKey = "userID"

// RevocationStore checks whether a token has been revoked. Backed by Redis;
// the auth service writes a denylist entry when a user signs out everywhere.
type RevocationStore interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// AuthConfig carries token verification settings into the middleware
type AuthConfig struct {
	Secret string
	Issuer string
	Leeway time.Duration
}

// Auth verifies the Bearer token and stores the user id in the request
// context. Tokens are minted by the external auth service; this service only
// verifies them.
func Auth(cfg AuthConfig, revocations RevocationStore, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header")
			return
		}

		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithLeeway(cfg.Leeway),
		}
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
			}
			return []byte(cfg.Secret), nil
		}, opts...)

		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		// Revocation denylist. A failed lookup fails closed: without Redis we
		// cannot tell a live token from a revoked one.
		if jti, ok := claims["jti"].(string); ok && jti != "" {
			revoked, err := revocations.Exists(c.Request.Context(), "auth:revoked:"+jti)
			if err != nil {
				logger.Error("Revocation check failed", map[string]any{
					"error": err.Error(),
				})
				abortUnauthorized(c, "Invalid token")
				return
			}
			if revoked {
				abortUnauthorized(c, "Token revoked")
				return
			}
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
		Message: message,
	})
}
