package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fazpramim/internal/domain"
	jwtsvc "fazpramim/internal/pkg/jwt"
	"fazpramim/internal/repository"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// JWTAuth validates the bearer token and stores user_id/role on the
// context.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AUTH_HEADER_MISSING",
					"message": "Missing Authorization header",
				},
			})
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_AUTH_HEADER",
					"message": "Invalid Authorization header",
				},
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid token",
				},
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

type clientProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ClientProfile, error)
}

type providerProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error)
}

// IdentityResolver turns the token's user_id/role pair into an explicit
// domain.Identity by loading the matching profile once per request.
// Handlers read it with Identity(c) and pass it into services, so nothing
// downstream has to probe for profile existence.
type IdentityResolver struct {
	clients   clientProfileReader
	providers providerProfileReader
}

func NewIdentityResolver(clients clientProfileReader, providers providerProfileReader) *IdentityResolver {
	return &IdentityResolver{clients: clients, providers: providers}
}

func (ir *IdentityResolver) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}

		id := domain.Identity{UserID: userID, Kind: domain.IdentityUnaffiliated}

		switch c.GetString("role") {
		case string(domain.RoleClient):
			p, err := ir.clients.GetByUserID(c.Request.Context(), userID)
			if err == nil {
				id.Kind = domain.IdentityClient
				id.ProfileID = p.ID
			} else if !errors.Is(err, repository.ErrNotFound) {
				abortResolveError(c)
				return
			}
		case string(domain.RoleProvider):
			p, err := ir.providers.GetByUserID(c.Request.Context(), userID)
			if err == nil {
				id.Kind = domain.IdentityProvider
				id.ProfileID = p.ID
			} else if !errors.Is(err, repository.ErrNotFound) {
				abortResolveError(c)
				return
			}
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func abortResolveError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   gin.H{"code": "INTERNAL", "message": "Failed to resolve identity"},
	})
}

// Identity returns the resolved caller identity for the request.
func Identity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{UserID: c.GetInt64("user_id"), Kind: domain.IdentityUnaffiliated}
}
