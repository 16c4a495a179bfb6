package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

const (
	// ActorIDKey is the gin context key holding the caller's user ID
	ActorIDKey = "actor_id"
	// ActorRoleKey is the gin context key holding the caller's role
	ActorRoleKey = "actor_role"
	// UserIDHeader identifies the caller on incoming requests
	UserIDHeader = "X-User-ID"
)

// ResolveActor loads the calling user from the X-User-ID header and stores
// their identity in the gin context. Requests without the header pass
// through unresolved; handlers that need an actor reject those themselves.
func ResolveActor(users identity.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.Next()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "invalid user ID"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "unknown user"))
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "user is deactivated"))
			return
		}

		c.Set(ActorIDKey, user.ID)
		c.Set(ActorRoleKey, user.Role)
		c.Next()
	}
}

// GetActorID returns the resolved actor ID, or uuid.Nil when unresolved
func GetActorID(c *gin.Context) uuid.UUID {
	if value, exists := c.Get(ActorIDKey); exists {
		if id, ok := value.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetActorRole returns the resolved actor role, or an empty role when unresolved
func GetActorRole(c *gin.Context) identity.Role {
	if value, exists := c.Get(ActorRoleKey); exists {
		if role, ok := value.(identity.Role); ok {
			return role
		}
	}
	return ""
}
