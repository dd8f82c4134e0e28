package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/store"
	"github.com/yeremiapane/tableservice-client/utils"
)

// RequireLogin loads the stored credentials before any gated view and puts
// the role on the context. Without stored credentials every gated view is a
// redirect to login.
func RequireLogin(creds *store.CredentialStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, err := creds.Load()
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("not logged in"))
			c.Abort()
			return
		}

		claims, err := utils.DecodeClaims(cred.AccessToken)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		c.Set("userID", claims.Subject.UserID)
		c.Set("role", claims.Subject.Role)
		c.Next()
	}
}

// RequireCapability gates a route on the capability policy instead of
// inline role comparisons.
func RequireCapability(cap models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("not logged in"))
			c.Abort()
			return
		}

		role, ok := value.(models.UserRole)
		if !ok || !models.Can(role, cap) {
			utils.RespondError(c, http.StatusForbidden, errors.New("this account is not allowed to do that"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleFromContext reads the role RequireLogin stored.
func RoleFromContext(c *gin.Context) (models.UserRole, bool) {
	value, exists := c.Get("role")
	if !exists {
		return 0, false
	}
	role, ok := value.(models.UserRole)
	return role, ok
}
