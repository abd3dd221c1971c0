package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
	"github.com/kumawatvinit/ShopSpot/pkg/response"
)

// CtxUserIDKey is where RequireSignin stores the verified subject id.
const CtxUserIDKey = "userID"

// RequireSignin verifies the token carried as the raw Authorization header
// value (clients send the token itself, no Bearer prefix) and stores the
// subject id in the Gin context. It fails closed: a missing header, bad
// signature, or expired token all abort with the same 401 response.
func RequireSignin(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "Error in token verification", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireAdmin runs after RequireSignin and re-fetches the user record to
// check the administrator role. The role is never read from the token, so a
// downgrade takes effect on the very next request instead of at token
// expiry. Unknown users and non-admins get the same 401.
func RequireAdmin(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || !u.IsAdmin() {
			response.Error[any](c, http.StatusUnauthorized, "UnAuthorized Access", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
