package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-rental/service-booking/internal/platform/response"
)

// UserIDHeader is set by the gateway to the authenticated caller's id.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "user_id"

// IdentityMiddleware requires the gateway identity header and stores the caller id.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			response.BadRequest(c, "missing "+UserIDHeader+" header")
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.BadRequest(c, "invalid "+UserIDHeader+" header")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the caller id stored by IdentityMiddleware.
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
