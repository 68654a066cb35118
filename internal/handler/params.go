package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-rental/service-booking/internal/platform/middleware"
	"github.com/shareit-rental/service-booking/internal/platform/response"
)

const (
	defaultFrom = 0
	defaultSize = 10
)

// callerID returns the caller id set by IdentityMiddleware.
func callerID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing "+middleware.UserIDHeader+" header")
	}
	return userID, ok
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// parseWindow reads from/size. Range checks are left to the service so they
// surface as validation errors with the same shape as other business rules.
func parseWindow(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", strconv.Itoa(defaultFrom)))
	if err != nil {
		response.BadRequest(c, "from must be an integer")
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil {
		response.BadRequest(c, "size must be an integer")
		return 0, 0, false
	}
	return from, size, true
}
