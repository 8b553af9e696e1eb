package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calmouapp/calmou/internal/auth"
)

const (
	ctxRequestID = "requestID"
	ctxUserID    = "userID"
)

func newRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxRequestID, uuid.NewString())
		c.Next()
	}
}

// newAuthMiddleware resolves the caller identity from the Authorization
// header. The failure reason stays server-side; clients get a generic 401.
func newAuthMiddleware(gw *auth.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, failure := gw.Authenticate(c.GetHeader("Authorization"))
		if failure != nil {
			status := http.StatusUnauthorized
			if failure.Reason == auth.ReasonMissing {
				status = http.StatusBadRequest
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":     "authentication required",
				"requestID": c.GetString(ctxRequestID),
			})
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// ownAccount rejects requests whose :id path segment does not match the
// authenticated subject.
func ownAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "invalid user id",
			"requestID": c.GetString(ctxRequestID),
		})
		return
	}
	if id != c.MustGet(ctxUserID).(int64) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "forbidden",
			"requestID": c.GetString(ctxRequestID),
		})
		return
	}
	c.Next()
}

func pathUserID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}
