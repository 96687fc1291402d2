package jwt

import (
	"github.com/gin-gonic/gin"
)

// PayloadKey is where the auth middleware stores the verified claims.
const PayloadKey = "payload"

func GetUserPayload(c *gin.Context) (userPayload *Claims, exist bool) {
	payload, _ := c.Get(PayloadKey)
	userPayload, exist = payload.(*Claims)
	return
}
