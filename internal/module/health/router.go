package health

import (
	"time"

	"techfest-backend/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (p *ModuleHealth) InitRouter(r *gin.RouterGroup) {
	r.GET("/health", Health)
}

// Health reports liveness only; it does not touch the database.
func Health(c *gin.Context) {
	log.Debug("health check", "client_ip", c.ClientIP())
	response.Success(c, "Server is running", gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
