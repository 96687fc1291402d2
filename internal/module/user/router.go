package user

import (
	"techfest-backend/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")

	authGroup.POST("/register", Register)
	authGroup.POST("/login", Login)
	authGroup.POST("/setup-admin", SetupAdmin)
	authGroup.GET("/check-admin", CheckAdmin)

	signedIn := authGroup.Group("", middleware.Auth(tokenParser), loadAccount)
	{
		signedIn.PUT("/update-profile", UpdateProfile)
		signedIn.GET("/me", Me)
	}

	adminGroup := signedIn.Group("/students", requireAdmin)
	{
		adminGroup.GET("", ListStudents)
		adminGroup.GET("/export", ExportStudents)
	}
}
