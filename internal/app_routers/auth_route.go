package approuters

import (
	"github.com/gauru07/fullstack-dating-app/internal/configuration"

	"github.com/gin-gonic/gin"
)

func AuthRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/sm/api/auth")
	{
		authRoute.POST("/login", container.AuthHandler.Login)
		authRoute.POST("/signup", container.AuthHandler.Signup)
		authRoute.POST("/logout", container.AuthHandler.Logout)
		authRoute.GET("/session", container.AuthHandler.Session)
		authRoute.POST("/debug/set-user", container.AuthHandler.SetUser)
	}
}
