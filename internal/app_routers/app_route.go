package approuters

import (
	"github.com/gauru07/fullstack-dating-app/internal/configuration"

	"github.com/gin-gonic/gin"
)

// AppRouters wires the authenticated surface: discovery deck, request inbox,
// matches, own profile, and conversations.
func AppRouters(router *gin.Engine, container *configuration.Container) {
	appRoute := router.Group("/sm/api", RequireAuth())

	discoverRoute := appRoute.Group("/discover")
	{
		discoverRoute.GET("", container.DiscoverHandler.Deck)
		discoverRoute.POST("/refresh", container.DiscoverHandler.Refresh)
		discoverRoute.POST("/like", container.DiscoverHandler.Like)
		discoverRoute.POST("/pass", container.DiscoverHandler.Pass)
	}

	requestRoute := appRoute.Group("/requests")
	{
		requestRoute.GET("", container.InboxHandler.List)
		requestRoute.POST("/:requestId/accept", container.InboxHandler.Accept)
		requestRoute.POST("/:requestId/reject", container.InboxHandler.Reject)
	}

	appRoute.GET("/matches", container.MatchHandler.List)

	profileRoute := appRoute.Group("/profile")
	{
		profileRoute.GET("", container.ProfileHandler.View)
		profileRoute.PUT("", container.ProfileHandler.Update)
		profileRoute.POST("/photos", container.ProfileHandler.UploadPhotos)
		profileRoute.DELETE("/photos", container.ProfileHandler.DeletePhoto)
	}

	chatRoute := appRoute.Group("/chat")
	{
		chatRoute.GET("/:peerId/messages", container.ChatHandler.History)
		chatRoute.POST("/:peerId/messages", container.ChatHandler.Send)
		chatRoute.POST("/:peerId/video-date", container.ChatHandler.VideoDate)
	}
}
