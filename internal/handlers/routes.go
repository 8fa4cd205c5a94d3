package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the REST surface. With protectAPI the whiteboard,
// export and admin groups sit behind the session gate; otherwise the session
// is only read when present.
func (rh *RestHandler) RegisterRoutes(router gin.IRouter, protectAPI bool) {
	router.GET("/health", rh.Health)

	auth := router.Group("/auth")
	{
		auth.POST("", rh.Login)
		auth.GET("", rh.Session)
		auth.DELETE("", rh.Logout)
	}

	session := rh.OptionalSessionMiddleware()
	if protectAPI {
		session = rh.MustAuthenticateMiddleware()
	}

	whiteboards := router.Group("/whiteboards", session)
	{
		whiteboards.GET("", rh.ListWhiteboards)
		whiteboards.GET("/:id", rh.GetWhiteboard)
		whiteboards.POST("/:id", rh.AddChunk)
		whiteboards.PATCH("/:id", rh.SetComplete)
		whiteboards.DELETE("/:id/:chunkId", rh.DeleteChunk)
	}

	export := router.Group("/export", session)
	{
		export.GET("", rh.Export)
		export.POST("/archive", rh.ArchiveExport)
	}

	admin := router.Group("/admin", session)
	{
		admin.POST("/reset", rh.ResetWhiteboards)
	}
}
