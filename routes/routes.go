package routes

import (
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"inkwell/config"
	"inkwell/handlers"
	"inkwell/middleware"
)

// SetupRouter assembles the full route table over the injected
// handler set.
func SetupRouter(h *handlers.Handler, cfg config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Uploaded files are served straight from disk.
	router.Static("/images", filepath.Join(cfg.UploadDir, "images"))
	router.Static("/profileImages", filepath.Join(cfg.UploadDir, "profileImages"))

	// Public routes. Credential endpoints are rate limited per IP.
	limited := router.Group("/", middleware.RateLimit(cfg.RateLimitPerMinute))
	limited.POST("/signup", h.Signup)
	limited.POST("/login", h.Login)

	router.GET("/posts", h.ListPosts)
	router.GET("/posts/:category", h.PostsByCategory)
	router.GET("/latestposts", h.LatestPosts)
	router.POST("/postsByIds", h.PostsByIds)
	router.POST("/upload", h.Upload)

	// Protected routes all share the one auth gate.
	protected := router.Group("/", middleware.JWTAuth(cfg.JWTSecret))
	protected.POST("/addpost", h.AddPost)
	protected.GET("/myposts", h.MyPosts)
	protected.PUT("/updatepost/:id", h.UpdatePost)
	protected.GET("/getUser", h.GetUser)

	return router
}
