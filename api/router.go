package api

import (
	"digest-service/auth"
	"digest-service/events"
	"digest-service/handler"
	"digest-service/middleware"
	"digest-service/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewRouter wires services, middleware and routes into a gin engine.
func NewRouter(db *mongo.Database, publisher *events.Publisher, tokens *auth.JWTManager) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.PrometheusMiddleware("digest-service"))

	editionSvc := service.NewEditionService(db)
	interactionSvc := service.NewInteractionService(db, editionSvc, publisher)
	statsSvc := service.NewStatsService(db)
	authSvc := service.NewAuthService(db, tokens)

	editionHandler := handler.NewEditionHandler(editionSvc, publisher)
	interactionHandler := handler.NewInteractionHandler(interactionSvc)
	statsHandler := handler.NewStatsHandler(statsSvc, editionSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	// Health check routes
	healthCheck := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "digest-service"})
	}
	router.GET("/", healthCheck)
	router.GET("/health", healthCheck)
	router.GET("/ready", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/digest-api")
	{
		api.GET("/edition", editionHandler.GetCurrent)
		api.GET("/edition/categories", editionHandler.GetCategories)
		api.GET("/editions/:key", editionHandler.GetByKey)
		api.POST("/editions/:key/items/:id/view", editionHandler.RecordView)
		api.GET("/trending", statsHandler.Trending)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/oauth", authHandler.OAuth)

		authed := api.Group("", middleware.JWTAuthMiddleware(tokens))
		{
			authed.POST("/interactions", interactionHandler.Record)
			authed.GET("/interactions", interactionHandler.History)
			authed.GET("/users/me", authHandler.Me)
			authed.GET("/users/me/stats", statsHandler.Get)
			authed.DELETE("/users/me", authHandler.Delete)
		}
	}

	return router
}
