// Package server wires the gin engine: middleware, CORS, and routes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tradeagent/internal/handler"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Market *handler.Market
	Chat   *handler.Chat
	Store  *handler.Store
}

// NewRouter builds the gin engine with recovery, request logging, and
// CORS applied to every route.
func NewRouter(h Handlers, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/market-data", h.Market.Data)
		api.POST("/chat", h.Chat.Stream)

		api.GET("/store/:collection", h.Store.List)
		api.POST("/store/:collection", h.Store.Put)
		api.GET("/store/:collection/:id", h.Store.Get)
		api.PUT("/store/:collection/:id", h.Store.Put)
		api.DELETE("/store/:collection/:id", h.Store.Delete)
	}

	return router
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.WithFields(logrus.Fields{
			"method":  ctx.Request.Method,
			"path":    ctx.Request.URL.Path,
			"status":  ctx.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
