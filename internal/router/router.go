package router

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	"github.com/makaka119911-oss/Tatiana-Server/internal/handlers"
	"github.com/makaka119911-oss/Tatiana-Server/internal/notify"
	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, store storage.Store, notifier notify.Notifier) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))

	// CORS: the landing page posts from a browser. An empty allow-list
	// opens the API up, matching the permissive deployments.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	if len(config.Conf.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.Conf.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	registrationHandler := handlers.NewRegistrationHandler(log, store, notifier)
	archiveHandler := handlers.NewArchiveHandler(log, store)
	healthHandler := handlers.NewHealthHandler(log, store)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 20,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/health", healthHandler.Check)
	router.POST("/register", limiter, registrationHandler.Submit)
	router.POST("/test-result", limiter, registrationHandler.SubmitTestResult)

	archive := router.Group("/archive")
	archive.Use(ArchiveAuth())
	{
		archive.GET("", archiveHandler.List)
	}

	return router
}
