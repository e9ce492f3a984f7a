package infrastructure

import (
	"fmt"
	"net/http"
	"time"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/middlewares"
	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/metrics"
	ratelimit "certschool.io/infrastructure/ratelimit"
	webRoutev1 "certschool.io/infrastructure/routes/ginRouter/web/v1"
	server_response "certschool.io/infrastructure/serverResponse"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ginServer struct {
	cfg *env.Config
}

func (s *ginServer) Start() {
	gin.SetMode(s.cfg.GinMode)
	server := NewRouter(s.cfg)

	logger.Info(fmt.Sprintf("Server starting on PORT %s", s.cfg.Port))
	if err := server.Run(fmt.Sprintf(":%s", s.cfg.Port)); err != nil {
		logger.Error("server stopped", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(cfg *env.Config) *gin.Engine {
	server := gin.New()
	server.Use(gin.Recovery())
	origins := cfg.CORSOrigins
	if len(origins) == 0 && cfg.GinMode == "debug" {
		origins = []string{"http://localhost:5173"}
	}
	if len(origins) != 0 {
		server.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "User-Agent"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	server.Use(metrics.RequestMiddleware())
	server.Use(middlewares.ActivityLogMiddleware())
	server.MaxMultipartMemory = 8 << 20 // 8 MiB

	routerV1 := server.Group("/api/v1")
	routerV1.Use(ratelimit.TokenBucketPerIP(25))
	{
		webRoutev1.PaymentRouter(routerV1)
		webRoutev1.EnrollmentRouter(routerV1)
		webRoutev1.ApplicationRouter(routerV1)
	}

	server.GET("/metrics", metrics.Handler())
	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.RespondWithData(ctx, http.StatusOK, "pong!")
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})
	return server
}
