package handler

import (
	"fmt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/iamvkosarev/prompt-form/config"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"github.com/iamvkosarev/prompt-form/internal/usecase"
	"github.com/iamvkosarev/prompt-form/web"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	PathIndex            = "/"
	PathGenerateResponse = "/api/generate-response"
	PathHealth           = "/health"
	PathMetrics          = "/metrics"

	MessageMethodNotAllowed = "Method not allowed"
	MessageNotFound         = "Not found"
)

type RouterDeps struct {
	Gateway GenerationService
	Logger  *zap.Logger
	// Model is shown on the form page.
	Model string
}

func NewRouter(cfg config.HTTP, deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(tmpl)

	router.Use(ZapLoggingMiddlewareForGin(deps.Logger))
	router.Use(recovery(deps.Logger))

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
		corsConfig.MaxAge = 12 * time.Hour
		router.Use(cors.New(corsConfig))
	}

	// registers /metrics, must run before the routes it instruments
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET(PathHealth, healthHandler)
	router.HEAD(PathHealth, healthHandler)

	NewPageHandler(PathGenerateResponse, deps.Model).RegisterRoutes(router)
	NewGatewayHandler(deps.Gateway, deps.Logger).RegisterRoutes(router)

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, model.Failure(MessageMethodNotAllowed))
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.Failure(MessageNotFound))
	})

	return router, nil
}

// recovery answers panics with the uniform failure payload instead of an
// empty 500.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error(
			"Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.Failure(usecase.MessageRequestFailed))
	})
}
