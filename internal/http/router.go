package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/neurobridge-disguise/internal/http/handlers"
	httpMW "github.com/yungbote/neurobridge-disguise/internal/http/middleware"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	NavigationHandler  *httpH.NavigationHandler
	PromptHandler      *httpH.PromptHandler
	ContextModeHandler *httpH.ContextModeHandler
	PoolHandler        *httpH.DisguisePoolHandler
	NamingHandler      *httpH.NamingHandler
	PrivacyHandler     *httpH.PrivacyHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	protected := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireSession())
	}
	{
		// Navigation
		if cfg.NavigationHandler != nil {
			protected.GET("/me", cfg.NavigationHandler.Me)
			protected.GET("/navigation/check", cfg.NavigationHandler.Check)
		}

		// Prompts
		if cfg.PromptHandler != nil {
			protected.GET("/disguise/prompt", cfg.PromptHandler.Describe)
			protected.POST("/disguise/prompt/disguise", cfg.PromptHandler.ToDisguise)
			protected.POST("/disguise/prompt/real", cfg.PromptHandler.ToReal)
		}
	}

	admin := protected.Group("/")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireSiteAdmin())
	}
	{
		// Context settings
		if cfg.ContextModeHandler != nil {
			admin.GET("/contexts/:id/mode", cfg.ContextModeHandler.Get)
			admin.PUT("/contexts/:id/mode", cfg.ContextModeHandler.Put)
		}

		// Disguise pool
		if cfg.PoolHandler != nil {
			admin.POST("/contexts/:id/pool", cfg.PoolHandler.Provision)
		}

		// Naming
		if cfg.NamingHandler != nil {
			admin.GET("/contexts/:id/naming-set", cfg.NamingHandler.GetNamingSet)
			admin.PUT("/contexts/:id/naming-set", cfg.NamingHandler.PutNamingSet)
			admin.GET("/naming/keywords", cfg.NamingHandler.ListKeywords)
			admin.POST("/naming/keywords", cfg.NamingHandler.CreateKeyword)
			admin.GET("/naming/keywords/:keyword/items", cfg.NamingHandler.ListItems)
			admin.POST("/naming/keywords/:keyword/items", cfg.NamingHandler.AddItem)
		}

		// Privacy
		if cfg.PrivacyHandler != nil {
			admin.GET("/privacy/users/:id/contexts", cfg.PrivacyHandler.UserContexts)
			admin.GET("/privacy/contexts/:id/users", cfg.PrivacyHandler.ContextUsers)
		}
	}

	return r
}
