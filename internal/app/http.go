package app

import (
	"github.com/gin-gonic/gin"

	sessionstore "github.com/yungbote/neurobridge-disguise/internal/data/session"
	httpserver "github.com/yungbote/neurobridge-disguise/internal/http"
	httpH "github.com/yungbote/neurobridge-disguise/internal/http/handlers"
	httpMW "github.com/yungbote/neurobridge-disguise/internal/http/middleware"
	"github.com/yungbote/neurobridge-disguise/internal/platform/config"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Navigation  *httpH.NavigationHandler
	Prompt      *httpH.PromptHandler
	ContextMode *httpH.ContextModeHandler
	Pool        *httpH.DisguisePoolHandler
	Naming      *httpH.NamingHandler
	Privacy     *httpH.PrivacyHandler
}

func wireHandlers(log *logger.Logger, s Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(db),
		Navigation:  httpH.NewNavigationHandler(s.Guard),
		Prompt:      httpH.NewPromptHandler(s.Prompt),
		ContextMode: httpH.NewContextModeHandler(s.Modes),
		Pool:        httpH.NewDisguisePoolHandler(s.Identity),
		Naming:      httpH.NewNamingHandler(s.Naming),
		Privacy:     httpH.NewPrivacyHandler(s.Privacy),
	}
}

func wireMiddleware(log *logger.Logger, cfg config.Config, s Services, sessions sessionstore.Store) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.Auth.JWTSecretKey, sessions, s.Users, s.Roles),
	}
}

func wireRouter(log *logger.Logger, cfg config.Config, h Handlers, mw Middleware) *gin.Engine {
	log.Info("Wiring router...")
	serviceName := ""
	if cfg.OTel.Enabled {
		serviceName = cfg.OTel.ServiceName
	}
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:                log,
		ServiceName:        serviceName,
		CORSOrigins:        cfg.CORSOrigins,
		AuthMiddleware:     mw.Auth,
		NavigationHandler:  h.Navigation,
		PromptHandler:      h.Prompt,
		ContextModeHandler: h.ContextMode,
		PoolHandler:        h.Pool,
		NamingHandler:      h.Naming,
		PrivacyHandler:     h.Privacy,
		HealthHandler:      h.Health,
	})
}
