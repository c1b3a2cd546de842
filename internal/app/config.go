package app

import (
	"github.com/yungbote/neurobridge-disguise/internal/platform/config"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

func LoadConfig(log *logger.Logger) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	log.Info("config loaded",
		"database_driver", cfg.Database.Driver,
		"redis", cfg.Redis.Addr != "",
		"disguise_enabled", cfg.Disguise.Enabled,
		"otel_enabled", cfg.OTel.Enabled,
	)
	return cfg, nil
}
