package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/agrovet-backend/internal/http"
	"github.com/yungbote/agrovet-backend/internal/observability"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, m *observability.Metrics) *gin.Engine {
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	serviceName := ""
	if cfg.OtelEnabled {
		serviceName = "agrovet"
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.CORSOrigins,
		Metrics:         m,
		HealthHandler:   handlers.Health,
		RealtimeHandler: handlers.Realtime,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		ChatHandler:     handlers.Chat,
		CourseHandler:   handlers.Course,
	})
}
