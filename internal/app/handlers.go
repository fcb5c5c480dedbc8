package app

import (
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	httpH "github.com/yungbote/agrovet-backend/internal/http/handlers"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Realtime *httpH.RealtimeHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Chat     *httpH.ChatHandler
	Course   *httpH.CourseHandler
}

func wireHandlers(log *logger.Logger, cat *catalog.Catalog, svc Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Realtime: httpH.NewRealtimeHandler(log, hub),
		Auth:     httpH.NewAuthHandler(svc.Auth),
		User:     httpH.NewUserHandler(svc.User, svc.Chat, svc.Avatar),
		Chat:     httpH.NewChatHandler(svc.Chat),
		Course:   httpH.NewCourseHandler(cat, svc.Progress, svc.Content),
	}
}
