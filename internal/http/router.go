package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/agrovet-backend/internal/http/handlers"
	httpMW "github.com/yungbote/agrovet-backend/internal/http/middleware"
	"github.com/yungbote/agrovet-backend/internal/observability"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	HealthHandler   *httpH.HealthHandler
	RealtimeHandler *httpH.RealtimeHandler
	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	ChatHandler     *httpH.ChatHandler
	CourseHandler   *httpH.CourseHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/events", cfg.RealtimeHandler.SSEStream)
		}

		// Auth
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/logout", cfg.AuthHandler.Logout)
			api.GET("/auth/me", cfg.AuthHandler.Me)
		}

		// Users
		if cfg.UserHandler != nil {
			api.GET("/users", cfg.UserHandler.List)
			api.DELETE("/users/:id", cfg.UserHandler.Delete)
			api.GET("/users/:id/avatar.png", cfg.UserHandler.Avatar)
			api.POST("/users/:id/mute", cfg.UserHandler.ToggleMute)
		}

		// Chat
		if cfg.ChatHandler != nil {
			api.GET("/chat/contacts", cfg.ChatHandler.Contacts)
			api.GET("/chat/messages", cfg.ChatHandler.Messages)
			api.POST("/chat/messages", cfg.ChatHandler.Send)
		}

		// Courses, progress and documents
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.List)
			api.GET("/courses/:courseId", cfg.CourseHandler.Get)
			api.GET("/courses/:courseId/progress", cfg.CourseHandler.Progress)
			api.GET("/courses/:courseId/disciplines/:disciplineId/topics/:topicId/document", cfg.CourseHandler.TopicDocument)
			api.POST("/progress/toggle", cfg.CourseHandler.ToggleTopic)
		}
	}

	return r
}
