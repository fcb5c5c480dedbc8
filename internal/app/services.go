package app

import (
	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Chat     services.ChatService
	Progress services.ProgressService
	Content  services.ContentService
	Avatar   services.AvatarService
}

func wireServices(log *logger.Logger, cfg Config, cat *catalog.Catalog, store db.Store, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")
	avatars, err := services.NewAvatarService(log)
	if err != nil {
		return Services{}, err
	}
	return Services{
		Auth:     services.NewAuthService(log, reposet.Portal),
		User:     services.NewUserService(log, reposet.Portal),
		Chat:     services.NewChatService(log, reposet.Portal),
		Progress: services.NewProgressService(log, reposet.Portal, cat),
		Content: services.NewContentService(log, cat, store, clients.Generator, services.ContentConfig{
			Timeout:      cfg.ContentTimeout,
			CacheEnabled: cfg.ContentCacheEnabled,
		}),
		Avatar: avatars,
	}, nil
}
