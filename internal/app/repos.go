package app

import (
	"github.com/yungbote/agrovet-backend/internal/data/collections"
	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/data/repos"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime/bus"
)

type Repos struct {
	Portal *repos.Repository
}

func wireRepos(store db.Store, b bus.Bus, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Portal: repos.New(collections.New(store, log), b, log),
	}
}
