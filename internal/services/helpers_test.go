package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/agrovet-backend/internal/data/collections"
	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/data/repos"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime/bus"
)

func newTestRepo(t *testing.T) (*repos.Repository, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	return repos.New(collections.New(store, logger.Nop()), bus.New(logger.Nop()), logger.Nop()), store
}

type slowGetStore struct {
	*db.MemoryStore
	delay time.Duration
}

func (s *slowGetStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.Get(ctx, key)
}

// newSlowTestRepo widens the window between read and write so lost
// updates show up under concurrency.
func newSlowTestRepo(t *testing.T) *repos.Repository {
	t.Helper()
	store := &slowGetStore{MemoryStore: db.NewMemoryStore(), delay: time.Millisecond}
	return repos.New(collections.New(store, logger.Nop()), bus.New(logger.Nop()), logger.Nop())
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return cat
}

func seedAndLogin(t *testing.T, repo *repos.Repository, login *user.User, others ...*user.User) {
	t.Helper()
	ctx := context.Background()
	for _, u := range append([]*user.User{login}, others...) {
		if err := repo.RegisterUser(ctx, u); err != nil {
			t.Fatalf("RegisterUser(%s): %v", u.Email, err)
		}
	}
	if _, err := repo.Login(ctx, login.Email); err != nil {
		t.Fatalf("Login: %v", err)
	}
}
