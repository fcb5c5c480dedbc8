package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestSortDirectory(t *testing.T) {
	users := []*user.User{
		user.NewStudent("carla", "c@x.com"),
		user.NewProfessor("Bruno", "b@x.com", catalog.Zootecnia),
		user.NewStudent("Ana", "a@x.com"),
		user.NewProfessor("alice", "al@x.com", catalog.Agronomia),
	}
	SortDirectory(users)

	want := []string{"alice", "Bruno", "Ana", "carla"}
	for i, name := range want {
		if users[i].Name != name {
			t.Fatalf("position %d: want %s got %s", i, name, users[i].Name)
		}
	}
}

func TestUserGetAndDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewUserService(logger.Nop(), repo)
	ctx := context.Background()
	ana := user.NewStudent("Ana", "a@x.com")
	seedAndLogin(t, repo, ana)

	got, err := svc.Get(ctx, ana.ID)
	if err != nil || got.Email != ana.Email {
		t.Fatalf("Get: %v %v", got, err)
	}
	if _, err := svc.Get(ctx, "ghost"); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}

	found, err := svc.Delete(ctx, ana.ID)
	if err != nil || !found {
		t.Fatalf("Delete: %v %v", found, err)
	}
	if cur, _ := repo.CurrentUser(ctx); cur != nil {
		t.Fatalf("session survived deletion of its user")
	}
	if found, _ := svc.Delete(ctx, ana.ID); found {
		t.Fatalf("second delete reported found")
	}
}
