package services

import (
	"context"
	"sort"
	"strings"

	"github.com/yungbote/agrovet-backend/internal/data/repos"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type UserService interface {
	// Directory lists professors first, then students, each by name.
	Directory(ctx context.Context) ([]*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type userService struct {
	log  *logger.Logger
	repo *repos.Repository
}

func NewUserService(log *logger.Logger, repo *repos.Repository) UserService {
	return &userService{log: log.With("service", "UserService"), repo: repo}
}

func (us *userService) Directory(ctx context.Context) ([]*user.User, error) {
	users, err := us.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	SortDirectory(users)
	return users, nil
}

func SortDirectory(users []*user.User) {
	sort.SliceStable(users, func(i, j int) bool {
		pi, pj := users[i].IsProfessor(), users[j].IsProfessor()
		if pi != pj {
			return pi
		}
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
}

func (us *userService) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := us.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, perrors.ErrNotFound
	}
	return u, nil
}

func (us *userService) Delete(ctx context.Context, id string) (bool, error) {
	return us.repo.DeleteUser(ctx, strings.TrimSpace(id))
}
