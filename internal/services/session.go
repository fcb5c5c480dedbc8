package services

import (
	"context"

	"github.com/yungbote/agrovet-backend/internal/data/repos"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
)

// sessionUser resolves the acting user and re-reads the canonical record so
// checks see mutations made since the session copy was written.
func sessionUser(ctx context.Context, repo *repos.Repository) (*user.User, error) {
	sess, err := repo.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, perrors.ErrNoSession
	}
	fresh, err := repo.FindUser(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, perrors.ErrNoSession
	}
	return fresh, nil
}
