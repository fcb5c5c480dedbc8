package services

import (
	"context"
	"fmt"

	"github.com/yungbote/agrovet-backend/internal/data/repos"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/modules/learning"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type ProgressService interface {
	// Toggle flips completion of one topic for the session user.
	Toggle(ctx context.Context, disciplineID, topicID string) (*user.User, error)
	CourseDashboard(ctx context.Context, courseID catalog.CourseID) (learning.CourseProgress, error)
}

type progressService struct {
	log  *logger.Logger
	repo *repos.Repository
	cat  *catalog.Catalog
}

func NewProgressService(log *logger.Logger, repo *repos.Repository, cat *catalog.Catalog) ProgressService {
	return &progressService{log: log.With("service", "ProgressService"), repo: repo, cat: cat}
}

func (ps *progressService) Toggle(ctx context.Context, disciplineID, topicID string) (*user.User, error) {
	if !ps.cat.HasTopic(disciplineID, topicID) {
		return nil, fmt.Errorf("topic %s/%s: %w", disciplineID, topicID, perrors.ErrNotFound)
	}
	u, err := sessionUser(ctx, ps.repo)
	if err != nil {
		return nil, err
	}
	updated, err := ps.repo.ModifyUser(ctx, u.ID, func(cur *user.User) error {
		cur.CompletedTopics = learning.ToggleTopic(cur.CompletedTopics, disciplineID, topicID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, perrors.ErrNoSession
	}
	return updated, nil
}

func (ps *progressService) CourseDashboard(ctx context.Context, courseID catalog.CourseID) (learning.CourseProgress, error) {
	course, ok := ps.cat.Course(courseID)
	if !ok {
		return learning.CourseProgress{}, fmt.Errorf("course %q: %w", courseID, perrors.ErrNotFound)
	}
	u, err := sessionUser(ctx, ps.repo)
	if err != nil {
		return learning.CourseProgress{}, err
	}
	return learning.Course(u, course), nil
}
