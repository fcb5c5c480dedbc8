package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/modules/learning"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestProgressToggleRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewProgressService(logger.Nop(), repo, testCatalog(t))
	ctx := context.Background()
	ana := user.NewStudent("Ana", "a@x.com")
	seedAndLogin(t, repo, ana)

	u, err := svc.Toggle(ctx, "botanica", "conceitos")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !learning.IsTopicComplete(u, "botanica", "conceitos") {
		t.Fatalf("topic not marked complete: %v", u.CompletedTopics)
	}
	cur, _ := repo.CurrentUser(ctx)
	if !learning.IsTopicComplete(cur, "botanica", "conceitos") {
		t.Fatalf("session not synced: %v", cur.CompletedTopics)
	}

	dash, err := svc.CourseDashboard(ctx, catalog.Agronomia)
	if err != nil {
		t.Fatalf("CourseDashboard: %v", err)
	}
	if dash.Summary.Completed != 1 || dash.Summary.Total == 0 {
		t.Fatalf("dashboard summary: %+v", dash.Summary)
	}

	u, err = svc.Toggle(ctx, "botanica", "conceitos")
	if err != nil {
		t.Fatalf("Toggle back: %v", err)
	}
	if len(u.CompletedTopics) != 0 {
		t.Fatalf("topic not cleared: %v", u.CompletedTopics)
	}
}

func TestProgressErrors(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewProgressService(logger.Nop(), repo, testCatalog(t))
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "botanica", "conceitos"); !errors.Is(err, perrors.ErrNoSession) {
		t.Fatalf("no session: want ErrNoSession got %v", err)
	}
	if _, err := svc.Toggle(ctx, "botanica", "nope"); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("unknown topic: want ErrNotFound got %v", err)
	}
	if _, err := svc.CourseDashboard(ctx, "medicina"); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("unknown course: want ErrNotFound got %v", err)
	}
}

func TestProgressConcurrentTogglesKeepEveryTopic(t *testing.T) {
	repo := newSlowTestRepo(t)
	svc := NewProgressService(logger.Nop(), repo, testCatalog(t))
	ctx := context.Background()
	ana := user.NewStudent("Ana", "a@x.com")
	seedAndLogin(t, repo, ana)

	topics := []string{"conceitos", "historico", "anatomia-fisiologia", "processos", "manejo", "tecnologias", "estudo-caso", "legislacao"}
	var wg sync.WaitGroup
	for _, topic := range topics {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			if _, err := svc.Toggle(ctx, "botanica", topic); err != nil {
				t.Errorf("Toggle(%s): %v", topic, err)
			}
		}(topic)
	}
	wg.Wait()

	stored, _ := repo.FindUser(ctx, ana.ID)
	for _, topic := range topics {
		if !learning.IsTopicComplete(stored, "botanica", topic) {
			t.Fatalf("toggle of %s lost: %v", topic, stored.CompletedTopics)
		}
	}
	sess, _ := repo.CurrentUser(ctx)
	if len(sess.CompletedTopics) != len(topics) {
		t.Fatalf("session copy: want=%d got=%v", len(topics), sess.CompletedTopics)
	}
}
