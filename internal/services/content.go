package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/observability"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/ctxutil"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/platform/promptstyle"
)

const contentKeyPrefix = "agrovet_content:"

// Generator produces Markdown from a system instruction and a user prompt.
// Both platform/gemini and platform/openai clients satisfy it.
type Generator interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
	Model() string
}

type Document struct {
	CourseID     catalog.CourseID `json:"courseId"`
	DisciplineID string           `json:"disciplineId"`
	TopicID      string           `json:"topicId"`
	Title        string           `json:"title"`
	Markdown     string           `json:"markdown"`
	Model        string           `json:"model,omitempty"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	Cached       bool             `json:"cached"`
}

type ContentConfig struct {
	Timeout      time.Duration
	CacheEnabled bool
}

type ContentService interface {
	// TopicDocument returns the generated document for a topic, from the
	// cache unless refresh is set.
	TopicDocument(ctx context.Context, courseID catalog.CourseID, disciplineID, topicID string, refresh bool) (*Document, error)
}

type contentService struct {
	log   *logger.Logger
	cat   *catalog.Catalog
	store db.Store
	gen   Generator
	cfg   ContentConfig
	group singleflight.Group
}

// NewContentService accepts a nil generator; every request then fails with
// ErrNotConfigured before any remote call.
func NewContentService(log *logger.Logger, cat *catalog.Catalog, store db.Store, gen Generator, cfg ContentConfig) ContentService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &contentService{
		log:   log.With("service", "ContentService"),
		cat:   cat,
		store: store,
		gen:   gen,
		cfg:   cfg,
	}
}

func ContentCacheKey(courseID catalog.CourseID, disciplineID, topicID string) string {
	return contentKeyPrefix + slug.Make(string(courseID)) + "/" + slug.Make(disciplineID) + "/" + slug.Make(topicID)
}

type topicRef struct {
	course     catalog.Course
	discipline catalog.Discipline
	topic      catalog.Topic
}

func (cs *contentService) resolve(courseID catalog.CourseID, disciplineID, topicID string) (topicRef, error) {
	course, ok := cs.cat.Course(courseID)
	if !ok {
		return topicRef{}, fmt.Errorf("course %q: %w", courseID, perrors.ErrNotFound)
	}
	_, d, ok := course.Discipline(disciplineID)
	if !ok {
		return topicRef{}, fmt.Errorf("discipline %q: %w", disciplineID, perrors.ErrNotFound)
	}
	t, ok := d.Topic(topicID)
	if !ok {
		return topicRef{}, fmt.Errorf("topic %q: %w", topicID, perrors.ErrNotFound)
	}
	return topicRef{course: course, discipline: d, topic: t}, nil
}

func (cs *contentService) TopicDocument(ctx context.Context, courseID catalog.CourseID, disciplineID, topicID string, refresh bool) (*Document, error) {
	ref, err := cs.resolve(courseID, disciplineID, topicID)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("agrovet/content").Start(ctx, "content.TopicDocument")
	defer span.End()
	span.SetAttributes(
		attribute.String("course", string(courseID)),
		attribute.String("discipline", disciplineID),
		attribute.String("topic", topicID),
		attribute.Bool("refresh", refresh),
	)

	key := ContentCacheKey(courseID, disciplineID, topicID)
	if cs.cfg.CacheEnabled && !refresh {
		if doc := cs.readCache(ctx, key); doc != nil {
			span.SetAttributes(attribute.Bool("cached", true))
			observability.Current().IncContentRequest("cached")
			return doc, nil
		}
	}

	if cs.gen == nil {
		span.SetStatus(codes.Error, "not configured")
		observability.Current().IncContentRequest("not_configured")
		return nil, perrors.ErrNotConfigured
	}

	ch := cs.group.DoChan(key, func() (any, error) {
		return cs.generate(ctx, key, ref)
	})
	select {
	case <-ctx.Done():
		span.SetStatus(codes.Error, ctx.Err().Error())
		observability.Current().IncContentRequest("failed")
		return nil, fmt.Errorf("%w: %v", perrors.ErrGenerationFailure, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, "generation failed")
			observability.Current().IncContentRequest("failed")
			return nil, res.Err
		}
		observability.Current().IncContentRequest("generated")
		doc := *res.Val.(*Document)
		return &doc, nil
	}
}

// generate outlives the cancellation of whichever caller started the
// flight; only the configured timeout bounds it.
func (cs *contentService) generate(parent context.Context, key string, ref topicRef) (*Document, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), cs.cfg.Timeout)
	defer cancel()

	log := cs.log
	if td := ctxutil.GetTraceData(parent); td != nil {
		log = log.With("trace_id", td.TraceID, "request_id", td.RequestID)
	}

	start := time.Now()
	prompt := promptstyle.TopicPrompt(ref.course.Name, ref.discipline.Name, ref.topic.Name)
	md, err := cs.gen.GenerateText(ctx, promptstyle.SystemInstruction, prompt)
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.Current().ObserveContentGeneration(cs.gen.Model(), status, time.Since(start))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			log.Warn("content generation timed out", "key", key, "timeout", cs.cfg.Timeout.String())
		} else {
			log.Warn("content generation failed", "key", key, "error", err)
		}
		return nil, fmt.Errorf("%w: %v", perrors.ErrGenerationFailure, err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return nil, fmt.Errorf("%w: empty document", perrors.ErrGenerationFailure)
	}
	if missing := promptstyle.MissingSections(md); len(missing) > 0 {
		log.Warn("generated document deviates from template", "key", key, "missing", missing)
	}

	doc := &Document{
		CourseID:     ref.course.ID,
		DisciplineID: ref.discipline.ID,
		TopicID:      ref.topic.ID,
		Title:        ref.topic.Name,
		Markdown:     md,
		Model:        cs.gen.Model(),
		GeneratedAt:  time.Now().UTC(),
	}
	log.Info("content generated", "key", key, "elapsed", time.Since(start).String())

	if cs.cfg.CacheEnabled {
		cs.writeCache(ctx, key, doc)
	}
	return doc, nil
}

func (cs *contentService) readCache(ctx context.Context, key string) *Document {
	raw, ok, err := cs.store.Get(ctx, key)
	if err != nil {
		cs.log.Warn("content cache read failed", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil || strings.TrimSpace(doc.Markdown) == "" {
		cs.log.Warn("malformed cached document; regenerating", "key", key)
		return nil
	}
	doc.Cached = true
	return &doc
}

func (cs *contentService) writeCache(ctx context.Context, key string, doc *Document) {
	raw, err := json.Marshal(doc)
	if err != nil {
		cs.log.Warn("content cache encode failed", "key", key, "error", err)
		return
	}
	if err := cs.store.Set(ctx, key, raw); err != nil {
		cs.log.Warn("content cache write failed", "key", key, "error", err)
	}
}
