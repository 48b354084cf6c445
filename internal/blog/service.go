package blog

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Service defines higher-level blog operations built on top of the generator
// and the repository.
type Service interface {
	GenerateAndStore(ctx context.Context, req GenerateRequest) (*Post, error)
	ListPosts(ctx context.Context, offset, limit int) (int64, []Post, error)
	GetPost(ctx context.Context, id uint) (*Post, error)
	DeletePost(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	generator *Generator
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

const defaultListLimit = 20

// NewService wires the blog service with its dependencies.
func NewService(repo Repository, generator *Generator, logger *logrus.Logger, hub *sentry.Hub) (Service, error) {
	if repo == nil {
		return nil, eris.New("blog repository is required")
	}
	if generator == nil {
		return nil, eris.New("blog generator is required")
	}

	return &service{
		repo:      repo,
		generator: generator,
		logger:    logger,
		sentryHub: hub,
	}, nil
}

// GenerateAndStore runs the generation pipeline and persists the result as a
// new post. Persistence happens only after the full pipeline succeeds, so a
// mid-pipeline failure leaves no orphaned record.
func (s *service) GenerateAndStore(ctx context.Context, req GenerateRequest) (*Post, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, eris.New("topic is required")
	}
	req.Topic = topic

	draft, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.recordError(logrus.Fields{"topic": topic}, err, "generating blog post")
		return nil, err
	}

	post := &Post{
		Topic:     req.Topic,
		Tone:      req.Tone,
		Length:    req.Length,
		Keywords:  req.Keywords,
		Title:     draft.Title,
		Content:   draft.Content,
		WordCount: draft.WordCount,
		SEOScore:  draft.SEOScore,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.recordError(logrus.Fields{"topic": topic}, err, "persisting generated blog post")
		return nil, eris.Wrap(err, "persisting generated blog post")
	}

	return post, nil
}

func (s *service) ListPosts(ctx context.Context, offset, limit int) (int64, []Post, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	total, posts, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		s.recordError(nil, err, "listing blog posts")
		return 0, nil, eris.Wrap(err, "listing blog posts")
	}

	return total, posts, nil
}

func (s *service) GetPost(ctx context.Context, id uint) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"id": id}, err, "fetching blog post")
		}
		return nil, err
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id uint) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"id": id}, err, "deleting blog post")
		}
		return err
	}

	return nil
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
