package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"blogforge/app/internal/blog"
	"blogforge/app/internal/db"
	"blogforge/app/internal/markdown"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	notFoundMessage = "Blog not found"
)

type BlogView struct {
	ID        uint      `json:"id"`
	Topic     string    `json:"topic"`
	Tone      string    `json:"tone"`
	Length    string    `json:"length"`
	Keywords  string    `json:"keywords,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	SEOScore  float64   `json:"seo_score"`
	CreatedAt time.Time `json:"created_at"`
}

func viewFromPost(post *blog.Post) BlogView {
	return BlogView{
		ID:        post.ID,
		Topic:     post.Topic,
		Tone:      post.Tone,
		Length:    post.Length,
		Keywords:  post.Keywords,
		Title:     post.Title,
		Content:   post.Content,
		WordCount: post.WordCount,
		SEOScore:  post.SEOScore,
		CreatedAt: post.CreatedAt,
	}
}

type generateInput struct {
	Body struct {
		Topic    string `json:"topic" minLength:"5" maxLength:"500" doc:"Blog topic"`
		Tone     string `json:"tone,omitempty" default:"Professional" doc:"Writing tone"`
		Length   string `json:"length,omitempty" default:"Medium" doc:"Blog length"`
		Keywords string `json:"keywords,omitempty" doc:"Comma-separated keywords to weave in"`
	}
}

type generateOutput struct {
	Body struct {
		BlogView
		Recommendations []string `json:"recommendations"`
	}
}

type listInput struct {
	Skip  int `query:"skip" minimum:"0" default:"0" doc:"Number of posts to skip"`
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum posts per page"`
}

type listOutput struct {
	Body struct {
		Total int64      `json:"total"`
		Blogs []BlogView `json:"blogs"`
	}
}

type idInput struct {
	ID uint64 `path:"id" doc:"Blog post identifier"`
}

type blogOutput struct {
	Body BlogView
}

type messageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type htmlOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type healthOutput struct {
	Status int
	Body   struct {
		Status    string `json:"status"`
		Database  string `json:"database"`
		Generator string `json:"generator"`
	}
}

func (s *Server) registerGenerateRoute() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "generate-blog",
		Method:        stdhttp.MethodPost,
		Path:          "/api/v1/generate",
		Summary:       "Generate a new blog post",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.generateHandler)
}

func (s *Server) registerListRoute() {
	huma.Get(s.api, "/api/v1/blogs", s.listHandler, func(op *huma.Operation) {
		op.Summary = "List generated blog posts"
	})
}

func (s *Server) registerGetRoute() {
	huma.Get(s.api, "/api/v1/blogs/{id}", s.getHandler, func(op *huma.Operation) {
		op.Summary = "Fetch a blog post"
	})
}

func (s *Server) registerDeleteRoute() {
	huma.Delete(s.api, "/api/v1/blogs/{id}", s.deleteHandler, func(op *huma.Operation) {
		op.Summary = "Delete a blog post"
	})
}

func (s *Server) registerHTMLRoute() {
	huma.Get(s.api, "/api/v1/blogs/{id}/html", s.htmlHandler, func(op *huma.Operation) {
		op.Summary = "Render a blog post as HTML"
	})
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) generateHandler(ctx context.Context, input *generateInput) (*generateOutput, error) {
	post, err := s.blogs.GenerateAndStore(ctx, blog.GenerateRequest{
		Topic:    input.Body.Topic,
		Tone:     input.Body.Tone,
		Length:   input.Body.Length,
		Keywords: input.Body.Keywords,
	})
	if err != nil {
		s.recordError(ctx, err, "generating blog post", logrus.Fields{"topic": input.Body.Topic})
		return nil, huma.Error500InternalServerError(failureMessage(err))
	}

	resp := &generateOutput{}
	resp.Body.BlogView = viewFromPost(post)
	resp.Body.Recommendations = blog.SEORecommendations(post.SEOScore)

	return resp, nil
}

func (s *Server) listHandler(ctx context.Context, input *listInput) (*listOutput, error) {
	total, posts, err := s.blogs.ListPosts(ctx, input.Skip, input.Limit)
	if err != nil {
		s.recordError(ctx, err, "listing blog posts", nil)
		return nil, huma.Error500InternalServerError("We couldn't list blog posts right now.")
	}

	resp := &listOutput{}
	resp.Body.Total = total
	resp.Body.Blogs = make([]BlogView, 0, len(posts))
	for i := range posts {
		resp.Body.Blogs = append(resp.Body.Blogs, viewFromPost(&posts[i]))
	}

	return resp, nil
}

func (s *Server) getHandler(ctx context.Context, input *idInput) (*blogOutput, error) {
	post, err := s.blogs.GetPost(ctx, uint(input.ID))
	if err != nil {
		if eris.Is(err, blog.ErrNotFound) {
			return nil, huma.Error404NotFound(notFoundMessage)
		}
		s.recordError(ctx, err, "fetching blog post", logrus.Fields{"id": input.ID})
		return nil, huma.Error500InternalServerError("We couldn't load that blog post right now.")
	}

	return &blogOutput{Body: viewFromPost(post)}, nil
}

func (s *Server) deleteHandler(ctx context.Context, input *idInput) (*messageOutput, error) {
	if err := s.blogs.DeletePost(ctx, uint(input.ID)); err != nil {
		if eris.Is(err, blog.ErrNotFound) {
			return nil, huma.Error404NotFound(notFoundMessage)
		}
		s.recordError(ctx, err, "deleting blog post", logrus.Fields{"id": input.ID})
		return nil, huma.Error500InternalServerError("We couldn't delete that blog post right now.")
	}

	resp := &messageOutput{}
	resp.Body.Message = "Blog deleted successfully"

	return resp, nil
}

func (s *Server) htmlHandler(ctx context.Context, input *idInput) (*htmlOutput, error) {
	post, err := s.blogs.GetPost(ctx, uint(input.ID))
	if err != nil {
		if eris.Is(err, blog.ErrNotFound) {
			return nil, huma.Error404NotFound(notFoundMessage)
		}
		s.recordError(ctx, err, "fetching blog post for rendering", logrus.Fields{"id": input.ID})
		return nil, huma.Error500InternalServerError("We couldn't load that blog post right now.")
	}

	body, err := markdown.Render(post.Content)
	if err != nil {
		s.recordError(ctx, err, "rendering blog post html", logrus.Fields{"id": input.ID})
		return nil, huma.Error500InternalServerError("We couldn't render that blog post right now.")
	}

	return &htmlOutput{ContentType: htmlContentType, Body: body}, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthOutput, error) {
	resp := &healthOutput{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"
	resp.Body.Generator = "ready"

	sqlDB, err := db.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if s.blogs == nil {
		resp.Body.Status = "degraded"
		resp.Body.Generator = "unconfigured"
		if resp.Status == 0 {
			resp.Status = stdhttp.StatusServiceUnavailable
		}
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

// failureMessage surfaces pipeline failures to the caller with their original
// human-readable message.
func failureMessage(err error) string {
	var genErr *blog.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}

	return eris.Cause(err).Error()
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
