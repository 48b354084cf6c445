package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/rotisserie/eris"

	"blogforge/app/internal/llm"
)

func setupService(t *testing.T, completer llm.Completer) (Service, *GormRepository) {
	t.Helper()

	repo := setupRepository(t)

	generator, err := NewGenerator(completer, silentLogger())
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}

	service, err := NewService(repo, generator, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	return service, repo
}

func TestServiceGenerateAndStorePersistsSnapshot(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{text: sampleModelOutput()}
	service, repo := setupService(t, completer)
	ctx := context.Background()

	req := GenerateRequest{
		Topic:    "The Future of Artificial Intelligence",
		Tone:     "professional",
		Length:   "medium",
		Keywords: "AI, Machine Learning",
	}

	post, err := service.GenerateAndStore(ctx, req)
	if err != nil {
		t.Fatalf("GenerateAndStore returned error: %v", err)
	}

	if post.ID == 0 {
		t.Fatalf("expected stored post to have an identity")
	}

	if post.Topic != req.Topic || post.Tone != req.Tone || post.Length != req.Length || post.Keywords != req.Keywords {
		t.Fatalf("expected request fields echoed on record, got %+v", post)
	}

	if post.Title == "" || len(post.Content) < 50 || post.WordCount <= 0 {
		t.Fatalf("expected generated fields on record, got %+v", post)
	}

	stored, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}

	if stored.Title != post.Title || stored.Content != post.Content {
		t.Fatalf("expected stored snapshot to match returned post")
	}

	if completer.calls != 1 {
		t.Fatalf("expected a single completion call, got %d", completer.calls)
	}
}

func TestServiceGenerateFailureLeavesNoRecord(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{err: &llm.ModelError{Kind: llm.FailureTimeout, Message: "timed out"}}
	service, repo := setupService(t, completer)
	ctx := context.Background()

	if _, err := service.GenerateAndStore(ctx, GenerateRequest{Topic: "Doomed Topic"}); err == nil {
		t.Fatalf("expected error when generation fails")
	}

	total, _, err := repo.List(ctx, 0, 20)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if total != 0 {
		t.Fatalf("expected no orphaned records after failure, got %d", total)
	}
}

func TestServiceGenerateAndStoreRequiresTopic(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t, &stubCompleter{text: sampleModelOutput()})

	if _, err := service.GenerateAndStore(context.Background(), GenerateRequest{Topic: "  "}); err == nil {
		t.Fatalf("expected error for blank topic")
	}
}

func TestServiceListDefaultsLimit(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{text: sampleModelOutput()}
	service, _ := setupService(t, completer)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := service.GenerateAndStore(ctx, GenerateRequest{Topic: "Recurring Topic"}); err != nil {
			t.Fatalf("GenerateAndStore returned error: %v", err)
		}
	}

	total, posts, err := service.ListPosts(ctx, -5, 0)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}

	if total != 3 || len(posts) != 3 {
		t.Fatalf("expected 3 posts with defaulted paging, got total %d, page %d", total, len(posts))
	}
}

func TestServiceDeleteThenListShowsDecrementedTotal(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{text: sampleModelOutput()}
	service, _ := setupService(t, completer)
	ctx := context.Background()

	first, err := service.GenerateAndStore(ctx, GenerateRequest{Topic: "Keep Me Around"})
	if err != nil {
		t.Fatalf("GenerateAndStore returned error: %v", err)
	}

	second, err := service.GenerateAndStore(ctx, GenerateRequest{Topic: "Delete Me Soon"})
	if err != nil {
		t.Fatalf("GenerateAndStore returned error: %v", err)
	}

	if err := service.DeletePost(ctx, second.ID); err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}

	total, posts, err := service.ListPosts(ctx, 0, 20)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}

	if total != 1 {
		t.Fatalf("expected total decremented by one, got %d", total)
	}

	for _, post := range posts {
		if post.ID == second.ID {
			t.Fatalf("expected deleted id absent from listing")
		}
	}

	if posts[0].ID != first.ID {
		t.Fatalf("expected surviving post %d, got %d", first.ID, posts[0].ID)
	}
}

func TestServiceDeleteMissingPostReturnsNotFound(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t, &stubCompleter{text: sampleModelOutput()})

	err := service.DeletePost(context.Background(), 424242)
	if err == nil {
		t.Fatalf("expected error for missing post")
	}

	if !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceGetPostPropagatesNotFound(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t, &stubCompleter{text: sampleModelOutput()})

	_, err := service.GetPost(context.Background(), 98765)
	if !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceGenerationErrorSurfacesReason(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{text: "too short to be a blog post"}
	service, _ := setupService(t, completer)

	_, err := service.GenerateAndStore(context.Background(), GenerateRequest{Topic: "Tiny Output"})
	if err == nil {
		t.Fatalf("expected error for short model output")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Reason != "content too short" {
		t.Fatalf("expected content-too-short generation error, got %v", err)
	}
}
