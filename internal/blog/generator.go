package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"blogforge/app/internal/llm"
)

// Validation floors for raw and processed model output.
const (
	minRawContentLength       = 100
	minProcessedContentLength = 50
)

// GenerateRequest carries the caller-supplied generation parameters. Tone and
// length are kept as raw strings so the stored record echoes exactly what the
// caller sent; unknown values fall back during prompt construction.
type GenerateRequest struct {
	Topic    string
	Tone     string
	Length   string
	Keywords string
}

// Draft is the output of one generation run, ready to be persisted.
type Draft struct {
	Title     string
	Content   string
	WordCount int
	SEOScore  float64
}

// Generator drives the full pipeline: prompt construction, model invocation,
// cleanup, and scoring.
type Generator struct {
	completer llm.Completer
	logger    *logrus.Logger
}

// NewGenerator wires the generation pipeline with its model client.
func NewGenerator(completer llm.Completer, logger *logrus.Logger) (*Generator, error) {
	if completer == nil {
		return nil, eris.New("llm completer is required")
	}

	return &Generator{completer: completer, logger: logger}, nil
}

// Generate produces a blog post draft for the request. It fails with
// *GenerationError when the model cannot produce usable text after retries or
// when the produced text is degenerate. Nothing is persisted here.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Draft, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, eris.New("topic is required")
	}

	tone := ParseTone(req.Tone)
	length := ParseLength(req.Length)
	prompt := BuildPrompt(topic, tone, length, req.Keywords)

	g.logInfo(logrus.Fields{
		"topic":  topic,
		"tone":   tone.String(),
		"length": length.String(),
	}, "requesting blog generation")

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		var modelErr *llm.ModelError
		if errors.As(err, &modelErr) && modelErr.Retryable() {
			return nil, &GenerationError{Reason: "failed after multiple retries", Err: err}
		}
		return nil, eris.Wrap(err, "requesting blog completion")
	}

	if len(strings.TrimSpace(raw)) < minRawContentLength {
		return nil, &GenerationError{Reason: "content too short"}
	}

	cleaned := CleanContent(raw)
	title, content := ExtractTitleAndContent(cleaned, topic)

	if len(strings.TrimSpace(content)) < minProcessedContentLength {
		return nil, &GenerationError{Reason: "failed to extract valid content"}
	}

	formatted := AddFormatting(content)
	wordCount := CountWords(formatted)
	seoScore := SEOScore(formatted, title, req.Keywords)

	g.logInfo(logrus.Fields{
		"topic":      topic,
		"word_count": wordCount,
		"seo_score":  seoScore,
	}, "blog generation complete")

	return &Draft{
		Title:     title,
		Content:   formatted,
		WordCount: wordCount,
		SEOScore:  seoScore,
	}, nil
}

func (g *Generator) logInfo(fields logrus.Fields, message string) {
	if g.logger == nil {
		return
	}
	g.logger.WithFields(fields).Info(message)
}
