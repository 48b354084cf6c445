package blog

import "github.com/rotisserie/eris"

// ErrNotFound indicates the requested blog post does not exist.
var ErrNotFound = eris.New("blog post not found")

// GenerationError indicates the pipeline could not produce usable content,
// either because the model gave up after retries or because its output was
// degenerate.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	return "blog generation failed: " + e.Reason
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
