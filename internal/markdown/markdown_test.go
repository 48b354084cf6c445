package markdown

import (
	"strings"
	"testing"
)

func TestRenderConvertsHeadingsAndParagraphs(t *testing.T) {
	t.Parallel()

	html, err := Render("## Section\n\nBody text with **emphasis**.")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	rendered := string(html)
	if !strings.Contains(rendered, "<h2>Section</h2>") {
		t.Fatalf("expected h2 heading in output, got %q", rendered)
	}

	if !strings.Contains(rendered, "<strong>emphasis</strong>") {
		t.Fatalf("expected strong emphasis in output, got %q", rendered)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	t.Parallel()

	html, err := Render("")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if strings.TrimSpace(string(html)) != "" {
		t.Fatalf("expected empty output for empty input, got %q", html)
	}
}
