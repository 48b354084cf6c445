package blog

import (
	"fmt"
	"strings"
)

// Tone selects the writing style requested from the model. Unknown values
// fall back to ToneProfessional.
type Tone int

const (
	ToneProfessional Tone = iota
	ToneCasual
	ToneTechnical
	ToneEducational
)

// ParseTone maps a caller-supplied tone string onto a known Tone.
func ParseTone(value string) Tone {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "casual":
		return ToneCasual
	case "technical":
		return ToneTechnical
	case "educational":
		return ToneEducational
	default:
		return ToneProfessional
	}
}

func (t Tone) String() string {
	switch t {
	case ToneCasual:
		return "casual"
	case ToneTechnical:
		return "technical"
	case ToneEducational:
		return "educational"
	default:
		return "professional"
	}
}

// Description returns the style clause embedded in the prompt.
func (t Tone) Description() string {
	switch t {
	case ToneCasual:
		return "friendly, conversational, and relatable"
	case ToneTechnical:
		return "detailed, precise, and technically accurate"
	case ToneEducational:
		return "informative, clear, and easy to understand"
	default:
		return "authoritative, polished, business-appropriate"
	}
}

// Length selects the target size of the generated post. Unknown values fall
// back to LengthMedium.
type Length int

const (
	LengthShort Length = iota
	LengthMedium
	LengthLong
)

// ParseLength maps a caller-supplied length string onto a known Length.
func ParseLength(value string) Length {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "short":
		return LengthShort
	case "long":
		return LengthLong
	default:
		return LengthMedium
	}
}

func (l Length) String() string {
	switch l {
	case LengthShort:
		return "short"
	case LengthLong:
		return "long"
	default:
		return "medium"
	}
}

// WordTarget returns the word-count range requested from the model.
func (l Length) WordTarget() string {
	switch l {
	case LengthShort:
		return "600-800 words"
	case LengthLong:
		return "1800-2500 words"
	default:
		return "1000-1500 words"
	}
}

// SectionTarget returns the number of H2 sections requested from the model.
func (l Length) SectionTarget() int {
	switch l {
	case LengthShort:
		return 3
	case LengthLong:
		return 7
	default:
		return 5
	}
}

// BuildPrompt composes the single instruction block sent to the model. The
// formatting template is spelled out literally so the post-processor can rely
// on an H1 title line and H2 section headings.
func BuildPrompt(topic string, tone Tone, length Length, keywords string) string {
	var b strings.Builder

	b.WriteString("Write a comprehensive blog post on the following topic.\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", strings.TrimSpace(topic))
	fmt.Fprintf(&b, "Tone: %s\n", tone.Description())
	fmt.Fprintf(&b, "Target Length: %s across %d main sections\n", length.WordTarget(), length.SectionTarget())

	if trimmed := strings.TrimSpace(keywords); trimmed != "" {
		fmt.Fprintf(&b, "Keywords to include: %s (weave them in naturally)\n", trimmed)
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("1. Create an engaging, SEO-friendly title.\n")
	b.WriteString("2. Write a compelling introduction.\n")
	fmt.Fprintf(&b, "3. Organize the content into %d main sections with clear subheadings (use ## for subheadings).\n", length.SectionTarget())
	b.WriteString("4. Include practical examples and insights.\n")
	b.WriteString("5. End with a strong conclusion.\n")

	b.WriteString("\nFormat your response exactly as:\n")
	b.WriteString("# [Title]\n\n")
	b.WriteString("[Introduction paragraph]\n\n")
	b.WriteString("## [Section Title]\n[Content]\n\n")
	b.WriteString("## Conclusion\n[Conclusion]\n\n")
	b.WriteString("Write the blog post:")

	return b.String()
}
