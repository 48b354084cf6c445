package blog

import (
	"math"
	"regexp"
	"strings"
)

// Heuristic SEO scoring: a deterministic, rule-based approximation of
// search-friendliness. The thresholds are inherited constants; changing any
// of them is a behaviour change, not a bug fix.

var (
	h2Marker          = regexp.MustCompile(`##\s+`)
	h3Marker          = regexp.MustCompile(`###\s+`)
	introSignal       = regexp.MustCompile(`introduction|overview`)
	conclusionSignal  = regexp.MustCompile(`conclusion|summary|final`)
	qualityWindowSize = 500
)

// SEOScore computes a heuristic score in [0,100] from finished content, a
// title, and an optional comma-separated keyword string. Components are
// computed independently, summed, rounded to 2 decimals, and capped at 100.
func SEOScore(content, title, keywords string) float64 {
	score := 0.0

	// Word count (25 max).
	wordCount := CountWords(content)
	switch {
	case wordCount >= 800 && wordCount <= 2500:
		score += 25
	case (wordCount >= 600 && wordCount < 800) || (wordCount > 2500 && wordCount <= 3000):
		score += 18
	case wordCount > 3000:
		score += 12
	}

	// Title length (15 max).
	titleLength := len(title)
	switch {
	case titleLength >= 40 && titleLength <= 70:
		score += 15
	case (titleLength >= 30 && titleLength < 40) || (titleLength > 70 && titleLength <= 90):
		score += 10
	case titleLength > 0:
		score += 5
	}

	// Heading structure (20 max).
	totalHeadings := len(h2Marker.FindAllString(content, -1)) + len(h3Marker.FindAllString(content, -1))
	switch {
	case totalHeadings >= 3 && totalHeadings <= 8:
		score += 20
	case totalHeadings >= 2 && totalHeadings <= 10:
		score += 15
	case totalHeadings > 0:
		score += 8
	}

	// Keyword coverage (25 max).
	keywordList := splitKeywords(keywords)
	if len(keywordList) > 0 {
		contentLower := strings.ToLower(content)
		titleLower := strings.ToLower(title)

		inContent := 0
		inTitle := 0
		for _, kw := range keywordList {
			if strings.Contains(contentLower, kw) {
				inContent++
			}
			if strings.Contains(titleLower, kw) {
				inTitle++
			}
		}

		switch {
		case inContent >= len(keywordList):
			score += 15
		case float64(inContent) >= float64(len(keywordList))*0.7:
			score += 12
		case inContent > 0:
			score += 8
		}

		if inTitle > 0 {
			score += 10
		}
	} else {
		score += 12
	}

	// Quality signals (15 max).
	contentLower := strings.ToLower(content)
	if introSignal.MatchString(head(contentLower, qualityWindowSize)) {
		score += 7
	}
	if conclusionSignal.MatchString(tail(contentLower, qualityWindowSize)) {
		score += 8
	}

	return math.Min(math.Round(score*100)/100, 100.0)
}

// SEORecommendations returns advisory improvement suggestions for a score.
func SEORecommendations(score float64) []string {
	switch {
	case score < 50:
		return []string{
			"Consider adding more headings and subheadings",
			"Increase content length to at least 800-2000 words",
			"Include relevant keywords naturally",
		}
	case score < 75:
		return []string{
			"Optimize title length (40-70 characters)",
			"Add more structured content sections",
		}
	default:
		return []string{"Great job! Content is well-optimized."}
	}
}

func splitKeywords(keywords string) []string {
	if strings.TrimSpace(keywords) == "" {
		return nil
	}

	parts := strings.Split(keywords, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			list = append(list, trimmed)
		}
	}

	return list
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
