package audit

import "strings"

// DetectSiteType guesses the kind of site from URL and content keywords.
// The label only adjusts the fallback score floor and prompt framing, so
// a wrong guess degrades gracefully.
func DetectSiteType(url, content string) string {
	urlLower := strings.ToLower(url)
	contentHead := strings.ToLower(head(content, 1000))

	switch {
	case strings.Contains(urlLower, "espn") || strings.Contains(contentHead, "sports"):
		return "sports"
	case strings.Contains(urlLower, "news") || strings.Contains(contentHead, "article"):
		return "news"
	case strings.Contains(urlLower, "shop") || strings.Contains(strings.ToLower(content), "cart"):
		return "e-commerce"
	case strings.Contains(urlLower, "github") || strings.Contains(head(contentHead, 500), "code"):
		return "developer"
	case strings.Contains(urlLower, "edu"):
		return "educational"
	default:
		return "general"
	}
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
