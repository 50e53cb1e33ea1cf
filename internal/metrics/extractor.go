package metrics

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

var (
	skipLinkPattern   = regexp.MustCompile(`(?i)skip|main content|jump`)
	embeddedVideoHost = regexp.MustCompile(`(?i)youtube|vimeo`)
)

// Extract parses raw HTML and returns structural accessibility counts.
// It is total: malformed or empty input yields a zero-valued Metrics
// record rather than an error.
func Extract(rawHTML string) report.Metrics {
	var m report.Metrics

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return m
	}

	walk(doc, &m)
	return m
}

func walk(n *html.Node, m *report.Metrics) {
	if n.Type == html.ElementNode {
		collectElement(n, m)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, m)
	}
}

func collectElement(n *html.Node, m *report.Metrics) {
	if hasAttr(n, "role") {
		m.ARIALandmarks++
	}

	switch n.Data {
	case "html":
		if strings.TrimSpace(getAttr(n, "lang")) != "" {
			m.HasLang = true
		}
	case "img":
		m.ImagesTotal++
		if strings.TrimSpace(getAttr(n, "alt")) == "" {
			m.ImagesWithoutAlt++
		}
	case "form":
		m.Forms++
	case "h1":
		m.Headings.H1++
	case "h2":
		m.Headings.H2++
	case "h3":
		m.Headings.H3++
	case "h4":
		m.Headings.H4++
	case "h5":
		m.Headings.H5++
	case "h6":
		m.Headings.H6++
	case "table":
		m.Tables++
	case "video":
		m.Videos++
	case "iframe":
		if embeddedVideoHost.MatchString(getAttr(n, "src")) {
			m.Videos++
		}
	case "button":
		if !hasAccessibleName(n) {
			m.ButtonsWithoutText++
		}
	case "a":
		text := textContent(n)
		if skipLinkPattern.MatchString(text) {
			m.HasSkipLink = true
		}
		if !hasAccessibleName(n) {
			m.LinksWithoutText++
		}
	}
}

// hasAccessibleName reports whether an interactive element exposes any
// name to assistive technology: visible text, an aria-label, an
// aria-labelledby reference, or an image child carrying alt text.
func hasAccessibleName(n *html.Node) bool {
	if strings.TrimSpace(textContent(n)) != "" {
		return true
	}
	if strings.TrimSpace(getAttr(n, "aria-label")) != "" {
		return true
	}
	if strings.TrimSpace(getAttr(n, "aria-labelledby")) != "" {
		return true
	}
	return hasChildWithAlt(n)
}

func hasChildWithAlt(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "img" && strings.TrimSpace(getAttr(c, "alt")) != "" {
			return true
		}
		if hasChildWithAlt(c) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}
