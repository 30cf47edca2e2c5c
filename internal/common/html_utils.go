package common

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a line when rendered as text
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// ExtractText gets all text content from an HTML node and its children
func ExtractText(node *html.Node) string {
	var text strings.Builder

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			text.WriteString("\n")
		}
	}

	traverse(node)
	return strings.TrimSpace(text.String())
}

// HTMLToText converts an HTML fragment (such as a Jira rendered field) to plain
// text, one line per block element. Blank lines are dropped.
func HTMLToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	lines := strings.Split(ExtractText(doc), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
