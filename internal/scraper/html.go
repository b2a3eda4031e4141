package scraper

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Small traversal helpers over the x/net/html node tree.

func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func hasClassSubstring(n *html.Node, substr string) bool {
	return n.Type == html.ElementNode && strings.Contains(attr(n, "class"), substr)
}

// findByClass returns the first element whose class attribute contains substr.
func findByClass(root *html.Node, substr string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if hasClassSubstring(n, substr) {
			found = n
			return false
		}
		return true
	})
	return found
}

func findElement(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if isElement(n, tag) {
			found = n
			return false
		}
		return true
	})
	return found
}

func findAllElements(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if isElement(n, tag) {
			out = append(out, n)
		}
		return true
	})
	return out
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// textContent flattens all text under a node, collapsing whitespace and the
// non-breaking space variants the directory markup uses.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		return true
	})
	s := strings.NewReplacer(" ", " ", " ", " ").Replace(b.String())
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
