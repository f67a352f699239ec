package inputs

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// HTMLToMarkdown drops non-content elements and converts the rest.
func HTMLToMarkdown(input string) (string, error) {
	cleaned, err := cleanHTML(input)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	markdown, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	markdown = blankLines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}

var blankLines = regexp.MustCompile(`\n{3,}`)

var droppedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"meta":     true,
	"link":     true,
	"head":     true,
	"nav":      true,
	"iframe":   true,
	"svg":      true,
}

func cleanHTML(input string) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", err
	}
	root := doc
	if main := findElement(doc, "main"); main != nil {
		root = main
	} else if body := findElement(doc, "body"); body != nil {
		root = body
	}
	dropNodes(root)
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func dropNodes(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == html.ElementNode && droppedElements[child.Data] {
			n.RemoveChild(child)
		} else {
			dropNodes(child)
		}
		child = next
	}
}
