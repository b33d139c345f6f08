// Package doccheck validates documentation override files before they are
// staged into a package's distribution. Catching a broken or empty README
// here fails the one package that references it instead of silently shipping
// a distribution with unusable long-form documentation.
package doccheck

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Validate parses the Markdown file at path and checks it is usable as a
// distribution's top-level documentation: non-empty document with a level-1
// heading carrying text.
func Validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read documentation file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("documentation file %s is empty", path)
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(data))

	title := ""
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			title = headingText(h, data)
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})

	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("documentation file %s has no level-1 heading", path)
	}
	return nil
}

// headingText concatenates the raw text segments under a heading node.
func headingText(h *gmast.Heading, source []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}
