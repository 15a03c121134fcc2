// Package latex extracts LaTeX expressions from explanation text and
// renders them to images via the CodeCogs API.
package latex

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Segment is a single extracted LaTeX expression.
type Segment struct {
	Latex   string
	Display bool
	Boxed   bool
}

var (
	displayRe = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)
	inlineRe  = regexp.MustCompile(`\$([^$]+?)\$`)
	boxedRe   = regexp.MustCompile(`(?s)\\boxed\{(.*?)\}`)
	numberRe  = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Extract replaces LaTeX segments in text with placeholder keys and
// returns the rewritten text plus a map from placeholder to segment.
// Display math ($$...$$), inline math ($...$) and \boxed{...} are
// recognized. Inline expressions that are plain numbers are left alone.
func Extract(text string) (string, map[string]Segment) {
	segments := make(map[string]Segment)
	idx := 0

	key := func(seg Segment) string {
		k := fmt.Sprintf("@@LATEX_%d@@", idx)
		segments[k] = seg
		idx++
		return k
	}

	out := displayRe.ReplaceAllStringFunc(text, func(match string) string {
		inner := strings.TrimSpace(displayRe.FindStringSubmatch(match)[1])
		if inner == "" {
			return match
		}
		return key(Segment{Latex: inner, Display: true})
	})

	out = inlineRe.ReplaceAllStringFunc(out, func(match string) string {
		inner := strings.TrimSpace(inlineRe.FindStringSubmatch(match)[1])
		if inner == "" || numberRe.MatchString(inner) {
			return match
		}
		return key(Segment{Latex: inner})
	})

	out = boxedRe.ReplaceAllStringFunc(out, func(match string) string {
		inner := strings.TrimSpace(boxedRe.FindStringSubmatch(match)[1])
		if inner == "" {
			return match
		}
		return key(Segment{Latex: inner, Display: true, Boxed: true})
	})

	return out, segments
}

// RenderURL builds a CodeCogs PNG URL for a segment.
func RenderURL(seg Segment) string {
	var expr string
	switch {
	case seg.Boxed:
		expr = `\boxed{` + seg.Latex + `}`
	case seg.Display:
		if strings.HasPrefix(strings.TrimSpace(seg.Latex), `\`) {
			expr = seg.Latex
		} else {
			expr = "$$" + seg.Latex + "$$"
		}
	default:
		expr = "$" + seg.Latex + "$"
	}

	encoded := strings.ReplaceAll(url.QueryEscape(expr), "+", "%20")
	return `https://latex.codecogs.com/png.latex?\dpi{150}%20` + encoded
}
