package format

import (
	"strings"
	"unicode"
)

// SpanKind classifies a run of note content for presentation.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanTag           // #word reference
	SpanLink          // bare http(s) URL
)

type Span struct {
	Kind SpanKind
	Text string
}

// Annotate splits note content into text/tag/link spans. #word tokens are
// tag references (only at the start of a word, so "c#4" stays text); bare
// http:// and https:// URLs become links. Pure presentation hint: the
// content itself is never rewritten.
func Annotate(content string) []Span {
	if content == "" {
		return nil
	}
	var spans []Span
	text := func(s string) {
		if s == "" {
			return
		}
		// Merge adjacent text runs so callers see at most one text span
		// between annotations.
		if len(spans) > 0 && spans[len(spans)-1].Kind == SpanText {
			spans[len(spans)-1].Text += s
			return
		}
		spans = append(spans, Span{Kind: SpanText, Text: s})
	}

	runes := []rune(content)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '#' && wordBoundaryBefore(runes, i) {
			j := i + 1
			for j < len(runes) && isTagRune(runes[j]) {
				j++
			}
			if j > i+1 {
				text(string(runes[start:i]))
				spans = append(spans, Span{Kind: SpanTag, Text: string(runes[i:j])})
				start = j
				i = j - 1
			}
			continue
		}
		if rest := string(runes[i:]); wordBoundaryBefore(runes, i) &&
			(strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://")) {
			j := i
			for j < len(runes) && !unicode.IsSpace(runes[j]) {
				j++
			}
			text(string(runes[start:i]))
			spans = append(spans, Span{Kind: SpanLink, Text: string(runes[i:j])})
			start = j
			i = j - 1
		}
	}
	text(string(runes[start:]))
	return spans
}

// Tags returns just the tag words (without '#') referenced in content.
func Tags(content string) []string {
	var tags []string
	for _, s := range Annotate(content) {
		if s.Kind == SpanTag {
			tags = append(tags, strings.TrimPrefix(s.Text, "#"))
		}
	}
	return tags
}

func wordBoundaryBefore(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	return unicode.IsSpace(runes[i-1])
}

func isTagRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
