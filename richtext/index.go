package richtext

import (
	"html"
	"strings"

	"github.com/iw2rmb/blockpad/internal/grapheme"
)

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenEntity
	tokenTag
)

// token is one lexical unit of content. Text tokens are single grapheme
// clusters; tags are invisible.
type token struct {
	kind  tokenKind
	start int // byte offset into content
	end   int
}

func (t token) visible() bool { return t.kind != tokenTag }

func tokenize(content string) []token {
	out := make([]token, 0, len(content))
	i := 0
	for i < len(content) {
		switch content[i] {
		case '<':
			if j := strings.IndexByte(content[i:], '>'); j > 0 {
				out = append(out, token{kind: tokenTag, start: i, end: i + j + 1})
				i += j + 1
				continue
			}
		case '&':
			if n := entityLen(content[i:]); n > 0 {
				out = append(out, token{kind: tokenEntity, start: i, end: i + n})
				i += n
				continue
			}
		}

		// Plain run up to the next markup byte; the first byte is always part
		// of it so unterminated '<' and bare '&' still advance.
		j := i + 1
		for j < len(content) && content[j] != '<' && content[j] != '&' {
			j++
		}
		off := i
		for _, c := range grapheme.Split(content[i:j]) {
			out = append(out, token{kind: tokenText, start: off, end: off + len(c)})
			off += len(c)
		}
		i = j
	}
	return out
}

// entityLen returns the byte length of a character reference at the start of
// s ("&amp;", "&#39;", "&#x1F600;"), or 0.
func entityLen(s string) int {
	const maxEntity = 12
	for i := 1; i < len(s) && i < maxEntity; i++ {
		c := s[i]
		switch {
		case c == ';':
			if i == 1 {
				return 0
			}
			return i + 1
		case c == '#' && i == 1:
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return 0
		}
	}
	return 0
}

// Len returns the number of visible positions in content.
func Len(content string) int {
	n := 0
	for _, t := range tokenize(content) {
		if t.visible() {
			n++
		}
	}
	return n
}

// Char is one visible character with the inline styles active on it.
type Char struct {
	Text  string // unescaped display text
	Style Style
}

// Chars returns the visible characters of content in order. Unknown tags are
// skipped; unbalanced closing tags are ignored.
func Chars(content string) []Char {
	toks := tokenize(content)
	out := make([]Char, 0, len(toks))
	var stack []Style
	active := func() Style {
		var s Style
		for _, st := range stack {
			s |= st
		}
		return s
	}
	for _, t := range toks {
		raw := content[t.start:t.end]
		switch t.kind {
		case tokenTag:
			closing, name := parseTag(raw)
			st := styleForTag(name)
			if st == 0 {
				continue
			}
			if !closing {
				stack = append(stack, st)
				continue
			}
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == st {
					stack = append(stack[:i], stack[i+1:]...)
					break
				}
			}
		case tokenEntity:
			out = append(out, Char{Text: html.UnescapeString(raw), Style: active()})
		default:
			out = append(out, Char{Text: raw, Style: active()})
		}
	}
	return out
}

func parseTag(raw string) (closing bool, name string) {
	s := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		closing = true
		s = strings.TrimSpace(s[1:])
	}
	end := strings.IndexAny(s, " \t\n/")
	if end >= 0 {
		s = s[:end]
	}
	return closing, s
}

// RawOffset maps a visible offset to a byte offset in content. The result is
// just after the at-th visible character, before any tags that follow it.
// Offsets are clamped to [0, Len(content)].
func RawOffset(content string, at int) int {
	if at <= 0 {
		return 0
	}
	seen := 0
	for _, t := range tokenize(content) {
		if !t.visible() {
			continue
		}
		seen++
		if seen == at {
			return t.end
		}
	}
	return len(content)
}

// VisibleOffset maps a byte offset in content to the number of visible
// characters that end at or before it.
func VisibleOffset(content string, raw int) int {
	n := 0
	for _, t := range tokenize(content) {
		if t.end > raw {
			break
		}
		if t.visible() {
			n++
		}
	}
	return n
}

// InsertText inserts escaped text at visible offset at and returns the new
// content and the visible offset just past the inserted text.
func InsertText(content string, at int, text string) (string, int) {
	at = clampInt(at, 0, Len(content))
	if text == "" {
		return content, at
	}
	raw := RawOffset(content, at)
	esc := Escape(text)
	next := content[:raw] + esc + content[raw:]
	return next, at + Len(esc)
}

// DeleteBefore removes the visible character before visible offset at. Spans
// left empty by the deletion are dropped.
func DeleteBefore(content string, at int) (string, int) {
	if at <= 0 {
		return content, 0
	}
	seen := 0
	for _, t := range tokenize(content) {
		if !t.visible() {
			continue
		}
		seen++
		if seen == at {
			next := content[:t.start] + content[t.end:]
			return pruneEmptySpans(next), at - 1
		}
	}
	return content, Len(content)
}

func pruneEmptySpans(content string) string {
	for {
		prev := content
		for _, tag := range []string{"b", "i", "u", "s"} {
			content = strings.ReplaceAll(content, "<"+tag+"></"+tag+">", "")
		}
		if content == prev {
			return content
		}
	}
}

// RunBefore returns the text run immediately preceding visible offset at:
// the bytes between the last tag before the cursor and the cursor itself.
// start and end are byte offsets into content.
func RunBefore(content string, at int) (start, end int, run string) {
	end = RawOffset(content, clampInt(at, 0, Len(content)))
	for _, t := range tokenize(content) {
		if t.end > end {
			break
		}
		if t.kind == tokenTag {
			start = t.end
		}
	}
	return start, end, content[start:end]
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
