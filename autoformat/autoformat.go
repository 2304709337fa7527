// Package autoformat detects markdown-style shortcuts typed into a block.
//
// Detection runs when the user presses space. Block-level triggers (the whole
// block text is a marker such as "#" or "[]") retype the block; otherwise the
// text run before the cursor is checked for a delimited inline span.
package autoformat

import (
	"regexp"

	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/richtext"
)

var blockTriggers = map[string]block.Type{
	"#":   block.Heading1,
	"##":  block.Heading2,
	"###": block.Heading3,
	"[]":  block.Todo,
	"-":   block.Bullet,
}

// DetectBlock reports the type the block should become when its entire plain
// text is a trigger marker. A block that already has that type does not match.
func DetectBlock(plain string, current block.Type) (block.Type, bool) {
	t, ok := blockTriggers[plain]
	if !ok || t == current {
		return "", false
	}
	return t, true
}

type inlineRule struct {
	style richtext.Style
	re    *regexp.Regexp
}

// Order matters: "**" contains "*", so bold must be tried before italic.
var inlineRules = []inlineRule{
	{style: richtext.Strikethrough, re: regexp.MustCompile(`~(.+?)~$`)},
	{style: richtext.Bold, re: regexp.MustCompile(`\*\*(.+?)\*\*$`)},
	{style: richtext.Italic, re: regexp.MustCompile(`\*(.+?)\*$`)},
}

// Match is a detected inline span. Start and End are byte offsets of the
// delimited text (markers included) in the searched window; Inner is the text
// between the markers.
type Match struct {
	Start int
	End   int
	Style richtext.Style
	Inner string
}

// DetectInline checks the end of window for a delimited span. At most one
// rule matches; the first in priority order wins.
func DetectInline(window string) (Match, bool) {
	for _, r := range inlineRules {
		loc := r.re.FindStringSubmatchIndex(window)
		if loc == nil {
			continue
		}
		return Match{
			Start: loc[0],
			End:   loc[1],
			Style: r.style,
			Inner: window[loc[2]:loc[3]],
		}, true
	}
	return Match{}, false
}

// Kind identifies which trigger family fired.
type Kind uint8

const (
	KindNone Kind = iota
	KindBlock
	KindInline
)

// Result is the outcome of a space keystroke. When Kind is not KindNone the
// space must not be inserted.
type Result struct {
	Kind Kind

	// Block triggers.
	Type block.Type

	// Inline triggers: the rewritten content and the visible cursor offset
	// just past the absorbed space.
	Content string
	Cursor  int
	Style   richtext.Style
}

// OnSpace runs both checks, block-level first, for a space typed at visible
// offset cursor in b.
func OnSpace(b block.Block, cursor int) Result {
	if t, ok := DetectBlock(richtext.Plain(b.Content), b.Type); ok {
		return Result{Kind: KindBlock, Type: t}
	}
	content, at, m, ok := ApplyInline(b.Content, cursor)
	if !ok {
		return Result{}
	}
	return Result{Kind: KindInline, Content: content, Cursor: at, Style: m.Style}
}

// ApplyInline replaces a span detected in the run before cursor with a styled
// fragment followed by a single space. It returns the new content and the
// visible offset after that space.
func ApplyInline(content string, cursor int) (string, int, Match, bool) {
	start, end, run := richtext.RunBefore(content, cursor)
	m, ok := DetectInline(run)
	if !ok {
		return content, cursor, Match{}, false
	}

	from := start + m.Start
	repl := richtext.Span(m.Style, m.Inner) + " "
	next := content[:from] + repl + content[end:]
	return next, richtext.VisibleOffset(next, from+len(repl)), m, true
}
