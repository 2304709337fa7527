package richtext

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Style is a set of inline styles. Single styles are one bit each.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Underline
	Strikethrough
)

// Has reports whether every style in o is present in s.
func (s Style) Has(o Style) bool { return o != 0 && s&o == o }

func (s Style) String() string {
	if s == 0 {
		return "plain"
	}
	var parts []string
	if s.Has(Bold) {
		parts = append(parts, "bold")
	}
	if s.Has(Italic) {
		parts = append(parts, "italic")
	}
	if s.Has(Underline) {
		parts = append(parts, "underline")
	}
	if s.Has(Strikethrough) {
		parts = append(parts, "strikethrough")
	}
	return strings.Join(parts, "+")
}

// Tag returns the element name for a single style, or "" for sets.
func (s Style) Tag() string {
	switch s {
	case Bold:
		return "b"
	case Italic:
		return "i"
	case Underline:
		return "u"
	case Strikethrough:
		return "s"
	default:
		return ""
	}
}

// styleForTag maps element names (including the common aliases browsers
// produce) to a single style.
func styleForTag(name string) Style {
	switch strings.ToLower(name) {
	case "b", "strong":
		return Bold
	case "i", "em":
		return Italic
	case "u", "ins":
		return Underline
	case "s", "strike", "del":
		return Strikethrough
	default:
		return 0
	}
}

// Span wraps already-escaped inner content in the element for style.
// Sets and the zero style return inner unchanged.
func Span(style Style, inner string) string {
	tag := style.Tag()
	if tag == "" {
		return inner
	}
	return "<" + tag + ">" + inner + "</" + tag + ">"
}

// Escape converts plain text into content-safe text.
func Escape(text string) string {
	return html.EscapeString(text)
}

// Plain returns the visible text of content with entities unescaped. It reads
// content the same way Len and Chars do, so a stray "<" stays visible.
func Plain(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return content
	}
	var sb strings.Builder
	for _, c := range Chars(content) {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// IsEmpty reports whether content has no visible text. Leftover empty spans
// such as "<b></b>" count as empty.
func IsEmpty(content string) bool {
	return Plain(content) == ""
}

var sanitizePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del")
	return p
}()

// Sanitize drops every element outside the inline style set, keeping the text
// of dropped elements except script and style bodies. Hosts run it over
// content read from outside the editor, such as a document edited by hand.
func Sanitize(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}
	return sanitizePolicy.Sanitize(content)
}
