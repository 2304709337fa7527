package richtext

import "strings"

// tagOrder fixes the nesting of emitted spans so Compose is canonical.
var tagOrder = []Style{Bold, Italic, Underline, Strikethrough}

// Compose serializes chars back into content. Adjacent characters with equal
// styles share one set of spans.
func Compose(chars []Char) string {
	var sb strings.Builder
	for i := 0; i < len(chars); {
		j := i + 1
		for j < len(chars) && chars[j].Style == chars[i].Style {
			j++
		}
		st := chars[i].Style
		for _, s := range tagOrder {
			if st.Has(s) {
				sb.WriteString("<" + s.Tag() + ">")
			}
		}
		for _, c := range chars[i:j] {
			sb.WriteString(Escape(c.Text))
		}
		for k := len(tagOrder) - 1; k >= 0; k-- {
			if st.Has(tagOrder[k]) {
				sb.WriteString("</" + tagOrder[k].Tag() + ">")
			}
		}
		i = j
	}
	return sb.String()
}

// Toggle applies style to the visible range [start, end) of content, or
// removes it when every character in the range already carries it. The result
// is recomposed, so unknown tags are dropped.
func Toggle(content string, start, end int, style Style) string {
	chars := Chars(content)
	start = clampInt(start, 0, len(chars))
	end = clampInt(end, start, len(chars))
	if start == end || style == 0 {
		return content
	}

	all := true
	for _, c := range chars[start:end] {
		if !c.Style.Has(style) {
			all = false
			break
		}
	}
	for i := start; i < end; i++ {
		if all {
			chars[i].Style &^= style
		} else {
			chars[i].Style |= style
		}
	}
	return Compose(chars)
}
