package autoformat

import (
	"testing"

	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/richtext"
)

func TestDetectBlock(t *testing.T) {
	cases := []struct {
		plain   string
		current block.Type
		want    block.Type
		ok      bool
	}{
		{plain: "#", current: block.Paragraph, want: block.Heading1, ok: true},
		{plain: "##", current: block.Paragraph, want: block.Heading2, ok: true},
		{plain: "###", current: block.Bullet, want: block.Heading3, ok: true},
		{plain: "[]", current: block.Paragraph, want: block.Todo, ok: true},
		{plain: "-", current: block.Heading1, want: block.Bullet, ok: true},
		{plain: "#", current: block.Heading1, ok: false},
		{plain: "-", current: block.Bullet, ok: false},
		{plain: "####", current: block.Paragraph, ok: false},
		{plain: "# ", current: block.Paragraph, ok: false},
		{plain: "a#", current: block.Paragraph, ok: false},
	}
	for _, tc := range cases {
		got, ok := DetectBlock(tc.plain, tc.current)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("DetectBlock(%q, %s): got (%q,%v), want (%q,%v)", tc.plain, tc.current, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDetectInline_PriorityOrder(t *testing.T) {
	cases := []struct {
		window string
		style  richtext.Style
		inner  string
		start  int
		ok     bool
	}{
		{window: "Hello **neat**", style: richtext.Bold, inner: "neat", start: 6, ok: true},
		{window: "**x**", style: richtext.Bold, inner: "x", start: 0, ok: true},
		{window: "an *em*", style: richtext.Italic, inner: "em", start: 3, ok: true},
		{window: "~gone~", style: richtext.Strikethrough, inner: "gone", start: 0, ok: true},
		{window: "~*x*~", style: richtext.Strikethrough, inner: "*x*", start: 0, ok: true},
		{window: "**", ok: false},
		{window: "~~", ok: false},
		{window: "*x* trailing", ok: false},
		{window: "plain", ok: false},
	}
	for _, tc := range cases {
		m, ok := DetectInline(tc.window)
		if ok != tc.ok {
			t.Fatalf("DetectInline(%q): ok got %v, want %v", tc.window, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if m.Style != tc.style || m.Inner != tc.inner || m.Start != tc.start || m.End != len(tc.window) {
			t.Fatalf("DetectInline(%q): got %+v, want style=%v inner=%q start=%d end=%d",
				tc.window, m, tc.style, tc.inner, tc.start, len(tc.window))
		}
	}
}

func TestOnSpace_HashOnEmptyParagraphBecomesHeading(t *testing.T) {
	res := OnSpace(block.Block{ID: "a", Type: block.Paragraph, Content: "#"}, 1)
	if res.Kind != KindBlock || res.Type != block.Heading1 {
		t.Fatalf("result: got %+v", res)
	}
}

func TestOnSpace_DashBecomesBullet(t *testing.T) {
	res := OnSpace(block.Block{ID: "a", Type: block.Paragraph, Content: "-"}, 1)
	if res.Kind != KindBlock || res.Type != block.Bullet {
		t.Fatalf("result: got %+v", res)
	}
}

func TestOnSpace_BlockTriggerUsesPlainText(t *testing.T) {
	res := OnSpace(block.Block{ID: "a", Type: block.Paragraph, Content: "<b>[]</b>"}, 2)
	if res.Kind != KindBlock || res.Type != block.Todo {
		t.Fatalf("result: got %+v", res)
	}
}

func TestOnSpace_BoldSpanConsumesSpace(t *testing.T) {
	content := "Hello **neat**"
	res := OnSpace(block.Block{ID: "a", Content: content}, richtext.Len(content))
	if res.Kind != KindInline || res.Style != richtext.Bold {
		t.Fatalf("result: got %+v", res)
	}
	if want := "Hello <b>neat</b> "; res.Content != want {
		t.Fatalf("content: got %q, want %q", res.Content, want)
	}
	if want := len("Hello neat "); res.Cursor != want {
		t.Fatalf("cursor: got %d, want %d", res.Cursor, want)
	}
}

func TestOnSpace_DoubleStarResolvesAsBoldNotItalic(t *testing.T) {
	res := OnSpace(block.Block{ID: "a", Content: "**x**"}, 5)
	if res.Style != richtext.Bold || res.Content != "<b>x</b> " {
		t.Fatalf("result: got %+v", res)
	}
}

func TestOnSpace_InlineOnlyLooksBeforeCursor(t *testing.T) {
	content := "*a* tail"
	res := OnSpace(block.Block{ID: "a", Content: content}, 3)
	if res.Kind != KindInline {
		t.Fatalf("expected inline match at cursor 3, got %+v", res)
	}
	if want := "<i>a</i>  tail"; res.Content != want {
		t.Fatalf("content: got %q, want %q", res.Content, want)
	}
	if res.Cursor != 2 {
		t.Fatalf("cursor: got %d, want %d", res.Cursor, 2)
	}

	if res := OnSpace(block.Block{ID: "a", Content: content}, len(content)); res.Kind != KindNone {
		t.Fatalf("expected no match at end, got %+v", res)
	}
}

func TestOnSpace_RunStartsAfterLastTag(t *testing.T) {
	content := "<b>bold</b> then ~x~"
	res := OnSpace(block.Block{ID: "a", Content: content}, richtext.Len(content))
	if want := "<b>bold</b> then <s>x</s> "; res.Content != want {
		t.Fatalf("content: got %q, want %q", res.Content, want)
	}
}

func TestOnSpace_NoTrigger(t *testing.T) {
	res := OnSpace(block.Block{ID: "a", Type: block.Heading1, Content: "#"}, 1)
	if res.Kind != KindNone {
		t.Fatalf("heading with '#' should not retrigger, got %+v", res)
	}
}
