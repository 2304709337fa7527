// Package richtext implements the block content grammar: HTML-escaped text
// interspersed with inline style spans (<b>, <i>, <u>, <s>).
//
// Cursor offsets are visible offsets: each grapheme cluster of text (or one
// character entity such as &amp;) is one position, and tags occupy none.
package richtext
