// Package markdown loads Markdown notes from a filesystem into an immutable
// in-memory store and derives heading outlines with goldmark.
package markdown
