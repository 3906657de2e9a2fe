// Package distill groups clips across notes and re-flows them into script,
// slide and essay presentations plus flat text, Markdown and JSON exports.
//
// Renderers and exporters are pure functions over a clip slice. Bundle
// assembly and recency selection reach the note store through interfaces so
// callers decide where bodies come from.
package distill
