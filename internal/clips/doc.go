// Package clips extracts blockquote annotations ("clips") from Markdown notes.
//
// A clip is a contiguous run of quote-marked lines. Runs whose first line
// carries an Obsidian style marker such as [!TIP] are classified as callouts;
// everything else is a plain quote. Every clip remembers the nearest heading
// that precedes it so downstream renderers can group or label it.
//
// The package performs no I/O and never returns errors: malformed syntax is
// treated as plain text and produces no clip.
package clips
