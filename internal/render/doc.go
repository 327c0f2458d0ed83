// Package render formats backend snapshots for terminal output.
//
// Themes carry the palette, Styles the prebuilt lipgloss styles, and
// Renderer the formatting logic. A Renderer built with colored=false
// degrades every style to plain text, so piped and redirected output stays
// clean without callers branching on tty-ness themselves.
package render
