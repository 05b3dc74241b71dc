// Package ui styles the few lines oauthcb prints to the terminal: the startup banner, the shutdown notice
// and the authorization URL printed by the url command.
//
// Styles come from a [Palette] of lipgloss styles. Output written to a non-terminal falls back to plain
// text because lipgloss detects the color profile of the writer.
package ui
