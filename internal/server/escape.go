package server

import "strings"

// The replacer scans left to right in a single pass, so an '&' it emits is never revisited.
// That gives the same result as replacing '&' first and the other four characters afterwards.
var (
	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	unescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#039;", "'",
		"&amp;", "&",
	)
)

// Escape replaces the five characters with meaning in HTML markup (& < > " ') with their entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses [Escape]. Entities other than the five it produces are left as they are.
func Unescape(s string) string {
	return unescaper.Replace(s)
}
