package server

import (
	"strings"
	"testing"
	"testing/quick"
)

func TestEscape(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "ABC123", want: "ABC123"},
		{name: "empty", input: "", want: ""},
		{name: "ampersand", input: "a&b", want: "a&amp;b"},
		{name: "angle brackets", input: "<b>", want: "&lt;b&gt;"},
		{name: "quotes", input: `"it's"`, want: "&quot;it&#039;s&quot;"},
		{name: "existing entity is escaped again", input: "&lt;", want: "&amp;lt;"},
		{
			name:  "script tag",
			input: "<script>alert(1)</script>",
			want:  "&lt;script&gt;alert(1)&lt;/script&gt;",
		},
		{name: "non ascii untouched", input: "code-ü✓", want: "code-ü✓"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Escape(tt.input)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if back := Unescape(got); back != tt.input {
				t.Errorf("Unescape(%q) = %q, want %q", got, back, tt.input)
			}
		})
	}
}

// onlyKnownEntities reports whether every '&' in s starts one of the entities Escape emits.
func onlyKnownEntities(s string) bool {
	entities := []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#039;"}
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			continue
		}
		known := false
		for _, e := range entities {
			if strings.HasPrefix(s[i:], e) {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}

func TestEscapeRoundTrip(t *testing.T) {
	law := func(s string) bool {
		escaped := Escape(s)
		if strings.ContainsAny(escaped, `<>"'`) {
			return false
		}
		if !onlyKnownEntities(escaped) {
			return false
		}
		return Unescape(escaped) == s
	}

	if err := quick.Check(law, nil); err != nil {
		t.Error(err)
	}

	// quick rarely generates markup characters on its own
	for _, s := range []string{"&&&", "&amp;&lt;", `'"<>&`, "<<<>>>", "&#039;", "a&quot;b"} {
		if !law(s) {
			t.Errorf("round trip failed for %q", s)
		}
	}
}
