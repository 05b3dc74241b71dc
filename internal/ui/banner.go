package ui

import (
	"fmt"
	"io"
	"strings"
)

// Banner describes what the serve command prints once the socket is bound.
type Banner struct {
	Service     string
	ListenURL   string
	CallbackURL string
}

// Render returns the banner text.
func (b Banner) Render(p *Palette) string {
	var sb strings.Builder
	sb.WriteString(p.Title("OAuth callback server for " + b.Service))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s running on %s\n", p.OK("✓"), p.Link(b.ListenURL))
	fmt.Fprintf(&sb, "  Callback URL: %s\n", p.Link(b.CallbackURL))
	sb.WriteString(p.Help("Press Ctrl+C to stop the server"))
	sb.WriteString("\n")
	return sb.String()
}

// PrintBanner writes the banner with the default palette.
func PrintBanner(w io.Writer, b Banner) error {
	_, err := io.WriteString(w, b.Render(styles))
	return err
}

// PrintStopped writes the shutdown notice. A non-nil cause is shown in place of the clean stop line.
func PrintStopped(w io.Writer, cause error) error {
	last := styles.OK("Server stopped")
	if cause != nil {
		last = styles.Err("Server stopped: " + cause.Error())
	}
	_, err := fmt.Fprintf(w, "\n%s\n%s\n", styles.Warn("Shutting down OAuth callback server..."), last)
	return err
}

// PrintAuthURL writes the authorization URL the operator should open.
func PrintAuthURL(w io.Writer, authURL, callbackURL string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s %s\n",
		styles.Title("Open this URL to authorize:"),
		authURL,
		styles.Help("Redirects to"),
		styles.Link(callbackURL),
	)
	return err
}
