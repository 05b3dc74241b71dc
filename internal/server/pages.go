package server

import (
	"embed"
	"fmt"
	"io"
	"text/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Values are escaped explicitly with [Escape] inside the templates. html/template would spell
// quotes as &#34; and &#39;, which is not what the operator pages promise.
var pageTemplates = template.Must(
	template.New("pages").Funcs(template.FuncMap{"escape": Escape}).ParseFS(templateFS, "templates/*.html"),
)

var pageNames = map[Outcome]string{
	NotFound:       "not_found.html",
	UpstreamError:  "upstream_error.html",
	CodeReceived:   "code_received.html",
	NoCodeReceived: "no_code.html",
}

// PageData is everything a page may interpolate. Only the fields relevant to an outcome are read.
type PageData struct {
	Service          string
	Tool             string
	CallbackURL      string
	Code             string
	Error            string
	ErrorDescription string
}

// RenderPage writes the page for o to w.
func RenderPage(w io.Writer, o Outcome, data PageData) error {
	name, ok := pageNames[o]
	if !ok {
		return fmt.Errorf("no page for outcome %d", int(o))
	}
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
