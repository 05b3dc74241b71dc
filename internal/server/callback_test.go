package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oauthcb/internal/shared"
)

const testCallbackURL = "http://localhost:3000/auth/callback"

func newTestHandler(logs *bytes.Buffer) *CallbackHandler {
	opts := CallbackOptions{
		CallbackPath: "/auth/callback",
		CallbackURL:  testCallbackURL,
		Service:      "Google MCP Server",
		Tool:         "oauth_complete",
	}
	if logs != nil {
		opts.Logger = shared.NewLogger(logs)
	}
	return NewCallbackHandler(opts)
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCallbackHandler(t *testing.T) {
	h := newTestHandler(nil)

	t.Run("code received", func(t *testing.T) {
		rec := serve(h, "/auth/callback?code=ABC123")

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "ABC123") {
			t.Error("expected body to contain the code")
		}
		if !strings.Contains(body, "<code>oauth_complete</code>") {
			t.Error("expected body to name the downstream tool")
		}
		if n := strings.Count(body, "<script>"); n != 1 {
			t.Errorf("expected exactly the auto-select script, found %d script tags", n)
		}
		if !strings.Contains(body, "addRange(range)") {
			t.Error("expected auto-select script")
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		rec := serve(h, "/auth/callback?error=access_denied")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "access_denied") {
			t.Error("expected body to contain the error")
		}
		if !strings.Contains(body, "try again") {
			t.Error("expected retry guidance")
		}
		if strings.Contains(body, "<script>") {
			t.Error("error page must not carry a script")
		}
	})

	t.Run("upstream error with description", func(t *testing.T) {
		rec := serve(h, "/auth/callback?error=access_denied&error_description=%3Cb%3Enope%3C%2Fb%3E")

		body := rec.Body.String()
		if !strings.Contains(body, "&lt;b&gt;nope&lt;/b&gt;") {
			t.Errorf("expected escaped description, got %s", body)
		}
		if strings.Contains(body, "<b>nope") {
			t.Error("description must not be rendered as markup")
		}
	})

	t.Run("semicolons are part of the value", func(t *testing.T) {
		rec := serve(h, "/auth/callback?code=abc;def")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "abc;def") {
			t.Errorf("expected 200 with code abc;def, got %d", rec.Code)
		}

		rec = serve(h, "/auth/callback?error=a;b")
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "a;b") {
			t.Errorf("expected 400 error page with a;b, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "No authorization code received") {
			t.Error("error with a semicolon fell through to the no code page")
		}
	})

	t.Run("no code received", func(t *testing.T) {
		rec := serve(h, "/auth/callback")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No authorization code received") {
			t.Error("expected no code message")
		}
	})

	t.Run("empty values count as absent", func(t *testing.T) {
		rec := serve(h, "/auth/callback?code=&error=")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No authorization code received") {
			t.Error("expected no code message")
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := serve(h, "/random/path")

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, testCallbackURL) {
			t.Errorf("expected body to contain %s", testCallbackURL)
		}
		if !strings.Contains(body, "OAuth callback server for Google MCP Server") {
			t.Error("expected body to state the server's purpose")
		}
	})

	t.Run("script injection is escaped", func(t *testing.T) {
		rec := serve(h, "/auth/callback?code=%3Cscript%3Ealert(1)%3C%2Fscript%3E")

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "&lt;script&gt;") {
			t.Error("expected escaped script tag")
		}
		if strings.Contains(body, "<script>alert(1)</script>") {
			t.Error("body contains unescaped script")
		}
	})

	t.Run("quotes in error are escaped", func(t *testing.T) {
		rec := serve(h, "/auth/callback?error=%22%27%26")

		if !strings.Contains(rec.Body.String(), "&quot;&#039;&amp;") {
			t.Errorf("expected escaped quotes, got %s", rec.Body.String())
		}
	})

	t.Run("headers", func(t *testing.T) {
		for _, target := range []string{"/auth/callback?code=x", "/auth/callback", "/nope"} {
			rec := serve(h, target)
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("%s: expected text/html, got %s", target, ct)
			}
			if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
				t.Errorf("%s: expected no-store, got %s", target, cc)
			}
		}
	})

	t.Run("requests are independent", func(t *testing.T) {
		serve(h, "/auth/callback?code=FIRST")
		rec := serve(h, "/auth/callback")

		if strings.Contains(rec.Body.String(), "FIRST") {
			t.Error("previous code leaked into a later response")
		}
	})
}

func TestCallbackHandlerLogging(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&logs)

	serve(h, "/auth/callback?code=SECRET-CODE")
	serve(h, "/auth/callback?error=access_denied")

	out := logs.String()
	if strings.Contains(out, "SECRET-CODE") {
		t.Error("authorization code must not be logged")
	}
	if !strings.Contains(out, "authorization code received") {
		t.Errorf("expected code received entry, got %q", out)
	}
	if !strings.Contains(out, "access_denied") {
		t.Errorf("expected error entry, got %q", out)
	}
}

type brokenResponse struct {
	*httptest.ResponseRecorder
}

func (b brokenResponse) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestCallbackHandlerWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&logs)
	h.logger.SetLevel(log.DebugLevel)

	rec := brokenResponse{httptest.NewRecorder()}
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=x", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 to be sent before the body, got %d", rec.Code)
	}
	if !strings.Contains(logs.String(), "failed to write page") {
		t.Errorf("expected write failure to be logged, got %q", logs.String())
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, Outcome(99), PageData{}); err == nil {
		t.Error("expected error for unknown outcome")
	}

	for _, o := range []Outcome{NotFound, UpstreamError, CodeReceived, NoCodeReceived} {
		buf.Reset()
		if err := RenderPage(&buf, o, PageData{Code: "c", Error: "e"}); err != nil {
			t.Errorf("%v: unexpected error: %v", o, err)
		}
		if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") {
			t.Errorf("%v: expected an html document", o)
		}
	}
}
