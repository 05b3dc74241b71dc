package server

import (
	"net/http"
	"net/url"
	"testing"
)

func TestClassify(t *testing.T) {
	const path = "/auth/callback"

	tc := []struct {
		name   string
		target string
		want   Outcome
	}{
		{name: "code", target: "/auth/callback?code=ABC123", want: CodeReceived},
		{name: "error", target: "/auth/callback?error=access_denied", want: UpstreamError},
		{name: "error beats code", target: "/auth/callback?code=ABC&error=denied", want: UpstreamError},
		{name: "no query", target: "/auth/callback", want: NoCodeReceived},
		{name: "empty code", target: "/auth/callback?code=", want: NoCodeReceived},
		{name: "empty error falls through to code", target: "/auth/callback?error=&code=XYZ", want: CodeReceived},
		{name: "empty both", target: "/auth/callback?code=&error=", want: NoCodeReceived},
		{name: "other path", target: "/random/path", want: NotFound},
		{name: "root", target: "/", want: NotFound},
		{name: "trailing slash", target: "/auth/callback/?code=ABC", want: NotFound},
		{name: "prefix only", target: "/auth?code=ABC", want: NotFound},
		{name: "other path with code", target: "/callback?code=ABC", want: NotFound},
		{name: "malformed query keeps good pairs", target: "/auth/callback?bad=%zz&code=ABC", want: CodeReceived},
		{name: "semicolon in code", target: "/auth/callback?code=abc;def", want: CodeReceived},
		{name: "semicolon in error", target: "/auth/callback?error=a;b", want: UpstreamError},
		{name: "undecodable code is absent", target: "/auth/callback?code=%zz", want: NoCodeReceived},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.target)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", tt.target, err)
			}

			got := Classify(ParseCallbackRequest(u), path)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestParseCallbackRequest(t *testing.T) {
	u, err := url.Parse("/auth/callback?code=first&code=second&error=x&error_description=User+said+no")
	if err != nil {
		t.Fatalf("failed to parse url: %v", err)
	}

	req := ParseCallbackRequest(u)
	if req.Path != "/auth/callback" {
		t.Errorf("expected path /auth/callback, got %s", req.Path)
	}
	if req.Code != "first" {
		t.Errorf("expected first code value, got %s", req.Code)
	}
	if req.Error != "x" {
		t.Errorf("expected error x, got %s", req.Error)
	}
	if req.ErrorDescription != "User said no" {
		t.Errorf("expected decoded description, got %q", req.ErrorDescription)
	}
}

func TestParseCallbackRequestOpaqueValues(t *testing.T) {
	tc := []struct {
		name  string
		query string
		code  string
		err   string
	}{
		{name: "semicolon kept", query: "code=abc;def", code: "abc;def"},
		{name: "encoded semicolon", query: "code=abc%3Bdef", code: "abc;def"},
		{name: "plus is space", query: "error=access+denied", err: "access denied"},
		{name: "empty pairs skipped", query: "&&code=x&", code: "x"},
		{name: "key without value", query: "code&error=e;f", err: "e;f"},
		{name: "bad pair skipped", query: "code=%zz&code=second", code: "second"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseCallbackRequest(&url.URL{Path: "/auth/callback", RawQuery: tt.query})
			if req.Code != tt.code {
				t.Errorf("code = %q, want %q", req.Code, tt.code)
			}
			if req.Error != tt.err {
				t.Errorf("error = %q, want %q", req.Error, tt.err)
			}
		})
	}
}

func TestOutcomeStatus(t *testing.T) {
	tc := []struct {
		outcome Outcome
		status  int
		name    string
	}{
		{NotFound, http.StatusNotFound, "not_found"},
		{UpstreamError, http.StatusBadRequest, "upstream_error"},
		{CodeReceived, http.StatusOK, "code_received"},
		{NoCodeReceived, http.StatusBadRequest, "no_code_received"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Status(); got != tt.status {
				t.Errorf("Status() = %d, want %d", got, tt.status)
			}
			if got := tt.outcome.String(); got != tt.name {
				t.Errorf("String() = %s, want %s", got, tt.name)
			}
		})
	}

	if Outcome(42).String() != "unknown" {
		t.Error("expected unknown for out of range outcome")
	}
}
