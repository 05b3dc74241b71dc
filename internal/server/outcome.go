package server

import (
	"net/http"
	"net/url"
	"strings"
)

// Outcome classifies a request that reached the callback listener.
type Outcome int

const (
	NotFound       Outcome = iota // path is not the callback path
	UpstreamError                 // provider sent ?error=
	CodeReceived                  // provider sent ?code=
	NoCodeReceived                // callback path hit without either value
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not_found"
	case UpstreamError:
		return "upstream_error"
	case CodeReceived:
		return "code_received"
	case NoCodeReceived:
		return "no_code_received"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code written for the outcome.
func (o Outcome) Status() int {
	switch o {
	case NotFound:
		return http.StatusNotFound
	case CodeReceived:
		return http.StatusOK
	default:
		return http.StatusBadRequest
	}
}

// CallbackRequest holds the parts of a redirect the handler looks at.
type CallbackRequest struct {
	Path             string
	Code             string
	Error            string
	ErrorDescription string
}

// ParseCallbackRequest extracts a [CallbackRequest] from u.
//
// Query parsing is lenient: pairs that fail to decode are skipped and the rest are kept.
// When a key repeats, its first value is used. Values are opaque, so a ';' is kept as data.
func ParseCallbackRequest(u *url.URL) CallbackRequest {
	query := parseQuery(u.RawQuery)
	return CallbackRequest{
		Path:             u.Path,
		Code:             query.Get("code"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}
}

// parseQuery splits raw on '&' only. [url.ParseQuery] rejects any pair holding a ';'.
func parseQuery(raw string) url.Values {
	values := url.Values{}
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		values.Add(key, value)
	}
	return values
}

// Classify decides the outcome of req against callbackPath.
//
// An error beats a code, and empty values are treated as absent.
func Classify(req CallbackRequest, callbackPath string) Outcome {
	switch {
	case req.Path != callbackPath:
		return NotFound
	case req.Error != "":
		return UpstreamError
	case req.Code != "":
		return CodeReceived
	default:
		return NoCodeReceived
	}
}
