package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

// CallbackOptions configures a [CallbackHandler].
type CallbackOptions struct {
	CallbackPath string // e.g. /auth/callback
	CallbackURL  string // absolute URL shown on the not-found page
	Service      string // shown on the not-found page and success page
	Tool         string // downstream tool the operator pastes the code into
	Logger       *log.Logger
}

// CallbackHandler renders the result of an OAuth 2.0 authorization redirect.
// Implements the Handler interface for registration with a Router.
//
// It holds no per-request state; every request is classified and answered on its own.
type CallbackHandler struct {
	opts     CallbackOptions
	logger   *log.Logger
	notifier *resultNotifier
}

// NewCallbackHandler creates a callback handler. A nil logger discards output.
func NewCallbackHandler(opts CallbackOptions) *CallbackHandler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CallbackHandler{opts: opts, logger: logger, notifier: newResultNotifier()}
}

// Result receives the first code or provider error and is then closed. Requests that only hit the
// callback path without parameters, or miss it, do not count.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.notifier.ch
}

// Routes registers the handler at the root so every path reaches it; the not-found decision is made
// by [Classify], not by the mux.
func (h *CallbackHandler) Routes() []string {
	return []string{"/"}
}

// ServeHTTP classifies the request and writes the matching page.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := ParseCallbackRequest(r.URL)
	outcome := Classify(req, h.opts.CallbackPath)

	data := PageData{
		Service:     h.opts.Service,
		Tool:        h.opts.Tool,
		CallbackURL: h.opts.CallbackURL,
	}
	switch outcome {
	case UpstreamError:
		data.Error = req.Error
		data.ErrorDescription = req.ErrorDescription
	case CodeReceived:
		data.Code = req.Code
	}

	var body bytes.Buffer
	if err := RenderPage(&body, outcome, data); err != nil {
		h.logger.Error("render failed", "outcome", outcome, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.report(outcome, req)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(outcome.Status())
	if _, err := body.WriteTo(w); err != nil {
		h.logger.Debug("failed to write page", "outcome", outcome, "err", err)
	}

	h.notifier.observe(outcome, req)
}

// report logs the outcome. The code itself is never logged.
func (h *CallbackHandler) report(o Outcome, req CallbackRequest) {
	switch o {
	case CodeReceived:
		h.logger.Info("authorization code received", "length", len(req.Code))
	case UpstreamError:
		h.logger.Warn("provider returned an error", "error", req.Error, "description", req.ErrorDescription)
	case NoCodeReceived:
		h.logger.Warn("callback hit without code or error")
	case NotFound:
		h.logger.Debug("unmatched path", "path", req.Path)
	}
}
