// Package server provides the HTTP side of oauthcb: routing, middleware, the OAuth callback handler
// and the listener that owns the loopback socket.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] receives the redirect an OAuth 2.0 provider issues after user consent. It never
// exchanges the code; it classifies the request into one [Outcome] and renders a page so a human can
// copy the authorization code into another tool:
//
//	NotFound        404  any path other than the callback path
//	UpstreamError   400  the provider redirected with ?error=
//	CodeReceived    200  the provider redirected with ?code=
//	NoCodeReceived  400  neither parameter carried a value
//
// Empty parameter values count as absent. Every interpolated value goes through [Escape].
//
// # Listener
//
// [Server] binds the socket once, serves until its context is cancelled, then shuts down gracefully:
// new connections are refused and in-flight responses are allowed to finish.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
