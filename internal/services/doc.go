// Package services builds the provider side of an authorization code flow.
//
// [AuthorizeService] turns the [shared.OAuthConfig] section into the URL an operator opens to grant
// consent. The provider redirects the browser back to the local callback listener, which only displays
// the code. Nothing here exchanges codes or reads client secrets.
//
// Known providers resolve to endpoints from [golang.org/x/oauth2/endpoints]; a custom auth_url
// overrides the provider lookup.
package services
