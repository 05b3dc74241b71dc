package services

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/desertthunder/oauthcb/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

var providers = map[string]oauth2.Endpoint{
	"github":  endpoints.GitHub,
	"gitlab":  endpoints.GitLab,
	"google":  endpoints.Google,
	"spotify": endpoints.Spotify,
}

// Providers lists the provider names accepted in the oauth.provider setting.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AuthorizeService builds authorization URLs that redirect to the local callback listener.
type AuthorizeService struct {
	config     *oauth2.Config
	accessType string
}

// NewAuthorizeService validates cfg and prepares an [oauth2.Config] with redirectURL as its redirect URI.
func NewAuthorizeService(cfg shared.OAuthConfig, redirectURL string) (*AuthorizeService, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: oauth client_id", shared.ErrMissingArgument)
	}

	endpoint, err := resolveEndpoint(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.AccessType {
	case "", "online", "offline":
	default:
		return nil, fmt.Errorf("%w: access_type %q must be online or offline", shared.ErrInvalidConfig, cfg.AccessType)
	}

	return &AuthorizeService{
		config: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: redirectURL,
			Scopes:      cfg.Scopes,
			Endpoint:    endpoint,
		},
		accessType: cfg.AccessType,
	}, nil
}

func resolveEndpoint(cfg shared.OAuthConfig) (oauth2.Endpoint, error) {
	if cfg.AuthURL != "" {
		u, err := url.Parse(cfg.AuthURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return oauth2.Endpoint{}, fmt.Errorf("%w: auth_url %q is not an absolute URL", shared.ErrInvalidConfig, cfg.AuthURL)
		}
		return oauth2.Endpoint{AuthURL: cfg.AuthURL}, nil
	}

	endpoint, ok := providers[strings.ToLower(cfg.Provider)]
	if !ok {
		return oauth2.Endpoint{}, fmt.Errorf("%w: unknown provider %q (known: %s)",
			shared.ErrInvalidConfig, cfg.Provider, strings.Join(Providers(), ", "))
	}
	return endpoint, nil
}

// AuthURL returns the consent URL for state.
func (s *AuthorizeService) AuthURL(state string) string {
	var opts []oauth2.AuthCodeOption
	switch s.accessType {
	case "offline":
		opts = append(opts, oauth2.AccessTypeOffline)
	case "online":
		opts = append(opts, oauth2.AccessTypeOnline)
	}
	return s.config.AuthCodeURL(state, opts...)
}

// RedirectURL returns the callback URL embedded in every authorization URL.
func (s *AuthorizeService) RedirectURL() string {
	return s.config.RedirectURL
}
