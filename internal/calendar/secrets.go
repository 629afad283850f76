package calendar

import (
	"encoding/json"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ClientSecrets is the "installed application" client secret file downloaded
// from the Google Cloud console.
type ClientSecrets struct {
	Installed struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		RedirectURIs []string `json:"redirect_uris"`
		AuthURI      string   `json:"auth_uri"`
		TokenURI     string   `json:"token_uri"`
	} `json:"installed"`
}

// LoadClientSecrets reads and validates the client secret file at path.
// Every failure is a ConfigMissing flow error.
func LoadClientSecrets(path string) (*ClientSecrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewFlowError(ConfigMissing, "load_client_secrets", "failed to read client secret file "+path).WithCause(err)
	}

	var secrets ClientSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, NewFlowError(ConfigMissing, "load_client_secrets", "failed to parse client secret JSON").WithCause(err)
	}

	if secrets.Installed.ClientID == "" {
		return nil, NewFlowError(ConfigMissing, "load_client_secrets", "client_id is missing from client secrets")
	}
	if secrets.Installed.ClientSecret == "" {
		return nil, NewFlowError(ConfigMissing, "load_client_secrets", "client_secret is missing from client secrets")
	}
	if len(secrets.Installed.RedirectURIs) == 0 {
		return nil, NewFlowError(ConfigMissing, "load_client_secrets", "redirect_uris is missing from client secrets")
	}

	return &secrets, nil
}

// OAuthConfig builds the authorization-code configuration. The first redirect
// URI is used; auth_uri and token_uri override Google's endpoints when present.
func (s *ClientSecrets) OAuthConfig() *oauth2.Config {
	endpoint := google.Endpoint
	if s.Installed.AuthURI != "" {
		endpoint.AuthURL = s.Installed.AuthURI
	}
	if s.Installed.TokenURI != "" {
		endpoint.TokenURL = s.Installed.TokenURI
	}

	return &oauth2.Config{
		ClientID:     s.Installed.ClientID,
		ClientSecret: s.Installed.ClientSecret,
		RedirectURL:  s.Installed.RedirectURIs[0],
		Endpoint:     endpoint,
		Scopes:       CalendarScopes,
	}
}
