package calendar

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Godley/take-a-break/internal/logger"
	"github.com/Godley/take-a-break/internal/security"
)

// AuthorizedClient is the client context handed to the data query: the
// credential in use and an HTTP client that attaches it.
type AuthorizedClient struct {
	Token *oauth2.Token
	HTTP  *http.Client
}

// Authorizer obtains a credential for the calendar API, preferring the stored
// token and falling back to a console authorization-code exchange.
type Authorizer struct {
	config     *oauth2.Config
	store      *TokenStore
	httpClient *http.Client
	in         *bufio.Reader
	out        io.Writer
	logger     *security.SecureLogger

	// OnPrompt, when set, is called with the authorization URL right after it
	// is printed and before the console read blocks.
	OnPrompt func(authURL string)
}

// NewAuthorizer wires an authorizer for secrets. httpClient carries every
// token endpoint call and every API call made with the resulting credential.
func NewAuthorizer(secrets *ClientSecrets, store *TokenStore, httpClient *http.Client, in io.Reader, out io.Writer, logger *security.SecureLogger) *Authorizer {
	return &Authorizer{
		config:     secrets.OAuthConfig(),
		store:      store,
		httpClient: httpClient,
		in:         bufio.NewReader(in),
		out:        out,
		logger:     logger,
	}
}

// Authorize loads the persisted credential and returns a client bound to it.
// An absent or unreadable token falls through to InteractiveAcquire.
func (a *Authorizer) Authorize(ctx context.Context) (*AuthorizedClient, error) {
	token, err := a.store.Load()
	if err != nil {
		a.logger.LogAuthEvent("token_load", false, map[string]any{
			"error": err.Error(),
		})
		return a.InteractiveAcquire(ctx)
	}

	a.logger.LogAuthEvent("token_load", true, map[string]any{
		"token_valid": token.Valid(),
	})
	if !token.Valid() {
		// Stale tokens are used as-is; oauth2 refreshes when a refresh token exists.
		logger.Debug("cached token is expired", "has_refresh_token", token.RefreshToken != "")
	}

	return a.client(ctx, token), nil
}

// InteractiveAcquire prints the authorization URL, reads one line holding the
// code, exchanges it and persists the result. A failed write is logged and the
// in-memory credential is still returned.
func (a *Authorizer) InteractiveAcquire(ctx context.Context) (*AuthorizedClient, error) {
	authURL := a.AuthCodeURL()
	fmt.Fprintf(a.out, msgAuthorizeURL, authURL)
	if a.OnPrompt != nil {
		a.OnPrompt(authURL)
	}
	fmt.Fprint(a.out, msgEnterCode)

	code, err := a.readCode()
	if err != nil {
		return nil, err
	}

	token, err := a.config.Exchange(a.oauthContext(ctx), code)
	if err != nil {
		a.logger.LogAuthEvent("token_exchange", false, map[string]any{
			"error": err.Error(),
		})
		if security.IsCriticalError(err) {
			a.logger.LogSecurityEvent("token_exchange_refused", security.SeverityCritical, map[string]any{
				"error": err.Error(),
			})
		}
		return nil, NewFlowError(TokenExchangeFailure, "exchange", "error retrieving access token").WithCause(err)
	}

	a.logger.LogAuthEvent("token_exchange", true, map[string]any{
		"has_refresh_token": token.RefreshToken != "",
	})

	if err := a.store.Save(token); err != nil {
		logger.Error("Failed to store token, keeping it in memory for this run", "error", err)
	} else {
		fmt.Fprintf(a.out, msgTokenStored, a.store.Path())
	}

	return a.client(ctx, token), nil
}

// AuthCodeURL is the consent page URL for offline read-only calendar access.
func (a *Authorizer) AuthCodeURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

func (a *Authorizer) readCode() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", NewFlowError(PromptFailure, "read_code", "failed to read authorization code").WithCause(err)
	}

	code := strings.TrimSpace(line)
	if code == "" {
		return "", NewFlowError(PromptFailure, "read_code", "empty authorization code")
	}
	return code, nil
}

func (a *Authorizer) oauthContext(ctx context.Context) context.Context {
	if a.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
}

func (a *Authorizer) client(ctx context.Context, token *oauth2.Token) *AuthorizedClient {
	return &AuthorizedClient{
		Token: token,
		HTTP:  a.config.Client(a.oauthContext(ctx), token),
	}
}
