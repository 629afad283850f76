package cmd

import (
	"io"
	"os"

	"github.com/Godley/take-a-break/internal/calendar"
	"github.com/Godley/take-a-break/internal/config"
	"github.com/Godley/take-a-break/internal/notifier"
	"github.com/Godley/take-a-break/internal/security"
)

func newTokenStore(c *config.Config, log *security.SecureLogger) (*calendar.TokenStore, error) {
	if c.Auth.EncryptToken {
		return calendar.NewEncryptedTokenStore(c.Auth.TokenPath, log)
	}
	return calendar.NewTokenStore(c.Auth.TokenPath, log), nil
}

// newAuthorizerFactory builds authorizers that read the code from in, print
// to out and raise a desktop notification while waiting.
func newAuthorizerFactory(c *config.Config, in io.Reader, out io.Writer) calendar.AuthorizerFactory {
	log := security.NewSecureLogger(verbose)
	httpClient := security.NewHTTPClient(security.GoogleHosts...)
	notify := notifier.New(c.Auth.NotifyPrompt)

	return func(secrets *calendar.ClientSecrets) (*calendar.Authorizer, error) {
		store, err := newTokenStore(c, log)
		if err != nil {
			return nil, err
		}
		authz := calendar.NewAuthorizer(secrets, store, httpClient, in, out, log)
		authz.OnPrompt = notify.SendAsync
		return authz, nil
	}
}

func newEventLister(c *config.Config, out io.Writer) *calendar.EventLister {
	lister := calendar.NewEventLister(out)
	lister.CalendarID = c.Calendar.CalendarID
	lister.MaxResults = c.Calendar.MaxResults
	return lister
}

// newFlow wires the secrets -> authorize -> list pipeline to the terminal.
func newFlow(c *config.Config) *calendar.Flow {
	return calendar.NewFlow(
		c.Auth.ClientSecretsPath,
		newAuthorizerFactory(c, os.Stdin, os.Stdout),
		newEventLister(c, os.Stdout),
	)
}
