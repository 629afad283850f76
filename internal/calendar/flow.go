package calendar

import (
	"context"
	"sync/atomic"

	"github.com/Godley/take-a-break/internal/logger"
)

// Querier is the downstream step that runs once a credential is ready.
type Querier interface {
	ListUpcoming(ctx context.Context, client *AuthorizedClient) error
}

// AuthorizerFactory builds the authorizer once the client secrets are known.
type AuthorizerFactory func(secrets *ClientSecrets) (*Authorizer, error)

// Flow runs LoadClientSecrets -> Authorize -> Query. Each stage either hands a
// value to the next or stops the attempt with a logged FlowError. A Flow runs
// at most once.
type Flow struct {
	secretsPath   string
	newAuthorizer AuthorizerFactory
	query         Querier
	ran           atomic.Bool
}

func NewFlow(secretsPath string, newAuthorizer AuthorizerFactory, query Querier) *Flow {
	return &Flow{
		secretsPath:   secretsPath,
		newAuthorizer: newAuthorizer,
		query:         query,
	}
}

// Run executes the pipeline on the calling goroutine. It blocks on disk,
// console and network I/O.
func (f *Flow) Run(ctx context.Context) error {
	if !f.ran.CompareAndSwap(false, true) {
		return ErrFlowAlreadyRan
	}

	secrets, err := LoadClientSecrets(f.secretsPath)
	if err != nil {
		logger.Error("Error loading client secret file", "path", f.secretsPath, "error", err)
		return err
	}

	authorizer, err := f.newAuthorizer(secrets)
	if err != nil {
		logger.Error("Failed to initialize authorizer", "error", err)
		return err
	}

	client, err := authorizer.Authorize(ctx)
	if err != nil {
		logger.Error("Authorization failed", "kind", KindOf(err).String(), "error", err)
		return err
	}

	return f.query.ListUpcoming(ctx, client)
}

// Start runs the flow on its own goroutine. The returned channel receives the
// result and is then closed.
func (f *Flow) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- f.Run(ctx)
	}()
	return done
}
