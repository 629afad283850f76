package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Godley/take-a-break/internal/security"
)

const goodCode = "4/good-code"

// syncBuffer is a bytes.Buffer safe for one writer goroutine and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// failingReader fails the test when the console is read.
type failingReader struct{ t *testing.T }

func (r failingReader) Read([]byte) (int, error) {
	r.t.Error("console was read although no prompt was expected")
	return 0, io.EOF
}

type fakeQuerier struct {
	calls  atomic.Int32
	client atomic.Pointer[AuthorizedClient]
	err    error
}

func (q *fakeQuerier) ListUpcoming(_ context.Context, client *AuthorizedClient) error {
	q.calls.Add(1)
	q.client.Store(client)
	return q.err
}

// newTokenServer fakes Google's token endpoint. Only goodCode is accepted.
func newTokenServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var exchanges atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		if r.Form.Get("code") != goodCode || r.Form.Get("grant_type") != "authorization_code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Malformed auth code."}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"ya29.fresh","token_type":"Bearer","refresh_token":"1//refresh","expires_in":3599,"scope":"` + ScopeCalendarReadonly + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &exchanges
}

func writeSecrets(t *testing.T, dir, tokenURL string) string {
	t.Helper()
	var secrets ClientSecrets
	secrets.Installed.ClientID = "client-id.apps.googleusercontent.com"
	secrets.Installed.ClientSecret = "client-secret"
	secrets.Installed.RedirectURIs = []string{"urn:ietf:wg:oauth:2.0:oob", "http://localhost"}
	secrets.Installed.AuthURI = "https://accounts.google.com/o/oauth2/auth"
	secrets.Installed.TokenURI = tokenURL

	data, err := json.Marshal(secrets)
	require.NoError(t, err)
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func writeToken(t *testing.T, path string, token *oauth2.Token) {
	t.Helper()
	data, err := json.Marshal(token)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func validToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  "ya29.cached",
		TokenType:    "Bearer",
		RefreshToken: "1//cached",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
}

func quietLogger() *security.SecureLogger {
	return security.NewSecureLogger(false)
}

func testHTTPClient() *http.Client {
	return security.NewHTTPClient("127.0.0.1")
}

func newTestAuthorizer(t *testing.T, secretsPath, tokenPath string, in io.Reader, out io.Writer) *Authorizer {
	t.Helper()
	secrets, err := LoadClientSecrets(secretsPath)
	require.NoError(t, err)
	return NewAuthorizer(secrets, NewTokenStore(tokenPath, quietLogger()), testHTTPClient(), in, out, quietLogger())
}
