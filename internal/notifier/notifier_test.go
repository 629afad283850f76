package notifier

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type recorder struct {
	calls    []call
	response string
	err      error
}

func (r *recorder) run(name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, call{name: name, args: args})
	if name == "notify-send" {
		return []byte(r.response), r.err
	}
	return nil, nil
}

func newTestNotifier(r *recorder) *Notifier {
	n := New(true)
	n.run = r.run
	return n
}

func TestPromptNotice_Disabled(t *testing.T) {
	r := &recorder{}
	n := newTestNotifier(r)
	n.SetEnabled(false)

	require.NoError(t, n.PromptNotice("https://accounts.google.com/o/oauth2/auth"))
	assert.Empty(t, r.calls)
	assert.False(t, n.IsEnabled())
}

func TestPromptNotice_Dismissed(t *testing.T) {
	r := &recorder{}
	n := newTestNotifier(r)

	require.NoError(t, n.PromptNotice("https://accounts.google.com/o/oauth2/auth"))

	require.Len(t, r.calls, 1)
	assert.Equal(t, "notify-send", r.calls[0].name)
	args := strings.Join(r.calls[0].args, " ")
	assert.Contains(t, args, "--app-name=Take a Break")
	assert.Contains(t, args, "--urgency=critical")
	assert.Contains(t, args, "Calendar authorization needed")
}

func TestPromptNotice_DefaultActionOpensURL(t *testing.T) {
	r := &recorder{response: "default\n"}
	n := newTestNotifier(r)

	require.NoError(t, n.PromptNotice("https://accounts.google.com/o/oauth2/auth?x=1"))

	require.Len(t, r.calls, 2)
	assert.Equal(t, call{name: "xdg-open", args: []string{"https://accounts.google.com/o/oauth2/auth?x=1"}}, r.calls[1])
}

func TestPromptNotice_CommandFailure(t *testing.T) {
	r := &recorder{response: "no daemon", err: errors.New("exit status 1")}
	n := newTestNotifier(r)

	err := n.PromptNotice("https://accounts.google.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no daemon")
}
