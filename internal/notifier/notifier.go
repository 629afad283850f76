package notifier

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/Godley/take-a-break/internal/logger"
	"github.com/Godley/take-a-break/internal/nerdfonts"
)

const appName = "Take a Break"

type runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

type Notifier struct {
	enabled bool
	run     runner
	opener  string
}

func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run:     execRunner,
		opener:  "xdg-open",
	}
}

// PromptNotice tells the user the authorization code is awaited on the
// terminal. Choosing the notification's default action opens authURL.
func (n *Notifier) PromptNotice(authURL string) error {
	if !n.enabled {
		return nil
	}

	title := fmt.Sprintf("%s Calendar authorization needed", nerdfonts.Calendar)
	message := fmt.Sprintf("%s Open the link, then paste the code into the terminal", nerdfonts.InfoCircle)

	return n.sendNotifyNotification(title, message, "critical", authURL)
}

// SendAsync sends the prompt notice without blocking the caller. notify-send
// --wait holds until the notification is dismissed.
func (n *Notifier) SendAsync(authURL string) {
	go func() {
		if err := n.PromptNotice(authURL); err != nil {
			logger.Warn("failed to send desktop notification", "error", err)
		}
	}()
}

func (n *Notifier) sendNotifyNotification(title, message, urgency, target string) error {
	args := []string{
		"--app-name=" + appName,
		"--urgency=" + urgency,
		"--action", "default=Open authorization page",
		"--wait",
		title,
		message,
	}

	output, err := n.run("notify-send", args...)
	if err != nil {
		return fmt.Errorf("notify-send failed: %w, output: %s", err, string(output))
	}

	n.handleNotificationAction(strings.TrimSpace(string(output)), target)
	return nil
}

func (n *Notifier) handleNotificationAction(response, target string) {
	if response != "default" || target == "" {
		return
	}
	if _, err := n.run(n.opener, target); err != nil {
		logger.Warn("failed to open browser", "error", err)
	}
}

func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}
