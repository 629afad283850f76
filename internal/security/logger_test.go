package security

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureLogger_RedactsDetails(t *testing.T) {
	var buf bytes.Buffer
	sl := NewSecureLoggerWithHandler(true, slog.NewTextHandler(&buf, nil))

	sl.LogAuthEvent("token_exchange", false, map[string]any{
		"error": `oauth2: "invalid_grant" access_token=ya29.leaked`,
	})

	out := buf.String()
	assert.Contains(t, out, "operation=token_exchange")
	assert.Contains(t, out, "success=false")
	assert.NotContains(t, out, "ya29.leaked")
}

func TestSecureLogger_SilentWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	sl := NewSecureLoggerWithHandler(false, slog.NewTextHandler(&buf, nil))

	sl.LogCryptoEvent("token_encrypt", false, "boom")
	sl.LogSecurityEvent("token_cleared", SeverityCritical, nil)

	assert.Empty(t, buf.String())
}
