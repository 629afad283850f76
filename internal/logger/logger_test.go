package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		leaked string
		keeps  string
	}{
		{
			name:   "access token",
			input:  `{"access_token":"ya29.secretvalue","token_type":"Bearer"}`,
			leaked: "ya29.secretvalue",
			keeps:  "access_token",
		},
		{
			name:   "bearer header",
			input:  "Authorization: Bearer abc.def.ghi",
			leaked: "abc.def.ghi",
			keeps:  "Bearer",
		},
		{
			name:   "code in url",
			input:  "http://localhost/callback?state=x&code=4/0AX4XfWh",
			leaked: "4/0AX4XfWh",
			keeps:  "state=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.input)
			assert.NotContains(t, got, tt.leaked)
			assert.Contains(t, got, tt.keeps)
			assert.Contains(t, got, "[REDACTED]")
		})
	}
}

func TestInitWithWriter_QuietModeDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, false)

	Debug("hidden")
	Info("overlay shown")
	Error("load failed", "error", "refresh_token=1//abcdef")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "overlay shown")
	assert.Contains(t, out, "load failed")
	assert.False(t, strings.Contains(out, "1//abcdef"), "secret leaked: %s", out)
	assert.False(t, IsVerbose())
}

func TestInitWithWriter_VerboseEmitsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, true)
	t.Cleanup(func() { InitWithWriter(&bytes.Buffer{}, false) })

	Debug("surface mutated", "opacity", 0.5)

	assert.Contains(t, buf.String(), "surface mutated")
	assert.True(t, IsVerbose())
}
