// Package content turns a web page into an image the overlay surface can
// show: the page is fetched, reduced to its readable text and drawn white on
// a transparent canvas.
package content

import (
	"context"
	"errors"
	"fmt"
	"html"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	maxPageBytes = 2 * 1024 * 1024
	fetchTimeout = 15 * time.Second
	margin       = 24
)

var (
	// ErrUnsupportedURL is returned for anything but absolute http(s) URLs.
	ErrUnsupportedURL = errors.New("content URL must be absolute http or https")

	blockEnd   = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|pre|blockquote|section|article|header|footer|nav|ul|ol|table)>`)
	spaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// ValidateURL checks that raw is something Fetch can load.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrUnsupportedURL
	}
	return nil
}

// NewHTTPClient returns the client used for page loads.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// Fetch downloads the page at raw. Bodies beyond 2 MiB are truncated.
func Fetch(ctx context.Context, client *http.Client, raw string) (string, error) {
	if err := ValidateURL(raw); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", raw, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", raw, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", raw, err)
	}
	return string(body), nil
}

// PlainText strips markup, scripts and styles and keeps block boundaries as
// line breaks.
func PlainText(page string) string {
	marked := blockEnd.ReplaceAllString(page, "${0}\n")
	text := html.UnescapeString(bluemonday.StrictPolicy().Sanitize(marked))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// Wrap breaks text into lines of at most cols runes, splitting on spaces
// where possible.
func Wrap(text string, cols int) []string {
	if cols <= 0 {
		return nil
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		var line []rune
		for _, word := range words {
			w := []rune(word)
			for len(w) > cols {
				if len(line) > 0 {
					out = append(out, string(line))
					line = nil
				}
				out = append(out, string(w[:cols]))
				w = w[cols:]
			}
			switch {
			case len(line) == 0:
				line = w
			case len(line)+1+len(w) <= cols:
				line = append(append(line, ' '), w...)
			default:
				out = append(out, string(line))
				line = w
			}
		}
		if len(line) > 0 {
			out = append(out, string(line))
		}
	}
	return out
}

// Render draws text onto a transparent width x height canvas. Lines that do
// not fit are dropped.
func Render(text string, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	face := basicfont.Face7x13

	cols := (width - 2*margin) / face.Advance
	lineHeight := face.Height + 4
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	y := margin + face.Ascent
	for _, line := range Wrap(text, cols) {
		if y+face.Descent > height-margin {
			break
		}
		drawer.Dot = fixed.P(margin, y)
		drawer.DrawString(line)
		y += lineHeight
	}
	return img
}

// Load fetches raw and renders its text at width x height.
func Load(ctx context.Context, client *http.Client, raw string, width, height int) (*image.RGBA, error) {
	page, err := Fetch(ctx, client, raw)
	if err != nil {
		return nil, err
	}
	return Render(PlainText(page), width, height), nil
}
