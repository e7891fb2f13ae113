//go:build browser

package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlasqa/internal/platform/config"
)

func TestPlaywrightPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><button aria-label="Search">s</button><input id="q"/><p>Sport news</p></body></html>`))
	}))
	defer srv.Close()

	d, err := Launch(config.BrowserConfig{Headless: true, DefaultTimeout: 10 * time.Second, NavigationTimeout: 10 * time.Second})
	require.NoError(t, err)
	defer func() { _ = d.Close() }()

	page, err := d.NewPage()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, page.Goto(ctx, srv.URL))

	m, ok := FirstMatch(ctx, page, []string{`button[aria-label="Search BBC"]`, `button[aria-label="Search"]`})
	require.True(t, ok)
	assert.Equal(t, `button[aria-label="Search"]`, m.Selector)

	input, err := page.WaitVisible(ctx, `xpath=//input[@id="q"]`, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, input.Fill(ctx, "sport"))
	require.NoError(t, page.Press(ctx, "Enter"))

	body, err := page.BodyText(ctx)
	require.NoError(t, err)
	assert.Contains(t, body, "Sport news")
}
