// Package browser is the narrow driver surface the page objects need. The
// Playwright implementation lives in this package; tests use browsertest.
package browser

import (
	"context"
	"time"
)

// LoadState is a page lifecycle milestone to wait for.
type LoadState string

const (
	LoadDOMContentLoaded LoadState = "domcontentloaded"
	LoadNetworkIdle      LoadState = "networkidle"
)

// Element is a handle to a node on the page.
type Element interface {
	Click(ctx context.Context) error
	Fill(ctx context.Context, value string) error
}

// Page is one browser tab.
type Page interface {
	// Goto navigates and waits for DOMContentLoaded.
	Goto(ctx context.Context, url string) error
	// Query returns the first element matching selector, if any. A selector
	// prefixed with "xpath=" is evaluated as XPath.
	Query(ctx context.Context, selector string) (Element, bool, error)
	// WaitVisible waits until selector matches a visible element.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	// Press sends a key to the focused element.
	Press(ctx context.Context, key string) error
	WaitForLoadState(ctx context.Context, state LoadState) error
	// BodyText returns the text content of <body>.
	BodyText(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, path string) error
}

// Match is the element a selector list resolved to.
type Match struct {
	Element  Element
	Selector string
}

// FirstMatch probes selectors in priority order and returns the first that
// resolves. Lookup errors count as no match for that selector.
func FirstMatch(ctx context.Context, page Page, selectors []string) (Match, bool) {
	for _, sel := range selectors {
		if ctx.Err() != nil {
			return Match{}, false
		}
		el, ok, err := page.Query(ctx, sel)
		if err != nil || !ok {
			continue
		}
		return Match{Element: el, Selector: sel}, true
	}
	return Match{}, false
}

// Pause waits d or until ctx is done, whichever comes first.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
