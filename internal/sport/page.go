// Package sport is the page object for the sport site's homepage, search and
// Formula 1 section.
package sport

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"atlasqa/internal/browser"
	"atlasqa/internal/platform/logger"
)

const (
	HomepageURL = "https://www.bbc.com"
	Formula1URL = "https://www.bbc.com/sport/formula1"

	// SearchInputXPath locates the search box once the search panel is open.
	SearchInputXPath = `//*[@id="__next"]/div/div[6]/div/div[1]/div/input`

	searchInputTimeout = 8 * time.Second
	failureScreenshot  = "search-failure.png"
)

// MenuButtonSelectors open the site menu, in priority order.
var MenuButtonSelectors = []string{
	`button[data-testid="header-menu-button"]`,
	`button[aria-label="Menu"]`,
	`button svg[viewBox]`,
	`button:has(svg)`,
	`button[aria-expanded="false"]`,
}

// SearchIconSelectors open the search panel, in priority order.
var SearchIconSelectors = []string{
	`button[aria-label="Search BBC"]`,
	`button[aria-label="Search"]`,
	`[data-testid="search-button"]`,
	`button:has(svg)`,
}

// Page drives the site through a browser.Page.
type Page struct {
	page          browser.Page
	logger        *slog.Logger
	screenshotDir string
	settle        time.Duration
	resultsSettle time.Duration
}

// Option configures the Page.
type Option func(*Page)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Page) {
		p.logger = l
	}
}

// WithScreenshotDir sets where failure screenshots are written.
func WithScreenshotDir(dir string) Option {
	return func(p *Page) {
		p.screenshotDir = dir
	}
}

// WithSettle sets the pauses after clicks and after a search lands. The
// defaults give the live site time to animate; tests pass zero.
func WithSettle(afterClick, afterSearch time.Duration) Option {
	return func(p *Page) {
		p.settle = afterClick
		p.resultsSettle = afterSearch
	}
}

// NewPage wraps page.
func NewPage(page browser.Page, opts ...Option) *Page {
	p := &Page{
		page:          page,
		logger:        logger.Discard(),
		screenshotDir: ".",
		settle:        time.Second,
		resultsSettle: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NavigateToHomepage opens the site homepage.
func (p *Page) NavigateToHomepage(ctx context.Context) error {
	return p.navigate(ctx, HomepageURL)
}

// NavigateToFormula1 opens the Formula 1 section.
func (p *Page) NavigateToFormula1(ctx context.Context) error {
	return p.navigate(ctx, Formula1URL)
}

func (p *Page) navigate(ctx context.Context, url string) error {
	p.logger.InfoContext(ctx, "navigating", "url", url)
	if err := p.page.Goto(ctx, url); err != nil {
		p.logger.ErrorContext(ctx, "navigation failed", "url", url, "error", err)
		return err
	}
	return nil
}

// SearchFor opens the menu and the search panel (best effort over the
// selector lists), types term into the search box and submits it. On failure
// a full-page screenshot is saved and the error returned.
func (p *Page) SearchFor(ctx context.Context, term string) error {
	p.logger.InfoContext(ctx, "searching", "term", term)
	if err := p.searchFor(ctx, term); err != nil {
		path := filepath.Join(p.screenshotDir, failureScreenshot)
		if shotErr := p.page.Screenshot(ctx, path); shotErr != nil {
			p.logger.WarnContext(ctx, "failed to capture screenshot", "path", path, "error", shotErr)
		} else {
			p.logger.InfoContext(ctx, "saved failure screenshot", "path", path)
		}
		return fmt.Errorf("search for %q: %w", term, err)
	}
	return nil
}

func (p *Page) searchFor(ctx context.Context, term string) error {
	if err := p.page.WaitForLoadState(ctx, browser.LoadDOMContentLoaded); err != nil {
		return err
	}

	if m, ok := browser.FirstMatch(ctx, p.page, MenuButtonSelectors); ok {
		if err := m.Element.Click(ctx); err != nil {
			return fmt.Errorf("open menu: %w", err)
		}
		p.logger.DebugContext(ctx, "opened menu", "selector", m.Selector)
		if err := browser.Pause(ctx, p.settle); err != nil {
			return err
		}
	}

	if m, ok := browser.FirstMatch(ctx, p.page, SearchIconSelectors); ok {
		if err := m.Element.Click(ctx); err != nil {
			return fmt.Errorf("open search: %w", err)
		}
		p.logger.DebugContext(ctx, "opened search", "selector", m.Selector)
		if err := browser.Pause(ctx, p.settle); err != nil {
			return err
		}
	} else {
		p.logger.WarnContext(ctx, "could not find search icon after opening menu")
	}

	input, err := p.page.WaitVisible(ctx, "xpath="+SearchInputXPath, searchInputTimeout)
	if err != nil {
		return err
	}
	if err := input.Fill(ctx, term); err != nil {
		return fmt.Errorf("fill search box: %w", err)
	}
	if err := p.page.Press(ctx, "Enter"); err != nil {
		return fmt.Errorf("submit search: %w", err)
	}
	if err := p.page.WaitForLoadState(ctx, browser.LoadNetworkIdle); err != nil {
		return err
	}
	return browser.Pause(ctx, p.resultsSettle)
}

// PerformSearch runs SearchFor and returns the verified candidates. Any
// failure yields no results.
func (p *Page) PerformSearch(ctx context.Context, term string, candidates []SearchResult) []SearchResult {
	if err := p.SearchFor(ctx, term); err != nil {
		p.logger.WarnContext(ctx, "search failed", "term", term, "error", err)
		return []SearchResult{}
	}
	results, err := p.SearchResults(ctx, candidates)
	if err != nil {
		p.logger.WarnContext(ctx, "could not read search results", "error", err)
		return []SearchResult{}
	}
	return results
}

// SearchResults keeps the candidates whose title appears in the page text.
// A page that merely mentions sport verifies nothing.
func (p *Page) SearchResults(ctx context.Context, candidates []SearchResult) ([]SearchResult, error) {
	body, err := p.page.BodyText(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page text: %w", err)
	}
	verified := make([]SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.Title != "" && strings.Contains(body, c.Title) {
			p.logger.DebugContext(ctx, "verified result", "title", c.Title)
			verified = append(verified, c)
		}
	}
	p.logger.InfoContext(ctx, "verified search results", "count", len(verified), "candidates", len(candidates))
	return verified, nil
}
