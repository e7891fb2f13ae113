package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"atlasqa/internal/platform/config"
	"atlasqa/internal/platform/logger"
)

// Driver owns a Playwright process and one Chromium instance.
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
	logger  *slog.Logger
}

// DriverOption configures the Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = l
	}
}

// Launch starts Playwright and Chromium with the configured headless mode
// and slow-mo.
func Launch(cfg config.BrowserConfig, opts ...DriverOption) (*Driver, error) {
	d := &Driver{cfg: cfg, logger: logger.Discard()}
	for _, opt := range opts {
		opt(d)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	d.logger.Info("launching browser", "headless", cfg.Headless, "slow_mo", cfg.SlowMo)
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	d.pw = pw
	d.browser = b
	return d, nil
}

// NewPage opens a tab with the configured timeouts.
func (d *Driver) NewPage() (*PlaywrightPage, error) {
	p, err := d.browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport:          &playwright.Size{Width: 1280, Height: 720},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	p.SetDefaultTimeout(ms(d.cfg.DefaultTimeout))
	p.SetDefaultNavigationTimeout(ms(d.cfg.DefaultTimeout))
	return &PlaywrightPage{page: p, navTimeout: d.cfg.NavigationTimeout}, nil
}

// Close shuts the browser and the Playwright driver.
func (d *Driver) Close() error {
	d.logger.Info("closing browser")
	if err := d.browser.Close(); err != nil {
		_ = d.pw.Stop()
		return fmt.Errorf("close browser: %w", err)
	}
	if err := d.pw.Stop(); err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}

// Launcher starts a fresh Chromium for every page it opens.
type Launcher struct {
	cfg  config.BrowserConfig
	opts []DriverOption
}

// NewLauncher returns a Launcher for cfg.
func NewLauncher(cfg config.BrowserConfig, opts ...DriverOption) *Launcher {
	return &Launcher{cfg: cfg, opts: opts}
}

// OpenPage launches a browser and opens one page in it. The returned func
// closes the browser.
func (l *Launcher) OpenPage(ctx context.Context) (Page, func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	d, err := Launch(l.cfg, l.opts...)
	if err != nil {
		return nil, nil, err
	}
	p, err := d.NewPage()
	if err != nil {
		_ = d.Close()
		return nil, nil, err
	}
	return p, d.Close, nil
}

// PlaywrightPage implements Page on a playwright.Page.
type PlaywrightPage struct {
	page       playwright.Page
	navTimeout time.Duration
}

func (p *PlaywrightPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(ms(p.navTimeout)),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (p *PlaywrightPage) Query(ctx context.Context, selector string) (Element, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	h, err := p.page.QuerySelector(selector)
	if err != nil {
		return nil, false, fmt.Errorf("query %s: %w", selector, err)
	}
	if h == nil {
		return nil, false, nil
	}
	return &playwrightElement{handle: h}, true, nil
}

func (p *PlaywrightPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", selector, err)
	}
	return &playwrightElement{handle: h}, nil
}

func (p *PlaywrightPage) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Keyboard().Press(key)
}

func (p *PlaywrightPage) WaitForLoadState(ctx context.Context, state LoadState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ls := playwright.LoadStateDomcontentloaded
	if state == LoadNetworkIdle {
		ls = playwright.LoadStateNetworkidle
	}
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: ls})
}

func (p *PlaywrightPage) BodyText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.page.TextContent("body")
}

func (p *PlaywrightPage) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.handle.Click(playwright.ElementHandleClickOptions{Force: playwright.Bool(true)})
}

func (e *playwrightElement) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.handle.Fill(value)
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
