// Package browsertest provides an in-memory browser.Page for page-object
// tests.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"atlasqa/internal/browser"
)

// ErrNoElement is returned by WaitVisible for selectors the page lacks.
var ErrNoElement = errors.New("element not visible")

// Page is a scripted browser.Page. Present selectors resolve to elements that
// record their interactions; everything else is absent.
type Page struct {
	mu sync.Mutex

	// Present lists the selectors that resolve.
	Present map[string]bool
	// Body is returned by BodyText.
	Body string
	// GotoErr fails every navigation when set.
	GotoErr error
	// BodyErr fails BodyText when set.
	BodyErr error

	Visited     []string
	Clicked     []string
	Filled      map[string]string
	Pressed     []string
	Screenshots []string
	LoadStates  []browser.LoadState
}

// NewPage returns a page where the given selectors resolve.
func NewPage(present ...string) *Page {
	p := &Page{Present: make(map[string]bool), Filled: make(map[string]string)}
	for _, s := range present {
		p.Present[s] = true
	}
	return p
}

func (p *Page) Goto(_ context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.GotoErr != nil {
		return fmt.Errorf("navigate to %s: %w", url, p.GotoErr)
	}
	p.Visited = append(p.Visited, url)
	return nil
}

func (p *Page) Query(_ context.Context, selector string) (browser.Element, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.Present[selector] {
		return nil, false, nil
	}
	return &element{page: p, selector: selector}, true, nil
}

func (p *Page) WaitVisible(_ context.Context, selector string, _ time.Duration) (browser.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.Present[selector] {
		return nil, fmt.Errorf("wait for %s: %w", selector, ErrNoElement)
	}
	return &element{page: p, selector: selector}, nil
}

func (p *Page) Press(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Pressed = append(p.Pressed, key)
	return nil
}

func (p *Page) WaitForLoadState(_ context.Context, state browser.LoadState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LoadStates = append(p.LoadStates, state)
	return nil
}

func (p *Page) BodyText(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Body, p.BodyErr
}

func (p *Page) Screenshot(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Screenshots = append(p.Screenshots, path)
	return nil
}

type element struct {
	page     *Page
	selector string
}

func (e *element) Click(context.Context) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.Clicked = append(e.page.Clicked, e.selector)
	return nil
}

func (e *element) Fill(_ context.Context, value string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.Filled[e.selector] = value
	return nil
}

// Opener hands out the same scripted Page on every OpenPage call.
type Opener struct {
	Page *Page
	// Err fails OpenPage when set.
	Err error

	mu     sync.Mutex
	opened int
	closed int
}

func (o *Opener) OpenPage(context.Context) (browser.Page, func() error, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, nil, o.Err
	}
	o.opened++
	return o.Page, func() error {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.closed++
		return nil
	}, nil
}

// Sessions returns how many pages were opened and closed.
func (o *Opener) Sessions() (opened, closed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened, o.closed
}
