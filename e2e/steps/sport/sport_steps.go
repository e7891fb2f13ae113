package sport

import (
	"context"

	"github.com/cucumber/godog"

	"atlasqa/internal/browser/browsertest"
	sportpage "atlasqa/internal/sport"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	UsePage(page *browsertest.Page)
	FailBrowserLaunch()
	SetFixtures(enabled bool)
}

// RegisterSteps registers browser and sport page steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &sportSteps{tc: tc}

	ctx.Step(`^the sport site has a search box and shows "([^"]*)"$`, steps.searchablePage)
	ctx.Step(`^the sport site has no search box$`, steps.noSearchBox)
	ctx.Step(`^the browser cannot be launched$`, steps.launchFails)
	ctx.Step(`^demo fixtures are (enabled|disabled)$`, steps.fixtures)
}

type sportSteps struct {
	tc TestContext
}

func (s *sportSteps) searchablePage(ctx context.Context, body string) error {
	page := browsertest.NewPage("xpath=" + sportpage.SearchInputXPath)
	page.Body = body
	s.tc.UsePage(page)
	return nil
}

func (s *sportSteps) noSearchBox(ctx context.Context) error {
	s.tc.UsePage(browsertest.NewPage())
	return nil
}

func (s *sportSteps) launchFails(ctx context.Context) error {
	s.tc.FailBrowserLaunch()
	return nil
}

func (s *sportSteps) fixtures(ctx context.Context, state string) error {
	s.tc.SetFixtures(state == "enabled")
	return nil
}
