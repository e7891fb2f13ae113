package e2e

import (
	"github.com/cucumber/godog"

	"atlasqa/e2e/steps/common"
	"atlasqa/e2e/steps/countries"
	"atlasqa/e2e/steps/sport"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (suite runs and report assertions)
	common.RegisterSteps(ctx, tc)

	// Register countries API fixture steps
	countries.RegisterSteps(ctx, tc)

	// Register browser and sport page steps
	sport.RegisterSteps(ctx, tc)
}
