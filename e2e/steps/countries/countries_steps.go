package countries

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"atlasqa/internal/countries/models"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	ServeCountries(records []models.Country)
	ServeSampleCountries()
	FailAPI()
	SetExpectedCountries(n int)
}

// RegisterSteps registers countries API fixture steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &countriesSteps{tc: tc}

	ctx.Step(`^the countries API serves the sample data set$`, steps.serveSample)
	ctx.Step(`^the countries API serves:$`, steps.serveTable)
	ctx.Step(`^the countries API is failing$`, steps.failing)
	ctx.Step(`^the requirement states (\d+) countries$`, steps.expectedCountries)
}

type countriesSteps struct {
	tc TestContext
}

func (s *countriesSteps) serveSample(ctx context.Context) error {
	s.tc.ServeSampleCountries()
	return nil
}

func (s *countriesSteps) failing(ctx context.Context) error {
	s.tc.FailAPI()
	return nil
}

func (s *countriesSteps) expectedCountries(ctx context.Context, n int) error {
	s.tc.SetExpectedCountries(n)
	return nil
}

// serveTable builds records from a table with a header row. Known columns are
// common, official, cca3, region, status, independent, un_member and
// languages (comma separated). Empty cells leave the field missing.
func (s *countriesSteps) serveTable(ctx context.Context, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header and at least one record")
	}
	header := make([]string, 0, len(table.Rows[0].Cells))
	for _, c := range table.Rows[0].Cells {
		header = append(header, strings.TrimSpace(c.Value))
	}

	records := make([]models.Country, 0, len(table.Rows)-1)
	for i, row := range table.Rows[1:] {
		var c models.Country
		for j, cell := range row.Cells {
			if err := setField(&c, header[j], strings.TrimSpace(cell.Value)); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		records = append(records, c)
	}
	s.tc.ServeCountries(records)
	return nil
}

func setField(c *models.Country, column, value string) error {
	if value == "" {
		return nil
	}
	switch column {
	case "common":
		if c.Name == nil {
			c.Name = &models.Name{}
		}
		c.Name.Common = value
	case "official":
		if c.Name == nil {
			c.Name = &models.Name{}
		}
		c.Name.Official = value
	case "cca3":
		c.CCA3 = value
	case "region":
		c.Region = value
	case "status":
		c.Status = value
	case "independent":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("independent: %w", err)
		}
		c.Independent = &b
	case "un_member":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("un_member: %w", err)
		}
		c.UNMember = b
	case "languages":
		c.Languages = make(map[string]string)
		for i, name := range strings.Split(value, ",") {
			c.Languages[fmt.Sprintf("l%02d", i)] = strings.TrimSpace(name)
		}
	default:
		return fmt.Errorf("unknown column %q", column)
	}
	return nil
}
