package validator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"atlasqa/internal/countries/models"
)

func wellFormed(common string) models.Country {
	return models.Country{
		Name:   &models.Name{Common: common, Official: "Republic of " + common},
		CCA3:   strings.ToUpper(common[:3]),
		Region: models.RegionEurope,
		Status: models.StatusOfficiallyAssigned,
	}
}

func TestValidate(t *testing.T) {
	t.Run("well-formed records pass for every region and status", func(t *testing.T) {
		for _, region := range models.Regions {
			for _, status := range models.Statuses {
				c := wellFormed("Testland")
				c.Region = region
				c.Status = status

				res := Validate(c, 0)
				assert.True(t, res.Valid, "%s/%s", region, status)
				assert.Empty(t, res.Errors)
				assert.Equal(t, "Testland", res.Label)
			}
		}
	})

	t.Run("missing name reports only the name object", func(t *testing.T) {
		c := wellFormed("Testland")
		c.Name = nil

		res := Validate(c, 7)
		assert.False(t, res.Valid)
		assert.Equal(t, []string{MsgMissingName}, res.Errors)
		assert.NotContains(t, res.Errors, MsgMissingCommon)
		assert.NotContains(t, res.Errors, MsgMissingOfficial)
		assert.Equal(t, "Country-7", res.Label)
	})

	t.Run("common and official names are checked independently", func(t *testing.T) {
		c := wellFormed("Testland")
		c.Name = &models.Name{}

		res := Validate(c, 3)
		assert.Equal(t, []string{MsgMissingCommon, MsgMissingOfficial}, res.Errors)
		assert.Equal(t, "Country-3", res.Label)
	})

	t.Run("each missing top-level field has its own message", func(t *testing.T) {
		c := models.Country{Name: &models.Name{Common: "A", Official: "B"}}

		res := Validate(c, 0)
		assert.Equal(t, []string{MsgMissingCCA3, MsgMissingRegion, MsgMissingStatus}, res.Errors)
	})

	t.Run("invalid region yields exactly one region message", func(t *testing.T) {
		c := wellFormed("Testland")
		c.Region = "Mars"

		res := Validate(c, 0)
		assert.Equal(t, []string{"Invalid region: Mars"}, res.Errors)
		for _, e := range res.Errors {
			if strings.Contains(e, "region") {
				assert.Equal(t, "Invalid region: Mars", e)
			}
		}
	})

	t.Run("enumerations are case sensitive", func(t *testing.T) {
		c := wellFormed("Testland")
		c.Status = "Officially-Assigned"

		res := Validate(c, 0)
		assert.Equal(t, []string{"Invalid status: Officially-Assigned"}, res.Errors)
	})

	t.Run("record with common name only misses its official name", func(t *testing.T) {
		c := models.Country{
			Name:   &models.Name{Common: "Testland"},
			CCA3:   "TST",
			Region: models.RegionEurope,
			Status: models.StatusOfficiallyAssigned,
		}

		res := Validate(c, 0)
		assert.Equal(t, []string{MsgMissingOfficial}, res.Errors)
		assert.False(t, res.Valid)
		assert.Equal(t, "Testland", res.Label)
	})

	t.Run("nameless record with bad enumerations", func(t *testing.T) {
		c := models.Country{CCA3: "TST", Region: "Mars", Status: "royal"}

		res := Validate(c, 0)
		assert.Equal(t, []string{MsgMissingName, "Invalid region: Mars", "Invalid status: royal"}, res.Errors)
	})

	t.Run("errors is never nil", func(t *testing.T) {
		res := Validate(wellFormed("Testland"), 0)
		assert.NotNil(t, res.Errors)
	})
}

func TestHasRequiredStructure(t *testing.T) {
	assert.True(t, HasRequiredStructure(wellFormed("Testland")))

	noRegion := wellFormed("Testland")
	noRegion.Region = ""
	assert.True(t, HasRequiredStructure(noRegion), "region is not part of the structure check")

	noStatus := wellFormed("Testland")
	noStatus.Status = ""
	assert.False(t, HasRequiredStructure(noStatus))

	assert.False(t, HasRequiredStructure(models.Country{CCA3: "TST", Status: models.StatusUserAssigned}))
}

func TestValidateAll(t *testing.T) {
	records := []models.Country{
		wellFormed("Alpha"),
		{CCA3: "BAD"},
		wellFormed("Gamma"),
		{Name: &models.Name{Common: "Delta"}, CCA3: "DEL", Region: "Atlantis", Status: models.StatusUserAssigned},
	}

	summary := ValidateAll(records)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Valid)
	assert.Equal(t, 2, summary.Invalid)
	assert.False(t, summary.AllValid())
	assert.Equal(t, summary.Total, summary.Valid+summary.Invalid)

	if assert.Len(t, summary.Failures, 2) {
		assert.Equal(t, "Country-1", summary.Failures[0].Label)
		assert.Equal(t, "Delta", summary.Failures[1].Label)
	}

	t.Run("empty batch is all valid", func(t *testing.T) {
		empty := ValidateAll(nil)
		assert.True(t, empty.AllValid())
		assert.Equal(t, 0, empty.Total)
		assert.NotNil(t, empty.Failures)
	})

	t.Run("counts always add up", func(t *testing.T) {
		var batch []models.Country
		for i := 0; i < 50; i++ {
			c := wellFormed(fmt.Sprintf("Land%02d", i))
			if i%3 == 0 {
				c.Status = "pending"
			}
			batch = append(batch, c)
		}
		s := ValidateAll(batch)
		assert.Equal(t, len(batch), s.Valid+s.Invalid)
		assert.Equal(t, 17, s.Invalid)
	})
}
