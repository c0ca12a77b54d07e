package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropure/water-assistant/session"
)

func TestExtractUsageType(t *testing.T) {
	tests := []struct {
		text string
		want session.UsageType
	}{
		{"need a purifier for my home", session.UsageDomestic},
		{"for our office pantry", session.UsageCommercial},
		{"water treatment for my factory", session.UsageIndustrial},
		{"just browsing", session.UsageUnset},
		// First matching family wins: "family" (domestic) beats "business".
		{"family business", session.UsageDomestic},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var needs session.NeedsAssessment
			ExtractRequirements(tt.text, &needs)
			assert.Equal(t, tt.want, needs.UsageType)
		})
	}
}

func TestExtractCapacity(t *testing.T) {
	tests := []struct {
		text string
		want session.Capacity
	}{
		{"small family of ours", session.CapacitySmall},
		{"we are a big family", session.CapacityLarge},
		{"family of 4", session.CapacitySmall},
		{"family of 6", session.CapacityLarge},
		{"around 50 people in the office", session.CapacityOffice},
		{"nothing about size", session.CapacityUnset},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var needs session.NeedsAssessment
			ExtractRequirements(tt.text, &needs)
			assert.Equal(t, tt.want, needs.CapacityNeeded)
		})
	}
}

func TestBudgetPatternPrecedence(t *testing.T) {
	// Both amounts present: the first matching pattern in priority order
	// wins deterministically.
	var needs session.NeedsAssessment
	ExtractRequirements("under ₹15000 but I saw one at ₹20000", &needs)

	require.NotNil(t, needs.Budget)
	assert.Equal(t, 15000, needs.Budget.Max)
	assert.Equal(t, 0, needs.Budget.Min)
}

func TestBudgetPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"budget of", "my budget is 25000", 25000},
		{"currency symbol", "something for ₹9999", 9999},
		{"price", "price 45000 is fine", 45000},
		{"cost", "should cost 30000 max", 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var needs session.NeedsAssessment
			ExtractRequirements(tt.text, &needs)
			require.NotNil(t, needs.Budget)
			assert.Equal(t, tt.want, needs.Budget.Max)
		})
	}
}

func TestBudgetAroundGivesBand(t *testing.T) {
	var needs session.NeedsAssessment
	ExtractRequirements("budget around 12000", &needs)

	require.NotNil(t, needs.Budget)
	assert.Equal(t, 9600, needs.Budget.Min)
	assert.Equal(t, 14400, needs.Budget.Max)
}

func TestBudgetIgnoresSmallNumbers(t *testing.T) {
	// 4-6 digit guard: "2 people" must not become a budget.
	var needs session.NeedsAssessment
	ExtractRequirements("price for 2 people", &needs)
	assert.Nil(t, needs.Budget)
}

func TestExtractWaterSource(t *testing.T) {
	tests := []struct {
		text string
		want session.WaterSource
	}{
		{"we have borewell water", session.SourceBorewell},
		{"groundwater supply", session.SourceBorewell},
		{"municipal corporation line", session.SourceMunicipal},
		{"tap water at home", session.SourceMunicipal},
		{"tanker water delivery", session.SourceTanker},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var needs session.NeedsAssessment
			ExtractRequirements(tt.text, &needs)
			assert.Equal(t, tt.want, needs.WaterSource)
		})
	}
}

func TestExtractConcernsAll(t *testing.T) {
	var needs session.NeedsAssessment
	ExtractRequirements("bad taste and hard water with high tds", &needs)

	assert.ElementsMatch(t, []string{
		session.ConcernTaste,
		session.ConcernHardness,
		session.ConcernTDS,
	}, needs.Concerns)
}

func TestExtractRequirementsIdempotent(t *testing.T) {
	text := "home purifier, borewell water, bad taste, budget 12000"

	var once session.NeedsAssessment
	ExtractRequirements(text, &once)

	twice := once
	twice.Concerns = append([]string(nil), once.Concerns...)
	ExtractRequirements(text, &twice)

	assert.Equal(t, once.UsageType, twice.UsageType)
	assert.Equal(t, once.WaterSource, twice.WaterSource)
	assert.Equal(t, once.Concerns, twice.Concerns)
	require.NotNil(t, twice.Budget)
	assert.Equal(t, once.Budget.Max, twice.Budget.Max)
}

func TestScenarioHomeFamilyBudget(t *testing.T) {
	var needs session.NeedsAssessment
	ExtractRequirements("I need a water purifier for my home, family of 4, budget around 12000", &needs)

	assert.Equal(t, session.UsageDomestic, needs.UsageType)
	assert.Equal(t, session.CapacitySmall, needs.CapacityNeeded)
	require.NotNil(t, needs.Budget)
	assert.Equal(t, 14400, needs.Budget.Max)
	assert.True(t, needs.Sufficient())
}
