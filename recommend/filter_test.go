package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropure/water-assistant/models"
	"github.com/hydropure/water-assistant/nlu"
	"github.com/hydropure/water-assistant/session"
)

func testCatalog() []models.Product {
	return []models.Product{
		{
			Row: 0, Name: "Aqua Home RO", Category: "Domestic > RO Purifiers",
			RegularPrice: 11500, ShortDescription: "Compact RO purifier 12 LPH for home",
			Description: "Multi stage RO purification, storage capacity of 12 liters",
		},
		{
			Row: 1, Name: "UV Guard Municipal", Category: "Domestic > UV Purifiers",
			RegularPrice: 8500, ShortDescription: "UV purifier for tap water",
			Description: "Kills bacteria with 10 watt UV lamp",
		},
		{
			Row: 2, Name: "Premium RO+UV Advance", Category: "Domestic > RO Purifiers",
			RegularPrice: 19500, ShortDescription: "Premium RO UV combo",
			Description: "25 LPH advance purification",
		},
		{
			Row: 3, Name: "Commercial RO 50 LPH", Category: "Commercial > RO Plants",
			RegularPrice: 45000, ShortDescription: "Office RO system",
			Description: "50 LPH for office and commercial use",
		},
		{
			Row: 4, Name: "Industrial RO Plant 500", Category: "Industrial > RO Plants",
			RegularPrice: 0, ShortDescription: "Heavy duty industrial plant",
			Description: "500 LPH industrial reverse osmosis plant",
		},
		{
			Row: 5, Name: "Water Softener Max", Category: "Whole House > Softeners",
			RegularPrice: 22000, ShortDescription: "Automatic water softener for hardness",
			Description: "Ion exchange softening, 20 liters resin",
		},
		{
			Row: 6, Name: "Aqua Vending Station", Category: "Commercial > Community Water",
			RegularPrice: 85000, ShortDescription: "Coin operated water vending machine",
			Description: "Community water dispenser with coin acceptor",
		},
	}
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestBudgetStageKeepsPricedWithinLimit(t *testing.T) {
	needs := &session.NeedsAssessment{Budget: &session.BudgetRange{Max: 12000}}

	got := Filter(testCatalog(), needs, nil, nil)

	assert.ElementsMatch(t, []string{"Aqua Home RO", "UV Guard Municipal"}, names(got))
}

func TestBudgetStageRollsBackWhenNothingAffordable(t *testing.T) {
	needs := &session.NeedsAssessment{Budget: &session.BudgetRange{Max: 1000}}

	got := Filter(testCatalog(), needs, nil, nil)

	// No product is priced at or under 1000: the stage must not commit an
	// empty result.
	assert.Len(t, got, len(testCatalog()))
}

func TestBudgetFromPreferenceSideChannel(t *testing.T) {
	got := Filter(testCatalog(), &session.NeedsAssessment{}, map[string]int{"max_price": 9000}, nil)

	assert.Equal(t, []string{"UV Guard Municipal"}, names(got))
}

func TestUsageStage(t *testing.T) {
	tests := []struct {
		usage session.UsageType
		want  []string
	}{
		{session.UsageDomestic, []string{"Aqua Home RO", "UV Guard Municipal", "Premium RO+UV Advance"}},
		{session.UsageIndustrial, []string{"Commercial RO 50 LPH", "Industrial RO Plant 500"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.usage), func(t *testing.T) {
			needs := &session.NeedsAssessment{UsageType: tt.usage}
			got := Filter(testCatalog(), needs, nil, nil)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestConcernStageMapsTags(t *testing.T) {
	tests := []struct {
		concern string
		want    []string
	}{
		{session.ConcernHardness, []string{"Water Softener Max"}},
		{session.ConcernBacteria, []string{"UV Guard Municipal", "Premium RO+UV Advance"}},
	}

	for _, tt := range tests {
		t.Run(tt.concern, func(t *testing.T) {
			needs := &session.NeedsAssessment{Concerns: []string{tt.concern}}
			got := Filter(testCatalog(), needs, nil, nil)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestWaterSourceStage(t *testing.T) {
	borewell := &session.NeedsAssessment{WaterSource: session.SourceBorewell}
	got := Filter(testCatalog(), borewell, nil, nil)
	for _, name := range names(got) {
		assert.NotEqual(t, "UV Guard Municipal", name)
		assert.NotEqual(t, "Water Softener Max", name)
	}

	municipal := &session.NeedsAssessment{WaterSource: session.SourceMunicipal}
	got = Filter(testCatalog(), municipal, nil, nil)
	assert.ElementsMatch(t, []string{"UV Guard Municipal", "Premium RO+UV Advance"}, names(got))
}

func TestCapacityStage(t *testing.T) {
	needs := &session.NeedsAssessment{
		UsageType:      session.UsageDomestic,
		CapacityNeeded: session.CapacityLarge,
	}

	got := Filter(testCatalog(), needs, nil, nil)

	assert.Equal(t, []string{"Premium RO+UV Advance"}, names(got))
}

func TestTechnologyKeywordStage(t *testing.T) {
	keywords := nlu.NormalizeKeywords([]string{"uv", "purifier"})

	got := Filter(testCatalog(), &session.NeedsAssessment{}, nil, keywords)

	assert.ElementsMatch(t, []string{"UV Guard Municipal", "Premium RO+UV Advance"}, names(got))
}

func TestKeywordStageRollback(t *testing.T) {
	keywords := []string{"zeppelin"}

	got := Filter(testCatalog(), &session.NeedsAssessment{}, nil, keywords)

	// Nothing matches "zeppelin": the keyword stage rolls back to the full
	// catalog rather than committing an empty set.
	assert.Len(t, got, len(testCatalog()))
}

func TestVendingMachineRescan(t *testing.T) {
	// "vending machine" normalizes to the atm token, which matches no
	// product by plain substring. The dedicated rescan must kick in and find
	// the vending station by its atm/vending/coin vocabulary.
	keywords := nlu.NormalizeKeywords([]string{"vending"})
	require.True(t, nlu.HasKeyword(keywords, "atm"))

	got := Filter(testCatalog(), &session.NeedsAssessment{}, nil, keywords)

	assert.Equal(t, []string{"Aqua Vending Station"}, names(got))
}

func TestFilterPreservesRowOrder(t *testing.T) {
	needs := &session.NeedsAssessment{UsageType: session.UsageDomestic}

	got := Filter(testCatalog(), needs, nil, nil)

	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Row, got[i-1].Row)
	}
}

func TestScenarioDomesticBudget(t *testing.T) {
	// "I need a water purifier for my home, family of 4, budget around 12000"
	needs := &session.NeedsAssessment{
		UsageType:      session.UsageDomestic,
		CapacityNeeded: session.CapacitySmall,
		Budget:         &session.BudgetRange{Min: 9600, Max: 14400},
	}
	prefs := map[string]int{}
	keywords := nlu.NormalizeKeywords(nlu.ExtractKeywords("I need a water purifier for my home, family of 4, budget around 12000", prefs))

	got := Sort(Filter(testCatalog(), needs, prefs, keywords), OrderFor(keywords))

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Positive(t, p.RegularPrice)
		assert.LessOrEqual(t, p.RegularPrice, 14400)
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].RegularPrice, got[i-1].RegularPrice)
	}
}

func TestSortOrders(t *testing.T) {
	products := testCatalog()

	asc := Sort(products, SortPriceAsc)
	assert.Equal(t, "UV Guard Municipal", asc[0].Name)
	// Price-on-request rows always sort last.
	assert.Equal(t, "Industrial RO Plant 500", asc[len(asc)-1].Name)

	desc := Sort(products, SortPriceDesc)
	assert.Equal(t, "Aqua Vending Station", desc[0].Name)
	assert.Equal(t, "Industrial RO Plant 500", desc[len(desc)-1].Name)

	byName := Sort(products, SortByName)
	assert.Equal(t, "Aqua Home RO", byName[0].Name)
}

func TestOrderFor(t *testing.T) {
	assert.Equal(t, SortPriceDesc, OrderFor([]string{"premium", "purifier"}))
	assert.Equal(t, SortPriceAsc, OrderFor([]string{"cheap"}))
	assert.Equal(t, SortByName, OrderFor([]string{"best"}))
	assert.Equal(t, SortPriceAsc, OrderFor([]string{"purifier"}))
}

func TestRunReportsNarrowing(t *testing.T) {
	products := testCatalog()

	// No needs and no keyword hit: every stage rolls back.
	none := Run(products, &session.NeedsAssessment{}, nil, []string{"zeppelin"})
	assert.False(t, none.Narrowed)
	assert.Len(t, none.Products, len(products))

	// A single committed stage is enough.
	some := Run(products, &session.NeedsAssessment{UsageType: session.UsageDomestic}, nil, nil)
	assert.True(t, some.Narrowed)
	assert.Less(t, len(some.Products), len(products))

	// The vending rescan counts as narrowing.
	atm := Run(products, &session.NeedsAssessment{}, nil, []string{"atm"})
	assert.True(t, atm.Narrowed)
}
