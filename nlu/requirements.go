package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hydropure/water-assistant/session"
)

var (
	domesticWords   = []string{"home", "house", "family", "domestic", "residential"}
	commercialWords = []string{"office", "commercial", "business", "company"}
	industrialWords = []string{"factory", "industrial", "plant", "manufacturing"}

	smallCapacityPhrases  = []string{"small family", "2-3 people", "few people"}
	largeCapacityPhrases  = []string{"large family", "5-6 people", "big family"}
	officeCapacityPhrases = []string{"office", "50 people", "100 people"}

	borewellWords  = []string{"borewell", "bore well", "groundwater", "well water"}
	municipalWords = []string{"municipal", "corporation", "tap water"}
	tankerWords    = []string{"tanker", "tank water", "delivered water"}

	familySizeRe = regexp.MustCompile(`family of (\d+)`)

	// Budget patterns are tried in this exact order; the first match wins and
	// stops evaluation. Amounts are restricted to 4-6 digits to avoid false
	// positives on small numbers like "2 people".
	aroundBudgetRe = regexp.MustCompile(`(?:around|approximately|approx|about)\s*₹?\s*(\d{4,6})`)
	budgetRes      = []*regexp.Regexp{
		regexp.MustCompile(`budget.*?₹?\s*(\d{4,6})`),
		regexp.MustCompile(`under.*?₹?\s*(\d{4,6})`),
		regexp.MustCompile(`below.*?₹?\s*(\d{4,6})`),
		regexp.MustCompile(`₹\s*(\d{4,6})`),
		regexp.MustCompile(`price.*?(\d{4,6})`),
		regexp.MustCompile(`cost.*?(\d{4,6})`),
	}

	concernWords = []struct {
		tag   string
		words []string
	}{
		{session.ConcernTaste, []string{"taste", "bad taste", "bitter"}},
		{session.ConcernHardness, []string{"hard water", "scale", "soap"}},
		{session.ConcernTDS, []string{"high tds", "tds", "dissolved solids"}},
		{session.ConcernBacteria, []string{"bacteria", "contamination", "infection"}},
		{session.ConcernChlorine, []string{"chlorine", "chemical smell"}},
	}
)

// ExtractRequirements scans a customer message and updates the needs
// assessment in place. Each rule is independent and evaluated every turn;
// a rule that finds nothing leaves its field untouched, so this never fails.
// Re-running the same text is idempotent: single-valued fields are
// overwritten with the same value and the concern set deduplicates.
func ExtractRequirements(text string, needs *session.NeedsAssessment) {
	lower := strings.ToLower(text)

	extractUsageType(lower, needs)
	extractCapacity(lower, needs)
	extractBudget(lower, needs)
	extractWaterSource(lower, needs)
	extractConcerns(lower, needs)
}

func extractUsageType(lower string, needs *session.NeedsAssessment) {
	switch {
	case containsAny(lower, domesticWords):
		needs.UsageType = session.UsageDomestic
	case containsAny(lower, commercialWords):
		needs.UsageType = session.UsageCommercial
	case containsAny(lower, industrialWords):
		needs.UsageType = session.UsageIndustrial
	}
}

func extractCapacity(lower string, needs *session.NeedsAssessment) {
	if m := familySizeRe.FindStringSubmatch(lower); m != nil {
		if size, err := strconv.Atoi(m[1]); err == nil {
			if size <= 4 {
				needs.CapacityNeeded = session.CapacitySmall
			} else {
				needs.CapacityNeeded = session.CapacityLarge
			}
			return
		}
	}

	switch {
	case containsAny(lower, smallCapacityPhrases):
		needs.CapacityNeeded = session.CapacitySmall
	case containsAny(lower, largeCapacityPhrases):
		needs.CapacityNeeded = session.CapacityLarge
	case containsAny(lower, officeCapacityPhrases):
		needs.CapacityNeeded = session.CapacityOffice
	}
}

func extractBudget(lower string, needs *session.NeedsAssessment) {
	// An approximate figure ("around 12000") yields a ±20% band instead of a
	// hard ceiling.
	if m := aroundBudgetRe.FindStringSubmatch(lower); m != nil {
		if amount, err := strconv.Atoi(m[1]); err == nil {
			needs.Budget = &session.BudgetRange{
				Min: amount - amount/5,
				Max: amount + amount/5,
			}
			return
		}
	}

	for _, re := range budgetRes {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if amount, err := strconv.Atoi(m[1]); err == nil {
			needs.Budget = &session.BudgetRange{Max: amount}
		}
		return
	}
}

func extractWaterSource(lower string, needs *session.NeedsAssessment) {
	switch {
	case containsAny(lower, borewellWords):
		needs.WaterSource = session.SourceBorewell
	case containsAny(lower, municipalWords):
		needs.WaterSource = session.SourceMunicipal
	case containsAny(lower, tankerWords):
		needs.WaterSource = session.SourceTanker
	}
}

func extractConcerns(lower string, needs *session.NeedsAssessment) {
	for _, concern := range concernWords {
		if containsAny(lower, concern.words) {
			needs.AddConcern(concern.tag)
		}
	}
}
