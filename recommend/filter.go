// Package recommend implements the layered product filter engine. Stages are
// applied in a fixed order and every stage is non-destructive on emptiness:
// a stage replaces the working set only when its matches are non-empty,
// otherwise the wider previous set is carried forward. The rollback keeps a
// single over-specific predicate from zeroing out all recommendations.
package recommend

import (
	"regexp"
	"strings"

	"github.com/hydropure/water-assistant/models"
	"github.com/hydropure/water-assistant/nlu"
	"github.com/hydropure/water-assistant/session"
)

var (
	roRe   = regexp.MustCompile(`\bro\b|reverse\s*osmosis`)
	uvRe   = regexp.MustCompile(`\buv\b|ultraviolet|ultra\s*violet`)
	ufRe   = regexp.MustCompile(`\buf\b|ultrafiltration|ultra\s*filtration`)
	techRe = map[string]*regexp.Regexp{"ro": roRe, "uv": uvRe, "uf": ufRe}

	atmWords = []string{"atm", "vending", "dispenser", "coin", "operated"}

	smallCapacityNumbers = []string{"10", "12", "15"}
	largeCapacityNumbers = []string{"20", "25", "30"}
)

// Result carries a filter outcome. Because every stage rolls back on
// emptiness, Products is never empty for a non-empty catalog; Narrowed
// distinguishes a real match from a pipeline where no predicate committed.
// Callers treat a product query that never narrowed as "no direct matches"
// and hand it to the fallback retriever.
type Result struct {
	Products []models.Product
	Narrowed bool
}

// Filter applies the layered predicate chain to the catalog, seeded by the
// accumulated needs assessment and the current turn's normalized keywords.
// The result keeps catalog row order; sorting is a separate step.
func Filter(
	products []models.Product,
	needs *session.NeedsAssessment,
	prefs map[string]int,
	keywords []string,
) []models.Product {
	return Run(products, needs, prefs, keywords).Products
}

// Run is Filter with the narrowing report.
func Run(
	products []models.Product,
	needs *session.NeedsAssessment,
	prefs map[string]int,
	keywords []string,
) Result {
	working := products
	narrowed := false

	working = budgetStage(working, needs, prefs, &narrowed)
	working = usageStage(working, needs.UsageType, &narrowed)
	working = concernStage(working, needs.Concerns, &narrowed)
	working = sourceStage(working, needs.WaterSource, &narrowed)
	working = capacityStage(working, needs.CapacityNeeded, &narrowed)

	working, keywordMatched := keywordStages(working, keywords)
	narrowed = narrowed || keywordMatched

	// Dedicated rescan for water ATM / vending machine queries: when the
	// query names that equipment but no keyword predicate matched anything,
	// scan the full catalog instead of returning an unrelated working set.
	if nlu.HasKeyword(keywords, "atm") && !keywordMatched {
		if atm := atmScan(products); len(atm) > 0 {
			return Result{Products: atm, Narrowed: true}
		}
	}

	return Result{Products: working, Narrowed: narrowed}
}

// commit implements the rollback rule.
func commit(current, matched []models.Product, narrowed *bool) []models.Product {
	if len(matched) > 0 {
		*narrowed = true
		return matched
	}

	return current
}

func budgetStage(working []models.Product, needs *session.NeedsAssessment, prefs map[string]int, narrowed *bool) []models.Product {
	limit := needs.BudgetLimit(prefs)
	if limit <= 0 {
		return working
	}

	floor := 0
	if needs.Budget != nil {
		floor = needs.Budget.Min
	}

	var matched []models.Product
	for _, p := range working {
		if p.RegularPrice <= 0 {
			continue
		}
		if p.RegularPrice <= limit && p.RegularPrice >= floor {
			matched = append(matched, p)
		}
	}

	return commit(working, matched, narrowed)
}

func usageStage(working []models.Product, usage session.UsageType, narrowed *bool) []models.Product {
	var matched []models.Product

	switch usage {
	case session.UsageDomestic:
		matched = matchSubstrings(working, []string{"domestic", "home", "residential"}, func(p *models.Product) []string {
			return []string{p.Category}
		})
	case session.UsageCommercial:
		matched = matchSubstrings(working, []string{"commercial", "office", "business"}, func(p *models.Product) []string {
			return []string{p.Category, p.Name}
		})
	case session.UsageIndustrial:
		matched = matchSubstrings(working, []string{"industrial", "plant"}, func(p *models.Product) []string {
			return []string{p.Category}
		})
	default:
		return working
	}

	return commit(working, matched, narrowed)
}

// concernStage unions the technology patterns of every stated concern and
// matches them against name and short description.
func concernStage(working []models.Product, concerns []string, narrowed *bool) []models.Product {
	if len(concerns) == 0 {
		return working
	}

	var patterns []string
	var techs []*regexp.Regexp
	for _, concern := range concerns {
		switch concern {
		case session.ConcernHardness:
			patterns = append(patterns, "softener", "softner")
		case session.ConcernTDS:
			techs = append(techs, roRe)
		case session.ConcernBacteria:
			techs = append(techs, uvRe)
		case session.ConcernChlorine:
			patterns = append(patterns, "carbon", "activated")
		}
	}
	if len(patterns) == 0 && len(techs) == 0 {
		return working
	}

	var matched []models.Product
	for _, p := range working {
		text := strings.ToLower(p.Name + " " + p.ShortDescription)
		if anySubstring(text, patterns) || anyPattern(text, techs) {
			matched = append(matched, p)
		}
	}

	return commit(working, matched, narrowed)
}

// sourceStage: borewell water typically carries high TDS and needs RO;
// municipal water needs UV/UF for bacterial protection.
func sourceStage(working []models.Product, source session.WaterSource, narrowed *bool) []models.Product {
	var res []*regexp.Regexp

	switch source {
	case session.SourceBorewell:
		res = []*regexp.Regexp{roRe}
	case session.SourceMunicipal:
		res = []*regexp.Regexp{uvRe, ufRe}
	default:
		return working
	}

	var matched []models.Product
	for _, p := range working {
		text := strings.ToLower(p.Name + " " + p.ShortDescription)
		if anyPattern(text, res) {
			matched = append(matched, p)
		}
	}

	return commit(working, matched, narrowed)
}

func capacityStage(working []models.Product, capacity session.Capacity, narrowed *bool) []models.Product {
	var matched []models.Product

	switch capacity {
	case session.CapacitySmall:
		for _, p := range working {
			if anySubstring(strings.ToLower(p.Description), smallCapacityNumbers) ||
				anySubstring(strings.ToLower(p.Name), []string{"domestic", "home"}) {
				matched = append(matched, p)
			}
		}
	case session.CapacityLarge:
		for _, p := range working {
			if anySubstring(strings.ToLower(p.Description), largeCapacityNumbers) ||
				anySubstring(strings.ToLower(p.Name), []string{"premium", "advance"}) {
				matched = append(matched, p)
			}
		}
	case session.CapacityOffice:
		for _, p := range working {
			if strings.Contains(strings.ToLower(p.Category), "commercial") ||
				anySubstring(strings.ToLower(p.Description), []string{"office", "commercial"}) {
				matched = append(matched, p)
			}
		}
	default:
		return working
	}

	return commit(working, matched, narrowed)
}

// keywordStages applies the current-turn keyword predicates: first a
// technology restriction when RO/UV/UF tokens are present, then a general
// OR-of-substring match across all text fields. Reports whether either
// predicate actually matched anything.
func keywordStages(working []models.Product, keywords []string) ([]models.Product, bool) {
	if len(keywords) == 0 {
		return working, false
	}

	matchedAny := false

	var present []*regexp.Regexp
	for _, tech := range []string{"ro", "uv", "uf"} {
		if nlu.HasKeyword(keywords, tech) {
			present = append(present, techRe[tech])
		}
	}
	if len(present) > 0 {
		var matched []models.Product
		for _, p := range working {
			text := strings.ToLower(p.Name + " " + p.ShortDescription)
			if anyPattern(text, present) {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			working = matched
			matchedAny = true
		}
	}

	var matched []models.Product
	for _, p := range working {
		text := strings.ToLower(strings.Join([]string{
			p.Name, p.ShortDescription, p.Category, p.Description,
		}, " "))
		if anySubstring(text, keywords) {
			matched = append(matched, p)
		}
	}
	if len(matched) > 0 {
		working = matched
		matchedAny = true
	}

	return working, matchedAny
}

func atmScan(products []models.Product) []models.Product {
	var matched []models.Product
	for _, p := range products {
		text := strings.ToLower(strings.Join([]string{
			p.Name, p.ShortDescription, p.Category, p.Description,
		}, " "))
		if anySubstring(text, atmWords) {
			matched = append(matched, p)
		}
	}

	return matched
}

func matchSubstrings(working []models.Product, words []string, fields func(*models.Product) []string) []models.Product {
	var matched []models.Product
	for i := range working {
		text := strings.ToLower(strings.Join(fields(&working[i]), " "))
		if anySubstring(text, words) {
			matched = append(matched, working[i])
		}
	}

	return matched
}

func anySubstring(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}

	return false
}

func anyPattern(text string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}

	return false
}
