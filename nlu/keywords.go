package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"do", "you", "have", "has", "is", "the", "an", "we", "are", "with",
		"any", "of", "in", "for", "to", "on", "and", "me", "can", "could",
		"please", "would", "like", "need", "want", "tell", "know", "if", "it",
		"this", "that", "there", "be", "at", "products", "what", "show",
		"looking",
	} {
		stopwords[w] = struct{}{}
	}
}

var (
	wordRe     = regexp.MustCompile(`\b\w{2,}\b`)
	maxPriceRe = regexp.MustCompile(`(?:under|below|less\s*than)\s*₹?\s*(\d{2,6})`)
)

// ExtractKeywords tokenizes free text into lowercase alphanumeric tokens of
// length two or more, with the stopword set removed. Side effect: a price
// ceiling phrased as "under/below/less than N" is recorded into
// prefs["max_price"], overwriting any prior value. This side channel is
// deliberately separate from the requirement extractor's budget field.
func ExtractKeywords(text string, prefs map[string]int) []string {
	lower := strings.ToLower(text)

	if m := maxPriceRe.FindStringSubmatch(lower); m != nil && prefs != nil {
		if price, err := strconv.Atoi(m[1]); err == nil {
			prefs["max_price"] = price
		}
	}

	var keywords []string
	for _, word := range wordRe.FindAllString(lower, -1) {
		if _, skip := stopwords[word]; skip {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}

// synonymGroups maps surface variants to one canonical token. Order matters:
// the first group containing a token wins.
var synonymGroups = []struct {
	canonical string
	members   []string
}{
	{"ro", []string{"ro", "reverse", "osmosis"}},
	{"uv", []string{"uv", "ultraviolet", "violet"}},
	{"uf", []string{"uf", "ultrafiltration"}},
	{"atm", []string{"atm", "vending", "dispenser", "coin", "operated"}},
	{"softener", []string{"softener", "softner", "soft"}},
	{"machine", []string{"machine", "unit", "device"}},
	{"plant", []string{"plant", "treatment"}},
	{"industrial", []string{"industrial", "commercial", "business"}},
	{"domestic", []string{"domestic", "home", "household", "residential"}},
	{"purifier", []string{"purifier", "filter", "filtration", "purification"}},
	{"lph", []string{"lph", "liters", "hour", "capacity"}},
	{"gpd", []string{"gpd", "gallons"}},
}

// NormalizeKeywords maps every member of a synonym group to its canonical
// representative; tokens matching no group pass through unchanged. Strictly
// many-to-one: a token never expands into several. Input order is preserved
// and duplicates collapse onto the first occurrence.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	var normalized []string

	for _, word := range keywords {
		canonical := word
		matched := false
		for _, group := range synonymGroups {
			for _, member := range group.members {
				if word == member {
					canonical = group.canonical
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}

		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		normalized = append(normalized, canonical)
	}

	return normalized
}

// HasKeyword reports whether the normalized keyword set contains a token.
func HasKeyword(keywords []string, token string) bool {
	for _, kw := range keywords {
		if kw == token {
			return true
		}
	}

	return false
}
