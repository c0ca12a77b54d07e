// Package nlu is the rule-based natural-language front end: intent
// classification, keyword extraction/normalization and requirement
// extraction. It is keyword and regex driven by construction, not a
// statistical parser, so pattern precedence is pinned down by tests.
package nlu

import "strings"

// Intent is the coarse classification of a customer message.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentGreeting
	IntentFarewell
	IntentEducational
	IntentProduct
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentFarewell:
		return "farewell"
	case IntentEducational:
		return "educational"
	case IntentProduct:
		return "product"
	default:
		return "general"
	}
}

var greetingKeywords = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"greetings", "howdy", "what's up", "whats up", "sup", "hiya", "hola",
}

var farewellKeywords = []string{
	"bye", "goodbye", "see you", "farewell", "thanks", "thank you",
	"that's all", "thats all",
}

var educationalKeywords = []string{
	"what is", "benefits of", "advantage", "disadvantage", "how does", "why",
	"explain", "difference", "comparison", "help", "information",
	"tell me about", "alkaline", "ph", "tds", "hardness", "chlorine",
	"purification", "filtration",
}

var productKeywords = []string{
	"show me", "i need", "i want", "looking for", "recommend", "suggest",
	"buy", "purchase", "price", "cost", "system", "purifier", "filter",
	"ro", "uv", "uf", "plant", "machine", "softener", "products",
}

// IsGreeting matches exact greetings, greetings with punctuation, and
// messages that open with a greeting.
func IsGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, g := range greetingKeywords {
		if lower == g {
			return true
		}
	}

	var b strings.Builder
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || r == ' ' || r == '\'' {
			b.WriteRune(r)
		}
	}
	stripped := strings.TrimSpace(b.String())
	for _, g := range greetingKeywords {
		if stripped == g {
			return true
		}
	}

	// Prefix match, but only on a word boundary so "hi there" is a greeting
	// while "high tds" is not.
	for _, g := range greetingKeywords {
		if !strings.HasPrefix(lower, g) {
			continue
		}
		if len(lower) == len(g) {
			return true
		}
		next := lower[len(g)]
		if next < 'a' || next > 'z' {
			return true
		}
	}

	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}

// IsFarewell reports whether the message closes the conversation.
func IsFarewell(text string) bool {
	return containsAny(strings.ToLower(text), farewellKeywords)
}

// IsEducational reports whether the customer is asking for water education
// rather than (or in addition to) products.
func IsEducational(text string) bool {
	return containsAny(strings.ToLower(text), educationalKeywords)
}

// IsProductInquiry reports whether the customer is asking about products or
// wants to buy something. Educational and product inquiries are not mutually
// exclusive.
func IsProductInquiry(text string) bool {
	return containsAny(strings.ToLower(text), productKeywords)
}

// Classify picks the primary intent. Greetings and farewells short-circuit
// everything else; a message that is both educational and a product inquiry
// classifies as product, the caller consults IsEducational separately.
func Classify(text string) Intent {
	switch {
	case IsGreeting(text):
		return IntentGreeting
	case IsFarewell(text):
		return IntentFarewell
	case IsProductInquiry(text):
		return IntentProduct
	case IsEducational(text):
		return IntentEducational
	default:
		return IntentGeneral
	}
}
