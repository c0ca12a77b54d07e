package session

import (
	"fmt"
	"strings"
)

// fingerprint length for repeat-question detection. Deliberately coarse:
// two questions are "the same" only when their lowercase prefixes collide.
const fingerprintRunes = 50

// ConversationContext tracks what already happened in a conversation so the
// assistant never re-asks a question or silently reintroduces a product.
// Shown products, asked questions and covered topics only grow; the turn
// history is bounded with oldest-first eviction.
type ConversationContext struct {
	shownProducts  map[string]struct{}
	askedQuestions map[string]struct{}
	coveredTopics  map[string]struct{}
	topicOrder     []string
	history        []string
	historyLimit   int

	// Preferences is the stateful side channel written by the keyword
	// extractor, e.g. max_price.
	Preferences map[string]int
}

// NewContext creates an empty conversation context. historyLimit bounds the
// number of retained history entries; it is rounded down to an even count so
// the history never ends mid user/bot pair.
func NewContext(historyLimit int) *ConversationContext {
	if historyLimit < 2 {
		historyLimit = 12
	}

	return &ConversationContext{
		shownProducts:  make(map[string]struct{}),
		askedQuestions: make(map[string]struct{}),
		coveredTopics:  make(map[string]struct{}),
		historyLimit:   historyLimit - historyLimit%2,
		Preferences:    make(map[string]int),
	}
}

// RecordTurn appends a user/bot pair to the history and evicts the oldest
// pairs once the bound is exceeded.
func (c *ConversationContext) RecordTurn(userText, botText string) {
	c.history = append(c.history, "User: "+userText, "Bot: "+botText)

	if len(c.history) > c.historyLimit {
		c.history = c.history[len(c.history)-c.historyLimit:]
	}
}

// History returns the retained turn entries, oldest first.
func (c *ConversationContext) History() []string {
	return c.history
}

// RecentHistory joins the last n history entries for the prompt payload.
func (c *ConversationContext) RecentHistory(n int) string {
	entries := c.history
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}

	return strings.Join(entries, "\n")
}

func fingerprint(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	runes := []rune(text)
	if len(runes) > fingerprintRunes {
		runes = runes[:fingerprintRunes]
	}

	return string(runes)
}

// MarkAsked remembers a clarifying question so it is never asked again.
func (c *ConversationContext) MarkAsked(question string) {
	c.askedQuestions[fingerprint(question)] = struct{}{}
}

// IsRepeatQuestion reports whether a question with the same prefix
// fingerprint was already asked this session.
func (c *ConversationContext) IsRepeatQuestion(question string) bool {
	_, ok := c.askedQuestions[fingerprint(question)]
	return ok
}

// MarkShown records products that were surfaced to the customer.
func (c *ConversationContext) MarkShown(names ...string) {
	for _, name := range names {
		c.shownProducts[name] = struct{}{}
	}
}

// WasShown reports whether a product was already surfaced.
func (c *ConversationContext) WasShown(name string) bool {
	_, ok := c.shownProducts[name]
	return ok
}

// ShownCount returns how many distinct products were surfaced so far.
func (c *ConversationContext) ShownCount() int {
	return len(c.shownProducts)
}

// MarkTopicCovered records an educational topic given to the customer.
func (c *ConversationContext) MarkTopicCovered(topic string) {
	if _, ok := c.coveredTopics[topic]; ok {
		return
	}

	c.coveredTopics[topic] = struct{}{}
	c.topicOrder = append(c.topicOrder, topic)
}

// Session is one customer's continuous conversation.
type Session struct {
	ID      string
	Needs   NeedsAssessment
	Context *ConversationContext
}

// New constructs an independent session. Each simultaneous customer gets its
// own instance; nothing here is shared.
func New(id string, historyLimit int) *Session {
	return &Session{
		ID:      id,
		Context: NewContext(historyLimit),
	}
}

// Summary builds the context-analysis line handed to the language model so it
// knows what was already established and avoids repetitive questions.
func (s *Session) Summary() string {
	var parts []string

	if s.Needs.RequirementsGathered {
		var reqs []string
		if s.Needs.UsageType != UsageUnset {
			reqs = append(reqs, "Usage: "+string(s.Needs.UsageType))
		}
		if s.Needs.CapacityNeeded != CapacityUnset {
			reqs = append(reqs, "Capacity: "+string(s.Needs.CapacityNeeded))
		}
		if s.Needs.Budget != nil {
			reqs = append(reqs, fmt.Sprintf("Budget: ₹%d", s.Needs.Budget.Max))
		}
		if s.Needs.WaterSource != SourceUnset {
			reqs = append(reqs, "Source: "+string(s.Needs.WaterSource))
		}
		if len(s.Needs.Concerns) > 0 {
			concerns := s.Needs.Concerns
			if len(concerns) > 2 {
				concerns = concerns[:2]
			}
			reqs = append(reqs, "Concerns: "+strings.Join(concerns, ", "))
		}

		if len(reqs) > 3 {
			reqs = reqs[:3]
		}
		if len(reqs) > 0 {
			parts = append(parts, "Customer requirements: "+strings.Join(reqs, " | "))
		}
	} else if s.Needs.Known() {
		parts = append(parts, "Requirements being assessed")
	}

	if n := s.Context.ShownCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("Products shown: %d", n))
	}

	if len(s.Context.topicOrder) > 0 {
		topics := s.Context.topicOrder
		if len(topics) > 2 {
			topics = topics[:2]
		}
		parts = append(parts, "Education provided: "+strings.Join(topics, ", "))
	}

	if len(parts) == 0 {
		return "Fresh conversation"
	}

	return strings.Join(parts, " | ")
}
