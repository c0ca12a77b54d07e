package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hydropure/water-assistant/catalog"
	"github.com/hydropure/water-assistant/education"
	"github.com/hydropure/water-assistant/models"
	"github.com/hydropure/water-assistant/nlu"
	"github.com/hydropure/water-assistant/recommend"
	"github.com/hydropure/water-assistant/retrieval"
	"github.com/hydropure/water-assistant/session"
)

// ErrAssistant marks a collaborator failure (language model or retriever
// transport). The websocket loop turns it into an apology; the failed turn
// is not recorded in history so the customer can simply retry.
var ErrAssistant = errors.New("assistant collaborator failure")

// Completer produces the final reply text from the synthesis variables.
type Completer interface {
	Complete(ctx context.Context, vars map[string]any) (string, error)
}

// Finder is the fallback product lookup used when rule-based filtering finds
// no direct matches.
type Finder interface {
	Lookup(ctx context.Context, query string) ([]models.Product, error)
}

type Handler struct {
	catalog     *catalog.Store
	completer   Completer
	fallback    Finder
	maxProducts int
	maxDocs     int
	historyTurn int
}

func NewHandler(store *catalog.Store, completer Completer, fallback Finder, maxProducts, maxDocs int) *Handler {
	return &Handler{
		catalog:     store,
		completer:   completer,
		fallback:    fallback,
		maxProducts: maxProducts,
		maxDocs:     maxDocs,
		historyTurn: 6,
	}
}

// ProcessTurn runs one conversation turn: classify, accumulate requirements,
// gate on the needs assessment, filter the catalog, fall back to the semantic
// retriever when nothing matched directly, and synthesize the reply.
func (h *Handler) ProcessTurn(ctx context.Context, sess *session.Session, userInput string) (*TurnReply, error) {
	trimmed := strings.TrimSpace(userInput)
	if trimmed == "" {
		return &TurnReply{Text: helpMessage}, nil
	}

	if nlu.IsGreeting(trimmed) {
		reply := greetingResponses[rand.Intn(len(greetingResponses))]
		sess.Context.RecordTurn(trimmed, reply)

		return &TurnReply{Text: reply}, nil
	}
	if nlu.IsFarewell(trimmed) {
		sess.Context.RecordTurn(trimmed, farewellMessage)

		return &TurnReply{Text: farewellMessage}, nil
	}

	nlu.ExtractRequirements(trimmed, &sess.Needs)
	keywords := nlu.NormalizeKeywords(nlu.ExtractKeywords(trimmed, sess.Context.Preferences))

	educational := nlu.IsEducational(trimmed)
	productInquiry := nlu.IsProductInquiry(trimmed)

	educationInfo := ""
	if educational {
		content, topics := education.Lookup(trimmed)
		if content != "" {
			educationInfo = content
			for _, topic := range topics {
				sess.Context.MarkTopicCovered(topic)
			}
		}
	}

	if productInquiry && !sess.Needs.RequirementsGathered {
		if reply := h.assess(sess); reply != "" {
			sess.Context.RecordTurn(trimmed, "[needs assessment questions]")

			return &TurnReply{Text: reply}, nil
		}
	}

	products, reply, err := h.selectProducts(ctx, sess, trimmed, keywords, productInquiry, educational, educationInfo)
	if err != nil {
		return nil, err
	}
	if reply != "" {
		sess.Context.RecordTurn(trimmed, reply)

		return &TurnReply{Text: reply}, nil
	}

	info := h.formatInfo(products)
	if info == "" && educationInfo == "" && !productInquiry {
		sess.Context.RecordTurn(trimmed, helpMessage)

		return &TurnReply{Text: helpMessage}, nil
	}

	answer, err := h.completer.Complete(ctx, map[string]any{
		"history":          sess.Context.RecentHistory(h.historyTurn),
		"question":         trimmed,
		"info":             info,
		"education_info":   educationInfo,
		"context_analysis": sess.Summary(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate reply: %v", ErrAssistant, err)
	}

	for i := range products {
		sess.Context.MarkShown(products[i].Name)
	}
	sess.Context.RecordTurn(trimmed, truncateForHistory(answer))

	turn := &TurnReply{Text: answer, Products: products}
	if len(products) == 1 {
		if img := products[0].FirstImage(); strings.HasPrefix(img, "http") {
			turn.ImageURL = img
		}
	}

	return turn, nil
}

// assess returns the clarifying-questions reply, or "" when the conversation
// should move on to recommendations. Questions already asked (by their
// fingerprint) are suppressed; when every candidate is a repeat the
// interrogation stops for good.
func (h *Handler) assess(sess *session.Session) string {
	if sess.Needs.Sufficient() {
		sess.Needs.RequirementsGathered = true

		return ""
	}

	var fresh []string
	for _, q := range sess.Needs.NextQuestions() {
		if !sess.Context.IsRepeatQuestion(q) {
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		sess.Needs.RequirementsGathered = true

		return ""
	}

	var b strings.Builder
	b.WriteString(assessmentPreamble)
	for i, q := range fresh {
		sess.Context.MarkAsked(q)
		fmt.Fprintf(&b, "\n%d. %s", i+1, q)
	}

	return b.String()
}

// selectProducts runs the filter pipeline and, for product inquiries that
// never narrowed the catalog, the fallback retriever. A non-empty reply means
// the turn is already answered without the language model.
func (h *Handler) selectProducts(
	ctx context.Context,
	sess *session.Session,
	input string,
	keywords []string,
	productInquiry, educational bool,
	educationInfo string,
) ([]models.Product, string, error) {
	if !sess.Needs.RequirementsGathered || (educational && !productInquiry) {
		return nil, "", nil
	}

	result := recommend.Run(h.catalog.All(), &sess.Needs, sess.Context.Preferences, keywords)
	products := recommend.Sort(result.Products, recommend.OrderFor(keywords))

	if productInquiry && !result.Narrowed {
		found, err := h.fallback.Lookup(ctx, input)
		switch {
		case err == nil:
			products = found
		case errors.Is(err, retrieval.ErrNoMatch):
			if educationInfo == "" {
				return nil, noMatchMessage, nil
			}
			products = nil
		default:
			return nil, "", fmt.Errorf("%w: fallback lookup: %v", ErrAssistant, err)
		}
	}

	if len(products) > h.maxProducts {
		products = products[:h.maxProducts]
	}

	return products, "", nil
}

func (h *Handler) formatInfo(products []models.Product) string {
	if len(products) == 0 {
		return ""
	}

	docs := products
	if len(docs) > h.maxDocs {
		docs = docs[:h.maxDocs]
	}

	parts := make([]string, 0, len(docs))
	for i := range docs {
		parts = append(parts, docs[i].DetailedInfo())
	}

	return strings.Join(parts, "\n\n"+strings.Repeat("=", 50)+"\n\n")
}

func truncateForHistory(s string) string {
	runes := []rune(s)
	if len(runes) <= 200 {
		return s
	}

	return string(runes[:200]) + "..."
}
