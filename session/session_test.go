package session

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSufficientTwoOfThree(t *testing.T) {
	tests := []struct {
		name  string
		needs NeedsAssessment
		want  bool
	}{
		{"empty", NeedsAssessment{}, false},
		{"usage only", NeedsAssessment{UsageType: UsageDomestic}, false},
		{"usage and capacity", NeedsAssessment{UsageType: UsageDomestic, CapacityNeeded: CapacitySmall}, true},
		{"usage and source", NeedsAssessment{UsageType: UsageCommercial, WaterSource: SourceMunicipal}, true},
		{"capacity and concern", NeedsAssessment{CapacityNeeded: CapacityLarge, Concerns: []string{ConcernTDS}}, true},
		{"industrial implies capacity", NeedsAssessment{UsageType: UsageIndustrial}, true},
		{"source only", NeedsAssessment{WaterSource: SourceBorewell}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.needs.Sufficient())
		})
	}
}

// Adding information to any field can only move Sufficient from false to
// true, never back.
func TestSufficientMonotonic(t *testing.T) {
	needs := NeedsAssessment{UsageType: UsageDomestic, CapacityNeeded: CapacitySmall}
	require.True(t, needs.Sufficient())

	needs.WaterSource = SourceBorewell
	needs.AddConcern(ConcernTDS)
	needs.Budget = &BudgetRange{Max: 15000}
	assert.True(t, needs.Sufficient())
}

func TestNextQuestionsLimitAndOrder(t *testing.T) {
	needs := NeedsAssessment{}
	questions := needs.NextQuestions()

	require.Len(t, questions, 2)
	assert.Contains(t, questions[0], "Where will you be using")
	assert.Contains(t, questions[1], "water source")
	assert.False(t, needs.RequirementsGathered)
}

func TestNextQuestionsCapacityPhrasing(t *testing.T) {
	tests := []struct {
		usage UsageType
		want  string
	}{
		{UsageDomestic, "Family size"},
		{UsageCommercial, "office"},
		{UsageIndustrial, "liters per hour"},
	}

	for _, tt := range tests {
		t.Run(string(tt.usage), func(t *testing.T) {
			needs := NeedsAssessment{UsageType: tt.usage}
			questions := needs.NextQuestions()
			require.NotEmpty(t, questions)
			assert.Contains(t, questions[0], tt.want)
		})
	}
}

func TestNextQuestionsEmptyFlipsGathered(t *testing.T) {
	needs := NeedsAssessment{
		UsageType:      UsageDomestic,
		CapacityNeeded: CapacitySmall,
		WaterSource:    SourceMunicipal,
		Budget:         &BudgetRange{Max: 12000},
		Concerns:       []string{ConcernTaste},
	}

	assert.Empty(t, needs.NextQuestions())
	assert.True(t, needs.RequirementsGathered)
}

func TestAddConcernSetSemantics(t *testing.T) {
	var needs NeedsAssessment
	needs.AddConcern(ConcernTDS)
	needs.AddConcern(ConcernTDS)
	needs.AddConcern(ConcernTaste)

	assert.Equal(t, []string{ConcernTDS, ConcernTaste}, needs.Concerns)
}

func TestBudgetLimitFallsBackToPreference(t *testing.T) {
	needs := NeedsAssessment{}
	assert.Equal(t, 9000, needs.BudgetLimit(map[string]int{"max_price": 9000}))

	needs.Budget = &BudgetRange{Max: 15000}
	assert.Equal(t, 15000, needs.BudgetLimit(map[string]int{"max_price": 9000}))
}

func TestHistoryEvictionKeepsPairs(t *testing.T) {
	ctx := NewContext(12)

	for i := 0; i < 10; i++ {
		ctx.RecordTurn(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	history := ctx.History()
	require.Len(t, history, 12)
	assert.Equal(t, 0, len(history)%2)
	assert.Equal(t, "User: question 4", history[0])
	assert.Equal(t, "Bot: answer 9", history[11])
}

func TestOddHistoryLimitRoundsDown(t *testing.T) {
	ctx := NewContext(13)

	for i := 0; i < 10; i++ {
		ctx.RecordTurn("u", "b")
	}

	assert.Len(t, ctx.History(), 12)
}

func TestRepeatQuestionFingerprint(t *testing.T) {
	ctx := NewContext(12)

	question := "What's your water source? (Municipal supply, Borewell, or Tanker water)"
	require.False(t, ctx.IsRepeatQuestion(question))

	ctx.MarkAsked(question)
	assert.True(t, ctx.IsRepeatQuestion(question))

	// Same prefix, different tail: still a repeat.
	assert.True(t, ctx.IsRepeatQuestion("WHAT'S YOUR WATER SOURCE? (municipal supply, borewell, or tanker water please)"))

	// Different prefix: not a repeat.
	assert.False(t, ctx.IsRepeatQuestion("What's your budget range?"))
}

func TestShownProducts(t *testing.T) {
	ctx := NewContext(12)
	ctx.MarkShown("Aqua Pure RO", "UV Guard")
	ctx.MarkShown("Aqua Pure RO")

	assert.True(t, ctx.WasShown("Aqua Pure RO"))
	assert.False(t, ctx.WasShown("Water Softener Max"))
	assert.Equal(t, 2, ctx.ShownCount())
}

func TestSummary(t *testing.T) {
	sess := New("cust-1", 12)
	assert.Equal(t, "Fresh conversation", sess.Summary())

	// Partially known but not yet gathered: assessment in progress.
	sess.Needs.UsageType = UsageDomestic
	assert.Equal(t, "Requirements being assessed", sess.Summary())

	sess.Needs.Budget = &BudgetRange{Max: 12000}
	sess.Needs.RequirementsGathered = true
	sess.Context.MarkShown("Aqua Pure RO")
	sess.Context.MarkTopicCovered("water_hardness")

	summary := sess.Summary()
	assert.Contains(t, summary, "Usage: domestic")
	assert.Contains(t, summary, "Budget: ₹12000")
	assert.Contains(t, summary, "Products shown: 1")
	assert.Contains(t, summary, "Education provided: water_hardness")
}

func TestRecentHistory(t *testing.T) {
	ctx := NewContext(20)
	for i := 0; i < 5; i++ {
		ctx.RecordTurn(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	recent := ctx.RecentHistory(6)
	lines := strings.Split(recent, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "User: q2", lines[0])
}
