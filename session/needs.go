// Package session holds the per-conversation mutable state: the needs
// assessment inferred from customer messages and the conversation context
// used to suppress repeats. One Session belongs to exactly one customer
// conversation and is passed by reference into extraction and filtering;
// sessions are never shared across concurrent conversations.
package session

// UsageType classifies where the customer intends to use the system.
type UsageType string

const (
	UsageUnset      UsageType = ""
	UsageDomestic   UsageType = "domestic"
	UsageCommercial UsageType = "commercial"
	UsageIndustrial UsageType = "industrial"
)

// Capacity is the rough system size the customer needs.
type Capacity string

const (
	CapacityUnset  Capacity = ""
	CapacitySmall  Capacity = "small"
	CapacityLarge  Capacity = "large"
	CapacityOffice Capacity = "office"
)

// WaterSource is where the customer's raw water comes from.
type WaterSource string

const (
	SourceUnset     WaterSource = ""
	SourceBorewell  WaterSource = "borewell"
	SourceMunicipal WaterSource = "municipal"
	SourceTanker    WaterSource = "tanker"
)

// Concern tags recognised by the requirement extractor and mapped to
// technologies by the filter engine.
const (
	ConcernTaste    = "taste issues"
	ConcernHardness = "water hardness"
	ConcernTDS      = "high TDS"
	ConcernBacteria = "bacterial contamination"
	ConcernChlorine = "chlorine/chemicals"
)

// BudgetRange is the customer's price band. Max is the upper bound; Min is
// zero unless the customer gave an approximate figure, in which case both
// ends of a band are set.
type BudgetRange struct {
	Min int
	Max int
}

// NeedsAssessment accumulates the structured purchase requirements extracted
// from the conversation. Fields stay unset until a rule matches; re-stating a
// fact overwrites single-valued fields and never toggles anything twice.
type NeedsAssessment struct {
	UsageType            UsageType
	CapacityNeeded       Capacity
	Budget               *BudgetRange
	WaterSource          WaterSource
	Concerns             []string
	RequirementsGathered bool
}

// AddConcern appends a concern tag with set semantics.
func (n *NeedsAssessment) AddConcern(tag string) {
	for _, existing := range n.Concerns {
		if existing == tag {
			return
		}
	}

	n.Concerns = append(n.Concerns, tag)
}

// Known reports whether any requirement dimension has been captured yet.
func (n *NeedsAssessment) Known() bool {
	return n.UsageType != UsageUnset ||
		n.CapacityNeeded != CapacityUnset ||
		n.Budget != nil ||
		n.WaterSource != SourceUnset ||
		len(n.Concerns) > 0
}

// Sufficient reports whether enough is known to filter meaningfully: at least
// two of {usage type known; capacity known or usage industrial; water source
// known or a concern stated}. Deliberately 2-of-3 so the customer is not
// over-interrogated. Monotonic: adding information never flips this back.
func (n *NeedsAssessment) Sufficient() bool {
	satisfied := 0
	if n.UsageType != UsageUnset {
		satisfied++
	}
	if n.CapacityNeeded != CapacityUnset || n.UsageType == UsageIndustrial {
		satisfied++
	}
	if n.WaterSource != SourceUnset || len(n.Concerns) > 0 {
		satisfied++
	}

	return satisfied >= 2
}

// NextQuestions generates at most two clarifying questions for the missing
// dimensions, in fixed priority order. An empty result flips
// RequirementsGathered to true; once true it is never reset for the session.
func (n *NeedsAssessment) NextQuestions() []string {
	var questions []string

	if n.UsageType == UsageUnset {
		questions = append(questions, "Where will you be using this water treatment system? (Home, Office, or Industrial facility)")
	}

	if n.CapacityNeeded == CapacityUnset && n.UsageType != UsageUnset {
		switch n.UsageType {
		case UsageDomestic:
			questions = append(questions, "How many people will be using the system? (Family size helps determine capacity)")
		case UsageCommercial:
			questions = append(questions, "How many people work in your office? (This helps determine daily water requirement)")
		case UsageIndustrial:
			questions = append(questions, "What's your daily water requirement? (In liters per hour or per day)")
		}
	}

	if n.WaterSource == SourceUnset {
		questions = append(questions, "What's your water source? (Municipal supply, Borewell, or Tanker water)")
	}

	if n.Budget == nil {
		questions = append(questions, "What's your budget range? (This helps me recommend the best system for your needs)")
	}

	if len(n.Concerns) == 0 {
		questions = append(questions, "Any specific water quality issues? (Bad taste, hardness, high TDS, contamination concerns)")
	}

	if len(questions) == 0 {
		n.RequirementsGathered = true
		return nil
	}

	if len(questions) > 2 {
		questions = questions[:2]
	}

	return questions
}

// BudgetLimit resolves the effective price ceiling, falling back to the
// max_price preference recorded by the keyword extractor.
func (n *NeedsAssessment) BudgetLimit(prefs map[string]int) int {
	if n.Budget != nil && n.Budget.Max > 0 {
		return n.Budget.Max
	}

	return prefs["max_price"]
}
