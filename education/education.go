// Package education serves the static water-education knowledge base used to
// answer "what is / how does" questions from the curated content only.
package education

import "strings"

// Topic is one entry of the knowledge base.
type Topic struct {
	Key     string
	Title   string
	Content string
}

// maxTopicsPerReply bounds how much education goes into one answer.
const maxTopicsPerReply = 2

var topics = []Topic{
	{
		Key:   "alkaline_water",
		Title: "Alkaline Water Benefits",
		Content: `Alkaline water has a pH of 8.5-9.5 versus 6.5-7.5 for regular water.
Reported benefits: better hydration, antioxidant properties, pH balance,
improved mineral absorption. It is produced by ionization, which raises pH
and adds minerals such as calcium, magnesium and potassium. Start with 1-2
glasses daily; not recommended for people with kidney disease. Our
RO+Alkaline systems add alkaline minerals back after purification.`,
	},
	{
		Key:   "tds_information",
		Title: "TDS (Total Dissolved Solids) Guide",
		Content: `TDS measures dissolved minerals, salts and metals in water, in ppm.
0-50 ppm is excellent but may lack minerals; 50-150 ppm is ideal for
drinking; 150-300 ppm acceptable; 300-500 ppm needs treatment; above 500 ppm
requires purification. RO reduces TDS by 80-95 percent and can go too low;
a TDS controller or mineralizer restores the essential minerals, while UV/UF
preserves natural TDS levels.`,
	},
	{
		Key:   "ro_vs_uv_uf",
		Title: "RO vs UV vs UF Technology Comparison",
		Content: `Reverse Osmosis (RO) removes heavy metals, chemicals, salts, bacteria
and viruses and cuts TDS by 80-95 percent, at the cost of mineral loss and
water wastage. Ultraviolet (UV) kills bacteria and viruses without chemicals
and retains all minerals, but removes no dissolved solids. Ultrafiltration
(UF) removes bacteria, cysts and particles without electricity, but not
dissolved salts. Choosing: TDS above 300 needs RO; low-TDS water with
bacterial risk suits UV+UF; chemical contamination makes RO mandatory.`,
	},
	{
		Key:   "water_ph_levels",
		Title: "Water pH Levels and Health Impact",
		Content: `The pH scale runs 0-14: below 7 is acidic, 7 neutral, above alkaline.
WHO's drinking water standard is 6.5-8.5; pure RO water sits at 6.0-7.0 and
alkaline water at 8.5-9.5. Acidic water can taste metallic, leach metals from
pipes and erode enamel. pH is adjusted with alkaline cartridges, mineral
stones, carbon filters or post-RO remineralization.`,
	},
	{
		Key:   "water_hardness",
		Title: "Water Hardness and Softening Solutions",
		Content: `Hardness comes from dissolved calcium and magnesium, measured in ppm
CaCO3: 0-75 soft, 75-150 moderately hard, 150-300 hard, above 300 very hard.
Hard water scales pipes and appliances, stops soap lathering and dries skin.
Ion-exchange softeners remove hardness completely by swapping in sodium;
salt-free conditioners reduce scale without removing minerals; RO removes
hardness along with other contaminants. We supply point-of-use softeners,
whole-house systems and combined softener plus purifier units.`,
	},
	{
		Key:   "chlorine_removal",
		Title: "Chlorine in Water and Removal Methods",
		Content: `Chlorine disinfects the municipal supply but causes taste and odor
issues, skin irritation and can form harmful byproducts. Typical municipal
levels are 0.2-1.0 ppm. Activated carbon removes chlorine effectively and
cheaply; RO removes chlorine along with other contaminants; UV does not
remove chlorine at all and pairs with a carbon pre-filter. Best fits:
under-sink carbon filters for the kitchen, whole-house carbon systems, and
multi-stage purifiers for drinking water.`,
	},
}

var topicKeywords = map[string][]string{
	"alkaline_water":   {"alkaline", "ph", "alkaline water", "ionized", "antioxidant"},
	"tds_information":  {"tds", "total dissolved solids", "minerals", "ppm", "dissolved"},
	"ro_vs_uv_uf":      {"ro vs uv", "technology", "reverse osmosis", "ultraviolet", "ultrafiltration", "difference", "comparison"},
	"water_ph_levels":  {"ph level", "acidic", "basic", "ph scale", "acidity"},
	"water_hardness":   {"hard water", "softener", "hardness", "scale", "calcium", "magnesium"},
	"chlorine_removal": {"chlorine", "taste", "odor", "chemical", "disinfection"},
}

// Lookup returns the formatted education content relevant to a query plus the
// keys of the topics it covers. At most two topics are returned so a single
// answer does not overwhelm the customer. Empty content means no topic
// matched.
func Lookup(query string) (string, []string) {
	lower := strings.ToLower(query)

	var matched []Topic
	for _, topic := range topics {
		for _, kw := range topicKeywords[topic.Key] {
			if strings.Contains(lower, kw) {
				matched = append(matched, topic)
				break
			}
		}
		if len(matched) == maxTopicsPerReply {
			break
		}
	}

	if len(matched) == 0 {
		return "", nil
	}

	var keys []string
	var parts []string
	for _, topic := range matched {
		keys = append(keys, topic.Key)
		parts = append(parts, topic.Title+"\n"+topic.Content)
	}

	return strings.Join(parts, "\n\n"+strings.Repeat("=", 50)+"\n\n"), keys
}
