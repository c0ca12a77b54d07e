package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Product is one row of the sellable catalog. The name identifies a product
// and is assumed unique across the catalog.
type Product struct {
	ID               uint64          `gorm:"primaryKey" json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	RegularPrice     int             `gorm:"column:regular_price" json:"regular_price"`
	ShortDescription string          `gorm:"column:short_description" json:"short_description"`
	Description      string          `json:"description"`
	Attributes       string          `json:"attributes"`
	Images           pq.StringArray  `gorm:"type:text[]" json:"images"`
	Embedding        pgvector.Vector `gorm:"type:vector(384)" json:"-"`

	// Row preserves the catalog load order. Filter results keep this order
	// and price sorts break ties on it.
	Row int `gorm:"-" json:"-"`
}

func (p *Product) TableName() string {
	return "products"
}

const priceOnRequest = "Price on request"

// PriceDisplay renders the price for customer-facing text. Zero or missing
// prices always render as "Price on request", never as a number.
func (p *Product) PriceDisplay() string {
	if p.RegularPrice <= 0 {
		return priceOnRequest
	}

	return "₹" + groupDigits(p.RegularPrice)
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	return b.String()
}

// Application returns the top-level segment of the hierarchical category,
// e.g. "Domestic" for "Domestic > RO Purifiers".
func (p *Product) Application() string {
	if idx := strings.Index(p.Category, ">"); idx >= 0 {
		return strings.TrimSpace(p.Category[:idx])
	}

	return p.Category
}

// FirstImage returns the first image URL, or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}

	return strings.TrimSpace(p.Images[0])
}

var (
	lphRe     = regexp.MustCompile(`(\d+)\s*lph|\b(\d+)\s*liters?\s*per\s*hour`)
	gpdRe     = regexp.MustCompile(`(\d+)\s*gpd`)
	storageRe = regexp.MustCompile(`storage\s*capacity\s*of\s*(\d+)|(\d+)\s*liters?\s*storage`)
	techRes   = map[string]*regexp.Regexp{
		"ro": regexp.MustCompile(`\bro\b`),
		"uv": regexp.MustCompile(`\buv\b`),
		"uf": regexp.MustCompile(`\buf\b`),
	}
)

// Specs extracts technical specifications that are literally present in the
// product descriptions. Nothing is inferred; a spec absent from the data is
// absent from the result.
func (p *Product) Specs() []string {
	text := strings.ToLower(p.ShortDescription + " " + p.Description)

	var specs []string
	if m := lphRe.FindStringSubmatch(text); m != nil {
		specs = append(specs, fmt.Sprintf("Flow Rate: %s LPH", firstGroup(m)))
	}
	if m := gpdRe.FindStringSubmatch(text); m != nil {
		specs = append(specs, fmt.Sprintf("Capacity: %s GPD", m[1]))
	}
	if m := storageRe.FindStringSubmatch(text); m != nil {
		specs = append(specs, fmt.Sprintf("Storage: %s liters", firstGroup(m)))
	}

	return specs
}

func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}

	return ""
}

// Technologies reports which purification technologies the product data
// mentions, checked against name and descriptions.
func (p *Product) Technologies() []string {
	text := strings.ToLower(p.Name + " " + p.ShortDescription + " " + p.Description)

	var techs []string
	for _, tech := range []string{"ro", "uv", "uf"} {
		if techRes[tech].MatchString(text) {
			techs = append(techs, strings.ToUpper(tech))
		}
	}

	return techs
}

// DetailedInfo formats the product as the structured text block handed to the
// language model. Only data from the catalog row appears here.
func (p *Product) DetailedInfo() string {
	specs := p.Specs()
	specLines := "- Specifications available in product description"
	if len(specs) > 0 {
		lines := make([]string, len(specs))
		for i, s := range specs {
			lines[i] = "- " + s
		}
		specLines = strings.Join(lines, "\n")
	}

	desc := p.Description
	if len(desc) > 400 {
		desc = desc[:400] + "..."
	}

	variants := p.Attributes
	if variants == "" {
		variants = "Contact for variants"
	}

	return strings.TrimSpace(fmt.Sprintf(`PRODUCT: %s
PRICE: %s
CATEGORY: %s
KEY FEATURES: %s
SPECIFICATIONS (from product data):
%s
PRODUCT DESCRIPTION:
%s
AVAILABLE VARIANTS: %s
APPLICATION: %s`,
		p.Name, p.PriceDisplay(), p.Category, p.ShortDescription,
		specLines, desc, variants, p.Application()))
}

// EmbeddingText builds the document body indexed by the similarity retriever.
func (p *Product) EmbeddingText() string {
	var b strings.Builder

	b.WriteString("Product Name: " + p.Name + "\n")
	b.WriteString("Category: " + p.Category + "\n")
	b.WriteString("Price: " + p.PriceDisplay() + "\n")
	b.WriteString("Key Features: " + p.ShortDescription + "\n")

	if specs := p.Specs(); len(specs) > 0 {
		b.WriteString("Technical Specifications: " + strings.Join(specs, " | ") + "\n")
	}

	b.WriteString("Full Description: " + p.Description + "\n")
	if p.Attributes != "" {
		b.WriteString("Available Variants: " + p.Attributes + "\n")
	}
	if techs := p.Technologies(); len(techs) > 0 {
		b.WriteString("Water Treatment Technology: " + strings.Join(techs, " ") + "\n")
	}
	b.WriteString("Application: " + p.Application())

	return b.String()
}

var (
	infoNameRe  = regexp.MustCompile(`PRODUCT: (.+)`)
	infoPriceRe = regexp.MustCompile(`PRICE: (.+)`)
)

// InfoProductName reads the product name back out of a DetailedInfo block.
func InfoProductName(info string) (string, bool) {
	m := infoNameRe.FindStringSubmatch(info)
	if m == nil {
		return "", false
	}

	return strings.TrimSpace(m[1]), true
}

// InfoPrice reads the declared price back out of a DetailedInfo block.
// A "Price on request" line yields (0, false); a numeric line yields the
// exact original price.
func InfoPrice(info string) (int, bool) {
	m := infoPriceRe.FindStringSubmatch(info)
	if m == nil {
		return 0, false
	}

	raw := strings.TrimSpace(m[1])
	if raw == priceOnRequest {
		return 0, false
	}

	raw = strings.TrimPrefix(raw, "₹")
	raw = strings.ReplaceAll(raw, ",", "")
	price, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return price, true
}
