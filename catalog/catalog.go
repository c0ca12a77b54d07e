// Package catalog holds the in-memory view of the product catalog. The
// catalog is loaded once at startup from a tabular export and is read-only
// afterwards, so concurrent sessions may share it without coordination.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/hydropure/water-assistant/models"
)

// Store is the immutable product catalog.
type Store struct {
	products []models.Product
	byName   map[string]int
}

// Open loads the catalog from a CSV export on disk.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a CSV catalog export. Column headers are trimmed of surrounding
// whitespace; prices are coerced to non-negative integers with missing or
// invalid values treated as zero ("price on request"). Rows without a name
// are skipped.
func Load(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["Name"]; !ok {
		return nil, fmt.Errorf("catalog is missing the Name column")
	}

	store := &Store{byName: make(map[string]int)}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		name := strings.TrimSpace(field(record, cols, "Name"))
		if name == "" {
			continue
		}

		product := models.Product{
			Name:             name,
			Category:         strings.TrimSpace(field(record, cols, "Category")),
			RegularPrice:     coercePrice(field(record, cols, "Regular_price")),
			ShortDescription: strings.TrimSpace(field(record, cols, "Short description")),
			Description:      strings.TrimSpace(field(record, cols, "Description")),
			Attributes:       strings.TrimSpace(field(record, cols, "Attribute 1 value(s)")),
			Images:           splitImages(field(record, cols, "Images")),
			Row:              len(store.products),
		}

		store.byName[strings.ToLower(name)] = len(store.products)
		store.products = append(store.products, product)
	}

	return store, nil
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return record[idx]
}

func coercePrice(raw string) int {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "₹")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}

	return int(value)
}

func splitImages(raw string) pq.StringArray {
	var urls pq.StringArray
	for _, part := range strings.Split(raw, ",") {
		if url := strings.TrimSpace(part); url != "" {
			urls = append(urls, url)
		}
	}

	return urls
}

// All returns every product in catalog row order. Callers must treat the
// result as read-only.
func (s *Store) All() []models.Product {
	return s.products
}

// Lookup finds a product by its name, case-insensitively.
func (s *Store) Lookup(name string) (*models.Product, bool) {
	idx, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}

	return &s.products[idx], true
}

func (s *Store) Len() int {
	return len(s.products)
}
