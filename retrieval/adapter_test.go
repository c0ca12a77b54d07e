package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropure/water-assistant/catalog"
)

type fakeSearcher struct {
	docs []Document
	err  error
	gotK int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, k int) ([]Document, error) {
	f.gotK = k
	return f.docs, f.err
}

const guardCSV = `Name,Regular_price,Category,Short description,Description,Attribute 1 value(s),Images
Aqua Pure RO,12999,Domestic,Compact RO,Multi stage,,
UV Guard,8500,Domestic,UV purifier,Kills bacteria,,
`

func guardCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.Load(strings.NewReader(guardCSV))
	require.NoError(t, err)

	return store
}

func TestFallbackDiscardsUnknownProducts(t *testing.T) {
	searcher := &fakeSearcher{docs: []Document{
		{Name: "Hallucinated Purifier 3000"},
		{Name: "Aqua Pure RO"},
		{Name: "UV Guard"},
	}}

	fallback := NewFallback(searcher, guardCatalog(t), 15, 2)
	products, err := fallback.Lookup(context.Background(), "some purifier")

	require.NoError(t, err)
	assert.Equal(t, 15, searcher.gotK)
	require.Len(t, products, 2)
	assert.Equal(t, "Aqua Pure RO", products[0].Name)
	assert.Equal(t, "UV Guard", products[1].Name)
}

func TestFallbackTakeLimit(t *testing.T) {
	searcher := &fakeSearcher{docs: []Document{
		{Name: "Aqua Pure RO"},
		{Name: "UV Guard"},
	}}

	fallback := NewFallback(searcher, guardCatalog(t), 15, 1)
	products, err := fallback.Lookup(context.Background(), "purifier")

	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFallbackNoSurvivors(t *testing.T) {
	searcher := &fakeSearcher{docs: []Document{
		{Name: "Ghost Product"},
	}}

	fallback := NewFallback(searcher, guardCatalog(t), 15, 2)
	_, err := fallback.Lookup(context.Background(), "purifier")

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFallbackPropagatesSearcherError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("retriever down")}

	fallback := NewFallback(searcher, guardCatalog(t), 15, 2)
	_, err := fallback.Lookup(context.Background(), "purifier")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}
