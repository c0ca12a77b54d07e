package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = ` Name ,Regular_price,Category," Short description ",Description,"Attribute 1 value(s)",Images
Aqua Pure RO,12999,Domestic > RO Purifiers,Compact 15 LPH RO purifier,Multi stage purification with storage capacity of 12 liters,"White, Blue","https://cdn.example.com/a.jpg, https://cdn.example.com/a2.jpg"
Industrial RO Plant 500 LPH,,Industrial > RO Plants,Heavy duty 500 LPH plant,Built for factories,,
UV Guard,8500.50,Domestic > UV Purifiers,UV purifier for municipal water,Kills bacteria and viruses,,https://cdn.example.com/uv.jpg
,999,Orphan,missing name row,,,
Water Softener Max,not-a-price,Whole House > Softeners,Removes hardness,Ion exchange softener,,
`

func load(t *testing.T) *Store {
	t.Helper()

	store, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	return store
}

func TestLoadSkipsNamelessRows(t *testing.T) {
	store := load(t)
	assert.Equal(t, 4, store.Len())
}

func TestHeadersTrimmed(t *testing.T) {
	store := load(t)

	p, ok := store.Lookup("Aqua Pure RO")
	require.True(t, ok)
	assert.Equal(t, 12999, p.RegularPrice)
	assert.Equal(t, "Compact 15 LPH RO purifier", p.ShortDescription)
}

func TestPriceCoercion(t *testing.T) {
	store := load(t)

	missing, ok := store.Lookup("Industrial RO Plant 500 LPH")
	require.True(t, ok)
	assert.Equal(t, 0, missing.RegularPrice)

	fractional, ok := store.Lookup("UV Guard")
	require.True(t, ok)
	assert.Equal(t, 8500, fractional.RegularPrice)

	invalid, ok := store.Lookup("Water Softener Max")
	require.True(t, ok)
	assert.Equal(t, 0, invalid.RegularPrice)
}

func TestImagesSplit(t *testing.T) {
	store := load(t)

	p, ok := store.Lookup("aqua pure ro")
	require.True(t, ok)
	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", p.FirstImage())

	bare, ok := store.Lookup("Water Softener Max")
	require.True(t, ok)
	assert.Empty(t, bare.Images)
}

func TestRowOrderPreserved(t *testing.T) {
	store := load(t)

	for i, p := range store.All() {
		assert.Equal(t, i, p.Row)
	}
}

func TestLookupUnknown(t *testing.T) {
	store := load(t)

	_, ok := store.Lookup("Nonexistent Purifier")
	assert.False(t, ok)
}
