package gazetteer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/gazetteer"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowgraph"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/geo"
)

func defaultCatalog(t *testing.T) *gazetteer.Catalog {
	t.Helper()

	catalog, err := gazetteer.Default()
	require.NoError(t, err)

	return catalog
}

func TestDefault_LooksUpByCode(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	entry, ok := catalog.Lookup(flowdata.LocationRef{ID: "TH-10"})

	require.True(t, ok)
	assert.Equal(t, "Bangkok", entry.Name)
	assert.Equal(t, "central", entry.Region)
}

func TestDefault_LooksUpByName(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	entry, ok := catalog.Lookup(flowdata.LocationRef{ID: "loc-xyz", Name: "chiang mai"})

	require.True(t, ok)
	assert.Equal(t, "50", entry.Code)
}

func TestDefault_LooksUpByCodeField(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	entry, ok := catalog.Lookup(flowdata.LocationRef{ID: "loc-xyz", Code: "050"})

	require.True(t, ok)
	assert.Equal(t, "Chiang Mai", entry.Name)
}

func TestLocate_KnownLocation(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	coord, fallback := catalog.Locate(flowdata.LocationRef{Name: "Bangkok"})

	assert.False(t, fallback.Used)
	assert.InEpsilon(t, 13.7563, coord.Lat, 1e-9)
	assert.InEpsilon(t, 100.5018, coord.Lon, 1e-9)
}

func TestLocate_UnknownFallsBackToDefaultCoordinate(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	coord, fallback := catalog.Locate(flowdata.LocationRef{ID: "agg-other", Name: "Other Provinces"})

	assert.True(t, fallback.Used)
	assert.Equal(t, flowgraph.FallbackUnknownName, fallback.Reason)
	assert.InEpsilon(t, 13.7563, coord.Lat, 1e-9)
}

func TestLocate_UnknownWithoutNameReportsUnknownID(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	_, fallback := catalog.Locate(flowdata.LocationRef{ID: "???"})

	assert.True(t, fallback.Used)
	assert.Equal(t, flowgraph.FallbackUnknownID, fallback.Reason)
}

func TestLocate_CoordinatesInsideThailandBox(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	// The default fallback coordinate must project without clamping.
	coord, _ := catalog.Locate(flowdata.LocationRef{ID: "unknown"})

	assert.GreaterOrEqual(t, coord.Lat, geo.MinLatitude)
	assert.LessOrEqual(t, coord.Lat, geo.MaxLatitude)
	assert.GreaterOrEqual(t, coord.Lon, geo.MinLongitude)
	assert.LessOrEqual(t, coord.Lon, geo.MaxLongitude)
}

func TestDisplayName_PrefersCatalogSpelling(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	assert.Equal(t, "Bangkok", catalog.DisplayName(flowdata.LocationRef{Name: "BANGKOK"}))
}

func TestDisplayName_FallsBackToRawNameThenID(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	assert.Equal(t, "Other Provinces", catalog.DisplayName(flowdata.LocationRef{ID: "agg-1", Name: "Other Provinces"}))
	assert.Equal(t, "agg-2", catalog.DisplayName(flowdata.LocationRef{ID: "agg-2"}))
}

func TestParse_RejectsEmptyCatalog(t *testing.T) {
	t.Parallel()

	_, err := gazetteer.Parse([]byte("default: \"10\"\nentries: []\n"))

	require.Error(t, err)
}

func TestParse_RejectsUnknownDefault(t *testing.T) {
	t.Parallel()

	raw := `
default: "99x"
entries:
  - { code: "10", name: "Bangkok", lat: 13.75, lon: 100.50, region: central }
`

	_, err := gazetteer.Parse([]byte(raw))

	require.Error(t, err)
}

func TestRegion_UnknownLocationIsEmpty(t *testing.T) {
	t.Parallel()

	catalog := defaultCatalog(t)

	assert.Empty(t, catalog.Region(flowdata.LocationRef{ID: "agg-other"}))
	assert.Equal(t, "north", catalog.Region(flowdata.LocationRef{Name: "Chiang Mai"}))
}
