// Package gazetteer resolves Thai administrative locations to coordinates
// and display names. The built-in province catalog ships embedded; remote
// catalog snapshots can be layered on top through a TTL cache so repeated
// transforms do not refetch metadata.
package gazetteer

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowgraph"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/geo"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/location"
)

//go:embed provinces.yaml
var provincesYAML []byte

// Entry is one catalog location.
type Entry struct {
	Code   string  `yaml:"code"`
	Name   string  `yaml:"name"`
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Region string  `yaml:"region"`
}

// catalogFile mirrors the embedded YAML document.
type catalogFile struct {
	Default string  `yaml:"default"`
	Entries []Entry `yaml:"entries"`
}

// Catalog is an immutable location directory. It implements
// [flowgraph.LocationDirectory]: lookups that miss both the id and the name
// index degrade to the default coordinate with a flagged fallback.
type Catalog struct {
	byCode       map[string]Entry
	byName       map[string]Entry
	defaultEntry Entry
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded province catalog, parsed once and shared.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(provincesYAML)
	})

	return defaultCatalog, defaultErr
}

// Parse decodes a catalog document. The default key must resolve to one of
// the entries; it anchors the fallback coordinate.
func Parse(raw []byte) (*Catalog, error) {
	var file catalogFile

	err := yaml.Unmarshal(raw, &file)
	if err != nil {
		return nil, fmt.Errorf("parse gazetteer catalog: %w", err)
	}

	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("parse gazetteer catalog: no entries")
	}

	c := &Catalog{
		byCode: make(map[string]Entry, len(file.Entries)),
		byName: make(map[string]Entry, len(file.Entries)),
	}

	for _, e := range file.Entries {
		c.byCode[location.Normalize(e.Code)] = e
		c.byName[location.Normalize(e.Name)] = e
	}

	defaultEntry, ok := c.byCode[location.Normalize(file.Default)]
	if !ok {
		return nil, fmt.Errorf("parse gazetteer catalog: default %q not among entries", file.Default)
	}

	c.defaultEntry = defaultEntry

	return c, nil
}

// Lookup resolves a location reference by id first, then by display name.
func (c *Catalog) Lookup(ref flowdata.LocationRef) (Entry, bool) {
	if e, ok := c.byCode[location.Normalize(ref.ID)]; ok {
		return e, true
	}

	if ref.Code != "" {
		if e, ok := c.byCode[location.Normalize(ref.Code)]; ok {
			return e, true
		}
	}

	if e, ok := c.byName[location.Normalize(ref.Name)]; ok {
		return e, true
	}

	return Entry{}, false
}

// Locate implements [flowgraph.LocationDirectory]. Unknown locations map to
// the default coordinate with the fallback reason set; the caller decides
// whether to log.
func (c *Catalog) Locate(ref flowdata.LocationRef) (geo.Coordinate, flowgraph.Fallback) {
	if e, ok := c.Lookup(ref); ok {
		return geo.Coordinate{Lat: e.Lat, Lon: e.Lon}, flowgraph.Fallback{}
	}

	reason := flowgraph.FallbackUnknownName
	if location.Normalize(ref.Name) == "" {
		reason = flowgraph.FallbackUnknownID
	}

	return geo.Coordinate{Lat: c.defaultEntry.Lat, Lon: c.defaultEntry.Lon},
		flowgraph.Fallback{Used: true, Reason: reason}
}

// DisplayName implements [flowgraph.LocationDirectory].
func (c *Catalog) DisplayName(ref flowdata.LocationRef) string {
	if e, ok := c.Lookup(ref); ok {
		return e.Name
	}

	if ref.Name != "" {
		return ref.Name
	}

	return ref.ID
}

// Region returns the administrative region grouping for a reference, empty
// when unknown.
func (c *Catalog) Region(ref flowdata.LocationRef) string {
	if e, ok := c.Lookup(ref); ok {
		return e.Region
	}

	return ""
}
