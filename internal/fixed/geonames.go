package fixed

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/rtree"

	"github.com/viert/simwatch/internal/geo"
)

// GeoCountry is a geonames countryInfo row.
type GeoCountry struct {
	ISO                string `json:"iso"`
	ISO3               string `json:"iso3"`
	ISONumeric         string `json:"iso_numeric"`
	FIPS               string `json:"fips"`
	Name               string `json:"name"`
	Capital            string `json:"capital"`
	Area               string `json:"area"`
	Population         string `json:"population"`
	Continent          string `json:"continent"`
	TLD                string `json:"tld"`
	CurrencyCode       string `json:"currency_code"`
	CurrencyName       string `json:"currency_name"`
	Phone              string `json:"phone"`
	PostalCodeFormat   string `json:"postal_code_format"`
	PostalCodeRegex    string `json:"postal_code_regex"`
	Languages          string `json:"languages"`
	GeonameID          string `json:"geoname_id"`
	Neighbours         string `json:"neighbours"`
	EquivalentFipsCode string `json:"equivalent_fips_code"`
}

// parseGeoCountries reads the headerless tab-separated countryInfo
// dump, keyed by geoname id. Comment lines start with '#'. Rows
// shorter than the geoname id column are skipped.
func parseGeoCountries(r io.Reader) (map[string]*GeoCountry, error) {
	out := map[string]*GeoCountry{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		// pad so sparse trailing columns never panic
		for len(fields) < 19 {
			fields = append(fields, "")
		}
		c := &GeoCountry{
			ISO:                fields[0],
			ISO3:               fields[1],
			ISONumeric:         fields[2],
			FIPS:               fields[3],
			Name:               fields[4],
			Capital:            fields[5],
			Area:               fields[6],
			Population:         fields[7],
			Continent:          fields[8],
			TLD:                fields[9],
			CurrencyCode:       fields[10],
			CurrencyName:       fields[11],
			Phone:              fields[12],
			PostalCodeFormat:   fields[13],
			PostalCodeRegex:    fields[14],
			Languages:          fields[15],
			GeonameID:          fields[16],
			Neighbours:         fields[17],
			EquivalentFipsCode: fields[18],
		}
		if c.GeonameID == "" {
			continue
		}
		out[c.GeonameID] = c
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read countryInfo: %w", err)
	}
	return out, nil
}

type countryShape struct {
	refID   string
	polygon orb.Polygon
}

// geonamesDB answers "which country is this point in" with an R-tree
// over the simplified country shapes, followed by an exact
// point-in-polygon test on the candidates.
type geonamesDB struct {
	countries map[string]*GeoCountry
	tree      rtree.RTreeG[*countryShape]
}

func shapeRefID(props geojson.Properties) string {
	switch v := props["geoNameId"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}

// parseShapes extracts the country polygons from the zipped GeoJSON
// dump.
func parseShapes(zipped []byte) ([]*countryShape, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipped), int64(len(zipped)))
	if err != nil {
		return nil, fmt.Errorf("open shapes archive: %w", err)
	}
	var payload []byte
	for _, entry := range zr.File {
		if !strings.HasSuffix(entry.Name, ".json") {
			continue
		}
		f, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open shapes entry %s: %w", entry.Name, err)
		}
		payload, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read shapes entry %s: %w", entry.Name, err)
		}
		break
	}
	if payload == nil {
		return nil, fmt.Errorf("shapes archive holds no json entry")
	}
	return parseShapesJSON(payload)
}

// parseShapesJSON decodes the shape feature collection. Each polygon
// of a multi-polygon country becomes its own indexed shape.
func parseShapesJSON(payload []byte) ([]*countryShape, error) {
	fc, err := geojson.UnmarshalFeatureCollection(payload)
	if err != nil {
		return nil, fmt.Errorf("parse shapes: %w", err)
	}
	var shapes []*countryShape
	for _, f := range fc.Features {
		refID := shapeRefID(f.Properties)
		if refID == "" {
			logrus.Errorf("[FixedData] country shape without geoNameId, skipped")
			continue
		}
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			shapes = append(shapes, &countryShape{refID: refID, polygon: g})
		case orb.MultiPolygon:
			for _, polygon := range g {
				shapes = append(shapes, &countryShape{refID: refID, polygon: polygon})
			}
		default:
			logrus.Errorf("[FixedData] country shape %s has unsupported geometry %T", refID, g)
		}
	}
	return shapes, nil
}

func newGeonamesDB(countries map[string]*GeoCountry, shapes []*countryShape) *geonamesDB {
	db := &geonamesDB{countries: countries}
	for _, shape := range shapes {
		bound := shape.polygon.Bound()
		db.tree.Insert(
			[2]float64{bound.Min.Lon(), bound.Min.Lat()},
			[2]float64{bound.Max.Lon(), bound.Max.Lat()},
			shape,
		)
	}
	return db
}

// countryAt resolves a position to a geonames country, nil over open
// water and unmapped territory.
func (db *geonamesDB) countryAt(p geo.Point) *GeoCountry {
	point := orb.Point{p.Lng, p.Lat}
	var found *GeoCountry
	db.tree.Search(
		[2]float64{p.Lng, p.Lat},
		[2]float64{p.Lng, p.Lat},
		func(min, max [2]float64, shape *countryShape) bool {
			if planar.PolygonContains(shape.polygon, point) {
				found = db.countries[shape.refID]
				return false
			}
			return true
		},
	)
	return found
}
