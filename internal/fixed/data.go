package fixed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/atis"
	"github.com/viert/simwatch/internal/config"
	"github.com/viert/simwatch/internal/geo"
	"github.com/viert/simwatch/internal/vatsim"
)

// Data is the fully indexed reference dataset. It is built once per
// reload and never mutated structurally afterwards; only airport and
// FIR controller state changes between reloads.
type Data struct {
	countries []*Country
	airports  []*Airport
	firs      []*FIR

	countryByPrefix   map[string]*Country
	airportsByICAO    map[string][]*Airport
	airportByIATA     map[string]*Airport
	airportByCompound map[string]*Airport
	firByICAO         map[string]*FIR
	firByPrefix       map[string]*FIR
	uirByICAO         map[string]*UIR

	geonames *geonamesDB
}

// Load fetches and parses every reference source. VATSpy data is
// always fetched live; the heavier sources go through the disk cache.
func Load(ctx context.Context, cfg *config.DataConfig, timeout time.Duration) (*Data, error) {
	l := newLoader(timeout)

	boundariesRaw, err := l.fetch(ctx, cfg.BoundariesURL)
	if err != nil {
		return nil, err
	}
	boundaries, err := parseBoundaries(bytes.NewReader(boundariesRaw))
	if err != nil {
		return nil, err
	}

	vatspyRaw, err := l.fetch(ctx, cfg.VatspyURL)
	if err != nil {
		return nil, err
	}
	vatspy, err := parseVatspy(bytes.NewReader(vatspyRaw), boundaries)
	if err != nil {
		return nil, err
	}

	runwaysRaw, err := l.fetchCached(ctx, cfg.RunwaysURL, cfg.RunwaysCache)
	if err != nil {
		return nil, err
	}
	runways, err := parseRunways(bytes.NewReader(runwaysRaw))
	if err != nil {
		return nil, err
	}

	countriesRaw, err := l.fetchCached(ctx, cfg.CountriesURL, cfg.CountriesCache)
	if err != nil {
		return nil, err
	}
	geoCountries, err := parseGeoCountries(bytes.NewReader(countriesRaw))
	if err != nil {
		return nil, err
	}

	shapesRaw, err := l.fetchCached(ctx, cfg.ShapesURL, cfg.ShapesCache)
	if err != nil {
		return nil, err
	}
	shapes, err := parseShapes(shapesRaw)
	if err != nil {
		return nil, err
	}

	data := build(vatspy, runways, newGeonamesDB(geoCountries, shapes))
	logrus.Infof("[FixedData] loaded %d countries, %d airports, %d firs, %d country shapes",
		len(data.countries), len(data.airports), len(data.firs), len(shapes))
	return data, nil
}

// Parse builds a dataset from raw source payloads without touching
// the network. Shapes are plain GeoJSON here, not the zipped
// download.
func Parse(boundariesRaw, vatspyRaw, runwaysRaw, countriesRaw, shapesRaw []byte) (*Data, error) {
	boundaries, err := parseBoundaries(bytes.NewReader(boundariesRaw))
	if err != nil {
		return nil, err
	}
	vatspy, err := parseVatspy(bytes.NewReader(vatspyRaw), boundaries)
	if err != nil {
		return nil, err
	}
	runways, err := parseRunways(bytes.NewReader(runwaysRaw))
	if err != nil {
		return nil, err
	}
	geoCountries, err := parseGeoCountries(bytes.NewReader(countriesRaw))
	if err != nil {
		return nil, err
	}
	shapes, err := parseShapesJSON(shapesRaw)
	if err != nil {
		return nil, err
	}
	return build(vatspy, runways, newGeonamesDB(geoCountries, shapes)), nil
}

func build(vatspy *vatspyData, runways map[string]map[string]*Runway, geonames *geonamesDB) *Data {
	d := &Data{
		countries:         vatspy.countries,
		airports:          vatspy.airports,
		firs:              vatspy.firs,
		countryByPrefix:   map[string]*Country{},
		airportsByICAO:    map[string][]*Airport{},
		airportByIATA:     map[string]*Airport{},
		airportByCompound: map[string]*Airport{},
		firByICAO:         map[string]*FIR{},
		firByPrefix:       map[string]*FIR{},
		uirByICAO:         map[string]*UIR{},
		geonames:          geonames,
	}
	for _, c := range vatspy.countries {
		d.countryByPrefix[c.Prefix] = c
	}
	for _, a := range vatspy.airports {
		if rwys, ok := runways[a.ICAO]; ok {
			a.Runways = rwys
		}
		d.airportsByICAO[a.ICAO] = append(d.airportsByICAO[a.ICAO], a)
		if a.IATA != "" {
			d.airportByIATA[a.IATA] = a
		}
		d.airportByCompound[a.CompoundID()] = a
	}
	for _, f := range vatspy.firs {
		d.firByICAO[f.ICAO] = f
		if f.Prefix != "" {
			d.firByPrefix[f.Prefix] = f
		}
	}
	for _, u := range vatspy.uirs {
		d.uirByICAO[u.ICAO] = u
	}
	return d
}

// Airports returns every airport in the dataset.
func (d *Data) Airports() []*Airport { return d.airports }

// FIRs returns every FIR in the dataset.
func (d *Data) FIRs() []*FIR { return d.firs }

// FIRByICAO resolves a FIR identifier.
func (d *Data) FIRByICAO(icao string) *FIR {
	return d.firByICAO[icao]
}

// FindAirport resolves a user-facing airport code, IATA taking
// precedence over ICAO. Codes longer than four characters are
// truncated first, which makes callsign tokens usable directly.
func (d *Data) FindAirport(code string) *Airport {
	if len(code) > 4 {
		code = code[:4]
	}
	if a, ok := d.airportByIATA[code]; ok {
		return a
	}
	if list, ok := d.airportsByICAO[code]; ok && len(list) > 0 {
		return list[0]
	}
	return nil
}

// AirportByCompoundID resolves a spatial index id back to its
// airport.
func (d *Data) AirportByCompoundID(id string) *Airport {
	return d.airportByCompound[id]
}

// CountryByPrefix resolves the ICAO prefix of a code. Two-letter
// prefixes are tried first; the single-letter fallback covers
// countries like the US whose prefix is one character.
func (d *Data) CountryByPrefix(code string) *Country {
	if len(code) >= 2 {
		if c, ok := d.countryByPrefix[code[:2]]; ok {
			return c
		}
	}
	if len(code) >= 1 {
		if c, ok := d.countryByPrefix[code[:1]]; ok {
			return c
		}
	}
	return nil
}

// CountryAt resolves a position to a geonames country.
func (d *Data) CountryAt(p geo.Point) *GeoCountry {
	return d.geonames.countryAt(p)
}

// FindFIRs resolves a radar callsign token to the FIRs it covers:
// the token as a FIR ICAO, then as a FIR prefix, then through the
// airport carrying the token, and finally as a UIR expanding to its
// member FIRs.
func (d *Data) FindFIRs(code string) []*FIR {
	if f, ok := d.firByICAO[code]; ok {
		return []*FIR{f}
	}
	if f, ok := d.firByPrefix[code]; ok {
		return []*FIR{f}
	}
	if a := d.FindAirport(code); a != nil && a.FIRID != "" {
		if f, ok := d.firByICAO[a.FIRID]; ok {
			return []*FIR{f}
		}
		if f, ok := d.firByPrefix[a.FIRID]; ok {
			return []*FIR{f}
		}
	}
	if u, ok := d.uirByICAO[code]; ok {
		var out []*FIR
		for _, firID := range u.FIRIDs {
			if f, ok := d.firByICAO[firID]; ok {
				out = append(out, f)
			}
		}
		return out
	}
	return nil
}

// callsignCode returns the facility code of a controller callsign,
// the part before the first underscore.
func callsignCode(callsign string) string {
	if idx := strings.Index(callsign, "_"); idx >= 0 {
		return callsign[:idx]
	}
	return callsign
}

// AssignAirportController attaches a non-radar controller to its
// airport and returns the airport, nil when the callsign matches no
// known field. An ATIS assignment also recomputes active runways
// from the ATIS text.
func (d *Data) AssignAirportController(ctrl *vatsim.Controller) *Airport {
	a := d.FindAirport(callsignCode(ctrl.Callsign))
	if a == nil {
		return nil
	}
	ctrl.HumanReadable = fmt.Sprintf("%s %s", a.Name, ctrl.Facility.Label())
	switch ctrl.Facility {
	case vatsim.FacilityATIS:
		a.Controllers.ATIS = ctrl
		arrival, departure := atis.DetectRunways(ctrl.TextAtis)
		a.SetActiveRunways(arrival, departure)
	case vatsim.FacilityDelivery:
		a.Controllers.Delivery = ctrl
	case vatsim.FacilityGround:
		a.Controllers.Ground = ctrl
	case vatsim.FacilityTower:
		a.Controllers.Tower = ctrl
	case vatsim.FacilityApproach:
		a.Controllers.Approach = ctrl
	default:
		return nil
	}
	return a
}

// RemoveAirportController clears the slot a controller occupied. The
// airport loses its active runways together with its ATIS.
func (d *Data) RemoveAirportController(ctrl *vatsim.Controller) *Airport {
	a := d.FindAirport(callsignCode(ctrl.Callsign))
	if a == nil {
		return nil
	}
	switch ctrl.Facility {
	case vatsim.FacilityATIS:
		a.Controllers.ATIS = nil
		a.ResetActiveRunways()
	case vatsim.FacilityDelivery:
		a.Controllers.Delivery = nil
	case vatsim.FacilityGround:
		a.Controllers.Ground = nil
	case vatsim.FacilityTower:
		a.Controllers.Tower = nil
	case vatsim.FacilityApproach:
		a.Controllers.Approach = nil
	}
	return a
}

// AssignFIRController attaches a radar controller to every FIR its
// callsign resolves to. The human-readable label carries the
// country's control name when the prefix is known.
func (d *Data) AssignFIRController(ctrl *vatsim.Controller) []*FIR {
	code := callsignCode(ctrl.Callsign)
	firs := d.FindFIRs(code)
	if len(firs) == 0 {
		return nil
	}
	for _, f := range firs {
		label := f.Name
		if country := d.CountryByPrefix(code); country != nil && country.ControlName != "" {
			label = fmt.Sprintf("%s %s", f.Name, country.ControlName)
		}
		ctrl.HumanReadable = label
		f.Controllers[ctrl.Callsign] = ctrl
	}
	return firs
}

// RemoveFIRController detaches a radar controller from every FIR it
// was covering.
func (d *Data) RemoveFIRController(ctrl *vatsim.Controller) []*FIR {
	firs := d.FindFIRs(callsignCode(ctrl.Callsign))
	for _, f := range firs {
		delete(f.Controllers, ctrl.Callsign)
	}
	return firs
}
