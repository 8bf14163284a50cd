package fixed

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/geo"
	"github.com/viert/simwatch/internal/vatsim"
)

type vatspyData struct {
	countries []*Country
	airports  []*Airport
	firs      []*FIR
	uirs      []*UIR
}

// parseVatspy reads the pipe-delimited dat file section by section.
// Malformed rows are logged and skipped so a single broken line never
// takes the whole dataset down. FIR rows referencing an unknown
// boundary are dropped; an empty boundary id falls back to the FIR
// ICAO, which the upstream dataset relies on.
func parseVatspy(r io.Reader, boundaries map[string]*Boundary) (*vatspyData, error) {
	data := &vatspyData{}
	section := ""
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(line[1 : len(line)-1])
			if section == "idl" {
				break
			}
			continue
		}

		fields := strings.Split(line, "|")
		switch section {
		case "countries":
			if len(fields) < 3 {
				logrus.Errorf("[FixedData] malformed country at line %d: %q", lineNo, line)
				continue
			}
			data.countries = append(data.countries, &Country{
				Name:        fields[0],
				Prefix:      fields[1],
				ControlName: fields[2],
			})
		case "airports":
			if len(fields) < 7 {
				logrus.Errorf("[FixedData] malformed airport at line %d: %q", lineNo, line)
				continue
			}
			lat, latErr := strconv.ParseFloat(fields[2], 64)
			lng, lngErr := strconv.ParseFloat(fields[3], 64)
			if latErr != nil || lngErr != nil {
				logrus.Errorf("[FixedData] bad airport coordinates at line %d: %q", lineNo, line)
				continue
			}
			data.airports = append(data.airports, &Airport{
				ICAO:     fields[0],
				Name:     fields[1],
				Position: geo.Point{Lat: lat, Lng: lng}.Clamped(),
				IATA:     fields[4],
				FIRID:    fields[5],
				IsPseudo: fields[6] == "1",
				Runways:  map[string]*Runway{},
			})
		case "firs":
			if len(fields) < 4 {
				logrus.Errorf("[FixedData] malformed fir at line %d: %q", lineNo, line)
				continue
			}
			boundaryID := fields[3]
			if boundaryID == "" {
				boundaryID = fields[0]
			}
			boundary, ok := boundaries[boundaryID]
			if !ok {
				logrus.Errorf("[FixedData] fir %s references unknown boundary %q, skipped",
					fields[0], boundaryID)
				continue
			}
			data.firs = append(data.firs, &FIR{
				ICAO:        fields[0],
				Name:        fields[1],
				Prefix:      fields[2],
				Boundary:    boundary,
				Controllers: map[string]*vatsim.Controller{},
			})
		case "uirs":
			if len(fields) < 3 {
				logrus.Errorf("[FixedData] malformed uir at line %d: %q", lineNo, line)
				continue
			}
			data.uirs = append(data.uirs, &UIR{
				ICAO:   fields[0],
				Name:   fields[1],
				FIRIDs: strings.Split(fields[2], ","),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
