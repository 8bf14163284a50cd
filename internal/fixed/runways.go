package fixed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/geo"
)

// runways.csv columns, per the ourairports data dictionary.
const (
	rwyColAirport = 2
	rwyColLength  = 3
	rwyColWidth   = 4
	rwyColSurface = 5
	rwyColLighted = 6
	rwyColClosed  = 7
	rwyColLeIdent = 8
	rwyColHeIdent = 14
)

// numOr0 parses a numeric column, defaulting to zero: the dataset is
// community-maintained and sparse fields are routine.
func numOr0(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func runwayEnd(row []string, identCol int, lighted, closed bool, length, width int, surface string) *Runway {
	return &Runway{
		Ident:   row[identCol],
		Length:  length,
		Width:   width,
		Surface: surface,
		Lighted: lighted,
		Closed:  closed,
		Position: geo.Point{
			Lat: numOr0(row[identCol+1]),
			Lng: numOr0(row[identCol+2]),
		},
		Elevation: int(numOr0(row[identCol+3])),
		Heading:   uint16(numOr0(row[identCol+4])),
	}
}

// parseRunways reads the runways CSV into per-airport runway maps
// keyed by runway ident. Each row contributes both runway ends.
func parseRunways(r io.Reader) (map[string]map[string]*Runway, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	out := map[string]map[string]*Runway{}
	rowNo := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read runways csv: %w", err)
		}
		rowNo++
		if rowNo == 1 {
			// header
			continue
		}
		if len(row) < rwyColHeIdent+5 {
			logrus.Errorf("[FixedData] short runway row %d, %d columns", rowNo, len(row))
			continue
		}

		airport := row[rwyColAirport]
		length := int(numOr0(row[rwyColLength]))
		width := int(numOr0(row[rwyColWidth]))
		surface := row[rwyColSurface]
		lighted := row[rwyColLighted] == "1"
		closed := row[rwyColClosed] == "1"

		if out[airport] == nil {
			out[airport] = map[string]*Runway{}
		}
		for _, identCol := range []int{rwyColLeIdent, rwyColHeIdent} {
			end := runwayEnd(row, identCol, lighted, closed, length, width, surface)
			if end.Ident == "" {
				continue
			}
			out[airport][end.Ident] = end
		}
	}
	return out, nil
}
