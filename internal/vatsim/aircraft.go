package vatsim

import "strings"

// Aircraft is a row of the static type designator table.
type Aircraft struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	WTC              string `json:"wtc"`
	WTG              string `json:"wtg"`
	Designator       string `json:"designator"`
	ManufacturerCode string `json:"manufacturer_code"`
	AircraftType     string `json:"aircraft_type"`
	EngineCount      int    `json:"engine_count"`
	EngineType       string `json:"engine_type"`
}

// GuessAircraftType resolves a filed aircraft string like
// "B738/M-SDE3/LB1" to a known type designator. Progressively shorter
// prefixes are tried, from five characters down to one, so equipment
// suffixes and minor typos still land on the right type.
func GuessAircraftType(filed string) *Aircraft {
	filed = strings.ToUpper(strings.TrimSpace(filed))
	if filed == "" {
		return nil
	}
	max := 5
	if len(filed) < max {
		max = len(filed)
	}
	for l := max; l > 0; l-- {
		if ac, ok := aircraftTypes[filed[:l]]; ok {
			return &ac
		}
	}
	return nil
}
