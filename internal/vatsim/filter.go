package vatsim

import (
	"fmt"
	"strings"

	"github.com/viert/simwatch/internal/expr"
)

// pilotFields lists the identifiers a filter expression may use, in
// the order they are reported in error messages.
var pilotFields = []string{
	"callsign", "name", "alt", "gs", "lat", "lng",
	"aircraft", "arrival", "departure", "rules",
}

// BindPilotField is the expression binder for pilot filters. Fields
// backed by the flight plan evaluate to false for pilots without one.
func BindPilotField(ident string, op expr.Kind, value expr.Value) (expr.Predicate[*Pilot], error) {
	switch ident {
	case "callsign":
		return func(p *Pilot) bool { return expr.CompareString(op, p.Callsign, value) }, nil
	case "name":
		return func(p *Pilot) bool { return expr.CompareString(op, p.Name, value) }, nil
	case "alt":
		return func(p *Pilot) bool { return expr.CompareInt(op, int64(p.Position.Alt), value) }, nil
	case "gs":
		return func(p *Pilot) bool { return expr.CompareInt(op, int64(p.Position.GS), value) }, nil
	case "lat":
		return func(p *Pilot) bool { return expr.CompareFloat(op, p.Position.Lat, value) }, nil
	case "lng":
		return func(p *Pilot) bool { return expr.CompareFloat(op, p.Position.Lng, value) }, nil
	case "aircraft":
		return func(p *Pilot) bool {
			return p.FlightPlan != nil && expr.CompareString(op, p.FlightPlan.Aircraft, value)
		}, nil
	case "arrival":
		return func(p *Pilot) bool {
			return p.FlightPlan != nil && expr.CompareString(op, p.FlightPlan.Arrival, value)
		}, nil
	case "departure":
		return func(p *Pilot) bool {
			return p.FlightPlan != nil && expr.CompareString(op, p.FlightPlan.Departure, value)
		}, nil
	case "rules":
		if value.Kind() != expr.String {
			return nil, &expr.CompileError{Msg: "rules value must be a string"}
		}
		var rules string
		switch strings.ToLower(value.Str()) {
		case "i", "ifr":
			rules = "I"
		case "v", "vfr":
			rules = "V"
		default:
			return nil, &expr.CompileError{
				Msg: "invalid rules value, valid ones are ['v', 'i', 'vfr', 'ifr']",
			}
		}
		normalized := expr.StringValue(rules)
		return func(p *Pilot) bool {
			return p.FlightPlan != nil && expr.CompareString(op, p.FlightPlan.FlightRules, normalized)
		}, nil
	}
	return nil, &expr.CompileError{
		Msg: fmt.Sprintf("unknown field %q, valid fields are [%s]",
			ident, strings.Join(pilotFields, ", ")),
	}
}

// CompilePilotFilter parses and binds a filter source string in one
// step.
func CompilePilotFilter(src string) (*expr.Compiled[*Pilot], error) {
	e, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	return expr.Compile(e, BindPilotField)
}
