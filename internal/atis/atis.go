// Package atis extracts active runways from free-form ATIS texts.
// The texts are voice-generated and inconsistent, so detection runs a
// bank of templates over an aggressively normalised form of the text
// and collects every runway identifier the templates capture.
package atis

import (
	"regexp"
	"sort"
	"strings"
)

// identExpr captures up to three runway identifiers in a row, joined
// by spaces, AND or OR. Identifiers may carry their side either as a
// letter or as a spelled-out word.
const identExpr = `(\d{2}(?:[LRC]|\s(?:LEFT|RIGHT|CENTER))?)` +
	`(?:\s(?:(?:AND|OR)\s)?(\d{2}(?:[LRC]|\s(?:LEFT|RIGHT|CENTER))?))?` +
	`(?:\s(?:(?:AND|OR)\s)?(\d{2}(?:[LRC]|\s(?:LEFT|RIGHT|CENTER))?))?`

var arrivalTemplates = compileTemplates([]string{
	`(?:(?:APPROACH|ARRIVAL|LANDING|LDG)\s)+(?:RUNWAY|RWY)S?\s` + identExpr,
	`(?:RUNWAY|RWY)S?\s` + identExpr + `\sFOR\s(?:ARRIVAL|LANDING|LDG|APPROACH)`,
	`(?:RUNWAY|RWY)S?\s` + identExpr + `\sIN\sUSE`,
	`(?:RUNWAY|RWY)S?\sIN\sUSE\s` + identExpr,
	`(?:APPROACH|ARRIVAL|LANDING|LDG)\sAND\s(?:TAKEOFF|DEPARTURE|DEPARTING|DEP)\s(?:RUNWAY|RWY)S?\s` + identExpr,
})

var departureTemplates = compileTemplates([]string{
	`(?:TAKEOFF|DEPARTURE|DEPARTING|DEP)\s(?:RUNWAY|RWY)S?\s` + identExpr,
	`(?:RUNWAY|RWY)S?\s` + identExpr + `\sFOR\s(?:TAKEOFF|DEPARTURE|DEP)`,
	`(?:RUNWAY|RWY)S?\s` + identExpr + `\sIN\sUSE`,
	`(?:RUNWAY|RWY)S?\sIN\sUSE\s` + identExpr,
	`(?:APPROACH|ARRIVAL|LANDING|LDG)\sAND\s(?:TAKEOFF|DEPARTURE|DEPARTING|DEP)\s(?:RUNWAY|RWY)S?\s` + identExpr,
})

var (
	nonAlnumRe   = regexp.MustCompile(`[^A-Z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	splitDigitRe = regexp.MustCompile(`(\d)\s+(\d)`)
)

func compileTemplates(sources []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(sources))
	for i, src := range sources {
		out[i] = regexp.MustCompile(src)
	}
	return out
}

// Normalize prepares an ATIS text for template matching: uppercase,
// punctuation stripped, whitespace collapsed. With glueNumbers set,
// digit groups broken apart by the voice generator are joined back
// together.
func Normalize(text string, glueNumbers bool) string {
	text = strings.ToUpper(text)
	text = nonAlnumRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	if glueNumbers {
		for {
			glued := splitDigitRe.ReplaceAllString(text, "$1$2")
			if glued == text {
				break
			}
			text = glued
		}
	}
	return strings.TrimSpace(text)
}

// NormalizeIdent canonicalises a captured runway identifier:
// "26 LEFT" becomes "26L".
func NormalizeIdent(ident string) string {
	ident = strings.ReplaceAll(ident, " ", "")
	if len(ident) > 3 {
		ident = ident[:3]
	}
	return ident
}

func detect(text string, templates []*regexp.Regexp) []string {
	seen := map[string]bool{}
	for _, re := range templates {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		for _, group := range match[1:] {
			if group != "" {
				seen[NormalizeIdent(group)] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for ident := range seen {
		out = append(out, ident)
	}
	sort.Strings(out)
	return out
}

// DetectRunways returns the arrival and departure runways announced
// in an ATIS text.
func DetectRunways(text string) (arrival, departure []string) {
	text = Normalize(text, true)
	return detect(text, arrivalTemplates), detect(text, departureTemplates)
}
