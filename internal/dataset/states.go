package dataset

import "strings"

// stateCodes maps US state names (plus DC) to postal codes. It is never mutated.
var stateCodes = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR", "California": "CA",
	"Colorado": "CO", "Connecticut": "CT", "Delaware": "DE", "Florida": "FL", "Georgia": "GA",
	"Hawaii": "HI", "Idaho": "ID", "Illinois": "IL", "Indiana": "IN", "Iowa": "IA",
	"Kansas": "KS", "Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS", "Missouri": "MO",
	"Montana": "MT", "Nebraska": "NE", "Nevada": "NV", "New Hampshire": "NH", "New Jersey": "NJ",
	"New Mexico": "NM", "New York": "NY", "North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH",
	"Oklahoma": "OK", "Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT", "Vermont": "VT",
	"Virginia": "VA", "Washington": "WA", "West Virginia": "WV", "Wisconsin": "WI", "Wyoming": "WY",
	"District of Columbia": "DC",
}

var (
	stateNames  = invert(stateCodes)
	stateByFold = foldKeys(stateCodes)
)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func foldKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k := range m {
		out[strings.ToLower(k)] = k
	}
	return out
}

// StateCode returns the postal code for a state name or code.
func StateCode(s string) (string, bool) {
	name, ok := CanonicalState(s)
	if !ok {
		return "", false
	}
	return stateCodes[name], true
}

// StateName returns the full name for a postal code.
func StateName(code string) (string, bool) {
	n, ok := stateNames[strings.ToUpper(strings.TrimSpace(code))]
	return n, ok
}

// CanonicalState resolves a full name or postal code, in any case, to the full state name.
func CanonicalState(s string) (string, bool) {
	v := strings.TrimSpace(s)
	if n, ok := stateByFold[strings.ToLower(v)]; ok {
		return n, true
	}
	return StateName(v)
}

// ShortState returns the postal code when known, else the first two letters of s.
func ShortState(s string) string {
	if c, ok := StateCode(s); ok {
		return c
	}
	r := []rune(strings.TrimSpace(s))
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}
