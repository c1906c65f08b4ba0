// Package tiger locates, downloads, and reads Census TIGER/Line census
// tract shapefiles.
package tiger

import (
	"fmt"
	"sort"
	"strings"
)

// Product describes one TIGER/Line census tract release.
type Product struct {
	Year    int    // TIGER/Line release year
	Vintage int    // census decade the boundaries describe (2000, 2010, 2020)
	IDField string // attribute holding the 11-digit tract GEOID
}

// TractProduct returns the tract product for a release year. Year 2000
// selects the 2000 boundaries republished in the TIGER2010 release, which
// carry the CTIDFP00 identifier.
func TractProduct(year int) Product {
	switch {
	case year <= 2000:
		return Product{Year: 2010, Vintage: 2000, IDField: "CTIDFP00"}
	case year == 2010:
		return Product{Year: 2010, Vintage: 2010, IDField: "GEOID10"}
	case year < 2020:
		return Product{Year: year, Vintage: 2010, IDField: "GEOID"}
	default:
		return Product{Year: year, Vintage: 2020, IDField: "GEOID"}
	}
}

// DownloadURL builds the Census Bureau download URL for a state's tract shapefile.
func (p Product) DownloadURL(stateFIPS string) string {
	if p.Year == 2010 {
		suffix := "10"
		if p.Vintage == 2000 {
			suffix = "00"
		}
		return fmt.Sprintf(
			"https://www2.census.gov/geo/tiger/TIGER2010/TRACT/%d/tl_2010_%s_tract%s.zip",
			p.Vintage, stateFIPS, suffix,
		)
	}
	return fmt.Sprintf(
		"https://www2.census.gov/geo/tiger/TIGER%d/TRACT/tl_%d_%s_tract.zip",
		p.Year, p.Year, stateFIPS,
	)
}

// FIPSCodes maps state abbreviation to 2-digit FIPS code for all 50 states + DC.
var FIPSCodes = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56",
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// Reverse lookups to state abbreviation, from FIPS code and from
// lower-cased full name.
var (
	abbrByFIPS map[string]string
	abbrByName map[string]string
)

func init() {
	abbrByFIPS = make(map[string]string, len(FIPSCodes))
	for abbr, fips := range FIPSCodes {
		abbrByFIPS[fips] = abbr
	}
	abbrByName = make(map[string]string, len(stateNames))
	for abbr, name := range stateNames {
		abbrByName[strings.ToLower(name)] = abbr
	}
}

// StateAbbr canonicalizes a state given as a postal abbreviation or a full
// name, in any case, to its abbreviation. ok is false for an unknown state,
// which is returned trimmed and upper-cased.
func StateAbbr(state string) (abbr string, ok bool) {
	s := strings.TrimSpace(state)
	if abbr, ok := abbrByName[strings.ToLower(s)]; ok {
		return abbr, true
	}
	s = strings.ToUpper(s)
	_, ok = stateNames[s]
	return s, ok
}

// AbbrFromFIPS returns the state abbreviation for a FIPS code.
func AbbrFromFIPS(fips string) (string, bool) {
	abbr, ok := abbrByFIPS[fips]
	return abbr, ok
}

// StateName returns the full state name for an abbreviation, or the
// abbreviation itself when it is not a known state.
func StateName(abbr string) string {
	if name, ok := stateNames[strings.ToUpper(abbr)]; ok {
		return name
	}
	return abbr
}

// AllStateAbbrs returns a sorted list of state abbreviations (50 states + DC).
func AllStateAbbrs() []string {
	abbrs := make([]string, 0, len(FIPSCodes))
	for abbr := range FIPSCodes {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)
	return abbrs
}
