package tiger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTractProduct(t *testing.T) {
	tests := []struct {
		year    int
		vintage int
		idField string
		url     string
	}{
		{2000, 2000, "CTIDFP00", "https://www2.census.gov/geo/tiger/TIGER2010/TRACT/2000/tl_2010_53_tract00.zip"},
		{2010, 2010, "GEOID10", "https://www2.census.gov/geo/tiger/TIGER2010/TRACT/2010/tl_2010_53_tract10.zip"},
		{2015, 2010, "GEOID", "https://www2.census.gov/geo/tiger/TIGER2015/TRACT/tl_2015_53_tract.zip"},
		{2024, 2020, "GEOID", "https://www2.census.gov/geo/tiger/TIGER2024/TRACT/tl_2024_53_tract.zip"},
	}
	for _, tt := range tests {
		p := TractProduct(tt.year)
		assert.Equal(t, tt.vintage, p.Vintage, "year %d", tt.year)
		assert.Equal(t, tt.idField, p.IDField, "year %d", tt.year)
		assert.Equal(t, tt.url, p.DownloadURL("53"), "year %d", tt.year)
	}
}

func TestFIPSCodes_Count(t *testing.T) {
	assert.Len(t, FIPSCodes, 51)
	assert.Len(t, stateNames, 51)
	for abbr := range FIPSCodes {
		_, ok := stateNames[abbr]
		assert.True(t, ok, "missing name for %s", abbr)
	}
}

func TestAbbrFromFIPS(t *testing.T) {
	abbr, ok := AbbrFromFIPS("53")
	assert.True(t, ok)
	assert.Equal(t, "WA", abbr)

	_, ok = AbbrFromFIPS("99")
	assert.False(t, ok)
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "Washington", StateName("WA"))
	assert.Equal(t, "Washington", StateName("wa"))
	assert.Equal(t, "District of Columbia", StateName("DC"))
	assert.Equal(t, "PR", StateName("PR"))
}

func TestAllStateAbbrs_Sorted(t *testing.T) {
	abbrs := AllStateAbbrs()
	assert.Len(t, abbrs, 51)
	assert.Equal(t, "AK", abbrs[0])
	assert.Equal(t, "WY", abbrs[len(abbrs)-1])
}

func TestStateAbbr(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"WA", "WA", true},
		{"wa", "WA", true},
		{"Washington", "WA", true},
		{" new york ", "NY", true},
		{"District of Columbia", "DC", true},
		{"pr", "PR", false},
		{"", "", false},
	}
	for _, tt := range tests {
		abbr, ok := StateAbbr(tt.in)
		assert.Equal(t, tt.want, abbr, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}
