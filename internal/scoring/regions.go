package scoring

import "strings"

// censusRegions groups states for regional-adjacency credit on the
// geographic fit dimension. A candidate in the same region as a profile
// state earns partial credit even when the exact state is out of scope.
var censusRegions = map[string]string{
	"CT": "northeast", "ME": "northeast", "MA": "northeast", "NH": "northeast",
	"RI": "northeast", "VT": "northeast", "NJ": "northeast", "NY": "northeast",
	"PA": "northeast",

	"IL": "midwest", "IN": "midwest", "MI": "midwest", "OH": "midwest",
	"WI": "midwest", "IA": "midwest", "KS": "midwest", "MN": "midwest",
	"MO": "midwest", "NE": "midwest", "ND": "midwest", "SD": "midwest",

	"DE": "south", "FL": "south", "GA": "south", "MD": "south",
	"NC": "south", "SC": "south", "VA": "south", "DC": "south",
	"WV": "south", "AL": "south", "KY": "south", "MS": "south",
	"TN": "south", "AR": "south", "LA": "south", "OK": "south",
	"TX": "south",

	"AZ": "west", "CO": "west", "ID": "west", "MT": "west",
	"NV": "west", "NM": "west", "UT": "west", "WY": "west",
	"AK": "west", "CA": "west", "HI": "west", "OR": "west",
	"WA": "west",
}

// sameRegion reports whether two states fall in the same census region.
func sameRegion(a, b string) bool {
	ra, ok := censusRegions[strings.ToUpper(strings.TrimSpace(a))]
	if !ok {
		return false
	}
	rb, ok := censusRegions[strings.ToUpper(strings.TrimSpace(b))]
	return ok && ra == rb
}
