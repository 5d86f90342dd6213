package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// categoryLabels maps COICOP codes to display labels. Codes absent from the
// dictionary fall back to the raw code.
var categoryLabels = map[string]string{
	"CP01":  "Food & Non-Alcoholic Beverages",
	"CP041": "Actual Rentals for Housing",
}

// countryNames maps ISO3 codes (plus the OECD aggregate codes) to display
// names. Codes absent from the dictionary fall back to the raw code.
var countryNames = map[string]string{
	"AUT":       "Austria",
	"BEL":       "Belgium",
	"BGR":       "Bulgaria",
	"CAN":       "Canada",
	"CHE":       "Switzerland",
	"CHL":       "Chile",
	"COL":       "Colombia",
	"CRI":       "Costa Rica",
	"CZE":       "Czech Republic",
	"DEU":       "Germany",
	"DNK":       "Denmark",
	"EA20":      "Euro Area (20 countries)",
	"ESP":       "Spain",
	"EST":       "Estonia",
	"EU27_2020": "European Union (27 countries)",
	"FIN":       "Finland",
	"FRA":       "France",
	"GBR":       "United Kingdom",
	"GRC":       "Greece",
	"HRV":       "Croatia",
	"HUN":       "Hungary",
	"IRL":       "Ireland",
	"ISL":       "Iceland",
	"ITA":       "Italy",
	"JPN":       "Japan",
	"LTU":       "Lithuania",
	"LUX":       "Luxembourg",
	"LVA":       "Latvia",
	"MEX":       "Mexico",
	"NLD":       "Netherlands",
	"NOR":       "Norway",
	"POL":       "Poland",
	"PRT":       "Portugal",
	"SVK":       "Slovak Republic",
	"SVN":       "Slovenia",
	"SWE":       "Sweden",
	"TUR":       "Türkiye",
	"USA":       "United States",
}

// CategoryLabel returns the display label for a COICOP code, or the raw code
// when no label is known.
func CategoryLabel(code string) string {
	if label, ok := categoryLabels[code]; ok {
		return label
	}
	return code
}

// CountryName returns the display name for an ISO3 code, or the raw code
// when no name is known.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// CountryDisplay returns "Name (ISO3)" for the peer lists.
func CountryDisplay(code string) string {
	return fmt.Sprintf("%s (%s)", CountryName(code), code)
}

// GroupLabel returns the display label for a cluster table group. Groups are
// already human-readable ("Canada", "Cluster 2"), so this is the identity,
// kept as a seam for future dictionaries.
func GroupLabel(group string) string {
	return group
}

// GroupClusterNumber extracts the cluster id from a "Cluster N" group label.
// The second return is false for Canada or any other non-cluster label.
func GroupClusterNumber(group string) (int, bool) {
	rest, ok := strings.CutPrefix(group, "Cluster ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Chart colors. Canada always uses the fixed accent color, the OECD average
// the fixed secondary color, and each numbered cluster a fixed palette slot.
const (
	CanadaColorHex = "#CC0000" // Canada red
	OECDColorHex   = "#7EC8E3" // light blue
)

// ClusterColorsHex is the pastel palette indexed by cluster id. Ids past the
// end of the palette wrap around.
var ClusterColorsHex = []string{
	"#AEC6CF", // pastel blue
	"#FFB3BA", // pastel red
	"#B5EAD7", // pastel green
	"#FFDAC1", // pastel peach
}

// ClusterColorHex returns the palette color for a cluster id.
func ClusterColorHex(cluster int) string {
	if cluster < 0 {
		cluster = -cluster
	}
	return ClusterColorsHex[cluster%len(ClusterColorsHex)]
}
