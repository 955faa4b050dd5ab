// Package regions maps the district codes printed by the source page
// (two-digit ЕКАТТЕ codes) to canonical three-letter region codes.
package regions

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

type Region struct {
	Code string
	Name string
}

// indexed by the two-digit district code used by the national
// statistics institute, in official district order
var byDistrictCode = map[string]Region{
	"01": {Code: "BLG", Name: "Blagoevgrad"},
	"02": {Code: "BGS", Name: "Burgas"},
	"03": {Code: "VAR", Name: "Varna"},
	"04": {Code: "VTR", Name: "Veliko Tarnovo"},
	"05": {Code: "VID", Name: "Vidin"},
	"06": {Code: "VRC", Name: "Vratsa"},
	"07": {Code: "GAB", Name: "Gabrovo"},
	"08": {Code: "DOB", Name: "Dobrich"},
	"09": {Code: "KRZ", Name: "Kardzhali"},
	"10": {Code: "KNL", Name: "Kyustendil"},
	"11": {Code: "LOV", Name: "Lovech"},
	"12": {Code: "MON", Name: "Montana"},
	"13": {Code: "PAZ", Name: "Pazardzhik"},
	"14": {Code: "PER", Name: "Pernik"},
	"15": {Code: "PVN", Name: "Pleven"},
	"16": {Code: "PDV", Name: "Plovdiv"},
	"17": {Code: "RAZ", Name: "Razgrad"},
	"18": {Code: "RSE", Name: "Ruse"},
	"19": {Code: "SLS", Name: "Silistra"},
	"20": {Code: "SLV", Name: "Sliven"},
	"21": {Code: "SML", Name: "Smolyan"},
	"22": {Code: "SOF", Name: "Sofia (city)"},
	"23": {Code: "SFO", Name: "Sofia"},
	"24": {Code: "SZR", Name: "Stara Zagora"},
	"25": {Code: "TGV", Name: "Targovishte"},
	"26": {Code: "HKV", Name: "Haskovo"},
	"27": {Code: "SHU", Name: "Shumen"},
	"28": {Code: "JAM", Name: "Yambol"},
}

var byCanonicalCode = func() map[string]Region {
	out := make(map[string]Region, len(byDistrictCode))
	for _, r := range byDistrictCode {
		out[r.Code] = r
	}
	return out
}()

// Canonicalize resolves a district code cell as printed in the
// confirmed-by-region table. An unknown code means the page layout
// (or the district list) changed and the caller must treat the run
// as corrupt; the error carries the closest known district as a
// diagnostic hint.
func Canonicalize(sourceCode string) (string, error) {
	code := strings.TrimSpace(sourceCode)
	region, ok := byDistrictCode[code]
	if !ok {
		return "", fmt.Errorf(
			"unknown district code %q (closest known: %s)",
			sourceCode, closest(code),
		)
	}
	return region.Code, nil
}

// Lookup returns the region for a canonical three-letter code.
func Lookup(code string) (Region, bool) {
	r, ok := byCanonicalCode[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

func Count() int {
	return len(byDistrictCode)
}

func closest(code string) string {
	best := ""
	var bestSim float64
	for districtCode, region := range byDistrictCode {
		sim := matchr.JaroWinkler(code, districtCode, false)
		if sim > bestSim {
			bestSim = sim
			best = fmt.Sprintf("%s (%s)", districtCode, region.Name)
		}
	}
	return best
}
