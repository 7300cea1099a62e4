package extract

import (
	"regexp"
	"unicode/utf8"

	"land_scrooper/regions"
)

var addressRe = regexp.MustCompile(`(서울|경기|인천|부산|대구|광주|대전|울산|세종|강원|충북|충남|전북|전남|경북|경남|제주)\S*\s*(\S+구|\S+시|\S+군)`)

// InferRegion picks a district name out of address-like text. It returns ""
// rather than a guess when nothing recognizable is present.
func InferRegion(texts ...string) string {
	for _, t := range texts {
		if m := addressRe.FindStringSubmatch(t); m != nil {
			return m[2]
		}
	}
	for _, t := range texts {
		// two-syllable names like 중구 show up inside ordinary words
		if name := regions.FindKnownName(t); utf8.RuneCountInString(name) > 2 {
			return name
		}
	}
	return ""
}
