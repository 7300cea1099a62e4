package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const unknown = "-"

var (
	areaRe       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:㎡|m)`)
	areaPairRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)[A-Za-z]*\s*/\s*(\d+(?:\.\d+)?)\s*(?:㎡|m)`)
	floorRe      = regexp.MustCompile(`(\d+|저|중|고)\s*/\s*(\d+)`)
	floorStoryRe = regexp.MustCompile(`(\d+|저|중|고)\s*/\s*(\d+)\s*층`)
	directionRe  = regexp.MustCompile(`(?:^|[^가-힣])(남동향|남서향|북동향|북서향|남향|북향|동향|서향)(?:$|[^가-힣])`)
)

// ParseArea returns the number right before the first area unit, or 0.
func ParseArea(text string) float64 {
	m := areaRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}

// ParseAreas reads "supply/exclusive" pairs such as "112/84㎡" or
// "170B/137m²". A single area is returned as the primary value.
func ParseAreas(text string) (primary, secondary float64) {
	if m := areaPairRe.FindStringSubmatch(text); m != nil {
		primary, _ = strconv.ParseFloat(m[1], 64)
		secondary, _ = strconv.ParseFloat(m[2], 64)
		return primary, secondary
	}
	return ParseArea(text), 0
}

// ParseFloor splits "10/25" or "저/18" into floor and total floors. Both are
// "-" when the text has no floor.
func ParseFloor(text string) (floor, total string) {
	m := floorRe.FindStringSubmatch(text)
	if m == nil {
		return unknown, unknown
	}
	return m[1], m[2]
}

// ParseDirection returns the facing token found in text, or "-".
func ParseDirection(text string) string {
	m := directionRe.FindStringSubmatch(text)
	if m == nil {
		return unknown
	}
	return m[1]
}

// SpecInfo holds the fields packed into a listing's spec line, e.g.
// "170B/137m², 8/30층, 남향".
type SpecInfo struct {
	AreaPrimary   float64
	AreaSecondary float64
	Floor         string
	TotalFloor    string
	Direction     string
}

func ParseSpec(text string) SpecInfo {
	info := SpecInfo{Floor: unknown, TotalFloor: unknown, Direction: ParseDirection(text)}
	info.AreaPrimary, info.AreaSecondary = ParseAreas(text)

	if m := floorStoryRe.FindStringSubmatch(text); m != nil {
		info.Floor, info.TotalFloor = m[1], m[2]
		return info
	}

	for _, part := range strings.Split(text, ",") {
		if areaRe.MatchString(part) {
			continue
		}
		if f, t := ParseFloor(part); f != unknown {
			info.Floor, info.TotalFloor = f, t
			break
		}
	}
	return info
}
