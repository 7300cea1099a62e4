package models

import "strings"

const (
	PropertyApartment    = "APT"
	PropertyOfficetel    = "OPST"
	PropertyVilla        = "VL"
	PropertyPresaleRight = "ABYG"
)

const (
	TradeSale    = "A1"
	TradeJeonse  = "B1"
	TradeMonthly = "B2"
)

var PropertyTypes = map[string]string{
	PropertyApartment:    "아파트",
	PropertyOfficetel:    "오피스텔",
	PropertyVilla:        "빌라",
	PropertyPresaleRight: "아파트분양권",
}

var TradeTypes = map[string]string{
	TradeSale:    "매매",
	TradeJeonse:  "전세",
	TradeMonthly: "월세",
}

// PropertyTypeName returns the display name for a code, or the code itself
// when it is not in the vocabulary.
func PropertyTypeName(code string) string {
	if name, ok := PropertyTypes[code]; ok {
		return name
	}
	return code
}

func TradeTypeName(code string) string {
	if name, ok := TradeTypes[code]; ok {
		return name
	}
	return code
}

// NormalizeTradeType maps free text (a code or a Korean label) to a trade
// type code. Unrecognized text falls back to a sale.
func NormalizeTradeType(text string) string {
	t := strings.TrimSpace(text)
	if _, ok := TradeTypes[strings.ToUpper(t)]; ok {
		return strings.ToUpper(t)
	}
	switch {
	case strings.Contains(t, "전세"):
		return TradeJeonse
	case strings.Contains(t, "월세"):
		return TradeMonthly
	case strings.Contains(t, "매"):
		return TradeSale
	}
	return TradeSale
}

// NormalizePropertyType maps a code or a Korean label to a property type
// code, or "" when nothing matches.
func NormalizePropertyType(text string) string {
	t := strings.TrimSpace(text)
	if _, ok := PropertyTypes[strings.ToUpper(t)]; ok {
		return strings.ToUpper(t)
	}
	switch {
	case strings.Contains(t, "분양권"):
		return PropertyPresaleRight
	case strings.Contains(t, "오피스텔"):
		return PropertyOfficetel
	case strings.Contains(t, "빌라"), strings.Contains(t, "연립"), strings.Contains(t, "다세대"):
		return PropertyVilla
	case strings.Contains(t, "아파트"):
		return PropertyApartment
	}
	return ""
}
