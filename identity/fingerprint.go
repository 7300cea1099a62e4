package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var multiSpaceRegex = regexp.MustCompile(`\s+`)

// NormalizeText collapses runs of whitespace and trims the ends.
func NormalizeText(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}

// DedupKey identifies a listing scraped from the page: two fragments with the
// same name and price text describe the same offering.
func DedupKey(name, priceText string) string {
	return NormalizeText(name) + "_" + NormalizeText(priceText)
}

// SyntheticID derives a stable ID for listings that carry no article number.
// The same inputs always produce the same ID.
func SyntheticID(source string, parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = NormalizeText(p)
	}
	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return fmt.Sprintf("%s_%s", source, hex.EncodeToString(hash[:8]))
}
