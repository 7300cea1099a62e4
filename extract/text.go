package extract

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"land_scrooper/models"
)

var (
	priceLineRe    = regexp.MustCompile(`(매매|전세|월세)\s*[\d억,]+`)
	buildingLineRe = regexp.MustCompile(`[가-힣]+.*\d*동`)
)

// ReadPasted decodes pasted or uploaded page content to UTF-8. The encoding
// comes from contentType when given, otherwise from a BOM or meta tag.
// Valid UTF-8 without a content type is returned as is.
func ReadPasted(r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	if contentType == "" && utf8.Valid(data) {
		return string(data), nil
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data), nil
	}
	return string(decoded), nil
}

// LooksLikeHTML guesses whether pasted content is markup rather than the
// page's visible text.
func LooksLikeHTML(s string) bool {
	return strings.Contains(s, "<div") || strings.Contains(s, "class=") || strings.Contains(s, "<li")
}

// ParsePasted dispatches to the DOM strategies or the plain text parser.
func ParsePasted(content string, sel Selectors, opts Options) ([]models.Listing, error) {
	if LooksLikeHTML(content) {
		return ScrapeHTML(strings.NewReader(content), sel, opts)
	}
	return ParseText(content, opts), nil
}

// ParseText reads listings out of text copied from the article list. A card
// is a building line, a "매매 12억" style price line and a spec line in any
// order; a new name or price line after a complete card starts the next one.
func ParseText(text string, opts Options) []models.Listing {
	var cards []card
	var cur card

	flush := func() {
		if cur.name != "" || cur.priceText != "" {
			cards = append(cards, cur)
		}
		cur = card{}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := priceLineRe.FindStringSubmatch(line); m != nil {
			if cur.priceText != "" {
				flush()
			}
			cur.source = "paste"
			cur.tradeType = m[1]
			cur.priceText = strings.TrimSpace(strings.TrimPrefix(line[strings.Index(line, m[1]):], m[1]))
			continue
		}

		if strings.Contains(line, "㎡") || strings.Contains(line, "층") {
			if cur.spec == "" {
				cur.spec = line
			}
			continue
		}

		if buildingLineRe.MatchString(line) {
			if cur.name != "" && cur.priceText != "" {
				flush()
			}
			// a name seen before any price may be a broker line; the later one wins
			if cur.name == "" || cur.priceText == "" {
				cur.source = "paste"
				cur.name = line
			}
		}
	}
	flush()

	return buildListings(cards, opts)
}
