package extract

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"land_scrooper/identity"
	"land_scrooper/models"
)

const maxGenericName = 50

var (
	genericPriceRe = regexp.MustCompile(`(\d+(?:\.\d+)?억)(\s*\d[\d,]*)?(\s*/\s*\d[\d,]*)?|\d{1,3}(?:,\d{3})+(?:\s*/\s*\d[\d,]*)?`)
	tradeWordRe    = regexp.MustCompile(`매매|전세|월세`)
	confirmDateRe  = regexp.MustCompile(`\d{2}\.\d{2}\.\d{2}`)
	styleURLRe     = regexp.MustCompile(`url\(["']?([^"')]+)["']?\)`)
)

// Options carries the context a page does not state on every card.
type Options struct {
	Region       string
	PropertyType string
	TradeType    string
	ComplexName  string
	// CollectedAt defaults to the current time.
	CollectedAt time.Time
}

func (o Options) withDefaults() Options {
	if o.PropertyType == "" {
		o.PropertyType = models.PropertyApartment
	}
	if o.TradeType == "" {
		o.TradeType = models.TradeSale
	}
	if o.CollectedAt.IsZero() {
		o.CollectedAt = time.Now()
	}
	return o
}

// card is the raw text of one listing fragment before normalization.
type card struct {
	source      string
	name        string
	priceText   string
	tradeType   string
	spec        string
	size        string
	count       string
	description string
	broker      string
	agent       string
	confirm     string
	thumbnail   string
}

type strategy struct {
	source   string
	sel      CardSelectors
	fromText bool
}

func strategies(sel Selectors) []strategy {
	return []strategy{
		{source: "marker", sel: sel.Marker},
		{source: "list", sel: sel.List},
		{source: "detail", sel: sel.Detail},
		{source: "generic", sel: sel.Generic, fromText: true},
	}
}

// ScrapeHTML runs every DOM strategy over the page, merges what they find and
// drops duplicates and unusable fragments.
func ScrapeHTML(r io.Reader, sel Selectors, opts Options) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return ScrapeDocument(doc, sel, opts), nil
}

func ScrapeDocument(doc *goquery.Document, sel Selectors, opts Options) []models.Listing {
	var cards []card
	claimed := make(map[*html.Node]bool)
	for _, s := range strategies(sel) {
		cards = append(cards, s.cards(doc.Selection, claimed)...)
	}
	return buildListings(cards, opts)
}

// ScrapeDetailPanel reads only the article list shown after a complex is
// opened.
func ScrapeDetailPanel(r io.Reader, sel Selectors, opts Options) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	s := strategy{source: "detail", sel: sel.Detail}
	return buildListings(s.cards(doc.Selection, nil), opts), nil
}

// cards reads every container the strategy matches. Field strategies record
// the nodes they turned into cards in claimed; text strategies skip any
// element that overlaps a claimed node so one listing is not read twice.
func (s strategy) cards(root *goquery.Selection, claimed map[*html.Node]bool) []card {
	if len(s.sel.Container) == 0 {
		return nil
	}

	var out []card
	root.Find(strings.Join(s.sel.Container, ", ")).Each(func(_ int, el *goquery.Selection) {
		for _, class := range s.sel.Skip {
			if el.HasClass(class) {
				return
			}
		}

		var c card
		var ok bool
		if s.fromText {
			if overlapsClaimed(el.Get(0), claimed) {
				return
			}
			c, ok = s.textCard(el)
		} else {
			c, ok = s.fieldCard(el)
			if ok && claimed != nil {
				claimed[el.Get(0)] = true
			}
		}
		if ok {
			out = append(out, c)
		}
	})
	return out
}

func (s strategy) fieldCard(el *goquery.Selection) (card, bool) {
	c := card{
		source:      s.source,
		name:        s.sel.Name.text(el),
		priceText:   s.sel.Price.text(el),
		tradeType:   s.sel.TradeType.text(el),
		spec:        s.sel.Spec.text(el),
		size:        s.sel.Size.text(el),
		count:       s.sel.Count.text(el),
		description: s.sel.Description.text(el),
		broker:      s.sel.Broker.text(el),
		agent:       s.sel.Agent.text(el),
		confirm:     s.sel.Confirm.text(el),
		thumbnail:   s.sel.Thumbnail.text(el),
	}
	if c.priceText == "" {
		c.priceText = s.sel.PriceFallback.text(el)
	}
	return c, c.name != ""
}

// textCard handles list items with no known structure: the first line is the
// name and the first price-looking run is the price.
func (s strategy) textCard(el *goquery.Selection) (card, bool) {
	raw := el.Text()
	text := identity.NormalizeText(raw)
	if utf8.RuneCountInString(text) <= s.sel.MinText {
		return card{}, false
	}

	priceText := findGenericPrice(text)

	name := ""
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			name = line
			break
		}
	}
	if priceText != "" {
		if i := strings.Index(name, priceText); i >= 0 {
			name = name[:i]
		}
	}
	name = strings.TrimSpace(tradeWordRe.ReplaceAllString(name, ""))
	name = truncateRunes(identity.NormalizeText(name), maxGenericName)

	return card{
		source:    s.source,
		name:      name,
		priceText: priceText,
		tradeType: tradeWordRe.FindString(text),
		spec:      text,
	}, name != ""
}

// findGenericPrice returns the first price-looking run in text. Digits after
// 억 only belong to the price when no unit follows them, so "45억 84㎡" is
// 45억 and not 45억 84.
func findGenericPrice(text string) string {
	m := genericPriceRe.FindStringSubmatchIndex(text)
	if m == nil {
		return ""
	}
	if m[2] < 0 || m[4] < 0 {
		return text[m[0]:m[1]]
	}
	if unitFollows(text[m[5]:]) || unitFollows(text[m[1]:]) {
		return text[m[2]:m[3]]
	}
	return text[m[0]:m[1]]
}

func unitFollows(s string) bool {
	s = strings.TrimLeft(s, " ")
	r, _ := utf8.DecodeRuneInString(s)
	switch r {
	case '㎡', '평', '층', 'm', 'M':
		return true
	}
	return false
}

// overlapsClaimed reports whether n is, contains or sits inside a claimed node.
func overlapsClaimed(n *html.Node, claimed map[*html.Node]bool) bool {
	if n == nil || len(claimed) == 0 {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if claimed[p] {
			return true
		}
	}
	for c := range claimed {
		for p := c.Parent; p != nil; p = p.Parent {
			if p == n {
				return true
			}
		}
	}
	return false
}

func (f Field) text(el *goquery.Selection) string {
	for _, sel := range f.Selectors {
		found := el.Find(sel)
		if f.Index >= found.Length() {
			continue
		}
		node := found.Eq(f.Index)

		var v string
		if f.Attr != "" {
			v, _ = node.Attr(f.Attr)
		} else {
			v = node.Text()
		}
		if v = identity.NormalizeText(v); v != "" {
			return v
		}
	}
	return ""
}

func buildListings(cards []card, opts Options) []models.Listing {
	opts = opts.withDefaults()

	// The same listing often appears in several layouts at once. Keep the
	// first fragment and fill its gaps from the later ones.
	index := make(map[string]int)
	var merged []card
	for _, c := range cards {
		key := identity.DedupKey(c.name, c.priceText)
		if i, ok := index[key]; ok {
			merged[i] = merged[i].fill(c)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, c)
	}

	var out []models.Listing
	for _, c := range merged {
		if l, ok := c.listing(opts); ok {
			out = append(out, l)
		}
	}
	return out
}

func (c card) fill(o card) card {
	fillEmpty(&c.tradeType, o.tradeType)
	fillEmpty(&c.spec, o.spec)
	fillEmpty(&c.size, o.size)
	fillEmpty(&c.count, o.count)
	fillEmpty(&c.description, o.description)
	fillEmpty(&c.broker, o.broker)
	fillEmpty(&c.agent, o.agent)
	fillEmpty(&c.confirm, o.confirm)
	fillEmpty(&c.thumbnail, o.thumbnail)
	return c
}

func fillEmpty(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func (c card) listing(opts Options) (models.Listing, bool) {
	if c.name == "" {
		return models.Listing{}, false
	}

	trade := opts.TradeType
	if word := tradeWordRe.FindString(c.tradeType); word != "" {
		trade = models.NormalizeTradeType(word)
	}

	price, ok := PriceFromText(trade, c.priceText)
	if !ok {
		return models.Listing{}, false
	}

	spec := ParseSpec(joinNonEmpty(", ", c.spec, c.size))
	date, owner := parseConfirm(c.confirm)

	region := opts.Region
	if region == "" {
		region = InferRegion(c.description, c.spec)
	}

	complexName := opts.ComplexName
	if c.source == "marker" {
		complexName = c.name
	}

	count, _ := strconv.Atoi(strings.TrimSpace(strings.Trim(c.count, "개건")))

	return models.Listing{
		ID:               identity.SyntheticID(c.source, opts.Region, opts.PropertyType, trade, complexName, c.name, c.priceText),
		Title:            c.name,
		ComplexName:      complexName,
		Region:           region,
		PropertyTypeCode: opts.PropertyType,
		PropertyTypeName: models.PropertyTypeName(opts.PropertyType),
		TradeTypeCode:    trade,
		TradeTypeName:    models.TradeTypeName(trade),
		Price:            price,
		PriceText:        c.priceText,
		AreaPrimary:      spec.AreaPrimary,
		AreaSecondary:    spec.AreaSecondary,
		Floor:            spec.Floor,
		TotalFloor:       spec.TotalFloor,
		Direction:        spec.Direction,
		ArticleCount:     count,
		Broker:           c.broker,
		AgentName:        c.agent,
		ConfirmedDate:    date,
		OwnerType:        owner,
		Description:      c.description,
		ThumbnailURL:     thumbnailURL(c.thumbnail),
		Source:           c.source,
		CollectedAt:      opts.CollectedAt.Format(time.DateOnly),
	}, true
}

// parseConfirm splits a badge like "집주인 확인매물 24.01.15" into the date and
// the remaining owner label.
func parseConfirm(text string) (date, owner string) {
	date = confirmDateRe.FindString(text)
	owner = confirmDateRe.ReplaceAllString(text, "")
	owner = strings.ReplaceAll(owner, "확인매물", "")
	return date, identity.NormalizeText(owner)
}

func thumbnailURL(v string) string {
	if m := styleURLRe.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	if strings.HasPrefix(v, "http") || strings.HasPrefix(v, "//") {
		return v
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
