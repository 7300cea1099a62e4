package extract

import (
	"net/url"
	"strings"

	"land_scrooper/models"
)

// Capture is what the in-page bookmarklet posts back: the cards it read from
// the open complex plus enough page context to label them.
type Capture struct {
	URL          string        `json:"url"`
	PageTitle    string        `json:"pageTitle"`
	ComplexTitle string        `json:"complexTitle"`
	Address      string        `json:"address"`
	Region       string        `json:"region"`
	Articles     []CaptureCard `json:"articles"`
}

type CaptureCard struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TradeType    string `json:"tradeType"`
	Price        string `json:"price"`
	Spec         string `json:"spec"`
	Desc         string `json:"desc"`
	Cp           string `json:"cp"`
	Agent        string `json:"agent"`
	Region       string `json:"region"`
	ComplexTitle string `json:"complexTitle"`
	Address      string `json:"address"`
}

// FromCapture normalizes a bookmarklet payload. Context the caller did not
// set in opts is taken from the page URL and title.
func FromCapture(c Capture, opts Options) []models.Listing {
	if opts.Region == "" {
		opts.Region = captureRegion(c)
	}
	if opts.ComplexName == "" {
		opts.ComplexName = strings.TrimSpace(c.ComplexTitle)
	}
	opts = opts.FromPageURL(c.URL)

	cards := make([]card, 0, len(c.Articles))
	for _, a := range c.Articles {
		cards = append(cards, card{
			source:      "capture",
			name:        a.Name,
			priceText:   a.Price,
			tradeType:   a.TradeType,
			spec:        a.Spec,
			description: a.Desc,
			broker:      a.Cp,
			agent:       a.Agent,
		})
	}
	return buildListings(cards, opts)
}

func captureRegion(c Capture) string {
	if r := InferRegion(c.Region, c.Address); r != "" {
		return r
	}
	title := strings.Split(c.PageTitle, "|")[0]
	title = strings.TrimSpace(strings.Split(title, "-")[0])
	return InferRegion(title)
}

// FromPageURL fills the property and trade type the caller left empty from
// the a= and b= filters of a listing page URL.
func (o Options) FromPageURL(pageURL string) Options {
	u, err := url.Parse(pageURL)
	if err != nil {
		return o
	}
	q := u.Query()
	if o.PropertyType == "" {
		o.PropertyType = firstCode(q.Get("a"))
	}
	if o.TradeType == "" {
		o.TradeType = firstCode(q.Get("b"))
	}
	return o
}

// firstCode takes the first entry of a colon separated filter such as
// "APT:OPST".
func firstCode(v string) string {
	code, _, _ := strings.Cut(v, ":")
	return strings.ToUpper(strings.TrimSpace(code))
}
