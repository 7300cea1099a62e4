package extract

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"land_scrooper/identity"
	"land_scrooper/models"
)

// ArticlePage is one page of the article list endpoint.
type ArticlePage struct {
	IsMoreData  bool         `json:"isMoreData"`
	ArticleList []RawArticle `json:"articleList"`
}

// RawArticle mirrors an entry of the article list endpoint. Only the fields
// the normalizer reads are declared.
type RawArticle struct {
	ArticleNo          string    `json:"articleNo"`
	ArticleName        string    `json:"articleName"`
	BuildingName       string    `json:"buildingName"`
	RealEstateTypeCode string    `json:"realEstateTypeCode"`
	RealEstateTypeName string    `json:"realEstateTypeName"`
	TradeTypeCode      string    `json:"tradeTypeCode"`
	TradeTypeName      string    `json:"tradeTypeName"`
	DealOrWarrantPrc   string    `json:"dealOrWarrantPrc"`
	RentPrc            string    `json:"rentPrc"`
	Area1              flexFloat `json:"area1"`
	Area2              flexFloat `json:"area2"`
	Direction          string    `json:"direction"`
	FloorInfo          string    `json:"floorInfo"`
	CpName             string    `json:"cpName"`
	RealtorName        string    `json:"realtorName"`
	ArticleConfirmYmd  string    `json:"articleConfirmYmd"`
	ArticleFeatureDesc string    `json:"articleFeatureDesc"`
	TagList            []string  `json:"tagList"`
	DetailAddress      string    `json:"detailAddress"`
	RepresentativeImg  string    `json:"representativeImgUrl"`
	Latitude           flexFloat `json:"latitude"`
	Longitude          flexFloat `json:"longitude"`
}

// flexFloat accepts numbers sent either bare or as strings. Anything that is
// not a number reads as 0, so one odd field never loses a whole page.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// FromArticle normalizes one API article. The bool is false when the article
// has no usable name or price.
func FromArticle(raw RawArticle, opts Options) (models.Listing, bool) {
	opts = opts.withDefaults()

	name := identity.NormalizeText(raw.ArticleName)
	if name == "" {
		name = identity.NormalizeText(raw.BuildingName)
	}
	if name == "" {
		return models.Listing{}, false
	}

	trade := raw.TradeTypeCode
	if trade == "" {
		trade = opts.TradeType
	}
	propertyType := raw.RealEstateTypeCode
	if propertyType == "" {
		propertyType = opts.PropertyType
	}

	amount := ParsePrice(raw.DealOrWarrantPrc)
	var rent int64
	if trade == models.TradeMonthly {
		rent = ParsePrice(raw.RentPrc)
	}
	price := models.PriceFor(trade, amount, rent)
	if price.IsZero() {
		return models.Listing{}, false
	}

	priceText := raw.DealOrWarrantPrc
	if rent > 0 {
		priceText += "/" + raw.RentPrc
	}

	floor, total := ParseFloor(raw.FloorInfo)
	direction := raw.Direction
	if direction == "" {
		direction = unknown
	}

	id := raw.ArticleNo
	if id == "" {
		id = identity.SyntheticID("api", opts.Region, propertyType, trade, name, priceText)
	}

	tradeName := raw.TradeTypeName
	if tradeName == "" {
		tradeName = models.TradeTypeName(trade)
	}
	typeName := raw.RealEstateTypeName
	if typeName == "" {
		typeName = models.PropertyTypeName(propertyType)
	}

	return models.Listing{
		ID:               id,
		Title:            name,
		ComplexName:      opts.ComplexName,
		Region:           opts.Region,
		PropertyTypeCode: propertyType,
		PropertyTypeName: typeName,
		TradeTypeCode:    trade,
		TradeTypeName:    tradeName,
		Price:            price,
		PriceText:        priceText,
		AreaPrimary:      float64(raw.Area1),
		AreaSecondary:    float64(raw.Area2),
		Floor:            floor,
		TotalFloor:       total,
		Direction:        direction,
		Broker:           raw.CpName,
		AgentName:        raw.RealtorName,
		ConfirmedDate:    raw.ArticleConfirmYmd,
		Description:      raw.ArticleFeatureDesc,
		ThumbnailURL:     raw.RepresentativeImg,
		Latitude:         float64(raw.Latitude),
		Longitude:        float64(raw.Longitude),
		Source:           "api",
		CollectedAt:      opts.CollectedAt.Format(time.DateOnly),
	}, true
}

// FromArticles normalizes a page of articles, skipping unusable entries.
func FromArticles(raws []RawArticle, opts Options) []models.Listing {
	opts = opts.withDefaults()

	out := make([]models.Listing, 0, len(raws))
	for _, raw := range raws {
		if l, ok := FromArticle(raw, opts); ok {
			out = append(out, l)
		}
	}
	return out
}

// DecodeArticlePage parses a raw article list response body.
func DecodeArticlePage(body []byte) (*ArticlePage, error) {
	var page ArticlePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
