package models

// PriceKind tells which of the Price amounts are meaningful.
type PriceKind string

const (
	PriceSale    PriceKind = "sale"
	PriceDeposit PriceKind = "deposit"
	PriceMonthly PriceKind = "monthly"
)

// Price amounts are in units of 10,000 KRW (만원).
type Price struct {
	Kind    PriceKind `json:"kind"`
	Sale    int64     `json:"sale,omitempty"`
	Deposit int64     `json:"deposit,omitempty"`
	Rent    int64     `json:"rent,omitempty"`
}

func SalePrice(amount int64) Price {
	return Price{Kind: PriceSale, Sale: amount}
}

func DepositPrice(amount int64) Price {
	return Price{Kind: PriceDeposit, Deposit: amount}
}

func MonthlyPrice(deposit, rent int64) Price {
	return Price{Kind: PriceMonthly, Deposit: deposit, Rent: rent}
}

// PriceFor builds the price variant that matches a trade type code.
func PriceFor(tradeType string, amount, rent int64) Price {
	switch tradeType {
	case TradeJeonse:
		return DepositPrice(amount)
	case TradeMonthly:
		return MonthlyPrice(amount, rent)
	default:
		return SalePrice(amount)
	}
}

// Amount is the headline figure: the sale price or the deposit.
func (p Price) Amount() int64 {
	if p.Kind == PriceSale {
		return p.Sale
	}
	return p.Deposit
}

func (p Price) IsZero() bool {
	return p.Sale == 0 && p.Deposit == 0 && p.Rent == 0
}

// Listing is one normalized property offering. Records are built once by an
// extraction path and not modified afterwards.
type Listing struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	ComplexName      string  `json:"complexName,omitempty"`
	Region           string  `json:"region"`
	PropertyTypeCode string  `json:"propertyTypeCode"`
	PropertyTypeName string  `json:"propertyTypeName"`
	TradeTypeCode    string  `json:"tradeTypeCode"`
	TradeTypeName    string  `json:"tradeTypeName"`
	Price            Price   `json:"price"`
	PriceText        string  `json:"priceText,omitempty"`
	AreaPrimary      float64 `json:"areaPrimary"`
	AreaSecondary    float64 `json:"areaSecondary"`
	Floor            string  `json:"floor"`
	TotalFloor       string  `json:"totalFloor"`
	Direction        string  `json:"direction"`
	ArticleCount     int     `json:"articleCount,omitempty"`
	Broker           string  `json:"broker,omitempty"`
	AgentName        string  `json:"agentName,omitempty"`
	ConfirmedDate    string  `json:"confirmedDate,omitempty"`
	OwnerType        string  `json:"ownerType,omitempty"`
	Description      string  `json:"description,omitempty"`
	ThumbnailURL     string  `json:"thumbnailUrl,omitempty"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	Source           string  `json:"source"`
	CollectedAt      string  `json:"collectedAt"`
}

// Valid reports whether the record carries the minimum a consumer can use.
func (l Listing) Valid() bool {
	return l.Title != "" && !l.Price.IsZero()
}
