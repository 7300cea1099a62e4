package extract

// Field lists candidate CSS selectors for one value, tried in order until one
// yields non-empty text. Index picks the n-th match; Attr reads an attribute
// instead of the text content.
type Field struct {
	Selectors []string `yaml:"selectors"`
	Index     int      `yaml:"index,omitempty"`
	Attr      string   `yaml:"attr,omitempty"`
}

// CardSelectors describes one page layout: where the listing cards are and
// where each value sits inside a card.
type CardSelectors struct {
	Container     []string `yaml:"container"`
	Skip          []string `yaml:"skip,omitempty"`
	MinText       int      `yaml:"min_text,omitempty"`
	Name          Field    `yaml:"name"`
	Price         Field    `yaml:"price"`
	PriceFallback Field    `yaml:"price_fallback"`
	TradeType     Field    `yaml:"trade_type"`
	Spec          Field    `yaml:"spec"`
	Size          Field    `yaml:"size"`
	Count         Field    `yaml:"count"`
	Description   Field    `yaml:"description"`
	Broker        Field    `yaml:"broker"`
	Agent         Field    `yaml:"agent"`
	Confirm       Field    `yaml:"confirm"`
	Thumbnail     Field    `yaml:"thumbnail"`
}

// Selectors groups the layouts the DOM scraper knows, in priority order.
type Selectors struct {
	Marker  CardSelectors `yaml:"marker"`
	List    CardSelectors `yaml:"list"`
	Detail  CardSelectors `yaml:"detail"`
	Generic CardSelectors `yaml:"generic"`
}

func field(selectors ...string) Field {
	return Field{Selectors: selectors}
}

// DefaultSelectors matches the markup of new.land.naver.com at the time of
// writing. Deployments override it from config/selectors.yaml.
func DefaultSelectors() Selectors {
	return Selectors{
		Marker: CardSelectors{
			Container:     []string{".marker_complex--apart", `[class*="marker_complex"]`},
			Skip:          []string{"is-dealtype0"},
			Name:          field(".complex_title"),
			Price:         field(".price_default", ".complex_price .price_default", `[class*="price"]`),
			PriceFallback: field(".complex_feature"),
			TradeType:     field(".complex_price .type", ".type"),
			Size:          field(".complex_size-default"),
			Count:         field(".article_link .count"),
		},
		List: CardSelectors{
			Container: []string{".item", ".article_item", `[class*="ArticleItem"]`},
			Name:      field(".item_title .text", ".text", ".article_title", `[class*="title"]`),
			Price:     field(".price_line .price", ".price", `[class*="price"]`),
			TradeType: field(".price_line .type", ".type"),
			Spec:      field(".info_area .spec", ".spec"),
			Broker:    field(".cp_area .agent_name", ".agent_name", `[class*="agent"]`),
		},
		Detail: CardSelectors{
			Container:   []string{"#articleListArea .item", ".item_list--article .item"},
			Name:        field(".item_title .text"),
			Price:       field(".price_line .price"),
			TradeType:   field(".price_line .type"),
			Spec:        field(".info_area .spec"),
			Description: Field{Selectors: []string{".info_area .spec"}, Index: 1},
			Broker:      field(".agent_name"),
			Agent:       Field{Selectors: []string{".agent_name"}, Index: 1},
			Confirm:     field(".icon-badge"),
			Thumbnail:   Field{Selectors: []string{".thumbnail"}, Attr: "style"},
		},
		Generic: CardSelectors{
			Container: []string{".complex_list li", ".item_list li", `[class*="list"] li`},
			MinText:   10,
		},
	}
}
