package models

// Complex is a building complex and the number of listings open in it.
type Complex struct {
	No           string  `json:"complexNo"`
	Name         string  `json:"complexName"`
	RegionCode   string  `json:"regionCode,omitempty"`
	Address      string  `json:"address,omitempty"`
	PropertyType string  `json:"propertyType,omitempty"`
	Households   int     `json:"households,omitempty"`
	Dongs        int     `json:"dongs,omitempty"`
	ApprovedOn   string  `json:"approvedOn,omitempty"`
	ArticleCount int     `json:"articleCount"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
}
