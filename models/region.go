package models

const (
	RegionProvince = "city"
	RegionDistrict = "dvsn"
	RegionTown     = "sec"
)

// Region is a node of the administrative hierarchy, keyed by its 10-digit
// cortarNo code.
type Region struct {
	Code      string  `json:"cortarNo"`
	Name      string  `json:"cortarName"`
	Type      string  `json:"cortarType,omitempty"`
	CenterLat float64 `json:"centerLat,omitempty"`
	CenterLon float64 `json:"centerLon,omitempty"`
}
