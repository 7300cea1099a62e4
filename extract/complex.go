package extract

import (
	"land_scrooper/identity"
	"land_scrooper/models"
)

// ComplexPage is one page of the complex list endpoint.
type ComplexPage struct {
	IsMoreData  bool         `json:"isMoreData"`
	ComplexList []RawComplex `json:"complexList"`
}

// RawComplex is a building complex as reported by the site.
type RawComplex struct {
	ComplexNo          string    `json:"complexNo"`
	ComplexName        string    `json:"complexName"`
	CortarNo           string    `json:"cortarNo"`
	CortarAddress      string    `json:"cortarAddress"`
	RealEstateTypeCode string    `json:"realEstateTypeCode"`
	TotalHouseholds    int       `json:"totalHouseholdCount"`
	TotalDongs         int       `json:"totalDongCount"`
	UseApproveYmd      string    `json:"useApproveYmd"`
	DealCount          int       `json:"dealCount"`
	LeaseCount         int       `json:"leaseCount"`
	RentCount          int       `json:"rentCount"`
	Latitude           flexFloat `json:"latitude"`
	Longitude          flexFloat `json:"longitude"`
}

// ArticleCount is the number of open listings across all trade types.
func (c RawComplex) ArticleCount() int {
	return c.DealCount + c.LeaseCount + c.RentCount
}

// Complex normalizes the site's record. Complexes without a number or name
// are dropped by FromComplexes.
func (c RawComplex) Complex() models.Complex {
	return models.Complex{
		No:           c.ComplexNo,
		Name:         identity.NormalizeText(c.ComplexName),
		RegionCode:   c.CortarNo,
		Address:      c.CortarAddress,
		PropertyType: c.RealEstateTypeCode,
		Households:   c.TotalHouseholds,
		Dongs:        c.TotalDongs,
		ApprovedOn:   c.UseApproveYmd,
		ArticleCount: c.ArticleCount(),
		Latitude:     float64(c.Latitude),
		Longitude:    float64(c.Longitude),
	}
}

func FromComplexes(raw []RawComplex) []models.Complex {
	out := make([]models.Complex, 0, len(raw))
	for _, r := range raw {
		c := r.Complex()
		if c.No == "" || c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
