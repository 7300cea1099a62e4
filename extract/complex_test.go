package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromComplexes(t *testing.T) {
	body := `{"isMoreData":false,"complexList":[
{"complexNo":"1147","complexName":" 래미안퍼스티지 ","cortarNo":"1165010700","realEstateTypeCode":"APT","totalHouseholdCount":2444,"dealCount":3,"leaseCount":2,"rentCount":1,"latitude":"37.508","longitude":127.0},
{"complexNo":"","complexName":"이름만"},
{"complexNo":"9999","complexName":""}]}`

	var page ComplexPage
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	complexes := FromComplexes(page.ComplexList)
	require.Len(t, complexes, 1)

	c := complexes[0]
	assert.Equal(t, "1147", c.No)
	assert.Equal(t, "래미안퍼스티지", c.Name)
	assert.Equal(t, "1165010700", c.RegionCode)
	assert.Equal(t, 2444, c.Households)
	assert.Equal(t, 6, c.ArticleCount, "deal, lease and rent counts add up")
	assert.Equal(t, 37.508, c.Latitude)
}
