package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"land_scrooper/models"
)

func TestFromArticles(t *testing.T) {
	page, err := DecodeArticlePage(loadFixture(t, "articles.json"))
	require.NoError(t, err)
	assert.True(t, page.IsMoreData)
	require.Len(t, page.ArticleList, 4)

	listings := FromArticles(page.ArticleList, Options{Region: "서초구", CollectedAt: collectedAt})
	require.Len(t, listings, 2, "nameless and unpriced articles are dropped")

	sale := listings[0]
	assert.Equal(t, "2412345678", sale.ID)
	assert.Equal(t, "래미안퍼스티지", sale.Title)
	assert.Equal(t, "서초구", sale.Region)
	assert.Equal(t, models.SalePrice(455000), sale.Price)
	assert.Equal(t, 170.0, sale.AreaPrimary)
	assert.Equal(t, 137.0, sale.AreaSecondary)
	assert.Equal(t, "8", sale.Floor)
	assert.Equal(t, "30", sale.TotalFloor)
	assert.Equal(t, "남향", sale.Direction)
	assert.Equal(t, "매경부동산", sale.Broker)
	assert.Equal(t, "20240115", sale.ConfirmedDate)
	assert.InDelta(t, 37.5063, sale.Latitude, 1e-9)
	assert.InDelta(t, 127.0045, sale.Longitude, 1e-9)
	assert.Equal(t, "api", sale.Source)
	assert.Equal(t, "2024-01-20", sale.CollectedAt)

	rent := listings[1]
	assert.Equal(t, models.TradeMonthly, rent.TradeTypeCode)
	assert.Equal(t, models.MonthlyPrice(5000, 350), rent.Price)
	assert.Equal(t, "5,000/350", rent.PriceText)
	assert.Equal(t, "저", rent.Floor)
	assert.Equal(t, "18", rent.TotalFloor)
	assert.Equal(t, "-", rent.Direction)
	assert.Equal(t, 84.97, rent.AreaSecondary)
}

func TestFromArticleFallsBackToOptions(t *testing.T) {
	l, ok := FromArticle(RawArticle{BuildingName: "한신빌라", DealOrWarrantPrc: "3억"}, Options{
		Region:       "마포구",
		PropertyType: models.PropertyVilla,
		TradeType:    models.TradeJeonse,
		CollectedAt:  collectedAt,
	})
	require.True(t, ok)

	assert.Equal(t, "한신빌라", l.Title)
	assert.Equal(t, models.PropertyVilla, l.PropertyTypeCode)
	assert.Equal(t, "빌라", l.PropertyTypeName)
	assert.Equal(t, "전세", l.TradeTypeName)
	assert.Equal(t, models.DepositPrice(30000), l.Price)
	assert.Regexp(t, `^api_[0-9a-f]{16}$`, l.ID)
}

func TestDecodeArticlePageEmpty(t *testing.T) {
	page, err := DecodeArticlePage([]byte(`{"isMoreData":false,"articleList":[]}`))
	require.NoError(t, err)
	assert.Empty(t, FromArticles(page.ArticleList, Options{}))

	_, err = DecodeArticlePage([]byte(`<html>`))
	assert.Error(t, err)
}

func TestDecodeArticlePageOddNumbers(t *testing.T) {
	body := `{"isMoreData":false,"articleList":[
{"articleNo":"2401","articleName":"래미안퍼스티지","tradeTypeCode":"A1","dealOrWarrantPrc":"45억","area1":"84.9","area2":"-","latitude":"정보없음","longitude":null},
{"articleNo":"2402","articleName":"반포자이","tradeTypeCode":"A1","dealOrWarrantPrc":"38억","area1":"","area2":59}]}`

	page, err := DecodeArticlePage([]byte(body))
	require.NoError(t, err, "a non-numeric field must not reject the page")

	listings := FromArticles(page.ArticleList, Options{})
	require.Len(t, listings, 2)
	assert.Equal(t, 84.9, listings[0].AreaPrimary)
	assert.Zero(t, listings[0].AreaSecondary)
	assert.Zero(t, listings[0].Latitude)
	assert.Zero(t, listings[1].AreaPrimary)
	assert.Equal(t, 59.0, listings[1].AreaSecondary)
}
