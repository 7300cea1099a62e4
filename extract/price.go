package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"land_scrooper/models"
)

var (
	billionRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)억`)
	afterBillionRe = regexp.MustCompile(`억(\d[\d,]*)`)
	plainNumberRe  = regexp.MustCompile(`\d[\d,]*`)
)

// ParsePrice converts a Korean price string to units of 10,000 KRW.
// "12억 5,000" is 125000, "45억" is 450000 and "5,000" is 5000. Text without
// digits yields 0.
func ParsePrice(text string) int64 {
	s := strings.Join(strings.Fields(text), "")

	if m := billionRe.FindStringSubmatch(s); m != nil {
		billions, _ := strconv.ParseFloat(m[1], 64)
		total := int64(math.Round(billions * 10000))
		if rest := afterBillionRe.FindStringSubmatch(s); rest != nil {
			total += parseDigits(rest[1])
		}
		return total
	}

	return parseDigits(plainNumberRe.FindString(s))
}

// PriceFromText builds the price variant for a trade type from displayed
// text. Monthly rents are shown as "deposit/rent". The bool is false when no
// amount could be read.
func PriceFromText(tradeType, text string) (models.Price, bool) {
	if tradeType == models.TradeMonthly {
		if i := strings.Index(text, "/"); i >= 0 {
			deposit := ParsePrice(text[:i])
			rent := ParsePrice(text[i+1:])
			p := models.MonthlyPrice(deposit, rent)
			return p, !p.IsZero()
		}
	}

	amount := ParsePrice(text)
	if amount == 0 {
		return models.Price{}, false
	}
	return models.PriceFor(tradeType, amount, 0), true
}

func parseDigits(s string) int64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
