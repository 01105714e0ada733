package dexscreener

import "github.com/songzhibin97/pairscout/internal/models"

// 页面结构标记, 站点改版时只需修改这里
const (
	rowReadyMarker = ".ds-dex-table-row"
	rowMarker      = "a.ds-dex-table-row"
	colPrefix      = ".ds-table-data-cell.ds-dex-table-row-"
)

type field struct {
	name     string
	selector string
	set      func(l *models.Listing, v string)
}

var baseSymbolMarker = ".ds-dex-table-row-base-token-symbol"

var quoteSymbolMarker = ".ds-dex-table-row-quote-token-symbol"

var fields = []field{
	{"name", ".ds-dex-table-row-base-token-name-text", func(l *models.Listing, v string) { l.DisplayName = v }},
	{"price", colPrefix + "col-price", func(l *models.Listing, v string) { l.Price = v }},
	{"age", colPrefix + "col-pair-age > span", func(l *models.Listing, v string) { l.Age = v }},
	{"buys", colPrefix + "col-buys", func(l *models.Listing, v string) { l.Buys = v }},
	{"sells", colPrefix + "col-sells", func(l *models.Listing, v string) { l.Sells = v }},
	{"volume", colPrefix + "col-volume", func(l *models.Listing, v string) { l.Volume = v }},
	{"makers", colPrefix + "col-makers", func(l *models.Listing, v string) { l.Makers = v }},
	{"five_minuter", colPrefix + "col-price-change-m5 > span", func(l *models.Listing, v string) { l.PriceChange5m = v }},
	{"six_hours", colPrefix + "col-price-change-h6 > span", func(l *models.Listing, v string) { l.PriceChange6h = v }},
	{"twentyfour_hours", colPrefix + "col-price-change-h24 > span", func(l *models.Listing, v string) { l.PriceChange24h = v }},
	{"liquidity", colPrefix + "col-liquidity", func(l *models.Listing, v string) { l.Liquidity = v }},
}
