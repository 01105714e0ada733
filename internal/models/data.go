package models

import (
	"regexp"
	"strings"
)

// NotFound 合约地址无法从链接中解析时的占位值
const NotFound = "N/F"

// ChainSlugs is the closed set of chain path segments a detail link may carry.
var ChainSlugs = []string{"solana", "ethereum", "base", "bnb", "avalanche"}

var contractPattern = regexp.MustCompile(`/(` + strings.Join(ChainSlugs, "|") + `)/([0-9a-zA-Z]+)`)

// WalletPattern matches an EVM style wallet address anywhere inside free text.
var WalletPattern = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)

// Listing 一行新交易对数据
type Listing struct {
	DisplayName     string `json:"name"`
	TradingPair     string `json:"trading_name"` // BASE/QUOTE
	Price           string `json:"price"`
	Age             string `json:"age"`
	Volume          string `json:"volume"`
	Buys            string `json:"buys"`
	Sells           string `json:"sells"`
	Liquidity       string `json:"liquidity"`
	Makers          string `json:"makers"`
	PriceChange5m   string `json:"five_minuter"`
	PriceChange6h   string `json:"six_hours"`
	PriceChange24h  string `json:"twentyfour_hours"`
	ContractAddress string `json:"contract_address"`
	ChainSlug       string `json:"chain"`
	DetailPath      string `json:"href"`
	CanonicalURL    string `json:"link"`
}

// ParseDetailPath extracts the chain slug and contract identifier from a relative detail link.
// Both values are NotFound when the link does not match a known chain.
func ParseDetailPath(path string) (chain, contract string) {
	m := contractPattern.FindStringSubmatch(path)
	if m == nil {
		return NotFound, NotFound
	}
	return m[1], m[2]
}

// NewListing fills the derived fields of l from its detail path and the site base URL.
func NewListing(l Listing, baseURL string) Listing {
	l.ChainSlug, l.ContractAddress = ParseDetailPath(l.DetailPath)
	l.CanonicalURL = strings.TrimRight(baseURL, "/") + l.DetailPath
	return l
}

// WalletRecord 用户保存的钱包地址
type WalletRecord struct {
	UserID  int64  `json:"user_id" db:"userid"`
	Address string `json:"address" db:"userwallet"`
}

// ExtractWallet returns the first wallet address found in text.
func ExtractWallet(text string) (string, bool) {
	addr := WalletPattern.FindString(text)
	return addr, addr != ""
}
