package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetailPath(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantChain    string
		wantContract string
	}{
		{"solana", "/solana/7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "solana", "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"},
		{"ethereum", "/ethereum/0xabc123", "ethereum", "0xabc123"},
		{"bnb with suffix", "/bnb/AbC99?maker=1", "bnb", "AbC99"},
		{"unknown chain", "/tron/TXYZ", NotFound, NotFound},
		{"empty", "", NotFound, NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, contract := ParseDetailPath(tt.path)
			assert.Equal(t, tt.wantChain, chain)
			assert.Equal(t, tt.wantContract, contract)
		})
	}
}

func TestNewListing(t *testing.T) {
	l := NewListing(Listing{DisplayName: "Pepe", DetailPath: "/base/0xdeadbeef"}, "https://dexscreener.com/")

	assert.Equal(t, "base", l.ChainSlug)
	assert.Equal(t, "0xdeadbeef", l.ContractAddress)
	assert.Equal(t, "https://dexscreener.com/base/0xdeadbeef", l.CanonicalURL)

	l = NewListing(Listing{DetailPath: "/pulsechain/abc"}, "https://dexscreener.com")
	assert.Equal(t, NotFound, l.ContractAddress)
	assert.NotEmpty(t, l.ContractAddress)
}

func TestExtractWallet(t *testing.T) {
	addr, ok := ExtractWallet("hello 0xABCDEF0123456789ABCDEF0123456789ABCDEF01 thanks")
	assert.True(t, ok)
	assert.Equal(t, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01", addr)

	_, ok = ExtractWallet("0x1234")
	assert.False(t, ok)
}
