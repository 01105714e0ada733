package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/songzhibin97/pairscout/internal/models"
)

const (
	// ThinkMarker ends the reasoning preamble some models emit
	ThinkMarker = "</think>"

	// MaxMessageLength Telegram 单条消息留有余量的长度上限(按字符计)
	MaxMessageLength = 4000
	TruncatedSuffix  = "\n\n... (truncated)"
)

// BuildPrompt interpolates the listing into the deep analysis template
func BuildPrompt(l models.Listing) string {
	return fmt.Sprintf(`
Perform a deep analysis of the cryptocurrency token with the following details:
- Name: %s
- Trading Name: %s
- Price: %s
- Age: %s
- Volume: %s
- Contract Address: %s
- Buys: %s
- Sells: %s
- Link: %s
- Blockchain: %s
`,
		orNA(l.DisplayName), orNA(l.TradingPair), orNA(l.Price), orNA(l.Age), orNA(l.Volume),
		orNA(l.ContractAddress), orNA(l.Buys), orNA(l.Sells), orNA(l.CanonicalURL), Blockchain(l))
}

// Blockchain names the listing's chain, falling back to the first path segment
func Blockchain(l models.Listing) string {
	if l.ChainSlug != "" && l.ChainSlug != models.NotFound {
		return l.ChainSlug
	}
	parts := strings.Split(l.DetailPath, "/")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return "unknown chain"
}

// StripReasoning keeps only the trimmed text after the first ThinkMarker
func StripReasoning(raw string) string {
	if _, after, ok := strings.Cut(raw, ThinkMarker); ok {
		return strings.TrimSpace(after)
	}
	return raw
}

// Truncate cuts text to MaxMessageLength characters and marks the cut
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		return text
	}
	return string([]rune(text)[:MaxMessageLength]) + TruncatedSuffix
}

// Postprocess strips the reasoning preamble and truncates the result
func Postprocess(raw string) string {
	return Truncate(StripReasoning(raw))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
