package dexscreener

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/songzhibin97/pairscout/internal/models"
)

// ParseRows turns a rendered page snapshot into listings in DOM order.
// A row missing its link or any sub-field, or matching a sub-field more than once,
// is dropped and reported through skip.
func ParseRows(html, baseURL string, skip func(index int, err error)) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	listings := make([]models.Listing, 0)
	doc.Find(rowMarker).Each(func(i int, s *goquery.Selection) {
		l, err := parseRow(s, baseURL)
		if err != nil {
			if skip != nil {
				skip(i, err)
			}
			return
		}
		listings = append(listings, l)
	})

	return listings, nil
}

func parseRow(s *goquery.Selection, baseURL string) (models.Listing, error) {
	href, ok := s.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return models.Listing{}, fmt.Errorf("row has no href")
	}

	var l models.Listing
	l.DetailPath = strings.TrimSpace(href)

	base, err := text(s, baseSymbolMarker)
	if err != nil {
		return models.Listing{}, err
	}
	quote, err := text(s, quoteSymbolMarker)
	if err != nil {
		return models.Listing{}, err
	}
	l.TradingPair = base + "/" + quote

	for _, f := range fields {
		v, err := text(s, f.selector)
		if err != nil {
			return models.Listing{}, fmt.Errorf("field %s: %w", f.name, err)
		}
		f.set(&l, v)
	}

	return models.NewListing(l, baseURL), nil
}

// text requires selector to match exactly one element inside the row
func text(s *goquery.Selection, selector string) (string, error) {
	sel := s.Find(selector)
	switch sel.Length() {
	case 0:
		return "", fmt.Errorf("missing element %q", selector)
	case 1:
		return strings.TrimSpace(sel.Text()), nil
	default:
		return "", fmt.Errorf("ambiguous element %q: %d matches", selector, sel.Length())
	}
}
