package pegadaian

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"hargaemas/internal/config"
	"hargaemas/internal/logger"
)

var digitPattern = regexp.MustCompile(`\d+`)

// Extractor pulls price strings out of a saved page snapshot. When too few
// are found it diagnoses whether the render was unfinished or the page
// layout changed, which is the difference between waiting longer and
// fixing the extraction pattern.
type Extractor struct {
	marker     *regexp.Regexp
	expected   int
	indicators []string
}

func NewExtractor(cfg config.PegadaianConfig) *Extractor {
	return &Extractor{
		// the marker token must be followed by whitespace, so "Rpx" in a
		// script blob does not count as a price
		marker:     regexp.MustCompile(regexp.QuoteMeta(cfg.PriceMarker) + `\s`),
		expected:   cfg.ExpectedPrices,
		indicators: cfg.LoadingIndicators,
	}
}

// Extract parses the artifact and returns every marker-bearing text node
// reduced to its bare digits, thousands separators removed. Fewer matches
// than expected yields ErrStillLoading or ErrStructureChanged.
func (e *Extractor) Extract(artifactPath string) ([]string, error) {
	raw, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", artifactPath, err)
	}

	var prices []string
	for _, root := range doc.Nodes {
		e.collectPrices(root, &prices)
	}

	if len(prices) < e.expected {
		return nil, e.classify(string(raw), len(prices))
	}
	logger.Infof("extracted %d prices: %v", len(prices), prices[:e.expected])
	return prices, nil
}

func (e *Extractor) collectPrices(n *html.Node, out *[]string) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode && e.marker.MatchString(n.Data) {
		*out = append(*out, strings.Join(digitPattern.FindAllString(n.Data, -1), ""))
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		e.collectPrices(child, out)
	}
}

// classify decides why too few prices were found. A loading indicator in
// the raw markup points at an unfinished render; anything else means the
// layout no longer matches what the extraction pattern expects.
func (e *Extractor) classify(markup string, found int) error {
	lowered := strings.ToLower(markup)
	for _, indicator := range e.indicators {
		if strings.Contains(lowered, strings.ToLower(indicator)) {
			logger.Warnf("found %d of %d expected prices with %q in the markup, render likely unfinished", found, e.expected, indicator)
			return fmt.Errorf("%w: markup contains %q", ErrStillLoading, indicator)
		}
	}
	logger.Errorf("found %d of %d expected prices and no loading indicator, page layout may have changed", found, e.expected)
	return fmt.Errorf("%w: found %d of %d expected prices", ErrStructureChanged, found, e.expected)
}
