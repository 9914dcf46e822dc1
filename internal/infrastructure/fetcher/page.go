// Package fetcher retrieves raw evidence from the web: cleaned page text for
// the synthesizer prompt, and size-capped image downloads for the image hunt.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	visualTextLabel = "VISUAL TEXT: "
	jsonLDLabel     = "HIDDEN JSON-LD: "
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// PageFetcher downloads a page and reduces it to the text the model can use:
// visible text with boilerplate elements stripped, plus the content of any
// JSON-LD blocks (retailers hide the good structured data there).
type PageFetcher struct {
	httpClient       *http.Client
	userAgent        string
	visibleTextLimit int
	jsonLDBlockLimit int
	logger           zerolog.Logger
}

// NewPageFetcher creates a page fetcher
func NewPageFetcher(timeout time.Duration, userAgent string, visibleTextLimit, jsonLDBlockLimit int, logger zerolog.Logger) *PageFetcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:        userAgent,
		visibleTextLimit: visibleTextLimit,
		jsonLDBlockLimit: jsonLDBlockLimit,
		logger:           logger.With().Str("component", "fetcher").Logger(),
	}
}

// FetchPageContent returns the labeled text segments for a URL. It never
// fails: a blank URL, a fetch error, or a parse error all yield "".
func (f *PageFetcher) FetchPageContent(ctx context.Context, pageURL string) string {
	if strings.TrimSpace(pageURL) == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", pageURL).Msg("invalid page URL")
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", pageURL).Msg("page fetch failed")
		return ""
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", pageURL).Msg("page parse failed")
		return ""
	}

	// Collect JSON-LD before stripping script elements from the document.
	var jsonLD strings.Builder
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		block := truncateRunes(collapseWhitespace(s.Text()), f.jsonLDBlockLimit)
		if block != "" {
			jsonLD.WriteString(" ")
			jsonLD.WriteString(block)
		}
	})

	doc.Find("script, style, nav, footer, iframe").Remove()
	visualText := truncateRunes(collapseWhitespace(doc.Text()), f.visibleTextLimit)

	return fmt.Sprintf("%s%s\n\n%s%s", visualTextLabel, visualText, jsonLDLabel, jsonLD.String())
}

// collapseWhitespace folds any whitespace run into a single space and trims.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// truncateRunes caps a string at n runes without splitting a multi-byte
// character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
