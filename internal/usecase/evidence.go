package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/datahunter/backend/internal/domain"
	"github.com/datahunter/backend/internal/market"
	"github.com/rs/zerolog"
)

const (
	// trustedImageSites are barcode/catalog domains whose images reliably
	// show the product for a bare GTIN query.
	trustedImageSites = "site:barcodelookup.com OR site:go-upc.com OR site:amazon.*"

	// imageDenyList keeps the broadened image search away from
	// content-aggregator and marketplace noise.
	imageDenyList = "-site:openfoodfacts.org -site:world.openfoodfacts.org -site:myfitnesspal.com -site:pinterest.* -site:ebay.*"

	// textDenyList keeps the text-source search away from open data wikis.
	textDenyList = "-site:openfoodfacts.org -site:wikipedia.org"

	// placeholderMarker flags stock "no image available" URLs.
	placeholderMarker = "placeholder"
)

// EvidenceHunter finds image and text evidence for a GTIN in a market.
// All of its failure modes are soft: no evidence is a valid outcome.
type EvidenceHunter struct {
	search        domain.SearchProvider
	downloader    domain.ImageDownloader
	maxCandidates int
	logger        zerolog.Logger
}

// NewEvidenceHunter creates an evidence hunter. maxCandidates caps how many
// image search results are attempted before giving up.
func NewEvidenceHunter(search domain.SearchProvider, downloader domain.ImageDownloader, maxCandidates int, logger zerolog.Logger) *EvidenceHunter {
	if maxCandidates <= 0 {
		maxCandidates = 5
	}

	return &EvidenceHunter{
		search:        search,
		downloader:    downloader,
		maxCandidates: maxCandidates,
		logger:        logger.With().Str("component", "evidence").Logger(),
	}
}

// FindBestImage searches for a product image: first restricted to trusted
// barcode/catalog domains, then broadened with a deny-list if that comes up
// empty. The first candidate that actually downloads wins; its originating
// page doubles as the text source. Returns nil when no usable image exists.
func (h *EvidenceHunter) FindBestImage(ctx context.Context, gtin, mkt string) *domain.ImageEvidence {
	if !h.search.Enabled() {
		return nil
	}

	region := market.RegionCode(mkt)

	query := fmt.Sprintf("%s %q", trustedImageSites, gtin)
	results, err := h.search.SearchImages(ctx, query, region)
	if err != nil {
		h.logger.Warn().Err(err).Str("gtin", gtin).Msg("trusted-domain image search failed")
	}

	if len(results) == 0 {
		broadened := fmt.Sprintf("%s %s", gtin, imageDenyList)
		results, err = h.search.SearchImages(ctx, broadened, region)
		if err != nil {
			h.logger.Warn().Err(err).Str("gtin", gtin).Msg("broadened image search failed")
		}
	}

	candidates := results
	if len(candidates) > h.maxCandidates {
		candidates = candidates[:h.maxCandidates]
	}

	for _, img := range candidates {
		if img.Original == "" || strings.Contains(img.Original, placeholderMarker) {
			continue
		}

		data, err := h.downloader.Download(ctx, img.Original)
		if err != nil {
			// Download failures are swallowed; the next candidate may work.
			h.logger.Debug().Err(err).Str("url", img.Original).Msg("image candidate failed")
			continue
		}

		return &domain.ImageEvidence{
			ImageURL:     img.Original,
			SourceURL:    img.Link,
			EncodedImage: base64.StdEncoding.EncodeToString(data),
		}
	}

	h.logger.Info().Str("gtin", gtin).Msg("no usable product image found")
	return nil
}

// FindTextSource looks for a page worth scraping: first the market's trusted
// retailers, then a plain shopping search. Returns "" when nothing is found.
func (h *EvidenceHunter) FindTextSource(ctx context.Context, gtin, mkt string) string {
	if !h.search.Enabled() {
		return ""
	}

	region := market.RegionCode(mkt)

	if sites, ok := market.RetailerSites(mkt); ok {
		query := fmt.Sprintf("%s %s %s", sites, gtin, textDenyList)
		results, err := h.search.SearchOrganic(ctx, query, region)
		if err != nil {
			h.logger.Warn().Err(err).Str("gtin", gtin).Msg("retailer text search failed")
		}
		if len(results) > 0 {
			return results[0].Link
		}
	}

	results, err := h.search.SearchShopping(ctx, gtin, region)
	if err != nil {
		h.logger.Warn().Err(err).Str("gtin", gtin).Msg("shopping search failed")
	}
	if len(results) > 0 {
		return results[0].Link
	}

	return ""
}
