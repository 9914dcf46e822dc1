package usecase

import (
	"context"

	"github.com/datahunter/backend/internal/domain"
	"github.com/rs/zerolog"
)

// synthesisState tracks the image-retry state machine. The only defined
// transition is WithImage -> TextOnly, taken when the model rejects the
// request (HTTP 400), which in practice means the image payload was the
// problem.
type synthesisState int

const (
	synthWithImage synthesisState = iota
	synthTextOnly
	synthFailed
)

// HuntService is the evidence-hunt pipeline: search for an image, derive a
// text source, scrape it, and synthesize a record from the combined
// evidence.
type HuntService struct {
	hunter      *EvidenceHunter
	fetcher     domain.PageFetcher
	synthesizer *Synthesizer
	logger      zerolog.Logger
}

// NewHuntService creates the evidence-hunt pipeline service
func NewHuntService(hunter *EvidenceHunter, fetcher domain.PageFetcher, synthesizer *Synthesizer, logger zerolog.Logger) *HuntService {
	return &HuntService{
		hunter:      hunter,
		fetcher:     fetcher,
		synthesizer: synthesizer,
		logger:      logger.With().Str("component", "hunt").Logger(),
	}
}

// ProcessProduct resolves one query into a complete ProductRecord. Every
// path returns a record with all product fields present; failures carry a
// human-readable status and whatever image/source URLs were discovered.
func (s *HuntService) ProcessProduct(ctx context.Context, query domain.ProductQuery) domain.ProductRecord {
	if !s.synthesizer.Configured() {
		return domain.EmptyRecord(query, domain.ErrMissingGeminiKey.Error(), "", "")
	}

	image := s.hunter.FindBestImage(ctx, query.GTIN, query.Market)

	var imageURL, sourceURL string
	if image != nil {
		imageURL = image.ImageURL
		sourceURL = image.SourceURL
	} else {
		sourceURL = s.hunter.FindTextSource(ctx, query.GTIN, query.Market)
	}

	pageContent := s.fetcher.FetchPageContent(ctx, sourceURL)

	var text string
	var synthErr *domain.SynthesisError

	state := synthWithImage
	for state != synthFailed {
		attempt := SynthesisInput{
			Query:       query,
			PageContent: pageContent,
			Image:       image,
		}
		if state == synthTextOnly {
			attempt.Image = nil
		}

		text, synthErr = s.synthesizer.Synthesize(ctx, attempt)
		if synthErr == nil {
			break
		}

		if state == synthWithImage && synthErr.Kind == domain.KindBadRequest {
			s.logger.Warn().Str("gtin", query.GTIN).Msg("image rejected or bad request, retrying text only")
			state = synthTextOnly
			continue
		}

		state = synthFailed
	}

	if synthErr != nil {
		s.logger.Error().
			Str("gtin", query.GTIN).
			Str("kind", synthErr.Kind.String()).
			Msg("synthesis failed")
		return domain.EmptyRecord(query, synthErr.Status(), imageURL, sourceURL)
	}

	fields, err := ParseStrictJSON(text)
	if err != nil {
		parseErr := &domain.SynthesisError{
			Kind:   domain.KindParse,
			Detail: "Invalid model output: " + err.Error(),
		}
		s.logger.Error().Err(err).Str("gtin", query.GTIN).Msg("model output rejected")
		return domain.EmptyRecord(query, parseErr.Status(), imageURL, sourceURL)
	}

	return domain.ProductRecord{
		Found:         true,
		Status:        "Found",
		GTIN:          query.GTIN,
		Market:        query.Market,
		ImageURL:      imageURL,
		SourceURL:     sourceURL,
		ProductFields: fields,
	}
}
