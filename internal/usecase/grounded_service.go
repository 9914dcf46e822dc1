package usecase

import (
	"context"

	"github.com/datahunter/backend/internal/domain"
	"github.com/rs/zerolog"
)

// GroundedService is the search-grounded pipeline: no evidence gathering of
// its own, one model call with the grounding tool enabled, and a markdown
// table answer.
type GroundedService struct {
	synthesizer *Synthesizer
	logger      zerolog.Logger
}

// NewGroundedService creates the grounded pipeline service
func NewGroundedService(synthesizer *Synthesizer, logger zerolog.Logger) *GroundedService {
	return &GroundedService{
		synthesizer: synthesizer,
		logger:      logger.With().Str("component", "grounded").Logger(),
	}
}

// ProcessProduct resolves one query via the model's own grounded search.
func (s *GroundedService) ProcessProduct(ctx context.Context, query domain.ProductQuery) domain.ProductRecord {
	if !s.synthesizer.Configured() {
		return domain.EmptyRecord(query, domain.ErrMissingGeminiKey.Error(), "", "")
	}

	text, synthErr := s.synthesizer.Synthesize(ctx, SynthesisInput{
		Query:    query,
		Grounded: true,
	})
	if synthErr != nil {
		s.logger.Error().
			Str("gtin", query.GTIN).
			Str("kind", synthErr.Kind.String()).
			Msg("grounded synthesis failed")
		return domain.EmptyRecord(query, synthErr.Status(), "", "")
	}

	table := ParseMarkdownTable(text, query.GTIN)
	if !table.Found {
		s.logger.Info().Str("gtin", query.GTIN).Msg("grounded response carried no table row")
		return domain.ProductRecord{
			Found:         false,
			Status:        table.Status,
			GTIN:          query.GTIN,
			Market:        query.Market,
			ProductFields: table.Fields,
		}
	}

	return domain.ProductRecord{
		Found:         true,
		Status:        table.Status,
		GTIN:          query.GTIN,
		Market:        query.Market,
		SourceURL:     table.Source,
		ProductFields: table.Fields,
	}
}
