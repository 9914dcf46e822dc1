package usecase

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/datahunter/backend/internal/domain"
	"github.com/rs/zerolog"
)

// maxErrorBodyBytes caps how much of an upstream error body is carried into
// a failure detail.
const maxErrorBodyBytes = 400

// transientStatuses are model failures worth advancing the ladder for:
// quota, availability, and routing problems that another endpoint may not
// share.
var transientStatuses = map[int]bool{
	http.StatusForbidden:           true,
	http.StatusNotFound:            true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
}

var codeFenceOpenRegex = regexp.MustCompile("(?i)```json")

// SynthesisInput is one synthesis task. Image may be nil; Grounded selects
// the model's own search instead of supplied evidence.
type SynthesisInput struct {
	Query       domain.ProductQuery
	PageContent string
	Image       *domain.ImageEvidence
	Grounded    bool
}

// Synthesizer builds the prompt and walks the model ladder until one
// endpoint produces usable text.
type Synthesizer struct {
	model  domain.ModelClient
	models []string
	logger zerolog.Logger
}

// NewSynthesizer creates a synthesizer over the given model ladder, ordered
// most to least capable.
func NewSynthesizer(model domain.ModelClient, models []string, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		model:  model,
		models: models,
		logger: logger.With().Str("component", "synthesizer").Logger(),
	}
}

// Configured reports whether the underlying model client has a credential.
func (s *Synthesizer) Configured() bool {
	return s.model.Configured()
}

// Synthesize runs the ladder for one input and returns the cleaned response
// text, or a typed failure. Ladder policy per status:
//
//	200 + text    -> done
//	200 + empty   -> next model
//	400           -> abort (the orchestrator retries without the image)
//	403/404/429,
//	500/502/503   -> next model
//	other status  -> abort
//	transport err -> abort
func (s *Synthesizer) Synthesize(ctx context.Context, in SynthesisInput) (string, *domain.SynthesisError) {
	req := s.buildInput(in)

	var lastStatus int

	for _, model := range s.models {
		result, err := s.model.Generate(ctx, model, req)
		if err != nil {
			return "", &domain.SynthesisError{
				Kind:   domain.KindTransport,
				Detail: err.Error(),
			}
		}

		switch {
		case result.StatusCode == http.StatusOK:
			text := strings.TrimSpace(result.Text)
			if text == "" {
				s.logger.Warn().Str("model", model).Msg("model returned 200 with empty text")
				lastStatus = result.StatusCode
				continue
			}
			return stripCodeFences(text), nil

		case result.StatusCode == http.StatusBadRequest:
			s.logger.Warn().Str("model", model).Msg("model rejected the request")
			return "", &domain.SynthesisError{
				Kind:   domain.KindBadRequest,
				Detail: "API 400 (Bad request).",
				Body:   truncateBody(result.Body),
			}

		case transientStatuses[result.StatusCode]:
			s.logger.Warn().Str("model", model).Int("status", result.StatusCode).Msg("model unavailable, trying next in ladder")
			lastStatus = result.StatusCode
			continue

		default:
			return "", &domain.SynthesisError{
				Kind:   domain.KindUpstreamOther,
				Detail: fmt.Sprintf("API %d:", result.StatusCode),
				Body:   truncateBody(result.Body),
			}
		}
	}

	return "", &domain.SynthesisError{
		Kind:   domain.KindExhausted,
		Detail: fmt.Sprintf("All models failed. Last status: %d", lastStatus),
	}
}

// buildInput assembles the model request for an input: the right prompt
// variant, the optional image part, and the grounding flag.
func (s *Synthesizer) buildInput(in SynthesisInput) domain.GenerateInput {
	if in.Grounded {
		return domain.GenerateInput{
			Prompt:          buildGroundedPrompt(in.Query),
			EnableGrounding: true,
		}
	}

	req := domain.GenerateInput{
		Prompt: buildEvidencePrompt(in.Query, in.PageContent, in.Image != nil),
	}
	if in.Image != nil {
		req.InlineImage = in.Image.EncodedImage
		req.ImageMIMEType = "image/jpeg"
	}
	return req
}

// stripCodeFences removes markdown code-fence markers so fenced JSON parses
// cleanly.
func stripCodeFences(text string) string {
	text = codeFenceOpenRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// truncateBody caps an upstream response body for inclusion in a status
// string.
func truncateBody(body string) string {
	if len(body) <= maxErrorBodyBytes {
		return body
	}
	return body[:maxErrorBodyBytes]
}
