package domain

import "context"

// ImageResult is one candidate from an image search: the direct image URL and
// the page it was found on.
type ImageResult struct {
	Original string `json:"original"`
	Link     string `json:"link"`
}

// OrganicResult is one organic web search hit.
type OrganicResult struct {
	Link string `json:"link"`
}

// ShoppingResult is one shopping listing hit.
type ShoppingResult struct {
	Link string `json:"link"`
}

// SearchProvider abstracts the web search backend. A provider without a
// credential reports Enabled() == false and every search returns empty
// results rather than an error.
type SearchProvider interface {
	Enabled() bool
	SearchImages(ctx context.Context, query, region string) ([]ImageResult, error)
	SearchOrganic(ctx context.Context, query, region string) ([]OrganicResult, error)
	SearchShopping(ctx context.Context, query, region string) ([]ShoppingResult, error)
}

// PageFetcher retrieves and cleans page text for a URL. It never fails: any
// fetch or parse problem degrades to an empty string.
type PageFetcher interface {
	FetchPageContent(ctx context.Context, url string) string
}

// ImageDownloader fetches image bytes for a URL, enforcing a size cap.
type ImageDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// GenerateInput is one request to a language model endpoint.
type GenerateInput struct {
	Prompt            string
	InlineImage       string // base64 image bytes, empty when no image part
	ImageMIMEType     string
	SystemInstruction string
	EnableGrounding   bool // let the model run its own web search
}

// ModelResult is the transport-level outcome of a model call. Text is only
// populated on HTTP 200; Body is the raw response body for every status.
type ModelResult struct {
	StatusCode int
	Text       string
	Body       string
}

// ModelClient is a single-endpoint language model transport. Ladder policy
// lives above it in the synthesizer; the client only reports status and text.
type ModelClient interface {
	Configured() bool
	Generate(ctx context.Context, model string, in GenerateInput) (*ModelResult, error)
}
