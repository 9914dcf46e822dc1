package usecase

import (
	"context"
	"errors"

	"github.com/datahunter/backend/internal/domain"
)

// MockSearchProvider is a mock implementation of domain.SearchProvider.
// Image results are served from a queue, one batch per call, so tests can
// script the curated-then-broadened fallback.
type MockSearchProvider struct {
	enabled         bool
	imageQueue      [][]domain.ImageResult
	organicResults  []domain.OrganicResult
	shoppingResults []domain.ShoppingResult
	imageError      error
	organicError    error
	shoppingError   error

	imageQueries    []string
	organicQueries  []string
	shoppingQueries []string
	regions         []string
}

func NewMockSearchProvider() *MockSearchProvider {
	return &MockSearchProvider{enabled: true}
}

func (m *MockSearchProvider) Enabled() bool {
	return m.enabled
}

func (m *MockSearchProvider) SearchImages(ctx context.Context, query, region string) ([]domain.ImageResult, error) {
	m.imageQueries = append(m.imageQueries, query)
	m.regions = append(m.regions, region)
	if m.imageError != nil {
		return nil, m.imageError
	}
	if len(m.imageQueue) == 0 {
		return nil, nil
	}
	batch := m.imageQueue[0]
	m.imageQueue = m.imageQueue[1:]
	return batch, nil
}

func (m *MockSearchProvider) SearchOrganic(ctx context.Context, query, region string) ([]domain.OrganicResult, error) {
	m.organicQueries = append(m.organicQueries, query)
	m.regions = append(m.regions, region)
	if m.organicError != nil {
		return nil, m.organicError
	}
	return m.organicResults, nil
}

func (m *MockSearchProvider) SearchShopping(ctx context.Context, query, region string) ([]domain.ShoppingResult, error) {
	m.shoppingQueries = append(m.shoppingQueries, query)
	m.regions = append(m.regions, region)
	if m.shoppingError != nil {
		return nil, m.shoppingError
	}
	return m.shoppingResults, nil
}

// MockImageDownloader is a mock implementation of domain.ImageDownloader
type MockImageDownloader struct {
	failURLs  map[string]bool
	data      []byte
	downloads []string
}

func NewMockImageDownloader() *MockImageDownloader {
	return &MockImageDownloader{
		failURLs: make(map[string]bool),
		data:     []byte("image-bytes"),
	}
}

func (m *MockImageDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	m.downloads = append(m.downloads, url)
	if m.failURLs[url] {
		return nil, errors.New("download failed")
	}
	return m.data, nil
}

// MockPageFetcher is a mock implementation of domain.PageFetcher
type MockPageFetcher struct {
	content string
	urls    []string
}

func NewMockPageFetcher(content string) *MockPageFetcher {
	return &MockPageFetcher{content: content}
}

func (m *MockPageFetcher) FetchPageContent(ctx context.Context, url string) string {
	m.urls = append(m.urls, url)
	if url == "" {
		return ""
	}
	return m.content
}

// modelCall records one Generate invocation for assertions
type modelCall struct {
	model string
	input domain.GenerateInput
}

// modelResponse is one scripted Generate outcome
type modelResponse struct {
	result *domain.ModelResult
	err    error
}

// MockModelClient is a mock implementation of domain.ModelClient serving
// scripted responses in order.
type MockModelClient struct {
	configured bool
	responses  []modelResponse
	calls      []modelCall
}

func NewMockModelClient(responses ...modelResponse) *MockModelClient {
	return &MockModelClient{
		configured: true,
		responses:  responses,
	}
}

func (m *MockModelClient) Configured() bool {
	return m.configured
}

func (m *MockModelClient) Generate(ctx context.Context, model string, in domain.GenerateInput) (*domain.ModelResult, error) {
	m.calls = append(m.calls, modelCall{model: model, input: in})
	if len(m.responses) == 0 {
		return &domain.ModelResult{StatusCode: 200, Text: "{}"}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.result, resp.err
}

func ok(text string) modelResponse {
	return modelResponse{result: &domain.ModelResult{StatusCode: 200, Text: text}}
}

func status(code int, body string) modelResponse {
	return modelResponse{result: &domain.ModelResult{StatusCode: code, Body: body}}
}

func transportFailure(msg string) modelResponse {
	return modelResponse{err: errors.New(msg)}
}
