package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestFetcher() *PageFetcher {
	return NewPageFetcher(5*time.Second, "test-agent", 4000, 2000, zerolog.Nop())
}

func TestFetchPageContent_StripsBoilerplate(t *testing.T) {
	page := `<html><head>
		<script>var tracking = true;</script>
		<style>body { color: red; }</style>
	</head><body>
		<nav>Home | Products | About</nav>
		<h1>Chocolate Cookies 500g</h1>
		<p>Ingredients: flour, sugar, cocoa</p>
		<iframe src="https://ads.example.com"></iframe>
		<footer>Copyright 2024</footer>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(page))
	}))
	defer server.Close()

	content := newTestFetcher().FetchPageContent(context.Background(), server.URL)

	assert.Contains(t, content, "VISUAL TEXT: ")
	assert.Contains(t, content, "HIDDEN JSON-LD: ")
	assert.Contains(t, content, "Chocolate Cookies 500g")
	assert.Contains(t, content, "Ingredients: flour, sugar, cocoa")

	// Stripped elements must not leak into the visible text
	assert.NotContains(t, content, "tracking")
	assert.NotContains(t, content, "color: red")
	assert.NotContains(t, content, "Home | Products")
	assert.NotContains(t, content, "Copyright 2024")
}

func TestFetchPageContent_ExtractsJSONLD(t *testing.T) {
	page := `<html><body>
		<h1>Product</h1>
		<script type="application/ld+json">{"@type": "Product", "name": "Cookies", "gtin13": "5000112345678"}</script>
		<script>ignore.me();</script>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	content := newTestFetcher().FetchPageContent(context.Background(), server.URL)

	// JSON-LD is collected even though all scripts are stripped from the
	// visible segment
	assert.Contains(t, content, `"gtin13": "5000112345678"`)
	assert.NotContains(t, content, "ignore.me")
}

func TestFetchPageContent_TruncatesVisibleText(t *testing.T) {
	long := strings.Repeat("word ", 2000) // ~10000 chars of body text

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	fetcher := NewPageFetcher(5*time.Second, "ua", 100, 50, zerolog.Nop())
	content := fetcher.FetchPageContent(context.Background(), server.URL)

	visible := strings.TrimPrefix(strings.Split(content, "\n\n")[0], "VISUAL TEXT: ")
	assert.LessOrEqual(t, len([]rune(visible)), 100)
}

func TestFetchPageContent_BlankURL(t *testing.T) {
	assert.Equal(t, "", newTestFetcher().FetchPageContent(context.Background(), ""))
	assert.Equal(t, "", newTestFetcher().FetchPageContent(context.Background(), "   "))
}

func TestFetchPageContent_FetchErrorYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	content := newTestFetcher().FetchPageContent(context.Background(), server.URL)

	assert.Equal(t, "", content)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \n\t b \r\n  c  "))
	assert.Equal(t, "", collapseWhitespace("   \n  "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abcdef", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	// Multi-byte characters are never split
	assert.Equal(t, "äö", truncateRunes("äöü", 2))
	// Non-positive limit means unlimited
	assert.Equal(t, "abcdef", truncateRunes("abcdef", 0))
}
