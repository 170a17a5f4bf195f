package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "Bookshelf/1.0 (https://github.com/mrlokans/bookshelf)"

// ErrNoMatch is returned when a search yields no candidate book.
var ErrNoMatch = errors.New("no matching book found")

// BookMetadata contains book information from an external catalog.
type BookMetadata struct {
	Title          string `json:"title,omitempty"`
	Author         string `json:"author,omitempty"`
	CoverURL       string `json:"cover_url,omitempty"`
	PublishYear    int    `json:"publish_year,omitempty"`
	PageCount      int    `json:"page_count,omitempty"`
	OpenLibraryKey string `json:"open_library_key,omitempty"`
}

// OpenLibraryClient fetches book metadata from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	limiter    *rate.Limiter
	maxRetries int
}

// NewOpenLibraryClient creates a client for the API at baseURL, limited to
// one request per second. Throttled and failed requests are retried twice.
func NewOpenLibraryClient(baseURL string, timeout time.Duration) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		coversURL:  "https://covers.openlibrary.org",
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		maxRetries: 2,
	}
}

// SearchByTitle looks up a book by title and optional author, returning the
// best match. Page count and year missing from the search document are
// filled from the cover edition when it has them.
func (c *OpenLibraryClient) SearchByTitle(ctx context.Context, title, author string) (*BookMetadata, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	query := title
	if author != "" {
		query = fmt.Sprintf("%s %s", title, author)
	}
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=5", c.baseURL, url.QueryEscape(query))

	var searchResult openLibrarySearchResult
	if err := c.getJSON(ctx, searchURL, &searchResult); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	if len(searchResult.Docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, title)
	}

	bestDoc := c.findBestMatch(searchResult.Docs, title, author)
	metadata := c.convertSearchDoc(bestDoc)

	if (metadata.PageCount == 0 || metadata.PublishYear == 0) && bestDoc.CoverEditionKey != "" {
		var edition openLibraryEdition
		editionURL := fmt.Sprintf("%s/books/%s.json", c.baseURL, bestDoc.CoverEditionKey)
		if err := c.getJSON(ctx, editionURL, &edition); err == nil {
			enrichFromEdition(metadata, &edition)
		}
	}

	return metadata, nil
}

// getJSON decodes the response at target into into. 429 and 5xx responses
// and transport errors are retried with exponential backoff.
func (c *OpenLibraryClient) getJSON(ctx context.Context, target string, into any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retry, err := c.fetchJSON(ctx, target, into)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *OpenLibraryClient) fetchJSON(ctx context.Context, target string, into any) (retry bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retryable, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

func (c *OpenLibraryClient) findBestMatch(docs []openLibrarySearchDoc, title, author string) *openLibrarySearchDoc {
	titleLower := strings.ToLower(title)
	authorLower := strings.ToLower(author)

	var bestMatch *openLibrarySearchDoc
	bestScore := -1

	for i := range docs {
		doc := &docs[i]
		score := 0

		if strings.ToLower(doc.Title) == titleLower {
			score += 10
		} else if strings.Contains(strings.ToLower(doc.Title), titleLower) {
			score += 5
		}

		if author != "" {
			for _, docAuthor := range doc.AuthorName {
				if strings.ToLower(docAuthor) == authorLower {
					score += 10
					break
				} else if strings.Contains(strings.ToLower(docAuthor), authorLower) {
					score += 5
					break
				}
			}
		}

		if doc.NumberOfPagesMedian > 0 {
			score += 2
		}
		if doc.CoverI != 0 {
			score++
		}

		if score > bestScore {
			bestScore = score
			bestMatch = doc
		}
	}

	return bestMatch
}

func (c *OpenLibraryClient) convertSearchDoc(doc *openLibrarySearchDoc) *BookMetadata {
	metadata := &BookMetadata{
		Title:          doc.Title,
		PublishYear:    doc.FirstPublishYear,
		PageCount:      doc.NumberOfPagesMedian,
		OpenLibraryKey: doc.Key,
	}

	if len(doc.AuthorName) > 0 {
		metadata.Author = doc.AuthorName[0]
	}

	if doc.CoverI != 0 {
		metadata.CoverURL = fmt.Sprintf("%s/b/id/%d-L.jpg", c.coversURL, doc.CoverI)
	} else if len(doc.ISBN) > 0 {
		metadata.CoverURL = fmt.Sprintf("%s/b/isbn/%s-L.jpg", c.coversURL, doc.ISBN[0])
	}

	return metadata
}

func enrichFromEdition(metadata *BookMetadata, edition *openLibraryEdition) {
	if metadata.PageCount == 0 && edition.NumberOfPages > 0 {
		metadata.PageCount = edition.NumberOfPages
	}
	if metadata.PublishYear == 0 && edition.PublishDate != "" {
		metadata.PublishYear = extractYear(edition.PublishDate)
	}
}

// extractYear tries to extract a 4-digit year from a date string.
func extractYear(dateStr string) int {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) < 4 {
		return 0
	}

	formats := []string{
		"2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2006-01-02",
		"January 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.Year()
		}
	}

	// Last resort: find 4 consecutive digits
	for i := 0; i <= len(dateStr)-4; i++ {
		if dateStr[i] >= '0' && dateStr[i] <= '9' {
			var year int
			if _, err := fmt.Sscanf(dateStr[i:i+4], "%d", &year); err == nil && year > 1000 && year < 3000 {
				return year
			}
		}
	}

	return 0
}

// OpenLibrary API response types (internal)

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    int      `json:"first_publish_year"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	ISBN                []string `json:"isbn"`
	CoverI              int      `json:"cover_i"`
	CoverEditionKey     string   `json:"cover_edition_key"`
}

type openLibraryEdition struct {
	Key           string `json:"key"`
	Title         string `json:"title"`
	PublishDate   string `json:"publish_date"`
	NumberOfPages int    `json:"number_of_pages"`
}
