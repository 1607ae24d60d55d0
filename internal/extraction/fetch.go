package extraction

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

// maxDocumentSize caps resume/JD downloads at 20 MB.
const maxDocumentSize = 20 << 20

// Fetcher downloads candidate/job documents by URL.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a document fetcher with a sane default timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch downloads the document at url and infers its type from the response
// Content-Type, falling back to the URL extension.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, DocType, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid document URL %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch document %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch document %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document body: %w", err)
	}

	return data, inferDocType(resp.Header.Get("Content-Type"), url), nil
}

// inferDocType maps a Content-Type header (then the URL extension) to a DocType.
func inferDocType(contentType, url string) DocType {
	switch {
	case strings.Contains(contentType, "text/html"):
		return DocTypeHTML
	case strings.Contains(contentType, "application/pdf"):
		return DocTypePDF
	case strings.Contains(contentType, "officedocument.wordprocessingml"):
		return DocTypeDOCX
	case strings.Contains(contentType, "text/plain"):
		return DocTypePlain
	}

	switch strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0])) {
	case ".html", ".htm":
		return DocTypeHTML
	case ".pdf":
		return DocTypePDF
	case ".docx", ".doc":
		return DocTypeDOCX
	default:
		return DocTypePlain
	}
}
