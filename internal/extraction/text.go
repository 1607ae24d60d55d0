// Package extraction turns fetched documents into plain text for the LLM
// entity extractors. PDF and DOCX extraction live behind the TextExtractor
// interface and are provided by an external service.
package extraction

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocType identifies the source format of a fetched document.
type DocType string

// Supported document types.
const (
	DocTypeHTML  DocType = "html"
	DocTypePlain DocType = "text"
	DocTypePDF   DocType = "pdf"
	DocTypeDOCX  DocType = "docx"
)

// minExtractedLength is the threshold below which extracted text is treated
// as a parse failure (e.g. an image-only PDF).
const minExtractedLength = 10

// TextExtractor converts raw document bytes into text. Implementations may
// fail on unparseable documents.
type TextExtractor interface {
	Extract(data []byte, docType DocType) (string, error)
}

// ExtractError reports a document that could not be reduced to usable text.
type ExtractError struct {
	DocType DocType
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s document: %s: %v", e.DocType, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s document: %s", e.DocType, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// Extractor handles the formats this service extracts in-process: HTML and
// plain text. Binary formats must go through the external extraction service.
type Extractor struct{}

// NewExtractor returns the in-process text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract converts document bytes to text. Text shorter than
// minExtractedLength after cleanup is a parse failure.
func (e *Extractor) Extract(data []byte, docType DocType) (string, error) {
	var text string
	var err error

	switch docType {
	case DocTypeHTML:
		text, err = extractHTML(data)
	case DocTypePlain:
		text = string(data)
	default:
		return "", &ExtractError{DocType: docType, Message: "unsupported format, requires the external extraction service"}
	}
	if err != nil {
		return "", err
	}

	text = normalizeWhitespace(text)
	if len(text) < minExtractedLength {
		return "", &ExtractError{DocType: docType, Message: fmt.Sprintf("extracted text too short (%d chars)", len(text))}
	}
	return text, nil
}

// extractHTML strips markup and boilerplate elements and returns visible text.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractError{DocType: DocTypeHTML, Message: "invalid HTML", Cause: err}
	}

	doc.Find("script, style, noscript, nav, footer, iframe").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

var whitespaceRE = regexp.MustCompile(`[ \t]+`)
var blankLinesRE = regexp.MustCompile(`\n{3,}`)

// normalizeWhitespace collapses runs of spaces and blank lines.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRE.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLinesRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
