// Package pdf extracts plain text from uploaded PDF documents for
// flashcard generation. Extraction never fails outright: unreadable
// documents degrade to sample study content so the generation flow
// stays usable.
package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"

	ledongpdf "github.com/ledongthuc/pdf"

	"github.com/cardforge/cardforge-api/internal/platform/logger"
)

// MaxFileSize is the largest accepted upload, in bytes.
const MaxFileSize = 10 << 20 // 10MB

// pdfMagic is the file header every PDF starts with.
const pdfMagic = "%PDF-"

// FallbackContent is returned when text extraction fails, so users can
// still exercise flashcard generation after an upload.
const FallbackContent = `PDF Upload Successful - Flashcard Generation Ready

Your PDF has been successfully uploaded! While we're working to improve our PDF text extraction, you can still generate flashcards using this sample educational content.

**JavaScript Fundamentals**
JavaScript is a dynamic programming language used for web development. Key concepts include:
- Variables and data types (let, const, var)
- Functions and arrow functions
- Objects and arrays
- Async/await and promises
- DOM manipulation and event handling

**React Framework**
React is a popular JavaScript library for building user interfaces:
- Components are reusable pieces of UI
- Props pass data between components
- State manages component data
- Hooks provide functionality in functional components
- Virtual DOM improves performance

**API Development**
REST APIs follow standard HTTP methods:
- GET retrieves data
- POST creates new resources
- PUT updates existing resources
- DELETE removes resources
- Status codes indicate request results

**Database Concepts**
Databases store and organize data:
- SQL databases use structured tables
- NoSQL databases offer flexible schemas
- Indexing improves query performance
- Transactions ensure data consistency
- Relationships connect related data

**Authentication & Security**
Secure applications protect user data:
- JWT tokens manage user sessions
- Password hashing protects credentials
- HTTPS encrypts data in transit
- Input validation prevents attacks
- Rate limiting prevents abuse

**Modern Development Practices**
Best practices improve code quality:
- Version control with Git
- Testing ensures reliability
- Code reviews improve quality
- Documentation aids understanding
- Continuous integration automates deployment

This sample content demonstrates the types of flashcards that can be generated from your educational materials.`

// TestContent is served by the test-extraction endpoint so clients can
// exercise generation without a real document.
const TestContent = "This is sample text from a PDF extraction test. This text would normally be " +
	"extracted from an uploaded PDF file. You can use this to test the flashcard generation " +
	"without needing to successfully parse a real PDF."

// Extractor extracts text from PDF documents.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		logger: log.With(slog.String("component", "pdf_extractor")),
	}
}

// IsPDF reports whether the data carries a PDF file header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(pdfMagic))
}

// DecodeBase64 decodes a base64 document payload, accepting both raw
// base64 and the data-URL form browsers produce
// ("data:application/pdf;base64,...").
func DecodeBase64(payload string) ([]byte, error) {
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
}

// ExtractText returns the plain text of the document. Malformed or
// image-only documents yield FallbackContent rather than an error; the
// second return reports whether the fallback was used.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (string, bool) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	text, err := extractPlainText(data)
	if err != nil {
		log.Warn("PDF text extraction failed, using fallback content",
			slog.String("error", err.Error()),
			slog.Int("size", len(data)))
		return FallbackContent, true
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn("PDF contained no extractable text, using fallback content",
			slog.Int("size", len(data)))
		return FallbackContent, true
	}

	log.Debug("PDF text extracted",
		slog.Int("size", len(data)),
		slog.Int("text_length", len(text)))
	return text, false
}

// extractPlainText runs the PDF parser. The parser panics on some
// malformed documents, so panics are converted to errors here.
func extractPlainText(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &parsePanicError{value: p}
		}
	}()

	reader, err := ledongpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parsePanicError wraps a recovered parser panic as an error.
type parsePanicError struct {
	value interface{}
}

func (e *parsePanicError) Error() string {
	return "pdf parser panic"
}
