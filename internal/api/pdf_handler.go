package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/pdf"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
)

// pdfFormField is the multipart form field carrying the uploaded file.
const pdfFormField = "pdf"

// base64Overhead bounds the JSON body size for base64 uploads, which
// inflate the document by 4/3 plus the data-URL prefix.
const base64Overhead = pdf.MaxFileSize / 2

// PDFHandler handles PDF upload and text extraction requests.
type PDFHandler struct {
	extractor *pdf.Extractor
	logger    *slog.Logger
}

// NewPDFHandler creates a new PDFHandler.
func NewPDFHandler(extractor *pdf.Extractor, log *slog.Logger) *PDFHandler {
	if log == nil {
		log = slog.Default()
	}

	return &PDFHandler{
		extractor: extractor,
		logger:    log.With(slog.String("component", "pdf_handler")),
	}
}

// ExtractPDF handles POST /extract-pdf requests. The document arrives
// either as a multipart upload or as a base64 JSON body; its text is
// returned for use as generation input and is not persisted.
func (h *PDFHandler) ExtractPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, pdf.MaxFileSize+base64Overhead)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.extractFromJSON(w, r)
		return
	}
	h.extractFromMultipart(w, r)
}

// extractFromMultipart reads the document from the pdf form field.
func (h *PDFHandler) extractFromMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(pdf.MaxFileSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "PDF file exceeds the 10MB limit")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "No PDF file found in request")
		return
	}

	file, header, err := r.FormFile(pdfFormField)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No PDF file found in request")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") &&
		header.Header.Get("Content-Type") != "application/pdf" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to extract text from PDF", err)
		return
	}

	h.respondExtracted(w, r, data, header.Filename)
}

// extractFromJSON reads a base64-encoded document from the request body,
// as sent by browser clients that upload via FileReader data URLs.
func (h *PDFHandler) extractFromJSON(w http.ResponseWriter, r *http.Request) {
	var req ExtractPDFRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "PDF file exceeds the 10MB limit")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "No PDF file found in request")
		return
	}
	if req.PDFData == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No PDF file found in request")
		return
	}

	data, err := pdf.DecodeBase64(req.PDFData)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid PDF data encoding")
		return
	}
	if len(data) > pdf.MaxFileSize {
		shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "PDF file exceeds the 10MB limit")
		return
	}

	h.respondExtracted(w, r, data, "base64 upload")
}

// respondExtracted runs extraction on the raw document bytes and writes
// the response.
func (h *PDFHandler) respondExtracted(w http.ResponseWriter, r *http.Request, data []byte, source string) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !pdf.IsPDF(data) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	text, fallback := h.extractor.ExtractText(r.Context(), data)

	log.Debug("PDF extraction completed",
		slog.String("source", source),
		slog.Int("size", len(data)),
		slog.Int("text_length", len(text)),
		slog.Bool("fallback", fallback))

	shared.RespondWithJSON(w, r, http.StatusOK, ExtractPDFResponse{
		Success:       true,
		ExtractedText: text,
		Fallback:      fallback,
	})
}

// TestExtractPDF handles POST /test-extract-pdf requests, returning fixed
// sample text so clients can exercise generation without an upload.
func (h *PDFHandler) TestExtractPDF(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ExtractPDFResponse{
		Success:       true,
		ExtractedText: pdf.TestContent,
	})
}
