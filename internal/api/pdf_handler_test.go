package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardforge/cardforge-api/internal/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestExtractPDFMalformedDocumentFallsBack(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	body, contentType := multipartUpload(t, "pdf", "notes.pdf", []byte("%PDF-1.4 truncated"))
	r := httptest.NewRequest(http.MethodPost, "/extract-pdf", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractPDFResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, pdf.FallbackContent, resp.ExtractedText)
	assert.True(t, resp.Fallback)
}

func TestExtractPDFBase64Body(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 truncated"))
	body, err := json.Marshal(ExtractPDFRequest{
		PDFData: "data:application/pdf;base64," + encoded,
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/extract-pdf", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractPDFResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, pdf.FallbackContent, resp.ExtractedText)
	assert.True(t, resp.Fallback)
}

func TestExtractPDFBase64RejectsBadEncoding(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	r := httptest.NewRequest(http.MethodPost, "/extract-pdf",
		strings.NewReader(`{"pdfData":"not&base64!"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid PDF data encoding")
}

func TestExtractPDFBase64RejectsNonPDF(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("plain text, no header"))
	r := httptest.NewRequest(http.MethodPost, "/extract-pdf",
		strings.NewReader(`{"pdfData":"`+encoded+`"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only PDF files are allowed")
}

func TestExtractPDFMissingFile(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	r := httptest.NewRequest(http.MethodPost, "/extract-pdf", bytes.NewReader(nil))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No PDF file found in request")
}

func TestExtractPDFRejectsNonPDF(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	body, contentType := multipartUpload(t, "pdf", "image.png", []byte("\x89PNG"))
	r := httptest.NewRequest(http.MethodPost, "/extract-pdf", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only PDF files are allowed")
}

func TestExtractPDFRejectsSpoofedExtension(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	// Right filename, wrong content: the magic byte check catches it.
	body, contentType := multipartUpload(t, "pdf", "sneaky.pdf", []byte("not a pdf at all"))
	r := httptest.NewRequest(http.MethodPost, "/extract-pdf", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ExtractPDF(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTestExtractPDF(t *testing.T) {
	handler := NewPDFHandler(pdf.NewExtractor(nil), nil)

	r := httptest.NewRequest(http.MethodPost, "/test-extract-pdf", nil)
	w := httptest.NewRecorder()
	handler.TestExtractPDF(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractPDFResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, pdf.TestContent, resp.ExtractedText)
}
