package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)

	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadRejectsMissingFile(t *testing.T) {
	in := UploadHttp{maxUploadBytes: 1 << 20, keyPrefix: "uploads"}

	body, contentType := multipartBody(t, "attachment", "logo.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	in.create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","data":{"file":"required"}}`, w.Body.String())
}

func TestUploadRejectsUnsupportedImageType(t *testing.T) {
	in := UploadHttp{maxUploadBytes: 1 << 20, keyPrefix: "uploads"}

	body, contentType := multipartBody(t, "file", "resume.pdf", []byte("%PDF-"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	in.create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","data":{"file":"unsupported image type"}}`, w.Body.String())
}

func TestUploadRejectsOversizedBody(t *testing.T) {
	in := UploadHttp{maxUploadBytes: 16, keyPrefix: "uploads"}

	body, contentType := multipartBody(t, "file", "logo.png", bytes.Repeat([]byte("a"), 1024))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	in.create(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
