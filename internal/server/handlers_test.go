package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

// fakeStore is an in-memory ResumeStore.
type fakeStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*db.Resume
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{resumes: make(map[uuid.UUID]*db.Resume)}
}

func (f *fakeStore) CreateResume(_ context.Context, userID, originalPath, originalFilename string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return uuid.Nil, fmt.Errorf("store unavailable")
	}
	id := uuid.New()
	f.resumes[id] = &db.Resume{
		ID:                 id,
		UserID:             userID,
		OriginalPath:       originalPath,
		OriginalFilename:   originalFilename,
		OptimizationStatus: db.StatusUploaded,
	}
	return id, nil
}

func (f *fakeStore) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumes[id], nil
}

func (f *fakeStore) StartOptimization(_ context.Context, id uuid.UUID, jobDescription string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.resumes[id]
	r.JobDescription = &jobDescription
	r.OptimizationStatus = db.StatusProcessing
	return nil
}

func (f *fakeStore) CompleteOptimization(_ context.Context, id uuid.UUID, optimizedPath, pdfPath string, keywordsAdded int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.resumes[id]
	r.OptimizedPath = &optimizedPath
	if pdfPath != "" {
		r.PDFPath = &pdfPath
	}
	r.KeywordsAdded = keywordsAdded
	r.OptimizationStatus = db.StatusCompleted
	return nil
}

func (f *fakeStore) FailOptimization(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes[id].OptimizationStatus = db.StatusFailed
	return nil
}

func newTestServer(t *testing.T, store ResumeStore) *Server {
	t.Helper()
	dir := t.TempDir()
	srv, err := New(Config{
		Store:     store,
		Pipeline:  pipeline.New(nil, nil),
		UploadDir: filepath.Join(dir, "uploads"),
		OutputDir: filepath.Join(dir, "optimized"),
	})
	require.NoError(t, err)
	return srv
}

// fixtureDocx returns the bytes of a minimal .docx resume.
func fixtureDocx(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>Skills</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Go | Python</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func uploadResume(t *testing.T, srv *Server, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("user_id", "user-1"))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(fixtureDocx(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

const testJobDescription = "We need engineers experienced with kubernetes, docker and terraform infrastructure automation."

func TestHandleUpload_Success(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	id, err := uuid.Parse(resp.ResumeID)
	require.NoError(t, err)

	record, err := store.GetResume(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "resume.docx", record.OriginalFilename)
	assert.FileExists(t, record.OriginalPath)
}

func TestHandleUpload_RejectsNonDocx(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	rec := uploadResume(t, srv, "resume.pdf")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only .docx files allowed")
}

func TestHandleUpload_MissingUserID(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "resume.docx")
	require.NoError(t, err)
	_, err = fw.Write(fixtureDocx(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_id")
}

func optimizeResume(srv *Server, id string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/optimize-resume/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleOptimize_FullFlow(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	require.Equal(t, http.StatusOK, rec.Code)
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	body := fmt.Sprintf(`{"user_id": "user-1", "job_description": %q}`, testJobDescription)
	rec = optimizeResume(srv, upload.ResumeID, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, upload.ResumeID, resp.ResumeID)
	assert.Greater(t, resp.KeywordsAdded, 0)

	id := uuid.MustParse(upload.ResumeID)
	record, err := store.GetResume(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCompleted, record.OptimizationStatus)
	require.NotNil(t, record.OptimizedPath)
	assert.FileExists(t, *record.OptimizedPath)
	// No render chain configured, so no PDF.
	assert.Nil(t, record.PDFPath)
}

func TestHandleOptimize_UnknownResume(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	body := fmt.Sprintf(`{"user_id": "user-1", "job_description": %q}`, testJobDescription)
	rec := optimizeResume(srv, uuid.NewString(), body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleOptimize_InvalidID(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	body := fmt.Sprintf(`{"user_id": "user-1", "job_description": %q}`, testJobDescription)
	rec := optimizeResume(srv, "not-a-uuid", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOptimize_ShortJobDescription(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	require.Equal(t, http.StatusOK, rec.Code)
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	rec = optimizeResume(srv, upload.ResumeID, `{"user_id": "user-1", "job_description": "too short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOptimize_InvalidBody(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	rec = optimizeResume(srv, upload.ResumeID, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDownload_ServesOptimizedDocx(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	body := fmt.Sprintf(`{"user_id": "user-1", "job_description": %q}`, testJobDescription)
	rec = optimizeResume(srv, upload.ResumeID, body)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/download-resume/"+upload.ResumeID, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".docx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleDownload_NotOptimizedYet(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	req := httptest.NewRequest(http.MethodGet, "/download-resume/"+upload.ResumeID, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	req := httptest.NewRequest(http.MethodGet, "/resume-status/"+upload.ResumeID, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, db.StatusUploaded, record.OptimizationStatus)
}

func TestHandleStatus_UnknownResume(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/resume-status/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHandleUpload_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleOptimize_PipelineFailureMarksRecordFailed(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, store)

	rec := uploadResume(t, srv, "resume.docx")
	var upload UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))

	// Remove the stored file so the pipeline fails reading the resume.
	id := uuid.MustParse(upload.ResumeID)
	record, err := store.GetResume(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, os.Remove(record.OriginalPath))

	body := fmt.Sprintf(`{"user_id": "user-1", "job_description": %q}`, testJobDescription)
	rec = optimizeResume(srv, upload.ResumeID, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	record, err = store.GetResume(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, db.StatusFailed, record.OptimizationStatus)
}
