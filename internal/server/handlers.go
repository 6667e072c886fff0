package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/rendering"
)

// maxUploadBytes bounds the multipart resume upload.
const maxUploadBytes = 10 << 20

// UploadResponse is returned after a successful resume upload.
type UploadResponse struct {
	ResumeID string `json:"resume_id"`
	Message  string `json:"message"`
}

// OptimizeRequest is the body of POST /optimize-resume/{id}.
type OptimizeRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required,min=50"`
}

// Validate validates the OptimizeRequest using the validator.
func (r *OptimizeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// OptimizeResponse is returned after a completed optimization run.
type OptimizeResponse struct {
	ResumeID         string   `json:"resume_id"`
	KeywordsAdded    int      `json:"keywords_added"`
	InsertedKeywords []string `json:"inserted_keywords,omitempty"`
	Message          string   `json:"message"`
}

// handleUpload stores an uploaded .docx resume and creates its record.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing user_id")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".docx") {
		s.errorResponse(w, http.StatusBadRequest, "Only .docx files allowed")
		return
	}

	path := filepath.Join(s.uploadDir, uuid.NewString()+".docx")
	dst, err := os.Create(path)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	dst.Close()

	id, err := s.store.CreateResume(r.Context(), userID, path, header.Filename)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create resume record: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		ResumeID: id.String(),
		Message:  "Uploaded successfully.",
	})
}

// handleOptimize runs the optimization pipeline for an uploaded resume.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return
	}

	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if resume == nil {
		err := &ErrResumeNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.StartOptimization(r.Context(), id, req.JobDescription); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status: "+err.Error())
		return
	}

	optimizedPath := filepath.Join(s.outputDir, id.String()+".docx")
	result, err := s.pipeline.Run(r.Context(), pipeline.Options{
		ResumePath:     resume.OriginalPath,
		JobDescription: req.JobDescription,
		OutputPath:     optimizedPath,
	})
	if err != nil {
		if failErr := s.store.FailOptimization(r.Context(), id); failErr != nil {
			log.Printf("Failed to mark resume %s failed: %v", id, failErr)
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	pdfPath := filepath.Join(s.outputDir, id.String()+".pdf")
	if len(s.renderers) > 0 {
		if err := s.renderers.Render(r.Context(), rendering.RenderRequest{
			Document: result.Document,
			DocxPath: optimizedPath,
			PDFPath:  pdfPath,
		}); err != nil {
			if failErr := s.store.FailOptimization(r.Context(), id); failErr != nil {
				log.Printf("Failed to mark resume %s failed: %v", id, failErr)
			}
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		pdfPath = ""
	}

	if err := s.store.CompleteOptimization(r.Context(), id, optimizedPath, pdfPath, result.KeywordsAdded); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, OptimizeResponse{
		ResumeID:         id.String(),
		KeywordsAdded:    result.KeywordsAdded,
		InsertedKeywords: result.InsertedKeywords,
		Message:          "Resume optimized",
	})
}

// handleDownload serves the rendered PDF, falling back to the rebuilt .docx
// when no PDF was produced.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if resume == nil {
		notFound := &ErrResumeNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	path, name := downloadTarget(resume.PDFPath, resume.OptimizedPath, id)
	if path == "" {
		notReady := &ErrNotOptimized{ID: id}
		s.errorResponse(w, HTTPStatus(notReady), notReady.Error())
		return
	}
	if _, err := os.Stat(path); err != nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("optimized file missing at %s", path))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func downloadTarget(pdfPath, optimizedPath *string, id uuid.UUID) (path, name string) {
	if pdfPath != nil && *pdfPath != "" {
		return *pdfPath, "optimized_resume_" + id.String() + ".pdf"
	}
	if optimizedPath != nil && *optimizedPath != "" {
		return *optimizedPath, "optimized_resume_" + id.String() + ".docx"
	}
	return "", ""
}

// handleStatus returns the lifecycle record for a resume.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if resume == nil {
		notFound := &ErrResumeNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}
