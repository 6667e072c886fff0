package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Optimization status values for a resume record.
const (
	StatusPending    = "pending"
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Resume represents one uploaded resume and its optimization lifecycle.
type Resume struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             string     `json:"user_id"`
	OriginalPath       string     `json:"original_path"`
	OriginalFilename   string     `json:"original_filename,omitempty"`
	OptimizedPath      *string    `json:"optimized_path,omitempty"`
	PDFPath            *string    `json:"pdf_path,omitempty"`
	JobDescription     *string    `json:"job_description,omitempty"`
	OptimizationStatus string     `json:"optimization_status"`
	KeywordsAdded      int        `json:"keywords_added"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// CreateResume inserts an uploaded resume record and returns its ID.
func (db *DB) CreateResume(ctx context.Context, userID, originalPath, originalFilename string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, original_path, original_filename, optimization_status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, userID, originalPath, originalFilename, StatusUploaded,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume record by ID. Returns (nil, nil) when no
// record exists.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, original_path, original_filename, optimized_path, pdf_path,
		        job_description, optimization_status, keywords_added, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.OriginalPath, &r.OriginalFilename, &r.OptimizedPath,
		&r.PDFPath, &r.JobDescription, &r.OptimizationStatus, &r.KeywordsAdded,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// StartOptimization records the job description and moves the record to the
// processing state.
func (db *DB) StartOptimization(ctx context.Context, id uuid.UUID, jobDescription string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes
		 SET job_description = $1, optimization_status = $2, updated_at = NOW()
		 WHERE id = $3`,
		jobDescription, StatusProcessing, id,
	)
	if err != nil {
		return fmt.Errorf("failed to start optimization: %w", err)
	}
	return nil
}

// CompleteOptimization records the output paths and insertion count and
// marks the run completed.
func (db *DB) CompleteOptimization(ctx context.Context, id uuid.UUID, optimizedPath, pdfPath string, keywordsAdded int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes
		 SET optimized_path = $1, pdf_path = $2, keywords_added = $3,
		     optimization_status = $4, updated_at = NOW()
		 WHERE id = $5`,
		optimizedPath, pdfPath, keywordsAdded, StatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete optimization: %w", err)
	}
	return nil
}

// FailOptimization marks the run failed. The original upload is untouched.
func (db *DB) FailOptimization(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET optimization_status = $1, updated_at = NOW() WHERE id = $2`,
		StatusFailed, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark optimization failed: %w", err)
	}
	return nil
}
