package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the resume optimization API server. Requires DATABASE_URL to be
set; GEMINI_API_KEY is optional and enables model-refined insertions.`,
	RunE: runServe,
}

var (
	servePort       int
	serveConfigPath string
	serveUploadDir  string
	serveOutputDir  string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to engine config JSON")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "uploads", "Directory for uploaded resumes")
	serveCmd.Flags().StringVar(&serveOutputDir, "output-dir", "optimized", "Directory for optimized output")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg, err := loadEngineConfig(serveConfigPath)
	if err != nil {
		return err
	}

	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return err
	}

	predictor, err := buildPredictor(ctx, "", cfg)
	if err != nil {
		store.Close()
		return err
	}

	srv, err := server.New(server.Config{
		Port:      servePort,
		Store:     store,
		Pipeline:  pipeline.New(cfg, predictor),
		Renderers: rendering.DefaultChain(),
		UploadDir: serveUploadDir,
		OutputDir: serveOutputDir,
		CloseStore: func() {
			if predictor != nil {
				_ = predictor.Close()
			}
			store.Close()
		},
	})
	if err != nil {
		store.Close()
		return err
	}

	return srv.Start()
}
