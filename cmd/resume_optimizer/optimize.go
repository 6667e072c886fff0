package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/predict"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/schemas"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize one resume against a job description",
	Long: `Runs the optimization pipeline once: reads a .docx resume, computes the
vocabulary gap against the job description, inserts missing keywords and
writes the rebuilt document (optionally rendered to PDF).

The job description may come from a text file, a PDF file or a URL.`,
	RunE: runOptimize,
}

var (
	optResume     string
	optJob        string
	optJobURL     string
	optOutput     string
	optPDF        string
	optConfigPath string
	optAPIKey     string
	optVerbose    bool
)

func init() {
	optimizeCmd.Flags().StringVarP(&optResume, "resume", "r", "", "Path to the .docx resume (required)")
	optimizeCmd.Flags().StringVarP(&optJob, "job", "j", "", "Path to the job description (.txt or .pdf, mutually exclusive with --job-url)")
	optimizeCmd.Flags().StringVar(&optJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	optimizeCmd.Flags().StringVarP(&optOutput, "output", "o", "", "Output .docx path (default: <resume>_optimized.docx)")
	optimizeCmd.Flags().StringVar(&optPDF, "pdf", "", "Also render the result to this PDF path")
	optimizeCmd.Flags().StringVar(&optConfigPath, "config", "", "Path to engine config JSON")
	optimizeCmd.Flags().StringVar(&optAPIKey, "api-key", "", "Gemini API key for template refinement (optional, defaults to GEMINI_API_KEY env var)")
	optimizeCmd.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Print detailed run information")

	_ = optimizeCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if optJob != "" && optJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}
	if optJob == "" && optJobURL == "" {
		return fmt.Errorf("either --job or --job-url is required")
	}

	cfg, err := loadEngineConfig(optConfigPath)
	if err != nil {
		return err
	}

	jobDescription, err := loadJobDescription(ctx, optJob, optJobURL)
	if err != nil {
		return err
	}

	predictor, err := buildPredictor(ctx, optAPIKey, cfg)
	if err != nil {
		return err
	}
	if predictor != nil {
		defer predictor.Close()
	}

	output := optOutput
	if output == "" {
		base := strings.TrimSuffix(optResume, filepath.Ext(optResume))
		output = base + "_optimized.docx"
	}

	result, err := pipeline.New(cfg, predictor).Run(ctx, pipeline.Options{
		ResumePath:     optResume,
		JobDescription: jobDescription,
		OutputPath:     output,
		Verbose:        optVerbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Optimized resume written to %s (%d keywords added)\n", result.OutputPath, result.KeywordsAdded)
	if len(result.InsertedKeywords) > 0 {
		fmt.Printf("Inserted: %s\n", strings.Join(result.InsertedKeywords, ", "))
	}

	if optPDF != "" {
		err := rendering.DefaultChain().Render(ctx, rendering.RenderRequest{
			Document: result.Document,
			DocxPath: output,
			PDFPath:  optPDF,
		})
		if err != nil {
			return err
		}
		fmt.Printf("PDF rendered to %s\n", optPDF)
	}
	return nil
}

// loadEngineConfig validates and loads the engine config, or returns defaults.
func loadEngineConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	if err := schemas.ValidateConfig(path); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config.LoadConfig(path)
}

// loadJobDescription reads the job description from a file or URL.
func loadJobDescription(ctx context.Context, path, url string) (string, error) {
	if url != "" {
		return ingestion.FetchJobDescription(ctx, url)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ingestion.ReadPDFText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

// buildPredictor creates the optional Gemini prediction client. No key means
// no predictor; the pipeline falls back to templates.
func buildPredictor(ctx context.Context, apiKey string, cfg *config.Config) (predict.Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, nil
	}
	client, err := predict.NewGeminiClient(ctx, apiKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}
	return client, nil
}
