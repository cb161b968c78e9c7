package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/engine"
	"github.com/jonathan/resume-ats-checker/internal/ingestion"
	"github.com/jonathan/resume-ats-checker/internal/observability"
	"github.com/jonathan/resume-ats-checker/internal/schemas"
	"github.com/jonathan/resume-ats-checker/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long:  "Score a resume (.txt, .md or .html) against a job description read from a file or fetched from a job posting URL.",
	RunE:  runAnalyze,
}

var (
	resumeFile     string
	jobFile        string
	jobURL         string
	validateResult bool
	jsonOutput     bool
	saveResult     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume file (required)")
	analyzeCmd.Flags().StringVarP(&jobFile, "job", "t", "", "Path to the job description file")
	analyzeCmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "URL of the job posting")
	analyzeCmd.Flags().BoolVar(&validateResult, "validate", false, "Validate the result against the JSON schema")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json-output", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVar(&saveResult, "save", false, "Store the result in the analysis history")

	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if jobFile == "" && jobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if jobFile != "" && jobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, saveResult)
	if err != nil {
		return err
	}
	defer a.close()

	if saveResult && a.store == nil {
		return fmt.Errorf("--save requires database.url to be configured")
	}

	resume, _, err := ingestion.IngestFromFile(resumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	var job string
	if jobFile != "" {
		job, _, err = ingestion.IngestFromFile(jobFile)
	} else {
		var meta *ingestion.Metadata
		job, meta, err = a.ingestURL(ctx, jobURL)
		if err == nil {
			a.log.Info("job posting ingested",
				zap.String("url", jobURL),
				zap.String("platform", meta.Platform),
				zap.Int("chars", meta.Chars),
				zap.Bool("cached", meta.Cached))
		}
	}
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	req := types.AnalyzeRequest{ResumeText: resume, JobDescription: job}
	if err := engine.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := a.engine.Analyze(ctx, req.ResumeText, req.JobDescription)
	if err != nil {
		return err
	}

	if validateResult {
		if err := schemas.ValidateAnalysis(res); err != nil {
			return fmt.Errorf("result failed schema validation: %w", err)
		}
	}

	if saveResult {
		if err := a.store.SaveAnalysis(ctx, res); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		a.log.Info("analysis saved", zap.String("analysis_id", res.AnalysisID))
	}

	return writeResult(cmd.OutOrStdout(), res, jsonOutput)
}

// writeResult prints res as indented JSON or as the boxed report.
func writeResult(out io.Writer, res *types.AnalysisResult, asJSON bool) error {
	if !asJSON {
		observability.NewPrinter(out).PrintAnalysis(res)
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
