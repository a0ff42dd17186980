// Package evaluate implements the evaluate command for re-scoring
// previously written extraction results against a ground-truth mapping.
package evaluate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "github.com/yasi76/namesift/cmd/common"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/groundtruth"
	"github.com/yasi76/namesift/internal/output"
)

// Command returns the evaluate command for use in the root command.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	var (
		resultsPath     string
		groundTruthPath string
		reportPath      string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate extraction results against ground truth",
		Long: `This command reads a JSON results file produced by 'extract' and
cross-checks the extracted names against a trusted URL-to-name mapping,
reporting per-URL matches and overall accuracy. No pages are fetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			cfg, log := deps.Config, deps.Logger

			results, err := loadResults(resultsPath)
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}

			entries, err := groundtruth.LoadFile(groundTruthPath)
			if err != nil {
				return fmt.Errorf("failed to load ground truth: %w", err)
			}
			matcher, err := groundtruth.NewMatcher(entries, cfg.Pipeline.GroundTruthThreshold)
			if err != nil {
				return fmt.Errorf("failed to build ground-truth matcher: %w", err)
			}

			for _, r := range results {
				r.GroundTruthFound, r.GroundTruthMiss = matcher.Evaluate(r.URL, r.Entities)
			}
			log.Info("Evaluation complete",
				"results", len(results), "ground_truth_urls", matcher.Len())

			report := output.BuildReport(results, nil)
			report.Render(os.Stdout)

			if reportPath != "" {
				f, createErr := os.Create(reportPath)
				if createErr != nil {
					return fmt.Errorf("failed to create report file: %w", createErr)
				}
				defer f.Close()
				if writeErr := report.WriteJSONReport(f); writeErr != nil {
					return fmt.Errorf("failed to write report: %w", writeErr)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "JSON results file from the extract command")
	cmd.Flags().StringVarP(&groundTruthPath, "ground-truth", "g", "",
		"expected names per URL (csv, json, or yaml)")
	cmd.Flags().StringVarP(&reportPath, "report", "o", "", "also write the aggregate report as JSON")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("ground-truth")

	return cmd
}

// loadResults reads a JSON array of extraction results.
func loadResults(path string) ([]*entity.ExtractionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var results []*entity.ExtractionResult
	if err := json.NewDecoder(f).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return results, nil
}
