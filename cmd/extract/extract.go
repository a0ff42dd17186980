// Package extract implements the extract command for running the
// extraction pipeline over a batch of URLs.
package extract

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "github.com/yasi76/namesift/cmd/common"
	"github.com/yasi76/namesift/internal/fetch"
	"github.com/yasi76/namesift/internal/groundtruth"
	"github.com/yasi76/namesift/internal/input"
	"github.com/yasi76/namesift/internal/output"
	"github.com/yasi76/namesift/internal/pipeline"
)

// Command returns the extract command for use in the root command.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	var (
		inputPath       string
		outputPath      string
		format          string
		workers         int
		groundTruthPath string
	)

	cmd := &cobra.Command{
		Use:   "extract [url...]",
		Short: "Extract company and product names from URLs",
		Long: `This command fetches each URL, extracts company and product name
candidates, scores them, and writes the merged results.

URLs come either from positional arguments or from --input (plain text,
CSV with a url column, or JSON). With --ground-truth the results are
additionally checked against the expected names per URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" && len(args) == 0 {
				return errors.New("no URLs: pass them as arguments or via --input")
			}

			deps, err := cmdcommon.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			cfg, log := deps.Config, deps.Logger

			if workers > 0 {
				cfg.Workers.PoolSize = workers
			}

			urls := args
			if inputPath != "" {
				records, loadErr := input.Load(inputPath)
				if loadErr != nil {
					return fmt.Errorf("failed to load input: %w", loadErr)
				}
				urls = append(input.URLs(records), urls...)
			}

			var matcher *groundtruth.Matcher
			if groundTruthPath != "" {
				entries, loadErr := groundtruth.LoadFile(groundTruthPath)
				if loadErr != nil {
					return fmt.Errorf("failed to load ground truth: %w", loadErr)
				}
				matcher, err = groundtruth.NewMatcher(entries, cfg.Pipeline.GroundTruthThreshold)
				if err != nil {
					return fmt.Errorf("failed to build ground-truth matcher: %w", err)
				}
			}

			var fetcher fetch.Fetcher = fetch.NewHTTP(cfg.Fetch, log)
			if cfg.Fetch.CacheTTL > 0 {
				fetcher = fetch.NewCaching(fetcher, cfg.Fetch.CacheTTL, log)
			}

			stats := pipeline.NewStats()
			runner, err := pipeline.NewRunner(cfg, pipeline.New(cfg, fetcher, matcher, stats, log), log)
			if err != nil {
				return fmt.Errorf("failed to create runner: %w", err)
			}

			results := runner.Run(cmd.Context(), urls)

			if outputPath != "" {
				if writeErr := output.WriteFile(outputPath, format, results); writeErr != nil {
					return fmt.Errorf("failed to write results: %w", writeErr)
				}
				log.Info("Results written", "path", outputPath, "format", format)
			} else if writeErr := output.WriteJSON(os.Stdout, results); writeErr != nil {
				return fmt.Errorf("failed to write results: %w", writeErr)
			}

			output.BuildReport(results, stats.Rejections()).Render(os.Stderr)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "file of URLs to process (txt, csv, or json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write results to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0,
		"override the worker pool size (0 means use the configured value)")
	cmd.Flags().StringVarP(&groundTruthPath, "ground-truth", "g", "",
		"expected names per URL (csv, json, or yaml) to evaluate against")

	return cmd
}
