package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rigsight/gaslog-cli/internal/export"
	"github.com/rigsight/gaslog-cli/internal/ingest"
	"github.com/rigsight/gaslog-cli/internal/model"
	"github.com/rigsight/gaslog-cli/internal/pipeline"
)

var (
	classifyOutput string
	classifySheet  string
	classifyWell   string
	classifyParams string
	classifySave   bool
)

// loadParams overlays pipeline thresholds from a YAML calibration file onto
// the configured defaults. Calibration files are typically maintained per
// basin or per logging contractor.
func loadParams(path string, base pipeline.Config) (pipeline.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, eris.Wrap(err, "classify: read params file")
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, eris.Wrapf(err, "classify: parse params file %s", path)
	}
	return base, nil
}

// sheetName prefers the --sheet flag over the configured default.
func sheetName() string {
	if classifySheet != "" {
		return classifySheet
	}
	return cfg.Ingest.SheetName
}

var classifyCmd = &cobra.Command{
	Use:   "classify <input-file>",
	Short: "Classify a gas-logging export",
	Long:  "Reads an .xlsx or .csv gas-logging export, classifies every sample, and writes an augmented workbook and a per-well summary.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		samples, err := ingest.ReadFile(input, ingest.Options{
			SheetName:     sheetName(),
			SkipRows:      cfg.Ingest.SkipRows,
			Charset:       cfg.Ingest.Charset,
			DefaultWellID: classifyWell,
		})
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return eris.Errorf("classify: no samples in %s", input)
		}

		zap.L().Info("classify: samples loaded",
			zap.String("input", input),
			zap.Int("samples", len(samples)),
		)

		pcfg := cfg.Pipeline
		if classifyParams != "" {
			pcfg, err = loadParams(classifyParams, pcfg)
			if err != nil {
				return err
			}
		}

		var run *model.Run
		if classifySave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err = st.CreateRun(ctx, input)
			if err != nil {
				return err
			}
			if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
				return err
			}

			results, err := pipeline.RunWells(ctx, samples, pcfg, cfg.Batch.MaxConcurrentWells)
			if err != nil {
				if failErr := st.FailRun(ctx, run.ID, err.Error()); failErr != nil {
					zap.L().Error("classify: fail run", zap.Error(failErr))
				}
				return err
			}
			if err := st.SaveResults(ctx, run.ID, results); err != nil {
				return err
			}
			if err := st.CompleteRun(ctx, run.ID, model.SummarizeResults(results)); err != nil {
				return err
			}
			return finishClassify(input, run.ID, results)
		}

		results, err := pipeline.RunWells(ctx, samples, pcfg, cfg.Batch.MaxConcurrentWells)
		if err != nil {
			return err
		}
		return finishClassify(input, "", results)
	},
}

// finishClassify writes the output workbook and prints the per-well summary.
func finishClassify(input, runID string, results []model.Result) error {
	out := classifyOutput
	if out == "" {
		out = defaultOutputPath(input)
	}
	if err := export.WriteXLSX(out, results); err != nil {
		return err
	}

	zap.L().Info("classify: complete",
		zap.String("output", out),
		zap.Int("samples", len(results)),
	)

	if runID != "" {
		fmt.Printf("run %s\n", runID)
	}
	for _, line := range export.Summarize(results) {
		fmt.Fprintln(os.Stdout, line)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

// defaultOutputPath derives the output workbook name from the input file.
func defaultOutputPath(input string) string {
	ext := ".classified.xlsx"
	for i := len(input) - 1; i >= 0; i-- {
		if input[i] == '.' {
			return input[:i] + ext
		}
		if input[i] == '/' || input[i] == '\\' {
			break
		}
	}
	return input + ext
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "", "output workbook path (default <input>.classified.xlsx)")
	classifyCmd.Flags().StringVar(&classifySheet, "sheet", "", "worksheet name (default ingest.sheet_name, else first sheet)")
	classifyCmd.Flags().StringVar(&classifyWell, "well", "", "well ID for files without a well column")
	classifyCmd.Flags().StringVar(&classifyParams, "params", "", "YAML calibration file overriding pipeline thresholds")
	classifyCmd.Flags().BoolVar(&classifySave, "save", false, "persist the run and results to the configured store")
	rootCmd.AddCommand(classifyCmd)
}
