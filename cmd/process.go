// =============================================================================
// Community Order Filter - Process Command
// =============================================================================
//
// COMMAND USAGE:
//   orderfilter process --orders FILE --directory FILE [flags]
//
// FLAGS:
//   --orders      : order export (.xlsx, .xls or .csv)
//   --directory   : customer directory workbook
//   --out         : output path; defaults to a generated name in output_dir
//   --dry-run     : run the pipeline and print the summary without writing
//   --findings    : write input check findings to this file
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read both input files
//   3. Run the converter
//   4. Write the workbook (and archive a copy when archive_outputs is set)
//   5. Print summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/community-order-filter/internal/converter"
	"github.com/ginjaninja78/community-order-filter/internal/validation"
	"github.com/ginjaninja78/community-order-filter/pkg/utils"
)

var (
	ordersPath    string
	directoryPath string
	outPath       string
	findingsPath  string
	dryRun        bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Filter an order export against the customer directory",
	Long: `The process command reads the order export and the customer directory,
reconciles them, and writes the filtered workbook.

On success the workbook holds, in order: Flagged_Add (when any order was
flagged), Sheet1, Sheet2, New_Num (when any mobile number was unknown), one
"Tower X" sheet per tower with orders, and the updated Cust_Data directory.

On error nothing is written and the command exits non-zero.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&ordersPath, "orders", "", "Path to the order export")
	processCmd.Flags().StringVar(&directoryPath, "directory", "", "Path to the customer directory")
	processCmd.Flags().StringVar(&outPath, "out", "", "Output workbook path")
	processCmd.Flags().StringVar(&findingsPath, "findings", "", "Write input check findings to this file")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without writing output files")

	_ = processCmd.MarkFlagRequired("orders")
	_ = processCmd.MarkFlagRequired("directory")
}

func runProcess() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	// =========================================================================
	// STEP 1: READ INPUTS
	// =========================================================================

	orders, err := os.ReadFile(ordersPath)
	if err != nil {
		return fmt.Errorf("failed to read orders: %w", err)
	}
	dir, err := os.ReadFile(directoryPath)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	// =========================================================================
	// STEP 2: RUN
	// =========================================================================

	res := converter.New(converterOptions(cfg), log).Run(orders, dir)
	if !res.Success {
		return res.Error
	}

	if findingsPath != "" && len(res.Findings) > 0 {
		if err := validation.WriteErrorLog(res.Findings, findingsPath); err != nil {
			log.Warn("%v", err)
		}
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	written := "(dry run)"
	if !dryRun {
		fm := utils.NewFileManager(cfg.OutputDir, cfg.OutputArchiveDir, cfg.OutputNameFormat)
		if outPath != "" {
			written, err = fm.WriteOutputAs(res.Output, outPath)
		} else {
			written, err = fm.WriteOutput(res.Output, res.RunID)
		}
		if err != nil {
			return err
		}
		if cfg.ArchiveOutputs {
			if _, err := fm.ArchiveOutputFile(written); err != nil {
				log.Warn("[%s] Failed to archive output: %v", res.RunID, err)
			}
		}
	}

	printSummary(res, written)
	return nil
}

func printSummary(res converter.Result, written string) {
	s := res.Stats
	fmt.Println("=== Community Order Filter ===")
	fmt.Printf("Run ID:          %s\n", res.RunID)
	fmt.Printf("Rows read:       %d (%d excluded by status)\n", s.RowsRead, s.RowsExcluded)
	fmt.Printf("Main:            %d line(s), %d order(s)\n", s.MainLines, s.MainOrders)
	fmt.Printf("New numbers:     %d line(s), %d order(s)\n", s.NewNumberLines, s.NewNumberOrders)
	fmt.Printf("Flagged:         %d line(s), %d order(s)\n", s.FlaggedLines, s.FlaggedOrders)
	fmt.Printf("Tower sheets:    %d\n", s.TowerSheets)
	fmt.Printf("Directory:       %d entries, %d added\n", s.DirectoryEntries, s.NewDirectoryEntries)
	if s.DuplicateMobiles > 0 {
		fmt.Printf("Duplicates:      %d repeated mobile number(s) in directory\n", s.DuplicateMobiles)
	}
	if s.Warnings > 0 {
		fmt.Printf("Warnings:        %d\n", s.Warnings)
	}
	fmt.Printf("Sheets:          %v\n", res.Sheets)
	fmt.Printf("Output:          %s\n", written)
	fmt.Printf("Time elapsed:    %s\n", s.ProcessingTime)
}
