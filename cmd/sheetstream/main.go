// Package main provides the CLI entry point for sheetstream.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetstream-go/pkg/sheetstream"
	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/output"
)

var (
	outputPath string
	sheetName  string
	format     string
	header     bool
	columns    []string
	batchSize  int
	encoding   string
	progress   bool
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetstream [input.xlsx]",
		Short: "Stream rows out of an xlsx worksheet",
		Long: `sheetstream reads one worksheet of an xlsx file in bounded batches
and writes its rows as JSON lines, CSV or a new xlsx file.
Use "-" to read the workbook from stdin.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Sheet name (default: first sheet)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Output format: jsonl, csv, xlsx")
	rootCmd.Flags().BoolVar(&header, "header", false, "Treat the first row as a header (jsonl rows become objects)")
	rootCmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Header names to export, in order (implies --header)")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", sheetstream.MaxRowsOnOneRead, "Maximum rows read per batch")
	rootCmd.Flags().StringVar(&encoding, "encoding", "utf-8", "CSV output encoding (e.g. windows-1252, shift_jis)")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "Log progress after every batch")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSheetsCmd())
	return rootCmd
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := sheetstream.ListSheets(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range sheets {
				state := ""
				if s.Hidden {
					state = "\t(hidden)"
				}
				fmt.Fprintf(out, "%d\t%s%s\n", s.Index+1, s.Name, state)
			}
			return nil
		},
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	opts := sheetstream.Options{
		BatchSize: batchSize,
		Logger:    logger,
	}

	reader, err := openInput(args[0], opts)
	if err != nil {
		return err
	}
	defer reader.Close()

	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	summary, err := export(reader, out, logger)
	if err != nil {
		return err
	}

	logger.Info("export finished",
		slog.String("sheet", reader.Sheet().Name),
		slog.Int("rows_read", reader.RowsRead()),
		slog.Int("rows_written", summary.Rows),
		slog.String("range", summary.Range()),
		slog.Float64("density", summary.Density()))
	return nil
}

func openInput(path string, opts sheetstream.Options) (*sheetstream.Reader, error) {
	if path == "-" {
		return sheetstream.OpenStream(os.Stdin, sheetName, opts)
	}
	return sheetstream.OpenFile(path, sheetName, opts)
}

// export copies every row of reader into out, batch by batch.
func export(reader *sheetstream.Reader, out io.Writer, logger *slog.Logger) (*output.Summary, error) {
	useHeader := header || len(columns) > 0
	summary := output.NewSummary()

	var (
		writer output.RowWriter
		hdr    *models.Header
	)
	defer func() {
		if writer != nil {
			writer.Close()
		}
	}()

	for !reader.FinishedReading() {
		rows, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("read failed: %w", err)
		}

		for _, row := range rows {
			if writer == nil {
				if useHeader {
					hdr = models.NewHeader(row)
				}
				writer, err = newRowWriter(out, hdr, reader.Sheet().Name)
				if err != nil {
					return nil, err
				}
				if useHeader {
					if output.Format(strings.ToLower(format)) == output.FormatJSONL {
						continue
					}
					row = headerRow(hdr)
				}
			} else if len(columns) > 0 {
				row = hdr.Select(row, columns)
			}

			if err := writer.WriteRow(row); err != nil {
				return nil, fmt.Errorf("write failed: %w", err)
			}
			summary.Add(row)
		}

		if progress {
			cur := reader.Cursor()
			logger.Info("batch read",
				slog.Int("rows_read", cur.RowsRead),
				slog.Int("total_rows", cur.TotalRows),
				slog.String("progress", fmt.Sprintf("%.1f%%", cur.Progress()*100)))
		}
	}

	if writer == nil {
		w, err := newRowWriter(out, nil, reader.Sheet().Name)
		if err != nil {
			return nil, err
		}
		writer = w
	}
	err := writer.Close()
	writer = nil
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	return summary, nil
}

func newRowWriter(out io.Writer, hdr *models.Header, sheet string) (output.RowWriter, error) {
	cfg := output.Config{
		Format:    output.Format(strings.ToLower(format)),
		Encoding:  encoding,
		SheetName: sheet,
	}
	if hdr != nil && len(columns) > 0 {
		hdr = models.NewHeader(models.Row(columns))
	}
	if cfg.Format == output.FormatJSONL {
		cfg.Header = hdr
	}
	return output.NewWriter(out, cfg)
}

// headerRow is the header line for tabular formats: the selected columns
// when projecting, otherwise the header itself.
func headerRow(hdr *models.Header) models.Row {
	if len(columns) > 0 {
		return models.Row(columns)
	}
	return models.Row(hdr.Names())
}
