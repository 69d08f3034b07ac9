// Command finparse extracts normalized transactions from bank-statement
// PDFs and prints them as JSON, CSV or XLSX.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/finparse/finparse/internal/export"
	"github.com/finparse/finparse/internal/extract"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "finparse",
		Short:         "Extract transactions from bank-statement PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(newExtractCmd(&verbose))
	return root
}

func newExtractCmd(verbose *bool) *cobra.Command {
	var (
		password string
		format   string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "extract <statement.pdf>",
		Short: "Extract, deduplicate and classify transactions from one statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbose)
			defer logger.Sync() //nolint:errcheck

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read statement: %w", err)
			}

			svc := extract.NewService(extract.Config{Logger: logger})
			txs, err := svc.Extract(context.Background(), data, password)
			if err != nil {
				return describeFailure(err)
			}

			out, cleanup, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer cleanup()

			return writeOutput(out, format, txs)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password for encrypted statements")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

// describeFailure turns pipeline error codes into actionable messages.
func describeFailure(err error) error {
	switch extract.CodeOf(err) {
	case extract.ErrPasswordRequired:
		return fmt.Errorf("this statement is encrypted; re-run with --password")
	case extract.ErrInvalidPassword:
		return fmt.Errorf("the supplied password is wrong")
	case extract.ErrDecryptionUnsupported:
		return fmt.Errorf("this statement uses an encryption scheme finparse cannot decrypt: %w", err)
	default:
		return err
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeOutput(w io.Writer, format string, txs []extract.Transaction) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(txs)
	case "csv":
		return export.WriteCSV(w, txs)
	case "xlsx":
		return export.WriteXLSX(w, txs)
	default:
		return fmt.Errorf("unknown format %q (want json, csv or xlsx)", format)
	}
}

// newLogger builds a zap logger: compact JSON by default, colorized console
// in verbose mode.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}
