package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"implgen/internal/diag"
	"implgen/internal/diagfmt"
	"implgen/internal/driver"
	"implgen/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path",
	Short: "Validate binding attributes without writing output",
	Long: `Check scans annotated impl blocks and reports attribute grammar errors,
invalid placeholders, and unresolved override targets. Nothing is written;
exit status is non-zero when any diagnostic is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	// кэш для check не нужен: диагностики всегда переигрываются
	opts, err := driverOptions(cmd, manifest, true)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat %q: %w", path, err)
	}

	if !info.IsDir() {
		fileSet, res, err := driver.ExpandFile(path, opts)
		if err != nil {
			return err
		}
		return emitCheck(cmd, format, fileSet, res.Bag, quiet, 1)
	}

	fileSet, results, err := driver.ExpandDir(context.Background(), path, opts)
	if err != nil {
		return err
	}
	merged := diag.NewBag(max(opts.MaxDiagnostics, 100) * max(len(results), 1))
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	return emitCheck(cmd, format, fileSet, merged, quiet, len(results))
}

func emitCheck(cmd *cobra.Command, format string, fileSet *source.FileSet, bag *diag.Bag, quiet bool, files int) error {
	bag.Sort()
	bag.Dedup()

	switch format {
	case "pretty":
		useCol := useColor(cmd, os.Stderr)
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:     useCol,
			ShowNotes: true,
		})
		diagfmt.Summary(os.Stderr, bag, useCol)
	case "json":
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		return fmt.Errorf("check failed")
	}
	if !quiet && format == "pretty" {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), no errors\n", files)
	}
	return nil
}
