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

var expandCmd = &cobra.Command{
	Use:   "expand [flags] path",
	Short: "Expand annotated impl blocks in a file or directory",
	Long: `Expand rewrites every annotated impl block into one copy per concrete
type argument. For a single file the result goes to stdout unless --write
is set; for a directory, outputs are written next to their inputs (or
under --out-dir).`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("write", false, "write <name>.expanded.rs instead of printing")
	expandCmd.Flags().String("out-dir", "", "mirror outputs under this directory")
	expandCmd.Flags().Bool("no-cache", false, "bypass the expansion cache")
}

func runExpand(cmd *cobra.Command, args []string) error {
	path := args[0]
	write, _ := cmd.Flags().GetBool("write")
	outDir, _ := cmd.Flags().GetString("out-dir")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	manifest, hasManifest, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if hasManifest && outDir == "" {
		outDir = manifest.Config.Output.Dir
	}

	opts, err := driverOptions(cmd, manifest, noCache)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat %q: %w", path, err)
	}

	if info.IsDir() {
		return expandDirectory(cmd, path, outDir, quiet, opts)
	}
	return expandSingleFile(cmd, path, outDir, write, quiet, opts)
}

func expandSingleFile(cmd *cobra.Command, path, outDir string, write, quiet bool, opts driver.Options) error {
	fileSet, res, err := driver.ExpandFile(path, opts)
	if err != nil {
		return err
	}
	reportDiagnostics(cmd, fileSet, res.Bag)
	if res.Bag.HasErrors() {
		return fmt.Errorf("expansion failed: %s", path)
	}

	if !write && outDir == "" {
		fmt.Fprint(cmd.OutOrStdout(), res.Output)
		return nil
	}

	out := driver.OutputPath(fileSet.BaseDir(), path, outDir)
	if err := driver.WriteOutput(out, res); err != nil {
		return fmt.Errorf("failed to write %q: %w", out, err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d declaration(s), %d cop(ies) -> %s\n",
			res.Path, res.NumDecls, res.NumCopies, out)
	}
	return nil
}

func expandDirectory(cmd *cobra.Command, dir, outDir string, quiet bool, opts driver.Options) error {
	fileSet, results, err := driver.ExpandDir(context.Background(), dir, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		reportDiagnostics(cmd, fileSet, res.Bag)
		if res.Bag.HasErrors() {
			failed++
			continue
		}
		if !res.Changed() {
			continue
		}
		out := driver.OutputPath(dir, res.Path, outDir)
		if err := driver.WriteOutput(out, res); err != nil {
			return fmt.Errorf("failed to write %q: %w", out, err)
		}
		if !quiet {
			cached := ""
			if res.FromCache {
				cached = " (cached)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d declaration(s), %d cop(ies)%s\n",
				res.Path, res.NumDecls, res.NumCopies, cached)
		}
	}
	if failed > 0 {
		return fmt.Errorf("expansion failed in %d file(s)", failed)
	}
	return nil
}

func driverOptions(cmd *cobra.Command, manifest *projectManifest, noCache bool) (driver.Options, error) {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")

	opts := driver.Options{
		Config:         resolveConfig(cmd, manifest),
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}

	if !noCache && manifest != nil && manifest.Config.Cache.Enabled {
		var cache *driver.DiskCache
		var err error
		if dir := manifest.Config.Cache.Dir; dir != "" {
			cache, err = driver.OpenDiskCacheAt(dir)
		} else {
			cache, err = driver.OpenDiskCache("implgen")
		}
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func reportDiagnostics(cmd *cobra.Command, fileSet *source.FileSet, bag *diag.Bag) {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
}
