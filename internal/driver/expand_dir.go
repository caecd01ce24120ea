package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"implgen/internal/diag"
	"implgen/internal/source"
)

// listRustFiles возвращает отсортированный список всех *.rs файлов
// в директории. Already-expanded outputs are skipped.
func listRustFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".rs") {
			return nil
		}
		if strings.HasSuffix(path, ExpandedSuffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every *.rs file under dir in parallel. Per-file results
// come back in sorted path order regardless of completion order.
func ExpandDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*FileResult, error) {
	files, err := listRustFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = &FileResult{Path: path, Bag: bag}
				return nil
			}

			results[i] = expandLoaded(fileSet, fileIDs[path], path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ExpandedSuffix marks generated files so later runs skip them.
const ExpandedSuffix = ".expanded.rs"

// OutputPath maps an input file to its expansion output path, either next
// to the input or mirrored under outDir when it is set.
func OutputPath(baseDir, path, outDir string) string {
	out := strings.TrimSuffix(path, ".rs") + ExpandedSuffix
	if outDir == "" {
		return out
	}
	rel, err := filepath.Rel(baseDir, out)
	if err != nil {
		return filepath.Join(outDir, filepath.Base(out))
	}
	return filepath.Join(outDir, rel)
}

// WriteOutput writes one result's output, creating parent directories.
func WriteOutput(path string, res *FileResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(res.Output), 0o644)
}
