// Package driver orchestrates expansion over files and directories: scan,
// compose, splice, and the disk cache that skips unchanged inputs.
package driver

import (
	"strings"

	"implgen/internal/diag"
	"implgen/internal/expand"
	"implgen/internal/parser"
	"implgen/internal/source"
)

// Options tunes one driver run.
type Options struct {
	Config parser.Config
	// MaxDiagnostics caps the bag per file; 0 means the default.
	MaxDiagnostics int
	// Jobs limits directory-level parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, short-circuits files whose content and
	// attribute configuration were seen before.
	Cache *DiskCache
}

const defaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) config() parser.Config {
	if o.Config.Attr == "" {
		return parser.DefaultConfig()
	}
	return o.Config
}

// FileResult is the expansion outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Output is the whole file with every annotated declaration replaced
	// by its copies. Equal to the input when nothing was annotated.
	Output string
	// NumDecls counts expanded declarations, NumCopies their total output.
	NumDecls  int
	NumCopies int
	Bag       *diag.Bag
	// FromCache is set when the output came from the disk cache.
	FromCache bool
}

// Changed reports whether expansion rewrote anything.
func (r *FileResult) Changed() bool {
	return r.NumDecls > 0
}

// ExpandSource expands one loaded file. Declarations with fatal diagnostics
// are re-emitted verbatim; everything else still expands.
func ExpandSource(file *source.File, cfg parser.Config, bag *diag.Bag) (string, int, int) {
	f := parser.ScanSource(file, cfg, diag.BagReporter{Bag: bag})

	var sb strings.Builder
	decls, copies := 0, 0
	for _, region := range f.Regions {
		if region.Decl == nil {
			sb.Write(file.Content[region.Raw.Start:region.Raw.End])
			continue
		}
		d := region.Decl
		if d.Bad {
			sb.Write(file.Content[d.Span.Start:d.Span.End])
			continue
		}
		frags := expand.Compose(d.Frag, d.Stack)
		sb.WriteString(expand.Render(frags))
		decls++
		copies += len(frags)
	}
	return sb.String(), decls, copies
}

// ExpandFile loads and expands a single file through a fresh FileSet.
func ExpandFile(path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(opts.maxDiagnostics())

	id, err := fileSet.Load(path)
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
		})
		return fileSet, &FileResult{Path: path, Bag: bag}, err
	}

	res := expandLoaded(fileSet, id, path, opts)
	return fileSet, res, nil
}

func expandLoaded(fileSet *source.FileSet, id source.FileID, path string, opts Options) *FileResult {
	file := fileSet.Get(id)
	cfg := opts.config()

	if opts.Cache != nil {
		if payload, ok := opts.Cache.Lookup(file.Hash, cfg); ok {
			return &FileResult{
				Path:      path,
				FileID:    id,
				Output:    payload.Output,
				NumDecls:  payload.NumDecls,
				NumCopies: payload.NumCopies,
				Bag:       diag.NewBag(opts.maxDiagnostics()),
				FromCache: true,
			}
		}
	}

	bag := diag.NewBag(opts.maxDiagnostics())
	output, decls, copies := ExpandSource(file, cfg, bag)
	res := &FileResult{
		Path:      path,
		FileID:    id,
		Output:    output,
		NumDecls:  decls,
		NumCopies: copies,
		Bag:       bag,
	}

	// файлы с ошибками не кэшируем: диагностики должны переигрываться
	if opts.Cache != nil && !bag.HasErrors() {
		_ = opts.Cache.Store(file.Hash, cfg, &CachePayload{
			Output:    output,
			NumDecls:  decls,
			NumCopies: copies,
		})
	}
	return res
}
