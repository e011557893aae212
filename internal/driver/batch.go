package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"rnorm/internal/diag"
	"rnorm/internal/source"
	"rnorm/internal/trace"
)

// DefaultInclude lists the patterns picked up by NormalizeDir.
var DefaultInclude = []string{"*.xml", "*.json"}

// BatchOptions configures NormalizeDir.
type BatchOptions struct {
	Options
	Jobs    int      // 0 means GOMAXPROCS
	Include []string // base-name glob patterns; empty means DefaultInclude
}

// ListInputs возвращает отсортированный список подходящих файлов в директории.
func ListInputs(dir string, include []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range include {
			ok, matchErr := filepath.Match(pattern, d.Name())
			if matchErr != nil {
				return matchErr
			}
			if ok {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// NormalizeDir normalizes every matching file under dir in parallel. Results
// follow the sorted file order; a failing file never stops the others.
func NormalizeDir(ctx context.Context, dir string, opts BatchOptions) (*source.FileSet, []Result, error) {
	files, err := ListInputs(dir, opts.Include)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "normalize_dir")
	span.WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")

	// Предзагрузка последовательно: FileSet не потокобезопасен на запись
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = id
		emit(opts.Progress, Event{File: fileSet.Get(id).FormatPath("relative", dir), Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(maxDiag)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Range{}, "failed to load file: "+loadErr.Error()))
				shown := path
				if rel, relErr := source.RelativePath(path, dir); relErr == nil {
					shown = rel
				}
				results[i] = Result{Path: shown, Bag: bag}
				emit(opts.Progress, Event{File: shown, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			res, err := NormalizeLoaded(gctx, fileSet, fileIDs[path], opts.Options)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
