package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"rnorm/internal/ast"
	"rnorm/internal/astfmt"
	"rnorm/internal/diag"
	"rnorm/internal/normalize"
	"rnorm/internal/observ"
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
	"rnorm/internal/trace"
)

// DefaultMaxDiagnostics caps the diagnostics collected per file.
const DefaultMaxDiagnostics = 100

// Options configures how files are normalized.
type Options struct {
	MaxDepth       int            // 0 means normalize.DefaultMaxDepth
	MaxDiagnostics int            // 0 means DefaultMaxDiagnostics
	Format         rawtree.Format // FormatAuto sniffs the content
	Cache          *ResultCache   // optional in-memory cache
	Disk           *DiskCache     // optional persistent cache
	Progress       ProgressSink
	OnPhase        PhaseObserver
	Timings        bool // append an OBS6001 diagnostic with phase timings
}

// Result is the outcome of normalizing one file.
type Result struct {
	Path   string
	FileID source.FileID
	Digest string
	Root   *ast.Node // nil on failure, on a disk cache hit or on a memory hit recorded for another file
	Doc    *astfmt.Document
	Bag    *diag.Bag
	Timing *observ.Report
	Cached bool
}

// Failed reports whether the file produced an error diagnostic.
func (r *Result) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// NormalizeFile loads path and normalizes it. Load failures are returned as
// errors; everything after loading is reported through the result's bag.
func NormalizeFile(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fs, nil, err
	}
	res, err := NormalizeLoaded(ctx, fs, id, opts)
	return fs, res, err
}

// NormalizeLoaded normalizes a file already present in fs. The error return
// is reserved for cancellation.
func NormalizeLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	file := fs.Get(id)
	path := file.FormatPath("relative", fs.BaseDir())
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}
	res := &Result{
		Path:   path,
		FileID: id,
		Digest: file.Digest(),
		Bag:    diag.NewBag(maxDiag),
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "normalize_file")
	defer span.End("")
	span.WithExtra("path", path)

	rec := newPhaseRecorder(path, opts.OnPhase, opts.Progress)
	key := cacheKey(res.Digest, opts.MaxDepth)

	if hit, ok := opts.Cache.get(key); ok {
		// дерево несёт FileID первого файла, другим отдаём только документ
		if hit.file == id {
			res.Root = hit.root
		}
		res.Doc = withFile(hit.doc, path)
		for _, d := range hit.diags {
			// диагностики кэша указывают на файл, который их породил
			d.Primary.File = id
			res.Bag.Add(d)
		}
		return finish(res, rec, opts, true), nil
	}
	if doc, ok, err := opts.Disk.Get(key); err == nil && ok {
		res.Doc = withFile(doc, path)
		return finish(res, rec, opts, true), nil
	}

	idx := rec.begin(StageDecode)
	raw, err := rawtree.Decode(fs, id, opts.Format)
	rec.end(idx, StageDecode, "")
	if err != nil {
		res.Bag.Add(diag.NewError(decodeCode(err), source.Range{File: id}, err.Error()))
	}

	var root *ast.Node
	if raw != nil {
		idx = rec.begin(StageNormalize)
		root, err = normalize.File(ctx, raw, normalize.Options{MaxDepth: opts.MaxDepth, Tracer: trace.FromContext(ctx)})
		rec.end(idx, StageNormalize, "")
		if err != nil {
			var se *normalize.StructuralError
			switch {
			case errors.As(err, &se):
				res.Bag.Add(se.Diagnostic())
			case ctx.Err() != nil:
				emit(opts.Progress, Event{File: path, Stage: StageNormalize, Status: StatusError, Err: err})
				return nil, err
			default:
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			root = nil
		}
	}
	res.Root = root

	idx = rec.begin(StageEncode)
	res.Bag.Sort()
	res.Doc = astfmt.NewDocument(path, res.Digest, root, res.Bag.Items())
	rec.end(idx, StageEncode, "")

	opts.Cache.put(key, cached{file: id, root: root, doc: res.Doc, diags: slices.Clone(res.Bag.Items())})
	if err := opts.Disk.Put(key, res.Doc); err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOWriteError, source.Range{File: id}, "disk cache: "+err.Error()))
	}
	return finish(res, rec, opts, false), nil
}

func finish(res *Result, rec *phaseRecorder, opts Options, fromCache bool) *Result {
	res.Cached = fromCache
	res.Timing = rec.report()
	if opts.Timings {
		addTimings(res)
	}
	status := StatusDone
	switch {
	case fromCache:
		status = StatusCached
	case res.Failed():
		status = StatusError
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageEncode, Status: status})
	return res
}

// withFile returns a shallow copy of doc reporting path as its file.
func withFile(doc *astfmt.Document, path string) *astfmt.Document {
	cp := *doc
	cp.File = path
	return &cp
}

// decodeCode maps rawtree decode errors onto diagnostic codes.
func decodeCode(err error) diag.Code {
	switch {
	case rawtree.ErrUnsupportedFormat.Is(err):
		return diag.IOUnsupportedFormat
	case rawtree.ErrEmptyDocument.Is(err):
		return diag.IOEmptyDocument
	default:
		return diag.IOMalformedInput
	}
}
