// Package driver runs the rule engine over files: discovery, parallel
// lint or fix passes, and the on-disk result cache.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
	"layoutlint/internal/observ"
	"layoutlint/internal/parser"
	"layoutlint/internal/source"
	"layoutlint/internal/trace"
)

// Diagnostic ids the driver itself reports.
const (
	RuleParse = "parse-error"
	RuleIO    = "io-error"
)

// Mode selects what Run does with each file.
type Mode uint8

const (
	ModeLint Mode = iota
	ModeFix       // apply fixes to a fixed point, report what remains
)

// Options configure Run.
type Options struct {
	Mode     Mode
	Rules    []lint.Enabled
	Language parser.Language // LangAuto picks by extension
	Jobs     int             // 0 means GOMAXPROCS
	// ConfigDigest and Version feed the cache key.
	ConfigDigest string
	Version      string
	Cache        *Cache
	Timer        *observ.Timer
	Progress     Sink
	// MaxDiagnostics caps each file's reported diagnostics; 0 is unlimited.
	MaxDiagnostics int
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path  string
	Files *source.FileSet
	// File is the snapshot the diagnostics point into: the original text
	// for lint, the final text for fix.
	File        *source.File
	Original    *source.File
	Diagnostics []diag.Diagnostic
	// Output is the fixed content; nil when nothing changed.
	Output []byte
	Passes int
	Cached bool
}

// Changed reports whether a fix run rewrote the file.
func (r *FileResult) Changed() bool { return r != nil && r.Output != nil }

// Report collects the results of Run in input order.
type Report struct {
	Results []FileResult
}

// Count returns the number of diagnostics at or above sev.
func (r *Report) Count(sev diag.Severity) int {
	n := 0
	for i := range r.Results {
		for _, d := range r.Results[i].Diagnostics {
			if d.Severity >= sev {
				n++
			}
		}
	}
	return n
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Report) HasErrors() bool { return r.Count(diag.SevError) > 0 }

// Changed counts rewritten files.
func (r *Report) Changed() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Changed() {
			n++
		}
	}
	return n
}

// Run loads every path and processes it. Files that fail to load or parse
// produce an error diagnostic; only cancellation aborts the run.
func Run(ctx context.Context, paths []string, opts Options) (*Report, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	defer span.End("")
	span.WithExtra("files", strconv.Itoa(len(paths)))

	report := &Report{Results: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return report, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, p := range paths {
		emit(opts.Progress, p, StageQueued, StatusWorking)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// каждый файл получает свой FileSet, общего состояния нет
			fs := source.NewFileSet()
			res := FileResult{Path: path, Files: fs}
			stop := opts.Timer.Track("load")
			id, err := fs.Load(path)
			stop()
			if err != nil {
				res.File = fs.Get(fs.AddVirtual(path, nil))
				res.Original = res.File
				res.Diagnostics = []diag.Diagnostic{ioDiagnostic(res.File, err)}
				report.Results[i] = res
				emit(opts.Progress, path, StageParse, StatusError)
				return nil
			}
			file := fs.Get(id)
			res.File, res.Original = file, file
			if err := processFile(gctx, &res, opts); err != nil {
				return err
			}
			report.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	span.WithExtra("changed", strconv.Itoa(report.Changed()))
	return report, nil
}

// Source lints or fixes in-memory content, as read from stdin.
func Source(ctx context.Context, name string, content []byte, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	res := &FileResult{Path: name, Files: fs, File: file, Original: file}
	if err := processFile(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

func processFile(ctx context.Context, res *FileResult, opts Options) error {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+res.Path)
	defer span.End("")

	if opts.Mode == ModeLint && opts.Cache != nil {
		key := CacheKey(res.File.Content, opts.ConfigDigest, opts.Version)
		diags, ok, err := opts.Cache.Get(key, res.File)
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
		}
		if ok {
			res.Diagnostics = diags
			res.Cached = true
			span.WithExtra("cached", "true")
			emit(opts.Progress, res.Path, StageLint, StatusDone)
			return nil
		}
		defer func() {
			if res.Diagnostics != nil && !hasDriverDiagnostic(res.Diagnostics) {
				if err := opts.Cache.Put(key, res.File, res.Diagnostics); err != nil {
					trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
				}
			}
		}()
	}

	lintOnce := func(ctx context.Context, f *source.File) ([]diag.Diagnostic, error) {
		emit(opts.Progress, res.Path, StageParse, StatusWorking)
		stop := opts.Timer.Track("parse")
		tree, err := parser.Parse(ctx, f, parser.Options{Language: opts.Language})
		stop()
		if err != nil {
			return nil, err
		}
		emit(opts.Progress, res.Path, StageLint, StatusWorking)
		defer opts.Timer.Track("lint")()
		bag, err := lint.Run(ctx, tree, opts.Rules)
		if err != nil {
			return nil, err
		}
		return bag.Items(), nil
	}

	var err error
	switch opts.Mode {
	case ModeFix:
		err = fixFile(ctx, res, opts, lintOnce)
	default:
		res.Diagnostics, err = lintOnce(ctx, res.File)
		if res.Diagnostics == nil && err == nil {
			res.Diagnostics = []diag.Diagnostic{}
		}
	}

	var syntaxErr *parser.SyntaxError
	switch {
	case err == nil:
		// the fix loop sees every diagnostic, only the report is capped
		if opts.MaxDiagnostics > 0 && len(res.Diagnostics) > opts.MaxDiagnostics {
			res.Diagnostics = res.Diagnostics[:opts.MaxDiagnostics]
		}
		emit(opts.Progress, res.Path, StageLint, StatusDone)
		return nil
	case errors.As(err, &syntaxErr) && res.Passes > 0:
		// a fix broke the syntax; keep the file as it was
		res.Diagnostics = []diag.Diagnostic{{
			Severity:  diag.SevError,
			RuleID:    RuleParse,
			MessageID: "fixBrokeSyntax",
			Message:   fmt.Sprintf("fixes produced invalid syntax after %d passes, file left unchanged", res.Passes),
			Primary:   source.Span{File: res.File.ID},
		}}
		emit(opts.Progress, res.Path, StageFix, StatusError)
		return nil
	case errors.As(err, &syntaxErr):
		res.Diagnostics = append(res.Diagnostics, parseDiagnostic(res.File, syntaxErr))
		span.WithExtra("syntax", "error")
		emit(opts.Progress, res.Path, StageParse, StatusError)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%s: %w", res.Path, err)
	}
}

func fixFile(ctx context.Context, res *FileResult, opts Options, lintOnce fix.LintFunc) error {
	defer opts.Timer.Track("fix")()
	emit(opts.Progress, res.Path, StageFix, StatusWorking)
	loop, err := fix.Loop(ctx, res.Files, res.File, lintOnce)
	if err != nil {
		if loop != nil {
			res.Passes = loop.Passes
		}
		return err
	}
	if loop != nil {
		res.Passes = loop.Passes
		if loop.Changed() {
			res.File = loop.File
			res.Output = loop.Output
		}
		res.Diagnostics = loop.Remaining
	}
	return nil
}

func parseDiagnostic(file *source.File, err *parser.SyntaxError) diag.Diagnostic {
	span := err.Span
	span.File = file.ID
	msg := "syntax error"
	if err.Near != "" {
		msg = fmt.Sprintf("syntax error near %q", err.Near)
	}
	return diag.Diagnostic{
		Severity:  diag.SevError,
		RuleID:    RuleParse,
		MessageID: "syntax",
		Message:   msg,
		Primary:   span,
	}
}

func ioDiagnostic(file *source.File, err error) diag.Diagnostic {
	return diag.Diagnostic{
		Severity:  diag.SevError,
		RuleID:    RuleIO,
		MessageID: "load",
		Message:   "failed to load file: " + err.Error(),
		Primary:   source.Span{File: file.ID},
	}
}

func hasDriverDiagnostic(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.RuleID == RuleParse || d.RuleID == RuleIO {
			return true
		}
	}
	return false
}
