// Package domain wires the cell detector to the filesystem, persistence and
// presentation adapters.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"manimcells.dev/pkg/manimcells/internal/adapter"
	"manimcells.dev/pkg/manimcells/internal/controller"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// ScanArgs contains the arguments for scanning a set of paths.
type ScanArgs struct {
	Paths   []m.Path
	Include []string
	Exclude []string
	Threads int
	// Report, when set, is where the scan report is persisted.
	Report m.Path
}

// CellArgs selects the cell covering a 1-based line of a file.
type CellArgs struct {
	Path   m.Path
	Line   int
	Dedent bool
}

// SceneArgs selects the scene enclosing a 1-based line of a file.
type SceneArgs struct {
	Path m.Path
	Line int
}

// WatchArgs contains the arguments for watch mode.
type WatchArgs struct {
	Paths    []m.Path
	Include  []string
	Exclude  []string
	Threads  int
	Debounce time.Duration
}

// ReportArgs points at a persisted scan report.
type ReportArgs struct {
	Path m.Path
}

// Workflow defines the user-facing operations of manimcells.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	Cell(ctx context.Context, args CellArgs) error
	Scene(ctx context.Context, args SceneArgs) error
	Watch(ctx context.Context, args WatchArgs) error
	ShowReport(ctx context.Context, args ReportArgs) error
}

// WatcherFactory creates the file watcher used by watch mode.
type WatcherFactory func(dirs []m.Path, debounce time.Duration, match func(path string) bool) (adapter.Watcher, error)

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Detector
	newWatcher WatcherFactory
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	detector Detector,
	newWatcher WatcherFactory,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Detector:        detector,
		newWatcher:      newWatcher,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	filter, err := adapter.NewPathFilter(args.Include, args.Exclude)
	if err != nil {
		return err
	}

	_, report, err := w.scan(ctx, args.Paths, filter, args.Threads)
	if err != nil {
		slog.Error("Failed to scan sources", "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	if args.Report != "" {
		if err := w.SaveReport(args.Report, report); err != nil {
			slog.Error("Failed to save report", "path", args.Report, "error", err)
			return fmt.Errorf("save report: %w", err)
		}

		slog.Debug("Saved scan report", "path", args.Report, "files", len(report.Files))
	}

	if err := w.DisplayScan(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Cell(ctx context.Context, args CellArgs) error {
	detection, err := w.detectFile(args.Path)
	if err != nil {
		return err
	}

	candidate, cell, err := detection.CellAt(args.Line - 1)
	if err != nil {
		return fmt.Errorf("%s: %w", args.Path, err)
	}

	view := m.CellView{
		Path:      args.Path,
		Candidate: candidate.ID,
		Cell:      NewCellReport(cell),
		Text:      detection.CellText(candidate, cell, args.Dedent),
	}

	if err := w.DisplayCell(ctx, view); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Scene(ctx context.Context, args SceneArgs) error {
	detection, err := w.detectFile(args.Path)
	if err != nil {
		return err
	}

	class, err := detection.SceneAt(args.Line - 1)
	if err != nil {
		return fmt.Errorf("%s: %w", args.Path, err)
	}

	if err := w.DisplayScene(ctx, NewSceneView(args.Path, class)); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) ShowReport(ctx context.Context, args ReportArgs) error {
	report, err := w.LoadReport(args.Path)
	if err != nil {
		return err
	}

	if err := w.DisplayScan(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	filter, err := adapter.NewPathFilter(args.Include, args.Exclude)
	if err != nil {
		return err
	}

	sources, report, err := w.scan(ctx, args.Paths, filter, args.Threads)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	dirs, err := w.WatchRoots(args.Paths)
	if err != nil {
		return fmt.Errorf("resolve watch roots: %w", err)
	}

	layouts := make(map[m.Path]string, len(sources))
	for i, source := range sources {
		if report.Files[i].Error == "" {
			layouts[source.Origin.FullPath] = RenderLayout(report.Files[i])
		}
	}

	watcher, err := w.newWatcher(dirs, args.Debounce, watchMatcher(dirs, filter))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	defer func() {
		if err := watcher.Stop(); err != nil {
			slog.Error("Failed to stop watcher", "error", err)
		}
	}()

	if err := w.DisplayWatchStart(ctx, dirs, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	err = watcher.Start(ctx, func(paths []m.Path) {
		for _, path := range paths {
			w.refreshLayout(ctx, path, layouts)
		}
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	<-ctx.Done()
	slog.Debug("Watch stopped", "reason", ctx.Err())

	return nil
}

// refreshLayout re-detects path and reports how its layout changed.
func (w *workflow) refreshLayout(ctx context.Context, path m.Path, layouts map[m.Path]string) {
	var next string

	data, err := w.ReadFile(path)

	switch {
	case err == nil:
		next = RenderLayout(NewFileReport(path, w.Detect(string(data))))
	case errors.Is(err, fs.ErrNotExist):
		next = ""
	default:
		slog.Error("Failed to read changed file", "path", path, "error", err)
		return
	}

	diff, err := LayoutDiff(string(path), layouts[path], next)
	if err != nil {
		slog.Error("Failed to diff layout", "path", path, "error", err)
		return
	}

	if diff == "" {
		return
	}

	if next == "" {
		delete(layouts, path)
	} else {
		layouts[path] = next
	}

	if err := w.DisplayLayoutChange(ctx, path, diff); err != nil {
		slog.Error("Failed to display layout change", "path", path, "error", err)
	}
}

// scan detects every selected source in parallel. The returned report lists
// files in source order; a file that cannot be read carries its error instead
// of candidates.
func (w *workflow) scan(ctx context.Context, paths []m.Path, filter *adapter.PathFilter, threads int) ([]m.Source, m.ScanReport, error) {
	sources, err := w.Get(ctx, paths, filter)
	if err != nil {
		return nil, m.ScanReport{}, fmt.Errorf("get sources: %w", err)
	}

	files := make([]m.FileReport, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	if threads > 0 {
		group.SetLimit(threads)
	}

	for i, source := range sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			files[i] = w.scanSource(source)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, m.ScanReport{}, err
	}

	slog.Debug("Scanned sources", "files", len(files), "threads", threads)

	return sources, m.ScanReport{Version: m.ReportVersion, Files: files}, nil
}

func (w *workflow) scanSource(source m.Source) m.FileReport {
	path := source.Origin.ShortPath
	if path == "" {
		path = source.Origin.FullPath
	}

	data, err := w.ReadFile(source.Origin.FullPath)
	if err != nil {
		slog.Error("Failed to read source", "path", source.Origin.FullPath, "error", err)

		return m.FileReport{Path: path, Candidates: []m.CandidateReport{}, Error: err.Error()}
	}

	return NewFileReport(path, w.Detect(string(data)))
}

func (w *workflow) detectFile(path m.Path) (*m.Detection, error) {
	data, err := w.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return w.Detect(string(data)), nil
}

// watchMatcher accepts changed files that filter would have selected below
// one of dirs.
func watchMatcher(dirs []m.Path, filter *adapter.PathFilter) func(path string) bool {
	return func(path string) bool {
		for _, dir := range dirs {
			rel, err := filepath.Rel(string(dir), path)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				continue
			}

			if filter.Match(filepath.ToSlash(rel)) {
				return true
			}
		}

		return false
	}
}
