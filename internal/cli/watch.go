package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/lels/internal/analysis"
)

// DefaultDebounce batches the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file|dir>...",
		Short: "Re-check documents whenever they change",
		Long: `Check the given documents, then check each one again whenever it
is written. Directories are watched for ` + DocumentExtension + ` files, subdirectories
included. Runs until interrupted.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(rootOpts, args, debounce, cmd)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "quiet period before a changed file is re-checked")

	return cmd
}

func runWatch(opts *RootOptions, paths []string, debounce time.Duration, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	w, err := NewWatcher(paths, cfg.AnalysisOptions(), cfg.MaxProblems, opts.logger())
	if err != nil {
		return loadFailure(formatter, err)
	}
	w.debounce = debounce
	w.report = func(r FileReport) {
		if formatter.JSON() {
			_ = json.NewEncoder(formatter.Writer).Encode(r)
			return
		}
		if len(r.Diagnostics) == 0 {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", r.Path)
			return
		}
		writeReport(formatter.Writer, r)
	}

	if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return fail(formatter, ErrCodeWatchFailed, "watch stopped", err)
	}
	return nil
}

// Watcher re-checks documents when they change on disk.
type Watcher struct {
	watcher     *fsnotify.Watcher
	opts        analysis.Options
	maxProblems int
	logger      *zap.Logger

	files map[string]bool // documents named explicitly
	dirs  map[string]bool // directories whose documents are tracked

	debounce time.Duration
	pending  map[string]time.Time
	report   func(FileReport)
}

// NewWatcher watches paths: named files and every directory below a named
// directory.
func NewWatcher(paths []string, opts analysis.Options, maxProblems int, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeWatchFailed, Message: "cannot create watcher", Err: err}
	}

	w := &Watcher{
		watcher:     fw,
		opts:        opts,
		maxProblems: maxProblems,
		logger:      logger,
		files:       make(map[string]bool),
		dirs:        make(map[string]bool),
		debounce:    DefaultDebounce,
		pending:     make(map[string]time.Time),
		report:      func(FileReport) {},
	}
	if err := w.add(paths); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) add(paths []string) error {
	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			return &LoadError{Code: ErrCodeNotFound, Message: "path not found", Path: p, Err: err}
		}
		if !info.IsDir() {
			w.files[p] = true
			if err := w.watchDir(filepath.Dir(p)); err != nil {
				return err
			}
			continue
		}
		if _, err := w.addTree(p); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) watchDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return &LoadError{Code: ErrCodeWatchFailed, Message: "cannot watch directory", Path: dir, Err: err}
	}
	return nil
}

// addTree watches root and every directory below it. It returns the
// documents found on the way.
func (w *Watcher) addTree(root string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if filepath.Ext(path) == DocumentExtension {
				docs = append(docs, path)
			}
			return nil
		}
		if w.dirs[path] {
			return nil
		}
		w.dirs[path] = true
		return w.watchDir(path)
	})
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &LoadError{Code: ErrCodeScanError, Message: "error scanning directory", Path: root, Err: err}
	}
	return docs, nil
}

// tracked reports whether name is a watched document.
func (w *Watcher) tracked(name string) bool {
	name = filepath.Clean(name)
	return w.files[name] || (w.dirs[filepath.Dir(name)] && filepath.Ext(name) == DocumentExtension)
}

// initial lists the documents present when watching starts.
func (w *Watcher) initial() []string {
	var docs []string
	for f := range w.files {
		docs = append(docs, f)
	}
	for dir := range w.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := filepath.Join(dir, e.Name())
			if !e.IsDir() && !w.files[name] && w.tracked(name) {
				docs = append(docs, name)
			}
		}
	}
	sort.Strings(docs)
	return docs
}

// Run checks every document once, then again after each change, until ctx
// is done. The underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for _, doc := range w.initial() {
		w.check(doc)
	}

	tick := max(w.debounce/2, time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) && w.newSubdir(event.Name) {
		return
	}
	if !w.tracked(event.Name) {
		return
	}
	w.logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.pending[filepath.Clean(event.Name)] = time.Now()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, filepath.Clean(event.Name))
	}
}

// newSubdir starts watching a directory created inside a watched one.
// Documents already written to it are queued for a check.
func (w *Watcher) newSubdir(name string) bool {
	name = filepath.Clean(name)
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return false
	}
	docs, err := w.addTree(name)
	if err != nil {
		w.logger.Warn("cannot watch new directory", zap.String("path", name), zap.Error(err))
		return true
	}
	w.logger.Debug("watching new directory", zap.String("path", name))
	now := time.Now()
	for _, doc := range docs {
		w.pending[doc] = now
	}
	return true
}

// flush checks the documents that have been quiet for the debounce period.
func (w *Watcher) flush(now time.Time) {
	var ready []string
	for name, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)
	for _, name := range ready {
		delete(w.pending, name)
		w.check(name)
	}
}

func (w *Watcher) check(path string) {
	report, err := checkFile(path, w.opts, w.maxProblems)
	if err != nil {
		// The file may have been replaced between the event and the read.
		w.logger.Debug("skipping unreadable document", zap.String("path", path), zap.Error(err))
		return
	}
	w.report(report)
}
