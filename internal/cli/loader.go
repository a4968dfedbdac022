package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/roach88/lels/internal/analysis"
)

// DocumentExtension marks Logical English files found in directories.
// Files named explicitly are read whatever their extension.
const DocumentExtension = ".le"

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No documents found
	ErrCodeReadFailed  = "E004" // Document read failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBadPosition = "E006" // Cursor outside the document
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeConfig      = "E008" // Config could not be loaded
	ErrCodeWatchFailed = "E009" // File watcher failed

	ErrCodeFindings    = "E101" // Diagnostics were reported
	ErrCodeTestsFailed = "E102" // Scenarios failed
)

// LoadError represents an error that occurred while locating or reading
// documents.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Document is a file read from disk.
type Document struct {
	Path string
	Text string
}

// Analyze runs an analysis pass over the document.
func (d Document) Analyze(opts analysis.Options) *analysis.Pass {
	return analysis.Analyze(d.Text, opts)
}

// FindDocuments expands paths into document files. Directories are walked
// for files with DocumentExtension; files are taken as given. The result is
// sorted and free of duplicates.
func FindDocuments(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "path not found", Path: p, Err: err}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "error accessing path", Path: p, Err: err}
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == DocumentExtension {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: "error scanning directory", Path: p, Err: err}
		}
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no %s files found", DocumentExtension)}
	}
	sort.Strings(files)
	return files, nil
}

// LoadDocument reads one document.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeReadFailed
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return Document{}, &LoadError{Code: code, Message: "cannot read document", Path: path, Err: err}
	}
	return Document{Path: path, Text: string(data)}, nil
}

// loadFailure turns a loader error into a command error.
func loadFailure(f *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return fail(f, loadErr.Code, loadErr.Error(), nil)
	}
	return fail(f, ErrCodeGeneric, err.Error(), nil)
}
