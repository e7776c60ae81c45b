// Package exporter provides utilities for exporting listings to the
// filesystem as JSON files, the inverse of the importer. Exported files
// round-trip through "agora import".
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkvarda/agora/internal/catalog"
	"github.com/mkvarda/agora/internal/progress"
	"github.com/mkvarda/agora/internal/store"
)

// exportPageSize is the page size used when walking the whole catalog.
const exportPageSize = 100

// Options configures an export operation.
type Options struct {
	Version int  // Specific revision to export (0 = latest), single-listing only
	Force   bool // Overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      `json:"exported"`        // Number of files exported
	Paths    []string `json:"paths,omitempty"` // Filesystem paths that were written
}

// Run executes the export operation. If id is empty, the latest revision of
// every listing is exported to dst; otherwise only that listing is written.
func Run(ctx context.Context, w io.Writer, svc *catalog.Service, id, dst string, opts Options) (Result, error) {
	if id == "" {
		return exportAll(ctx, w, svc, dst, opts)
	}
	return exportSingle(ctx, w, svc, id, dst, opts)
}

// exportSingle exports one listing to the filesystem.
// Uses os.Root for safe path traversal, consistent with exportAll.
func exportSingle(ctx context.Context, w io.Writer, svc *catalog.Service, id, dst string, opts Options) (Result, error) {
	var result Result

	a, err := svc.Get(ctx, id, opts.Version)
	if err != nil {
		return result, err
	}

	outPath, dir, name := calcSingleOutputPath(dst, a.ID)

	// Create destination directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, fmt.Errorf("creating directory: %w", err)
	}

	// Open directory as root for safe file operations
	root, err := os.OpenRoot(dir)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if err := writeAgentInRoot(root, name, a, opts.Force); err != nil {
		return result, err
	}

	result.Exported = 1
	result.Paths = []string{outPath}
	fmt.Fprintf(w, "Exported: %s -> %s\n", a.ID, outPath)

	return result, nil
}

// exportAll walks the catalog page by page and writes every latest revision
// to dst. Uses os.Root for safe path traversal within the destination.
func exportAll(ctx context.Context, w io.Writer, svc *catalog.Service, dst string, opts Options) (Result, error) {
	var result Result

	// Create destination directory
	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}

	// Open destination as root for safe file operations
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	page, err := svc.List(ctx, catalog.ListParams{Page: 1, PageSize: exportPageSize})
	if err != nil {
		return result, err
	}
	if page.TotalCount == 0 {
		return result, fmt.Errorf("catalog is empty, nothing to export")
	}

	prog := progress.New("Exporting", int(page.TotalCount))
	defer prog.Done()

	for {
		for i := range page.Items {
			a := &page.Items[i]

			outName := a.ID + ".json"
			if err := writeAgentInRoot(root, outName, a, opts.Force); err != nil {
				return result, err
			}

			prog.Increment()
			prog.Print()
			outPath := filepath.Join(dst, outName)
			result.Paths = append(result.Paths, outPath)
			result.Exported++
			fmt.Fprintf(w, "Exported: %s -> %s\n", a.ID, outPath)
		}

		if page.Page >= page.TotalPages {
			break
		}
		page, err = svc.List(ctx, catalog.ListParams{Page: page.Page + 1, PageSize: exportPageSize})
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

// calcSingleOutputPath determines the output path for a single listing export.
// Returns the full path, directory, and filename for use with os.Root.
func calcSingleOutputPath(dst, id string) (fullPath, dir, name string) {
	info, statErr := os.Stat(dst)
	switch {
	case statErr == nil && info.IsDir():
		// Destination is a directory - add filename inside it
		name = id + ".json"
		return filepath.Join(dst, name), dst, name
	case !strings.HasSuffix(dst, ".json"):
		// Non-existent path without .json - add extension
		fullPath = dst + ".json"
	default:
		fullPath = dst
	}
	dir = filepath.Dir(fullPath)
	name = filepath.Base(fullPath)
	return fullPath, dir, name
}

// writeAgentInRoot serialises a listing and writes it within an os.Root,
// safely preventing path traversal. Creates parent directories as needed.
func writeAgentInRoot(root *os.Root, name string, a *store.Agent, force bool) error {
	data, err := store.MarshalJSON(a.ToJSON(true))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", a.ID, err)
	}
	return writeFileInRoot(root, name, append(data, '\n'), force)
}

// writeFileInRoot writes content to a file within an os.Root. Creates parent
// directories as needed.
func writeFileInRoot(root *os.Root, name string, content []byte, force bool) error {
	// Check if file exists when not forcing
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	// Create parent directories within root
	dir := filepath.Dir(name)
	if dir != "." && dir != "" {
		if err := mkdirAllInRoot(root, dir); err != nil {
			return err
		}
	}

	// Write file using os.Root for path safety
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	f, err := root.OpenFile(name, flags, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.Write(content)
	return err
}

// mkdirAllInRoot creates a directory and all parents within an os.Root.
func mkdirAllInRoot(root *os.Root, path string) error {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	for i := range parts {
		dir := filepath.Join(parts[:i+1]...)
		if err := root.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
