// Package importer provides utilities for importing listing seed files
// into agora. Seeds are JSON files holding either a single draft object or
// an array of drafts, letting teams keep catalog content in git and load
// it into a fresh catalog in one command.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkvarda/agora/internal/catalog"
	"github.com/mkvarda/agora/internal/progress"
	"github.com/mkvarda/agora/internal/store"
)

// Options configures an import operation.
type Options struct {
	Author string // Author applied to drafts that do not name one
	DryRun bool   // Show what would be imported without importing
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int      `json:"imported"`      // Number of listings created
	IDs      []string `json:"ids,omitempty"` // Ids assigned to the created listings
}

// seed is the on-disk JSON shape of one listing draft.
type seed struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Keywords    []string        `json:"keywords"`
	Categories  []string        `json:"categories"`
	Graph       json.RawMessage `json:"graph"`
}

func (s seed) draft(fallbackAuthor string) store.Draft {
	author := s.Author
	if author == "" {
		author = fallbackAuthor
	}
	return store.Draft{
		Name:        s.Name,
		Description: s.Description,
		Author:      author,
		Keywords:    s.Keywords,
		Categories:  s.Categories,
		Graph:       s.Graph,
	}
}

// Run executes the import operation. src may be a single .json file or a
// directory scanned recursively for .json files.
// Uses os.Root for safe path traversal within the source directory.
func Run(ctx context.Context, w io.Writer, svc *catalog.Service, src string, opts Options) (Result, error) {
	var result Result

	info, err := os.Stat(src)
	if err != nil {
		return result, err
	}

	// Single file import
	if !info.IsDir() {
		if !strings.HasSuffix(strings.ToLower(src), ".json") {
			return result, fmt.Errorf("not a .json seed file: %s", src)
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", src, err)
		}
		seeds, err := decodeSeeds(data)
		if err != nil {
			return result, fmt.Errorf("parsing %s: %w", src, err)
		}
		return importSeeds(ctx, w, svc, seeds, opts)
	}

	// Directory import using os.Root for safe traversal
	root, err := os.OpenRoot(src)
	if err != nil {
		return result, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scanRoot(root, "", false)
	if err != nil {
		return result, fmt.Errorf("scanning %s: %w", src, err)
	}

	var seeds []seed
	for _, rel := range files {
		data, err := readFileInRoot(root, rel)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", rel, err)
		}
		s, err := decodeSeeds(data)
		if err != nil {
			return result, fmt.Errorf("parsing %s: %w", rel, err)
		}
		seeds = append(seeds, s...)
	}

	return importSeeds(ctx, w, svc, seeds, opts)
}

// ReadDraft parses a seed file holding exactly one draft. path "-" reads
// stdin. Used by publish, which creates a single listing per invocation.
func ReadDraft(path, fallbackAuthor string) (store.Draft, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return store.Draft{}, fmt.Errorf("reading %s: %w", path, err)
	}

	seeds, err := decodeSeeds(data)
	if err != nil {
		return store.Draft{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	switch len(seeds) {
	case 0:
		return store.Draft{}, fmt.Errorf("no listing in %s", path)
	case 1:
		return seeds[0].draft(fallbackAuthor), nil
	default:
		return store.Draft{}, fmt.Errorf("%s holds %d listings; publish takes one (use import for bulk loads)", path, len(seeds))
	}
}

// importSeeds creates one listing per draft, reporting progress.
func importSeeds(ctx context.Context, w io.Writer, svc *catalog.Service, seeds []seed, opts Options) (Result, error) {
	var result Result

	if len(seeds) == 0 {
		return result, nil
	}

	prog := progress.New("Importing", len(seeds))
	defer prog.Done()

	for _, s := range seeds {
		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s\n", s.Name)
			prog.Increment()
			prog.Print()
			continue
		}

		a, err := svc.Create(ctx, s.draft(opts.Author))
		if err != nil {
			return result, fmt.Errorf("importing %q: %w", s.Name, err)
		}

		prog.Increment()
		prog.Print()
		fmt.Fprintf(w, "Imported: %s -> %s\n", s.Name, a.ID)
		result.IDs = append(result.IDs, a.ID)
		result.Imported++
	}

	return result, nil
}

// decodeSeeds parses seed file content: either a JSON array of drafts or a
// single draft object.
func decodeSeeds(data []byte) ([]seed, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var seeds []seed
		if err := json.Unmarshal(trimmed, &seeds); err != nil {
			return nil, err
		}
		return seeds, nil
	}

	var s seed
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, err
	}
	return []seed{s}, nil
}

// scanRoot recursively finds all seed files within an os.Root.
// Returns relative paths from the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	var files []string

	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()

		// Skip hidden files/dirs unless requested
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		if entry.IsDir() {
			subfiles, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, subfiles...)
		} else if strings.HasSuffix(strings.ToLower(name), ".json") {
			files = append(files, rel)
		}
	}

	return files, nil
}

// readFileInRoot reads a file's content within an os.Root.
func readFileInRoot(root *os.Root, name string) ([]byte, error) {
	f, err := root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	content := make([]byte, info.Size())
	if _, err := io.ReadFull(f, content); err != nil {
		return nil, err
	}

	return content, nil
}
