// Package workspace provides catalog initialisation and discovery for agora.
//
// An agora workspace is a .agora directory containing one or more SQLite
// catalogs. This package handles:
//   - Initialising new workspaces (creating .agora/ and the catalog)
//   - Discovering existing catalogs by walking up the directory tree
//   - Managing multiple named catalogs (catalog.db, catalog-staging.db, etc.)
//   - Controlling git visibility via .gitignore (local vs shared catalogs)
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .agora directory containing the target catalog
// is found. If the filesystem root is reached first, the user-level catalog
// under ~/.agora is used when it exists.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkvarda/agora/internal/store"
)

const (
	// Dir is the directory name for the agora workspace.
	Dir = ".agora"
	// DBFile is the default catalog filename.
	DBFile = "catalog.db"
)

// DBFileName returns the catalog filename for a given name.
// Empty name returns the default "catalog.db".
// A name like "staging" returns "catalog-staging.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "catalog-" + name + ".db"
}

// ErrNotInitialised is returned when no agora catalog is found.
var ErrNotInitialised = errors.New("agora not initialised (run 'agora init')")

// Init initialises a new agora workspace.
//
// Why init does not write config: Following the git model, init only creates
// the catalog. Config is a separate concern managed via "agora config".
// This keeps responsibilities clear:
//   - init: create the catalog
//   - --local: mark catalog as gitignored
//   - config command: manage settings (global ~/.agora/config.yaml or local .agora/config.yaml)
//
// Parameters:
//   - force: reinitialise an existing catalog
//   - db: catalog name (empty for default "catalog.db")
//   - local: add catalog to .gitignore (not committed)
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	wsDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(wsDir, DBFileName(db))

	// Check if already exists
	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("catalog %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		// Remove existing catalog for reinit
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove catalog: %w", err)
		}
	}

	// Create directory
	if err := os.MkdirAll(wsDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Create and initialise the catalog
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Create .gitignore if it doesn't exist.
	// Only create on first init - subsequent inits (for additional catalogs)
	// should not overwrite and lose custom entries like local catalog markers.
	gitignore := filepath.Join(wsDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# agora - ignore local config and WAL artefacts
# Catalog files (*.db) are the source of truth and should be committed
config.yaml
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	// Mark catalog as local if requested (add to gitignore).
	//
	// Why --local only affects gitignore: The --local flag controls whether
	// the catalog file is committed to git. It does not create config.
	// Config is managed separately via "agora config".
	if local {
		if err := IgnoreDB(db, wsDir); err != nil {
			return fmt.Errorf("ignore catalog: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for a .agora catalog,
// falling back to the user-level catalog under ~/.agora.
// The db parameter specifies which catalog to find (empty for default).
// Returns the full path to the catalog if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// No workspace on the walk up; try the user-level catalog
	if home, err := os.UserHomeDir(); err == nil {
		dbPath := filepath.Join(home, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
	}

	return "", ErrNotInitialised
}

// DiscoverDir finds the .agora directory, walking up the tree.
// Returns the full path to the .agora directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		wsDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(wsDir); err == nil && info.IsDir() {
			return wsDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds catalog metadata.
type DBInfo struct {
	Name  string `json:"name"`  // Short name (empty for default, "staging" for catalog-staging.db)
	File  string `json:"file"`  // Filename (catalog.db, catalog-staging.db)
	Path  string `json:"path"`  // Full path
	Local bool   `json:"local"` // True if gitignored
}

// ListDBs returns all catalogs in the .agora directory with their status.
// If dir is empty, discovers the .agora directory from the current working
// directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .agora directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .agora directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		// Extract short name from filename
		name := ""
		if e.Name() == DBFile {
			name = ""
		} else if strings.HasPrefix(e.Name(), "catalog-") {
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), "catalog-"), ".db")
		} else {
			continue // Not an agora catalog
		}

		ignored, err := IsIgnored(name, dir)
		if err != nil {
			// If we can't determine ignored status, default to false (shared).
			// This can happen if .gitignore is malformed or unreadable.
			ignored = false
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignored,
		})
	}

	return dbs, nil
}
