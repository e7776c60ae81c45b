package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localDBHeader precedes local catalog entries in .gitignore.
const localDBHeader = "# local catalogs (not committed)"

// IgnoreDB adds a catalog to the workspace .gitignore, marking it local.
// The entry is grouped under a header comment so users can see at a glance
// which catalogs are not committed. An empty wsDir discovers the nearest
// .agora directory.
func IgnoreDB(name, wsDir string) error {
	wsDir, err := resolveWsDir(wsDir)
	if err != nil {
		return err
	}

	dbFile := DBFileName(name)
	path := filepath.Join(wsDir, ".gitignore")

	lines, err := parseGitignore(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	// Already ignored
	for _, l := range lines {
		if strings.TrimSpace(l) == dbFile {
			return nil
		}
	}

	// Append under the local catalogs header, adding the header if missing
	hasHeader := false
	for _, l := range lines {
		if strings.TrimSpace(l) == localDBHeader {
			hasHeader = true
			break
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if !hasHeader {
		if len(lines) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(localDBHeader)
		b.WriteString("\n")
	}
	b.WriteString(dbFile)
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

// UnignoreDB removes a catalog from the workspace .gitignore, marking it
// shared. The local catalogs header is removed too when no entries remain
// under it.
func UnignoreDB(name, wsDir string) error {
	wsDir, err := resolveWsDir(wsDir)
	if err != nil {
		return err
	}

	dbFile := DBFileName(name)
	path := filepath.Join(wsDir, ".gitignore")

	lines, parseErr := parseGitignore(path)
	if parseErr != nil {
		if os.IsNotExist(parseErr) {
			return nil // Nothing to unignore
		}
		return parseErr
	}

	var kept []string
	removed := false
	for _, l := range lines {
		if strings.TrimSpace(l) == dbFile {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		return nil
	}

	// Drop the header if it no longer precedes any .db entry
	headerIdx := -1
	hasEntries := false
	for i, l := range kept {
		t := strings.TrimSpace(l)
		if t == localDBHeader {
			headerIdx = i
			continue
		}
		if headerIdx >= 0 && strings.HasSuffix(t, ".db") {
			hasEntries = true
		}
	}
	if headerIdx >= 0 && !hasEntries {
		kept = append(kept[:headerIdx], kept[headerIdx+1:]...)
		// Trim a trailing blank line left behind by the header
		for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
			kept = kept[:len(kept)-1]
		}
	}

	var b strings.Builder
	for _, l := range kept {
		b.WriteString(l)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

// IsIgnored reports whether a catalog is listed in the workspace .gitignore.
func IsIgnored(name, wsDir string) (bool, error) {
	wsDir, err := resolveWsDir(wsDir)
	if err != nil {
		return false, err
	}

	dbFile := DBFileName(name)
	path := filepath.Join(wsDir, ".gitignore")

	lines, parseErr := parseGitignore(path)
	if parseErr != nil {
		if os.IsNotExist(parseErr) {
			return false, nil
		}
		return false, parseErr
	}

	for _, l := range lines {
		if strings.TrimSpace(l) == dbFile {
			return true, nil
		}
	}
	return false, nil
}

// resolveWsDir discovers the nearest .agora directory when wsDir is empty.
func resolveWsDir(wsDir string) (string, error) {
	if wsDir != "" {
		return wsDir, nil
	}
	return DiscoverDir()
}

// parseGitignore reads a .gitignore file and returns its lines.
// A trailing newline does not produce an empty final line.
func parseGitignore(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}
