// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> catalog service -> store -> SQLite, through a
// real built binary. Internal packages carry their own unit tests; the
// tests here prove the wiring between them - flags reach the service,
// service errors reach the exit code, output reaches stdout.
//
// Each test environment gets its own working directory AND its own HOME,
// so global config and the audit log never touch the developer's machine.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the agora binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "agora-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "agora"
		if os.PathSeparator == '\\' {
			binaryName = "agora.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory holding .agora/
	home   string // isolated HOME for global config and the audit log
	binary string
}

// newTestEnv creates a temporary directory with an initialised catalog.
//
// Note: init does not create config. Config is managed separately via
// "agora config". This follows the git model where init just creates the
// workspace structure.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnvNoInit(t)
	env.run("init")

	return env
}

// newTestEnvNoInit builds an environment without initialising a catalog,
// for tests covering bootstrap commands and the uninitialised error path.
func newTestEnvNoInit(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)

	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: binary}
}

// command builds an exec.Cmd with the test environment applied. HOME points
// at the per-test directory and AGORA_* vars from the outer shell are
// cleared so tests stay hermetic.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "AGORA_DB=", "AGORA_DIR=")
	return cmd
}

// run executes agora with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("agora %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes agora and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes agora with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("agora %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes agora with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// writeFile writes a file into the working directory and returns its
// relative name.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
	return name
}

// listingID matches the id agora prints after publishing.
var listingID = regexp.MustCompile(`\(([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\)`)

// publish creates a listing from seed content and returns its id.
func (e *testEnv) publish(filename, seed string) string {
	e.t.Helper()
	e.writeFile(filename, seed)
	out := e.run("publish", filename, "-a", "tester")
	m := listingID.FindStringSubmatch(out)
	if m == nil {
		e.t.Fatalf("no listing id in publish output: %s", out)
	}
	return m[1]
}

// Canonical seeds used across the CLI tests.
const (
	summariserSeed = `{
  "name": "Summariser",
  "description": "Summarises long documents into concise bullet points",
  "keywords": ["nlp", "summaries"],
  "categories": ["productivity"],
  "graph": {"nodes": [{"id": "input"}, {"id": "summarise"}], "edges": [{"from": "input", "to": "summarise"}]}
}`

	translatorSeed = `{
  "name": "Translator",
  "description": "Translates text between thirty languages",
  "keywords": ["nlp", "translation"],
  "categories": ["language"],
  "graph": {"nodes": [{"id": "input"}, {"id": "translate"}]}
}`

	plannerSeed = `{
  "name": "Trip Planner",
  "description": "Plans multi-city trips within a budget",
  "keywords": ["travel", "planning"],
  "categories": ["productivity", "travel"],
  "graph": {"nodes": [{"id": "plan"}]}
}`
)
