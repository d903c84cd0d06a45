package core_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"wineconfig/core"
)

const testHome = "/home/tester"

type fakeOutput struct {
	out []byte
	err error
}

// fakeRunner answers LookPath and Output from canned tables and counts the
// calls it receives.
type fakeRunner struct {
	mu      sync.Mutex
	paths   map[string]string
	outputs map[string]fakeOutput
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		paths:   map[string]string{},
		outputs: map[string]fakeOutput{},
	}
}

func commandKey(name string, arg ...string) string {
	return strings.Join(append([]string{name}, arg...), " ")
}

func (r *fakeRunner) onPath(file string, path string) {
	r.paths[file] = path
}

func (r *fakeRunner) respond(out string, name string, arg ...string) {
	r.outputs[commandKey(name, arg...)] = fakeOutput{out: []byte(out)}
}

func (r *fakeRunner) fail(err error, name string, arg ...string) {
	r.outputs[commandKey(name, arg...)] = fakeOutput{err: err}
}

func (r *fakeRunner) LookPath(file string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, "lookpath "+file)
	path, ok := r.paths[file]
	if !ok {
		return "", errors.New("executable file not found in $PATH")
	}
	return path, nil
}

func (r *fakeRunner) Output(ctx context.Context, name string, arg ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := commandKey(name, arg...)
	r.calls = append(r.calls, key)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, ok := r.outputs[key]
	if !ok {
		return nil, errors.New("command not found: " + name)
	}
	return result.out, result.err
}

func (r *fakeRunner) callCount(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, call := range r.calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}

type fakeUsers struct {
	name string
	err  error
}

func (u fakeUsers) Username() (string, error) {
	return u.name, u.err
}

type fakeAccounts struct {
	id string
}

func (a fakeAccounts) AccountID() (string, bool) {
	return a.id, a.id != ""
}

// newTestHost returns a host backed by an in-memory filesystem and a fake
// runner with nothing on the search path.
func newTestHost(t *testing.T, goos string) (*core.Host, *fakeRunner) {
	t.Helper()

	runner := newFakeRunner()
	paths := core.PathsFor(testHome, filepath.Join(testHome, ".config"))
	return &core.Host{
		Fs:       afero.NewMemMapFs(),
		Runner:   runner,
		Paths:    paths,
		GOOS:     goos,
		Accounts: fakeAccounts{id: "epic-1234"},
		Users:    fakeUsers{name: "tester"},
		Store:    core.NewCacheDatastore[core.AppSettings](),
		SteamCandidates: []string{
			filepath.Join(testHome, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"),
			filepath.Join(testHome, ".steam", "steam"),
		},
		SystemSteamLibraries: []string{"/usr/share/steam"},
	}, runner
}

func writeFile(t *testing.T, fs afero.Fs, path string, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o755))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}
