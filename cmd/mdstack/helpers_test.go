package main

// Notes:
// - Shared test infrastructure: a recording environment, and a mock pool
//   and converter so batch logic runs without goldmark or Chrome.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdstack"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment with captured output and a fixed clock.
// The real converter pool is kept; HTML-only builds need no browser.
func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:     func() time.Time { return fixedNow },
			Stdout:  stdout,
			Stderr:  stderr,
			NewPool: newConverterPool,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(b)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a canned result.
type mockConverter struct {
	mu     sync.Mutex
	inputs []mdstack.Input
	body   string
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input mdstack.Input) (*mdstack.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	body := m.body
	if body == "" {
		body = "<p>ok</p>\n"
	}
	res := &mdstack.Result{Body: body, HTML: []byte("<html>" + body + "</html>")}
	if input.PDF {
		res.PDF = []byte("%PDF-1.7 mock")
	}
	return res, nil
}

// mockPool hands out a single shared mockConverter.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error
	opts       []mdstack.Option
	closed     bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

// withMockPool installs pool in env and records the options it was built with.
func withMockPool(env *testEnv, pool *mockPool) {
	env.NewPool = func(size int, opts ...mdstack.Option) Pool {
		pool.opts = opts
		if pool.size == 0 {
			pool.size = size
		}
		return pool
	}
}
