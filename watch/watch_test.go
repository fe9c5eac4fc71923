package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quillcheck/quill/config"
	"github.com/quillcheck/quill/editor"
	"github.com/quillcheck/quill/lint"
	"github.com/quillcheck/quill/runner"
)

type resultCollector struct {
	mu      sync.Mutex
	results []*lint.Result
}

func (c *resultCollector) add(result *lint.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

func (c *resultCollector) wait(t *testing.T, n int, timeout time.Duration) []*lint.Result {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		if len(c.results) >= n {
			out := append([]*lint.Result(nil), c.results...)
			c.mu.Unlock()
			return out
		}
		c.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d results", n)
	return nil
}

func newWatchFixture(t *testing.T, root string) (*Watcher, *resultCollector) {
	t.Helper()
	registry := lint.NewRegistry()
	editor.Register(registry)
	engine := lint.NewEngine(registry, zap.NewNop().Sugar())

	cfg := &config.Config{
		Styles:     []string{"test"},
		Extensions: []string{".md"},
		Output:     "table",
	}
	checks := []lint.Check{{Name: "test.Repetition", Kind: "repetition", IgnoreCase: true}}
	r, err := runner.New(engine, nil, cfg, checks, false, zap.NewNop().Sugar())
	require.NoError(t, err)

	collector := &resultCollector{}
	watcher, err := New(
		r,
		config.WatchConfig{DebounceMS: 20, RatePerSecond: 1000, Burst: 100},
		cfg.Extensions,
		[]string{root},
		collector.add,
		zap.NewNop().Sugar(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })
	watcher.Start()
	return watcher, collector
}

func TestWatcherRelintsOnWrite(t *testing.T) {
	root := t.TempDir()
	_, collector := newWatchFixture(t, root)

	path := filepath.Join(root, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("The the cat\n"), 0o644))

	results := collector.wait(t, 1, 5*time.Second)
	assert.Equal(t, path, results[0].File)
	assert.Len(t, results[0].FlaggedLines, 1)
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	_, collector := newWatchFixture(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("fine\n"), 0o644))

	// Only the markdown file produces a result; results[0] proves the
	// watcher stayed alive past the .go write.
	results := collector.wait(t, 1, 5*time.Second)
	assert.Equal(t, filepath.Join(root, "doc.md"), results[0].File)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	_, collector := newWatchFixture(t, root)

	path := filepath.Join(root, "doc.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("The the cat\n"), 0o644))
		time.Sleep(2 * time.Millisecond)
	}

	collector.wait(t, 1, 5*time.Second)
	// Allow any stragglers to land, then confirm the burst coalesced.
	time.Sleep(100 * time.Millisecond)
	collector.mu.Lock()
	count := len(collector.results)
	collector.mu.Unlock()
	assert.LessOrEqual(t, count, 2, "a burst of writes should coalesce into at most a couple of lints")
}

func TestWatcherCloseIsIdempotentForTimers(t *testing.T) {
	root := t.TempDir()
	watcher, _ := newWatchFixture(t, root)

	// A pending debounce at close time must not fire a lint afterwards.
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("x\n"), 0o644))
	require.NoError(t, watcher.Close())
}
