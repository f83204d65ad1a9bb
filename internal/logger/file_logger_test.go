package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesEntries(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "rosenbrock demo")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(l.GetLogPath()))
	assert.True(t, strings.HasPrefix(filepath.Base(l.GetLogPath()), "rosenbrock_demo_"))

	l.Info("starting %d runs", 2)
	l.LogGeneration(0, 25, 520, 1000, 311, 0.5, 14)
	l.LogResult(1, "abc", 0.25, 30, "x=[1 1]")
	l.LogError("run 1", errors.New("boom"))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "closing twice is a no-op")

	data, err := os.ReadFile(l.GetLogPath())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "STUDY STARTED")
	assert.Contains(t, content, "Study: rosenbrock demo")
	assert.Contains(t, content, "[INFO] starting 2 runs")
	assert.Contains(t, content, "[GEN] run=0 gen=25 pulls=520/1000 arms=311 best=0.500000 (14 pulls)")
	assert.Contains(t, content, "[RESULT] #1 run=abc value=0.250000 evaluations=30 x=[1 1]")
	assert.Contains(t, content, "[ERROR] run 1: boom")
	assert.Contains(t, content, "STUDY ENDED")
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	l, err := NewLogger(t.TempDir(), "concurrent")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Info("worker %d line %d", i, j)
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.GetLogPath())
	require.NoError(t, err)
	assert.Equal(t, 400, strings.Count(string(data), "[INFO] worker"))
}
