package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "nested", "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(b)
}

func TestInit_CreatesFile(t *testing.T) {
	path := setupTestLogger(t)
	if !strings.Contains(readLog(t, path), "logger initialized") {
		t.Error("log should record initialization")
	}
}

func TestLevels(t *testing.T) {
	path := setupTestLogger(t)

	Debug("hidden-%d", 1)
	Info("shown-%s", "info")
	SetDebug(true)
	Debug("visible-%d", 2)

	out := readLog(t, path)
	if strings.Contains(out, "hidden-1") {
		t.Error("debug message logged at info level")
	}
	for _, want := range []string{"shown-info", "visible-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestComponentLogger(t *testing.T) {
	path := setupTestLogger(t)

	ComponentLogger("service").Info("split", "page", "p1")
	out := readLog(t, path)
	if !strings.Contains(out, "component=service") || !strings.Contains(out, "page=p1") {
		t.Errorf("missing attributes in %q", out)
	}
}

func TestConcurrent(t *testing.T) {
	setupTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				Warn("goroutine %d message %d", n, j)
			}
		}(i)
	}
	wg.Wait()
}
