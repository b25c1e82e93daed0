package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"splitbook/internal/service"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data, _ := json.Marshal(map[string]any{
		"dataDir": filepath.Join(dir, "data"),
		"logPath": filepath.Join(dir, "splitbook.log"),
	})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetFlags() {
	splitOrientation, splitInvert, splitContentTo = "", false, "first"
	mergeFocus, nudgeBack, resizeNoSnap = "", false, false
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("splitbook %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

var pageLine = regexp.MustCompile(`(?m)^page (\S+)$`)

func newPage(t *testing.T, cfgPath string) string {
	t.Helper()
	out := mustRun(t, cfgPath, "new", "Zine")
	m := pageLine.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no page id in %q", out)
	}
	return m[1]
}

func TestFlagsExist(t *testing.T) {
	for _, name := range []string{"config", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
	if f := splitCmd.Flags().Lookup("content-to"); f == nil || f.DefValue != "first" {
		t.Errorf("--content-to default = %v", f)
	}
	if f := splitCmd.Flags().Lookup("orientation"); f == nil || f.Shorthand != "o" {
		t.Errorf("--orientation flag = %v", f)
	}
}

func TestVersionTemplate(t *testing.T) {
	orig := [3]string{version, commit, date}
	defer SetVersionInfo(orig[0], orig[1], orig[2])

	SetVersionInfo("1.2.0", "none", "")
	if got := versionTemplate(); got != "splitbook 1.2.0\n" {
		t.Errorf("versionTemplate() = %q", got)
	}
	SetVersionInfo("1.2.0", "abc123", "2026-01-01")
	if got := versionTemplate(); !strings.Contains(got, "commit: abc123") {
		t.Errorf("versionTemplate() = %q", got)
	}
}

func TestNewAndShow(t *testing.T) {
	cfgPath := writeConfig(t)
	page := newPage(t, cfgPath)

	if out := mustRun(t, cfgPath, "show", page); out != "n1\n" {
		t.Errorf("show fresh page = %q", out)
	}

	out := mustRun(t, cfgPath, "split", page, "n1", "-o", "v")
	if out != "n1{V,[n2(50%),n3(50%)]}\nfocus n3\n" {
		t.Errorf("split = %q", out)
	}

	out = mustRun(t, cfgPath, "show", page)
	want := "n1{V,[n2(50%),n3(50%)]}\ndivider n1 vertical at 620.0 mergeable\n"
	if out != want {
		t.Errorf("show = %q, want %q", out, want)
	}
}

func TestSplitInfersOrientation(t *testing.T) {
	cfgPath := writeConfig(t)
	page := newPage(t, cfgPath)

	// Default pages are portrait, so the first split stacks.
	out := mustRun(t, cfgPath, "split", page, "n1")
	if !strings.HasPrefix(out, "n1{H,") {
		t.Errorf("split = %q", out)
	}
	out = mustRun(t, cfgPath, "split", page, "n2", "--invert")
	if !strings.HasPrefix(out, "n1{H,[n2{H,") {
		t.Errorf("inverted split of a wide region = %q", out)
	}
}

func TestResizeUndoRedo(t *testing.T) {
	cfgPath := writeConfig(t)
	page := newPage(t, cfgPath)
	mustRun(t, cfgPath, "split", page, "n1", "-o", "v")

	if out := mustRun(t, cfgPath, "resize", page, "n1", "30", "--no-snap"); !strings.HasPrefix(out, "n1{V,[n2(30%),n3(70%)]}") {
		t.Errorf("resize = %q", out)
	}
	if out := mustRun(t, cfgPath, "undo", page); !strings.HasPrefix(out, "n1{V,[n2(50%),n3(50%)]}") {
		t.Errorf("undo = %q", out)
	}
	if out := mustRun(t, cfgPath, "redo", page); !strings.HasPrefix(out, "n1{V,[n2(30%),n3(70%)]}") {
		t.Errorf("redo = %q", out)
	}
	if _, err := run(t, cfgPath, "redo", page); !errors.Is(err, service.ErrNothingToRedo) {
		t.Errorf("redo at tip: %v", err)
	}
	if out := mustRun(t, cfgPath, "nudge", page, "n1"); strings.HasPrefix(out, "n1{V,[n2(30%)") {
		t.Errorf("nudge did not move the divider: %q", out)
	}
}

func TestDeleteAndMerge(t *testing.T) {
	cfgPath := writeConfig(t)
	page := newPage(t, cfgPath)

	if out := mustRun(t, cfgPath, "delete", page, "n1"); out != "n1\nno change\nfocus n1\n" {
		t.Errorf("delete root = %q", out)
	}

	mustRun(t, cfgPath, "split", page, "n1", "-o", "h")
	if out := mustRun(t, cfgPath, "merge", page, "n1"); out != "n1\nfocus n1\n" {
		t.Errorf("merge = %q", out)
	}

	mustRun(t, cfgPath, "split", page, "n1", "-o", "h")
	if out := mustRun(t, cfgPath, "delete", page, "n4"); out != "n1\nfocus n1\n" {
		t.Errorf("delete leaf = %q", out)
	}
}

func TestListDocumentsAndPages(t *testing.T) {
	cfgPath := writeConfig(t)
	out := mustRun(t, cfgPath, "new", "Zine")
	docID := strings.TrimPrefix(strings.SplitN(out, "\n", 2)[0], "document ")

	mustRun(t, cfgPath, "add-page", docID, "Back")
	if out := mustRun(t, cfgPath, "list"); !strings.Contains(out, docID+"\tZine") {
		t.Errorf("list = %q", out)
	}
	out = mustRun(t, cfgPath, "list", docID)
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 2 || !strings.HasSuffix(lines[1], "\tBack\tn2") {
		t.Errorf("list pages = %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	cfgPath := writeConfig(t)
	page := newPage(t, cfgPath)

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"bad orientation", []string{"split", page, "n1", "-o", "x"}, nil},
		{"bad content-to", []string{"split", page, "n1", "--content-to", "middle"}, nil},
		{"bad percent", []string{"resize", page, "n1", "140"}, nil},
		{"missing page", []string{"show", "nope"}, service.ErrPageNotFound},
		{"missing node", []string{"split", page, "n9"}, service.ErrNodeNotFound},
		{"merge a leaf", []string{"merge", page, "n1"}, service.ErrNotSplit},
		{"nothing to undo", []string{"undo", page}, service.ErrNothingToUndo},
		{"missing args", []string{"split", page}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, cfgPath, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}
